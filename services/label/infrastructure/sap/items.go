package sap

import (
	"context"
	"fmt"

	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// FetchItem implements repositories.ItemLookup.
func (c *Client) FetchItem(ctx context.Context, code models.ItemCode) (*models.Item, error) {
	if !code.Valid() {
		return nil, labeldomain.ErrInvalidItemCode
	}

	var data itemData
	if err := c.get(ctx, fmt.Sprintf("/Items('%s')?$select=%s", code, itemSelect), &data); err != nil {
		return nil, fmt.Errorf("item %s: %w", code, err)
	}

	item, err := mapItem(data)
	if err != nil {
		return nil, err
	}
	return item, nil
}
