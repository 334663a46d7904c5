package sap

import (
	"context"
	"fmt"

	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

const treeSelect = "TreeCode,TreeType,ProductDescription,ProductTreeLines"

type treeData struct {
	TreeCode           string         `json:"TreeCode"`
	TreeType           string         `json:"TreeType"`
	ProductDescription string         `json:"ProductDescription"`
	ProductTreeLines   []treeLineData `json:"ProductTreeLines"`
}

type treeLineData struct {
	ItemCode string  `json:"ItemCode"`
	ItemName string  `json:"ItemName"`
	ItemType string  `json:"ItemType"`
	Quantity decimal `json:"Quantity"`
}

// FetchTree implements repositories.TreeLookup.
func (c *Client) FetchTree(ctx context.Context, code models.ItemCode) (*models.Tree, error) {
	if !code.Valid() {
		return nil, labeldomain.ErrInvalidItemCode
	}

	var data treeData
	if err := c.get(ctx, fmt.Sprintf("/ProductTrees('%s')?$select=%s", code, treeSelect), &data); err != nil {
		return nil, fmt.Errorf("product tree %s: %w", code, err)
	}

	tree := &models.Tree{
		Code:        models.ItemCode(data.TreeCode),
		Description: data.ProductDescription,
		Lines:       make([]models.TreeLine, 0, len(data.ProductTreeLines)),
	}
	for _, l := range data.ProductTreeLines {
		tree.Lines = append(tree.Lines, models.TreeLine{
			ItemCode: models.ItemCode(l.ItemCode),
			ItemName: l.ItemName,
			Quantity: float64(l.Quantity),
		})
	}
	return tree, nil
}
