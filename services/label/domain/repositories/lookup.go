package repositories

import (
	"context"

	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// ItemLookup resolves an item code to its master data.
// Implementations return domain.ErrItemNotFound for unknown codes.
type ItemLookup interface {
	FetchItem(ctx context.Context, code models.ItemCode) (*models.Item, error)
}

// TreeLookup resolves an assembly item code to its product tree.
// Implementations return domain.ErrItemNotFound for unknown codes.
type TreeLookup interface {
	FetchTree(ctx context.Context, code models.ItemCode) (*models.Tree, error)
}
