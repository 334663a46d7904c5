package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// LabelRepository is the persistence interface for computed labels.
// The domain layer owns this interface; infrastructure implements it.
type LabelRepository interface {
	Save(ctx context.Context, label *models.Label) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Label, error)

	// LatestByItemCode returns the most recently computed label for the item.
	// Returns domain.ErrLabelNotFound when none exists.
	LatestByItemCode(ctx context.Context, code models.ItemCode) (*models.Label, error)
}
