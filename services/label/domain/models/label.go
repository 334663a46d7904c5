package models

import (
	"time"

	"github.com/google/uuid"
)

// Label is the computed label data for one finished or partial product.
type Label struct {
	ID           uuid.UUID
	ItemCode     ItemCode
	ItemName     string
	Nutrients    Nutrients
	Allergens    Allergens
	Declaration  string
	LeafCount    int
	SkippedCount int
	ComputedAt   time.Time
}

// NewLabel builds a Label for root from an explosion and its aggregates.
func NewLabel(root *Item, explosion *Explosion, nutrients Nutrients, allergens Allergens, declaration string) *Label {
	return &Label{
		ID:           uuid.New(),
		ItemCode:     root.Code,
		ItemName:     root.Name,
		Nutrients:    nutrients,
		Allergens:    allergens,
		Declaration:  declaration,
		LeafCount:    len(explosion.Leaves),
		SkippedCount: len(explosion.Skipped),
		ComputedAt:   time.Now().UTC(),
	}
}
