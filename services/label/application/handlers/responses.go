package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/bomlabel/services/label/domain/models"
	domainsvcs "github.com/ghuser/bomlabel/services/label/domain/services"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" yaml:"error" example:"invalid item code: \"KS'ER\""`
} // @name ErrorResponse

// LabelResponse is the computed label of one item.
type LabelResponse struct {
	ID           uuid.UUID         `json:"id" yaml:"id"            example:"123e4567-e89b-12d3-a456-426614174000"`
	ItemCode     string            `json:"item_code" yaml:"item_code"     example:"1000"`
	ItemName     string            `json:"item_name" yaml:"item_name"     example:"Marcipanbrød"`
	Nutrients    models.Nutrients  `json:"nutrients" yaml:"nutrients"`
	Allergens    map[string]string `json:"allergens" yaml:"allergens"`
	Disclaimer   string            `json:"disclaimer" yaml:"disclaimer"    example:"Kan indeholde spor af nødder"`
	Declaration  string            `json:"declaration" yaml:"declaration"   example:"marcipan (60%) (Valencia-MANDLER, sukker)"`
	LeafCount    int               `json:"leaf_count" yaml:"leaf_count"    example:"2"`
	SkippedCount int               `json:"skipped_count" yaml:"skipped_count" example:"0"`
	ComputedAt   time.Time         `json:"computed_at" yaml:"computed_at"   example:"2024-01-15T10:30:00Z"`
} // @name LabelResponse

// NewLabelResponse renders a label for clients.
func NewLabelResponse(l *models.Label) LabelResponse {
	return LabelResponse{
		ID:           l.ID,
		ItemCode:     l.ItemCode.String(),
		ItemName:     l.ItemName,
		Nutrients:    l.Nutrients,
		Allergens:    allergenMap(l.Allergens),
		Disclaimer:   domainsvcs.BuildAllergenDisclaimer(l.Allergens),
		Declaration:  l.Declaration,
		LeafCount:    l.LeafCount,
		SkippedCount: l.SkippedCount,
		ComputedAt:   l.ComputedAt,
	}
}

// allergenMap renders statuses in the SAP vocabulary, keyed by allergen name.
func allergenMap(a models.Allergens) map[string]string {
	out := make(map[string]string, len(models.AllAllergens))
	for _, k := range models.AllAllergens {
		out[k.String()] = a.Status(k).String()
	}
	return out
}

// IngredientResponse is one raw material and its share of the product.
type IngredientResponse struct {
	ItemCode string  `json:"item_code" yaml:"item_code" example:"2002"`
	ItemName string  `json:"item_name" yaml:"item_name" example:"Marcipan 60%"`
	Quantity float64 `json:"quantity" yaml:"quantity"  example:"0.0312"`
	Percent  float64 `json:"percent" yaml:"percent"   example:"60"`
} // @name IngredientResponse

// SkippedResponse is a tree branch left out of the explosion.
type SkippedResponse struct {
	ItemCode string  `json:"item_code" yaml:"item_code" example:"4711"`
	Quantity float64 `json:"quantity" yaml:"quantity"  example:"0.5"`
	Reason   string  `json:"reason" yaml:"reason"    example:"item not found"`
} // @name SkippedResponse

// IngredientsResponse is the flattened bill of materials of an item.
type IngredientsResponse struct {
	ItemCode      string               `json:"item_code" yaml:"item_code"      example:"1000"`
	ItemName      string               `json:"item_name" yaml:"item_name"      example:"Marcipanbrød"`
	TotalQuantity float64              `json:"total_quantity" yaml:"total_quantity" example:"0.052"`
	Ingredients   []IngredientResponse `json:"ingredients" yaml:"ingredients"`
	Skipped       []SkippedResponse    `json:"skipped" yaml:"skipped"`
} // @name IngredientsResponse

// NewIngredientsResponse renders an explosion with per-leaf shares of the total.
func NewIngredientsResponse(root *models.Item, e *models.Explosion) IngredientsResponse {
	total := domainsvcs.TotalQuantity(e.Leaves)
	resp := IngredientsResponse{
		ItemCode:      root.Code.String(),
		ItemName:      root.Name,
		TotalQuantity: total,
		Ingredients:   make([]IngredientResponse, 0, len(e.Leaves)),
		Skipped:       make([]SkippedResponse, 0, len(e.Skipped)),
	}
	for _, leaf := range e.Leaves {
		var pct float64
		if total > 0 {
			pct = leaf.Quantity / total * 100
		}
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{
			ItemCode: leaf.Ingredient.Code.String(),
			ItemName: leaf.Ingredient.Name,
			Quantity: leaf.Quantity,
			Percent:  pct,
		})
	}
	for _, sk := range e.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedResponse{
			ItemCode: sk.ItemCode.String(),
			Quantity: sk.Quantity,
			Reason:   sk.Err.Error(),
		})
	}
	return resp
}
