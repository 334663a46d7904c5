package services

import (
	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// TotalQuantity returns the summed quantity of all leaves.
func TotalQuantity(leaves []models.LeafUsage) float64 {
	var total float64
	for _, l := range leaves {
		total += l.Quantity
	}
	return total
}

// AggregateNutrients returns the mass-weighted average of the leaves' nutrients.
// No rounding is applied.
func AggregateNutrients(leaves []models.LeafUsage) (models.Nutrients, error) {
	total := TotalQuantity(leaves)
	if total == 0 {
		return models.Nutrients{}, labeldomain.ErrZeroTotalQuantity
	}

	var out models.Nutrients
	for _, l := range leaves {
		m := l.Ingredient.Material
		if m == nil {
			continue
		}
		share := l.Quantity / total
		for _, k := range models.AllNutrients {
			out.Set(k, out.Value(k)+m.Nutrients.Value(k)*share)
		}
	}
	return out, nil
}
