package sap

import (
	"strconv"
	"strings"

	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// encodeItem converts a domain Item back to Service Layer item data, writing
// numbers with a decimal comma.
func encodeItem(item *models.Item) map[string]any {
	out := map[string]any{
		fieldItemCode:       item.Code.String(),
		fieldItemName:       item.Name,
		fieldTreeType:       item.TreeKind.SAPValue(),
		fieldClassification: item.Classification.SAPValue(),
	}
	if m := item.Material; m != nil {
		for _, k := range models.AllNutrients {
			out[nutrientFields[k]] = formatDecimal(m.Nutrients.Value(k))
		}
		for _, k := range models.AllAllergens {
			out[allergenFields[k]] = m.Allergens.Status(k).String()
		}
		out[fieldDescriptionDA] = m.IngredientsDescription
	}
	return out
}

// formatDecimal writes v with a decimal comma, as the Service Layer does.
func formatDecimal(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}
