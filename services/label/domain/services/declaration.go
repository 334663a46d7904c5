package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

const (
	darkChocolateToken   = "mørk chokolade"
	milkChocolateToken   = "mælke-chokolade"
	darkChocolateNotice  = "Mørk chokolade: Mindst 60% kakaotørstof"
	milkChocolateNotice  = "Mælkechokolade: Mindst 35% kakaotørstof"
	declarationSeparator = ", "
)

// BuildDeclaration renders the Danish ingredient list for the leaves, largest
// share first, followed by chocolate notices and the allergen disclaimer.
func BuildDeclaration(leaves []models.LeafUsage) (string, error) {
	total := TotalQuantity(leaves)
	if total == 0 {
		return "", labeldomain.ErrZeroTotalQuantity
	}

	sorted := make([]models.LeafUsage, len(leaves))
	copy(sorted, leaves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quantity > sorted[j].Quantity
	})

	parts := make([]string, 0, len(sorted))
	var hasDark, hasMilk bool
	for _, l := range sorted {
		desc := description(l.Ingredient)
		lower := strings.ToLower(desc)
		hasDark = hasDark || strings.Contains(lower, darkChocolateToken)
		hasMilk = hasMilk || strings.Contains(lower, milkChocolateToken)

		name, details := splitDescription(desc)
		percent := int(math.Round(l.Quantity / total * 100))

		var b strings.Builder
		b.WriteString(name)
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(percent))
		b.WriteString("%)")
		if details != "" {
			b.WriteByte(' ')
			b.WriteString(details)
		}
		parts = append(parts, b.String())
	}

	out := strings.Join(parts, declarationSeparator)
	if hasDark {
		out += ". " + darkChocolateNotice
	}
	if hasMilk {
		out += ". " + milkChocolateNotice
	}
	if disclaimer := BuildAllergenDisclaimer(AggregateAllergens(leaves)); disclaimer != "" {
		out += ". " + disclaimer
	}
	return out, nil
}

// splitDescription splits at the first " (" that is not at the start.
func splitDescription(desc string) (name, details string) {
	if i := strings.Index(desc, " ("); i > 0 {
		return strings.TrimSpace(desc[:i]), strings.TrimSpace(desc[i:])
	}
	return strings.TrimSpace(desc), ""
}

func description(item *models.Item) string {
	if item.Material != nil {
		return item.Material.IngredientsDescription
	}
	return item.Name
}
