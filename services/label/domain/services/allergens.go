package services

import (
	"strings"

	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// AggregateAllergens returns the pointwise maximum severity over all leaves.
// Quantities do not matter.
func AggregateAllergens(leaves []models.LeafUsage) models.Allergens {
	out := models.NewAllergens(nil)
	for _, l := range leaves {
		if m := l.Ingredient.Material; m != nil {
			out = out.Merge(m.Allergens)
		}
	}
	return out
}

const nutsTerm = "nødder"

// disclaimerTerms lists the non tree-nut allergens in disclosure order.
var disclaimerTerms = []struct {
	allergen models.Allergen
	term     string
}{
	{models.AllergenGluten, "gluten"},
	{models.AllergenShellfish, "krebsdyr"},
	{models.AllergenEgg, "æg"},
	{models.AllergenFish, "fisk"},
	{models.AllergenPeanut, "jordnødder"},
	{models.AllergenSoy, "soja"},
	{models.AllergenMilk, "mælk"},
	{models.AllergenCelery, "selleri"},
	{models.AllergenMustard, "sennep"},
	{models.AllergenSesameSeed, "sesam"},
	{models.AllergenSulphurDioxide, "svovldioxid"},
	{models.AllergenLupin, "lupin"},
	{models.AllergenMollusc, "bløddyr"},
}

// BuildAllergenDisclaimer names every allergen at MayContainTraces. Tree nuts
// collapse into one term. Returns "" when nothing may be present as traces.
func BuildAllergenDisclaimer(a models.Allergens) string {
	var terms []string
	for _, nut := range models.TreeNuts {
		if a.Status(nut) == models.AllergenMayContainTraces {
			terms = append(terms, nutsTerm)
			break
		}
	}
	for _, d := range disclaimerTerms {
		if a.Status(d.allergen) == models.AllergenMayContainTraces {
			terms = append(terms, d.term)
		}
	}
	if len(terms) == 0 {
		return ""
	}
	return "Kan indeholde spor af " + joinTerms(terms)
}

// joinTerms joins with ", " and prefixes the last of several terms with "og ".
func joinTerms(terms []string) string {
	if len(terms) == 1 {
		return terms[0]
	}
	last := len(terms) - 1
	return strings.Join(terms[:last], ", ") + ", og " + terms[last]
}
