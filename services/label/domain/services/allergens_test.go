package services

import (
	"testing"

	"github.com/ghuser/bomlabel/services/label/domain/models"
)

func TestAggregateAllergens(t *testing.T) {
	leaves := []models.LeafUsage{
		{Ingredient: rawItem("2001", "r1", models.Nutrients{}, map[models.Allergen]models.AllergenStatus{models.AllergenSoy: models.AllergenInProduct}), Quantity: 0.02},
		{Ingredient: rawItem("2002", "r2", models.Nutrients{}, map[models.Allergen]models.AllergenStatus{models.AllergenAlmond: models.AllergenInProduct}), Quantity: 0.03},
	}

	got := AggregateAllergens(leaves)
	for _, k := range models.AllAllergens {
		want := models.AllergenFreeFrom
		if k == models.AllergenSoy || k == models.AllergenAlmond {
			want = models.AllergenInProduct
		}
		if got.Status(k) != want {
			t.Fatalf("%s = %v, want %v", k, got.Status(k), want)
		}
	}
}

func TestAggregateAllergens_OrderIndependentAndIdempotent(t *testing.T) {
	a := rawItem("2001", "a", models.Nutrients{}, map[models.Allergen]models.AllergenStatus{
		models.AllergenMilk: models.AllergenMayContainTraces,
		models.AllergenEgg:  models.AllergenInProduct,
	})
	b := rawItem("2002", "b", models.Nutrients{}, map[models.Allergen]models.AllergenStatus{
		models.AllergenMilk:   models.AllergenInProduct,
		models.AllergenGluten: models.AllergenMayContainTraces,
	})
	c := rawItem("2003", "c", models.Nutrients{}, nil)

	forward := AggregateAllergens([]models.LeafUsage{{Ingredient: a}, {Ingredient: b}, {Ingredient: c}})
	backward := AggregateAllergens([]models.LeafUsage{{Ingredient: c}, {Ingredient: b}, {Ingredient: a}})
	twice := AggregateAllergens([]models.LeafUsage{{Ingredient: a}, {Ingredient: b}, {Ingredient: c}, {Ingredient: a}, {Ingredient: b}, {Ingredient: c}})

	if forward != backward || forward != twice {
		t.Fatalf("aggregation depends on order or multiplicity: %v %v %v", forward, backward, twice)
	}
	if forward.Status(models.AllergenMilk) != models.AllergenInProduct {
		t.Fatalf("milk = %v", forward.Status(models.AllergenMilk))
	}
}

func TestAggregateAllergens_SingleLeafIsIdentity(t *testing.T) {
	item := rawItem("2001", "a", models.Nutrients{}, map[models.Allergen]models.AllergenStatus{models.AllergenLupin: models.AllergenMayContainTraces})
	if got := AggregateAllergens([]models.LeafUsage{{Ingredient: item, Quantity: 1}}); got != item.Material.Allergens {
		t.Fatalf("got %v, want %v", got, item.Material.Allergens)
	}
}

func TestBuildAllergenDisclaimer(t *testing.T) {
	traces := models.AllergenMayContainTraces
	tests := []struct {
		name string
		in   map[models.Allergen]models.AllergenStatus
		want string
	}{
		{"none", nil, ""},
		{"in product only", map[models.Allergen]models.AllergenStatus{models.AllergenMilk: models.AllergenInProduct}, ""},
		{"single", map[models.Allergen]models.AllergenStatus{models.AllergenMilk: traces}, "Kan indeholde spor af mælk"},
		{"two", map[models.Allergen]models.AllergenStatus{models.AllergenGluten: traces, models.AllergenMilk: traces}, "Kan indeholde spor af gluten, og mælk"},
		{
			"tree nuts collapse",
			map[models.Allergen]models.AllergenStatus{models.AllergenHazelnut: traces, models.AllergenPistachio: traces},
			"Kan indeholde spor af nødder",
		},
		{
			"nuts first then fixed order",
			map[models.Allergen]models.AllergenStatus{models.AllergenMilk: traces, models.AllergenGluten: traces, models.AllergenWalnut: traces},
			"Kan indeholde spor af nødder, gluten, og mælk",
		},
		{
			"peanut stays separate",
			map[models.Allergen]models.AllergenStatus{models.AllergenPeanut: traces, models.AllergenAlmond: traces},
			"Kan indeholde spor af nødder, og jordnødder",
		},
		{
			"peanut alone is not a tree nut",
			map[models.Allergen]models.AllergenStatus{models.AllergenPeanut: traces},
			"Kan indeholde spor af jordnødder",
		},
		{
			"tree nut in product is not disclosed",
			map[models.Allergen]models.AllergenStatus{models.AllergenAlmond: models.AllergenInProduct, models.AllergenSesameSeed: traces},
			"Kan indeholde spor af sesam",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildAllergenDisclaimer(models.NewAllergens(tt.in)); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
