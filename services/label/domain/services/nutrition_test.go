package services

import (
	"errors"
	"testing"

	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

func TestAggregateNutrients_WeightedAverage(t *testing.T) {
	leaves := []models.LeafUsage{
		{Ingredient: rawItem("2001", "r1", models.Nutrients{EnergyKcal: 500, Sugars: 40}, nil), Quantity: 0.02},
		{Ingredient: rawItem("2002", "r2", models.Nutrients{EnergyKcal: 400, Sugars: 20}, nil), Quantity: 0.03},
	}

	got, err := AggregateNutrients(leaves)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(got.EnergyKcal, 440) {
		t.Fatalf("EnergyKcal = %v, want 440", got.EnergyKcal)
	}
	if !approx(got.Sugars, 28) {
		t.Fatalf("Sugars = %v, want 28", got.Sugars)
	}
	if got.Fat != 0 {
		t.Fatalf("Fat = %v, want 0", got.Fat)
	}
}

func TestAggregateNutrients_SingleLeafIsIdentity(t *testing.T) {
	n := models.Nutrients{EnergyKJ: 1800, EnergyKcal: 430, Fat: 25, FattyAcid: 2, Carbohydrate: 40, Sugars: 35, Protein: 8, Salt: 0.01}
	got, err := AggregateNutrients([]models.LeafUsage{{Ingredient: rawItem("2001", "marcipan", n, nil), Quantity: 0.0312}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range models.AllNutrients {
		if !approx(got.Value(k), n.Value(k)) {
			t.Fatalf("%s = %v, want %v", k, got.Value(k), n.Value(k))
		}
	}
}

func TestAggregateNutrients_WithinBounds(t *testing.T) {
	chocolate := models.Nutrients{EnergyKJ: 2200, EnergyKcal: 530, Fat: 35, FattyAcid: 20, Carbohydrate: 50, Sugars: 45, Protein: 5, Salt: 0.02}
	marzipan := models.Nutrients{EnergyKJ: 1800, EnergyKcal: 430, Fat: 25, FattyAcid: 2, Carbohydrate: 40, Sugars: 35, Protein: 8, Salt: 0.01}
	leaves := []models.LeafUsage{
		{Ingredient: rawItem("2001", "mørk chokolade", chocolate, nil), Quantity: 0.0208},
		{Ingredient: rawItem("2002", "marcipan", marzipan, nil), Quantity: 0.0312},
	}

	got, err := AggregateNutrients(leaves)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range models.AllNutrients {
		lo, hi := chocolate.Value(k), marzipan.Value(k)
		if lo > hi {
			lo, hi = hi, lo
		}
		if v := got.Value(k); v < lo-tolerance || v > hi+tolerance {
			t.Fatalf("%s = %v outside [%v, %v]", k, v, lo, hi)
		}
	}
	if !approx(got.EnergyKcal, 530*0.4+430*0.6) {
		t.Fatalf("EnergyKcal = %v", got.EnergyKcal)
	}
}

func TestZeroTotalQuantity(t *testing.T) {
	zero := []models.LeafUsage{
		{Ingredient: rawItem("2001", "sukker", models.Nutrients{}, nil), Quantity: 0},
	}
	for name, leaves := range map[string][]models.LeafUsage{"empty": nil, "zero sum": zero} {
		t.Run(name, func(t *testing.T) {
			if _, err := AggregateNutrients(leaves); !errors.Is(err, labeldomain.ErrZeroTotalQuantity) {
				t.Fatalf("AggregateNutrients: expected ErrZeroTotalQuantity, got %v", err)
			}
			if _, err := BuildDeclaration(leaves); !errors.Is(err, labeldomain.ErrZeroTotalQuantity) {
				t.Fatalf("BuildDeclaration: expected ErrZeroTotalQuantity, got %v", err)
			}
			if TotalQuantity(leaves) != 0 {
				t.Fatal("TotalQuantity must be 0")
			}
		})
	}
}
