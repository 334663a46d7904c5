package models

import (
	"encoding/json"
	"testing"
)

func TestParseAllergenStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    AllergenStatus
		wantErr bool
	}{
		{"Free from", AllergenFreeFrom, false},
		{"May contain traces of", AllergenMayContainTraces, false},
		{"In product", AllergenInProduct, false},
		{"  In product ", AllergenInProduct, false},
		{"in product", 0, true},
		{"Yes", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAllergenStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAllergenStatus(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("ParseAllergenStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAllergenStatus_Ordering(t *testing.T) {
	if !(AllergenFreeFrom < AllergenMayContainTraces && AllergenMayContainTraces < AllergenInProduct) {
		t.Fatal("severities must be ordered FreeFrom < MayContainTraces < InProduct")
	}
	if got := AllergenMayContainTraces.Max(AllergenFreeFrom); got != AllergenMayContainTraces {
		t.Fatalf("Max = %v", got)
	}
	if got := AllergenMayContainTraces.Max(AllergenInProduct); got != AllergenInProduct {
		t.Fatalf("Max = %v", got)
	}
}

func TestNewAllergens_DefaultsToFreeFrom(t *testing.T) {
	a := NewAllergens(map[Allergen]AllergenStatus{AllergenSoy: AllergenInProduct})
	for _, k := range AllAllergens {
		want := AllergenFreeFrom
		if k == AllergenSoy {
			want = AllergenInProduct
		}
		if a.Status(k) != want {
			t.Fatalf("%s: got %v, want %v", k, a.Status(k), want)
		}
	}
	if len(AllAllergens) != 21 {
		t.Fatalf("expected 21 allergen keys, got %d", len(AllAllergens))
	}
}

func TestAllergens_Merge(t *testing.T) {
	a := NewAllergens(map[Allergen]AllergenStatus{AllergenSoy: AllergenInProduct, AllergenMilk: AllergenMayContainTraces})
	b := NewAllergens(map[Allergen]AllergenStatus{AllergenSoy: AllergenMayContainTraces, AllergenAlmond: AllergenInProduct})

	got := a.Merge(b)
	want := NewAllergens(map[Allergen]AllergenStatus{
		AllergenSoy:    AllergenInProduct,
		AllergenMilk:   AllergenMayContainTraces,
		AllergenAlmond: AllergenInProduct,
	})
	if got != want {
		t.Fatalf("Merge = %v, want %v", got, want)
	}
	if a.Status(AllergenAlmond) != AllergenFreeFrom {
		t.Fatal("Merge must not modify its receiver")
	}
}

func TestAllergens_JSON(t *testing.T) {
	a := NewAllergens(map[Allergen]AllergenStatus{AllergenBrazilNut: AllergenMayContainTraces})

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map: %v", err)
	}
	if raw["brazilNut"] != "May contain traces of" {
		t.Fatalf("brazilNut = %q in %s", raw["brazilNut"], data)
	}
	if raw["gluten"] != "Free from" {
		t.Fatalf("gluten = %q in %s", raw["gluten"], data)
	}

	var decoded Allergens
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != a {
		t.Fatalf("decoded %v, want %v", decoded, a)
	}

	if err := json.Unmarshal([]byte(`{"coconut":"In product"}`), &decoded); err == nil {
		t.Fatal("expected error for unknown allergen key")
	}
}
