package models

import "testing"

func TestParseClassification(t *testing.T) {
	tests := []struct {
		input string
		want  Classification
	}{
		{"Færdigvare", ClassificationFinishedProduct},
		{"HF", ClassificationPartialProduct},
		{"Råvare", ClassificationRawMaterial},
		{"Emballage", ClassificationOther},
		{"", ClassificationOther},
		{"råvare", ClassificationOther},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseClassification(tt.input)
			if got != tt.want {
				t.Fatalf("ParseClassification(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if tt.want != ClassificationOther && got.SAPValue() != tt.input {
				t.Fatalf("SAPValue() = %q, want %q", got.SAPValue(), tt.input)
			}
		})
	}
}

func TestClassification_CanBeRoot(t *testing.T) {
	if !ClassificationFinishedProduct.CanBeRoot() || !ClassificationPartialProduct.CanBeRoot() {
		t.Fatal("finished and partial products must be valid roots")
	}
	if ClassificationRawMaterial.CanBeRoot() || ClassificationOther.CanBeRoot() {
		t.Fatal("raw materials and other items must not be roots")
	}
}

func TestParseTreeKind(t *testing.T) {
	if ParseTreeKind("iProductionTree") != TreeKindAssembly {
		t.Fatal("iProductionTree must be an assembly")
	}
	for _, s := range []string{"iNotATree", "iSalesTree", ""} {
		if ParseTreeKind(s) != TreeKindLeaf {
			t.Fatalf("ParseTreeKind(%q) must be a leaf", s)
		}
	}
}

func TestNewItem(t *testing.T) {
	material := &RawMaterial{IngredientsDescription: "sukker"}

	t.Run("raw material with data", func(t *testing.T) {
		item, err := NewItem("1000", "Sukker", TreeKindLeaf, ClassificationRawMaterial, material)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !item.IsRawMaterial() {
			t.Fatal("expected raw material")
		}
		if item.IsAssembly() {
			t.Fatal("leaf must not be an assembly")
		}
	})

	t.Run("raw material without data", func(t *testing.T) {
		if _, err := NewItem("1000", "Sukker", TreeKindLeaf, ClassificationRawMaterial, nil); err == nil {
			t.Fatal("expected error for raw material without data")
		}
	})

	t.Run("partial product with raw material data", func(t *testing.T) {
		if _, err := NewItem("1110", "HF Bar", TreeKindAssembly, ClassificationPartialProduct, material); err == nil {
			t.Fatal("expected error for non raw material with data")
		}
	})

	t.Run("assembly", func(t *testing.T) {
		item, err := NewItem("1110", "HF Bar", TreeKindAssembly, ClassificationPartialProduct, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !item.IsAssembly() || item.IsRawMaterial() {
			t.Fatalf("unexpected kind: %+v", item)
		}
	})
}
