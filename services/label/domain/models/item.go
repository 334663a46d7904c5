package models

import "fmt"

// Classification is the item kind taken from the SAP U_CCF_Type field.
// It is decided once when the item is parsed.
type Classification int

const (
	ClassificationOther Classification = iota
	ClassificationFinishedProduct
	ClassificationPartialProduct
	ClassificationRawMaterial
)

// SAP U_CCF_Type values.
const (
	sapTypeFinishedProduct = "Færdigvare"
	sapTypePartialProduct  = "HF"
	sapTypeRawMaterial     = "Råvare"
)

// ParseClassification maps the SAP free-text item type. Unknown values are ClassificationOther.
func ParseClassification(s string) Classification {
	switch s {
	case sapTypeFinishedProduct:
		return ClassificationFinishedProduct
	case sapTypePartialProduct:
		return ClassificationPartialProduct
	case sapTypeRawMaterial:
		return ClassificationRawMaterial
	default:
		return ClassificationOther
	}
}

// SAPValue returns the U_CCF_Type text for the classification, or "" for Other.
func (c Classification) SAPValue() string {
	switch c {
	case ClassificationFinishedProduct:
		return sapTypeFinishedProduct
	case ClassificationPartialProduct:
		return sapTypePartialProduct
	case ClassificationRawMaterial:
		return sapTypeRawMaterial
	default:
		return ""
	}
}

func (c Classification) String() string {
	switch c {
	case ClassificationFinishedProduct:
		return "finished_product"
	case ClassificationPartialProduct:
		return "partial_product"
	case ClassificationRawMaterial:
		return "raw_material"
	default:
		return "other"
	}
}

// CanBeRoot reports whether an explosion may start from an item of this kind.
func (c Classification) CanBeRoot() bool {
	return c == ClassificationFinishedProduct || c == ClassificationPartialProduct
}

// TreeKind tells whether an item is itself produced from a product tree.
type TreeKind int

const (
	TreeKindLeaf TreeKind = iota
	TreeKindAssembly
)

const sapTreeTypeProduction = "iProductionTree"

// ParseTreeKind maps the SAP TreeType field.
func ParseTreeKind(s string) TreeKind {
	if s == sapTreeTypeProduction {
		return TreeKindAssembly
	}
	return TreeKindLeaf
}

// SAPValue returns the SAP TreeType text.
func (k TreeKind) SAPValue() string {
	if k == TreeKindAssembly {
		return sapTreeTypeProduction
	}
	return "iNotATree"
}

// RawMaterial holds the label data that only raw materials carry.
type RawMaterial struct {
	Nutrients              Nutrients
	Allergens              Allergens
	IngredientsDescription string // Danish
}

// Item is an immutable snapshot of an ERP item.
type Item struct {
	Code           ItemCode
	Name           string
	TreeKind       TreeKind
	Classification Classification
	Material       *RawMaterial // non-nil iff Classification is ClassificationRawMaterial
}

// NewItem constructs an Item, enforcing that material data is present exactly
// when the item is a raw material.
func NewItem(code ItemCode, name string, kind TreeKind, class Classification, material *RawMaterial) (*Item, error) {
	if class == ClassificationRawMaterial && material == nil {
		return nil, fmt.Errorf("raw material %s (%s) has no nutrient, allergen or ingredients data", code, name)
	}
	if class != ClassificationRawMaterial && material != nil {
		return nil, fmt.Errorf("item %s (%s) is %s and cannot carry raw material data", code, name, class)
	}
	return &Item{
		Code:           code,
		Name:           name,
		TreeKind:       kind,
		Classification: class,
		Material:       material,
	}, nil
}

// IsAssembly reports whether the item has its own product tree.
func (i *Item) IsAssembly() bool {
	return i.TreeKind == TreeKindAssembly
}

// IsRawMaterial reports whether the item is a BOM leaf with label data.
func (i *Item) IsRawMaterial() bool {
	return i.Classification == ClassificationRawMaterial && i.Material != nil
}
