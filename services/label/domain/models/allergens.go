package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AllergenStatus is the severity of an allergen in an item or product.
// Statuses are totally ordered; combining ingredients takes the maximum.
type AllergenStatus int

const (
	AllergenFreeFrom AllergenStatus = iota
	AllergenMayContainTraces
	AllergenInProduct
)

// Localized status strings used by SAP.
const (
	sapFreeFrom         = "Free from"
	sapMayContainTraces = "May contain traces of"
	sapInProduct        = "In product"
)

// ParseAllergenStatus maps one of the three SAP status strings. Surrounding
// whitespace is ignored; any other value is an error.
func ParseAllergenStatus(s string) (AllergenStatus, error) {
	switch strings.TrimSpace(s) {
	case sapFreeFrom:
		return AllergenFreeFrom, nil
	case sapMayContainTraces:
		return AllergenMayContainTraces, nil
	case sapInProduct:
		return AllergenInProduct, nil
	default:
		return AllergenFreeFrom, fmt.Errorf("unknown allergen status %q", s)
	}
}

// String returns the SAP status text.
func (s AllergenStatus) String() string {
	switch s {
	case AllergenFreeFrom:
		return sapFreeFrom
	case AllergenMayContainTraces:
		return sapMayContainTraces
	case AllergenInProduct:
		return sapInProduct
	default:
		return fmt.Sprintf("AllergenStatus(%d)", int(s))
	}
}

// Max returns the more severe of s and other.
func (s AllergenStatus) Max(other AllergenStatus) AllergenStatus {
	if other > s {
		return other
	}
	return s
}

func (s AllergenStatus) MarshalText() ([]byte, error) {
	if s < AllergenFreeFrom || s > AllergenInProduct {
		return nil, fmt.Errorf("invalid allergen status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *AllergenStatus) UnmarshalText(b []byte) error {
	v, err := ParseAllergenStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Allergen identifies one of the declared allergens.
type Allergen int

const (
	AllergenGluten Allergen = iota
	AllergenShellfish
	AllergenEgg
	AllergenFish
	AllergenPeanut
	AllergenSoy
	AllergenMilk
	AllergenAlmond
	AllergenHazelnut
	AllergenWalnut
	AllergenCashew
	AllergenPecan
	AllergenBrazilNut
	AllergenPistachio
	AllergenMacadamiaNut
	AllergenCelery
	AllergenMustard
	AllergenSesameSeed
	AllergenSulphurDioxide
	AllergenLupin
	AllergenMollusc

	allergenCount
)

var allergenNames = [allergenCount]string{
	AllergenGluten:         "gluten",
	AllergenShellfish:      "shellfish",
	AllergenEgg:            "egg",
	AllergenFish:           "fish",
	AllergenPeanut:         "peanut",
	AllergenSoy:            "soy",
	AllergenMilk:           "milk",
	AllergenAlmond:         "almond",
	AllergenHazelnut:       "hazelnut",
	AllergenWalnut:         "walnut",
	AllergenCashew:         "cashew",
	AllergenPecan:          "pecan",
	AllergenBrazilNut:      "brazilNut",
	AllergenPistachio:      "pistachio",
	AllergenMacadamiaNut:   "macadamiaNut",
	AllergenCelery:         "celery",
	AllergenMustard:        "mustard",
	AllergenSesameSeed:     "sesameSeed",
	AllergenSulphurDioxide: "sulphurDioxide",
	AllergenLupin:          "lupin",
	AllergenMollusc:        "mollusc",
}

// AllAllergens lists every allergen key in declaration order.
var AllAllergens = func() []Allergen {
	all := make([]Allergen, allergenCount)
	for i := range all {
		all[i] = Allergen(i)
	}
	return all
}()

// TreeNuts are the allergens collapsed into one "nuts" term in disclaimers.
var TreeNuts = []Allergen{
	AllergenAlmond,
	AllergenHazelnut,
	AllergenWalnut,
	AllergenCashew,
	AllergenPecan,
	AllergenBrazilNut,
	AllergenPistachio,
	AllergenMacadamiaNut,
}

func (a Allergen) String() string {
	if a < 0 || a >= allergenCount {
		return fmt.Sprintf("Allergen(%d)", int(a))
	}
	return allergenNames[a]
}

// ParseAllergen returns the allergen with the given camelCase key.
func ParseAllergen(name string) (Allergen, error) {
	for i, n := range allergenNames {
		if n == name {
			return Allergen(i), nil
		}
	}
	return 0, fmt.Errorf("unknown allergen %q", name)
}

// Allergens maps every allergen to a status. The zero value is all FreeFrom.
type Allergens [allergenCount]AllergenStatus

// NewAllergens returns an Allergens record with the given overrides; every
// other allergen is FreeFrom.
func NewAllergens(overrides map[Allergen]AllergenStatus) Allergens {
	var a Allergens
	for k, v := range overrides {
		if k >= 0 && k < allergenCount {
			a[k] = v
		}
	}
	return a
}

// Status returns the status of allergen k.
func (a Allergens) Status(k Allergen) AllergenStatus {
	return a[k]
}

// Merge returns the pointwise maximum of a and other.
func (a Allergens) Merge(other Allergens) Allergens {
	for i := range a {
		a[i] = a[i].Max(other[i])
	}
	return a
}

// MarshalJSON encodes the record as an object keyed by allergen name.
func (a Allergens) MarshalJSON() ([]byte, error) {
	m := make(map[string]AllergenStatus, allergenCount)
	for i, s := range a {
		m[allergenNames[i]] = s
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by allergen name. Missing keys stay FreeFrom.
func (a *Allergens) UnmarshalJSON(b []byte) error {
	var m map[string]AllergenStatus
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var out Allergens
	for name, s := range m {
		k, err := ParseAllergen(name)
		if err != nil {
			return err
		}
		out[k] = s
	}
	*a = out
	return nil
}

// MarshalYAML encodes the record as a mapping keyed by allergen name.
func (a Allergens) MarshalYAML() (any, error) {
	m := make(map[string]string, allergenCount)
	for i, s := range a {
		m[allergenNames[i]] = s.String()
	}
	return m, nil
}
