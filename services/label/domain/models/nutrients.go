package models

// Nutrient identifies one field of Nutrients.
type Nutrient int

const (
	NutrientEnergyKJ Nutrient = iota
	NutrientEnergyKcal
	NutrientFat
	NutrientFattyAcid
	NutrientCarbohydrate
	NutrientSugars
	NutrientProtein
	NutrientSalt
)

// AllNutrients lists every nutrient in declaration order.
var AllNutrients = []Nutrient{
	NutrientEnergyKJ,
	NutrientEnergyKcal,
	NutrientFat,
	NutrientFattyAcid,
	NutrientCarbohydrate,
	NutrientSugars,
	NutrientProtein,
	NutrientSalt,
}

var nutrientNames = [...]string{
	NutrientEnergyKJ:     "energyKj",
	NutrientEnergyKcal:   "energyKcal",
	NutrientFat:          "fat",
	NutrientFattyAcid:    "fattyAcid",
	NutrientCarbohydrate: "carbohydrate",
	NutrientSugars:       "sugars",
	NutrientProtein:      "protein",
	NutrientSalt:         "salt",
}

func (n Nutrient) String() string {
	if n < 0 || int(n) >= len(nutrientNames) {
		return "unknown"
	}
	return nutrientNames[n]
}

// Nutrients are nutritional values per 100 g. Energy is in kJ and kcal, the rest in grams.
type Nutrients struct {
	EnergyKJ     float64 `json:"energy_kj" yaml:"energy_kj"`
	EnergyKcal   float64 `json:"energy_kcal" yaml:"energy_kcal"`
	Fat          float64 `json:"fat" yaml:"fat"`
	FattyAcid    float64 `json:"fatty_acid" yaml:"fatty_acid"`
	Carbohydrate float64 `json:"carbohydrate" yaml:"carbohydrate"`
	Sugars       float64 `json:"sugars" yaml:"sugars"`
	Protein      float64 `json:"protein" yaml:"protein"`
	Salt         float64 `json:"salt" yaml:"salt"`
}

// Value returns the value of nutrient k.
func (n Nutrients) Value(k Nutrient) float64 {
	if p := n.field(k); p != nil {
		return *p
	}
	return 0
}

// Set assigns v to nutrient k.
func (n *Nutrients) Set(k Nutrient, v float64) {
	if p := n.field(k); p != nil {
		*p = v
	}
}

func (n *Nutrients) field(k Nutrient) *float64 {
	switch k {
	case NutrientEnergyKJ:
		return &n.EnergyKJ
	case NutrientEnergyKcal:
		return &n.EnergyKcal
	case NutrientFat:
		return &n.Fat
	case NutrientFattyAcid:
		return &n.FattyAcid
	case NutrientCarbohydrate:
		return &n.Carbohydrate
	case NutrientSugars:
		return &n.Sugars
	case NutrientProtein:
		return &n.Protein
	case NutrientSalt:
		return &n.Salt
	default:
		return nil
	}
}
