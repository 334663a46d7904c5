package sap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

const (
	fieldItemCode       = "ItemCode"
	fieldItemName       = "ItemName"
	fieldTreeType       = "TreeType"
	fieldClassification = "U_CCF_Type"
	fieldDescriptionDA  = "U_CCF_Ingrediens_DA"
)

// nutrientFields maps nutrients to their user-defined item fields.
var nutrientFields = map[models.Nutrient]string{
	models.NutrientEnergyKJ:     "U_BOYX_Energi",
	models.NutrientEnergyKcal:   "U_BOYX_Energik",
	models.NutrientFat:          "U_BOYX_fedt",
	models.NutrientFattyAcid:    "U_BOYX_fedtsyre",
	models.NutrientCarbohydrate: "U_BOYX_Kulhydrat",
	models.NutrientSugars:       "U_BOYX_sukkerarter",
	models.NutrientProtein:      "U_BOYX_Protein",
	models.NutrientSalt:         "U_BOYX_salt",
}

// allergenFields maps allergens to their user-defined item fields.
var allergenFields = map[models.Allergen]string{
	models.AllergenGluten:         "U_BOYX_gluten",
	models.AllergenShellfish:      "U_BOYX_Krebsdyr",
	models.AllergenEgg:            "U_BOYX_aag",
	models.AllergenFish:           "U_BOYX_fisk",
	models.AllergenPeanut:         "U_BOYX_JN",
	models.AllergenSoy:            "U_BOYX_soja",
	models.AllergenMilk:           "U_BOYX_ML",
	models.AllergenAlmond:         "U_BOYX_mandel",
	models.AllergenHazelnut:       "U_BOYX_hassel",
	models.AllergenWalnut:         "U_BOYX_val",
	models.AllergenCashew:         "U_BOYX_Cashe",
	models.AllergenPecan:          "U_BOYX_Pekan",
	models.AllergenBrazilNut:      "U_BOYX_peka",
	models.AllergenPistachio:      "U_BOYX_Pistacie",
	models.AllergenMacadamiaNut:   "U_BOYX_Queensland",
	models.AllergenCelery:         "U_BOYX_Selleri",
	models.AllergenMustard:        "U_BOYX_Sennep",
	models.AllergenSesameSeed:     "U_BOYX_Sesam",
	models.AllergenSulphurDioxide: "U_BOYX_Svovldioxid",
	models.AllergenLupin:          "U_BOYX_Lupin",
	models.AllergenMollusc:        "U_BOYX_BL",
}

// itemSelect is the $select list of an item request.
var itemSelect = func() string {
	fields := []string{fieldItemCode, fieldItemName, fieldTreeType, fieldClassification}
	for _, k := range models.AllNutrients {
		fields = append(fields, nutrientFields[k])
	}
	for _, k := range models.AllAllergens {
		fields = append(fields, allergenFields[k])
	}
	return strings.Join(append(fields, fieldDescriptionDA), ",")
}()

// itemData is an item as returned by the Service Layer, keyed by field name.
type itemData map[string]json.RawMessage

func (d itemData) str(field string) (string, bool) {
	raw, ok := d[field]
	if !ok || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return strings.TrimSpace(string(raw)), true
	}
	return s, true
}

// mapItem converts Service Layer item data to a domain Item. Label data of a
// raw material is parsed fail-fast.
func mapItem(d itemData) (*models.Item, error) {
	code, _ := d.str(fieldItemCode)
	name, _ := d.str(fieldItemName)
	treeType, _ := d.str(fieldTreeType)
	class, _ := d.str(fieldClassification)

	classification := models.ParseClassification(class)
	var material *models.RawMaterial
	if classification == models.ClassificationRawMaterial {
		m, err := mapRawMaterial(d, code, name)
		if err != nil {
			return nil, err
		}
		material = m
	}

	item, err := models.NewItem(models.ItemCode(code), name, models.ParseTreeKind(treeType), classification, material)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", labeldomain.ErrInvalidItemData, err)
	}
	return item, nil
}

func mapRawMaterial(d itemData, code, name string) (*models.RawMaterial, error) {
	var m models.RawMaterial

	for _, k := range models.AllNutrients {
		field := nutrientFields[k]
		value, ok := d.str(field)
		if !ok || value == "" {
			return nil, fmt.Errorf("%w: item %s (%s) is missing nutrient %s (%s)", labeldomain.ErrInvalidItemData, code, name, k, field)
		}
		v, err := parseDecimal(value)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: item %s (%s) has an invalid nutrient value %q for %s (%s)", labeldomain.ErrInvalidItemData, code, name, value, k, field)
		}
		m.Nutrients.Set(k, v)
	}

	for _, k := range models.AllAllergens {
		field := allergenFields[k]
		value, ok := d.str(field)
		if !ok || value == "" {
			return nil, fmt.Errorf("%w: item %s (%s) is missing allergen %s (%s)", labeldomain.ErrInvalidItemData, code, name, k, field)
		}
		status, err := models.ParseAllergenStatus(value)
		if err != nil {
			return nil, fmt.Errorf("%w: item %s (%s) has an invalid allergen value %q for %s (%s)", labeldomain.ErrInvalidItemData, code, name, value, k, field)
		}
		m.Allergens[k] = status
	}

	desc, ok := d.str(fieldDescriptionDA)
	if !ok || strings.TrimSpace(desc) == "" {
		return nil, fmt.Errorf("%w: item %s (%s) is missing ingredients description for language DA", labeldomain.ErrInvalidItemData, code, name)
	}
	m.IngredientsDescription = desc

	return &m, nil
}

// parseDecimal parses a number that may use a decimal comma.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
}

// decimal is a JSON number that may also arrive as a decimal-comma string.
type decimal float64

func (d *decimal) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := parseDecimal(s)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		*d = decimal(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("invalid decimal %s: %w", b, err)
	}
	*d = decimal(f)
	return nil
}
