// Package memory provides an in-process item master for offline runs and tests.
package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// Catalog implements repositories.ItemLookup and repositories.TreeLookup from memory.
// It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	items map[models.ItemCode]*models.Item
	trees map[models.ItemCode]*models.Tree
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		items: make(map[models.ItemCode]*models.Item),
		trees: make(map[models.ItemCode]*models.Tree),
	}
}

// AddItem stores item, replacing any item with the same code.
func (c *Catalog) AddItem(item *models.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.Code] = item
}

// AddTree stores tree, replacing any tree with the same code.
func (c *Catalog) AddTree(tree *models.Tree) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees[tree.Code] = tree
}

// FetchItem implements repositories.ItemLookup.
func (c *Catalog) FetchItem(ctx context.Context, code models.ItemCode) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[code]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", code, labeldomain.ErrItemNotFound)
	}
	return item, nil
}

// FetchTree implements repositories.TreeLookup.
func (c *Catalog) FetchTree(ctx context.Context, code models.ItemCode) (*models.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	tree, ok := c.trees[code]
	if !ok {
		return nil, fmt.Errorf("product tree %s: %w", code, labeldomain.ErrItemNotFound)
	}
	return tree, nil
}

// catalogFile is the YAML layout of a catalog. Item types, tree types and
// allergen statuses use the SAP vocabulary.
type catalogFile struct {
	Items []itemEntry `yaml:"items"`
	Trees []treeEntry `yaml:"trees"`
}

type itemEntry struct {
	Code          string            `yaml:"code"`
	Name          string            `yaml:"name"`
	TreeType      string            `yaml:"tree_type"`
	Type          string            `yaml:"type"`
	Nutrients     *models.Nutrients `yaml:"nutrients"`
	Allergens     map[string]string `yaml:"allergens"`
	IngredientsDA string            `yaml:"ingredients_da"`
}

type treeEntry struct {
	Code        string      `yaml:"code"`
	Description string      `yaml:"description"`
	Lines       []lineEntry `yaml:"lines"`
}

type lineEntry struct {
	ItemCode string  `yaml:"item_code"`
	ItemName string  `yaml:"item_name"`
	Quantity float64 `yaml:"quantity"`
}

// LoadCatalogYAML reads a catalog from a YAML file.
func LoadCatalogYAML(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalogYAML(data)
}

// ParseCatalogYAML builds a catalog from YAML data. Raw materials must carry
// non-negative nutrients and a description, and every allergen they declare must be valid.
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := NewCatalog()
	for i, e := range f.Items {
		item, err := e.toItem()
		if err != nil {
			return nil, fmt.Errorf("catalog item %d (%s): %w", i, e.Code, err)
		}
		c.AddItem(item)
	}
	for _, e := range f.Trees {
		tree := &models.Tree{
			Code:        models.ItemCode(e.Code),
			Description: e.Description,
			Lines:       make([]models.TreeLine, 0, len(e.Lines)),
		}
		for _, l := range e.Lines {
			tree.Lines = append(tree.Lines, models.TreeLine{
				ItemCode: models.ItemCode(l.ItemCode),
				ItemName: l.ItemName,
				Quantity: l.Quantity,
			})
		}
		c.AddTree(tree)
	}
	return c, nil
}

func (e itemEntry) toItem() (*models.Item, error) {
	code := models.ItemCode(e.Code)
	if !code.Valid() {
		return nil, labeldomain.ErrInvalidItemCode
	}

	class := models.ParseClassification(e.Type)
	var material *models.RawMaterial
	if class == models.ClassificationRawMaterial {
		if e.Nutrients == nil {
			return nil, fmt.Errorf("%w: raw material without nutrients", labeldomain.ErrInvalidItemData)
		}
		if e.IngredientsDA == "" {
			return nil, fmt.Errorf("%w: raw material without ingredients description", labeldomain.ErrInvalidItemData)
		}
		for _, k := range models.AllNutrients {
			if v := e.Nutrients.Value(k); v < 0 {
				return nil, fmt.Errorf("%w: negative nutrient value %v for %s", labeldomain.ErrInvalidItemData, v, k)
			}
		}
		overrides := make(map[models.Allergen]models.AllergenStatus, len(e.Allergens))
		for name, value := range e.Allergens {
			a, err := models.ParseAllergen(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", labeldomain.ErrInvalidItemData, err)
			}
			s, err := models.ParseAllergenStatus(value)
			if err != nil {
				return nil, fmt.Errorf("%w: allergen %s: %w", labeldomain.ErrInvalidItemData, name, err)
			}
			overrides[a] = s
		}
		material = &models.RawMaterial{
			Nutrients:              *e.Nutrients,
			Allergens:              models.NewAllergens(overrides),
			IngredientsDescription: e.IngredientsDA,
		}
	}

	item, err := models.NewItem(code, e.Name, models.ParseTreeKind(e.TreeType), class, material)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", labeldomain.ErrInvalidItemData, err)
	}
	return item, nil
}
