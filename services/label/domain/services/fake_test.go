package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// fakeCatalog serves items and trees from maps and counts fetches.
type fakeCatalog struct {
	mu        sync.Mutex
	items     map[models.ItemCode]*models.Item
	trees     map[models.ItemCode]*models.Tree
	itemErrs  map[models.ItemCode]error
	block     map[models.ItemCode]bool
	itemFetch map[models.ItemCode]int
	treeFetch map[models.ItemCode]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		items:     make(map[models.ItemCode]*models.Item),
		trees:     make(map[models.ItemCode]*models.Tree),
		itemErrs:  make(map[models.ItemCode]error),
		block:     make(map[models.ItemCode]bool),
		itemFetch: make(map[models.ItemCode]int),
		treeFetch: make(map[models.ItemCode]int),
	}
}

func (f *fakeCatalog) FetchItem(ctx context.Context, code models.ItemCode) (*models.Item, error) {
	f.mu.Lock()
	f.itemFetch[code]++
	blocked := f.block[code]
	err := f.itemErrs[code]
	item, ok := f.items[code]
	f.mu.Unlock()

	if blocked {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("item %s: %w", code, labeldomain.ErrItemNotFound)
	}
	return item, nil
}

func (f *fakeCatalog) FetchTree(_ context.Context, code models.ItemCode) (*models.Tree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.treeFetch[code]++
	tree, ok := f.trees[code]
	if !ok {
		return nil, fmt.Errorf("tree %s: %w", code, labeldomain.ErrItemNotFound)
	}
	return tree, nil
}

func (f *fakeCatalog) addAssembly(t *testing.T, code models.ItemCode, class models.Classification, lines ...models.TreeLine) *models.Item {
	t.Helper()
	item, err := models.NewItem(code, "Assembly "+code.String(), models.TreeKindAssembly, class, nil)
	if err != nil {
		t.Fatalf("NewItem(%s): %v", code, err)
	}
	f.items[code] = item
	f.trees[code] = &models.Tree{Code: code, Lines: lines}
	return item
}

func (f *fakeCatalog) addRaw(t *testing.T, code models.ItemCode, material models.RawMaterial) *models.Item {
	t.Helper()
	item, err := models.NewItem(code, "Raw "+code.String(), models.TreeKindLeaf, models.ClassificationRawMaterial, &material)
	if err != nil {
		t.Fatalf("NewItem(%s): %v", code, err)
	}
	f.items[code] = item
	return item
}

// addRawAssembly registers a raw material that also has a production tree.
func (f *fakeCatalog) addRawAssembly(t *testing.T, code models.ItemCode, lines ...models.TreeLine) *models.Item {
	t.Helper()
	item, err := models.NewItem(code, "Raw "+code.String(), models.TreeKindAssembly, models.ClassificationRawMaterial, &models.RawMaterial{})
	if err != nil {
		t.Fatalf("NewItem(%s): %v", code, err)
	}
	f.items[code] = item
	f.trees[code] = &models.Tree{Code: code, Lines: lines}
	return item
}

func line(code models.ItemCode, qty float64) models.TreeLine {
	return models.TreeLine{ItemCode: code, Quantity: qty}
}

func rawItem(code models.ItemCode, description string, n models.Nutrients, a map[models.Allergen]models.AllergenStatus) *models.Item {
	return &models.Item{
		Code:           code,
		Name:           description,
		TreeKind:       models.TreeKindLeaf,
		Classification: models.ClassificationRawMaterial,
		Material: &models.RawMaterial{
			Nutrients:              n,
			Allergens:              models.NewAllergens(a),
			IngredientsDescription: description,
		},
	}
}

func leafQuantities(leaves []models.LeafUsage) map[models.ItemCode]float64 {
	out := make(map[models.ItemCode]float64, len(leaves))
	for _, l := range leaves {
		out[l.Ingredient.Code] = l.Quantity
	}
	return out
}
