// Package services contains stateless domain services for the label bounded context.
// They operate purely on domain types and the lookup ports, with no infrastructure
// dependencies beyond stdlib and the domain layer.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
	"github.com/ghuser/bomlabel/services/label/domain/repositories"
)

// Exploder flattens a product tree into the raw materials it consumes.
// An Exploder holds no per-call state and is safe for concurrent use.
type Exploder struct {
	items        repositories.ItemLookup
	trees        repositories.TreeLookup
	fetchTimeout time.Duration
}

// NewExploder returns an Exploder backed by the given lookups. A positive
// fetchTimeout bounds every individual item and tree fetch.
func NewExploder(items repositories.ItemLookup, trees repositories.TreeLookup, fetchTimeout time.Duration) *Exploder {
	return &Exploder{items: items, trees: trees, fetchTimeout: fetchTimeout}
}

// pathNode is one assembly on the root-to-entry path of a work entry.
type pathNode struct {
	code   models.ItemCode
	parent *pathNode
}

func (p *pathNode) contains(code models.ItemCode) bool {
	for n := p; n != nil; n = n.parent {
		if n.code == code {
			return true
		}
	}
	return false
}

type workEntry struct {
	code     models.ItemCode
	quantity float64
	path     *pathNode
}

// explosionRun holds the caches of a single Explode call.
type explosionRun struct {
	exploder  *Exploder
	itemCache map[models.ItemCode]*models.Item
	itemErrs  map[models.ItemCode]error
	treeCache map[models.ItemCode]*models.Tree
	treeErrs  map[models.ItemCode]error
	leafIndex map[models.ItemCode]int
	result    *models.Explosion
}

// Explode walks the product tree of root and returns the absolute quantity of
// every raw material needed for one unit of root. A branch that cannot be
// fetched, parsed or followed is dropped and reported in Explosion.Skipped.
//
// Explode fails with ErrInvalidRootKind when root is not a finished or partial
// product, when the root tree cannot be fetched, or when ctx is done.
func (e *Exploder) Explode(ctx context.Context, root *models.Item) (*models.Explosion, error) {
	if root == nil || !root.Classification.CanBeRoot() {
		return nil, labeldomain.ErrInvalidRootKind
	}

	run := &explosionRun{
		exploder:  e,
		itemCache: make(map[models.ItemCode]*models.Item),
		itemErrs:  make(map[models.ItemCode]error),
		treeCache: make(map[models.ItemCode]*models.Tree),
		treeErrs:  make(map[models.ItemCode]error),
		leafIndex: make(map[models.ItemCode]int),
		result:    &models.Explosion{Root: root.Code},
	}

	tree, err := run.tree(ctx, root.Code)
	if err != nil {
		return nil, fmt.Errorf("fetch root tree %s: %w", root.Code, err)
	}

	rootPath := &pathNode{code: root.Code}
	stack := make([]workEntry, 0, len(tree.Lines))
	stack = run.push(stack, tree, 1, rootPath)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !entry.code.Valid() {
			continue
		}

		item, err := run.item(ctx, entry.code)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			run.skip(entry, err)
			continue
		}

		// Expansion and accumulation are independent: a raw material with
		// its own production tree is expanded and also counted as a leaf.
		if item.IsAssembly() {
			if err := run.expand(ctx, &stack, entry, item); err != nil {
				return nil, err
			}
		}
		if item.IsRawMaterial() {
			run.accumulate(item, entry.quantity)
		}
	}

	return run.result, nil
}

// expand pushes the sub-tree of item onto stack. A cycle or a failed tree
// fetch drops the branch. Only a done caller context is returned as an error.
func (r *explosionRun) expand(ctx context.Context, stack *[]workEntry, entry workEntry, item *models.Item) error {
	if entry.path.contains(item.Code) {
		r.skip(entry, labeldomain.ErrCyclicTree)
		return nil
	}
	sub, err := r.tree(ctx, item.Code)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		r.skip(entry, err)
		return nil
	}
	*stack = r.push(*stack, sub, entry.quantity, &pathNode{code: item.Code, parent: entry.path})
	return nil
}

// push appends the lines of tree scaled by factor. Lines with a quantity that
// is negative or not a finite number are reported and not followed.
func (r *explosionRun) push(stack []workEntry, tree *models.Tree, factor float64, path *pathNode) []workEntry {
	for _, line := range tree.Lines {
		entry := workEntry{code: line.ItemCode, quantity: factor * line.Quantity, path: path}
		if line.Quantity < 0 || math.IsNaN(line.Quantity) || math.IsInf(line.Quantity, 0) {
			r.skip(entry, fmt.Errorf("%w: line %s in tree %s has quantity %v", labeldomain.ErrInvalidItemData, line.ItemCode, tree.Code, line.Quantity))
			continue
		}
		stack = append(stack, entry)
	}
	return stack
}

func (r *explosionRun) accumulate(item *models.Item, quantity float64) {
	if i, ok := r.leafIndex[item.Code]; ok {
		r.result.Leaves[i].Quantity += quantity
		return
	}
	r.leafIndex[item.Code] = len(r.result.Leaves)
	r.result.Leaves = append(r.result.Leaves, models.LeafUsage{Ingredient: item, Quantity: quantity})
}

func (r *explosionRun) skip(entry workEntry, err error) {
	r.result.Skipped = append(r.result.Skipped, models.SkippedBranch{
		ItemCode: entry.code,
		Quantity: entry.quantity,
		Err:      err,
	})
}

func (r *explosionRun) item(ctx context.Context, code models.ItemCode) (*models.Item, error) {
	if item, ok := r.itemCache[code]; ok {
		return item, nil
	}
	if err, ok := r.itemErrs[code]; ok {
		return nil, err
	}

	fetchCtx, cancel := r.fetchContext(ctx)
	defer cancel()

	item, err := r.exploder.items.FetchItem(fetchCtx, code)
	if err == nil && item == nil {
		err = labeldomain.ErrItemNotFound
	}
	if err != nil {
		err = fmt.Errorf("fetch item %s: %w", code, err)
		if !errors.Is(err, context.Canceled) {
			r.itemErrs[code] = err
		}
		return nil, err
	}
	r.itemCache[code] = item
	return item, nil
}

func (r *explosionRun) tree(ctx context.Context, code models.ItemCode) (*models.Tree, error) {
	if tree, ok := r.treeCache[code]; ok {
		return tree, nil
	}
	if err, ok := r.treeErrs[code]; ok {
		return nil, err
	}

	fetchCtx, cancel := r.fetchContext(ctx)
	defer cancel()

	tree, err := r.exploder.trees.FetchTree(fetchCtx, code)
	if err == nil && tree == nil {
		err = labeldomain.ErrItemNotFound
	}
	if err != nil {
		err = fmt.Errorf("fetch tree %s: %w", code, err)
		if !errors.Is(err, context.Canceled) {
			r.treeErrs[code] = err
		}
		return nil, err
	}
	r.treeCache[code] = tree
	return tree, nil
}

func (r *explosionRun) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.exploder.fetchTimeout > 0 {
		return context.WithTimeout(ctx, r.exploder.fetchTimeout)
	}
	return context.WithCancel(ctx)
}
