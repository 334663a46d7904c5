package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/bomlabel/pkg/cache"
	"github.com/ghuser/bomlabel/pkg/logger"
	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	"github.com/ghuser/bomlabel/services/label/domain/models"
	"github.com/ghuser/bomlabel/services/label/domain/repositories"
	domainsvcs "github.com/ghuser/bomlabel/services/label/domain/services"
)

// LabelCache is the read-model cache of the latest label per item.
// *pkgcache.LabelCache satisfies it.
type LabelCache interface {
	Get(ctx context.Context, itemCode string) (*pkgcache.CachedLabel, error)
	Set(ctx context.Context, label *pkgcache.CachedLabel) error
}

// LabelService orchestrates label computation and retrieval.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads of the latest label are served from Redis when available.
type LabelService struct {
	items    repositories.ItemLookup
	exploder *domainsvcs.Exploder
	repo     repositories.LabelRepository
	cache    LabelCache
	log      logger.Logger
	metrics  *labelMetrics
}

// NewLabelService returns a LabelService. repo and labelCache may be nil for
// offline use; Compute and Latest then fail and Build still works.
func NewLabelService(
	items repositories.ItemLookup,
	exploder *domainsvcs.Exploder,
	repo repositories.LabelRepository,
	labelCache LabelCache,
	log logger.Logger,
) *LabelService {
	m, err := newLabelMetrics()
	if err != nil {
		log.Warn("label metrics disabled", "error", err)
		m = nil
	}
	return &LabelService{
		items:    items,
		exploder: exploder,
		repo:     repo,
		cache:    labelCache,
		log:      log,
		metrics:  m,
	}
}

// ParseItemCode trims raw and checks it is a fetchable item code.
func ParseItemCode(raw string) (models.ItemCode, error) {
	code := models.ItemCode(strings.TrimSpace(raw))
	if !code.Valid() {
		return "", fmt.Errorf("%w: %q", labeldomain.ErrInvalidItemCode, raw)
	}
	return code, nil
}

// Explode fetches the root item and explodes its product tree. Leaves are
// sorted by item code.
func (s *LabelService) Explode(ctx context.Context, rawCode string) (*models.Item, *models.Explosion, error) {
	code, err := ParseItemCode(rawCode)
	if err != nil {
		return nil, nil, err
	}

	root, err := s.items.FetchItem(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch root item: %w", err)
	}
	if !root.Classification.CanBeRoot() {
		return nil, nil, fmt.Errorf("%w: item %s is %s", labeldomain.ErrInvalidRootKind, code, root.Classification)
	}

	explosion, err := s.exploder.Explode(ctx, root)
	if err != nil {
		s.metrics.recordExplosion(ctx, outcomeFailed, 0, 0)
		return nil, nil, fmt.Errorf("explode %s: %w", code, err)
	}

	outcome := outcomeComplete
	if len(explosion.Skipped) > 0 {
		outcome = outcomePartial
	}
	s.metrics.recordExplosion(ctx, outcome, len(explosion.Leaves), len(explosion.Skipped))

	for _, sk := range explosion.Skipped {
		s.log.WarnContext(ctx, "skipped tree branch",
			"root", code.String(),
			"item_code", sk.ItemCode.String(),
			"quantity", sk.Quantity,
			"error", sk.Err,
		)
	}

	models.SortLeavesByCode(explosion.Leaves)
	return root, explosion, nil
}

// Build computes the label of an item without persisting it.
func (s *LabelService) Build(ctx context.Context, rawCode string) (*models.Label, error) {
	root, explosion, err := s.Explode(ctx, rawCode)
	if err != nil {
		return nil, err
	}

	nutrients, err := domainsvcs.AggregateNutrients(explosion.Leaves)
	if err != nil {
		return nil, fmt.Errorf("aggregate nutrients of %s: %w", root.Code, err)
	}
	allergens := domainsvcs.AggregateAllergens(explosion.Leaves)
	declaration, err := domainsvcs.BuildDeclaration(explosion.Leaves)
	if err != nil {
		return nil, fmt.Errorf("build declaration of %s: %w", root.Code, err)
	}

	return models.NewLabel(root, explosion, nutrients, allergens, declaration), nil
}

// Compute builds and persists the label of an item. The repository publishes
// LabelComputedEvent; the worker archives the label and warms the cache.
func (s *LabelService) Compute(ctx context.Context, rawCode string) (*models.Label, error) {
	if s.repo == nil {
		return nil, errors.New("compute label: no label repository configured")
	}
	label, err := s.Build(ctx, rawCode)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, label); err != nil {
		return nil, fmt.Errorf("save label: %w", err)
	}
	if s.cache != nil {
		s.refresh(ctx, label)
	}
	s.log.InfoContext(ctx, "label computed",
		"item_code", label.ItemCode.String(),
		"label_id", label.ID.String(),
		"leaves", label.LeafCount,
		"skipped", label.SkippedCount,
	)
	return label, nil
}

// Latest returns the most recent label of an item using a read-through cache:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *LabelService) Latest(ctx context.Context, rawCode string) (*models.Label, error) {
	code, err := ParseItemCode(rawCode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, code.String())
		switch {
		case err == nil:
			label, convErr := FromCached(cached)
			if convErr == nil {
				return label, nil
			}
			s.log.WarnContext(ctx, "discarding malformed cached label", "item_code", code.String(), "error", convErr)
		case !errors.Is(err, redis.Nil):
			s.log.WarnContext(ctx, "label cache read failed", "item_code", code.String(), "error", err)
		}
	}

	if s.repo == nil {
		return nil, labeldomain.ErrLabelNotFound
	}
	label, err := s.repo.LatestByItemCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("latest label of %s: %w", code, err)
	}

	if s.cache != nil {
		go s.warm(label)
	}
	return label, nil
}

// refresh replaces the cached read model of the item with label. Failures are
// logged; Postgres stays the source of truth.
func (s *LabelService) refresh(ctx context.Context, label *models.Label) {
	cached, err := ToCached(label)
	if err == nil {
		err = s.cache.Set(ctx, cached)
	}
	if err != nil {
		s.log.WarnContext(ctx, "label cache refresh failed", "item_code", label.ItemCode.String(), "error", err)
	}
}

func (s *LabelService) warm(label *models.Label) {
	cached, err := ToCached(label)
	if err == nil {
		err = s.cache.Set(context.Background(), cached)
	}
	if err != nil {
		s.log.Warn("label cache warm failed", "item_code", label.ItemCode.String(), "error", err)
	}
}

// ToCached converts a label to its Redis read model.
func ToCached(label *models.Label) (*pkgcache.CachedLabel, error) {
	nutrients, err := json.Marshal(label.Nutrients)
	if err != nil {
		return nil, fmt.Errorf("marshal nutrients: %w", err)
	}
	allergens, err := json.Marshal(label.Allergens)
	if err != nil {
		return nil, fmt.Errorf("marshal allergens: %w", err)
	}
	return &pkgcache.CachedLabel{
		ID:           label.ID,
		ItemCode:     label.ItemCode.String(),
		ItemName:     label.ItemName,
		Nutrients:    nutrients,
		Allergens:    allergens,
		Declaration:  label.Declaration,
		LeafCount:    label.LeafCount,
		SkippedCount: label.SkippedCount,
		ComputedAt:   label.ComputedAt,
	}, nil
}

// FromCached converts a Redis read model back to a label.
func FromCached(c *pkgcache.CachedLabel) (*models.Label, error) {
	label := &models.Label{
		ID:           c.ID,
		ItemCode:     models.ItemCode(c.ItemCode),
		ItemName:     c.ItemName,
		Declaration:  c.Declaration,
		LeafCount:    c.LeafCount,
		SkippedCount: c.SkippedCount,
		ComputedAt:   c.ComputedAt,
	}
	if err := json.Unmarshal(c.Nutrients, &label.Nutrients); err != nil {
		return nil, fmt.Errorf("decode cached nutrients: %w", err)
	}
	if err := json.Unmarshal(c.Allergens, &label.Allergens); err != nil {
		return nil, fmt.Errorf("decode cached allergens: %w", err)
	}
	return label, nil
}
