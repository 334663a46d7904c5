package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/bomlabel/pkg/logger"
	"github.com/ghuser/bomlabel/pkg/storage"
	domainevents "github.com/ghuser/bomlabel/services/label/domain/events"
	"github.com/ghuser/bomlabel/services/label/domain/models"
	"github.com/ghuser/bomlabel/services/label/domain/repositories"
	domainsvcs "github.com/ghuser/bomlabel/services/label/domain/services"
)

// Archive stores label documents. *storage.LabelArchive satisfies it.
type Archive interface {
	Put(ctx context.Context, key string, body []byte) error
}

// LabelDocument is the archived JSON form of a label.
type LabelDocument struct {
	ID           uuid.UUID        `json:"id"`
	ItemCode     string           `json:"item_code"`
	ItemName     string           `json:"item_name"`
	Nutrients    models.Nutrients `json:"nutrients"`
	Allergens    models.Allergens `json:"allergens"`
	Disclaimer   string           `json:"disclaimer"`
	Declaration  string           `json:"declaration"`
	LeafCount    int              `json:"leaf_count"`
	SkippedCount int              `json:"skipped_count"`
	ComputedAt   time.Time        `json:"computed_at"`
}

// NewLabelDocument converts label to its archived form.
func NewLabelDocument(label *models.Label) LabelDocument {
	return LabelDocument{
		ID:           label.ID,
		ItemCode:     label.ItemCode.String(),
		ItemName:     label.ItemName,
		Nutrients:    label.Nutrients,
		Allergens:    label.Allergens,
		Disclaimer:   domainsvcs.BuildAllergenDisclaimer(label.Allergens),
		Declaration:  label.Declaration,
		LeafCount:    label.LeafCount,
		SkippedCount: label.SkippedCount,
		ComputedAt:   label.ComputedAt,
	}
}

// LabelProjector consumes label.computed events in the worker: it archives the
// label document and warms the read-model cache. Either sink may be nil.
type LabelProjector struct {
	repo    repositories.LabelRepository
	archive Archive
	cache   LabelCache
	log     logger.Logger
}

// NewLabelProjector returns a LabelProjector.
func NewLabelProjector(repo repositories.LabelRepository, archive Archive, labelCache LabelCache, log logger.Logger) *LabelProjector {
	return &LabelProjector{repo: repo, archive: archive, cache: labelCache, log: log}
}

// Handle processes one event. It must stay idempotent: the bus redelivers on error,
// and a redelivered event overwrites the same archive key.
//
// Archive failures are returned so the event is retried. Cache warming is best-effort.
func (p *LabelProjector) Handle(ctx context.Context, evt domainevents.LabelComputedEvent) error {
	label, err := p.repo.GetByID(ctx, evt.LabelID)
	if err != nil {
		return fmt.Errorf("load label %s: %w", evt.LabelID, err)
	}

	if p.archive != nil {
		doc := NewLabelDocument(label)
		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal label document: %w", err)
		}
		key := storage.LabelKey(label.ItemCode.String(), label.ID.String())
		if err := p.archive.Put(ctx, key, body); err != nil {
			return fmt.Errorf("archive label %s: %w", label.ID, err)
		}
		p.log.InfoContext(ctx, "label archived", "item_code", label.ItemCode.String(), "key", key)
	}

	if p.cache != nil {
		cached, err := ToCached(label)
		if err == nil {
			err = p.cache.Set(ctx, cached)
		}
		if err != nil {
			p.log.WarnContext(ctx, "cache warm failed for label.computed",
				"item_code", label.ItemCode.String(), "label_id", label.ID.String(), "error", err)
		}
	}
	return nil
}
