package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/bomlabel/pkg/database"
	"github.com/ghuser/bomlabel/pkg/events"
	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
	domainevents "github.com/ghuser/bomlabel/services/label/domain/events"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

const (
	insertLabelSQL = `
INSERT INTO labels (id, item_code, item_name, nutrients, allergens, declaration, leaf_count, skipped_count, computed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	selectLabelColumns = `
SELECT id, item_code, item_name, nutrients, allergens, declaration, leaf_count, skipped_count, computed_at
FROM labels`

	getLabelByIDSQL = selectLabelColumns + `
WHERE id = $1`

	latestLabelByItemCodeSQL = selectLabelColumns + `
WHERE item_code = $1
ORDER BY computed_at DESC
LIMIT 1`
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// LabelRepository implements repositories.LabelRepository against PostgreSQL.
type LabelRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewLabelRepository returns a LabelRepository backed by the given connection pool
// and event bus. A nil bus disables event publishing.
func NewLabelRepository(db *database.Database, bus *events.EventBus) *LabelRepository {
	return &LabelRepository{db: db, bus: bus}
}

// Save persists label and publishes a LabelComputedEvent within the same transaction.
func (r *LabelRepository) Save(ctx context.Context, label *models.Label) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := insertLabel(ctx, tx, label); err != nil {
			return err
		}
		if r.bus != nil {
			if err := r.publishComputed(ctx, tx, label); err != nil {
				return fmt.Errorf("publish label computed: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a label by id. Returns ErrLabelNotFound if none exists.
func (r *LabelRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Label, error) {
	return scanLabel(r.db.DB().QueryRowContext(ctx, getLabelByIDSQL, id))
}

// LatestByItemCode returns the most recently computed label for code.
// Returns ErrLabelNotFound if the item has never been labelled.
func (r *LabelRepository) LatestByItemCode(ctx context.Context, code models.ItemCode) (*models.Label, error) {
	return scanLabel(r.db.DB().QueryRowContext(ctx, latestLabelByItemCodeSQL, code.String()))
}

func insertLabel(ctx context.Context, q querier, label *models.Label) error {
	nutrients, err := json.Marshal(label.Nutrients)
	if err != nil {
		return fmt.Errorf("marshal nutrients: %w", err)
	}
	allergens, err := json.Marshal(label.Allergens)
	if err != nil {
		return fmt.Errorf("marshal allergens: %w", err)
	}
	if _, err := q.ExecContext(ctx, insertLabelSQL,
		label.ID,
		label.ItemCode.String(),
		label.ItemName,
		nutrients,
		allergens,
		label.Declaration,
		label.LeafCount,
		label.SkippedCount,
		label.ComputedAt,
	); err != nil {
		return fmt.Errorf("insert label: %w", err)
	}
	return nil
}

func scanLabel(row *sql.Row) (*models.Label, error) {
	var (
		label      models.Label
		code       string
		nutrients  []byte
		allergens  []byte
		computedAt time.Time
	)
	if err := row.Scan(
		&label.ID,
		&code,
		&label.ItemName,
		&nutrients,
		&allergens,
		&label.Declaration,
		&label.LeafCount,
		&label.SkippedCount,
		&computedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, labeldomain.ErrLabelNotFound
		}
		return nil, fmt.Errorf("query label: %w", err)
	}
	if err := json.Unmarshal(nutrients, &label.Nutrients); err != nil {
		return nil, fmt.Errorf("decode nutrients: %w", err)
	}
	if err := json.Unmarshal(allergens, &label.Allergens); err != nil {
		return nil, fmt.Errorf("decode allergens: %w", err)
	}
	label.ItemCode = models.ItemCode(code)
	label.ComputedAt = computedAt.UTC()
	return &label, nil
}

func (r *LabelRepository) publishComputed(ctx context.Context, tx *sql.Tx, label *models.Label) error {
	event := domainevents.NewLabelComputedEvent(label)
	msg, err := events.NewJSONMessage(ctx, event.EventID.String(), event.Version, event)
	if err != nil {
		return err
	}
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicLabelComputed, msg)
}
