package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/bomlabel/services/label/domain/models"
)

// TopicLabelComputed is the Watermill topic published when a label is computed.
const TopicLabelComputed = "label.computed"

// LabelComputedVersion is the current schema version of LabelComputedEvent.
const LabelComputedVersion = 1

// LabelComputedEvent is published after a new label is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicLabelComputed).
type LabelComputedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	LabelID    uuid.UUID `json:"label_id"`
	ItemCode   string    `json:"item_code"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewLabelComputedEvent builds the event for a freshly persisted label.
func NewLabelComputedEvent(label *models.Label) LabelComputedEvent {
	return LabelComputedEvent{
		EventID:    uuid.New(),
		Version:    LabelComputedVersion,
		LabelID:    label.ID,
		ItemCode:   label.ItemCode.String(),
		OccurredAt: label.ComputedAt,
	}
}
