package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/bomlabel/services/label/domain/events"
	"github.com/ghuser/bomlabel/services/label/domain/models"
)

func TestLabelComputedEvent_JSONFieldNames(t *testing.T) {
	evt := events.LabelComputedEvent{
		EventID:    uuid.New(),
		Version:    1,
		LabelID:    uuid.New(),
		ItemCode:   "1110",
		OccurredAt: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	for _, field := range []string{"event_id", "version", "label_id", "item_code", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}

	var decoded events.LabelComputedEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if decoded.LabelID != evt.LabelID || decoded.ItemCode != evt.ItemCode {
		t.Errorf("decoded %+v, want %+v", decoded, evt)
	}
}

func TestTopicLabelComputed_Value(t *testing.T) {
	if events.TopicLabelComputed != "label.computed" {
		t.Errorf("expected %q, got %q", "label.computed", events.TopicLabelComputed)
	}
}

func TestNewLabelComputedEvent(t *testing.T) {
	label := &models.Label{
		ID:         uuid.New(),
		ItemCode:   "1000",
		ComputedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	evt := events.NewLabelComputedEvent(label)
	if evt.EventID == uuid.Nil {
		t.Error("expected a generated event id")
	}
	if evt.Version != events.LabelComputedVersion {
		t.Errorf("version = %d", evt.Version)
	}
	if evt.LabelID != label.ID || evt.ItemCode != "1000" || !evt.OccurredAt.Equal(label.ComputedAt) {
		t.Errorf("unexpected event %+v", evt)
	}
}
