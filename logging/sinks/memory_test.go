package sinks

import (
	"context"
	"testing"

	"drift-and-blast/logging"
)

func TestMemorySinkDetachesFromPublisherBuffers(t *testing.T) {
	sink := NewMemorySink()

	targets := []logging.EntityRef{{ID: "enemy-0", Kind: logging.EntityKindEnemy}}
	extra := map[string]any{"wave": 1}
	event := logging.Event{
		Type:     "combat.damage",
		Tick:     3,
		Targets:  targets,
		Extra:    extra,
		Severity: logging.SeverityInfo,
	}
	if err := sink.Write(event); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	// A publisher reusing its buffers must not reach into the sink.
	targets[0] = logging.EntityRef{ID: "enemy-9", Kind: logging.EntityKindEnemy}
	extra["wave"] = 99

	events := sink.Events()
	if len(events) != 1 {
		t.Fatalf("events: got %d want 1", len(events))
	}
	if got := events[0].Targets[0].ID; got != "enemy-0" {
		t.Fatalf("buffered target: got %s want enemy-0", got)
	}
	if got := events[0].Extra["wave"]; got != 1 {
		t.Fatalf("buffered extra: got %v want 1", got)
	}
}

func TestMemorySinkReset(t *testing.T) {
	sink := NewMemorySink()
	if err := sink.Write(logging.Event{Type: "test.event"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	sink.Reset()
	if got := len(sink.Events()); got != 0 {
		t.Fatalf("events after Reset: got %d want 0", got)
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
