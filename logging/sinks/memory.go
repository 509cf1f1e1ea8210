package sinks

import (
	"context"
	"sync"

	"drift-and-blast/logging"
)

// MemorySink buffers events in order. Used by tests to assert on the event
// stream without standing up a real sink.
type MemorySink struct {
	mu     sync.RWMutex
	events []logging.Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{events: make([]logging.Event, 0)}
}

func (s *MemorySink) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, cloneForBuffer(event))
	return nil
}

// cloneForBuffer detaches the slices and maps a publisher may reuse, so
// buffered events stay stable after Write returns.
func cloneForBuffer(event logging.Event) logging.Event {
	if len(event.Targets) > 0 {
		event.Targets = append([]logging.EntityRef(nil), event.Targets...)
	}
	if len(event.Extra) > 0 {
		extra := make(map[string]any, len(event.Extra))
		for k, v := range event.Extra {
			extra[k] = v
		}
		event.Extra = extra
	}
	return event
}

func (s *MemorySink) Events() []logging.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]logging.Event, len(s.events))
	copy(copied, s.events)
	return copied
}

func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
}

func (s *MemorySink) Close(context.Context) error {
	return nil
}
