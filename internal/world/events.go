package world

// EventType tags a domain event produced during a physics step.
type EventType int

const (
	// EventPlayerHit is reserved for future use; the drain ignores it.
	EventPlayerHit EventType = iota + 1
	EventEnemyHit
	EventAsteroidHit
)

// Event records a qualifying contact. Entity is the struck entity's handle;
// all other context is re-derived from current entity state when the event
// is drained.
type Event struct {
	Type   EventType
	Entity int
}

// eventQueue is an append-only buffer drained in insertion order once per
// tick. Growth is geometric via append; limit bounds how many events a
// single tick may queue before the overflow is treated as fatal.
type eventQueue struct {
	events []Event
	limit  int
}

func newEventQueue(limit int) eventQueue {
	return eventQueue{limit: limit}
}

func (q *eventQueue) push(evt Event) error {
	if q.limit > 0 && len(q.events) >= q.limit {
		return ErrEventQueueOverflow
	}
	q.events = append(q.events, evt)
	return nil
}

// drain empties the queue and returns its contents in insertion order. The
// returned slice is only valid until the next push.
func (q *eventQueue) drain() []Event {
	drained := q.events
	q.events = q.events[:0]
	return drained
}

func (q *eventQueue) len() int {
	return len(q.events)
}
