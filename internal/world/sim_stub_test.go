package world

import (
	"fmt"

	"drift-and-blast/internal/phys"
)

// stubSimulator is a scripted stand-in for the collision engine. Tests drive
// contacts by hand from onStep, which runs once per fixed step in the same
// synchronous position a real engine would invoke handlers from.
type stubSimulator struct {
	bodies   []*phys.Body
	handlers map[phys.BodyType]phys.ContactHandler
	removed  []*phys.Body
	steps    int
	onStep   func(step int)

	addBodyErr error
}

func newStubSimulator() *stubSimulator {
	return &stubSimulator{handlers: make(map[phys.BodyType]phys.ContactHandler)}
}

func (s *stubSimulator) AddBody(body *phys.Body) error {
	if s.addBodyErr != nil {
		return s.addBodyErr
	}
	s.bodies = append(s.bodies, body)
	return nil
}

func (s *stubSimulator) RemoveBody(body *phys.Body) {
	s.removed = append(s.removed, body)
}

func (s *stubSimulator) AddHandler(pair phys.BodyType, handler phys.ContactHandler) error {
	s.handlers[pair] = handler
	return nil
}

func (s *stubSimulator) Step(dt float64) {
	s.steps++
	if s.onStep != nil {
		s.onStep(s.steps)
	}
}

// contact dispatches a scripted contact to the registered handler, player
// body first, mirroring the engine's ordering contract.
func (s *stubSimulator) contact(a, b *phys.Body) {
	handler, ok := s.handlers[a.Type|b.Type]
	if !ok {
		panic(fmt.Sprintf("no handler registered for pair %d", a.Type|b.Type))
	}
	handler.HandleContact(a, b)
}

// removedCount reports how many times the given body was deregistered.
func (s *stubSimulator) removedCount(body *phys.Body) int {
	count := 0
	for _, removed := range s.removed {
		if removed == body {
			count++
		}
	}
	return count
}

var _ phys.Simulator = (*stubSimulator)(nil)
