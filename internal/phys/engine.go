package phys

import (
	"errors"
	"math"
)

var (
	// ErrNilBody reports a nil body passed to AddBody.
	ErrNilBody = errors.New("phys: nil body")
	// ErrBodyRegistered reports a duplicate AddBody call for the same body.
	ErrBodyRegistered = errors.New("phys: body already registered")
	// ErrNilHandler reports a nil handler passed to AddHandler.
	ErrNilHandler = errors.New("phys: nil contact handler")
	// ErrEmptyPair reports a handler registration without any type bits.
	ErrEmptyPair = errors.New("phys: empty type pair")
)

// Engine is a minimal circle-overlap collision engine. Bodies are checked
// pairwise in registration order, so contact dispatch is deterministic for a
// given insertion sequence. Entity counts in this game stay in the tens,
// which keeps the quadratic pass well inside the step budget.
type Engine struct {
	bodies   []*Body
	handlers []handlerRegistration
}

type handlerRegistration struct {
	pair    BodyType
	handler ContactHandler
}

// NewEngine constructs an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// AddBody registers a body for contact detection.
func (e *Engine) AddBody(body *Body) error {
	if body == nil {
		return ErrNilBody
	}
	for _, existing := range e.bodies {
		if existing == body {
			return ErrBodyRegistered
		}
	}
	e.bodies = append(e.bodies, body)
	return nil
}

// RemoveBody deregisters a body. Removing an unknown body is a no-op, which
// makes deregistration idempotent for callers tearing entities down.
func (e *Engine) RemoveBody(body *Body) {
	if body == nil {
		return
	}
	for i, existing := range e.bodies {
		if existing == body {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			return
		}
	}
}

// AddHandler registers a contact handler for the union of two type bits.
// A pair is dispatched to the first handler whose mask equals the union of
// the pair's type tags.
func (e *Engine) AddHandler(pair BodyType, handler ContactHandler) error {
	if handler == nil {
		return ErrNilHandler
	}
	if pair == 0 {
		return ErrEmptyPair
	}
	e.handlers = append(e.handlers, handlerRegistration{pair: pair, handler: handler})
	return nil
}

// BodyCount reports the number of registered bodies.
func (e *Engine) BodyCount() int {
	return len(e.bodies)
}

// Step advances the engine by dt seconds: every overlapping pair whose type
// union matches a registered handler produces exactly one handler invocation,
// followed by positional separation unless the handler opted out. Handlers
// run synchronously before Step returns.
func (e *Engine) Step(dt float64) {
	_ = dt // bodies carry no velocity; entities integrate themselves

	bodies := e.bodies
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := orderPair(bodies[i], bodies[j])
			if !pairQualifies(a, b) {
				continue
			}
			handler := e.lookupHandler(a.Type | b.Type)
			if handler == nil {
				continue
			}
			if !circlesOverlap(a, b) {
				continue
			}
			if handler.HandleContact(a, b) == ResolveContact {
				separate(a, b)
			}
		}
	}
}

func (e *Engine) lookupHandler(pair BodyType) ContactHandler {
	for _, reg := range e.handlers {
		if reg.pair == pair {
			return reg.handler
		}
	}
	return nil
}

// orderPair returns the bodies with the lower type bit first. The simulation
// core relies on this to keep the player body in the first slot of every
// handler invocation.
func orderPair(a, b *Body) (*Body, *Body) {
	if b.Type < a.Type {
		return b, a
	}
	return a, b
}

// pairQualifies reports whether either body's collision mask reacts to the
// other's type tag.
func pairQualifies(a, b *Body) bool {
	return a.CollisionMask&b.Type != 0 || b.CollisionMask&a.Type != 0
}

func circlesOverlap(a, b *Body) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	reach := a.Radius + b.Radius
	return dx*dx+dy*dy < reach*reach
}

// separate pushes the pair apart along the center line, splitting the
// penetration depth evenly. Coincident centers are left untouched.
func separate(a, b *Body) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	penetration := a.Radius + b.Radius - dist
	if penetration <= 0 {
		return
	}
	half := penetration / 2
	nx := dx / dist
	ny := dy / dist
	a.X -= nx * half
	a.Y -= ny * half
	b.X += nx * half
	b.Y += ny * half
}

var _ Simulator = (*Engine)(nil)
