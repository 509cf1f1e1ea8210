package phys

// BodyType is a bitmask tag describing what kind of entity a body represents.
// The simulation core assigns one bit per entity kind and uses unions of bits
// to select which pairs a contact handler observes.
type BodyType uint32

// Body is the collision representation of a game entity. The engine owns the
// registration bookkeeping; the entity that created the body owns its
// position and writes it back after moving. Owner is an opaque back-reference
// to the owning entity and must stay valid while the body is registered.
type Body struct {
	X, Y          float64
	Radius        float64
	Type          BodyType
	CollisionMask BodyType
	Owner         any
}

// Resolution is the continuation signal a contact handler returns to the
// engine. ResolveContact lets the engine run its own positional resolution
// for the pair; SkipResolution suppresses it.
type Resolution int

const (
	ResolveContact Resolution = iota
	SkipResolution
)

// ContactHandler receives one call per contacting body pair per step. The
// body with the lower type bit is always supplied first. Handlers must not
// register or remove bodies from within the callback.
type ContactHandler interface {
	HandleContact(a, b *Body) Resolution
}

// Simulator is the surface the world core depends on. Engine is the
// in-process implementation; tests substitute scripted fakes.
type Simulator interface {
	AddBody(body *Body) error
	RemoveBody(body *Body)
	AddHandler(pair BodyType, handler ContactHandler) error
	Step(dt float64)
}
