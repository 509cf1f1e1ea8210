package world

import (
	"drift-and-blast/internal/phys"
)

// collisionTranslator converts qualifying contacts into domain events. It is
// registered with the simulation system for the {player,enemy} and
// {player,asteroid} mask pairs and relies on the engine supplying the player
// body first. It never mutates entity state: consequences are applied when
// the event queue is drained, keeping detection and response separate.
type collisionTranslator struct {
	world *World
}

func (t *collisionTranslator) HandleContact(a, b *phys.Body) phys.Resolution {
	if a.Type != bodyTypePlayer {
		return phys.ResolveContact
	}

	var evt Event
	switch b.Type {
	case bodyTypeEnemy:
		if enemy, ok := b.Owner.(*enemyState); ok {
			evt = Event{Type: EventEnemyHit, Entity: enemy.handle}
		}
	case bodyTypeAsteroid:
		if asteroid, ok := b.Owner.(*asteroidState); ok {
			evt = Event{Type: EventAsteroidHit, Entity: asteroid.handle}
		}
	}

	if evt.Type != 0 {
		if err := t.world.events.push(evt); err != nil {
			// Queue overflow mid-step. Record the fault; Update propagates
			// it before any event is applied.
			t.world.fault = err
		}
	}

	return phys.ResolveContact
}

var _ phys.ContactHandler = (*collisionTranslator)(nil)
