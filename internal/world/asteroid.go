package world

import (
	"context"
	"fmt"

	"drift-and-blast/internal/phys"
	"drift-and-blast/logging"
	logcombat "drift-and-blast/logging/combat"
)

// AsteroidDescriptor seeds a new asteroid.
type AsteroidDescriptor struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VelX     float64 `json:"velX"`
	VelY     float64 `json:"velY"`
	RotSpeed float64 `json:"rotSpeed"` // radians/second
}

type asteroidState struct {
	handle     int
	x, y       float64
	velX, velY float64
	rot        float64
	rotSpeed   float64
	body       phys.Body
}

// AddAsteroid copies the descriptor into world-owned storage and registers
// the asteroid's body. Asteroids are never removed, so the handle is the
// insertion index.
func (w *World) AddAsteroid(desc AsteroidDescriptor) error {
	if w == nil || w.destroyed {
		return ErrWorldDestroyed
	}

	asteroid := &asteroidState{
		handle:   len(w.asteroids),
		x:        desc.X,
		y:        desc.Y,
		velX:     desc.VelX,
		velY:     desc.VelY,
		rotSpeed: desc.RotSpeed,
	}
	asteroid.body = phys.Body{
		X:             asteroid.x,
		Y:             asteroid.y,
		Radius:        BodyRadius,
		Type:          bodyTypeAsteroid,
		CollisionMask: bodyTypePlayer,
		Owner:         asteroid,
	}
	if err := w.sim.AddBody(&asteroid.body); err != nil {
		return fmt.Errorf("register asteroid body: %w", err)
	}
	w.asteroids = append(w.asteroids, asteroid)
	return nil
}

// AsteroidCount reports the number of registered asteroids.
func (w *World) AsteroidCount() int {
	if w == nil {
		return 0
	}
	return len(w.asteroids)
}

// applyAsteroidHit consumes one AsteroidHit event. Notification only: the
// impact is published and counted, no hitpoints change anywhere.
func (w *World) applyAsteroidHit(handle int) error {
	if handle < 0 || handle >= len(w.asteroids) {
		return fmt.Errorf("%w: asteroid %d", ErrUnknownEntity, handle)
	}
	w.metrics.Add("world_asteroid_impacts_total", 1)
	target := logging.EntityRef{ID: fmt.Sprintf("asteroid-%d", handle), Kind: logging.EntityKindAsteroid}
	logcombat.AsteroidImpact(context.Background(), w.publisher, w.tick, target, playerRef)
	return nil
}

// updateAsteroids integrates position and rotation; rotation wraps into
// [0, 2π) for either sign of rotation speed.
func (w *World) updateAsteroids(dt float64) {
	for _, asteroid := range w.asteroids {
		asteroid.x += asteroid.velX * dt
		asteroid.y += asteroid.velY * dt
		asteroid.rot = wrapAngle(asteroid.rot + asteroid.rotSpeed*dt)
		asteroid.body.X = asteroid.x
		asteroid.body.Y = asteroid.y
	}
}
