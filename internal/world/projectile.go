package world

import (
	"context"
	"fmt"

	logcombat "drift-and-blast/logging/combat"
)

// ProjectileDescriptor seeds a new projectile.
type ProjectileDescriptor struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VelX float64 `json:"velX"`
	VelY float64 `json:"velY"`
	TTL  float64 `json:"ttl"` // seconds
}

// projectileState carries no collision body: projectiles only integrate
// until their ttl runs out, then freeze in place.
type projectileState struct {
	x, y       float64
	velX, velY float64
	ttl        float64
}

// AddProjectile copies the descriptor into world-owned storage. Fails with
// ErrProjectileCapacity when a projectile limit is configured and reached.
func (w *World) AddProjectile(desc ProjectileDescriptor) error {
	if w == nil || w.destroyed {
		return ErrWorldDestroyed
	}
	return w.insertProjectile(desc)
}

func (w *World) insertProjectile(desc ProjectileDescriptor) error {
	if w.config.MaxProjectiles > 0 && len(w.projectiles) >= w.config.MaxProjectiles {
		return ErrProjectileCapacity
	}
	w.projectiles = append(w.projectiles, &projectileState{
		x:    desc.X,
		y:    desc.Y,
		velX: desc.VelX,
		velY: desc.VelY,
		ttl:  desc.TTL,
	})
	return nil
}

// spawnProjectile inserts a player-fired projectile during the update loop.
func (w *World) spawnProjectile(desc ProjectileDescriptor) error {
	if err := w.insertProjectile(desc); err != nil {
		return fmt.Errorf("spawn projectile: %w", err)
	}
	w.metrics.Add("world_projectiles_fired_total", 1)
	logcombat.ProjectileFired(context.Background(), w.publisher, w.tick, playerRef)
	return nil
}

// ProjectileCount reports the number of stored projectiles, inert included.
func (w *World) ProjectileCount() int {
	if w == nil {
		return 0
	}
	return len(w.projectiles)
}

// updateProjectiles integrates live projectiles and decrements their ttl.
// Once ttl reaches zero a projectile freezes permanently; it is never
// removed or recycled.
func (w *World) updateProjectiles(dt float64) {
	for _, projectile := range w.projectiles {
		if projectile.ttl <= 0 {
			continue
		}
		projectile.x += projectile.velX * dt
		projectile.y += projectile.velY * dt
		projectile.ttl -= dt
	}
}
