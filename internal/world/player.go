package world

import (
	"drift-and-blast/internal/phys"
)

// Action bits carried by the player input bitmask.
type Action uint8

const (
	ActionMoveLeft Action = 1 << iota
	ActionMoveRight
	ActionShoot
)

// Body type bits used for collision masks.
const (
	bodyTypePlayer phys.BodyType = 1 << iota
	bodyTypeEnemy
	bodyTypeAsteroid
)

// playerState is the singleton player. Created with the world, never
// destroyed independently.
type playerState struct {
	x, y      float64
	hitpoints float64
	speed     float64
	actions   Action
	cooldown  float64
	body      phys.Body
}

func (w *World) initPlayer() {
	w.player = playerState{
		x:         0,
		y:         w.config.Height/2 - playerSpawnOffset,
		hitpoints: PlayerInitialHitpoints,
		speed:     PlayerInitialSpeed,
	}
	w.player.body = phys.Body{
		X:             w.player.x,
		Y:             w.player.y,
		Radius:        BodyRadius,
		Type:          bodyTypePlayer,
		CollisionMask: bodyTypeEnemy | bodyTypeAsteroid,
		Owner:         &w.player,
	}
}

// SetPlayerActions replaces the player's input bitmask. The mask is applied
// by the next Update call.
func (w *World) SetPlayerActions(actions Action) error {
	if w == nil || w.destroyed {
		return ErrWorldDestroyed
	}
	w.player.actions = actions
	return nil
}

// PlayerActions returns the currently held input bitmask.
func (w *World) PlayerActions() Action {
	if w == nil {
		return 0
	}
	return w.player.actions
}

// PlayerHitpoints reports the player's current hitpoints.
func (w *World) PlayerHitpoints() float64 {
	if w == nil {
		return 0
	}
	return w.player.hitpoints
}

// PlayerPosition reports the player's current position.
func (w *World) PlayerPosition() (x, y float64) {
	if w == nil {
		return 0, 0
	}
	return w.player.x, w.player.y
}

// updatePlayer applies held movement actions, advances the shoot cooldown,
// and spawns a projectile when the shoot action is held off cooldown. A
// failed spawn is reported to the caller but does not undo the cooldown
// reset or abort the remaining update steps.
func (w *World) updatePlayer(dt float64) error {
	p := &w.player

	distance := dt * p.speed
	switch {
	case p.actions&ActionMoveLeft != 0:
		p.x -= distance
	case p.actions&ActionMoveRight != 0:
		p.x += distance
	}
	p.body.X = p.x

	p.cooldown -= dt
	if p.actions&ActionShoot != 0 && p.cooldown <= 0 {
		p.cooldown = 1.0 / PlayerShootRate
		if err := w.spawnProjectile(ProjectileDescriptor{
			X:    p.x,
			Y:    p.y,
			VelY: -PlayerProjectileSpeed,
			TTL:  PlayerProjectileTTL,
		}); err != nil {
			return err
		}
	}
	return nil
}
