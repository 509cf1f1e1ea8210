package world

import (
	"context"
	"fmt"
	"math"

	"drift-and-blast/internal/phys"
	"drift-and-blast/logging"
	logcombat "drift-and-blast/logging/combat"
)

// EnemyDescriptor seeds a new enemy. Hitpoints and speed are fixed by the
// world; callers only choose the spawn position.
type EnemyDescriptor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// enemyState lives in the world's fixed-capacity enemy array. The handle is
// the array slot and never moves; a dead enemy keeps its slot with
// alive=false so handles stay stable for the lifetime of the world.
type enemyState struct {
	handle     int
	x, y       float64
	velX, velY float64
	rot        float64
	hitpoints  float64
	speed      float64
	alive      bool
	body       phys.Body
}

// AddEnemy copies the descriptor into world-owned storage and registers the
// enemy's body. The returned handle is the stable array slot. Fails with
// ErrEnemyCapacity once MaxEnemies insertions have occurred, regardless of
// how many enemies have since died; existing entries are never mutated by a
// failed insert.
func (w *World) AddEnemy(desc EnemyDescriptor) (int, error) {
	if w == nil || w.destroyed {
		return -1, ErrWorldDestroyed
	}
	if len(w.enemies) >= w.config.MaxEnemies {
		return -1, ErrEnemyCapacity
	}

	handle := len(w.enemies)
	w.enemies = append(w.enemies, enemyState{
		handle:    handle,
		x:         desc.X,
		y:         desc.Y,
		hitpoints: EnemyInitialHitpoints,
		speed:     EnemySpeed,
		alive:     true,
	})
	enemy := &w.enemies[handle]
	enemy.body = phys.Body{
		X:             enemy.x,
		Y:             enemy.y,
		Radius:        BodyRadius,
		Type:          bodyTypeEnemy,
		CollisionMask: bodyTypePlayer,
		Owner:         enemy,
	}
	if err := w.sim.AddBody(&enemy.body); err != nil {
		w.enemies = w.enemies[:handle]
		return -1, fmt.Errorf("register enemy body: %w", err)
	}
	return handle, nil
}

// EnemyCount reports the total number of insertions, dead entries included.
func (w *World) EnemyCount() int {
	if w == nil {
		return 0
	}
	return len(w.enemies)
}

// EnemyAlive reports whether the enemy behind the handle is still alive.
func (w *World) EnemyAlive(handle int) bool {
	if w == nil || handle < 0 || handle >= len(w.enemies) {
		return false
	}
	return w.enemies[handle].alive
}

// applyEnemyHit consumes one EnemyHit event: fixed damage to the player,
// enemy hitpoints zeroed, and the enemy body deregistered before the drain
// continues. Events for an already-dead enemy are skipped so death stays
// at-most-once no matter how many contacts a tick reports.
func (w *World) applyEnemyHit(handle int) error {
	if handle < 0 || handle >= len(w.enemies) {
		return fmt.Errorf("%w: enemy %d", ErrUnknownEntity, handle)
	}
	enemy := &w.enemies[handle]
	if !enemy.alive {
		return nil
	}

	w.player.hitpoints = Clamp(w.player.hitpoints-EnemyCollisionDamage, 0, PlayerInitialHitpoints)
	enemy.hitpoints = 0
	enemy.alive = false
	w.sim.RemoveBody(&enemy.body)
	w.metrics.Add("world_enemy_defeats_total", 1)

	target := logging.EntityRef{ID: fmt.Sprintf("enemy-%d", handle), Kind: logging.EntityKindEnemy}
	logcombat.Damage(context.Background(), w.publisher, w.tick, target, playerRef, EnemyCollisionDamage, w.player.hitpoints)
	logcombat.Defeat(context.Background(), w.publisher, w.tick, target)
	return nil
}

// updateEnemies advances every living enemy with seek-and-steer: the desired
// velocity points at the player at full speed, the correction toward it is
// clamped to steerClamp per update, and the result is clamped to the enemy's
// max speed. Dead enemies are skipped entirely.
func (w *World) updateEnemies(dt float64) {
	for i := range w.enemies {
		enemy := &w.enemies[i]
		if !enemy.alive {
			continue
		}

		dirX, dirY := normalizeVector(w.player.x-enemy.x, w.player.y-enemy.y)
		desiredX := dirX * enemy.speed
		desiredY := dirY * enemy.speed

		steerX, steerY := clampMagnitude(desiredX-enemy.velX, desiredY-enemy.velY, steerClamp)
		enemy.velX, enemy.velY = clampMagnitude(enemy.velX+steerX, enemy.velY+steerY, enemy.speed)

		enemy.rot = math.Pi/2 - math.Atan2(enemy.velY, enemy.velX)

		enemy.x += enemy.velX * dt
		enemy.y += enemy.velY * dt
		enemy.body.X = enemy.x
		enemy.body.Y = enemy.y
	}
}
