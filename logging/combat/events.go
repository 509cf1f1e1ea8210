package combat

import (
	"context"

	"drift-and-blast/logging"
)

const (
	// EventDamage is emitted when a contact deals damage to the player.
	EventDamage logging.EventType = "combat.damage"
	// EventDefeat is emitted when an enemy is destroyed.
	EventDefeat logging.EventType = "combat.defeat"
	// EventAsteroidImpact is emitted when the player collides with an
	// asteroid. Notification only; no damage rule is attached.
	EventAsteroidImpact logging.EventType = "combat.asteroid_impact"
	// EventProjectileFired is emitted when the player spawns a projectile.
	EventProjectileFired logging.EventType = "combat.projectile_fired"
)

// DamagePayload captures the amount dealt to a single target.
type DamagePayload struct {
	Amount          float64 `json:"amount"`
	RemainingHealth float64 `json:"remainingHealth"`
}

func Damage(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, amount, remaining float64) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDamage,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  DamagePayload{Amount: amount, RemainingHealth: remaining},
	})
}

func Defeat(ctx context.Context, pub logging.Publisher, tick uint64, target logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDefeat,
		Tick:     tick,
		Actor:    target,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
	})
}

func AsteroidImpact(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAsteroidImpact,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
	})
}

func ProjectileFired(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileFired,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
	})
}
