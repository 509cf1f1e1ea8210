package world

import (
	"fmt"
	"math"
)

// Update advances the world by dt seconds of real time.
//
// Order per invocation: fixed-step physics (which may queue events through
// the collision translator), a full FIFO drain of those events, then player
// input, enemy steering, asteroid and projectile kinematics using the real
// dt. Every collision consequence from this tick is therefore visible to the
// rest of the same tick.
//
// A projectile-spawn failure is recoverable: the remaining steps still run
// and the error is returned afterwards. An event-queue overflow is fatal:
// the world latches the error and every later call fails with it.
func (w *World) Update(dt float64) error {
	if w == nil || w.destroyed {
		return ErrWorldDestroyed
	}
	if w.fault != nil {
		return w.fault
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	w.tick++

	// Fixed-step advancement. Leftover sub-step time stays in the
	// accumulator and carries over to the next call, never dropped.
	w.accumulator += dt
	for w.accumulator >= SimulationStep {
		w.sim.Step(SimulationStep)
		w.accumulator -= SimulationStep
		w.metrics.Add("world_sim_steps_total", 1)
	}
	if w.fault != nil {
		// The queue overflowed while stepping; applying a truncated drain
		// would desynchronize gameplay state, so nothing is applied.
		return w.fault
	}

	w.drainEvents()

	var deferred error
	if err := w.updatePlayer(dt); err != nil {
		deferred = err
	}
	w.updateEnemies(dt)
	w.updateAsteroids(dt)
	w.updateProjectiles(dt)

	return deferred
}

// drainEvents applies the tick's queued events in insertion order and leaves
// the queue empty. Unknown handles are counted and skipped; they indicate a
// translator bug, not a recoverable game state.
func (w *World) drainEvents() {
	drained := w.events.drain()
	for i := range drained {
		evt := drained[i]
		var err error
		switch evt.Type {
		case EventEnemyHit:
			err = w.applyEnemyHit(evt.Entity)
		case EventAsteroidHit:
			err = w.applyAsteroidHit(evt.Entity)
		case EventPlayerHit:
			// Reserved; nothing queues it yet.
		}
		if err != nil {
			w.metrics.Add("world_event_errors_total", 1)
		}
	}
	w.metrics.Add("world_events_drained_total", uint64(len(drained)))
}
