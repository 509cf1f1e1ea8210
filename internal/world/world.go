package world

import (
	"fmt"

	"drift-and-blast/internal/phys"
	"drift-and-blast/internal/telemetry"
	"drift-and-blast/logging"
)

// playerRef identifies the singleton player in published events.
var playerRef = logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer}

// Deps bundles runtime dependencies required to construct a World instance.
// Every field is optional; zero values fall back to the in-process physics
// engine and no-op observability.
type Deps struct {
	Publisher logging.Publisher
	Metrics   telemetry.Metrics
	Physics   phys.Simulator
}

// World owns every gameplay entity and their collision bodies for the whole
// world lifetime. All mutation happens on the single goroutine calling
// Update; no concurrent writer is permitted while an update is in progress.
type World struct {
	config    Config
	sim       phys.Simulator
	publisher logging.Publisher
	metrics   telemetry.Metrics

	player      playerState
	enemies     []enemyState
	asteroids   []*asteroidState
	projectiles []*projectileState

	events      eventQueue
	translator  collisionTranslator
	accumulator float64
	tick        uint64

	destroyed bool
	// fault latches the fatal queue-overflow error; once set, every Update
	// call fails with it.
	fault error
}

// New constructs a world with a registered player body and collision
// handlers for the player/enemy and player/asteroid pairs.
func New(cfg Config, deps Deps) (*World, error) {
	normalized := cfg.normalized()

	sim := deps.Physics
	if sim == nil {
		sim = phys.NewEngine()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}

	w := &World{
		config:    normalized,
		sim:       sim,
		publisher: publisher,
		metrics:   metrics,
		// Full capacity up front: enemy bodies hold pointers into this
		// slice, so it must never reallocate.
		enemies: make([]enemyState, 0, normalized.MaxEnemies),
		events:  newEventQueue(normalized.MaxQueuedEvents),
	}
	w.translator.world = w

	for _, pair := range []phys.BodyType{
		bodyTypePlayer | bodyTypeEnemy,
		bodyTypePlayer | bodyTypeAsteroid,
	} {
		if err := sim.AddHandler(pair, &w.translator); err != nil {
			return nil, fmt.Errorf("register collision handler: %w", err)
		}
	}

	w.initPlayer()
	if err := sim.AddBody(&w.player.body); err != nil {
		return nil, fmt.Errorf("register player body: %w", err)
	}

	return w, nil
}

// Config returns the normalized configuration captured at construction time.
func (w *World) Config() Config {
	if w == nil {
		return Config{}
	}
	return w.config
}

// Tick reports the number of completed Update calls.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Destroy deregisters every live body and rejects all further operations.
// Safe to call twice.
func (w *World) Destroy() {
	if w == nil || w.destroyed {
		return
	}
	w.destroyed = true

	w.sim.RemoveBody(&w.player.body)
	for i := range w.enemies {
		if w.enemies[i].alive {
			w.sim.RemoveBody(&w.enemies[i].body)
		}
	}
	for _, asteroid := range w.asteroids {
		w.sim.RemoveBody(&asteroid.body)
	}
	w.events.drain()
}
