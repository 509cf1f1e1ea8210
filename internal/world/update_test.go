package world

import (
	"errors"
	"math"
	"testing"

	"drift-and-blast/internal/telemetry"
)

func TestUpdateStepCountIsSplitInvariant(t *testing.T) {
	// Every split of the same total must land on the same number of fixed
	// steps; leftover sub-step time carries across calls. The deltas are
	// exact binary fractions so the accumulated totals compare exactly.
	splits := map[string][]float64{
		"single":    {2.0},
		"even":      {0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25},
		"irregular": {0.5, 0.25, 1.0, 0.25},
	}

	const want = 30 // 2.0 seconds at 15 steps/second

	for name, deltas := range splits {
		w, stub := newStubWorld(t, Config{}, Deps{})
		for _, dt := range deltas {
			if err := w.Update(dt); err != nil {
				t.Fatalf("%s: Update(%v) returned error: %v", name, dt, err)
			}
		}
		if stub.steps != want {
			t.Fatalf("%s: got %d steps want %d", name, stub.steps, want)
		}
	}
}

func TestUpdateCarriesSubStepRemainder(t *testing.T) {
	w, stub := newStubWorld(t, Config{}, Deps{})

	// Two deltas below the step threshold accumulate without stepping.
	for i := 0; i < 2; i++ {
		if err := w.Update(0.03125); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
	}
	if stub.steps != 0 {
		t.Fatalf("stepped before accumulating a full step: got %d steps", stub.steps)
	}

	// The third delta pushes the accumulator past one step but not two.
	if err := w.Update(0.0625); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if stub.steps != 1 {
		t.Fatalf("got %d steps want 1", stub.steps)
	}
}

func TestUpdateMetersStepsThroughCounters(t *testing.T) {
	counters := telemetry.NewCounters()
	stub := newStubSimulator()
	w, err := New(Config{}, Deps{Physics: stub, Metrics: counters})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := w.Update(1.0); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got := counters.Value("world_sim_steps_total"); got != uint64(stub.steps) {
		t.Fatalf("step counter: got %d want %d", got, stub.steps)
	}
	if got := counters.Value("world_sim_steps_total"); got != 15 {
		t.Fatalf("step counter after 1s: got %d want 15", got)
	}
}

func TestPlayerMovementPrefersLeftWhenBothHeld(t *testing.T) {
	w, _ := newStubWorld(t, Config{}, Deps{})

	if err := w.SetPlayerActions(ActionMoveLeft | ActionMoveRight); err != nil {
		t.Fatalf("SetPlayerActions returned error: %v", err)
	}
	if err := w.Update(0.1); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	x, _ := w.PlayerPosition()
	want := -0.1 * PlayerInitialSpeed
	if math.Abs(x-want) > 1e-9 {
		t.Fatalf("player x: got %v want %v", x, want)
	}
	if w.player.body.X != x {
		t.Fatalf("player body out of sync: body %v entity %v", w.player.body.X, x)
	}
}

func TestShootCooldownLimitsFireRate(t *testing.T) {
	w, _ := newStubWorld(t, Config{}, Deps{})

	if err := w.SetPlayerActions(ActionShoot); err != nil {
		t.Fatalf("SetPlayerActions returned error: %v", err)
	}

	// First update fires immediately; the shot half a second later is still
	// inside the one-second cooldown window.
	for i, want := range []int{1, 1, 2} {
		if err := w.Update(0.5); err != nil {
			t.Fatalf("Update %d returned error: %v", i, err)
		}
		if got := w.ProjectileCount(); got != want {
			t.Fatalf("projectiles after update %d: got %d want %d", i, got, want)
		}
	}

	snapshot := w.Snapshot()
	if len(snapshot.Projectiles) != 2 {
		t.Fatalf("snapshot projectiles: got %d want 2", len(snapshot.Projectiles))
	}
}

func TestPlayerProjectileFiresUpward(t *testing.T) {
	w, _ := newStubWorld(t, Config{}, Deps{})

	if err := w.SetPlayerActions(ActionShoot); err != nil {
		t.Fatalf("SetPlayerActions returned error: %v", err)
	}
	if err := w.Update(0); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if w.ProjectileCount() != 1 {
		t.Fatalf("projectiles: got %d want 1", w.ProjectileCount())
	}

	projectile := w.projectiles[0]
	px, py := w.PlayerPosition()
	if projectile.x != px || projectile.y != py {
		t.Fatalf("projectile spawn: got (%v, %v) want player position (%v, %v)", projectile.x, projectile.y, px, py)
	}
	if projectile.velY != -PlayerProjectileSpeed || projectile.velX != 0 {
		t.Fatalf("projectile velocity: got (%v, %v) want (0, %v)", projectile.velX, projectile.velY, -PlayerProjectileSpeed)
	}
	if projectile.ttl != PlayerProjectileTTL {
		t.Fatalf("projectile ttl: got %v want %v", projectile.ttl, PlayerProjectileTTL)
	}
}

func TestProjectileCapacityFailureIsRecoverable(t *testing.T) {
	w, _ := newStubWorld(t, Config{MaxProjectiles: 1}, Deps{})

	if _, err := w.AddEnemy(EnemyDescriptor{X: 500, Y: 500}); err != nil {
		t.Fatalf("AddEnemy returned error: %v", err)
	}
	if err := w.SetPlayerActions(ActionShoot); err != nil {
		t.Fatalf("SetPlayerActions returned error: %v", err)
	}

	if err := w.Update(0); err != nil {
		t.Fatalf("first shot returned error: %v", err)
	}

	enemyBefore := w.enemies[0]
	if err := w.Update(1.5); !errors.Is(err, ErrProjectileCapacity) {
		t.Fatalf("second shot: got %v want ErrProjectileCapacity", err)
	}

	// The failed spawn did not abort the rest of the tick: the enemy still
	// steered and moved, and the world keeps updating afterwards.
	if w.enemies[0].x == enemyBefore.x && w.enemies[0].y == enemyBefore.y {
		t.Fatalf("enemy did not move on the failed-spawn tick")
	}
	if err := w.SetPlayerActions(0); err != nil {
		t.Fatalf("SetPlayerActions returned error: %v", err)
	}
	if err := w.Update(SimulationStep); err != nil {
		t.Fatalf("Update after recoverable failure returned error: %v", err)
	}
}

func TestProjectileFreezesAtZeroTTL(t *testing.T) {
	w, _ := newStubWorld(t, Config{}, Deps{})

	if err := w.AddProjectile(ProjectileDescriptor{VelX: 100, TTL: 0.1}); err != nil {
		t.Fatalf("AddProjectile returned error: %v", err)
	}

	if err := w.Update(0.2); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	frozen := w.Snapshot().Projectiles[0]

	for i := 0; i < 3; i++ {
		if err := w.Update(0.2); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
	}

	after := w.Snapshot().Projectiles[0]
	if after != frozen {
		t.Fatalf("inert projectile moved: got %+v want %+v", after, frozen)
	}
	if w.ProjectileCount() != 1 {
		t.Fatalf("inert projectile removed: got %d want 1", w.ProjectileCount())
	}
}

func TestEnemySteeringNeverExceedsMaxSpeed(t *testing.T) {
	w, _ := newStubWorld(t, Config{}, Deps{})

	handle, err := w.AddEnemy(EnemyDescriptor{X: 400, Y: 350})
	if err != nil {
		t.Fatalf("AddEnemy returned error: %v", err)
	}
	// Seed a velocity well over the limit; one update must clamp it back.
	w.enemies[handle].velX = 3 * EnemySpeed
	w.enemies[handle].velY = -2 * EnemySpeed

	for i := 0; i < 50; i++ {
		if err := w.Update(SimulationStep); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		enemy := &w.enemies[handle]
		speed := math.Hypot(enemy.velX, enemy.velY)
		if speed > EnemySpeed+1e-9 {
			t.Fatalf("update %d: speed %v exceeds limit %v", i, speed, EnemySpeed)
		}
	}
}

func TestEnemySteeringConvergesOnPlayerHeading(t *testing.T) {
	w, _ := newStubWorld(t, Config{}, Deps{})

	// Enemy to the right of the player at the same height; the desired
	// velocity is (-EnemySpeed, 0). Zero dt updates apply steering without
	// moving anyone, so the geometry stays fixed while velocity converges.
	handle, err := w.AddEnemy(EnemyDescriptor{X: 400, Y: 350})
	if err != nil {
		t.Fatalf("AddEnemy returned error: %v", err)
	}
	for i := 0; i < 200; i++ {
		if err := w.Update(0); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
	}

	enemy := &w.enemies[handle]
	if math.Abs(enemy.velX+EnemySpeed) > 1e-6 || math.Abs(enemy.velY) > 1e-6 {
		t.Fatalf("velocity: got (%v, %v) want (%v, 0)", enemy.velX, enemy.velY, -EnemySpeed)
	}

	wantRot := math.Pi/2 - math.Atan2(enemy.velY, enemy.velX)
	if math.Abs(enemy.rot-wantRot) > 1e-9 {
		t.Fatalf("rotation: got %v want %v", enemy.rot, wantRot)
	}
}

func TestDeadEnemiesSkipSteering(t *testing.T) {
	w, _ := newStubWorld(t, Config{}, Deps{})

	handle, err := w.AddEnemy(EnemyDescriptor{X: 400, Y: 350})
	if err != nil {
		t.Fatalf("AddEnemy returned error: %v", err)
	}
	if err := w.applyEnemyHit(handle); err != nil {
		t.Fatalf("applyEnemyHit returned error: %v", err)
	}

	before := w.enemies[handle]
	if err := w.Update(SimulationStep); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	after := w.enemies[handle]

	if before.x != after.x || before.y != after.y || before.velX != after.velX || before.velY != after.velY {
		t.Fatalf("dead enemy mutated: before %+v after %+v", before, after)
	}
}

func TestAsteroidRotationWrapsBothDirections(t *testing.T) {
	w, _ := newStubWorld(t, Config{}, Deps{})

	if err := w.AddAsteroid(AsteroidDescriptor{X: 100, Y: 100, VelX: 10, RotSpeed: 3 * math.Pi}); err != nil {
		t.Fatalf("AddAsteroid returned error: %v", err)
	}
	if err := w.AddAsteroid(AsteroidDescriptor{X: 200, Y: 200, RotSpeed: -1}); err != nil {
		t.Fatalf("AddAsteroid returned error: %v", err)
	}

	if err := w.Update(1.0); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if got, want := w.asteroids[0].rot, math.Pi; math.Abs(got-want) > 1e-9 {
		t.Fatalf("forward wrap: got %v want %v", got, want)
	}
	if got, want := w.asteroids[1].rot, 2*math.Pi-1; math.Abs(got-want) > 1e-9 {
		t.Fatalf("backward wrap: got %v want %v", got, want)
	}
	if got, want := w.asteroids[0].x, 110.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("asteroid drift: got %v want %v", got, want)
	}
}
