package world

// PlayerView is the read-only player state exposed to presentation.
type PlayerView struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Hitpoints float64 `json:"hitpoints"`
}

type EnemyView struct {
	Handle    int     `json:"handle"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Rotation  float64 `json:"rotation"`
	Hitpoints float64 `json:"hitpoints"`
	Alive     bool    `json:"alive"`
}

type AsteroidView struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type ProjectileView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is an immutable per-frame view of the world, sufficient for
// rendering and UI. Dead enemies stay in the list with Alive=false so
// clients can key entries by handle.
type Snapshot struct {
	Tick        uint64           `json:"tick"`
	Player      PlayerView       `json:"player"`
	Enemies     []EnemyView      `json:"enemies"`
	Asteroids   []AsteroidView   `json:"asteroids"`
	Projectiles []ProjectileView `json:"projectiles"`
}

// Snapshot copies current entity state into view structs. The result shares
// no memory with the world and stays valid across later updates.
func (w *World) Snapshot() Snapshot {
	if w == nil {
		return Snapshot{}
	}

	snapshot := Snapshot{
		Tick: w.tick,
		Player: PlayerView{
			X:         w.player.x,
			Y:         w.player.y,
			Hitpoints: w.player.hitpoints,
		},
	}

	if len(w.enemies) > 0 {
		snapshot.Enemies = make([]EnemyView, 0, len(w.enemies))
		for i := range w.enemies {
			enemy := &w.enemies[i]
			snapshot.Enemies = append(snapshot.Enemies, EnemyView{
				Handle:    enemy.handle,
				X:         enemy.x,
				Y:         enemy.y,
				Rotation:  enemy.rot,
				Hitpoints: enemy.hitpoints,
				Alive:     enemy.alive,
			})
		}
	}

	if len(w.asteroids) > 0 {
		snapshot.Asteroids = make([]AsteroidView, 0, len(w.asteroids))
		for _, asteroid := range w.asteroids {
			snapshot.Asteroids = append(snapshot.Asteroids, AsteroidView{
				X:        asteroid.x,
				Y:        asteroid.y,
				Rotation: asteroid.rot,
			})
		}
	}

	if len(w.projectiles) > 0 {
		snapshot.Projectiles = make([]ProjectileView, 0, len(w.projectiles))
		for _, projectile := range w.projectiles {
			snapshot.Projectiles = append(snapshot.Projectiles, ProjectileView{
				X: projectile.x,
				Y: projectile.y,
			})
		}
	}

	return snapshot
}
