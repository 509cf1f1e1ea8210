// Package level loads designer-authored level files and seeds a world from
// them. Levels are plain JSON validated against a generated schema (see
// cmd/schema); the loader applies them through the world's public insertion
// operations only.
package level

import "drift-and-blast/internal/world"

// Definition models the JSON contract for an authored level file.
type Definition struct {
	Name      string          `json:"name" jsonschema:"title=Level name,description=Designer facing identifier for the level"`
	Enemies   []EnemySpawn    `json:"enemies,omitempty" jsonschema:"description=Enemy spawn positions applied in order"`
	Asteroids []AsteroidSpawn `json:"asteroids,omitempty" jsonschema:"description=Asteroid spawns applied in order"`
}

// EnemySpawn places one enemy. Hitpoints and speed are fixed by the world.
type EnemySpawn struct {
	X float64 `json:"x" jsonschema:"description=Spawn x coordinate"`
	Y float64 `json:"y" jsonschema:"description=Spawn y coordinate"`
}

// AsteroidSpawn places one asteroid with its drift velocity and spin.
type AsteroidSpawn struct {
	X        float64 `json:"x" jsonschema:"description=Spawn x coordinate"`
	Y        float64 `json:"y" jsonschema:"description=Spawn y coordinate"`
	VelX     float64 `json:"velX" jsonschema:"description=Velocity x component in units per second"`
	VelY     float64 `json:"velY" jsonschema:"description=Velocity y component in units per second"`
	RotSpeed float64 `json:"rotSpeed" jsonschema:"description=Rotation speed in radians per second"`
}

// Default returns the built-in level used when no file is configured: a
// handful of drifting asteroids and a single enemy above the player.
func Default() Definition {
	return Definition{
		Name: "default",
		Enemies: []EnemySpawn{
			{X: 0, Y: -250},
		},
		Asteroids: []AsteroidSpawn{
			{X: -250, Y: -300, VelX: 12, VelY: 20, RotSpeed: 0.6},
			{X: 250, Y: -350, VelX: -18, VelY: 15, RotSpeed: -0.4},
			{X: 0, Y: -420, VelX: 5, VelY: 25, RotSpeed: 1.1},
		},
	}
}

func (d Definition) descriptorFor(spawn EnemySpawn) world.EnemyDescriptor {
	return world.EnemyDescriptor{X: spawn.X, Y: spawn.Y}
}

func (d Definition) asteroidFor(spawn AsteroidSpawn) world.AsteroidDescriptor {
	return world.AsteroidDescriptor{
		X:        spawn.X,
		Y:        spawn.Y,
		VelX:     spawn.VelX,
		VelY:     spawn.VelY,
		RotSpeed: spawn.RotSpeed,
	}
}
