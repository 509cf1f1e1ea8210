package level

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"drift-and-blast/internal/world"
)

var (
	// ErrInvalidSpawn reports a spawn with non-finite coordinates.
	ErrInvalidSpawn = errors.New("level: non-finite spawn value")
)

// Load reads and validates a level file. Unknown fields are rejected so
// typos in authored files fail loudly instead of silently dropping spawns.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read level file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates raw level JSON.
func Parse(data []byte) (Definition, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var def Definition
	if err := decoder.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("decode level: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate checks every spawn for finite values.
func (d Definition) Validate() error {
	for i, spawn := range d.Enemies {
		if !finite(spawn.X, spawn.Y) {
			return fmt.Errorf("%w: enemy %d", ErrInvalidSpawn, i)
		}
	}
	for i, spawn := range d.Asteroids {
		if !finite(spawn.X, spawn.Y, spawn.VelX, spawn.VelY, spawn.RotSpeed) {
			return fmt.Errorf("%w: asteroid %d", ErrInvalidSpawn, i)
		}
	}
	return nil
}

// Apply seeds the world with every spawn in authored order. The first
// insertion failure aborts the seeding; the world keeps the entities added
// so far.
func (d Definition) Apply(w *world.World) error {
	for i, spawn := range d.Enemies {
		if _, err := w.AddEnemy(d.descriptorFor(spawn)); err != nil {
			return fmt.Errorf("add enemy %d: %w", i, err)
		}
	}
	for i, spawn := range d.Asteroids {
		if err := w.AddAsteroid(d.asteroidFor(spawn)); err != nil {
			return fmt.Errorf("add asteroid %d: %w", i, err)
		}
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
