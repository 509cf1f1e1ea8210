package world

// Config tunes world construction. Zero values fall back to the defaults in
// constants.go; MaxProjectiles stays unbounded unless set.
type Config struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	MaxEnemies      int     `json:"maxEnemies"`
	MaxProjectiles  int     `json:"maxProjectiles"`
	MaxQueuedEvents int     `json:"maxQueuedEvents"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	if normalized.Width <= 0 {
		normalized.Width = DefaultWidth
	}
	if normalized.Height <= 0 {
		normalized.Height = DefaultHeight
	}
	if normalized.MaxEnemies <= 0 {
		normalized.MaxEnemies = DefaultMaxEnemies
	}
	if normalized.MaxProjectiles < 0 {
		normalized.MaxProjectiles = 0
	}
	if normalized.MaxQueuedEvents <= 0 {
		normalized.MaxQueuedEvents = DefaultMaxQueuedEvents
	}
	return normalized
}

// Normalized exposes the defaulting rules applied at construction time.
func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		MaxEnemies:      DefaultMaxEnemies,
		MaxQueuedEvents: DefaultMaxQueuedEvents,
	}
}
