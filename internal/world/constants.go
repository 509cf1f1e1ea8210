package world

const (
	// TickRate is the nominal update frequency driven by the hub (10–20 Hz).
	TickRate = 15
	// SimulationStep is the fixed physics timestep in seconds. Real frame
	// time is accumulated and consumed in SimulationStep slices.
	SimulationStep = 1.0 / 15

	DefaultWidth  = 800.0
	DefaultHeight = 800.0

	PlayerInitialHitpoints = 100.0
	PlayerInitialSpeed     = 200.0 // units/second
	PlayerShootRate        = 1.0   // projectiles/second
	PlayerProjectileSpeed  = 400.0 // units/second, fired upward
	PlayerProjectileTTL    = 5.0   // seconds

	EnemyInitialHitpoints = 30.0
	EnemySpeed            = 50.0 // units/second
	EnemyCollisionDamage  = 50.0

	// AsteroidCollisionDamage is reserved: asteroid contact currently only
	// notifies and applies no damage.
	AsteroidCollisionDamage = 20.0

	BodyRadius = 40.0

	// steerClamp bounds the enemy steering correction per update.
	steerClamp = 0.5

	// playerSpawnOffset shifts the player spawn up from the vertical center.
	playerSpawnOffset = 50.0

	DefaultMaxEnemies      = 16
	DefaultMaxQueuedEvents = 4096
)
