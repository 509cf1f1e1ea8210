package world

import "errors"

var (
	// ErrWorldDestroyed rejects operations on a world after Destroy.
	ErrWorldDestroyed = errors.New("world: destroyed")
	// ErrInvalidDelta rejects Update calls with a negative or non-finite dt.
	ErrInvalidDelta = errors.New("world: invalid delta time")
	// ErrEnemyCapacity reports that the enemy array has seen its maximum
	// number of insertions. Dead enemies keep their slots, so capacity is
	// total ever inserted.
	ErrEnemyCapacity = errors.New("world: enemy capacity reached")
	// ErrProjectileCapacity reports that the configured projectile limit is
	// reached. Recoverable; only the spawn in question is lost.
	ErrProjectileCapacity = errors.New("world: projectile capacity reached")
	// ErrEventQueueOverflow reports that the event queue exceeded its
	// configured bound mid-tick. Fatal: the drain can no longer be trusted
	// to apply every collision consequence, so the world refuses further
	// updates instead of continuing with a truncated queue.
	ErrEventQueueOverflow = errors.New("world: event queue overflow")
	// ErrUnknownEntity reports an event handle that resolves to no entity.
	ErrUnknownEntity = errors.New("world: unknown entity handle")
)
