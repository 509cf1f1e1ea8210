// Package hub drives the simulation at the fixed tick rate and fans world
// snapshots out to subscribed presentation clients. The hub is the only
// writer of the world while the loop runs; client input lands in the player
// action bitmask under the hub lock.
package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"drift-and-blast/internal/net/proto"
	"drift-and-blast/internal/telemetry"
	"drift-and-blast/internal/world"
	"drift-and-blast/logging"
)

const writeWait = 10 * time.Second

// ErrUnknownSubscriber reports a write to an id that is not subscribed.
var ErrUnknownSubscriber = errors.New("hub: unknown subscriber")

// Conn is the subset of a websocket connection the hub writes to. Tests
// substitute in-memory fakes.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Config tunes the tick loop.
type Config struct {
	TickRate        int
	CatchupMaxTicks int
	Logger          telemetry.Logger
	Metrics         telemetry.Metrics
	Clock           logging.Clock
}

// Hub owns the world lock, the subscriber set, and the fixed-rate loop.
type Hub struct {
	mu          sync.Mutex
	world       *world.World
	subscribers map[uint64]*subscriber

	nextID  atomic.Uint64
	cfg     Config
	logger  telemetry.Logger
	metrics telemetry.Metrics
	clock   logging.Clock
	done    chan struct{}
}

type subscriber struct {
	id   uint64
	conn Conn
	mu   sync.Mutex
}

func NewHub(w *world.World, cfg Config) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = logging.SystemClock{}
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = world.TickRate
	}
	if cfg.CatchupMaxTicks <= 0 {
		cfg.CatchupMaxTicks = 4
	}
	return &Hub{
		world:       w,
		subscribers: make(map[uint64]*subscriber),
		cfg:         cfg,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
		done:        make(chan struct{}),
	}
}

// Done is closed when Run returns. Shutdown must wait on it before tearing
// the world down; the loop may still be inside an update when the stop
// signal lands.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// SetActions replaces the player's held action bitmask.
func (h *Hub) SetActions(actions world.Action) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.SetPlayerActions(actions)
}

// Snapshot copies the current world state under the hub lock.
func (h *Hub) Snapshot() world.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.Snapshot()
}

// WorldConfig exposes the normalized world configuration for join payloads.
func (h *Hub) WorldConfig() world.Config {
	return h.world.Config()
}

// Subscribe registers a connection for state broadcasts and returns its id
// together with the current snapshot for the join payload.
func (h *Hub) Subscribe(conn Conn) (uint64, world.Snapshot) {
	id := h.nextID.Add(1)
	sub := &subscriber{id: id, conn: conn}

	h.mu.Lock()
	h.subscribers[id] = sub
	snapshot := h.world.Snapshot()
	h.mu.Unlock()

	return id, snapshot
}

// WriteTo sends a payload to a single subscriber under its write lock, so
// it serializes with concurrent state broadcasts instead of racing them on
// the underlying connection.
func (h *Hub) WriteTo(id uint64, data []byte) error {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	h.mu.Unlock()
	if !ok {
		return ErrUnknownSubscriber
	}
	return sub.write(data)
}

// Unsubscribe drops a connection. Safe to call for unknown ids.
func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		sub.conn.Close()
	}
}

// Run drives the fixed tick loop until stop closes. Wall-clock deltas are
// clamped to CatchupMaxTicks steps so a paused process does not spiral;
// the world's own accumulator handles sub-step remainders.
func (h *Hub) Run(stop <-chan struct{}) {
	defer close(h.done)

	interval := time.Second / time.Duration(h.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	budget := interval.Seconds()
	maxDt := budget * float64(h.cfg.CatchupMaxTicks)
	last := h.clock.Now()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := h.clock.Now()
			dt := now.Sub(last).Seconds()
			last = now
			if dt <= 0 {
				dt = budget
			} else if dt > maxDt {
				dt = maxDt
				h.metrics.Add("hub_clamped_ticks_total", 1)
			}

			if !h.advance(dt, now) {
				return
			}
		}
	}
}

// advance runs one world update and broadcast. Returns false when the world
// reported a fatal condition and the loop must stop.
func (h *Hub) advance(dt float64, now time.Time) bool {
	h.mu.Lock()
	err := h.world.Update(dt)
	snapshot := h.world.Snapshot()
	h.mu.Unlock()

	if err != nil {
		if errors.Is(err, world.ErrEventQueueOverflow) || errors.Is(err, world.ErrWorldDestroyed) {
			h.logger.Printf("simulation halted: %v", err)
			return false
		}
		// Recoverable single-tick failure; the tick still ran.
		h.logger.Printf("tick %d: %v", snapshot.Tick, err)
	}

	h.broadcastState(snapshot, now)
	return true
}

func (h *Hub) broadcastState(snapshot world.Snapshot, now time.Time) {
	message := proto.StateMessage{
		Type:       proto.TypeState,
		ServerTime: now.UnixMilli(),
		Snapshot:   snapshot,
	}
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Printf("failed to marshal state: %v", err)
		return
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if err := sub.write(data); err != nil {
			h.logger.Printf("dropping subscriber %d: %v", sub.id, err)
			h.Unsubscribe(sub.id)
		}
	}
	h.metrics.Add("hub_broadcast_bytes_total", uint64(len(data)*len(subs)))
}

func (sub *subscriber) write(data []byte) error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	type deadlineWriter interface {
		SetWriteDeadline(t time.Time) error
	}
	if dw, ok := sub.conn.(deadlineWriter); ok {
		dw.SetWriteDeadline(time.Now().Add(writeWait))
	}
	// TextMessage per gorilla/websocket; kept as a literal so Conn fakes
	// need no websocket dependency.
	return sub.conn.WriteMessage(1, data)
}
