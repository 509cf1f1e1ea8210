// Package ws adapts websocket connections onto the hub: it upgrades HTTP
// requests, sends the join payload, and forwards client input messages into
// the player action bitmask.
package ws

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/gorilla/websocket"

	"drift-and-blast/internal/hub"
	"drift-and-blast/internal/net/proto"
	"drift-and-blast/internal/telemetry"
	"drift-and-blast/internal/world"
)

type HandlerConfig struct {
	Logger telemetry.Logger
}

type Handler struct {
	hub      *hub.Hub
	logger   telemetry.Logger
	upgrader websocket.Upgrader
}

func NewHandler(h *hub.Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Handler{
		hub:    h,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed: %v", err)
		return
	}

	id, snapshot := h.hub.Subscribe(conn)

	cfg := h.hub.WorldConfig()
	join := proto.JoinMessage{
		Type:     proto.TypeJoin,
		Width:    cfg.Width,
		Height:   cfg.Height,
		TickRate: world.TickRate,
		Snapshot: snapshot,
	}
	data, err := json.Marshal(join)
	if err != nil {
		h.logger.Printf("failed to marshal join for %d: %v", id, err)
		h.hub.Unsubscribe(id)
		return
	}
	// Through the hub, not the raw conn: once Subscribe returns, the
	// broadcast loop may write to this connection at any moment, and the
	// websocket permits a single writer.
	if err := h.hub.WriteTo(id, data); err != nil {
		h.logger.Printf("failed to send join to %d: %v", id, err)
		h.hub.Unsubscribe(id)
		return
	}

	go h.readLoop(id, conn)
}

// readLoop forwards input messages until the connection drops. Malformed
// messages are logged and skipped; the connection stays up.
func (h *Handler) readLoop(id uint64, conn *websocket.Conn) {
	defer h.hub.Unsubscribe(id)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("subscriber %d read failed: %v", id, err)
			}
			return
		}

		var msg proto.InputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Printf("subscriber %d sent malformed message: %v", id, err)
			continue
		}
		if msg.Type != proto.TypeInput {
			continue
		}
		if err := h.hub.SetActions(world.Action(msg.Actions)); err != nil {
			h.logger.Printf("subscriber %d input rejected: %v", id, err)
			return
		}
	}
}
