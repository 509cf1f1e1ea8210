// Package proto defines the JSON messages exchanged with presentation
// clients. The simulation never depends on this package; it exists for the
// websocket adapter and its clients.
package proto

import "drift-and-blast/internal/world"

const (
	TypeJoin  = "join"
	TypeState = "state"
	TypeInput = "input"
)

// JoinMessage is sent once after a client connects.
type JoinMessage struct {
	Type     string         `json:"type"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	TickRate int            `json:"tickRate"`
	Snapshot world.Snapshot `json:"snapshot"`
}

// StateMessage broadcasts the per-tick world snapshot.
type StateMessage struct {
	Type       string         `json:"type"`
	ServerTime int64          `json:"serverTime"`
	Snapshot   world.Snapshot `json:"snapshot"`
}

// InputMessage carries the client's currently held action bitmask. The bits
// match world.Action; clients send the whole mask on every change.
type InputMessage struct {
	Type    string `json:"type"`
	Actions uint8  `json:"actions"`
}
