package conn

import (
	"time"

	"github.com/leighmacdonald/dota-tui/internal/gsi"
)

type Status int

const (
	StatusConnecting Status = iota
	StatusConnected
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		fallthrough
	default:
		return "connecting"
	}
}

// State is the connection lifecycle as shown to the user.
type State struct {
	Status Status
	// ReconnectIn is the visible countdown, in seconds, while Reconnecting is set.
	ReconnectIn      int
	Reconnecting     bool
	HasEverConnected bool
	Endpoint         string
}

// Snapshot is the latest projected game state. Values are never mutated after being published.
type Snapshot struct {
	Raw        gsi.Object
	Teams      []gsi.TeamView
	Match      gsi.MatchInfo
	ReceivedAt time.Time
}

// Receiver accepts raw frames from any source.
type Receiver interface {
	Receive(frame []byte)
}

// Sink is notified of every accepted snapshot, in receive order.
type Sink interface {
	Record(raw gsi.Object, receivedAt time.Time)
}
