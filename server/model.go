package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// PadServer plays the remote controller for any number of connected games.
// All session bookkeeping happens on the Loop goroutine.
type PadServer struct {
	Upgrader *websocket.Upgrader
	// Best is reported as "S <best>" whenever a game announces MENU; NO_BEST
	// keeps the simulator quiet like a controller with nothing stored.
	Best int

	Connects    chan PadConnectRequest
	Disconnects chan *PadSession
	Commands    chan string
	// Received gets every notification read from a game. Nobody has to listen;
	// notifications are dropped when it is full.
	Received chan Notification

	sessions map[uuid.UUID]*PadSession
}

type PadSessionState int

const (
	PS_NEW PadSessionState = iota + 1
	PS_LIVE
	PS_CLOSED
)

// PadSession is one connected game.
type PadSession struct {
	State  PadSessionState
	ID     uuid.UUID
	Server *PadServer
	Conn   *websocket.Conn
	Closed chan struct{}

	MessagesToSend chan string
	done           chan struct{}

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
}
