package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zucenko/tiltmaze/model"
)

const HTTP_ACCEPTED = 202
const HTTP_BAD_REQUEST = 400
const HTTP_TIMEOUT = 408

const NO_BEST = -1

var (
	ErrUnknownVerb = errors.New("unknown command verb")
	ErrBadArgument = errors.New("command argument must be an integer")
	ErrBusy        = errors.New("pad server busy")
)

var verbs = map[string]struct{}{
	model.CMD_UP:      {},
	model.CMD_DOWN:    {},
	model.CMD_LEFT:    {},
	model.CMD_RIGHT:   {},
	model.CMD_PAUSE:   {},
	model.CMD_UNPAUSE: {},
	model.CMD_RESTART: {},
	model.CMD_MENU:    {},
	model.CMD_DARK:    {},
	model.CMD_SCORE:   {},
}

// FormatCommand builds the protocol line for verb with an optional integer
// argument n.
func FormatCommand(verb, n string) (string, error) {
	verb = model.Normalize(verb)
	if _, ok := verbs[verb]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVerb, verb)
	}
	n = strings.TrimSpace(n)
	if n == "" {
		return verb, nil
	}
	if _, err := strconv.Atoi(n); err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadArgument, n)
	}
	return verb + " " + n, nil
}

func (ps PadSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_LIVE:
		return "LIVE"
	case PS_CLOSED:
		return "CLOSED"
	default:
		return "N/A"
	}
}

type PadConnectRequest struct {
	Conn   *websocket.Conn
	Closed chan struct{}
}

// Notification is one line a game sent to the controller.
type Notification struct {
	Session uuid.UUID
	Event   string
}
