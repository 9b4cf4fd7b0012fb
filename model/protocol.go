package model

import (
	"strconv"
	"strings"
)

// inbound verbs, sent by the remote controller
const (
	CMD_UP      = "UP"
	CMD_DOWN    = "DOWN"
	CMD_LEFT    = "LEFT"
	CMD_RIGHT   = "RIGHT"
	CMD_PAUSE   = "PAUSE"
	CMD_UNPAUSE = "UNPAUSE"
	CMD_RESTART = "RESTART"
	CMD_MENU    = "MENU"
	CMD_DARK    = "DARK"
	CMD_SCORE   = "S"
)

// outbound notifications, fire-and-forget
const (
	EVENT_RUMBLE = "RUMBLE"
	EVENT_VIC    = "VIC"
	EVENT_LEVEL  = "LEVEL"
	EVENT_MENU   = "MENU"
)

// Command is one parsed protocol line.
type Command struct {
	Verb string
	Arg  int
}

// Direction is NONE unless the verb is a movement verb.
func (c Command) Direction() Direction {
	return DirectionOf(c.Verb)
}

func (c Command) String() string {
	if c.Arg == 1 {
		return c.Verb
	}
	return c.Verb + " " + strconv.Itoa(c.Arg)
}

// Normalize trims and upper-cases a raw line the way the channel does on receipt.
func Normalize(line string) string {
	return strings.ToUpper(strings.TrimSpace(line))
}

// ParseCommand splits a line into verb and optional integer argument. ok is false
// for empty lines, more than two tokens or a non-numeric argument.
func ParseCommand(line string) (cmd Command, ok bool) {
	parts := strings.Fields(Normalize(line))
	switch len(parts) {
	case 1:
		return Command{Verb: parts[0], Arg: 1}, true
	case 2:
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{}, false
		}
		return Command{Verb: parts[0], Arg: n}, true
	default:
		return Command{}, false
	}
}
