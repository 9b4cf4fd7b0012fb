package game

import "github.com/zucenko/tiltmaze/model"

type EventType int

const (
	EVENT_KEY EventType = iota + 1
	EVENT_SWIPE
	EVENT_TAP
)

// Key is a local key the game reacts to; the window layer maps physical keys
// onto these.
type Key int

const (
	KEY_OTHER Key = iota
	KEY_P
	KEY_ESCAPE
	KEY_UP
	KEY_DOWN
	KEY_LEFT
	KEY_RIGHT
	KEY_A
	KEY_D
	KEY_R
	KEY_M
	KEY_N
	KEY_W
	KEY_DIGIT
)

// Direction of an arrow key, NONE for every other key.
func (k Key) Direction() model.Direction {
	switch k {
	case KEY_UP:
		return model.UP
	case KEY_DOWN:
		return model.DOWN
	case KEY_LEFT:
		return model.LEFT
	case KEY_RIGHT:
		return model.RIGHT
	default:
		return model.NONE
	}
}

// Event is one local input: a key press (Digit set for KEY_DIGIT), a swipe
// (Dir), or a tap at X,Y.
type Event struct {
	Type  EventType
	Key   Key
	Digit int
	Dir   model.Direction
	X, Y  int
}

func KeyEvent(k Key) Event {
	return Event{Type: EVENT_KEY, Key: k}
}

func DigitEvent(n int) Event {
	return Event{Type: EVENT_KEY, Key: KEY_DIGIT, Digit: n}
}

func SwipeEvent(d model.Direction) Event {
	return Event{Type: EVENT_SWIPE, Dir: d}
}

func TapEvent(x, y int) Event {
	return Event{Type: EVENT_TAP, X: x, Y: y}
}
