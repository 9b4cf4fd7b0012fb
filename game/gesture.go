package game

import (
	"fmt"

	"github.com/zucenko/tiltmaze/model"
)

// GestureStreak is how many same-direction signals confirm a choice on the
// win screen.
const GestureStreak = 10

type Transition int

const (
	TRANSITION_NONE Transition = iota
	TRANSITION_MENU
	TRANSITION_NEXT_LEVEL
)

func (t Transition) Name() string {
	switch t {
	case TRANSITION_NONE:
		return "NONE"
	case TRANSITION_MENU:
		return "MENU"
	case TRANSITION_NEXT_LEVEL:
		return "NEXT_LEVEL"
	default:
		return fmt.Sprintf("N/A(%d)", t)
	}
}

// GestureTracker counts consecutive LEFT or RIGHT signals on the win screen.
// Anything else wipes the streak.
type GestureTracker struct {
	last  model.Direction
	count int
}

func (g *GestureTracker) Signal(d model.Direction) Transition {
	if d != model.LEFT && d != model.RIGHT {
		g.Reset()
		return TRANSITION_NONE
	}
	if d == g.last {
		g.count++
	} else {
		g.last = d
		g.count = 1
	}
	if g.count < GestureStreak {
		return TRANSITION_NONE
	}
	g.Reset()
	if d == model.LEFT {
		return TRANSITION_MENU
	}
	return TRANSITION_NEXT_LEVEL
}

func (g *GestureTracker) Reset() {
	g.last = model.NONE
	g.count = 0
}

// Progress is the current streak direction and length.
func (g *GestureTracker) Progress() (model.Direction, int) {
	return g.last, g.count
}
