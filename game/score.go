package game

import (
	"fmt"
	"time"
)

// NoScore is the controller's "nothing stored" value for S reports.
const NoScore = 255

// HighScore is the best completion time. The zero value is unset.
type HighScore struct {
	seconds float64
	set     bool
}

func NewHighScore(seconds float64) HighScore {
	return HighScore{seconds: seconds, set: true}
}

// FromReport converts an S argument; NoScore and anything out of range is unset.
func FromReport(value int) HighScore {
	if value < 0 || value >= NoScore {
		return HighScore{}
	}
	return NewHighScore(float64(value))
}

func (h HighScore) Best() (float64, bool) {
	return h.seconds, h.set
}

// Fold keeps the lower of the stored time and elapsed. An unset score is always
// replaced.
func (h HighScore) Fold(elapsed time.Duration) HighScore {
	s := elapsed.Seconds()
	if !h.set || s < h.seconds {
		return NewHighScore(s)
	}
	return h
}

func (h HighScore) String() string {
	if !h.set {
		return "No Score"
	}
	return fmt.Sprintf("%.1fs", h.seconds)
}
