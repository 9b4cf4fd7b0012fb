package game

import "github.com/zucenko/tiltmaze/model"

// SwipeThreshold is how far, in screen pixels, a drag must travel to count as
// a swipe rather than a tap.
const SwipeThreshold = 40

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// Stroke manages the current drag state of one pointer.
type Stroke struct {
	source StrokeSource

	// initX and initY represents the position when dragging starts.
	initX int
	initY int

	// currentX and currentY represents the current position
	currentX int
	currentY int

	released bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	x, y := s.source.Position()
	s.currentX = x
	s.currentY = y
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

func (s *Stroke) Position() (int, int) {
	return s.currentX, s.currentY
}

func (s *Stroke) PositionDiff() (int, int) {
	dx := s.currentX - s.initX
	dy := s.currentY - s.initY
	return dx, dy
}

// Swipe reports the dominant axis of the drag once it passes SwipeThreshold.
func (s *Stroke) Swipe() (model.Direction, bool) {
	dx, dy := s.PositionDiff()
	ax, ay := abs(dx), abs(dy)
	if ax <= SwipeThreshold && ay <= SwipeThreshold {
		return model.NONE, false
	}
	if ax >= ay {
		if dx > 0 {
			return model.RIGHT, true
		}
		return model.LEFT, true
	}
	if dy > 0 {
		return model.DOWN, true
	}
	return model.UP, true
}

// Strokes tracks every live pointer and turns them into swipe and tap events.
type Strokes struct {
	strokes map[*Stroke]struct{}
}

func NewStrokes() *Strokes {
	return &Strokes{strokes: map[*Stroke]struct{}{}}
}

func (s *Strokes) Add(source StrokeSource) {
	s.strokes[NewStroke(source)] = struct{}{}
}

func (s *Strokes) Len() int {
	return len(s.strokes)
}

// Update advances every stroke. A drag becomes one swipe as soon as it passes
// the threshold; a release short of it becomes a tap.
func (s *Strokes) Update() []Event {
	var events []Event
	for st := range s.strokes {
		st.Update()
		if d, ok := st.Swipe(); ok {
			events = append(events, SwipeEvent(d))
			delete(s.strokes, st)
			continue
		}
		if st.IsReleased() {
			x, y := st.Position()
			events = append(events, TapEvent(x, y))
			delete(s.strokes, st)
		}
	}
	return events
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
