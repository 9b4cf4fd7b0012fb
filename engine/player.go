package engine

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/tiltmaze/model"
)

var (
	ErrMoving           = errors.New("player is already moving")
	ErrInvalidCount     = errors.New("move count must be at least 1")
	ErrInvalidDirection = errors.New("direction must be a cardinal unit vector")
)

const (
	StepTicks  = 12 // eased ticks per grid cell
	TrailCap   = 20
	TrailEvery = 3

	BounceTicks = 12
	BounceDecay = .75
	BounceKick  = 5.

	BounceCooldown = 300 * time.Millisecond
	RumbleCooldown = 2 * time.Second
	SuppressFor    = 2 * time.Second
)

// Remote receives the haptic cue and drops queued commands after a hit.
type Remote interface {
	Send(event string)
	Flush()
}

type Vec struct {
	X, Y float64
}

// Player is the single moving piece of a level. It is owned by the game loop
// and not safe for concurrent use.
type Player struct {
	maze   *model.Maze
	clock  clock.Clock
	remote Remote

	pos     model.Cell
	display Vec

	path       []model.Cell
	start      model.Cell
	target     model.Cell
	progress   int
	totalSteps int

	willHitWall bool
	wallDir     model.Direction

	trail []Vec

	bounce      Vec
	bounceTicks int
	lastBounce  time.Time
	lastRumble  time.Time
	ignoreUntil time.Time
}

func NewPlayer(maze *model.Maze, start model.Cell, clk clock.Clock, remote Remote) *Player {
	return &Player{
		maze:    maze,
		clock:   clk,
		remote:  remote,
		pos:     start,
		start:   start,
		target:  start,
		display: Vec{X: float64(start.Col), Y: float64(start.Row)},
		trail:   make([]Vec, 0, TrailCap+1),
	}
}

// QueueMoves walks up to count cells in d and starts animating the resulting
// path. A move blocked on its very first step triggers collision feedback
// immediately; a move that runs into a wall later defers it to arrival.
func (p *Player) QueueMoves(d model.Direction, count int) error {
	if p.Moving() {
		return ErrMoving
	}
	if count < 1 {
		return ErrInvalidCount
	}
	if !d.Valid() {
		return ErrInvalidDirection
	}
	path, hit := p.maze.Walk(p.pos, d, count)
	if len(path) == 1 {
		p.HandleWallCollision(d)
		return nil
	}
	p.path = path
	p.start = p.pos
	p.target = path[len(path)-1]
	p.totalSteps = len(path) - 1
	p.progress = 0
	p.willHitWall = hit
	p.wallDir = model.NONE
	if hit {
		p.wallDir = d
	}
	return nil
}

// Update advances the active path by one tick. It reports true exactly once,
// on the tick the player comes to rest on the goal.
func (p *Player) Update() bool {
	if len(p.path) == 0 {
		return false
	}
	p.progress++
	total := p.totalSteps * StepTicks

	if p.progress < total {
		t := float64(ease.OutCubic(float32(p.progress), 0, 1, float32(total)))
		p.display = Vec{
			X: float64(p.start.Col) + float64(p.target.Col-p.start.Col)*t,
			Y: float64(p.start.Row) + float64(p.target.Row-p.start.Row)*t,
		}
		if p.progress%TrailEvery == 0 {
			p.pushTrail(p.display)
		}
		return false
	}

	p.display = Vec{X: float64(p.target.Col), Y: float64(p.target.Row)}
	p.pos = p.target
	p.path = nil
	if p.willHitWall {
		p.HandleWallCollision(p.wallDir)
		p.willHitWall = false
		p.wallDir = model.NONE
	}
	return p.maze.Kind(p.pos) == model.GOAL
}

func (p *Player) pushTrail(v Vec) {
	p.trail = append(p.trail, v)
	if len(p.trail) > TrailCap {
		copy(p.trail, p.trail[1:])
		p.trail = p.trail[:TrailCap]
	}
}

// UpdateBounce decays the bounce offset by one tick.
func (p *Player) UpdateBounce() {
	if p.bounceTicks <= 0 {
		return
	}
	p.bounceTicks--
	p.bounce.X *= BounceDecay
	p.bounce.Y *= BounceDecay
	if p.bounceTicks == 0 {
		p.bounce = Vec{}
	}
}

// HandleWallCollision fires the two rate-limited effects of a wall hit: the
// visual bounce and the rumble cue, which also opens the suppression window.
func (p *Player) HandleWallCollision(d model.Direction) {
	now := p.clock.Now()
	if p.lastBounce.IsZero() || now.Sub(p.lastBounce) >= BounceCooldown {
		dx, dy := d.Vector()
		p.bounce = Vec{X: -float64(dx) * BounceKick, Y: -float64(dy) * BounceKick}
		p.bounceTicks = BounceTicks
		p.lastBounce = now
	}
	if p.lastRumble.IsZero() || now.Sub(p.lastRumble) >= RumbleCooldown {
		p.remote.Send(model.EVENT_RUMBLE)
		p.lastRumble = now
		p.ignoreUntil = now.Add(SuppressFor)
		p.remote.Flush()
		log.Debugf("wall hit %s at %v, rumble", d.Name(), p.pos)
	}
}

// Suppressed reports whether remote movement is being ignored after a rumble.
func (p *Player) Suppressed() bool {
	return p.clock.Now().Before(p.ignoreUntil)
}

func (p *Player) Moving() bool {
	return len(p.path) > 0
}

func (p *Player) Position() model.Cell {
	return p.pos
}

func (p *Player) Display() Vec {
	return p.display
}

func (p *Player) Bounce() Vec {
	return p.bounce
}

func (p *Player) Bouncing() bool {
	return p.bounceTicks > 0
}

// Path is the active path including its start cell, nil when resting.
func (p *Player) Path() []model.Cell {
	return p.path
}

func (p *Player) Progress() (progress, totalSteps int) {
	return p.progress, p.totalSteps
}

func (p *Player) WillHitWall() bool {
	return p.willHitWall
}

// Trail returns a copy of the recent display samples, oldest first.
func (p *Player) Trail() []Vec {
	out := make([]Vec, len(p.trail))
	copy(out, p.trail)
	return out
}
