package game

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tiltmaze/engine"
	"github.com/zucenko/tiltmaze/model"
)

// Session is one play-through of a level. It is created on level entry and
// dropped on restart or return to the menu.
type Session struct {
	ID       uuid.UUID
	Level    int
	Maze     *model.Maze
	Player   *engine.Player
	Gestures GestureTracker

	clock     clock.Clock
	started   time.Time
	pausedFor time.Duration
	pausedAt  time.Time
	paused    bool
	won       bool
	final     time.Duration
	newBest   bool
}

func NewSession(level int, maze *model.Maze, clk clock.Clock, remote engine.Remote) *Session {
	s := &Session{
		ID:      uuid.New(),
		Level:   level,
		Maze:    maze,
		Player:  engine.NewPlayer(maze, maze.Start, clk, remote),
		clock:   clk,
		started: clk.Now(),
	}
	s.logger().Info("level session started")
	return s
}

func (s *Session) logger() *log.Entry {
	return log.WithFields(log.Fields{"session": s.ID, "maze": s.Level})
}

// Elapsed is play time excluding pauses, frozen once won.
func (s *Session) Elapsed() time.Duration {
	if s.won {
		return s.final
	}
	now := s.clock.Now()
	paused := s.pausedFor
	if s.paused {
		paused += now.Sub(s.pausedAt)
	}
	return now.Sub(s.started) - paused
}

func (s *Session) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.pausedAt = s.clock.Now()
	s.logger().Debug("paused")
}

func (s *Session) Resume() {
	if !s.paused {
		return
	}
	s.pausedFor += s.clock.Now().Sub(s.pausedAt)
	s.paused = false
	s.logger().Debug("resumed")
}

func (s *Session) Paused() bool {
	return s.paused
}

func (s *Session) Won() bool {
	return s.won
}

// Win freezes the timer and returns the final time. Later calls return the
// same time.
func (s *Session) Win() time.Duration {
	if s.won {
		return s.final
	}
	s.final = s.Elapsed()
	s.won = true
	s.Gestures.Reset()
	s.logger().WithField("time", s.final.Round(time.Millisecond)).Info("level won")
	return s.final
}
