package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tiltmaze/engine"
	"github.com/zucenko/tiltmaze/model"
	"github.com/zucenko/tiltmaze/uart"
)

var ErrNoLevels = errors.New("no levels loaded")

type Scene int

const (
	SCENE_MENU Scene = iota + 1
	SCENE_LEVEL
	SCENE_EXIT
)

func (s Scene) Name() string {
	switch s {
	case SCENE_MENU:
		return "MENU"
	case SCENE_LEVEL:
		return "LEVEL"
	case SCENE_EXIT:
		return "EXIT"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Config struct {
	Levels []*model.Maze
	Remote uart.Remote
	Clock  clock.Clock
	// Debug enables the W instant-win shortcut.
	Debug bool
}

// Controller is the per-tick game state machine. It owns the scene, the
// current level session and everything that outlives a session (theme, best
// time). It runs entirely on the game loop goroutine.
type Controller struct {
	levels []*model.Maze
	remote uart.Remote
	clock  clock.Clock
	debug  bool

	scene   Scene
	session *Session
	theme   Theme
	best    HighScore
	ticks   uint64
}

// NewController enters the menu, which also announces MENU to the remote.
func NewController(c Config) (*Controller, error) {
	if len(c.Levels) == 0 {
		return nil, ErrNoLevels
	}
	ctl := &Controller{
		levels: c.Levels,
		remote: c.Remote,
		clock:  c.Clock,
		debug:  c.Debug,
	}
	if ctl.remote == nil {
		ctl.remote = uart.Offline{}
	}
	if ctl.clock == nil {
		ctl.clock = clock.New()
	}
	ctl.enterMenu()
	return ctl, nil
}

// Tick runs one frame: local input first, then at most one remote command,
// then the movement animation unless the level is paused.
func (c *Controller) Tick(events []Event) Frame {
	c.ticks++
	for _, ev := range events {
		c.handleLocal(ev)
	}
	if line, ok := c.remote.Poll(); ok {
		c.handleRemote(line)
	}
	if c.scene == SCENE_LEVEL {
		c.advance()
	}
	return c.Frame()
}

func (c *Controller) advance() {
	s := c.session
	if s.Paused() {
		return
	}
	if s.Player.Update() && !s.Won() {
		c.win(true)
	}
	s.Player.UpdateBounce()
}

func (c *Controller) win(record bool) {
	s := c.session
	elapsed := s.Win()
	c.remote.Send(model.EVENT_VIC)
	if !record {
		return
	}
	prev := c.best
	c.best = c.best.Fold(elapsed)
	s.newBest = c.best != prev
	if s.newBest {
		log.Infof("new best time %s", c.best)
	}
}

func (c *Controller) handleRemote(line string) {
	cmd, ok := model.ParseCommand(line)
	if !ok {
		log.Debugf("dropping malformed command %q", line)
		if s := c.session; c.scene == SCENE_LEVEL && s.Won() && !s.Paused() {
			// still a non-gesture signal on the win screen
			s.Gestures.Reset()
		}
		return
	}
	log.Debugf("uart <<< %s", cmd)
	switch c.scene {
	case SCENE_MENU:
		c.setting(cmd)
	case SCENE_LEVEL:
		c.remoteLevel(cmd)
	}
}

// setting applies the commands that are valid in any scene. It reports false
// for everything else.
func (c *Controller) setting(cmd model.Command) bool {
	switch cmd.Verb {
	case model.CMD_DARK:
		c.theme = ThemeFromReport(cmd.Arg)
		log.Debugf("theme %s", c.theme.Name())
	case model.CMD_SCORE:
		c.best = FromReport(cmd.Arg)
		log.Debugf("best time reported %s", c.best)
	default:
		return false
	}
	return true
}

func (c *Controller) remoteLevel(cmd model.Command) {
	s := c.session
	if s.Paused() {
		switch cmd.Verb {
		case model.CMD_UNPAUSE:
			s.Resume()
		case model.CMD_RESTART:
			c.restart()
		case model.CMD_MENU:
			c.enterMenu()
		}
		return
	}
	switch cmd.Verb {
	case model.CMD_PAUSE:
		s.Pause()
		return
	case model.CMD_DARK:
		c.setting(cmd)
		return
	}
	d := cmd.Direction()
	if s.Won() {
		c.gesture(d)
		return
	}
	if c.setting(cmd) {
		return
	}
	if !d.Valid() {
		return
	}
	if s.Player.Moving() {
		log.Debugf("moving, dropping %s", cmd)
		return
	}
	if s.Player.Suppressed() {
		log.Debugf("suppressed, dropping %s", cmd)
		return
	}
	if err := s.Player.QueueMoves(d, cmd.Arg); err != nil {
		log.WithError(err).Debugf("rejected %s", cmd)
	}
}

func (c *Controller) gesture(d model.Direction) {
	switch t := c.session.Gestures.Signal(d); t {
	case TRANSITION_MENU:
		c.enterMenu()
	case TRANSITION_NEXT_LEVEL:
		c.nextLevel()
	}
}

func (c *Controller) handleLocal(ev Event) {
	switch c.scene {
	case SCENE_MENU:
		c.localMenu(ev)
	case SCENE_LEVEL:
		c.localLevel(ev)
	}
}

func (c *Controller) localMenu(ev Event) {
	switch ev.Type {
	case EVENT_TAP:
		b, ok := hit(MenuButtons(len(c.levels)), ev.X, ev.Y)
		if !ok {
			return
		}
		switch b.Action {
		case ACTION_LEVEL:
			c.enterLevel(b.Level)
		case ACTION_EXIT:
			c.exit()
		}
	case EVENT_KEY:
		switch ev.Key {
		case KEY_DIGIT:
			if ev.Digit >= 1 && ev.Digit <= len(c.levels) {
				c.enterLevel(ev.Digit - 1)
			}
		case KEY_ESCAPE:
			c.exit()
		}
	}
}

func (c *Controller) localLevel(ev Event) {
	s := c.session
	if s.Paused() {
		switch ev.Type {
		case EVENT_KEY:
			if ev.Key == KEY_P || ev.Key == KEY_ESCAPE {
				s.Resume()
			}
		case EVENT_TAP:
			b, ok := hit(PauseButtons(), ev.X, ev.Y)
			if !ok {
				return
			}
			switch b.Action {
			case ACTION_RESUME:
				s.Resume()
			case ACTION_RESTART:
				c.restart()
			case ACTION_MENU:
				c.enterMenu()
			}
		}
		return
	}
	if s.Won() {
		c.localWon(ev)
		return
	}
	switch ev.Type {
	case EVENT_KEY:
		switch ev.Key {
		case KEY_P:
			s.Pause()
		case KEY_ESCAPE:
			c.enterMenu()
		case KEY_W:
			if c.debug {
				c.win(false)
			}
		case KEY_UP, KEY_DOWN, KEY_LEFT, KEY_RIGHT:
			c.localMove(ev.Key.Direction())
		}
	case EVENT_SWIPE:
		c.localMove(ev.Dir)
	}
}

func (c *Controller) localWon(ev Event) {
	s := c.session
	switch ev.Type {
	case EVENT_SWIPE:
		c.gesture(ev.Dir)
	case EVENT_KEY:
		switch ev.Key {
		case KEY_A, KEY_LEFT:
			c.gesture(model.LEFT)
		case KEY_D, KEY_RIGHT:
			c.gesture(model.RIGHT)
		case KEY_R:
			s.Gestures.Reset()
			c.restart()
		case KEY_M:
			s.Gestures.Reset()
			c.enterMenu()
		case KEY_N:
			s.Gestures.Reset()
			c.nextLevel()
		default:
			c.gesture(model.NONE)
		}
	}
}

// localMove steps a single cell. Local input is not subject to the
// post-collision suppression window.
func (c *Controller) localMove(d model.Direction) {
	p := c.session.Player
	if p.Moving() {
		return
	}
	if err := p.QueueMoves(d, 1); err != nil {
		log.WithError(err).Debug("local move rejected")
	}
}

func (c *Controller) enterMenu() {
	c.scene = SCENE_MENU
	c.session = nil
	c.remote.Send(model.EVENT_MENU)
	log.Info("main menu")
}

// enterLevel starts the level at zero-based index i. Past the last level it
// falls back to the menu.
func (c *Controller) enterLevel(i int) {
	if i < 0 || i >= len(c.levels) {
		log.Infof("no level %d, back to menu", i+1)
		c.enterMenu()
		return
	}
	c.remote.Send(model.EVENT_LEVEL)
	c.scene = SCENE_LEVEL
	c.session = NewSession(i+1, c.levels[i], c.clock, c.remote)
}

// restart replays the current level without announcing it again. Commands
// queued against the old session are dropped.
func (c *Controller) restart() {
	s := c.session
	c.remote.Flush()
	c.session = NewSession(s.Level, s.Maze, c.clock, c.remote)
}

func (c *Controller) nextLevel() {
	c.enterLevel(c.session.Level)
}

func (c *Controller) exit() {
	c.scene = SCENE_EXIT
	log.Info("exit requested")
}

func (c *Controller) Scene() Scene {
	return c.scene
}

// Session is nil outside SCENE_LEVEL.
func (c *Controller) Session() *Session {
	return c.session
}

func (c *Controller) Theme() Theme {
	return c.theme
}

func (c *Controller) Best() HighScore {
	return c.best
}

// PlayerView is the drawable state of the player in grid units.
type PlayerView struct {
	Display engine.Vec
	Bounce  engine.Vec
	Trail   []engine.Vec
	Moving  bool
}

// Frame is everything the renderer needs for one tick.
type Frame struct {
	Tick    uint64
	Scene   Scene
	Theme   Theme
	Best    HighScore
	Buttons []Button

	Level        int
	Maze         *model.Maze
	Player       PlayerView
	Elapsed      time.Duration
	Paused       bool
	Won          bool
	NewBest      bool
	Gesture      model.Direction
	GestureCount int
}

func (f Frame) Quit() bool {
	return f.Scene == SCENE_EXIT
}

func (c *Controller) Frame() Frame {
	f := Frame{
		Tick:  c.ticks,
		Scene: c.scene,
		Theme: c.theme,
		Best:  c.best,
	}
	switch c.scene {
	case SCENE_MENU:
		f.Buttons = MenuButtons(len(c.levels))
	case SCENE_LEVEL:
		s := c.session
		f.Level = s.Level
		f.Maze = s.Maze
		f.Player = PlayerView{
			Display: s.Player.Display(),
			Bounce:  s.Player.Bounce(),
			Trail:   s.Player.Trail(),
			Moving:  s.Player.Moving(),
		}
		f.Elapsed = s.Elapsed()
		f.Paused = s.Paused()
		f.Won = s.Won()
		f.NewBest = s.newBest
		f.Gesture, f.GestureCount = s.Gestures.Progress()
		if f.Paused {
			f.Buttons = PauseButtons()
		}
	}
	return f
}
