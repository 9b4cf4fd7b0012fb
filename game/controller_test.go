package game

import (
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/tiltmaze/engine"
	"github.com/zucenko/tiltmaze/model"
)

type fakeRemote struct {
	lines   []string
	sent    []string
	flushes int
}

func (r *fakeRemote) Poll() (string, bool) {
	if len(r.lines) == 0 {
		return "", false
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, true
}

func (r *fakeRemote) Flush() {
	r.flushes++
	r.lines = nil
}

func (r *fakeRemote) Send(event string) {
	r.sent = append(r.sent, event)
}

func (r *fakeRemote) push(lines ...string) {
	r.lines = append(r.lines, lines...)
}

func (r *fakeRemote) count(event string) int {
	n := 0
	for _, s := range r.sent {
		if s == event {
			n++
		}
	}
	return n
}

const hall = `
1111111
1S00001
1011101
1000021
1111111
`

func readMaze(t *testing.T, src string) *model.Maze {
	t.Helper()
	m, err := model.ReadMaze(strings.NewReader(src))
	require.NoError(t, err)
	return m
}

func setup(t *testing.T, levels int) (*Controller, *fakeRemote, *clock.Mock) {
	t.Helper()
	mazes := make([]*model.Maze, 0, levels)
	for i := 0; i < levels; i++ {
		mazes = append(mazes, readMaze(t, hall))
	}
	remote := &fakeRemote{}
	clk := clock.NewMock()
	ctl, err := NewController(Config{Levels: mazes, Remote: remote, Clock: clk})
	require.NoError(t, err)
	return ctl, remote, clk
}

// command feeds one remote line and ticks until the player rests again.
func command(ctl *Controller, remote *fakeRemote, line string) {
	remote.push(line)
	ctl.Tick(nil)
	for ctl.Session() != nil && ctl.Session().Player.Moving() {
		ctl.Tick(nil)
	}
}

func winLevel(t *testing.T, ctl *Controller, remote *fakeRemote) {
	t.Helper()
	command(ctl, remote, "DOWN 2")
	command(ctl, remote, "right 4")
	require.True(t, ctl.Session().Won())
}

func TestNewControllerEntersMenu(t *testing.T) {
	_, err := NewController(Config{})
	assert.ErrorIs(t, err, ErrNoLevels)

	ctl, remote, _ := setup(t, 1)
	assert.Equal(t, SCENE_MENU, ctl.Scene())
	assert.Nil(t, ctl.Session())
	assert.Equal(t, []string{model.EVENT_MENU}, remote.sent)

	f := ctl.Tick(nil)
	assert.Len(t, f.Buttons, 2)
	assert.Equal(t, "Exit", f.Buttons[1].Label)
}

func TestMenuDigitEntersLevel(t *testing.T) {
	ctl, remote, _ := setup(t, 2)
	ctl.Tick([]Event{DigitEvent(3)})
	assert.Equal(t, SCENE_MENU, ctl.Scene())

	f := ctl.Tick([]Event{DigitEvent(2)})
	assert.Equal(t, SCENE_LEVEL, f.Scene)
	assert.Equal(t, 2, f.Level)
	assert.Equal(t, []string{model.EVENT_MENU, model.EVENT_LEVEL}, remote.sent)
}

func TestMenuTaps(t *testing.T) {
	ctl, _, _ := setup(t, 1)
	buttons := MenuButtons(1)

	ctl.Tick([]Event{TapEvent(0, 0)})
	assert.Equal(t, SCENE_MENU, ctl.Scene())

	c := buttons[0].Rect.Min.Add(buttons[0].Rect.Size().Div(2))
	ctl.Tick([]Event{TapEvent(c.X, c.Y)})
	assert.Equal(t, SCENE_LEVEL, ctl.Scene())

	ctl.Tick([]Event{KeyEvent(KEY_ESCAPE)})
	require.Equal(t, SCENE_MENU, ctl.Scene())
	c = buttons[1].Rect.Min.Add(buttons[1].Rect.Size().Div(2))
	f := ctl.Tick([]Event{TapEvent(c.X, c.Y)})
	assert.True(t, f.Quit())
}

func TestEscapeOnMenuExits(t *testing.T) {
	ctl, _, _ := setup(t, 1)
	f := ctl.Tick([]Event{KeyEvent(KEY_ESCAPE)})
	assert.True(t, f.Quit())
}

func TestRemoteMovesToGoalAndWins(t *testing.T) {
	ctl, remote, clk := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})

	command(ctl, remote, "DOWN 2")
	assert.Equal(t, model.Cell{Col: 1, Row: 3}, ctl.Session().Player.Position())
	assert.False(t, ctl.Session().Won())

	clk.Add(12300 * time.Millisecond)
	command(ctl, remote, "RIGHT 4")
	f := ctl.Frame()
	assert.True(t, f.Won)
	assert.True(t, f.NewBest)
	assert.Equal(t, engine.Vec{X: 5, Y: 3}, f.Player.Display)
	assert.Equal(t, 1, remote.count(model.EVENT_VIC))
	best, ok := ctl.Best().Best()
	require.True(t, ok)
	assert.InDelta(t, 12.3, best, 1e-9)

	clk.Add(time.Minute)
	for i := 0; i < 30; i++ {
		ctl.Tick(nil)
	}
	assert.Equal(t, 12300*time.Millisecond, ctl.Frame().Elapsed)
	assert.Equal(t, 1, remote.count(model.EVENT_VIC))
}

func TestSlowerRunKeepsBest(t *testing.T) {
	ctl, remote, clk := setup(t, 1)
	remote.push("S 10")
	ctl.Tick(nil)
	ctl.Tick([]Event{DigitEvent(1)})

	clk.Add(15 * time.Second)
	winLevel(t, ctl, remote)
	assert.False(t, ctl.Frame().NewBest)
	assert.Equal(t, "10.0s", ctl.Best().String())
}

func TestMalformedCommandsAreDropped(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})

	for _, line := range []string{"UP 2 3", "RIGHT x", "JUMP", ""} {
		command(ctl, remote, line)
	}
	p := ctl.Session().Player
	assert.Equal(t, model.Cell{Col: 1, Row: 1}, p.Position())
	assert.False(t, p.Bouncing())
	assert.Zero(t, remote.count(model.EVENT_RUMBLE))
}

func TestRumbleSuppressesRemoteMovement(t *testing.T) {
	ctl, remote, clk := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})

	remote.push("UP", "RIGHT")
	ctl.Tick(nil)
	assert.Equal(t, 1, remote.count(model.EVENT_RUMBLE))
	assert.Equal(t, 1, remote.flushes)
	assert.Empty(t, remote.lines, "flush drops queued commands")

	remote.push("RIGHT")
	ctl.Tick(nil)
	assert.Empty(t, remote.lines)
	assert.False(t, ctl.Session().Player.Moving())

	clk.Add(engine.SuppressFor)
	command(ctl, remote, "RIGHT")
	assert.Equal(t, model.Cell{Col: 2, Row: 1}, ctl.Session().Player.Position())
}

func TestLocalMovesIgnoreSuppression(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})

	command(ctl, remote, "UP")
	require.True(t, ctl.Session().Player.Suppressed())

	ctl.Tick([]Event{KeyEvent(KEY_RIGHT)})
	assert.True(t, ctl.Session().Player.Moving())
	for ctl.Session().Player.Moving() {
		ctl.Tick(nil)
	}
	ctl.Tick([]Event{SwipeEvent(model.RIGHT)})
	for ctl.Session().Player.Moving() {
		ctl.Tick(nil)
	}
	assert.Equal(t, model.Cell{Col: 3, Row: 1}, ctl.Session().Player.Position())
}

func TestCommandsWhileMovingAreDropped(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})

	remote.push("RIGHT 2", "DOWN")
	ctl.Tick(nil)
	ctl.Tick(nil)
	for ctl.Session().Player.Moving() {
		ctl.Tick(nil)
	}
	assert.Equal(t, model.Cell{Col: 3, Row: 1}, ctl.Session().Player.Position())
}

func TestPauseFreezesPlay(t *testing.T) {
	ctl, remote, clk := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})

	clk.Add(4 * time.Second)
	remote.push("RIGHT 4")
	ctl.Tick(nil)
	remote.push("PAUSE")
	f := ctl.Tick(nil)
	require.True(t, f.Paused)
	assert.Len(t, f.Buttons, 3)
	progress, _ := ctl.Session().Player.Progress()

	clk.Add(time.Minute)
	remote.push("DOWN")
	for i := 0; i < 10; i++ {
		ctl.Tick(nil)
	}
	p, _ := ctl.Session().Player.Progress()
	assert.Equal(t, progress, p)
	assert.Equal(t, 4*time.Second, ctl.Frame().Elapsed)

	remote.push("UNPAUSE")
	ctl.Tick(nil)
	assert.False(t, ctl.Session().Paused())
	for ctl.Session().Player.Moving() {
		ctl.Tick(nil)
	}
	assert.Equal(t, model.Cell{Col: 5, Row: 1}, ctl.Session().Player.Position())
	assert.Equal(t, 4*time.Second, ctl.Frame().Elapsed)
}

func TestLocalPauseAndButtons(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})
	first := ctl.Session().ID

	ctl.Tick([]Event{KeyEvent(KEY_P)})
	require.True(t, ctl.Session().Paused())
	ctl.Tick([]Event{KeyEvent(KEY_RIGHT)})
	assert.False(t, ctl.Session().Player.Moving())

	restart := PauseButtons()[1]
	c := restart.Rect.Min.Add(restart.Rect.Size().Div(2))
	ctl.Tick([]Event{TapEvent(c.X, c.Y)})
	assert.NotEqual(t, first, ctl.Session().ID)
	assert.False(t, ctl.Session().Paused())
	assert.Equal(t, 1, remote.flushes)
	assert.Equal(t, 1, remote.count(model.EVENT_LEVEL))
}

func TestRemoteRestartAndMenuWhilePaused(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})
	first := ctl.Session().ID

	remote.push("RESTART")
	ctl.Tick(nil)
	assert.Equal(t, first, ctl.Session().ID, "restart needs pause")

	remote.push("PAUSE")
	ctl.Tick(nil)
	remote.push("RESTART")
	ctl.Tick(nil)
	assert.NotEqual(t, first, ctl.Session().ID)

	remote.push("PAUSE")
	ctl.Tick(nil)
	remote.push("MENU")
	ctl.Tick(nil)
	assert.Equal(t, SCENE_MENU, ctl.Scene())
	assert.Equal(t, 2, remote.count(model.EVENT_MENU))
}

func TestSettingsApplyEverywhere(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	remote.push("DARK 1")
	ctl.Tick(nil)
	assert.Equal(t, THEME_DARK, ctl.Theme())
	remote.push("S 42")
	ctl.Tick(nil)
	assert.Equal(t, "42.0s", ctl.Best().String())

	ctl.Tick([]Event{DigitEvent(1)})
	remote.push("DARK 0")
	ctl.Tick(nil)
	assert.Equal(t, THEME_LIGHT, ctl.Theme())
	remote.push("S 255")
	ctl.Tick(nil)
	_, ok := ctl.Best().Best()
	assert.False(t, ok)
}

func TestWinGesturesAdvance(t *testing.T) {
	ctl, remote, _ := setup(t, 2)
	ctl.Tick([]Event{DigitEvent(1)})
	winLevel(t, ctl, remote)

	for i := 0; i < 9; i++ {
		remote.push("RIGHT")
		ctl.Tick(nil)
	}
	d, n := ctl.Session().Gestures.Progress()
	assert.Equal(t, model.RIGHT, d)
	assert.Equal(t, 9, n)

	remote.push("UP")
	ctl.Tick(nil)
	_, n = ctl.Session().Gestures.Progress()
	assert.Zero(t, n)

	for i := 0; i < 10; i++ {
		remote.push("RIGHT 3")
		ctl.Tick(nil)
	}
	assert.Equal(t, SCENE_LEVEL, ctl.Scene())
	assert.Equal(t, 2, ctl.Session().Level)
	assert.False(t, ctl.Session().Won())
	assert.Equal(t, 2, remote.count(model.EVENT_LEVEL))
}

func TestWinGestureBackToMenu(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})
	winLevel(t, ctl, remote)

	for i := 0; i < 5; i++ {
		ctl.Tick([]Event{SwipeEvent(model.LEFT)})
	}
	remote.push("DARK 1")
	ctl.Tick(nil)
	for i := 0; i < 5; i++ {
		ctl.Tick([]Event{KeyEvent(KEY_A)})
	}
	assert.Equal(t, SCENE_MENU, ctl.Scene())
}

func TestNextAfterLastLevelGoesToMenu(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})
	winLevel(t, ctl, remote)

	ctl.Tick([]Event{KeyEvent(KEY_N)})
	assert.Equal(t, SCENE_MENU, ctl.Scene())
	assert.Equal(t, 1, remote.count(model.EVENT_LEVEL))
}

func TestWinShortcuts(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})
	winLevel(t, ctl, remote)
	won := ctl.Session().ID

	ctl.Tick([]Event{KeyEvent(KEY_D), KeyEvent(KEY_OTHER)})
	_, n := ctl.Session().Gestures.Progress()
	assert.Zero(t, n)

	ctl.Tick([]Event{KeyEvent(KEY_R)})
	assert.NotEqual(t, won, ctl.Session().ID)
	assert.False(t, ctl.Session().Won())
}

func TestDebugWin(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})
	ctl.Tick([]Event{KeyEvent(KEY_W)})
	assert.False(t, ctl.Session().Won())

	ctl.debug = true
	ctl.Tick([]Event{KeyEvent(KEY_W)})
	assert.True(t, ctl.Session().Won())
	assert.Equal(t, 1, remote.count(model.EVENT_VIC))
	_, ok := ctl.Best().Best()
	assert.False(t, ok)
}

func TestWinScreenNonGestureLinesReset(t *testing.T) {
	for _, line := range []string{"S 42", "RIGHT x", "UP 2 3", "FOO", "RESTART"} {
		t.Run(line, func(t *testing.T) {
			ctl, remote, _ := setup(t, 1)
			ctl.Tick([]Event{DigitEvent(1)})
			winLevel(t, ctl, remote)
			best := ctl.Best()

			for i := 0; i < 5; i++ {
				remote.push("RIGHT")
				ctl.Tick(nil)
			}
			_, n := ctl.Session().Gestures.Progress()
			require.Equal(t, 5, n)

			remote.push(line)
			ctl.Tick(nil)
			_, n = ctl.Session().Gestures.Progress()
			assert.Zero(t, n)
			assert.Equal(t, best, ctl.Best(), "S is not a setting on the win screen")
			assert.True(t, ctl.Session().Won())
		})
	}
}

func TestWinScreenPauseAndDarkKeepStreak(t *testing.T) {
	ctl, remote, _ := setup(t, 1)
	ctl.Tick([]Event{DigitEvent(1)})
	winLevel(t, ctl, remote)

	for i := 0; i < 3; i++ {
		remote.push("LEFT")
		ctl.Tick(nil)
	}
	remote.push("DARK 1")
	ctl.Tick(nil)
	remote.push("PAUSE")
	ctl.Tick(nil)
	remote.push("UNPAUSE")
	ctl.Tick(nil)

	assert.Equal(t, THEME_DARK, ctl.Theme())
	d, n := ctl.Session().Gestures.Progress()
	assert.Equal(t, model.LEFT, d)
	assert.Equal(t, 3, n)
}
