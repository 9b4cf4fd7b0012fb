package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/tanema/gween"
	"github.com/zucenko/tiltmaze/game"
)

// ErrQuit ends the ebiten loop on an exit request.
var ErrQuit = errors.New("quit")

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

var keys = map[ebiten.Key]game.Key{
	ebiten.KeyP:      game.KEY_P,
	ebiten.KeyEscape: game.KEY_ESCAPE,
	ebiten.KeyUp:     game.KEY_UP,
	ebiten.KeyDown:   game.KEY_DOWN,
	ebiten.KeyLeft:   game.KEY_LEFT,
	ebiten.KeyRight:  game.KEY_RIGHT,
	ebiten.KeyA:      game.KEY_A,
	ebiten.KeyD:      game.KEY_D,
	ebiten.KeyR:      game.KEY_R,
	ebiten.KeyM:      game.KEY_M,
	ebiten.KeyN:      game.KEY_N,
	ebiten.KeyW:      game.KEY_W,
}

var digits = map[ebiten.Key]int{
	ebiten.Key1: 1, ebiten.Key2: 2, ebiten.Key3: 3,
	ebiten.Key4: 4, ebiten.Key5: 5, ebiten.Key6: 6,
	ebiten.Key7: 7, ebiten.Key8: 8, ebiten.Key9: 9,
}

// Game adapts the controller to ebiten: it samples input, ticks the
// controller once per update and draws the resulting frame.
type Game struct {
	Controller *game.Controller
	Tweens     map[*gween.Tween]Action

	renderer *Renderer
	strokes  *game.Strokes
	frame    game.Frame
	fx       Effects
	dt       float32
}

func NewGame(ctl *game.Controller, renderer *Renderer, tps int) *Game {
	g := &Game{
		Controller: ctl,
		Tweens:     make(map[*gween.Tween]Action),
		renderer:   renderer,
		strokes:    game.NewStrokes(),
		frame:      ctl.Frame(),
		fx:         Effects{Pulse: 1},
		dt:         1 / float32(tps),
	}
	g.pulse()
	return g
}

func (g *Game) input() []game.Event {
	events := make([]game.Event, 0)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if n, ok := digits[k]; ok {
			events = append(events, game.DigitEvent(n))
		} else if key, ok := keys[k]; ok {
			events = append(events, game.KeyEvent(key))
		} else {
			events = append(events, game.KeyEvent(game.KEY_OTHER))
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes.Add(&MouseStrokeSource{})
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes.Add(&TouchStrokeSource{id})
	}
	return append(events, g.strokes.Update()...)
}

// observe starts overlay tweens on frame transitions.
func (g *Game) observe(f game.Frame) {
	if f.Won && !g.frame.Won {
		g.fadeInWin()
	}
	if f.Paused && !g.frame.Paused {
		g.dimForPause()
	}
	g.frame = f
}

func (g *Game) update(screen *ebiten.Image) error {
	g.updateTweens()
	f := g.Controller.Tick(g.input())
	g.observe(f)
	if f.Quit() {
		return ErrQuit
	}
	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.renderer.Draw(screen, f, g.fx)
	return nil
}
