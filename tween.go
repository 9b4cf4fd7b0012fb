package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

func (a *Action) next(t *gween.Tween) *Action {
	action := Action{}
	if a.nexts == nil {
		a.nexts = make([]func(g *Game), 0)
	}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return &action
}

// Effects are the tween-driven values the renderer reads.
type Effects struct {
	WinAlpha float64 // win overlay fade-in, 0..1
	PauseDim float64 // pause overlay darkness, 0..1
	Pulse    float64 // goal glow scale
}

func (g *Game) updateTweens() {
	for t, a := range g.Tweens {
		curr, finished := t.Update(g.dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}

// pulse breathes the goal glow forever: out, back in, repeat.
func (g *Game) pulse() {
	out := Action{onChange: func(v float32) { g.fx.Pulse = float64(v) }}
	back := out.next(gween.New(1.15, .85, .8, ease.InOutSine))
	back.onChange = out.onChange
	back.addOnFinish(g.pulse)
	g.Tweens[gween.New(.85, 1.15, .8, ease.InOutSine)] = out
}

func (g *Game) fadeInWin() {
	g.fx.WinAlpha = 0
	g.Tweens[gween.New(0, 1, .5, ease.OutCubic)] = Action{
		onChange: func(v float32) { g.fx.WinAlpha = float64(v) },
	}
}

func (g *Game) dimForPause() {
	g.fx.PauseDim = 0
	g.Tweens[gween.New(0, .6, .25, ease.OutQuad)] = Action{
		onChange: func(v float32) {
			if g.frame.Paused {
				g.fx.PauseDim = float64(v)
			}
		},
	}
}
