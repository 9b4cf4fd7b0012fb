package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/text"
	"github.com/zucenko/tiltmaze/game"
	"github.com/zucenko/tiltmaze/model"
	"golang.org/x/image/font"
)

const (
	cellSize   = 26
	discSize   = 64
	discCorner = 24
)

type Palette struct {
	Bg, Wall, WallLight, Path, PathAlt color.RGBA
	Player, PlayerLight                color.RGBA
	Goal, GoalGlow                     color.RGBA
	Text, Button, ButtonText, Exit     color.RGBA
	Accent                             color.RGBA
}

var LIGHT_PALETTE = Palette{
	Bg:          color.RGBA{235, 240, 248, 255},
	Wall:        color.RGBA{28, 35, 55, 255},
	WallLight:   color.RGBA{68, 82, 110, 255},
	Path:        color.RGBA{215, 222, 232, 255},
	PathAlt:     color.RGBA{235, 240, 248, 255},
	Player:      color.RGBA{40, 130, 245, 255},
	PlayerLight: color.RGBA{140, 200, 255, 255},
	Goal:        color.RGBA{0, 200, 85, 255},
	GoalGlow:    color.RGBA{80, 255, 140, 255},
	Text:        color.RGBA{15, 25, 45, 255},
	Button:      color.RGBA{200, 210, 225, 255},
	ButtonText:  color.RGBA{15, 25, 45, 255},
	Exit:        color.RGBA{255, 0, 0, 255},
	Accent:      color.RGBA{255, 180, 70, 255},
}

var DARK_PALETTE = Palette{
	Bg:          color.RGBA{25, 28, 35, 255},
	Wall:        color.RGBA{55, 62, 82, 255},
	WallLight:   color.RGBA{85, 95, 120, 255},
	Path:        color.RGBA{25, 28, 35, 255},
	PathAlt:     color.RGBA{30, 33, 42, 255},
	Player:      color.RGBA{60, 150, 255, 255},
	PlayerLight: color.RGBA{150, 210, 255, 255},
	Goal:        color.RGBA{20, 220, 100, 255},
	GoalGlow:    color.RGBA{100, 255, 160, 255},
	Text:        color.RGBA{220, 225, 235, 255},
	Button:      color.RGBA{60, 66, 85, 255},
	ButtonText:  color.RGBA{220, 225, 235, 255},
	Exit:        color.RGBA{255, 70, 70, 255},
	Accent:      color.RGBA{255, 180, 70, 255},
}

func paletteFor(t game.Theme) Palette {
	if t == game.THEME_DARK {
		return DARK_PALETTE
	}
	return LIGHT_PALETTE
}

type Renderer struct {
	disc  *ebiten.Image
	nine  *Nine
	fonts Fonts
	debug bool
}

func NewRenderer(fonts Fonts, debug bool) (*Renderer, error) {
	disc, err := ebiten.NewImageFromImage(discImage(discSize), ebiten.FilterLinear)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		disc:  disc,
		nine:  NewNine(disc, discSize, discCorner, .5),
		fonts: fonts,
		debug: debug,
	}, nil
}

// discImage is a white anti-aliased disc used for the ball, the trail, the
// goal glow and, nine-sliced, the rounded buttons.
func discImage(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+.5-r, float64(y)+.5-r)
			a := math.Max(0, math.Min(1, r-d))
			v := uint8(a * 0xff)
			img.Set(x, y, color.RGBA{v, v, v, v})
		}
	}
	return img
}

func (r *Renderer) Draw(screen *ebiten.Image, f game.Frame, fx Effects) {
	p := paletteFor(f.Theme)
	screen.Fill(p.Bg)
	switch f.Scene {
	case game.SCENE_MENU:
		r.drawMenu(screen, f, p)
	case game.SCENE_LEVEL:
		r.drawLevel(screen, f, p, fx)
	}
	if r.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %0.1f  %s  tick %d", ebiten.CurrentTPS(), f.Scene.Name(), f.Tick), 0, game.ScreenHeight-16)
	}
}

func (r *Renderer) disk(screen *ebiten.Image, cx, cy, radius float64, c color.RGBA, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	s := 2 * radius / discSize
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(cx-radius, cy-radius)
	op.ColorM.Scale(float64(c.R)/0xff, float64(c.G)/0xff, float64(c.B)/0xff, alpha)
	screen.DrawImage(r.disc, op)
}

func (r *Renderer) centered(screen *ebiten.Image, face font.Face, s string, y int, c color.Color) {
	text.Draw(screen, s, face, (game.ScreenWidth-textWidth(face, s))/2, y, c)
}

func (r *Renderer) drawButtons(screen *ebiten.Image, buttons []game.Button, p Palette) {
	for _, b := range buttons {
		fill := p.Button
		if b.Action == game.ACTION_EXIT {
			fill = p.Exit
		}
		r.nine.SetBounds(b.Rect)
		r.nine.SetColor(fill, 1)
		r.nine.Draw(screen)
		x := b.Rect.Min.X + (b.Rect.Dx()-textWidth(r.fonts.Normal, b.Label))/2
		y := b.Rect.Min.Y + b.Rect.Dy()/2 + 8
		text.Draw(screen, b.Label, r.fonts.Normal, x, y, p.ButtonText)
	}
}

func (r *Renderer) drawMenu(screen *ebiten.Image, f game.Frame, p Palette) {
	r.centered(screen, r.fonts.Title, "MAZE GAME", 70, p.Text)
	r.centered(screen, r.fonts.Small, "Best time: "+f.Best.String(), 100, p.Accent)
	r.drawButtons(screen, f.Buttons, p)
}

// origin is the top-left pixel of the maze, centered on screen.
func origin(m *model.Maze) (float64, float64) {
	return float64(game.ScreenWidth-m.Cols*cellSize) / 2, float64(game.ScreenHeight-m.Rows*cellSize) / 2
}

func (r *Renderer) drawLevel(screen *ebiten.Image, f game.Frame, p Palette, fx Effects) {
	m := f.Maze
	ox, oy := origin(m)
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			x, y := ox+float64(col*cellSize), oy+float64(row*cellSize)
			switch m.At(col, row) {
			case model.WALL:
				ebitenutil.DrawRect(screen, x, y, cellSize, cellSize, p.Wall)
				ebitenutil.DrawRect(screen, x+2, y+2, cellSize-4, 2, p.WallLight)
			default:
				c := p.Path
				if (row+col)%2 == 1 {
					c = p.PathAlt
				}
				ebitenutil.DrawRect(screen, x, y, cellSize, cellSize, c)
			}
		}
	}

	center := func(v float64, o float64) float64 { return o + v*cellSize + cellSize/2 }
	gx, gy := center(float64(m.Goal.Col), ox), center(float64(m.Goal.Row), oy)
	r.disk(screen, gx, gy, cellSize*.6*fx.Pulse, p.GoalGlow, .35)
	r.disk(screen, gx, gy, cellSize*.4, p.Goal, 1)

	pl := f.Player
	radius := float64(cellSize) / 3
	for i, t := range pl.Trail {
		k := float64(i+1) / float64(len(pl.Trail))
		r.disk(screen, center(t.X, ox), center(t.Y, oy), radius*.7*k, p.PlayerLight, .55*k)
	}
	px := center(pl.Display.X, ox) + pl.Bounce.X
	py := center(pl.Display.Y, oy) + pl.Bounce.Y
	r.disk(screen, px, py, radius+2, p.Player, 1)
	r.disk(screen, px-radius/3, py-radius/3, radius/3, p.PlayerLight, .9)

	text.Draw(screen, fmt.Sprintf("Level %d", f.Level), r.fonts.Normal, 16, 36, p.Text)
	text.Draw(screen, fmt.Sprintf("Time %.1fs", f.Elapsed.Seconds()), r.fonts.Normal, 16, 68, p.Text)
	text.Draw(screen, "Best "+f.Best.String(), r.fonts.Small, 16, 96, p.Accent)

	if f.Won {
		r.drawWin(screen, f, p, fx.WinAlpha)
	}
	if f.Paused {
		ebitenutil.DrawRect(screen, 0, 0, game.ScreenWidth, game.ScreenHeight, color.RGBA{A: uint8(fx.PauseDim * 0xff)})
		r.centered(screen, r.fonts.Title, "PAUSED", 110, color.White)
		r.drawButtons(screen, f.Buttons, p)
	}
}

func (r *Renderer) drawWin(screen *ebiten.Image, f game.Frame, p Palette, alpha float64) {
	ebitenutil.DrawRect(screen, 0, 0, game.ScreenWidth, game.ScreenHeight, color.RGBA{A: uint8(alpha * .7 * 0xff)})
	white := color.NRGBA{0xff, 0xff, 0xff, uint8(alpha * 0xff)}
	r.centered(screen, r.fonts.Title, "LEVEL COMPLETE!", 150, white)
	r.centered(screen, r.fonts.Normal, fmt.Sprintf("Time: %.1fs", f.Elapsed.Seconds()), 200, white)
	if f.NewBest {
		r.centered(screen, r.fonts.Normal, "New best time!", 235, p.Accent)
	}
	r.centered(screen, r.fonts.Small, fmt.Sprintf("Tilt RIGHT x%d for the next level, LEFT x%d for the menu", game.GestureStreak, game.GestureStreak), 290, white)

	// streak meter, one pip per signal
	const pip = 18
	left := float64(game.ScreenWidth-game.GestureStreak*pip) / 2
	for i := 0; i < game.GestureStreak; i++ {
		c := p.Button
		if i < f.GestureCount {
			c = p.Goal
			if f.Gesture == model.LEFT {
				c = p.Accent
			}
		}
		r.disk(screen, left+float64(i*pip)+pip/2, 320, pip/2-2, c, alpha)
	}
}
