package game

import (
	"image"
	"strconv"
)

// logical screen of the 5" touch panel
const (
	ScreenWidth  = 800
	ScreenHeight = 480
)

const (
	buttonWidth   = 220
	buttonHeight  = 50
	buttonSpacing = 65
)

type Action int

const (
	ACTION_LEVEL Action = iota + 1
	ACTION_EXIT
	ACTION_RESUME
	ACTION_RESTART
	ACTION_MENU
)

type Button struct {
	Rect   image.Rectangle
	Label  string
	Action Action
	Level  int // zero-based, for ACTION_LEVEL
}

func column(top int, labels []string, actions []Action) []Button {
	x := (ScreenWidth - buttonWidth) / 2
	buttons := make([]Button, 0, len(labels))
	for i, label := range labels {
		y := top + i*buttonSpacing
		buttons = append(buttons, Button{
			Rect:   image.Rect(x, y, x+buttonWidth, y+buttonHeight),
			Label:  label,
			Action: actions[i],
		})
	}
	return buttons
}

// MenuButtons lays out one button per level followed by Exit.
func MenuButtons(levels int) []Button {
	labels := make([]string, 0, levels+1)
	actions := make([]Action, 0, levels+1)
	for i := 0; i < levels; i++ {
		labels = append(labels, "Level "+strconv.Itoa(i+1))
		actions = append(actions, ACTION_LEVEL)
	}
	labels = append(labels, "Exit")
	actions = append(actions, ACTION_EXIT)
	buttons := column(120, labels, actions)
	for i := 0; i < levels; i++ {
		buttons[i].Level = i
	}
	return buttons
}

func PauseButtons() []Button {
	return column(140,
		[]string{"Resume", "Restart", "Main Menu"},
		[]Action{ACTION_RESUME, ACTION_RESTART, ACTION_MENU})
}

func hit(buttons []Button, x, y int) (Button, bool) {
	p := image.Pt(x, y)
	for _, b := range buttons {
		if p.In(b.Rect) {
			return b, true
		}
	}
	return Button{}, false
}
