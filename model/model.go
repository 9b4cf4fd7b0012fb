package model

import "fmt"

type CellKind int

const (
	PATH CellKind = iota
	WALL
	GOAL
)

func (k CellKind) Name() string {
	switch k {
	case PATH:
		return "PATH"
	case WALL:
		return "WALL"
	case GOAL:
		return "GOAL"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// Cell addresses one grid square by column and row.
type Cell struct {
	Col, Row int
}

func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Vector()
	return Cell{Col: c.Col + dx, Row: c.Row + dy}
}

type Direction int

const (
	NONE Direction = iota
	UP
	DOWN
	LEFT
	RIGHT
)

// Vector returns the unit step of d in screen coordinates (rows grow downwards).
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case UP:
		return 0, -1
	case DOWN:
		return 0, 1
	case LEFT:
		return -1, 0
	case RIGHT:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Valid() bool {
	return d >= UP && d <= RIGHT
}

func (d Direction) Name() string {
	switch d {
	case NONE:
		return "NONE"
	case UP:
		return "UP"
	case DOWN:
		return "DOWN"
	case LEFT:
		return "LEFT"
	case RIGHT:
		return "RIGHT"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

// DirectionOf maps a movement verb to its direction. Any other verb yields NONE.
func DirectionOf(verb string) Direction {
	switch verb {
	case CMD_UP:
		return UP
	case CMD_DOWN:
		return DOWN
	case CMD_LEFT:
		return LEFT
	case CMD_RIGHT:
		return RIGHT
	default:
		return NONE
	}
}

// Maze is an immutable grid. cells is indexed [row][col].
type Maze struct {
	cells [][]CellKind
	Cols  int
	Rows  int
	Start Cell
	Goal  Cell
}
