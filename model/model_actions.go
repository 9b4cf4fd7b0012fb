package model

import "errors"

var (
	ErrEmptyMaze      = errors.New("maze has no cells")
	ErrNotRectangular = errors.New("maze rows differ in length")
	ErrOpenBorder     = errors.New("maze border is not entirely wall")
	ErrGoalCount      = errors.New("maze must have exactly one goal")
	ErrBadStart       = errors.New("maze start is not a free cell")
)

// NewMaze copies rows into a validated Maze. The border must be WALL and exactly
// one GOAL must exist.
func NewMaze(rows [][]CellKind, start Cell) (*Maze, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMaze
	}
	cols := len(rows[0])
	cells := make([][]CellKind, 0, len(rows))
	goals := make([]Cell, 0, 1)
	for r, row := range rows {
		if len(row) != cols {
			return nil, ErrNotRectangular
		}
		line := make([]CellKind, cols)
		copy(line, row)
		for c, kind := range line {
			border := r == 0 || c == 0 || r == len(rows)-1 || c == cols-1
			if border && kind != WALL {
				return nil, ErrOpenBorder
			}
			if kind == GOAL {
				goals = append(goals, Cell{Col: c, Row: r})
			}
		}
		cells = append(cells, line)
	}
	if len(goals) != 1 {
		return nil, ErrGoalCount
	}
	m := &Maze{
		cells: cells,
		Cols:  cols,
		Rows:  len(cells),
		Start: start,
		Goal:  goals[0],
	}
	if m.Kind(start) == WALL {
		return nil, ErrBadStart
	}
	return m, nil
}

// At reports the kind at (col,row). Anything outside the grid reads as WALL.
func (m *Maze) At(col, row int) CellKind {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols {
		return WALL
	}
	return m.cells[row][col]
}

func (m *Maze) Kind(c Cell) CellKind {
	return m.At(c.Col, c.Row)
}

// Walk steps from `from` in direction d at most count times and returns every
// visited cell including `from`. The walk stops before the first WALL and
// hitWall reports whether that happened.
func (m *Maze) Walk(from Cell, d Direction, count int) (path []Cell, hitWall bool) {
	path = []Cell{from}
	if !d.Valid() {
		return path, false
	}
	cur := from
	for i := 0; i < count; i++ {
		next := cur.Step(d)
		if m.Kind(next) == WALL {
			return path, true
		}
		cur = next
		path = append(path, cur)
	}
	return path, false
}
