package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadMaze parses a level file. One text line is one maze row:
//
//	1 or #   wall
//	0 . ' '  path
//	2 or G   goal
//	S        start (path)
//
// Lines starting with ';' are comments. Without an S the start is (1,1).
func ReadMaze(reader io.Reader) (*Maze, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	rows := make([][]CellKind, 0)
	start := Cell{Col: 1, Row: 1}

	for scanner.Scan() {
		s := strings.TrimRight(scanner.Text(), "\r")
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}
		line := make([]CellKind, 0, len(s))
		for _, char := range s {
			switch char {
			case '1', '#':
				line = append(line, WALL)
			case '0', '.', ' ':
				line = append(line, PATH)
			case '2', 'G':
				line = append(line, GOAL)
			case 'S':
				start = Cell{Col: len(line), Row: len(rows)}
				line = append(line, PATH)
			default:
				return nil, fmt.Errorf("row %d: unexpected %q", len(rows)+1, char)
			}
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewMaze(rows, start)
}
