package model

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
)

var ErrNoLevels = errors.New("no level files found")

// Opener opens a named level file.
type Opener func(name string) (io.ReadCloser, error)

// LevelFile is the name of the n-th level (1-based) inside dir.
func LevelFile(dir string, n int) string {
	return path.Join(dir, fmt.Sprintf("level_%d.txt", n))
}

// ReadLevels loads level_1.txt, level_2.txt, ... from dir until the first
// missing file. A file that exists but does not parse is an error.
func ReadLevels(dir string, open Opener) ([]*Maze, error) {
	levels := make([]*Maze, 0)
	for n := 1; ; n++ {
		name := LevelFile(dir, n)
		file, err := open(name)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		m, err := ReadMaze(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		levels = append(levels, m)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLevels, dir)
	}
	return levels, nil
}
