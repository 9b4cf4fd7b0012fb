package main

import (
	"io"

	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tiltmaze/model"
)

// LoadLevels reads level_N.txt files from dir through ebitenutil so the same
// code works for bundled assets.
func LoadLevels(dir string) ([]*model.Maze, error) {
	levels, err := model.ReadLevels(dir, func(name string) (io.ReadCloser, error) {
		return ebitenutil.OpenFile(name)
	})
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d levels from %s", len(levels), dir)
	return levels, nil
}
