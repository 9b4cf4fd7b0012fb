package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tiltmaze/config"
	"github.com/zucenko/tiltmaze/game"
	"github.com/zucenko/tiltmaze/uart"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	levels, err := LoadLevels(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	fonts, err := LoadFonts()
	if err != nil {
		log.Fatal(err)
	}
	renderer, err := NewRenderer(fonts, cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}

	remote, closeRemote := connect(cfg)
	ctl, err := game.NewController(game.Config{
		Levels: levels,
		Remote: remote,
		Debug:  cfg.Debug,
	})
	if err != nil {
		closeRemote()
		log.Fatal(err)
	}
	g := NewGame(ctl, renderer, cfg.TPS)

	ebiten.SetMaxTPS(cfg.TPS)
	ebiten.SetFullscreen(cfg.Fullscreen)
	err = ebiten.Run(g.update, game.ScreenWidth, game.ScreenHeight, 1, "Tilt Maze")
	closeRemote()
	if err != nil && !errors.Is(err, ErrQuit) {
		log.Fatal(err)
	}
	log.Info("bye")
}

// connect opens the controller link. Without one the game still runs on local
// input only.
func connect(cfg config.Config) (uart.Remote, func()) {
	port, err := uart.Open(cfg.Link, cfg.Baud)
	if err != nil {
		log.WithError(err).Warn("no remote controller, local input only")
		return uart.Offline{}, func() {}
	}
	ch := uart.NewChannel(uart.Config{Port: port})
	if err := ch.Start(); err != nil {
		log.WithError(err).Warn("no remote controller, local input only")
		_ = port.Close()
		return uart.Offline{}, func() {}
	}
	log.Infof("remote controller on %s", cfg.Link)
	return ch, func() {
		if err := ch.Close(); err != nil {
			log.WithError(err).Warn("closing remote link")
		}
	}
}
