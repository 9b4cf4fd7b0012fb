package main

import (
	"bufio"
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tiltmaze/config"
	"github.com/zucenko/tiltmaze/model"
	"github.com/zucenko/tiltmaze/server"
)

type Server struct {
	router    *way.Router
	PadServer *server.PadServer
}

func main() {
	script := flag.String("script", "", "pad script to play once the server is up")
	flag.Parse()

	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	Server := Server{
		PadServer: server.NewPadServer(cfg.PadsimBest),
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Server.PadServer.Loop(ctx)
	Server.router = Server.PadServer.Routes()

	if *script != "" {
		go play(ctx, Server.PadServer, *script)
	}
	go forwardStdin(Server.PadServer)

	log.Printf("padsim listening on :%s, games dial ws://<host>:%s%s", cfg.PadsimPort, cfg.PadsimPort, server.URI_LINK)
	log.Fatalln(http.ListenAndServe(":"+cfg.PadsimPort, Server.router))
}

func play(ctx context.Context, s *server.PadServer, name string) {
	file, err := os.Open(name)
	if err != nil {
		log.Errorf("script %s: %v", name, err)
		return
	}
	defer file.Close()
	steps, err := server.ReadScript(file)
	if err != nil {
		log.Errorf("script %s: %v", name, err)
		return
	}
	if err := s.Play(ctx, steps); err != nil {
		log.Warnf("script %s stopped: %v", name, err)
		return
	}
	log.Infof("script %s done, %d steps", name, len(steps))
}

// forwardStdin broadcasts every typed line that parses as a command.
func forwardStdin(s *server.PadServer) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd, ok := model.ParseCommand(scanner.Text())
		if !ok {
			log.Warnf("not a command: %q", scanner.Text())
			continue
		}
		if err := s.Send(cmd.String()); err != nil {
			log.Warn(err)
		}
	}
}
