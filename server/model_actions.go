package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tiltmaze/model"
)

const timeout = 200 * time.Millisecond

func NewPadServer(best int) *PadServer {
	return &PadServer{
		Upgrader:    &websocket.Upgrader{},
		Best:        best,
		Connects:    make(chan PadConnectRequest),
		Disconnects: make(chan *PadSession),
		Commands:    make(chan string, 16),
		Received:    make(chan Notification, 64),
		sessions:    make(map[uuid.UUID]*PadSession),
	}
}

// HandleLink upgrades the request and keeps it open until the session ends.
func (s *PadServer) HandleLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("HandleLink - connection received")
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("HandleLink websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		closed := make(chan struct{})
		select {
		case s.Connects <- PadConnectRequest{Conn: con, Closed: closed}:
		case <-time.After(timeout):
			log.Warn("HandleLink Connects TIMEOUTED")
			return
		}
		<-closed
	}
}

// HandleCommand broadcasts POST /cmd/:verb?n= to every connected game.
func (s *PadServer) HandleCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		line, err := FormatCommand(way.Param(r.Context(), "verb"), r.URL.Query().Get("n"))
		if err != nil {
			http.Error(w, err.Error(), HTTP_BAD_REQUEST)
			return
		}
		if err := s.Send(line); err != nil {
			http.Error(w, err.Error(), HTTP_TIMEOUT)
			return
		}
		w.WriteHeader(HTTP_ACCEPTED)
	}
}

// Send queues line for broadcast.
func (s *PadServer) Send(line string) error {
	select {
	case s.Commands <- line:
		return nil
	case <-time.After(timeout):
		log.Warnf("PadServer.Send %q TIMEOUTED", line)
		return ErrBusy
	}
}

func (s *PadServer) Loop(ctx context.Context) {
	log.Info("PadServer.Loop starting")
	for {
		select {
		case req := <-s.Connects:
			ps := s.addSession(req.Conn, req.Closed)
			log.WithField("pad", ps.ID).Infof("PadServer.Loop game connected, %d live", len(s.sessions))
		case ps := <-s.Disconnects:
			s.removeSession(ps)
			log.WithField("pad", ps.ID).Infof("PadServer.Loop game gone, %d live", len(s.sessions))
		case line := <-s.Commands:
			for _, ps := range s.sessions {
				ps.send(line)
			}
			log.Debugf("PadServer.Loop <<< %s to %d games", line, len(s.sessions))
		case <-ctx.Done():
			for _, ps := range s.sessions {
				s.removeSession(ps)
			}
			log.Info("PadServer.Loop ENDED")
			return
		}
	}
}

func (s *PadServer) addSession(conn *websocket.Conn, closed chan struct{}) *PadSession {
	ps := &PadSession{
		State:          PS_NEW,
		ID:             uuid.New(),
		Server:         s,
		Conn:           conn,
		Closed:         closed,
		MessagesToSend: make(chan string, 32),
		done:           make(chan struct{}),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	s.sessions[ps.ID] = ps
	ps.State = PS_LIVE
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	return ps
}

func (s *PadServer) removeSession(ps *PadSession) {
	if _, ok := s.sessions[ps.ID]; !ok {
		return
	}
	delete(s.sessions, ps.ID)
	ps.State = PS_CLOSED
	close(ps.done)
	close(ps.Closed)
}

func (ps *PadSession) send(line string) {
	select {
	case ps.MessagesToSend <- line:
	default:
		log.WithField("pad", ps.ID).Warnf("dropping %q, outbox full", line)
	}
}

// LoopChannelRead logs what the game reports and answers MENU with the stored
// best time. It ends the session when the connection fails.
func (ps *PadSession) LoopChannelRead() {
	logger := log.WithField("pad", ps.ID)
	logger.Debug("LoopChannelRead STARTED")
	for {
		_, data, err := ps.Conn.ReadMessage()
		if err != nil {
			logger.Infof("LoopChannelRead connection closed: %v", err)
			break
		}
		ps.DebugLastMessage = time.Now()
		for _, line := range strings.Split(string(data), "\n") {
			if line = model.Normalize(line); line == "" {
				continue
			}
			ps.DebugInMessages++
			ps.handle(line)
		}
	}
	select {
	case ps.Server.Disconnects <- ps:
	case <-ps.done:
	}
	logger.Debug("LoopChannelRead ENDED")
}

func (ps *PadSession) handle(event string) {
	log.WithField("pad", ps.ID).Infof("game >>> %s", event)
	select {
	case ps.Server.Received <- Notification{Session: ps.ID, Event: event}:
	default:
	}
	if event == model.EVENT_MENU && ps.Server.Best != NO_BEST {
		ps.send(fmt.Sprintf("%s %d", model.CMD_SCORE, ps.Server.Best))
	}
}

// LoopChannelWrite only consumes the outbox, one text frame per line.
func (ps *PadSession) LoopChannelWrite() {
	logger := log.WithField("pad", ps.ID)
	logger.Debug("LoopChannelWrite STARTED")
loop:
	for {
		select {
		case line := <-ps.MessagesToSend:
			if err := ps.Conn.WriteMessage(websocket.TextMessage, []byte(line+"\n")); err != nil {
				logger.Warnf("LoopChannelWrite cant write %v", err)
				_ = ps.Conn.Close()
				break loop
			}
			ps.DebugOutMessages++
		case <-ps.done:
			break loop
		}
	}
	logger.Debug("LoopChannelWrite ENDED")
}
