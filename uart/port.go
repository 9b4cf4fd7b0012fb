package uart

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
)

// Port is the byte-stream link to the remote controller. Read should return
// periodically (a timeout read of 0 bytes is fine) so the reader can observe Stop.
type Port interface {
	io.ReadWriteCloser
}

const defaultReadTimeout = 100 * time.Millisecond

// Open picks the transport from the link: ws:// and wss:// URLs dial the
// controller simulator, anything else is a serial device path.
func Open(link string, baud int) (Port, error) {
	link = strings.TrimSpace(link)
	switch {
	case link == "":
		return nil, fmt.Errorf("%w: no link configured", ErrConnection)
	case strings.HasPrefix(link, "ws://"), strings.HasPrefix(link, "wss://"):
		return DialWebsocket(link)
	default:
		return OpenSerial(link, baud)
	}
}

// OpenSerial opens a device in 8N1 mode with a short read timeout.
func OpenSerial(name string, baud int) (Port, error) {
	p, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnection, name, err)
	}
	if err := p.SetReadTimeout(defaultReadTimeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrConnection, name, err)
	}
	return p, nil
}

// wsPort adapts a websocket connection to a byte stream. Every text frame is a
// chunk of the stream; frames need not align with lines.
type wsPort struct {
	conn    *websocket.Conn
	pending []byte
	err     error
	writeMu sync.Mutex
}

func DialWebsocket(url string) (Port, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnection, url, err)
	}
	return &wsPort{conn: conn}, nil
}

func (p *wsPort) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		// gorilla panics on repeated reads of a failed connection
		if p.err != nil {
			return 0, p.err
		}
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			p.err = err
			return 0, err
		}
		p.pending = data
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *wsPort) Write(b []byte) (int, error) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if err := p.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (p *wsPort) Close() error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_ = p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return p.conn.Close()
}
