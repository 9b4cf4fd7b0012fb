package uart

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrConnection  = errors.New("remote link unavailable")
	ErrJoinTimeout = errors.New("reader did not stop in time")
	ErrReaderBusy  = errors.New("previous reader still running")
)

const (
	DefaultJoinTimeout = time.Second
	DefaultRetryDelay  = 100 * time.Millisecond
	DefaultReadBuffer  = 256
)

// Remote is what the game loop needs from the command link.
type Remote interface {
	// Poll returns the oldest buffered line without blocking.
	Poll() (string, bool)
	// Flush drops every buffered line.
	Flush()
	// Send writes one outbound notification.
	Send(event string)
}

type Config struct {
	Port        Port
	JoinTimeout time.Duration
	RetryDelay  time.Duration
	ReadBuffer  int
}

// Channel owns the port, a background reader and the line queue. The reader is
// the only producer, the game loop the only consumer.
type Channel struct {
	port        Port
	queue       queue
	joinTimeout time.Duration
	retryDelay  time.Duration
	readBuffer  int

	running atomic.Bool
	mu      sync.Mutex
	done    chan struct{}
	writeMu sync.Mutex
}

func NewChannel(c Config) *Channel {
	ch := &Channel{
		port:        c.Port,
		joinTimeout: c.JoinTimeout,
		retryDelay:  c.RetryDelay,
		readBuffer:  c.ReadBuffer,
	}
	if ch.joinTimeout <= 0 {
		ch.joinTimeout = DefaultJoinTimeout
	}
	if ch.retryDelay <= 0 {
		ch.retryDelay = DefaultRetryDelay
	}
	if ch.readBuffer <= 0 {
		ch.readBuffer = DefaultReadBuffer
	}
	return ch
}

// Start launches the reader. Calling it while running is a no-op.
func (c *Channel) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.port == nil {
		return ErrConnection
	}
	if c.running.Load() {
		return nil
	}
	if c.done != nil {
		select {
		case <-c.done:
		default:
			return ErrReaderBusy
		}
	}
	c.running.Store(true)
	c.done = make(chan struct{})
	go c.loopRead(c.done)
	log.Info("uart reader started")
	return nil
}

// Stop asks the reader to exit and waits up to the join timeout. A timeout is
// reported but leaves the channel usable for teardown.
func (c *Channel) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running.Load() {
		return nil
	}
	c.running.Store(false)
	select {
	case <-c.done:
		log.Info("uart reader stopped")
		return nil
	case <-time.After(c.joinTimeout):
		log.Warnf("uart reader still running after %v", c.joinTimeout)
		return ErrJoinTimeout
	}
}

// Close stops the reader and releases the port.
func (c *Channel) Close() error {
	stopErr := c.Stop()
	if c.port == nil {
		return stopErr
	}
	if err := c.port.Close(); err != nil {
		return err
	}
	return stopErr
}

func (c *Channel) Poll() (string, bool) {
	return c.queue.pop()
}

func (c *Channel) Flush() {
	if n := c.queue.clear(); n > 0 {
		log.Debugf("uart flushed %d stale commands", n)
	}
}

// pending is the number of buffered lines.
func (c *Channel) pending() int {
	return c.queue.len()
}

func (c *Channel) Send(event string) {
	if c.port == nil {
		return
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.port.Write([]byte(event + "\n")); err != nil {
		log.WithError(err).Warnf("uart send %s failed", event)
		return
	}
	log.Debugf("uart >>> %s", event)
}

func (c *Channel) loopRead(done chan struct{}) {
	defer close(done)
	buf := make([]byte, c.readBuffer)
	var pending []byte
	failures := 0
	for c.running.Load() {
		n, err := c.port.Read(buf)
		if n > 0 {
			pending = scanLines(append(pending, buf[:n]...), c.queue.push)
		}
		if err != nil {
			failures++
			if failures == 1 || failures%50 == 0 {
				log.WithError(err).Warnf("uart read failed (%d in a row), retrying", failures)
			}
			time.Sleep(c.retryDelay)
			continue
		}
		failures = 0
	}
}

// scanLines emits every complete line in buffer and returns the unterminated
// remainder. Lines are decoded dropping invalid UTF-8, trimmed and upper-cased;
// empty lines are skipped.
func scanLines(buffer []byte, emit func(string)) []byte {
	for {
		i := bytes.IndexByte(buffer, '\n')
		if i < 0 {
			return buffer
		}
		line := strings.TrimSpace(strings.ToValidUTF8(string(buffer[:i]), ""))
		buffer = buffer[i+1:]
		if line != "" {
			emit(strings.ToUpper(line))
		}
	}
}

// Offline stands in for the link when no port could be opened, so the game
// still runs on local input.
type Offline struct{}

func (Offline) Poll() (string, bool) { return "", false }

func (Offline) Flush() {}

func (Offline) Send(event string) {
	log.Debugf("offline, dropping %s", event)
}
