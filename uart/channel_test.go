package uart

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort hands out queued chunks and behaves like a serial port with a short
// read timeout when nothing is queued.
type fakePort struct {
	chunks chan []byte
	errs   chan error
	block  chan struct{}

	mu      sync.Mutex
	written []string
	closed  bool
}

func newFakePort() *fakePort {
	return &fakePort{
		chunks: make(chan []byte, 16),
		errs:   make(chan error, 16),
	}
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.block != nil {
		<-p.block
		return 0, errors.New("closed")
	}
	select {
	case err := <-p.errs:
		return 0, err
	case chunk := <-p.chunks:
		return copy(b, chunk), nil
	case <-time.After(5 * time.Millisecond):
		return 0, nil
	}
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.written = append(p.written, string(b))
	return len(b), nil
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.block != nil {
		close(p.block)
	}
	return nil
}

func drain(c *Channel) []string {
	lines := make([]string, 0)
	for {
		line, ok := c.Poll()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestScanLines(t *testing.T) {
	var got []string
	emit := func(s string) { got = append(got, s) }

	rest := scanLines([]byte("left 2\nDO"), emit)
	assert.Equal(t, []string{"LEFT 2"}, got)
	assert.Equal(t, "DO", string(rest))

	rest = scanLines(append(rest, []byte("WN\n")...), emit)
	assert.Equal(t, []string{"LEFT 2", "DOWN"}, got)
	assert.Empty(t, rest)

	got = nil
	rest = scanLines([]byte("\n  \r\nup\r\npa\xffuse\nright"), emit)
	assert.Equal(t, []string{"UP", "PAUSE"}, got)
	assert.Equal(t, "right", string(rest))
}

func TestChannelReassemblesSplitReads(t *testing.T) {
	port := newFakePort()
	c := NewChannel(Config{Port: port})
	require.NoError(t, c.Start())
	defer c.Close()

	port.chunks <- []byte("left 2\nDO")
	port.chunks <- []byte("WN\n")

	require.Eventually(t, func() bool { return c.pending() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"LEFT 2", "DOWN"}, drain(c))

	_, ok := c.Poll()
	assert.False(t, ok)
}

func TestChannelSurvivesReadErrors(t *testing.T) {
	port := newFakePort()
	c := NewChannel(Config{Port: port, RetryDelay: time.Millisecond})
	require.NoError(t, c.Start())
	defer c.Close()

	port.errs <- errors.New("framing error")
	port.errs <- errors.New("framing error")
	port.chunks <- []byte("UP\nUP 3\n")

	require.Eventually(t, func() bool { return c.pending() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"UP", "UP 3"}, drain(c))
}

func TestChannelFlush(t *testing.T) {
	port := newFakePort()
	c := NewChannel(Config{Port: port})
	require.NoError(t, c.Start())
	defer c.Close()

	port.chunks <- []byte("RIGHT\nRIGHT\nRIGHT\n")
	require.Eventually(t, func() bool { return c.pending() == 3 }, time.Second, time.Millisecond)
	c.Flush()
	assert.Zero(t, c.pending())

	port.chunks <- []byte("MENU\n")
	require.Eventually(t, func() bool { return c.pending() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"MENU"}, drain(c))
}

func TestChannelStartStop(t *testing.T) {
	port := newFakePort()
	c := NewChannel(Config{Port: port})
	require.NoError(t, c.Start())
	require.NoError(t, c.Start())
	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())

	require.NoError(t, c.Start())
	port.chunks <- []byte("PAUSE\n")
	require.Eventually(t, func() bool { return c.pending() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, c.Close())
	assert.True(t, port.closed)
}

func TestChannelStopTimesOutOnStuckRead(t *testing.T) {
	port := newFakePort()
	port.block = make(chan struct{})
	c := NewChannel(Config{Port: port, JoinTimeout: 20 * time.Millisecond})
	require.NoError(t, c.Start())

	assert.ErrorIs(t, c.Stop(), ErrJoinTimeout)
	assert.ErrorIs(t, c.Start(), ErrReaderBusy)

	// closing the port releases the read and the reader exits
	require.NoError(t, c.Close())
	require.Eventually(t, func() bool {
		select {
		case <-c.done:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}

func TestChannelWithoutPort(t *testing.T) {
	c := NewChannel(Config{})
	assert.ErrorIs(t, c.Start(), ErrConnection)
	c.Send("VIC")
	_, ok := c.Poll()
	assert.False(t, ok)
}

func TestChannelSend(t *testing.T) {
	port := newFakePort()
	c := NewChannel(Config{Port: port})
	c.Send("RUMBLE")
	c.Send("VIC")
	assert.Equal(t, []string{"RUMBLE\n", "VIC\n"}, port.written)
}

func TestOpenWithoutLink(t *testing.T) {
	_, err := Open("  ", 115200)
	assert.ErrorIs(t, err, ErrConnection)

	_, err = Open("/dev/does-not-exist-tiltmaze", 115200)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestOffline(t *testing.T) {
	var r Remote = Offline{}
	r.Send("MENU")
	r.Flush()
	_, ok := r.Poll()
	assert.False(t, ok)
}
