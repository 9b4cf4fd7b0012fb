package uart

import (
	"sync"

	"github.com/gammazero/deque"
)

// queue is the unbounded FIFO between the reader goroutine and the game loop.
// Both sides only ever hold the lock for a single deque operation.
type queue struct {
	mu    sync.Mutex
	lines deque.Deque[string]
}

func (q *queue) push(line string) {
	q.mu.Lock()
	q.lines.PushBack(line)
	q.mu.Unlock()
}

func (q *queue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.lines.Len() == 0 {
		return "", false
	}
	return q.lines.PopFront(), true
}

// clear drops everything and returns how many lines were dropped.
func (q *queue) clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := q.lines.Len()
	q.lines.Clear()
	return n
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lines.Len()
}
