package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// eventQueue forwards messages to the program in the order they were pushed. Push never
// blocks, so sessions may call it from the event loop itself.
type eventQueue struct {
	mu      sync.Mutex
	pending []tea.Msg
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// push appends msg to the queue
func (q *eventQueue) push(msg tea.Msg) {
	q.mu.Lock()
	q.pending = append(q.pending, msg)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// run delivers queued messages one at a time until close is called
func (q *eventQueue) run(deliver func(tea.Msg)) {
	for {
		select {
		case <-q.done:
			return
		case <-q.wake:
		}

		for {
			q.mu.Lock()
			batch := q.pending
			q.pending = nil
			q.mu.Unlock()
			if len(batch) == 0 {
				break
			}
			for _, msg := range batch {
				deliver(msg)
			}
		}
	}
}

// close stops run; pending messages are dropped
func (q *eventQueue) close() {
	q.once.Do(func() { close(q.done) })
}
