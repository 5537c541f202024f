package scheduler

import (
	"sync"

	"github.com/waw666waw666/reminder/pkg/remind"
)

// inbox queues manual trigger commands. push never blocks and never drops:
// when the channel buffer is full, commands go to an overflow slice, and
// they keep going there until drain empties it so FIFO order holds.
type inbox struct {
	ch       chan remind.Task
	mu       sync.Mutex
	overflow []remind.Task
}

func newInbox(size int) *inbox {
	return &inbox{ch: make(chan remind.Task, size)}
}

func (b *inbox) push(t remind.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.overflow) == 0 {
		select {
		case b.ch <- t:
			return
		default:
		}
	}
	b.overflow = append(b.overflow, t)
}

// drain returns every queued command without waiting for more.
func (b *inbox) drain() []remind.Task {
	var out []remind.Task
	for {
		select {
		case t := <-b.ch:
			out = append(out, t)
			continue
		default:
		}
		break
	}
	b.mu.Lock()
	out = append(out, b.overflow...)
	b.overflow = nil
	b.mu.Unlock()
	return out
}
