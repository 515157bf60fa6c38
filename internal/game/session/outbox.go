package session

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cory-johannsen/adventure/internal/game/output"
)

// Outbox is an output.Sink that routes each appended batch to a channel,
// bridging a session to a connection writer goroutine.
type Outbox struct {
	id      string
	events  chan []output.Entry
	mu      sync.Mutex
	closed  bool
	dropped atomic.Int64
}

// NewOutbox creates an Outbox for the given session id.
//
// Precondition: id must be non-empty.
// Postcondition: Returns an Outbox with an open events channel.
func NewOutbox(id string, bufferSize int) *Outbox {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Outbox{
		id:     id,
		events: make(chan []output.Entry, bufferSize),
	}
}

// Push enqueues a batch of entries.
//
// Postcondition: The batch is enqueued, or an error is returned if the
// outbox is closed or full.
func (o *Outbox) Push(entries []output.Entry) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return fmt.Errorf("outbox %s is closed", o.id)
	}
	select {
	case o.events <- entries:
		return nil
	default:
		return fmt.Errorf("outbox %s event buffer full", o.id)
	}
}

// Append implements output.Sink. Batches that cannot be enqueued are counted
// and discarded.
func (o *Outbox) Append(entries ...output.Entry) {
	if len(entries) == 0 {
		return
	}
	if err := o.Push(append([]output.Entry(nil), entries...)); err != nil {
		o.dropped.Add(1)
	}
}

// Dropped returns how many batches were discarded.
func (o *Outbox) Dropped() int64 { return o.dropped.Load() }

// Events returns the read-only events channel.
func (o *Outbox) Events() <-chan []output.Entry {
	return o.events
}

// Close marks the outbox closed and closes the events channel.
//
// Postcondition: Further Push calls return an error. Close is idempotent.
func (o *Outbox) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.closed {
		o.closed = true
		close(o.events)
	}
	return nil
}

// IsClosed reports whether the outbox has been closed.
func (o *Outbox) IsClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}
