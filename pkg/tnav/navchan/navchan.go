// Package navchan is the bounded queue between code that requests navigation
// and the single loop that applies it.
//
// Send never blocks. When the queue is full the intent being sent is dropped,
// so intents already accepted keep their order. Exactly one consumer may drain
// the queue at a time; intents still queued when it stops are discarded.
package navchan

import (
	"context"
	"errors"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/tnav/pkg/tnav/intent"
	"github.com/BrandonKowalski/tnav/pkg/tnav/internal"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 64

// ErrConsumerActive is returned by Consume when another consumer is draining.
var ErrConsumerActive = errors.New("navchan: consumer already active")

// ApplyFunc handles one intent. Returning false stops the consumer.
type ApplyFunc func(in intent.Intent) (keepGoing bool)

// Channel buffers intents for a single consumer.
type Channel struct {
	queue     chan intent.Intent
	dropped   atomic.Int64
	consuming atomic.Bool
}

// New creates a Channel holding at most capacity pending intents.
func New(capacity int) *Channel {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Channel{queue: make(chan intent.Intent, capacity)}
}

// Send enqueues in without blocking. It reports false when the queue was
// full and in was dropped, or when in is nil; callers are free to ignore
// the result.
func (c *Channel) Send(in intent.Intent) bool {
	if in == nil {
		return false
	}
	select {
	case c.queue <- in:
		return true
	default:
		c.dropped.Inc()
		internal.GetInternalLogger().Debug("Dropped navigation intent, queue full",
			"kind", in.Kind().String(), "target", intent.Target(in), "capacity", cap(c.queue))
		return false
	}
}

// Len returns the number of pending intents.
func (c *Channel) Len() int { return len(c.queue) }

// Cap returns the queue bound.
func (c *Channel) Cap() int { return cap(c.queue) }

// Dropped returns how many intents Send has dropped so far.
func (c *Channel) Dropped() int64 { return c.dropped.Load() }

// Consuming reports whether a consumer is currently draining the channel.
func (c *Channel) Consuming() bool { return c.consuming.Load() }

// Consume drains the channel on the calling goroutine, in send order, until
// ctx is done or apply returns false. Each intent is checked against alive
// first; when alive reports false the intent is discarded unapplied.
// Pending intents are discarded when Consume returns.
func (c *Channel) Consume(ctx context.Context, alive func() bool, apply ApplyFunc) error {
	if err := c.Acquire(); err != nil {
		return err
	}
	defer c.Release()

	for {
		select {
		case <-ctx.Done():
			return nil
		case in := <-c.queue:
			if ctx.Err() != nil {
				return nil
			}
			if alive != nil && !alive() {
				internal.GetInternalLogger().Debug("Discarded navigation intent, host not alive",
					"kind", in.Kind().String(), "target", intent.Target(in))
				continue
			}
			if !apply(in) {
				return nil
			}
		}
	}
}

// Acquire claims the channel for a host that drains it with Receive. It
// returns ErrConsumerActive while Consume or another holder owns it.
func (c *Channel) Acquire() error {
	if !c.consuming.CompareAndSwap(false, true) {
		return ErrConsumerActive
	}
	return nil
}

// Release discards pending intents and gives up a claim made by Acquire.
func (c *Channel) Release() {
	c.Discard()
	c.consuming.Store(false)
}

// Receive waits for the next intent. It reports false when ctx is done first.
// Hosts that schedule their own drain step hold Acquire for the life of
// their loop and call Receive from one place at a time.
func (c *Channel) Receive(ctx context.Context) (intent.Intent, bool) {
	select {
	case <-ctx.Done():
		return nil, false
	case in := <-c.queue:
		return in, true
	}
}

// Discard drops every pending intent and returns how many were dropped.
func (c *Channel) Discard() int {
	n := 0
	for {
		select {
		case <-c.queue:
			n++
		default:
			if n > 0 {
				internal.GetInternalLogger().Debug("Discarded pending navigation intents", "count", n)
			}
			return n
		}
	}
}
