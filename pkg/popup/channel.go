// Package popup carries pick results to whoever renders them.
package popup

import (
	"sync"

	"github.com/grovetools/spoolview/pkg/models"
)

// Row is one line of the popup menu.
type Row struct {
	Label string `json:"label"`
}

// State is the popup's full content. Each emission replaces the previous one.
type State struct {
	Visible  bool         `json:"visible"`
	Position models.Point `json:"position"`
	Rows     []Row        `json:"rows"`
}

// Labels returns the row labels in order.
func (s State) Labels() []string {
	out := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Label
	}
	return out
}

const subscriberBuffer = 16

// Channel is the PopupBroadcastChannel. It fans every emitted State out to
// all subscribers without ever blocking the emitter.
type Channel struct {
	mu          sync.RWMutex
	subscribers map[chan State]struct{}
}

// NewChannel creates a channel with no subscribers.
func NewChannel() *Channel {
	return &Channel{subscribers: make(map[chan State]struct{})}
}

// Emit delivers s to every subscriber. A subscriber whose buffer is full misses it.
func (c *Channel) Emit(s State) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for ch := range c.subscribers {
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe creates a new buffered subscription.
func (c *Channel) Subscribe() chan State {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan State, subscriberBuffer)
	c.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (c *Channel) Unsubscribe(ch chan State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.subscribers[ch]; !ok {
		return
	}
	delete(c.subscribers, ch)
	close(ch)
}

// Subscribers returns the number of live subscriptions.
func (c *Channel) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subscribers)
}
