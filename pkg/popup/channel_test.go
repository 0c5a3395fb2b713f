package popup

import (
	"testing"
	"time"

	"github.com/grovetools/spoolview/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(label string) State {
	return State{Visible: true, Position: models.Point{X: 2, Y: 1}, Rows: []Row{{Label: label}}}
}

func TestChannelFanOut(t *testing.T) {
	c := NewChannel()
	a := c.Subscribe()
	b := c.Subscribe()
	require.Equal(t, 2, c.Subscribers())

	c.Emit(sample("one"))

	assert.Equal(t, []string{"one"}, (<-a).Labels())
	assert.Equal(t, []string{"one"}, (<-b).Labels())
}

func TestChannelSlowListenerDoesNotBlock(t *testing.T) {
	c := NewChannel()
	slow := c.Subscribe()
	fast := c.Subscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*4; i++ {
			c.Emit(sample("x"))
			<-fast
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked on a full subscriber")
	}
	assert.Len(t, slow, subscriberBuffer)
}

func TestUnsubscribeClosesAndIsIdempotent(t *testing.T) {
	c := NewChannel()
	ch := c.Subscribe()
	c.Unsubscribe(ch)
	c.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, c.Subscribers())

	c.Emit(sample("after"))
}
