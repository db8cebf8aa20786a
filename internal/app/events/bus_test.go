package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lbjllc/travelbook/internal/app/events"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	bus := events.NewBus()
	a := bus.Subscribe(1)
	b := bus.Subscribe(1)

	bus.Publish(events.Event{Kind: events.KindMutation, Op: "add_trip"})

	evA := <-a
	evB := <-b
	assert.Equal(t, "add_trip", evA.Op)
	assert.Equal(t, "add_trip", evB.Op)
	assert.False(t, evA.At.IsZero())
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(1)

	bus.Publish(events.Event{Op: "first"})
	bus.Publish(events.Event{Op: "second", Err: errors.New("boom")})

	assert.Equal(t, "first", (<-ch).Op)
	assert.Len(t, ch, 0)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(1)
	bus.Unsubscribe(ch)

	_, ok := <-ch
	assert.False(t, ok)

	var nilBus *events.Bus
	nilBus.Publish(events.Event{Op: "ignored"})
}
