package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coursecraft/internal/domain"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(func(event any) { order = append(order, "first") })
	bus.Subscribe(func(event any) { order = append(order, "second") })

	bus.Publish(NodeAdded{})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	var calls int
	unsubscribe := bus.Subscribe(func(event any) { calls++ })
	keep := 0
	bus.Subscribe(func(event any) { keep++ })

	bus.Publish(NodeRemoved{})
	unsubscribe()
	bus.Publish(NodeRemoved{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, keep)

	// Unsubscribing twice is harmless.
	unsubscribe()
	bus.Publish(NodeRemoved{})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 3, keep)
}

func TestBusCarriesEventPayload(t *testing.T) {
	bus := NewBus()
	node := domain.NewTopicNode(&domain.Topic{ID: 1, Title: "Syntax"})
	parent := domain.NewCourseNode(&domain.Course{ID: 1, Title: "Go Basics"})

	var got NodeMoved
	bus.Subscribe(func(event any) {
		if moved, ok := event.(NodeMoved); ok {
			got = moved
		}
	})

	bus.Publish(NodeMoved{Node: node, OldParent: parent, NewParent: parent})
	assert.Same(t, node, got.Node)
	assert.Same(t, parent, got.NewParent)
}
