package application

import "coursecraft/internal/domain"

// NodeMoved is published after a confirmed move has been applied locally.
type NodeMoved struct {
	Node      *domain.Node
	OldParent *domain.Node
	NewParent *domain.Node
}

// NodeAdded is published after the store confirmed a creation and the node
// joined the tree.
type NodeAdded struct {
	Node   *domain.Node
	Parent *domain.Node
}

// NodeRemoved is published after a confirmed deletion.
type NodeRemoved struct {
	Node   *domain.Node
	Parent *domain.Node
}

type subscriber struct {
	id int
	fn func(event any)
}

// Bus is a plain callback-list event dispatcher for cross-component
// notification (e.g. the schedule view reacting to moves). Dispatch is
// synchronous and in subscription order. Everything runs on the UI loop,
// so there is no locking.
type Bus struct {
	nextID      int
	subscribers []subscriber
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers fn for all events and returns its unsubscribe func.
func (b *Bus) Subscribe(fn func(event any)) func() {
	b.nextID++
	id := b.nextID
	b.subscribers = append(b.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subscribers {
			if s.id == id {
				b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers event to every subscriber.
func (b *Bus) Publish(event any) {
	for _, s := range b.subscribers {
		s.fn(event)
	}
}
