// Package notify carries short user-facing messages from the session and the
// views to whatever renders them.
//
// Bus is a process-wide publish/subscribe point: Emit delivers synchronously
// to every current subscriber in registration order. Tray is the renderer
// side. It subscribes once, numbers each message and drops it again after a
// fixed lifetime or when dismissed.
package notify

import "sync"

type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Info    Type = "info"
)

// Notification is an emitted message before it is given an id.
type Notification struct {
	Type    Type
	Message string
}

type Handler func(Notification)

// Emitter is what producers of notifications depend on.
type Emitter interface {
	Emit(t Type, message string)
}

type subscription struct {
	id uint64
	h  Handler
}

type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

func NewBus() *Bus {
	return &Bus{}
}

// Emit delivers the message to the subscribers registered at the time of the
// call. Handlers run on the caller's goroutine, outside the bus lock, so a
// handler may subscribe or unsubscribe.
func (b *Bus) Emit(t Type, message string) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	n := Notification{Type: t, Message: message}
	for _, s := range subs {
		s.h(n)
	}
}

// Subscribe registers h and returns a function removing it. The returned
// function may be called more than once.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, h: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Len reports the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
