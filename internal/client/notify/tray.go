package notify

import (
	"sort"
	"sync"
	"time"
)

// DefaultTTL is how long a toast stays in the tray unless dismissed.
const DefaultTTL = 5 * time.Second

// Toast is a notification as shown to the user.
type Toast struct {
	ID      int64
	Type    Type
	Message string
}

type stopper interface {
	Stop() bool
}

type Subscriber interface {
	Subscribe(h Handler) (unsubscribe func())
}

type Tray struct {
	mu     sync.Mutex
	nextID int64
	items  []Toast
	timers map[int64]stopper
	ttl    time.Duration
	onAdd  func(Toast)

	afterFunc   func(d time.Duration, f func()) stopper
	unsubscribe func()
}

// NewTray subscribes a tray to bus. onAdd, if not nil, is called for every
// new toast after it has been stored.
func NewTray(bus Subscriber, ttl time.Duration, onAdd func(Toast)) *Tray {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	t := &Tray{
		timers: make(map[int64]stopper),
		ttl:    ttl,
		onAdd:  onAdd,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
	t.unsubscribe = bus.Subscribe(t.add)
	return t
}

func (t *Tray) add(n Notification) {
	t.mu.Lock()
	t.nextID++
	toast := Toast{ID: t.nextID, Type: n.Type, Message: n.Message}
	t.items = append(t.items, toast)
	t.timers[toast.ID] = t.afterFunc(t.ttl, func() { t.remove(toast.ID) })
	onAdd := t.onAdd
	t.mu.Unlock()

	if onAdd != nil {
		onAdd(toast)
	}
}

func (t *Tray) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
	for i, it := range t.items {
		if it.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// Dismiss removes the toast before its lifetime is over. It reports whether
// the toast was still present.
func (t *Tray) Dismiss(id int64) bool {
	return t.remove(id)
}

// Items returns the live toasts, oldest first.
func (t *Tray) Items() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Toast, len(t.items))
	copy(out, t.items)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close detaches the tray from the bus and cancels pending expiries.
func (t *Tray) Close() {
	t.unsubscribe()

	t.mu.Lock()
	defer t.mu.Unlock()
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}
