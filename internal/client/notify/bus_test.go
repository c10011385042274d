package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInRegistrationOrder(t *testing.T) {
	b := NewBus()
	var got []string

	b.Subscribe(func(n Notification) { got = append(got, "a:"+n.Message) })
	b.Subscribe(func(n Notification) { got = append(got, "b:"+n.Message) })

	b.Emit(Success, "one")
	b.Emit(Error, "two")

	assert.Equal(t, []string{"a:one", "b:one", "a:two", "b:two"}, got)
}

func TestBus_NoSubscribers(t *testing.T) {
	b := NewBus()
	require.NotPanics(t, func() { b.Emit(Info, "nobody listens") })
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus()
	var a, c int

	unsubA := b.Subscribe(func(Notification) { a++ })
	b.Subscribe(func(Notification) { c++ })
	require.Equal(t, 2, b.Len())

	b.Emit(Info, "x")
	unsubA()
	unsubA()
	b.Emit(Info, "y")

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, c)
	assert.Equal(t, 1, b.Len())
}

func TestBus_HandlerMayUnsubscribeItself(t *testing.T) {
	b := NewBus()
	calls := 0

	var unsub func()
	unsub = b.Subscribe(func(Notification) {
		calls++
		unsub()
	})

	b.Emit(Info, "first")
	b.Emit(Info, "second")
	assert.Equal(t, 1, calls)
}

func TestBus_ConcurrentEmit(t *testing.T) {
	b := NewBus()
	var mu sync.Mutex
	count := 0
	b.Subscribe(func(Notification) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Emit(Info, "x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, count)
}
