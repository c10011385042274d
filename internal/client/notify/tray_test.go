package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	was := !f.stopped
	f.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) afterFunc(d time.Duration, f func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs the i-th scheduled expiry unless it was stopped.
func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	if !t.stopped {
		t.f()
	}
}

func newTestTray(t *testing.T, bus *Bus) (*Tray, *fakeClock) {
	t.Helper()
	clock := &fakeClock{}
	tray := NewTray(bus, 5*time.Second, nil)
	tray.afterFunc = clock.afterFunc
	t.Cleanup(tray.Close)
	return tray, clock
}

func TestTray_AssignsAscendingIDs(t *testing.T) {
	bus := NewBus()
	tray, clock := newTestTray(t, bus)

	bus.Emit(Success, "Post created successfully!")
	bus.Emit(Error, "Failed to fetch posts.")

	assert.Equal(t, []Toast{
		{ID: 1, Type: Success, Message: "Post created successfully!"},
		{ID: 2, Type: Error, Message: "Failed to fetch posts."},
	}, tray.Items())

	require.Len(t, clock.timers, 2)
	assert.Equal(t, 5*time.Second, clock.timers[0].d)
}

func TestTray_ExpiresAfterTTL(t *testing.T) {
	bus := NewBus()
	tray, clock := newTestTray(t, bus)

	bus.Emit(Info, "a")
	bus.Emit(Info, "b")

	clock.fire(0)

	items := tray.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Message)
}

func TestTray_DismissCancelsTimer(t *testing.T) {
	bus := NewBus()
	tray, clock := newTestTray(t, bus)

	bus.Emit(Info, "a")
	require.True(t, tray.Dismiss(1))
	assert.False(t, tray.Dismiss(1))
	assert.Empty(t, tray.Items())
	assert.True(t, clock.timers[0].stopped)

	clock.fire(0)
	assert.Empty(t, tray.Items())
}

func TestTray_IDsKeepGrowingAfterRemoval(t *testing.T) {
	bus := NewBus()
	tray, _ := newTestTray(t, bus)

	bus.Emit(Info, "a")
	tray.Dismiss(1)
	bus.Emit(Info, "b")

	items := tray.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
}

func TestTray_OnAdd(t *testing.T) {
	bus := NewBus()
	var seen []Toast
	tray := NewTray(bus, 0, func(tt Toast) { seen = append(seen, tt) })
	tray.afterFunc = (&fakeClock{}).afterFunc
	defer tray.Close()

	assert.Equal(t, DefaultTTL, tray.ttl)

	bus.Emit(Error, "You are not logged in.")
	require.Len(t, seen, 1)
	assert.Equal(t, Toast{ID: 1, Type: Error, Message: "You are not logged in."}, seen[0])
}

func TestTray_SubscribesOnceAndCloseDetaches(t *testing.T) {
	bus := NewBus()
	tray := NewTray(bus, time.Second, nil)
	tray.afterFunc = (&fakeClock{}).afterFunc
	require.Equal(t, 1, bus.Len())

	tray.Close()
	assert.Equal(t, 0, bus.Len())

	bus.Emit(Info, "late")
	assert.Empty(t, tray.Items())
}

func TestTray_RealTimerExpiry(t *testing.T) {
	bus := NewBus()
	tray := NewTray(bus, 20*time.Millisecond, nil)
	defer tray.Close()

	bus.Emit(Info, "short lived")
	require.Len(t, tray.Items(), 1)

	require.Eventually(t, func() bool { return len(tray.Items()) == 0 }, time.Second, 5*time.Millisecond)
}
