package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeRunsDueTimersInOrder(t *testing.T) {
	c := NewFake(epoch)
	var order []string

	c.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(250 * time.Millisecond)
	require.Equal(t, []string{"a", "b"}, order)
	require.Equal(t, 1, c.Pending())
	require.Equal(t, epoch.Add(250*time.Millisecond), c.Now())

	c.Advance(50 * time.Millisecond)
	require.Equal(t, []string{"a", "b", "c"}, order)
	require.Zero(t, c.Pending())
}

func TestFakeEqualDeadlinesFireFIFO(t *testing.T) {
	c := NewFake(epoch)
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		c.AfterFunc(time.Second, func() { order = append(order, i) })
	}
	c.Advance(time.Second)
	require.Equal(t, []int{0, 1, 2}, order)
}

func TestFakeChainedTimersWithinWindow(t *testing.T) {
	c := NewFake(epoch)
	var fired []time.Time

	var step func()
	step = func() {
		fired = append(fired, c.Now())
		if len(fired) < 3 {
			c.AfterFunc(time.Second, step)
		}
	}
	c.AfterFunc(time.Second, step)

	c.Advance(10 * time.Second)
	require.Equal(t, []time.Time{
		epoch.Add(1 * time.Second),
		epoch.Add(2 * time.Second),
		epoch.Add(3 * time.Second),
	}, fired)
}

func TestFakeStop(t *testing.T) {
	c := NewFake(epoch)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())

	c.Advance(2 * time.Second)
	require.False(t, fired)
	require.Zero(t, c.Pending())
}

func TestFakeStopAfterFire(t *testing.T) {
	c := NewFake(epoch)
	timer := c.AfterFunc(time.Second, func() {})
	c.Advance(time.Second)
	require.False(t, timer.Stop())
}

func TestScaled(t *testing.T) {
	c := NewFake(epoch)
	s := Scaled(c, 2)

	fired := false
	s.AfterFunc(time.Second, func() { fired = true })

	c.Advance(499 * time.Millisecond)
	require.False(t, fired)
	c.Advance(time.Millisecond)
	require.True(t, fired)

	require.Equal(t, Scheduler(c), Scaled(c, 1))
	require.Equal(t, Scheduler(c), Scaled(c, 0))
}

func TestRealAfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("real timer did not fire")
	}
}
