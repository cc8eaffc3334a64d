package runloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_PostOrderAndQuitStatus(t *testing.T) {
	loop := New()

	var order []int
	loop.Post(func() { order = append(order, 1) })
	loop.Post(func() { order = append(order, 2) })
	loop.Post(func() { loop.Quit(7) })

	status := loop.Run()

	assert.Equal(t, 7, status)
	assert.Equal(t, []int{1, 2}, order)
}

func TestLoop_QuitKeepsFirstStatus(t *testing.T) {
	loop := New()
	loop.Post(func() {
		loop.Quit(130)
		loop.Quit(1)
	})
	assert.Equal(t, 130, loop.Run())
}

func TestLoop_PostNeverRunsInline(t *testing.T) {
	loop := New()

	inline := false
	loop.Post(func() {
		ran := false
		loop.Post(func() { ran = true })
		// The nested task must not have run yet.
		inline = ran
		loop.Quit(0)
	})
	loop.Run()

	assert.False(t, inline)
}

func TestLoop_RunNested(t *testing.T) {
	loop := New()

	var events []string
	loop.Post(func() {
		events = append(events, "outer")
		assert.False(t, loop.Nested())

		answered := false
		loop.Post(func() {
			events = append(events, "inner")
			assert.True(t, loop.Nested())
			answered = true
		})
		loop.RunNested(func() bool { return answered })

		events = append(events, "after-nested")
		assert.False(t, loop.Nested())
		loop.Quit(0)
	})
	loop.Run()

	assert.Equal(t, []string{"outer", "inner", "after-nested"}, events)
}

func TestLoop_NestedExitsOnQuit(t *testing.T) {
	loop := New()
	loop.Post(func() {
		loop.Post(func() { loop.Quit(3) })
		loop.RunNested(func() bool { return false })
	})

	done := make(chan int, 1)
	go func() { done <- loop.Run() }()

	select {
	case status := <-done:
		assert.Equal(t, 3, status)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit after Quit inside nested iteration")
	}
}

func TestLoop_TickKeepsLoopIterating(t *testing.T) {
	loop := New()
	stop := loop.Tick(time.Millisecond)
	defer stop()

	// Quit from another goroutine; the ticker guarantees the loop wakes up.
	go func() {
		time.Sleep(10 * time.Millisecond)
		loop.Quit(0)
	}()

	done := make(chan struct{})
	go func() {
		loop.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not pick up quit")
	}
}

func TestCoalescer_MergesBursts(t *testing.T) {
	loop := New()
	c := NewCoalescer(loop)

	runs := 0
	last := ""
	for _, v := range []string{"a", "b", "c"} {
		v := v
		c.Post("resize", func() {
			runs++
			last = v
		})
	}
	loop.Post(func() { loop.Quit(0) })
	loop.Run()

	assert.Equal(t, 1, runs, "burst should collapse to one run")
	assert.Equal(t, "c", last, "latest callback wins")
}

func TestCoalescer_DistinctKeysRunIndependently(t *testing.T) {
	loop := New()
	c := NewCoalescer(loop)

	ran := map[string]bool{}
	c.Post("a", func() { ran["a"] = true })
	c.Post("b", func() { ran["b"] = true })
	loop.Post(func() { loop.Quit(0) })
	loop.Run()

	assert.True(t, ran["a"])
	assert.True(t, ran["b"])
}

func TestCoalescer_StopDropsPending(t *testing.T) {
	loop := New()
	c := NewCoalescer(loop)

	ran := false
	c.Post("a", func() { ran = true })
	c.Stop()
	c.Post("b", func() { ran = true })

	loop.Post(func() { loop.Quit(0) })
	loop.Run()

	require.False(t, ran)
}
