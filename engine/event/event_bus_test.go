package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit_CallsHandlersInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int
	bus.On("tick", func(args ...any) { order = append(order, 1) })
	bus.On("tick", func(args ...any) { order = append(order, 2) })
	bus.On("other", func(args ...any) { order = append(order, 99) })
	bus.On("tick", func(args ...any) { order = append(order, 3) })

	bus.Emit("tick")

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEmit_ForwardsArguments(t *testing.T) {
	bus := NewEventBus()
	var got []any
	bus.On(EventProgress, func(args ...any) { got = args })

	bus.Emit(EventProgress, 2, 5)

	assert.Equal(t, []any{2, 5}, got)
}

func TestEmit_HandlersAddedDuringEmitWaitForNextEmit(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	bus.On("grow", func(args ...any) {
		calls++
		bus.On("grow", func(args ...any) { calls++ })
	})

	bus.Emit("grow")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, bus.Count("grow"))

	bus.Emit("grow")
	// first handler runs and adds another, the handler added by the first emit runs too
	assert.Equal(t, 3, calls)
}

func TestEmit_HandlerRemovedDuringEmitStillRunsForThatEmit(t *testing.T) {
	bus := NewEventBus()
	var second Subscription
	calls := 0
	bus.On("x", func(args ...any) { bus.Off(second) })
	second = bus.On("x", func(args ...any) { calls++ })

	bus.Emit("x")
	assert.Equal(t, 1, calls)

	bus.Emit("x")
	assert.Equal(t, 1, calls)
}

func TestOff(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	sub := bus.On("x", func(args ...any) { calls++ })
	assert.Equal(t, "x", sub.Name())

	bus.Off(sub)
	bus.Off(sub)
	bus.Off(Subscription{name: "missing", id: 42})
	bus.Emit("x")

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.Count("x"))
}

func TestOnce(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	bus.Once(EventReady, func(args ...any) { calls++ })

	bus.Emit(EventReady)
	bus.Emit(EventReady)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Count(EventReady))
}

func TestEmit_ConcurrentSubscribers(t *testing.T) {
	bus := NewEventBus()
	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.On("x", func(args ...any) {
				mu.Lock()
				calls++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	bus.Emit("x")
	require.Equal(t, 16, bus.Count("x"))
	assert.Equal(t, 16, calls)
}
