package event

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
)

// Event names emitted by the engine's producers.
const (
	// EventReady fires once when every requested asset has completed. No arguments.
	EventReady = "ready"
	// EventProgress fires after each first completion. Arguments: completed int, total int.
	EventProgress = "progress"
	// EventAssetFailed fires when a backend reports an error. Arguments: id string, err error.
	EventAssetFailed = "asset-failed"
)

// Handler receives the arguments passed to Emit.
type Handler func(args ...any)

// Subscription identifies a registered handler. The zero value is never returned by On.
type Subscription struct {
	name string
	id   uint64
}

// Name returns the event name the subscription listens to.
func (s Subscription) Name() string {
	return s.name
}

type entry struct {
	id      uint64
	handler Handler
}

type eventBus struct {
	mu *sync.Mutex

	nextID   uint64
	handlers map[string][]entry

	logger *logging.Logger
}

// EventBus is a synchronous publish/subscribe primitive held by value in the components that produce events.
// Emit calls every handler registered for the name, in subscription order, before returning.
// Each Emit works on a snapshot of the handler list taken at call time: handlers added or removed by a handler
// take effect from the next Emit.
type EventBus interface {
	// On registers a handler for the named event.
	//
	// Parameters:
	//   - name: the event name
	//   - handler: the function to call on Emit
	//
	// Returns:
	//   - Subscription: the handle used to unsubscribe
	On(name string, handler Handler) Subscription

	// Once registers a handler that is removed before its first invocation.
	//
	// Parameters:
	//   - name: the event name
	//   - handler: the function to call on the next Emit
	//
	// Returns:
	//   - Subscription: the handle used to unsubscribe before it fires
	Once(name string, handler Handler) Subscription

	// Off removes a subscription. Unknown or already removed subscriptions are ignored.
	//
	// Parameters:
	//   - sub: the subscription returned by On or Once
	Off(sub Subscription)

	// Emit synchronously invokes every current handler of the named event.
	//
	// Parameters:
	//   - name: the event name
	//   - args: arguments forwarded to each handler
	Emit(name string, args ...any)

	// Count returns the number of handlers registered for the named event.
	//
	// Parameters:
	//   - name: the event name
	//
	// Returns:
	//   - int: the handler count
	Count(name string) int
}

var _ EventBus = &eventBus{}

// NewEventBus creates an empty EventBus.
//
// Parameters:
//   - options: functional options to configure the bus
//
// Returns:
//   - EventBus: the new bus
func NewEventBus(options ...EventBusBuilderOption) EventBus {
	b := &eventBus{
		mu:       &sync.Mutex{},
		nextID:   1,
		handlers: make(map[string][]entry),
		logger:   logging.Discard(),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *eventBus) On(name string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[name] = append(b.handlers[name], entry{id: id, handler: handler})
	return Subscription{name: name, id: id}
}

func (b *eventBus) Once(name string, handler Handler) Subscription {
	var sub Subscription
	sub = b.On(name, func(args ...any) {
		b.Off(sub)
		handler(args...)
	})
	return sub
}

func (b *eventBus) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[sub.name]
	for i, e := range list {
		if e.id != sub.id {
			continue
		}
		// copy so snapshots held by an in-progress Emit stay intact
		next := make([]entry, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, sub.name)
		} else {
			b.handlers[sub.name] = next
		}
		return
	}
}

func (b *eventBus) Emit(name string, args ...any) {
	b.mu.Lock()
	snapshot := make([]entry, len(b.handlers[name]))
	copy(snapshot, b.handlers[name])
	b.mu.Unlock()

	b.logger.Debug("emit", "event", name, "handlers", len(snapshot))
	for _, e := range snapshot {
		e.handler(args...)
	}
}

func (b *eventBus) Count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[name])
}
