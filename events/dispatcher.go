package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventName is the unique name of the event
type EventName string

// Event is a event that can be dispatched and 0 .. n listeners may listen for
type Event interface {
	Name() EventName
}

// EventListener enables to listen for a certain event
type EventListener interface {
	ForEvent() EventName
	Handle(ctx context.Context, ev Event) error
}

// AsyncTimeout bounds a single background listener run
const AsyncTimeout = 30 * time.Second

type registration struct {
	listener EventListener
	async    bool
}

// Dispatcher is used to dispatch events to listeners
type Dispatcher struct {
	log      *zap.Logger
	mu       sync.RWMutex
	registry map[EventName][]registration
	pending  sync.WaitGroup
}

// NewDispatcher returns a new dispatcher instance
func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		log:      log,
		registry: make(map[EventName][]registration),
	}
}

// Register events listeners
func (d *Dispatcher) Register(listener ...EventListener) {
	d.register(false, listener)
}

// RegisterAsync registers listeners that run in the background,
// the dispatching caller does not wait for them
func (d *Dispatcher) RegisterAsync(listener ...EventListener) {
	d.register(true, listener)
}

func (d *Dispatcher) register(async bool, listeners []EventListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, v := range listeners {
		d.log.Debug("Registering event listener", zap.String("event", string(v.ForEvent())), zap.Bool("async", async))
		d.registry[v.ForEvent()] = append(d.registry[v.ForEvent()], registration{listener: v, async: async})
	}
}

// Wait blocks until all background listeners finished
func (d *Dispatcher) Wait() {
	d.pending.Wait()
}

// Listeners returns the amount of listeners registered for an event
func (d *Dispatcher) Listeners(name EventName) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.registry[name])
}

func (d *Dispatcher) executeEvent(ctx context.Context, el EventListener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("recovered from panicing event listener",
				zap.Any("recoverer", r),
				zap.String("event", string(ev.Name())),
				zap.String("event_listener", fmt.Sprintf("%T", el)),
			)
		}
	}()
	if err := el.Handle(ctx, ev); err != nil {
		d.log.Error("Event listener returned error",
			zap.String("event_listener", fmt.Sprintf("%T", el)),
			zap.Error(err),
			zap.String("event", string(ev.Name())),
		)
	}
}

// Dispatch given event, listeners run in registration order.
// A failing listener never affects the caller.
// Background listeners get a context that outlives the caller's.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	d.mu.RLock()
	listeners := d.registry[event.Name()]
	d.mu.RUnlock()
	if len(listeners) == 0 {
		d.log.Debug("No event listener for event", zap.String("event", string(event.Name())))
		return
	}
	for _, v := range listeners {
		if !v.async {
			d.executeEvent(ctx, v.listener, event)
			continue
		}
		d.pending.Add(1)
		go func(el EventListener) {
			defer d.pending.Done()
			bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), AsyncTimeout)
			defer cancel()
			d.executeEvent(bctx, el, event)
		}(v.listener)
	}
}
