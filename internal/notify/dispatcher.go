package notify

import (
	"log/slog"
	"sync"
)

var emissionRecorder = func(event string) {}

// RegisterEmissionRecorder allows external packages to observe event emissions.
func RegisterEmissionRecorder(recorder func(event string)) {
	if recorder == nil {
		emissionRecorder = func(string) {}
		return
	}

	emissionRecorder = recorder
}

// Dispatcher fans change events out to subscribers. Emission is synchronous
// with the triggering mutation and preserves mutation order; a subscriber
// whose buffer is full misses the event (logged) rather than stalling the
// session writer.
type Dispatcher struct {
	mu   sync.Mutex
	log  *slog.Logger
	subs map[int]chan Event
	next int
}

// NewDispatcher constructs an empty Dispatcher.
func NewDispatcher(log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		log:  log,
		subs: make(map[int]chan Event),
	}
}

// Subscribe registers a buffered event channel. The returned cancel closes
// the channel and removes the subscriber.
func (d *Dispatcher) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}

	ch := make(chan Event, buffer)

	d.mu.Lock()
	id := d.next
	d.next++
	d.subs[id] = ch
	d.mu.Unlock()

	cancel := func() {
		d.mu.Lock()
		if existing, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(existing)
		}
		d.mu.Unlock()
	}

	return ch, cancel
}

// Emit delivers the events to every subscriber, in order.
func (d *Dispatcher) Emit(events ...Event) {
	if len(events) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, event := range events {
		emissionRecorder(string(event.Name))

		for id, ch := range d.subs {
			select {
			case ch <- event:
			default:
				d.log.Warn("subscriber buffer full, dropping event",
					"subscriber", id, "event", string(event.Name))
			}
		}
	}
}
