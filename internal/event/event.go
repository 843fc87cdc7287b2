// internal/event/event.go
package event

// EventType names an event.
type EventType string

// Event is what the dispatcher delivers.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher delivers events synchronously, in subscription order,
// on the caller's goroutine.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe removes the first registration of listener for eventType.
// Listeners must be comparable (pointers); a ListenerFunc cannot be removed.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch sends event to a snapshot of the current subscribers, so a
// listener subscribing or unsubscribing mid-dispatch does not disturb the loop.
func (d *Dispatcher) Dispatch(event Event) {
	listeners := d.listeners[event.Type]
	if len(listeners) == 0 {
		return
	}
	snapshot := append([]Listener(nil), listeners...)
	for _, listener := range snapshot {
		listener.OnEvent(event)
	}
}
