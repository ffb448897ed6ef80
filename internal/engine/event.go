package engine

// ListenerID identifies one subscription so it can be removed later.
type ListenerID uint32

type listener[F any] struct {
	id ListenerID
	fn F
}

// Event is a multicast event without arguments.
type Event struct {
	listeners []listener[func()]
	nextID    ListenerID
}

// AddListener subscribes callback and returns its id. A nil callback is
// ignored and yields 0.
func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[func()]{id: e.nextID, fn: callback})
	return e.nextID
}

// RemoveListener drops the subscription id. Unknown ids are ignored.
func (e *Event) RemoveListener(id ListenerID) {
	e.listeners = removeListener(e.listeners, id)
}

func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls every listener in subscription order.
func (e *Event) Invoke() {
	for _, l := range e.listeners {
		l.fn()
	}
}

func (e *Event) ListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a multicast event with one argument.
type EventWithArg[T any] struct {
	listeners []listener[func(T)]
	nextID    ListenerID
}

func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[func(T)]{id: e.nextID, fn: callback})
	return e.nextID
}

func (e *EventWithArg[T]) RemoveListener(id ListenerID) {
	e.listeners = removeListener(e.listeners, id)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}

func removeListener[F any](ls []listener[F], id ListenerID) []listener[F] {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i:i], ls[i+1:]...)
		}
	}
	return ls
}
