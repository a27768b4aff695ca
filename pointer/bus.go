package pointer

// Bus fans input events out to subscribed handlers. Publish and
// Subscribe/Unsubscribe are expected on the same dispatch goroutine as
// Tracker.Handle; the bus adds no locking of its own.
type Bus struct {
	nextID   int
	handlers map[int]func(Event)
	order    []int
}

func NewBus() *Bus {
	return &Bus{handlers: map[int]func(Event){}}
}

// Subscribe registers a handler and returns its id.
func (b *Bus) Subscribe(fn func(Event)) int {
	b.nextID++
	b.handlers[b.nextID] = fn
	b.order = append(b.order, b.nextID)
	return b.nextID
}

// Unsubscribe removes a handler. Unknown or already removed ids are a
// no-op.
func (b *Bus) Unsubscribe(id int) {
	if _, ok := b.handlers[id]; !ok {
		return
	}
	delete(b.handlers, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish delivers ev to every handler in subscription order. A handler
// may unsubscribe itself or others mid-delivery; the order is snapshotted
// first so that never skips a later handler.
func (b *Bus) Publish(ev Event) {
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		if fn, ok := b.handlers[id]; ok {
			fn(ev)
		}
	}
}
