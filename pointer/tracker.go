package pointer

// Tracker maintains the displacement of the primary pointer contact from
// the point where it was pressed. It mutates its state only inside Handle,
// which the host input layer is expected to call from a single dispatch
// goroutine (ebiten's update loop here), so no locking is done.
type Tracker struct {
	mode Mode

	pressed          bool
	originX, originY float64
	deltaX, deltaY   float64
	goingDown        OptBool
	goingRight       OptBool
	touched          string

	listeners []func(Snapshot)
	unsub     func()
}

// Option configures a Tracker at construction.
type Option func(*Tracker)

// WithListener registers fn to be called synchronously with a fresh
// snapshot after every state-changing event.
func WithListener(fn func(Snapshot)) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.listeners = append(t.listeners, fn)
		}
	}
}

// New creates a tracker at rest. The mode is fixed for the tracker's
// lifetime.
func New(mode Mode, opts ...Option) *Tracker {
	t := &Tracker{mode: mode}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Mode() Mode {
	return t.mode
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		DeltaX:         t.deltaX,
		DeltaY:         t.deltaY,
		IsMouseDown:    t.pressed,
		TouchedElement: t.touched,
		GoingDown:      t.goingDown,
		GoingRight:     t.goingRight,
	}
}

// Attach subscribes the tracker to a bus. Any previous attachment is
// released first.
func (t *Tracker) Attach(b *Bus) {
	t.Detach()
	if b == nil {
		return
	}
	id := b.Subscribe(t.Handle)
	t.unsub = func() { b.Unsubscribe(id) }
}

// Detach releases the bus subscription. Safe to call repeatedly or without
// a prior Attach.
func (t *Tracker) Detach() {
	if t.unsub != nil {
		t.unsub()
		t.unsub = nil
	}
}

// Handle applies one input event to the tracker state. Events from a
// device class excluded by the mode are dropped without effect.
func (t *Tracker) Handle(ev Event) {
	if t.mode == ModeMouse && ev.Device == DeviceTouch {
		return
	}
	if t.mode == ModeTouch && ev.Device == DeviceMouse {
		return
	}

	switch ev.Kind {
	case Press:
		t.onPress(ev)
	case Move:
		t.onMove(ev)
	case Release:
		t.onRelease()
	}
}

func (t *Tracker) onPress(ev Event) {
	p, ok := ev.primary()
	if !ok {
		return
	}
	t.pressed = true
	t.originX = p.X
	t.originY = p.Y
	t.touched = ev.Target
	// Deltas stay at zero and trends stay unset until the first move.
	t.notify()
}

func (t *Tracker) onMove(ev Event) {
	// A move that arrives while not pressed (e.g. a stray event after
	// release) must not touch state.
	if !t.pressed {
		return
	}
	p, ok := ev.primary()
	if !ok {
		return
	}

	rawX := p.X - t.originX
	rawY := p.Y - t.originY

	// Trends compare against the previously stored deltas; the overwrite
	// below must come after both comparisons.
	t.goingDown = OptBool{Bool: rawY > t.deltaY, Valid: true}
	t.goingRight = OptBool{Bool: rawX > t.deltaX, Valid: true}
	t.deltaY = rawY
	t.deltaX = rawX
	t.notify()
}

func (t *Tracker) onRelease() {
	t.pressed = false
	t.deltaX = 0
	t.deltaY = 0
	t.goingDown = OptBool{}
	t.goingRight = OptBool{}
	// touched and origin stay stale until the next press overwrites them.
	t.notify()
}

func (t *Tracker) notify() {
	if len(t.listeners) == 0 {
		return
	}
	snap := t.Snapshot()
	for _, fn := range t.listeners {
		fn(snap)
	}
}
