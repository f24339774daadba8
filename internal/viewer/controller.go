package viewer

import "sync"

// Observer is called with the new state after every change.
type Observer func(State)

// Controller owns a State and notifies observers when it changes.
type Controller struct {
	mu        sync.Mutex
	state     State
	observers []Observer
}

// NewController returns a controller with no document loaded.
func NewController() *Controller {
	return &Controller{state: NewState()}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for state changes.
func (c *Controller) Subscribe(fn Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// OnDocumentLoaded records the page count and resets to the first page.
func (c *Controller) OnDocumentLoaded(pageCount int) {
	c.update(func(s State) State { return s.WithDocument(pageCount) })
}

func (c *Controller) SetPage(req PageRequest) {
	c.update(func(s State) State { return s.WithPage(req) })
}

func (c *Controller) SetZoom(req ZoomRequest) {
	c.update(func(s State) State { return s.WithZoom(req) })
}

func (c *Controller) SetViewMode(m ViewMode) {
	c.update(func(s State) State { return s.WithMode(m) })
}

// Dispatch applies cmd and reports whether it was a viewer command.
func (c *Controller) Dispatch(cmd Command) bool {
	handled := false
	c.update(func(s State) State {
		var next State
		next, handled = Apply(s, cmd)
		return next
	})
	return handled
}

// update applies fn and notifies observers outside the lock, only when
// the state actually changed.
func (c *Controller) update(fn func(State) State) {
	c.mu.Lock()
	prev := c.state
	c.state = fn(prev)
	next := c.state
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	if next == prev {
		return
	}
	for _, o := range observers {
		o(next)
	}
}
