package input

// Handler consumes a key event and reports whether it claimed it.
type Handler interface {
	HandleKey(ev KeyEvent) bool
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev KeyEvent) bool

// HandleKey implements Handler.
func (f HandlerFunc) HandleKey(ev KeyEvent) bool {
	return f(ev)
}

// Navigator receives unclaimed cursor navigation.
type Navigator interface {
	MoveLeft()
	MoveRight()
}

// Router offers each event to its handlers in order and stops at the first
// claim. Unclaimed presses fall back to cursor navigation.
type Router struct {
	chain    []Handler
	fallback Navigator
}

// NewRouter returns a Router over the given chain.
func NewRouter(fallback Navigator, chain ...Handler) *Router {
	return &Router{chain: append([]Handler(nil), chain...), fallback: fallback}
}

// Use appends a handler to the end of the chain.
func (r *Router) Use(h Handler) {
	r.chain = append(r.chain, h)
}

// Dispatch routes ev and reports whether anything handled it.
func (r *Router) Dispatch(ev KeyEvent) bool {
	for _, h := range r.chain {
		if h.HandleKey(ev) {
			return true
		}
	}
	if ev.Kind != Press || r.fallback == nil {
		return false
	}
	switch ev.Key {
	case KeyLeft:
		r.fallback.MoveLeft()
		return true
	case KeyRight:
		r.fallback.MoveRight()
		return true
	}
	return false
}
