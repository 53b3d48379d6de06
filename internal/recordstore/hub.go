package recordstore

import "sync"

// hub is the subscriber registry shared by all store backends. Callbacks run
// on the notifying goroutine; subscribers must not block.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[Key]map[int]ChangeFunc
}

func newHub() *hub {
	return &hub{subs: make(map[Key]map[int]ChangeFunc)}
}

func (h *hub) add(key Key, fn ChangeFunc) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[key] == nil {
		h.subs[key] = make(map[int]ChangeFunc)
	}
	id := h.nextID
	h.nextID++
	h.subs[key][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[key], id)
	}
}

func (h *hub) notify(key Key, origin Origin) {
	h.mu.Lock()
	fns := make([]ChangeFunc, 0, len(h.subs[key]))
	for _, fn := range h.subs[key] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	// Invoke outside the lock so a callback may subscribe or cancel.
	for _, fn := range fns {
		fn(key, origin)
	}
}
