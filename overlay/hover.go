package overlay

import (
	"sync"
	"time"

	"github.com/viant/sourcejump/attr"
)

// DefaultDebounce is the quiet period after the last scroll or resize before tracking resumes
const DefaultDebounce = 100 * time.Millisecond

// HoverTracker tracks the annotated element under the pointer.
// While the layout scrolls or resizes it reports nothing, until DefaultDebounce passes without another event.
type HoverTracker struct {
	host     Host
	debounce time.Duration
	onChange func()

	mux       sync.Mutex
	current   Element
	scrolling bool
	timer     Timer
	seq       int
	attached  bool
}

// NewHoverTracker creates a tracker; onChange is called after every observable change
func NewHoverTracker(host Host, debounce time.Duration, onChange func()) *HoverTracker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if onChange == nil {
		onChange = func() {}
	}
	return &HoverTracker{host: host, debounce: debounce, onChange: onChange}
}

// Attach registers pointer, scroll and resize listeners and returns the release func
func (h *HoverTracker) Attach() (detach func()) {
	h.mux.Lock()
	h.attached = true
	h.mux.Unlock()
	releases := []func(){
		h.host.Listen(EventPointerOver, func(ev Event) { h.PointerOver(ev.Target) }),
		h.host.Listen(EventScroll, func(Event) { h.Reflow() }),
		h.host.Listen(EventResize, func(Event) { h.Reflow() }),
	}
	return func() {
		for _, release := range releases {
			release()
		}
		h.mux.Lock()
		defer h.mux.Unlock()
		h.attached = false
		if h.timer != nil {
			h.timer.Stop()
			h.timer = nil
		}
		h.seq++
		h.current = nil
		h.scrolling = false
	}
}

// PointerOver updates the tracked element from a raw pointer target
func (h *HoverTracker) PointerOver(target Element) {
	if target == nil || IsOverlay(target) {
		return
	}
	found := Closest(target, attr.Path)
	h.mux.Lock()
	if !h.attached {
		h.mux.Unlock()
		return
	}
	changed := false
	switch {
	case found == nil:
		changed = h.current != nil
		h.current = nil
	case h.current == nil || !h.current.Equal(found):
		h.current = found
		changed = true
	}
	visible := !h.scrolling
	h.mux.Unlock()
	if changed && visible {
		h.onChange()
	}
}

// Reflow marks the layout as moving and restarts the debounce timer
func (h *HoverTracker) Reflow() {
	h.mux.Lock()
	if !h.attached {
		h.mux.Unlock()
		return
	}
	started := !h.scrolling
	h.scrolling = true
	if h.timer != nil {
		h.timer.Stop()
	}
	h.seq++
	seq := h.seq
	h.timer = h.host.AfterFunc(h.debounce, func() { h.settle(seq) })
	h.mux.Unlock()
	if started {
		h.onChange()
	}
}

func (h *HoverTracker) settle(seq int) {
	h.mux.Lock()
	if !h.attached || seq != h.seq {
		h.mux.Unlock()
		return
	}
	h.scrolling = false
	h.timer = nil
	h.mux.Unlock()
	h.onChange()
}

// Current returns the tracked element, or nil while scrolling
func (h *HoverTracker) Current() Element {
	h.mux.Lock()
	defer h.mux.Unlock()
	if h.scrolling {
		return nil
	}
	return h.current
}

// Scrolling returns true while the debounce window is open
func (h *HoverTracker) Scrolling() bool {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.scrolling
}
