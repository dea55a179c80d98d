package overlay

import (
	"sort"
	"time"
)

type fakeNode struct {
	tag      string
	attrs    map[string]string
	style    Style
	text     string
	rect     Rect
	parent   *fakeNode
	children []*fakeNode
	clicks   map[int]func()
	nextID   int
	removed  bool
}

func newFakeNode(tag string, attrs map[string]string) *fakeNode {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &fakeNode{tag: tag, attrs: attrs, style: Style{}, clicks: map[int]func(){}}
}

func (n *fakeNode) Attribute(name string) (string, bool) {
	value, ok := n.attrs[name]
	return value, ok
}

func (n *fakeNode) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) BoundingRect() Rect { return n.rect }

func (n *fakeNode) Equal(other Element) bool {
	node, ok := other.(*fakeNode)
	return ok && node == n
}

func (n *fakeNode) SetAttribute(name, value string) { n.attrs[name] = value }

func (n *fakeNode) SetStyle(style Style) {
	for k, v := range style {
		n.style[k] = v
	}
}

func (n *fakeNode) SetText(text string) { n.text = text }

func (n *fakeNode) AppendChild(child Node) {
	node := child.(*fakeNode)
	node.parent = n
	n.children = append(n.children, node)
}

func (n *fakeNode) Remove() {
	n.removed = true
	if n.parent == nil {
		return
	}
	siblings := n.parent.children[:0]
	for _, sibling := range n.parent.children {
		if sibling != n {
			siblings = append(siblings, sibling)
		}
	}
	n.parent.children = siblings
	n.parent = nil
}

func (n *fakeNode) OnClick(fn func()) func() {
	id := n.nextID
	n.nextID++
	n.clicks[id] = fn
	return func() { delete(n.clicks, id) }
}

func (n *fakeNode) click() {
	for _, fn := range n.clicks {
		fn()
	}
}

// child appends a new element under n
func (n *fakeNode) child(tag string, attrs map[string]string) *fakeNode {
	ret := newFakeNode(tag, attrs)
	n.AppendChild(ret)
	return ret
}

type fakeDocument struct {
	body *fakeNode
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{body: newFakeNode("body", nil)}
}

func (d *fakeDocument) CreateElement(tag string) Node { return newFakeNode(tag, nil) }

func (d *fakeDocument) Body() Node { return d.body }

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

// fakeHost is a single-threaded window with a manual clock
type fakeHost struct {
	now       time.Duration
	listeners map[EventType]map[int]func(Event)
	nextID    int
	timers    []*fakeTimer
}

func newFakeHost() *fakeHost {
	return &fakeHost{listeners: map[EventType]map[int]func(Event){}}
}

func (h *fakeHost) Listen(event EventType, handler func(Event)) func() {
	if h.listeners[event] == nil {
		h.listeners[event] = map[int]func(Event){}
	}
	id := h.nextID
	h.nextID++
	h.listeners[event][id] = handler
	return func() { delete(h.listeners[event], id) }
}

func (h *fakeHost) AfterFunc(d time.Duration, fn func()) Timer {
	timer := &fakeTimer{at: h.now + d, fn: fn}
	h.timers = append(h.timers, timer)
	return timer
}

func (h *fakeHost) dispatch(event Event) {
	ids := make([]int, 0, len(h.listeners[event.Type]))
	for id := range h.listeners[event.Type] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if handler, ok := h.listeners[event.Type][id]; ok {
			handler(event)
		}
	}
}

func (h *fakeHost) hover(target *fakeNode) {
	h.dispatch(Event{Type: EventPointerOver, Target: target})
}

func (h *fakeHost) keyDown(held Modifiers) {
	h.dispatch(Event{Type: EventKeyDown, Modifiers: held})
}

func (h *fakeHost) keyUp(held Modifiers) {
	h.dispatch(Event{Type: EventKeyUp, Modifiers: held})
}

// advance moves the clock, firing due timers in deadline order
func (h *fakeHost) advance(d time.Duration) {
	end := h.now + d
	for {
		var next *fakeTimer
		for _, timer := range h.timers {
			if timer.stopped || timer.fired || timer.at > end {
				continue
			}
			if next == nil || timer.at < next.at {
				next = timer
			}
		}
		if next == nil {
			break
		}
		h.now = next.at
		next.fired = true
		next.fn()
	}
	h.now = end
}

func (h *fakeHost) listenerCount() int {
	count := 0
	for _, handlers := range h.listeners {
		count += len(handlers)
	}
	return count
}

func (h *fakeHost) pendingTimers() int {
	count := 0
	for _, timer := range h.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}
