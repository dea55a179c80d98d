//go:build js && wasm

// Package dom implements the overlay host interfaces on top of the browser DOM.
package dom

import (
	"errors"
	"syscall/js"
	"time"

	"github.com/viant/sourcejump/overlay"
)

// Element wraps a DOM element
type Element struct {
	value js.Value
}

// Attribute returns an attribute value
func (e *Element) Attribute(name string) (string, bool) {
	value := e.value.Call("getAttribute", name)
	if value.IsNull() || value.IsUndefined() {
		return "", false
	}
	return value.String(), true
}

// Parent returns the parent element
func (e *Element) Parent() overlay.Element {
	parent := e.value.Get("parentElement")
	if parent.IsNull() || parent.IsUndefined() {
		return nil
	}
	return &Element{value: parent}
}

// BoundingRect returns the element viewport rectangle
func (e *Element) BoundingRect() overlay.Rect {
	rect := e.value.Call("getBoundingClientRect")
	return overlay.Rect{
		Left:   rect.Get("left").Float(),
		Top:    rect.Get("top").Float(),
		Width:  rect.Get("width").Float(),
		Height: rect.Get("height").Float(),
	}
}

// Equal reports whether other wraps the same DOM element
func (e *Element) Equal(other overlay.Element) bool {
	candidate, ok := other.(*Element)
	return ok && candidate.value.Equal(e.value)
}

// SetAttribute sets an attribute
func (e *Element) SetAttribute(name, value string) {
	e.value.Call("setAttribute", name, value)
}

// SetStyle sets inline style properties
func (e *Element) SetStyle(style overlay.Style) {
	declaration := e.value.Get("style")
	for name, value := range style {
		declaration.Call("setProperty", name, value)
	}
}

// SetText replaces the element text
func (e *Element) SetText(text string) {
	e.value.Set("textContent", text)
}

// AppendChild appends child
func (e *Element) AppendChild(child overlay.Node) {
	if node, ok := child.(*Element); ok {
		e.value.Call("appendChild", node.value)
	}
}

// Remove detaches the element from the document
func (e *Element) Remove() {
	e.value.Call("remove")
}

// OnClick registers a click handler
func (e *Element) OnClick(fn func()) func() {
	callback := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	e.value.Call("addEventListener", "click", callback)
	return func() {
		e.value.Call("removeEventListener", "click", callback)
		callback.Release()
	}
}

// Document wraps the browser document
type Document struct {
	value js.Value
}

// CreateElement creates an element
func (d *Document) CreateElement(tag string) overlay.Node {
	return &Element{value: d.value.Call("createElement", tag)}
}

// Body returns the document body
func (d *Document) Body() overlay.Node {
	return &Element{value: d.value.Get("body")}
}

// Window implements overlay.Host and overlay.Navigator for the global window
type Window struct {
	value    js.Value
	document *Document
}

// New returns the global window
func New() (*Window, error) {
	window := js.Global().Get("window")
	if window.IsUndefined() {
		return nil, errors.New("window is not defined")
	}
	return &Window{value: window, document: &Document{value: window.Get("document")}}, nil
}

// Document returns the window document
func (w *Window) Document() *Document {
	return w.document
}

// Listen registers handler for event on the window
func (w *Window) Listen(event overlay.EventType, handler func(overlay.Event)) func() {
	callback := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			handler(w.event(event, args[0]))
		}
		return nil
	})
	w.value.Call("addEventListener", string(event), callback)
	return func() {
		w.value.Call("removeEventListener", string(event), callback)
		callback.Release()
	}
}

func (w *Window) event(eventType overlay.EventType, value js.Value) overlay.Event {
	ret := overlay.Event{Type: eventType}
	if target := value.Get("target"); !target.IsUndefined() && !target.IsNull() && target.InstanceOf(js.Global().Get("HTMLElement")) {
		ret.Target = &Element{value: target}
	}
	flags := []struct {
		name     string
		modifier overlay.Modifiers
	}{
		{"shiftKey", overlay.ModShift},
		{"altKey", overlay.ModAlt},
		{"ctrlKey", overlay.ModCtrl},
		{"metaKey", overlay.ModMeta},
	}
	for _, flag := range flags {
		if held := value.Get(flag.name); held.Type() == js.TypeBoolean && held.Bool() {
			ret.Modifiers |= flag.modifier
		}
	}
	return ret
}

type timer struct {
	window   js.Value
	id       js.Value
	callback js.Func
	done     bool
}

func (t *timer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.window.Call("clearTimeout", t.id)
	t.callback.Release()
	return true
}

// AfterFunc schedules fn with setTimeout
func (w *Window) AfterFunc(d time.Duration, fn func()) overlay.Timer {
	ret := &timer{window: w.value}
	ret.callback = js.FuncOf(func(this js.Value, args []js.Value) any {
		if ret.done {
			return nil
		}
		ret.done = true
		ret.callback.Release()
		fn()
		return nil
	})
	ret.id = w.value.Call("setTimeout", ret.callback, d.Milliseconds())
	return ret
}

// Open follows link through a synthetic anchor click
func (w *Window) Open(link string) error {
	if link == "" {
		return errors.New("empty link")
	}
	anchor := w.document.value.Call("createElement", "a")
	anchor.Set("href", link)
	anchor.Call("click")
	return nil
}
