// Package overlay renders an interactive highlight over annotated elements of a running UI.
//
// The package drives a host UI through the Host, Element, Node and Document interfaces;
// overlay/dom implements them on top of the browser DOM.
package overlay

import (
	"time"

	"github.com/viant/sourcejump/attr"
)

// Rect represents a viewport rectangle
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Element represents a host UI element
type Element interface {
	// Attribute returns an attribute value and whether it is present
	Attribute(name string) (string, bool)
	// Parent returns the parent element, or an untyped nil at the document root
	Parent() Element
	// BoundingRect returns the current viewport rectangle
	BoundingRect() Rect
	// Equal reports whether other refers to the same host element
	Equal(other Element) bool
}

// Node represents an element the overlay can create and modify
type Node interface {
	Element
	SetAttribute(name, value string)
	SetStyle(style Style)
	SetText(text string)
	AppendChild(child Node)
	Remove()
	OnClick(fn func()) (release func())
}

// Style represents inline CSS properties
type Style map[string]string

// Document creates nodes
type Document interface {
	CreateElement(tag string) Node
	Body() Node
}

// EventType represents a host event name
type EventType string

const (
	EventPointerOver EventType = "mouseover"
	EventScroll      EventType = "scroll"
	EventResize      EventType = "resize"
	EventKeyDown     EventType = "keydown"
	EventKeyUp       EventType = "keyup"
	EventBlur        EventType = "blur"
)

// Modifiers represents held modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// DefaultModifiers activates the overlay while Shift and Alt are held
const DefaultModifiers = ModShift | ModAlt

// Has returns true if every modifier of other is held
func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

// Event represents a dispatched host event
type Event struct {
	Type      EventType
	Target    Element // nil for events without an element target
	Modifiers Modifiers
}

// Timer represents a pending callback
type Timer interface {
	Stop() bool
}

// Host represents the window the overlay listens on
type Host interface {
	// Listen registers handler for event and returns its release func
	Listen(event EventType, handler func(Event)) (release func())
	// AfterFunc calls fn on the UI loop once d elapsed
	AfterFunc(d time.Duration, fn func()) Timer
}

// Navigator opens navigation links in an editor
type Navigator interface {
	Open(link string) error
}

// NavigatorFunc adapts a func to Navigator
type NavigatorFunc func(link string) error

// Open calls fn
func (fn NavigatorFunc) Open(link string) error {
	return fn(link)
}

// Closest returns element or its nearest ancestor carrying the named attribute
func Closest(element Element, name string) Element {
	for cur := element; cur != nil; cur = cur.Parent() {
		if _, ok := cur.Attribute(name); ok {
			return cur
		}
	}
	return nil
}

// IsOverlay returns true for the overlay's own elements
func IsOverlay(element Element) bool {
	return Closest(element, attr.UI) != nil
}
