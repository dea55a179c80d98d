package overlay

import (
	"sync"

	"github.com/google/uuid"
	"github.com/viant/sourcejump/attr"
)

// Portal is a self-mounting overlay living in its own full-viewport container at the end of the document body
type Portal struct {
	id        string
	container Node
	painter   *DOMPainter
	overlay   *Overlay
	detach    func()
	once      sync.Once
}

// Mount creates the container, attaches an overlay to it and returns the portal
func Mount(host Host, document Document, options ...Option) *Portal {
	ret := &Portal{id: "sj-ui-" + uuid.NewString()}
	ret.container = document.CreateElement("div")
	ret.container.SetAttribute("id", ret.id)
	ret.container.SetAttribute(attr.UI, "true")
	ret.container.SetStyle(Style{
		"position":       "fixed",
		"top":            "0",
		"left":           "0",
		"width":          "100vw",
		"height":         "100vh",
		"pointer-events": "none",
		"z-index":        "2147483647",
	})
	document.Body().AppendChild(ret.container)
	ret.painter = NewDOMPainter(document, ret.container, ret.follow)
	ret.overlay = New(host, ret.painter, options...)
	ret.detach = ret.overlay.Attach()
	return ret
}

// Inline attaches an overlay drawing under parent, a node of the caller's own UI tree
func Inline(host Host, document Document, parent Node, options ...Option) (*Overlay, func()) {
	var ret *Overlay
	painter := NewDOMPainter(document, parent, func() { _ = ret.Follow() })
	ret = New(host, painter, options...)
	detach := ret.Attach()
	return ret, func() {
		detach()
		painter.Close()
	}
}

// ID returns the container id
func (p *Portal) ID() string {
	return p.id
}

// Overlay returns the mounted overlay
func (p *Portal) Overlay() *Overlay {
	return p.overlay
}

// Unmount detaches the overlay and removes the container
func (p *Portal) Unmount() {
	p.once.Do(func() {
		p.detach()
		p.painter.Close()
		p.container.Remove()
	})
}

func (p *Portal) follow() {
	_ = p.overlay.Follow()
}
