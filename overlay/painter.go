package overlay

import (
	"strconv"

	"github.com/viant/sourcejump/attr"
)

// Painter applies frames to the host UI
type Painter interface {
	Paint(frame Frame)
}

// PainterFunc adapts a func to Painter
type PainterFunc func(frame Frame)

// Paint calls fn
func (fn PainterFunc) Paint(frame Frame) {
	fn(frame)
}

// LabelPrefix precedes the location label
const LabelPrefix = "🔗 "

// DOMPainter draws the highlight box, the location label and the optional code panel as host nodes
type DOMPainter struct {
	box     Node
	label   Node
	code    Node
	release func()
}

// NewDOMPainter creates the overlay nodes under parent; follow is called when the label is clicked
func NewDOMPainter(document Document, parent Node, follow func()) *DOMPainter {
	ret := &DOMPainter{
		box:   document.CreateElement("div"),
		label: document.CreateElement("div"),
		code:  document.CreateElement("pre"),
	}
	ret.box.SetAttribute(attr.UI, "true")
	ret.box.SetStyle(Style{
		"position":       "fixed",
		"display":        "none",
		"place-items":    "center",
		"pointer-events": "none",
		"user-select":    "none",
		"background":     "rgba(255,255,0,0.1)",
		"outline":        "0.2rem dotted gray",
		"box-sizing":     "border-box",
		"isolation":      "isolate",
	})
	ret.label.SetStyle(Style{
		"pointer-events": "auto",
		"cursor":         "pointer",
		"background":     "rgba(0,0,255,0.5)",
		"color":          "#fff",
		"padding":        "5px",
		"border-radius":  "4px",
		"z-index":        "10000",
	})
	ret.code.SetStyle(Style{
		"position":       "absolute",
		"right":          "0",
		"bottom":         "0",
		"display":        "none",
		"width":          "100%",
		"margin":         "0",
		"overflow":       "scroll",
		"pointer-events": "auto",
		"font-family":    "menlo, monospace",
		"background":     "rgba(0,0,255,0.8)",
		"color":          "white",
		"border-radius":  "2px",
		"padding":        "3px",
		"box-sizing":     "border-box",
		"z-index":        "10000",
	})
	ret.box.AppendChild(ret.label)
	ret.box.AppendChild(ret.code)
	parent.AppendChild(ret.box)
	if follow != nil {
		ret.release = ret.label.OnClick(follow)
	}
	return ret
}

// Paint updates node geometry and content
func (p *DOMPainter) Paint(frame Frame) {
	if !frame.Visible {
		p.box.SetStyle(Style{"display": "none"})
		return
	}
	p.box.SetStyle(Style{
		"display": "grid",
		"left":    px(frame.Rect.Left),
		"top":     px(frame.Rect.Top),
		"width":   px(frame.Rect.Width),
		"height":  px(frame.Rect.Height),
	})
	p.label.SetText(LabelPrefix + frame.Label)
	p.label.SetAttribute("title", frame.Link)
	if frame.Code == "" {
		p.code.SetStyle(Style{"display": "none"})
		return
	}
	p.code.SetText(frame.Code)
	p.code.SetStyle(Style{"display": "block"})
}

// Close removes the overlay nodes
func (p *DOMPainter) Close() {
	if p.release != nil {
		p.release()
		p.release = nil
	}
	p.box.Remove()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
