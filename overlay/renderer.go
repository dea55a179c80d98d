package overlay

import (
	"log/slog"

	"github.com/viant/sourcejump/attr"
)

// Frame represents what the overlay shows
type Frame struct {
	Visible bool
	Rect    Rect
	Link    string
	Label   string
	Code    string // decoded inline code, empty when not captured
}

// Renderer derives frames from the tracked element and activation state.
// Source data and geometry are read only when the tracked element changes, including a return
// to the same element after none was tracked, as happens once scrolling settles.
type Renderer struct {
	logger  *slog.Logger
	tracked Element
	frame   Frame
}

// NewRenderer creates a renderer
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Update returns the frame for element and active
func (r *Renderer) Update(element Element, active bool) Frame {
	switch {
	case element == nil:
		r.tracked = nil
	case r.tracked == nil || !r.tracked.Equal(element):
		r.tracked = element
		r.measure(element)
	}
	r.frame.Visible = element != nil && active
	return r.frame
}

// Frame returns the last computed frame
func (r *Renderer) Frame() Frame {
	return r.frame
}

func (r *Renderer) measure(element Element) {
	r.frame.Rect = element.BoundingRect()
	r.frame.Link, _ = element.Attribute(attr.Path)
	r.frame.Label, _ = element.Attribute(attr.DisplayName)
	r.frame.Code = ""
	encoded, ok := element.Attribute(attr.Code)
	if !ok {
		return
	}
	code, err := attr.DecodeURIComponent(encoded)
	if err != nil {
		r.logger.Warn("invalid inline code", slog.String("label", r.frame.Label), slog.Any("error", err))
		code = encoded
	}
	r.frame.Code = code
}
