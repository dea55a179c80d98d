package overlay

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/viant/sourcejump/attr"
)

// ErrNoNavigator reports a follow request without a configured navigator
var ErrNoNavigator = errors.New("navigator not configured")

// Overlay composes hover tracking, activation and rendering.
// Every instance owns its own state; two overlays never share listeners, timers or frames.
type Overlay struct {
	host        Host
	painter     Painter
	navigator   Navigator
	logger      *slog.Logger
	combination Modifiers
	debounce    time.Duration

	tracker    *HoverTracker
	activation *Activation
	renderer   *Renderer

	mux      sync.Mutex
	attached bool
}

// New creates an overlay painting with painter
func New(host Host, painter Painter, options ...Option) *Overlay {
	ret := &Overlay{
		host:        host,
		painter:     painter,
		logger:      slog.Default(),
		combination: DefaultModifiers,
		debounce:    DefaultDebounce,
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.tracker = NewHoverTracker(host, ret.debounce, ret.render)
	ret.activation = NewActivation(ret.combination, ret.render)
	ret.renderer = NewRenderer(ret.logger)
	return ret
}

// Attach starts listening on the host; the returned detach releases every listener and pending timer
func (o *Overlay) Attach() (detach func()) {
	o.mux.Lock()
	o.attached = true
	o.mux.Unlock()
	releaseTracker := o.tracker.Attach()
	releaseActivation := o.activation.Attach(o.host)
	once := sync.Once{}
	return func() {
		once.Do(func() {
			o.mux.Lock()
			o.attached = false
			o.mux.Unlock()
			releaseTracker()
			releaseActivation()
			o.painter.Paint(Frame{})
			o.logger.Debug("overlay detached")
		})
	}
}

// Frame returns the current frame
func (o *Overlay) Frame() Frame {
	o.mux.Lock()
	defer o.mux.Unlock()
	return o.renderer.Frame()
}

// Follow opens the navigation link of the shown element
func (o *Overlay) Follow() error {
	frame := o.Frame()
	if !frame.Visible || frame.Link == "" {
		return nil
	}
	if _, err := attr.ParseLink(frame.Link); err != nil {
		o.logger.Warn("refusing link", slog.String("link", frame.Link), slog.Any("error", err))
		return err
	}
	if o.navigator == nil {
		return ErrNoNavigator
	}
	if err := o.navigator.Open(frame.Link); err != nil {
		o.logger.Error("failed to open link", slog.String("link", frame.Link), slog.Any("error", err))
		return fmt.Errorf("failed to open %v: %w", frame.Link, err)
	}
	return nil
}

func (o *Overlay) render() {
	o.mux.Lock()
	defer o.mux.Unlock()
	if !o.attached {
		return
	}
	frame := o.renderer.Update(o.tracker.Current(), o.activation.Active())
	o.painter.Paint(frame)
}
