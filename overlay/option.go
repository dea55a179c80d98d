package overlay

import (
	"log/slog"
	"time"
)

// Option represents an overlay option
type Option func(o *Overlay)

// WithModifiers sets the activation combination
func WithModifiers(combination Modifiers) Option {
	return func(o *Overlay) {
		o.combination = combination
	}
}

// WithDebounce sets the scroll/resize quiet period
func WithDebounce(d time.Duration) Option {
	return func(o *Overlay) {
		o.debounce = d
	}
}

// WithNavigator sets the link navigator
func WithNavigator(navigator Navigator) Option {
	return func(o *Overlay) {
		o.navigator = navigator
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Overlay) {
		if logger != nil {
			o.logger = logger
		}
	}
}
