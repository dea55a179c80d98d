package annotator

import (
	"log/slog"
	"regexp"
)

type Option func(*Annotator)

// WithTarget overrides the default all-lowercase tag patterns
func WithTarget(patterns ...*regexp.Regexp) Option {
	return func(a *Annotator) {
		a.matcher = NewMatcher(patterns...)
	}
}

// WithProjectRoot sets the path prefix stripped from display labels
func WithProjectRoot(root string) Option {
	return func(a *Annotator) {
		a.project.RootPath = root
	}
}

// WithInlineCode enables capturing element source into the code attribute
func WithInlineCode(enabled bool) Option {
	return func(a *Annotator) {
		a.inlineCode = enabled
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Annotator) {
		if logger != nil {
			a.logger = logger
		}
	}
}
