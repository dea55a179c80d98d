package annotator

import (
	"fmt"
	"regexp"

	"github.com/viant/sourcejump/inspector/graph"
)

// DefaultTarget matches host elements such as div or span, leaving custom components unannotated
var DefaultTarget = regexp.MustCompile(`^[a-z]+$`)

// Matcher decides whether an element tag qualifies for annotation
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher creates a matcher; with no patterns DefaultTarget is used
func NewMatcher(patterns ...*regexp.Regexp) *Matcher {
	if len(patterns) == 0 {
		patterns = []*regexp.Regexp{DefaultTarget}
	}
	return &Matcher{patterns: patterns}
}

// CompileTarget compiles target expressions
func CompileTarget(expressions []string) ([]*regexp.Regexp, error) {
	var result = make([]*regexp.Regexp, 0, len(expressions))
	for _, expr := range expressions {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", expr, err)
		}
		result = append(result, pattern)
	}
	return result, nil
}

// Match returns true if any pattern matches tag
func (m *Matcher) Match(tag string) bool {
	for _, pattern := range m.patterns {
		if pattern.MatchString(tag) {
			return true
		}
	}
	return false
}

// MatchElement returns true for identifier-form element tags accepted by Match
func (m *Matcher) MatchElement(node *graph.Node) bool {
	if node.Kind != graph.KindElement || !node.TagIsIdentifier {
		return false
	}
	return m.Match(node.Tag)
}
