// Package annotator rewrites JSX/TSX markup elements so they carry their source location
// and enclosing component name.
package annotator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/sourcejump/inspector/graph"
	"github.com/viant/sourcejump/inspector/jsx"
)

// ErrSyntax reports unparsable source; no output is produced for such a file
var ErrSyntax = jsx.ErrSyntax

// Annotator composes matching, owner resolution and attribute injection into a single pass.
// An Annotator holds no per-file state and is safe for concurrent use.
type Annotator struct {
	matcher    *Matcher
	project    graph.Project
	inlineCode bool
	inspector  *jsx.Inspector
	emitter    graph.Emitter
	logger     *slog.Logger
}

// New creates an annotator
func New(options ...Option) *Annotator {
	ret := &Annotator{
		matcher:   NewMatcher(),
		inspector: jsx.NewInspector(),
		emitter:   &jsx.Emitter{},
		logger:    slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Transform parses src, annotates every matching element and prints the result.
//
// The rewrite is not idempotent: applying it to already annotated text appends a second
// set of attributes. Callers must apply it at most once per file.
func (a *Annotator) Transform(ctx context.Context, path string, src []byte) ([]byte, error) {
	tree, err := a.inspector.InspectSource(ctx, path, src)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate %s: %w", path, err)
	}
	count := a.Rewrite(tree)
	output, err := a.emitter.Emit(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to emit %s: %w", path, err)
	}
	a.logger.Debug("annotated", slog.String("file", path), slog.Int("elements", count))
	return output, nil
}

// Rewrite annotates tree in place and returns the number of annotated elements
func (a *Annotator) Rewrite(tree *graph.Tree) int {
	if len(tree.Nodes) == 0 {
		return 0
	}
	count := 0
	a.rewrite(tree, tree.Root(), &count)
	return count
}

// rewrite visits children before the node itself, so nested elements are annotated first
func (a *Annotator) rewrite(tree *graph.Tree, idx int, count *int) {
	children := append([]int(nil), tree.Node(idx).Children...)
	for _, child := range children {
		a.rewrite(tree, child, count)
	}
	node := tree.Node(idx)
	switch node.Kind {
	case graph.KindElement:
		if !a.matcher.MatchElement(node) {
			return
		}
		owner := ResolveOwner(tree, idx)
		Inject(tree, idx, NewMetadata(tree, idx, owner, &a.project, a.inlineCode))
		*count++
	case graph.KindRoot, graph.KindFunction, graph.KindAttribute, graph.KindOther:
	}
}
