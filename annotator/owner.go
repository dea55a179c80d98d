package annotator

import (
	"github.com/viant/sourcejump/inspector/graph"
)

// Owner represents the function-like declaration enclosing an element
type Owner struct {
	Found bool
	Name  string // empty for anonymous declarations
}

// ResolveOwner walks parent links from idx up to the nearest function-like declaration,
// stopping at the file root
func ResolveOwner(tree *graph.Tree, idx int) Owner {
	var owner Owner
	tree.Ancestors(idx, func(parent int) bool {
		node := tree.Node(parent)
		switch node.Kind {
		case graph.KindFunction:
			owner = Owner{Found: true, Name: node.Name}
			return false
		case graph.KindRoot:
			return false
		case graph.KindElement, graph.KindAttribute, graph.KindOther:
			return true
		}
		return true
	})
	return owner
}
