package graph

// Emitter represents a printer turning a tree back into source text
type Emitter interface {
	Emit(tree *Tree) ([]byte, error)
}
