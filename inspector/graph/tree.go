package graph

// NoParent marks the root node of a Tree
const NoParent = -1

// Kind classifies a node for the annotation pass
type Kind int

const (
	KindOther     Kind = iota
	KindRoot           // source file
	KindElement        // opening or self-closing markup tag
	KindFunction       // function-like declaration owning rendered markup
	KindAttribute      // attribute of an element
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindElement:
		return "element"
	case KindFunction:
		return "function"
	case KindAttribute:
		return "attribute"
	default:
		return "other"
	}
}

// Position represents a resolved source location
type Position struct {
	Offset int // absolute byte offset
	Line   int // 1-based line
	Column int // 1-based column, counted in UTF-16 code units
}

// Span represents a byte range in the source
type Span struct {
	Start int
	End   int
}

// Node represents a single syntax node stored in a Tree arena
type Node struct {
	Kind     Kind
	Type     string // grammar node type, e.g. jsx_opening_element
	Span     Span
	Position Position
	Parent   int   // index of the parent node, NoParent for root
	Children []int // ordered child indices

	// Element
	Tag             string // tag identifier
	TagIsIdentifier bool   // false for member, namespace or computed tags
	Insert          int    // byte offset where appended attributes are spliced in

	// Function
	Name string // declaration name, empty when anonymous

	// Attribute
	AttrName  string
	AttrValue string
	Synthetic bool // appended by a rewrite, not present in source
}

// Tree represents a parsed source file as an arena of nodes, root at index 0
type Tree struct {
	Path   string
	Source []byte
	Nodes  []Node
}

// NewTree creates an empty tree for the supplied source
func NewTree(path string, source []byte) *Tree {
	return &Tree{Path: path, Source: source}
}

// Add appends node under parent and returns its index
func (t *Tree) Add(parent int, node Node) int {
	node.Parent = parent
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, node)
	if parent != NoParent {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	}
	return idx
}

// Root returns the root index
func (t *Tree) Root() int {
	return 0
}

// Node returns node at idx
func (t *Tree) Node(idx int) *Node {
	return &t.Nodes[idx]
}

// Text returns source text spanned by the node at idx
func (t *Tree) Text(idx int) string {
	span := t.Nodes[idx].Span
	return string(t.Source[span.Start:span.End])
}

// Attributes returns attribute nodes of the element at idx, in order
func (t *Tree) Attributes(idx int) []*Node {
	var result []*Node
	for _, child := range t.Nodes[idx].Children {
		if t.Nodes[child].Kind == KindAttribute {
			result = append(result, &t.Nodes[child])
		}
	}
	return result
}

// Ancestors calls fn for each ancestor of idx, nearest first, until fn returns false
func (t *Tree) Ancestors(idx int, fn func(parent int) bool) {
	for cur := t.Nodes[idx].Parent; cur != NoParent; cur = t.Nodes[cur].Parent {
		if !fn(cur) {
			return
		}
	}
}

// Elements returns indices of all element nodes in document order
func (t *Tree) Elements() []int {
	var result []int
	for i := range t.Nodes {
		if t.Nodes[i].Kind == KindElement {
			result = append(result, i)
		}
	}
	return result
}
