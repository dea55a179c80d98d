package jsx

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/viant/sourcejump/inspector/graph"
)

// ErrSyntax reports source text the grammar could not parse
var ErrSyntax = errors.New("syntax error")

// SyntaxError locates the first unparsable node of a file
type SyntaxError struct {
	Path     string
	Position graph.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Position.Line, e.Position.Column, ErrSyntax)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Inspector parses JSX/TSX sources into a graph.Tree arena
type Inspector struct{}

// NewInspector creates a new JSX Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Language returns the grammar used for the supplied file name
func Language(filename string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return tsx.GetLanguage()
	}
}

// InspectSource parses src and builds the tree; path selects the grammar and labels errors
func (i *Inspector) InspectSource(ctx context.Context, path string, src []byte) (*graph.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(Language(path))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, &SyntaxError{Path: path, Position: position(firstError(rootNode), src)}
	}
	result := graph.NewTree(path, src)
	build(result, graph.NoParent, rootNode, src)
	return result, nil
}

// build copies node and its named descendants into the arena
func build(tree *graph.Tree, parent int, node *sitter.Node, src []byte) {
	aNode := graph.Node{
		Type:     node.Type(),
		Span:     graph.Span{Start: int(node.StartByte()), End: int(node.EndByte())},
		Position: position(node, src),
	}
	switch node.Type() {
	case "program":
		aNode.Kind = graph.KindRoot
	case "jsx_opening_element", "jsx_self_closing_element":
		buildElement(tree, parent, node, aNode, src)
		return
	case "function_declaration", "generator_function_declaration":
		aNode.Kind = graph.KindFunction
		aNode.Name = fieldContent(node, "name", src)
	case "function_expression", "function":
		// export default function () {} is a declaration without a name
		if p := node.Parent(); p != nil && p.Type() == "export_statement" {
			aNode.Kind = graph.KindFunction
			aNode.Name = fieldContent(node, "name", src)
		}
	}
	idx := tree.Add(parent, aNode)
	for j := 0; j < int(node.NamedChildCount()); j++ {
		build(tree, idx, node.NamedChild(j), src)
	}
}

func buildElement(tree *graph.Tree, parent int, node *sitter.Node, aNode graph.Node, src []byte) {
	aNode.Kind = graph.KindElement
	aNode.Insert = aNode.Span.Start + 1

	first := 0
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		first = 1
		aNode.Tag = nameNode.Content(src)
		aNode.TagIsIdentifier = nameNode.Type() == "identifier"
		aNode.Insert = int(nameNode.EndByte())
	}
	idx := tree.Add(parent, aNode)
	for j := first; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		tree.Node(idx).Insert = int(child.EndByte())
		switch child.Type() {
		case "type_arguments", "comment":
			continue
		case "jsx_attribute":
			attrIdx := tree.Add(idx, graph.Node{
				Kind:      graph.KindAttribute,
				Type:      child.Type(),
				Span:      graph.Span{Start: int(child.StartByte()), End: int(child.EndByte())},
				Position:  position(child, src),
				AttrName:  child.NamedChild(0).Content(src),
				AttrValue: attributeValue(child, src),
			})
			for k := 1; k < int(child.NamedChildCount()); k++ {
				build(tree, attrIdx, child.NamedChild(k), src)
			}
		default:
			// spread attribute {...props}
			attrIdx := tree.Add(idx, graph.Node{
				Kind:      graph.KindAttribute,
				Type:      child.Type(),
				Span:      graph.Span{Start: int(child.StartByte()), End: int(child.EndByte())},
				Position:  position(child, src),
				AttrValue: child.Content(src),
			})
			for k := 0; k < int(child.NamedChildCount()); k++ {
				build(tree, attrIdx, child.NamedChild(k), src)
			}
		}
	}
}

func attributeValue(attr *sitter.Node, src []byte) string {
	if attr.NamedChildCount() < 2 {
		return ""
	}
	return attr.NamedChild(1).Content(src)
}

func fieldContent(node *sitter.Node, field string, src []byte) string {
	if child := node.ChildByFieldName(field); child != nil {
		return child.Content(src)
	}
	return ""
}

// firstError returns the first ERROR or MISSING node in document order
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child.HasError() || child.IsMissing() {
			if found := firstError(child); found != nil {
				return found
			}
		}
	}
	return node
}

// position resolves node start into a 1-based line and UTF-16 column
func position(node *sitter.Node, src []byte) graph.Position {
	start := int(node.StartByte())
	point := node.StartPoint()
	lineStart := start - int(point.Column)
	return graph.Position{
		Offset: start,
		Line:   int(point.Row) + 1,
		Column: utf16Len(src[lineStart:start]) + 1,
	}
}

func utf16Len(data []byte) int {
	count := 0
	for _, r := range string(data) {
		if r >= 0x10000 {
			count += 2
			continue
		}
		count++
	}
	return count
}
