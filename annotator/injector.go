package annotator

import (
	"github.com/viant/sourcejump/attr"
	"github.com/viant/sourcejump/inspector/graph"
)

// Metadata represents attribute values injected into a matched element
type Metadata struct {
	Link  string
	Label string
	Code  string // empty unless inline code capture is enabled
}

// NewMetadata computes metadata for the element at idx
func NewMetadata(tree *graph.Tree, idx int, owner Owner, project *graph.Project, inlineCode bool) Metadata {
	pos := tree.Node(idx).Position
	meta := Metadata{
		Link:  attr.Link(attr.Location{File: tree.Path, Line: pos.Line, Column: pos.Column}),
		Label: attr.Label(project.Relative(tree.Path), pos.Line, pos.Column, owner.Name),
	}
	if inlineCode {
		meta.Code = attr.EncodeURIComponent(tree.Text(idx))
	}
	return meta
}

// Inject appends metadata attributes after the existing attributes of the element at idx
func Inject(tree *graph.Tree, idx int, meta Metadata) {
	tree.Add(idx, graph.Node{Kind: graph.KindAttribute, AttrName: attr.Path, AttrValue: meta.Link, Synthetic: true})
	tree.Add(idx, graph.Node{Kind: graph.KindAttribute, AttrName: attr.DisplayName, AttrValue: meta.Label, Synthetic: true})
	if meta.Code != "" {
		tree.Add(idx, graph.Node{Kind: graph.KindAttribute, AttrName: attr.Code, AttrValue: meta.Code, Synthetic: true})
	}
}
