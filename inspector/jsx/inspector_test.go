package jsx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sourcejump/inspector/graph"
	"github.com/viant/sourcejump/inspector/jsx"
)

func TestInspector_InspectSource(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		source     string
		wantTags   []string
		wantIdent  []bool
		wantOwners []string
		wantAttrs  [][]string
		wantErr    bool
	}{
		{
			name: "Function Component",
			path: "Greeting.tsx",
			source: `function Greeting(props) {
  return <h1 className="title">Hello, {props.name}!</h1>;
}`,
			wantTags:   []string{"h1"},
			wantIdent:  []bool{true},
			wantOwners: []string{"Greeting"},
			wantAttrs:  [][]string{{"className"}},
		},
		{
			name: "Member and self closing",
			path: "App.jsx",
			source: `const App = () => (
  <Ctx.Provider value={1}>
    <img src="a.png" {...rest} />
  </Ctx.Provider>
);`,
			wantTags:   []string{"Ctx.Provider", "img"},
			wantIdent:  []bool{false, true},
			wantOwners: []string{"", ""},
			wantAttrs:  [][]string{{"value"}, {"src", ""}},
		},
		{
			name:       "Default exported anonymous function",
			path:       "Page.tsx",
			source:     `export default function () { return <main/>; }`,
			wantTags:   []string{"main"},
			wantIdent:  []bool{true},
			wantOwners: []string{"<anonymous>"},
			wantAttrs:  [][]string{nil},
		},
		{
			name:    "Unparsable",
			path:    "Broken.tsx",
			source:  `function Broken() { return <div><span></div>; `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := jsx.NewInspector()
			tree, err := inspector.InspectSource(context.Background(), tt.path, []byte(tt.source))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, jsx.ErrSyntax))
				var syntaxErr *jsx.SyntaxError
				assert.True(t, errors.As(err, &syntaxErr))
				assert.Equal(t, tt.path, syntaxErr.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, graph.KindRoot, tree.Node(tree.Root()).Kind)

			elements := tree.Elements()
			require.Len(t, elements, len(tt.wantTags))
			for k, idx := range elements {
				element := tree.Node(idx)
				assert.Equal(t, tt.wantTags[k], element.Tag)
				assert.Equal(t, tt.wantIdent[k], element.TagIsIdentifier)

				owner := ""
				tree.Ancestors(idx, func(parent int) bool {
					if tree.Node(parent).Kind == graph.KindFunction {
						owner = tree.Node(parent).Name
						if owner == "" {
							owner = "<anonymous>"
						}
						return false
					}
					return true
				})
				assert.Equal(t, tt.wantOwners[k], owner)

				var names []string
				for _, attr := range tree.Attributes(idx) {
					names = append(names, attr.AttrName)
				}
				assert.Equal(t, tt.wantAttrs[k], names)
			}
		})
	}
}

func TestInspector_Position(t *testing.T) {
	source := "const s = \"é😀\"; function A() {\n  return <div/>;\n}\nconst b = <p>😀</p>; const c = <b/>;"
	tree, err := jsx.NewInspector().InspectSource(context.Background(), "pos.tsx", []byte(source))
	require.NoError(t, err)
	elements := tree.Elements()
	require.Len(t, elements, 3)
	assert.Equal(t, graph.Position{Offset: tree.Node(elements[0]).Span.Start, Line: 2, Column: 10}, tree.Node(elements[0]).Position)
	assert.Equal(t, 4, tree.Node(elements[1]).Position.Line)
	assert.Equal(t, 11, tree.Node(elements[1]).Position.Column)
	// the emoji before <b/> counts as two UTF-16 units
	assert.Equal(t, 4, tree.Node(elements[2]).Position.Line)
	assert.Equal(t, 32, tree.Node(elements[2]).Position.Column)
}

func TestEmitter_Emit(t *testing.T) {
	source := `function A() {
  return <div id="x" {...p}><Foo.Bar /><span/></div>;
}`
	tree, err := jsx.NewInspector().InspectSource(context.Background(), "a.tsx", []byte(source))
	require.NoError(t, err)

	emitter := &jsx.Emitter{}
	unchanged, err := emitter.Emit(tree)
	require.NoError(t, err)
	assert.Equal(t, source, string(unchanged))

	for _, idx := range tree.Elements() {
		if !tree.Node(idx).TagIsIdentifier {
			continue
		}
		tree.Add(idx, graph.Node{Kind: graph.KindAttribute, AttrName: "data-a", AttrValue: "plain", Synthetic: true})
		tree.Add(idx, graph.Node{Kind: graph.KindAttribute, AttrName: "data-b", AttrValue: `x&"y"`, Synthetic: true})
	}
	output, err := emitter.Emit(tree)
	require.NoError(t, err)
	expect := `function A() {
  return <div id="x" {...p} data-a="plain" data-b={"x&\"y\""}><Foo.Bar /><span data-a="plain" data-b={"x&\"y\""}/></div>;
}`
	assert.Equal(t, expect, string(output))
}
