package jsx

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/viant/sourcejump/inspector/graph"
)

// Emitter converts a rewritten graph.Tree back to source text.
// Original bytes are copied verbatim; synthetic attributes are spliced in at each element's insert offset.
type Emitter struct{}

type insertion struct {
	offset int
	text   string
}

// Emit renders tree
func (e *Emitter) Emit(tree *graph.Tree) ([]byte, error) {
	var insertions []insertion
	for _, idx := range tree.Elements() {
		element := tree.Node(idx)
		builder := &strings.Builder{}
		for _, attr := range tree.Attributes(idx) {
			if !attr.Synthetic {
				continue
			}
			builder.WriteByte(' ')
			value, err := attributeLiteral(attr.AttrValue)
			if err != nil {
				return nil, err
			}
			builder.WriteString(attr.AttrName)
			builder.WriteByte('=')
			builder.WriteString(value)
		}
		if builder.Len() > 0 {
			insertions = append(insertions, insertion{offset: element.Insert, text: builder.String()})
		}
	}
	if len(insertions) == 0 {
		return tree.Source, nil
	}
	sort.SliceStable(insertions, func(i, j int) bool {
		return insertions[i].offset < insertions[j].offset
	})

	buffer := bytes.Buffer{}
	prev := 0
	for _, ins := range insertions {
		buffer.Write(tree.Source[prev:ins.offset])
		buffer.WriteString(ins.text)
		prev = ins.offset
	}
	buffer.Write(tree.Source[prev:])
	return buffer.Bytes(), nil
}

// attributeLiteral quotes value as a JSX string, or as an expression container when
// the value holds characters a JSX string literal cannot carry verbatim
func attributeLiteral(value string) (string, error) {
	if !strings.ContainsAny(value, "\"&{}<>\n\r\\") {
		return `"` + value + `"`, nil
	}
	buffer := bytes.Buffer{}
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return "", err
	}
	return "{" + strings.TrimSuffix(buffer.String(), "\n") + "}", nil
}
