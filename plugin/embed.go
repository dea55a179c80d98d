package plugin

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/viant/sourcejump/attr"
)

// Embeddable returns true for sources the runtime can display in full
func Embeddable(id string) bool {
	switch strings.ToLower(filepath.Ext(id)) {
	case ".ts", ".tsx":
		return true
	}
	return false
}

// EmbedSource appends a statement registering source under id in globalThis.__files
func EmbedSource(id string, code []byte, source []byte) []byte {
	quoted, _ := json.Marshal(id)
	builder := strings.Builder{}
	builder.Grow(len(code) + len(source)*2 + 64)
	builder.Write(code)
	builder.WriteString("\n//@ts-ignore\n(globalThis.__files||={})[")
	builder.Write(quoted)
	builder.WriteString("] = decodeURIComponent(\"")
	builder.WriteString(attr.EncodeURIComponent(string(source)))
	builder.WriteString("\");")
	return []byte(builder.String())
}
