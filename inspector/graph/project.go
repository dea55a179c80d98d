package graph

import (
	"strings"
)

// Project represents the source tree a file belongs to
type Project struct {
	Name     string
	Type     string
	RootPath string
}

// Relative returns path with the project root prefix removed; the leading separator is kept
func (p *Project) Relative(path string) string {
	if p == nil || p.RootPath == "" {
		return path
	}
	return strings.TrimPrefix(path, p.RootPath)
}
