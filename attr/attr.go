// Package attr defines the attribute contract shared by the compile-time annotator and the runtime overlay.
package attr

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// Path holds the navigation link
	Path = "data-sj-path"
	// DisplayName holds the human-readable location label
	DisplayName = "data-sj-display-name"
	// Code holds the percent-encoded element source, present only with inline code capture
	Code = "data-sj-code"
	// UI marks the overlay's own root; the overlay never tracks it or its descendants
	UI = "data-sj-ui"

	// Scheme is the navigation link scheme handled by the editor launcher
	Scheme = "idea"
)

// Location identifies a source position carried by a navigation link
type Location struct {
	File   string
	Line   int
	Column int
}

// Link encodes location as a navigation link
func Link(loc Location) string {
	builder := strings.Builder{}
	builder.WriteString(Scheme)
	builder.WriteString("://open?file=")
	builder.WriteString(EncodeURIComponent(loc.File))
	builder.WriteString("&line=")
	builder.WriteString(strconv.Itoa(loc.Line))
	builder.WriteString("&column=")
	builder.WriteString(strconv.Itoa(loc.Column))
	return builder.String()
}

// ParseLink decodes a navigation link
func ParseLink(link string) (*Location, error) {
	URL, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("invalid link %q: %w", link, err)
	}
	if URL.Scheme != Scheme {
		return nil, fmt.Errorf("invalid link %q: unsupported scheme %q", link, URL.Scheme)
	}
	query := URL.Query()
	loc := &Location{File: query.Get("file")}
	if loc.Line, err = strconv.Atoi(query.Get("line")); err != nil {
		return nil, fmt.Errorf("invalid link %q: line: %w", link, err)
	}
	if loc.Column, err = strconv.Atoi(query.Get("column")); err != nil {
		return nil, fmt.Errorf("invalid link %q: column: %w", link, err)
	}
	return loc, nil
}

// Label formats the display label: path:line:column[ | [owner]]
func Label(path string, line, column int, owner string) string {
	label := path + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
	if owner != "" {
		label += " | [" + owner + "]"
	}
	return label
}

const upperHex = "0123456789ABCDEF"

// EncodeURIComponent escapes text the way ECMAScript encodeURIComponent does
func EncodeURIComponent(text string) string {
	builder := strings.Builder{}
	builder.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isUnreserved(c) {
			builder.WriteByte(c)
			continue
		}
		builder.WriteByte('%')
		builder.WriteByte(upperHex[c>>4])
		builder.WriteByte(upperHex[c&15])
	}
	return builder.String()
}

// DecodeURIComponent reverses EncodeURIComponent
func DecodeURIComponent(text string) (string, error) {
	return url.PathUnescape(text)
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
