// Package config loads sourcejump settings.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/sourcejump/annotator"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory
const DefaultFile = "sourcejump.yaml"

// Config represents transform settings
type Config struct {
	Target      []string `yaml:"target,omitempty"`      // tag patterns, default ^[a-z]+$
	ProjectRoot string   `yaml:"projectRoot,omitempty"` // prefix stripped from display labels
	InlineCode  bool     `yaml:"inlineCode,omitempty"`  // capture element source
	EmbedSource bool     `yaml:"embedSource,omitempty"` // register full file source at runtime
	Extensions  []string `yaml:"extensions,omitempty"`  // annotated file extensions
	Exclude     []string `yaml:"exclude,omitempty"`     // glob patterns skipped by builds
}

// DefaultConfig returns default config
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".tsx", ".jsx"},
		Exclude:    []string{"node_modules", "dist", "build", ".git"},
	}
}

// Load reads a YAML config from URL, applying defaults to unset fields
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := &Config{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	ret.Init()
	return ret, nil
}

// Init applies defaults and normalizes fields
func (c *Config) Init() {
	defaults := DefaultConfig()
	if len(c.Extensions) == 0 {
		c.Extensions = defaults.Extensions
	}
	if c.Exclude == nil {
		c.Exclude = defaults.Exclude
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
}

// Supports returns true if path has a configured extension
func (c *Config) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range c.Extensions {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}

// Excluded returns true if any path element matches an exclude pattern
func (c *Config) Excluded(path string) bool {
	for _, element := range strings.Split(filepath.ToSlash(path), "/") {
		for _, pattern := range c.Exclude {
			if ok, _ := filepath.Match(pattern, element); ok {
				return true
			}
		}
	}
	return false
}

// Options converts config to annotator options
func (c *Config) Options(logger *slog.Logger) ([]annotator.Option, error) {
	patterns, err := annotator.CompileTarget(c.Target)
	if err != nil {
		return nil, err
	}
	return []annotator.Option{
		annotator.WithTarget(patterns...),
		annotator.WithProjectRoot(c.ProjectRoot),
		annotator.WithInlineCode(c.InlineCode),
		annotator.WithLogger(logger),
	}, nil
}
