// Package plugin is the build-time entry point invoked once per file by a host build tool.
package plugin

import (
	"context"
	"log/slog"
	"time"

	"github.com/viant/sourcejump/annotator"
	"github.com/viant/sourcejump/config"
	"github.com/viant/sourcejump/metrics"
)

// Plugin annotates files with a supported extension and passes the rest through
type Plugin struct {
	config    *config.Config
	annotator *annotator.Annotator
}

// New creates a plugin for cfg
func New(cfg *config.Config, logger *slog.Logger) (*Plugin, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Init()
	if logger == nil {
		logger = slog.Default()
	}
	options, err := cfg.Options(logger)
	if err != nil {
		return nil, err
	}
	return &Plugin{config: cfg, annotator: annotator.New(options...)}, nil
}

// Config returns plugin config
func (p *Plugin) Config() *config.Config {
	return p.config
}

// Transform returns rewritten code and true for supported files, or code unchanged and false.
// A file must be transformed at most once; see annotator.Annotator.Transform.
// Failures are returned, not logged; callers report them with their own context.
func (p *Plugin) Transform(ctx context.Context, id string, code []byte) ([]byte, bool, error) {
	output := code
	changed := false
	if p.config.Supports(id) {
		started := time.Now()
		annotated, err := p.annotator.Transform(ctx, id, code)
		if err != nil {
			metrics.RecordFile(metrics.ResultFailed)
			return nil, false, err
		}
		metrics.ObserveTransform(time.Since(started).Seconds())
		output, changed = annotated, true
	}
	if p.config.EmbedSource && Embeddable(id) {
		output, changed = EmbedSource(id, output, code), true
	}
	if changed {
		metrics.RecordFile(metrics.ResultAnnotated)
	} else {
		metrics.RecordFile(metrics.ResultSkipped)
	}
	return output, changed, nil
}
