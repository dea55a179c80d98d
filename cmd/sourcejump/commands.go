package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/viant/sourcejump/builder"
	"github.com/viant/sourcejump/config"
	"github.com/viant/sourcejump/inspector/repository"
	"github.com/viant/sourcejump/logging"
	"github.com/viant/sourcejump/plugin"
	"github.com/viant/sourcejump/server"
)

type options struct {
	configFile  string
	logLevel    string
	logFormat   string
	out         string
	concurrency int
	debounce    time.Duration
	addr        string
	inlineCode  bool
	embedSource bool
	logger      *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "sourcejump",
		Short:         "Annotate JSX/TSX markup with source locations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logging.Setup(cmd.ErrOrStderr(), level, opts.logFormat)
			slog.SetDefault(opts.logger)
			return nil
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", config.DefaultFile, "config file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flags.BoolVar(&opts.inlineCode, "inline-code", false, "capture element source in data-sj-code")
	flags.BoolVar(&opts.embedSource, "embed-source", false, "register full file source at runtime")

	transformCmd := &cobra.Command{
		Use:   "transform <src>",
		Short: "Annotate every supported file under src into --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aBuilder, err := opts.builder(cmd, args[0])
			if err != nil {
				return err
			}
			results, err := aBuilder.Build(cmd.Context(), args[0], opts.out)
			if err != nil {
				return err
			}
			changed := 0
			for _, result := range results {
				if result.Changed {
					changed++
				}
			}
			opts.logger.Info("transform completed", slog.Int("files", len(results)), slog.Int("annotated", changed))
			return nil
		},
	}
	transformCmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory")
	transformCmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "parallel transforms, 0 uses the default of 4")
	_ = transformCmd.MarkFlagRequired("out")

	watchCmd := &cobra.Command{
		Use:   "watch <src>",
		Short: "Transform src into --out and keep it in sync",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aBuilder, err := opts.builder(cmd, args[0])
			if err != nil {
				return err
			}
			watcher := builder.NewWatcher(aBuilder, args[0], opts.out, opts.debounce)
			err = watcher.Run(cmd.Context())
			if errors.Is(err, cmd.Context().Err()) {
				return nil
			}
			return err
		},
	}
	watchCmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory")
	watchCmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "parallel transforms, 0 uses the default of 4")
	watchCmd.Flags().DurationVar(&opts.debounce, "debounce", builder.DefaultDebounce, "quiet period before rebuilding")
	_ = watchCmd.MarkFlagRequired("out")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transform hook over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			aPlugin, err := opts.plugin(cmd, wd)
			if err != nil {
				return err
			}
			return serve(cmd, opts, aPlugin)
		},
	}
	serveCmd.Flags().StringVar(&opts.addr, "addr", "127.0.0.1:8089", "listen address")

	rootCmd.AddCommand(transformCmd, watchCmd, serveCmd)
	return rootCmd
}

func serve(cmd *cobra.Command, opts *options, aPlugin *plugin.Plugin) error {
	srv := &http.Server{Addr: opts.addr, Handler: server.New(aPlugin, opts.logger).Handler()}
	errs := make(chan error, 1)
	go func() {
		opts.logger.Info("listening", slog.String("addr", opts.addr))
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return err
	case <-cmd.Context().Done():
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// loadConfig reads the config file when present and applies flag overrides
func (o *options) loadConfig(cmd *cobra.Command, src string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if _, err := os.Stat(o.configFile); err == nil {
		URL, err := filepath.Abs(o.configFile)
		if err != nil {
			return nil, err
		}
		if cfg, err = config.Load(cmd.Context(), URL); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
		return nil, fmt.Errorf("failed to read config %s: %w", o.configFile, err)
	}
	if cmd.Flags().Changed("inline-code") {
		cfg.InlineCode = o.inlineCode
	}
	if cmd.Flags().Changed("embed-source") {
		cfg.EmbedSource = o.embedSource
	}
	if cfg.ProjectRoot == "" {
		project, err := repository.New().DetectProject(src)
		if err != nil {
			return nil, err
		}
		cfg.ProjectRoot = project.RootPath
		o.logger.Debug("detected project", slog.String("root", project.RootPath), slog.String("type", project.Type), slog.String("name", project.Name))
	}
	cfg.Init()
	return cfg, nil
}

func (o *options) plugin(cmd *cobra.Command, src string) (*plugin.Plugin, error) {
	cfg, err := o.loadConfig(cmd, src)
	if err != nil {
		return nil, err
	}
	return plugin.New(cfg, o.logger)
}

func (o *options) builder(cmd *cobra.Command, src string) (*builder.Builder, error) {
	aPlugin, err := o.plugin(cmd, src)
	if err != nil {
		return nil, err
	}
	return builder.New(aPlugin, o.concurrency, o.logger), nil
}
