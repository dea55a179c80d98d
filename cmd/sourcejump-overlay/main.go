//go:build js && wasm

// Command sourcejump-overlay mounts the source jump overlay into the page that loads it.
package main

import (
	"log/slog"
	"os"

	"github.com/viant/sourcejump/logging"
	"github.com/viant/sourcejump/overlay"
	"github.com/viant/sourcejump/overlay/dom"
)

func main() {
	logger := logging.Setup(os.Stderr, slog.LevelInfo, "text")
	window, err := dom.New()
	if err != nil {
		logger.Error("failed to mount overlay", slog.Any("error", err))
		os.Exit(1)
	}
	portal := overlay.Mount(window, window.Document(), overlay.WithNavigator(window), overlay.WithLogger(logger))
	logger.Info("overlay mounted", slog.String("id", portal.ID()))
	select {}
}
