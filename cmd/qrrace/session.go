package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/qr-race/internal/config"
)

// newLogger creates the session logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "qrrace",
	})
}

// loadConfig loads the session config and applies flags the user set.
func loadConfig(cmd *cobra.Command, logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("stable-frames") {
		cfg.Capture.StableFrames = flagStableFrames
	}
	if flags.Changed("step") {
		cfg.Turn.StepSeconds = flagStep
	}
	if flags.Changed("fps") {
		cfg.Camera.FPS = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	for _, w := range cfg.Warnings() {
		logger.Warn("config", "warning", w)
	}
	return cfg, nil
}
