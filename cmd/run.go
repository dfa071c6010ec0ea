package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/nandadx/internal/app"
	"github.com/abhisek/nandadx/internal/screens"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the terminal evaluation form (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd)
	},
}

// runForm loads the artifacts, opens the recorder and launches the TUI.
func runForm(cmd *cobra.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := loadDeps(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	rec, err := d.openRecorder()
	if err != nil {
		return fmt.Errorf("open recorder: %w", err)
	}

	return app.Run(app.Options{Env: screens.Env{
		Engine:    d.engine,
		Symptoms:  d.engine.Attributes().Names(),
		Care:      d.care,
		Recorder:  rec,
		Threshold: cfg.Engine.Threshold,
	}})
}
