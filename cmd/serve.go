package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/nandadx/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation form over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
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

		srv := web.New(web.Options{
			Engine:    d.engine,
			Care:      d.care,
			Recorder:  rec,
			Threshold: cfg.Engine.Threshold,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Server starting on %s...\n", cfg.Server.Addr)
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
