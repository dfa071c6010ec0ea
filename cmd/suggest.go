package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/nandadx/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest SYMPTOM...",
	Short: "Print the diagnoses suggested for symptoms",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("threshold") {
			cfg.Engine.Threshold, _ = cmd.Flags().GetFloat64("threshold")
		}
		d, err := loadDeps(cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		for _, s := range args {
			if !d.engine.Attributes().Contains(s) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not a known symptom\n", s)
			}
		}
		entries, err := d.engine.Suggest(args, cfg.Engine.Threshold)
		if err != nil {
			return err
		}
		return printSuggestions(cmd.OutOrStdout(), entries)
	},
}

func init() {
	suggestCmd.Flags().Float64("threshold", suggest.DefaultThreshold, "Minimum probability for a suggestion")
}

// printSuggestions writes one line per entry with its probability.
func printSuggestions(w io.Writer, entries []suggest.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Nenhum diagnóstico sugerido.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%5.1f%%\t%s\n", e.Probability*100, e.Message())
	}
	return tw.Flush()
}
