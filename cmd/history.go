package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded evaluations from the SQLite mirror",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")
		rows, err := st.EvaluationRepo().List(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			SessionID: sessionID,
		})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma avaliação registrada.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tDATA\tSESSÃO\tINICIAIS\tDIAGNÓSTICO\tSINTOMAS\tNOTA\tTEMPO (s)")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%.2f\n",
				r.Sequence,
				r.RecordedAt.Local().Format(time.DateTime),
				shortID(r.SessionID),
				r.Initials,
				diagnosis.DisplayName(r.Diagnosis),
				r.Symptoms,
				r.Rating,
				r.ElapsedSeconds,
			)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().String("db", "", "Path to SQLite database file (overrides log.sqlite)")
	historyCmd.Flags().Int("limit", 20, "Maximum rows to show (0 = all)")
	historyCmd.Flags().String("session", "", "Only rows of this session ID")
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
