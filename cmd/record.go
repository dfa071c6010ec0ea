package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nandadx/internal/recorder"
	"github.com/abhisek/nandadx/internal/selection"
	"github.com/abhisek/nandadx/internal/session"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an evaluation session without the form",
	Example: `  nandadx record --initials MCS \
    --select Risco_de_Infeccao=Febre_alta \
    --select Padrao_respiratorio_ineficaz=Tosse,Dispneia \
    --rating 4 --observations "sem intercorrências"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rec, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}

		d := &deps{cfg: cfg}
		defer d.Close()
		r, err := d.openRecorder()
		if err != nil {
			return fmt.Errorf("open recorder: %w", err)
		}
		if err := r.Record(cmd.Context(), rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Avaliação salva com sucesso (%d linhas).\n", len(rec.Selections))
		return nil
	},
}

func init() {
	recordCmd.Flags().String("initials", "", "User initials")
	recordCmd.Flags().StringArray("select", nil, "Confirmed diagnosis as DIAGNOSIS=SYMPTOM[,SYMPTOM] (repeatable)")
	recordCmd.Flags().String("custom", "", "Free-text custom diagnosis")
	recordCmd.Flags().String("observations", "", "General observations")
	recordCmd.Flags().Int("rating", session.MinRating, "Application rating (1 to 5)")
	recordCmd.Flags().Float64("elapsed", 0, "Selection time in seconds")
}

// recordFromFlags builds a session record from the record command's flags.
func recordFromFlags(cmd *cobra.Command) (recorder.SessionRecord, error) {
	flags := cmd.Flags()
	initials, _ := flags.GetString("initials")
	selects, _ := flags.GetStringArray("select")
	custom, _ := flags.GetString("custom")
	observations, _ := flags.GetString("observations")
	rating, _ := flags.GetInt("rating")
	elapsed, _ := flags.GetFloat64("elapsed")

	if rating < session.MinRating || rating > session.MaxRating {
		return recorder.SessionRecord{}, fmt.Errorf("--rating must be between %d and %d",
			session.MinRating, session.MaxRating)
	}

	var set selection.Set
	var symptoms []string
	seen := map[string]bool{}
	for _, s := range selects {
		diag, syms, err := parseSelection(s)
		if err != nil {
			return recorder.SessionRecord{}, err
		}
		for _, sym := range syms {
			set.Add(diag, sym)
			if !seen[sym] {
				seen[sym] = true
				symptoms = append(symptoms, sym)
			}
		}
	}
	set.SetCustom(custom)

	return recorder.SessionRecord{
		Initials:       initials,
		Selections:     set.Entries(),
		Symptoms:       symptoms,
		Observations:   observations,
		Rating:         rating,
		ElapsedSeconds: elapsed,
	}, nil
}

// parseSelection splits "DIAGNOSIS=SYMPTOM,SYMPTOM".
func parseSelection(s string) (string, []string, error) {
	diag, rest, ok := strings.Cut(s, "=")
	diag = strings.TrimSpace(diag)
	if !ok || diag == "" {
		return "", nil, fmt.Errorf("invalid --select %q: want DIAGNOSIS=SYMPTOM[,SYMPTOM]", s)
	}
	var syms []string
	for _, sym := range strings.Split(rest, ",") {
		if sym = strings.TrimSpace(sym); sym != "" {
			syms = append(syms, sym)
		}
	}
	if len(syms) == 0 {
		return "", nil, fmt.Errorf("invalid --select %q: no symptoms", s)
	}
	return diag, syms, nil
}
