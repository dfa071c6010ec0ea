package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/nandadx/internal/diagnosis"
)

var symptomsCmd = &cobra.Command{
	Use:   "symptoms",
	Short: "List the symptoms in feature order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadFromCmd(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		for _, s := range d.engine.Attributes().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

var diagnosesCmd = &cobra.Command{
	Use:   "diagnoses",
	Short: "List the diagnosis classes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadFromCmd(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		for i, name := range d.engine.Labels().Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i, diagnosis.DisplayName(name))
		}
		return nil
	},
}

var careCmd = &cobra.Command{
	Use:   "care DIAGNOSIS",
	Short: "Print the care instructions for a diagnosis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadFromCmd(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		items := d.care.Instructions(args[0])
		if len(items) == 0 {
			return fmt.Errorf("no care instructions for %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", diagnosis.DisplayName(args[0]))
		for _, item := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "  • %s\n", item)
		}
		return nil
	},
}

func loadFromCmd(cmd *cobra.Command) (*deps, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return loadDeps(cfg)
}
