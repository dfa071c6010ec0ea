package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/abhisek/nandadx/internal/config"
	"github.com/abhisek/nandadx/internal/logger"
	"github.com/abhisek/nandadx/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "nandadx",
	Short: "Nursing diagnosis suggestion form",
	Long: "nandadx suggests NANDA nursing diagnoses for observed symptoms, lets the user\n" +
		"confirm them and records each evaluation session.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			logger.SetVerbose(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides "+config.EnvPath+" env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(symptomsCmd)
	rootCmd.AddCommand(diagnosesCmd)
	rootCmd.AddCommand(careCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves and reads the config file named by --config,
// $NANDADX_CONFIG or the default XDG path.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	flag, _ := cmd.Flags().GetString("config")
	path, err := config.ResolvePath(flag)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, err
	}
	logger.Debug("config: %s", path)
	return cfg, path, cfg.Validate()
}

// errNoMirror is returned when neither --db nor log.sqlite names a database.
var errNoMirror = errors.New("no SQLite mirror configured: set log.sqlite or pass --db")

// resolveDBPath returns the SQLite mirror path using --db (highest
// priority), then the config's log.sqlite.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Log.SQLite != "" {
		return cfg.Log.SQLite, store.EnsureDir(cfg.Log.SQLite)
	}
	return "", errNoMirror
}
