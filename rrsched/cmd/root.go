// Package cmd provides the command-line interface for rrsched.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rrsched/config"
	"github.com/sarchlab/rrsched/logging"
)

var (
	configFile string
	envFile    string

	cfg    config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rrsched",
	Short: "rrsched simulates Round-Robin CPU scheduling tick by tick.",
	Long: `rrsched simulates Round-Robin CPU scheduling tick by tick. ` +
		`Settings come from defaults, an optional YAML file, RRSCHED_* ` +
		`environment variables and flags, later sources winning.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "YAML settings file")
	flags.StringVar(&envFile, "env-file", ".env",
		"dotenv file with RRSCHED_* variables, ignored if missing")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("log-format", "", "text or json")
}

// loadSettings layers defaults, the YAML file, the environment and the
// flags into cfg and builds the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg = config.Default()

	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return err
		}
	}

	if err := cfg.LoadEnv(envFile); err != nil {
		return err
	}

	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	l, err := logging.BuildLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logger = l

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		return 1
	}

	return 0
}
