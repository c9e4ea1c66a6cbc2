// Command leasecalc runs lease scenarios from a YAML file and writes reports.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "LEASECALC"

// app holds what every subcommand shares once the root has initialized
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "leasecalc",
		Short:         "Commercial lease economics calculator",
		Long:          "leasecalc builds monthly rent schedules, amortizes landlord costs, prices termination options and compares lease scenarios by NPV, IRR and effective rent.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("env-file", ".env", "optional dotenv file with LEASECALC_ settings")
	pf.String("settings", "", "optional YAML file with CLI settings")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		newRunCmd(a),
		newValidateCmd(a),
		newExampleCmd(a),
		newFormatsCmd(),
	)
	return root
}

// init loads the dotenv file, binds flags and env into viper and builds the logger.
// Precedence is flag, then environment, then settings file, then default.
func (a *app) init(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := a.v.GetString("settings"); path != "" {
		a.v.SetConfigFile(path)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	logger, err := initializeLogger(a.v.GetString("log-level"), a.v.GetString("log-format"), a.v.GetString("log-file"))
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}
