package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leasecalc/lease-economics/internal/calculation"
	"github.com/leasecalc/lease-economics/internal/config"
	"github.com/leasecalc/lease-economics/internal/output"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <lease.yaml>",
		Short: "Run every scenario in a lease file and write a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0])
		},
	}
	f := cmd.Flags()
	f.StringP("format", "f", "console", "report format, or \"all\" (see the formats command)")
	f.StringP("output-dir", "o", "", "write report files here instead of stdout")
	f.Int("max-parallel", 0, "maximum scenarios evaluated at once (0 for no limit)")
	f.String("run-id", "", "fix the run id instead of generating one")
	return cmd
}

func (a *app) run(cmd *cobra.Command, path string) error {
	log := a.logger.With(zap.String("op", "run"), zap.String("config", path))

	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		return err
	}
	for _, w := range parser.Warnings(cfg) {
		log.Warn("Configuration warning: " + w)
	}

	if id := a.v.GetString("run-id"); id != "" {
		calculation.SetRunIDFunc(func() string { return id })
	}

	engine := calculation.NewCalculationEngine()
	engine.MaxParallel = a.v.GetInt("max-parallel")
	engine.SetLogger(a.logger.Sugar())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := engine.RunScenarios(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info("scenarios evaluated",
		zap.String("run_id", results.RunID),
		zap.Int("scenarios", len(results.Scenarios)),
		zap.String("best_npv", results.BestNPVScenario),
	)

	format := a.v.GetString("format")
	dir := a.v.GetString("output-dir")
	if dir == "" {
		if output.NormalizeFormatName(format) == "all" {
			return fmt.Errorf("format \"all\" needs --output-dir")
		}
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
		}
		data, err := f.Format(results)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	paths, err := output.GenerateReport(results, format, dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Info("report written", zap.String("path", p))
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <lease.yaml>",
		Short: "Validate a lease file and list its warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: valid (%d scenarios)\n", args[0], len(cfg.Scenarios))
			for _, w := range parser.Warnings(cfg) {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			a.logger.Debug("validated", zap.String("op", "validate"), zap.String("config", args[0]))
			return nil
		},
	}
}

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example <file>",
		Short: "Write an example lease file (YAML, or JSON by extension)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, args[0]); err != nil {
				return err
			}
			a.logger.Info("example written", zap.String("op", "example"), zap.String("path", args[0]))
			fmt.Fprintln(cmd.OutOrStdout(), args[0])
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "formats: %s, all\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(out, "aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
			return nil
		},
	}
}
