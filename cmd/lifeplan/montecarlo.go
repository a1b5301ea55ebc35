package main

import (
	"fmt"

	"github.com/lifeplan/cashflow-simulator/internal/calculation"
	"github.com/lifeplan/cashflow-simulator/internal/config"
	"github.com/lifeplan/cashflow-simulator/internal/output"
	"github.com/spf13/cobra"
)

type monteCarloFlags struct {
	input       string
	format      string
	runs        int
	concurrency int
	seed        int64
	output      string
	csvDir      string
}

func newMonteCarloCommand(opts *cliOptions) *cobra.Command {
	flags := &monteCarloFlags{}

	cmd := &cobra.Command{
		Use:     "montecarlo",
		Aliases: []string{"mc"},
		Short:   "Run many stochastic projections and summarize final assets",
		Example: `  lifeplan montecarlo -i household.yaml --runs 500 --concurrency 16
  lifeplan montecarlo -i household.yaml -f json --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonteCarlo(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "input document (YAML or JSON)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format (env "+envFormat+", default console)")
	cmd.Flags().IntVar(&flags.runs, "runs", calculation.DefaultMonteCarloSimulations, "number of simulations")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", calculation.DefaultMonteCarloConcurrency, "simulations run in parallel")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "base seed (default: the input seed)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&flags.csvDir, "csv-dir", "", "also write summary and per-run CSV files into this directory")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runMonteCarlo(cmd *cobra.Command, opts *cliOptions, flags *monteCarloFlags) error {
	if flags.runs <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", flags.runs)
	}
	format := opts.resolveFormat(flags.format)
	if output.GetFormatterByName(format) == nil {
		return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
	}

	params, err := config.NewInputParser().LoadFromFile(flags.input)
	if err != nil {
		return err
	}

	opts.logger.Info("starting monte carlo", "runs", flags.runs, "concurrency", flags.concurrency)
	results, err := opts.newEngine().RunMonteCarlo(cmd.Context(), params, calculation.MonteCarloConfig{
		NumSimulations: flags.runs,
		Seed:           flags.seed,
		Concurrency:    flags.concurrency,
	})
	if err != nil {
		return fmt.Errorf("monte carlo failed: %w", err)
	}

	w, closeOutput, err := openOutput(cmd, flags.output)
	if err != nil {
		return err
	}
	if err := output.GenerateReport(w, output.NewReport(params, nil, results), format); err != nil {
		_ = closeOutput()
		return err
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to close %s: %w", flags.output, err)
	}

	if flags.csvDir != "" {
		report := &output.MonteCarloCSVReport{Results: results}
		if err := report.GenerateAllCSVReports(flags.csvDir); err != nil {
			return fmt.Errorf("failed to write csv reports: %w", err)
		}
		opts.logger.Info("csv reports written", "dir", flags.csvDir)
	}
	return nil
}
