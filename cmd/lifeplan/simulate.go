package main

import (
	"fmt"

	"github.com/lifeplan/cashflow-simulator/internal/config"
	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/lifeplan/cashflow-simulator/internal/output"
	"github.com/spf13/cobra"
)

type simulateFlags struct {
	input     string
	format    string
	seed      int64
	scenario  string
	startYear int
	output    string
	saveDir   string
}

func newSimulateCommand(opts *cliOptions) *cobra.Command {
	flags := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a single projection and print the yearly ledger",
		Example: `  lifeplan simulate -i household.yaml
  lifeplan simulate -i household.yaml --scenario stochastic --seed 42 -f csv -o ledger.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "input document (YAML or JSON)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format (env "+envFormat+", default console)")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "seed for the stochastic scenario")
	cmd.Flags().StringVar(&flags.scenario, "scenario", "", "override the interest scenario: fixed or stochastic")
	cmd.Flags().IntVar(&flags.startYear, "start-year", 0, "calendar year of the first record (default current year)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&flags.saveDir, "save", "", "also save a timestamped report into this directory")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// applyOverrides copies command-line overrides onto loaded parameters
func (f *simulateFlags) applyOverrides(cmd *cobra.Command, params *domain.InputParameters) error {
	if f.scenario != "" {
		scenario, err := config.ParseInterestScenario(f.scenario)
		if err != nil {
			return err
		}
		params.InterestScenario = scenario
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		params.Seed = &seed
	}
	if f.startYear > 0 {
		params.StartYear = f.startYear
	}
	return nil
}

func runSimulate(cmd *cobra.Command, opts *cliOptions, flags *simulateFlags) error {
	format := opts.resolveFormat(flags.format)
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
	}

	params, err := config.NewInputParser().LoadFromFile(flags.input)
	if err != nil {
		return err
	}
	if err := flags.applyOverrides(cmd, params); err != nil {
		return err
	}

	run, err := opts.newEngine().Simulate(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	report := output.NewReport(params, run, nil)

	w, closeOutput, err := openOutput(cmd, flags.output)
	if err != nil {
		return err
	}
	if err := output.GenerateReport(w, report, format); err != nil {
		_ = closeOutput()
		return err
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to close %s: %w", flags.output, err)
	}

	if flags.saveDir != "" {
		path, err := output.WriteFormatted(formatter, report, flags.saveDir, output.FileExtension(format))
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		opts.logger.Info("report saved", "path", path, "format", formatter.Name())
	}
	return nil
}
