package main

import (
	"fmt"

	"github.com/lifeplan/cashflow-simulator/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCommand(opts *cliOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an input document without running a projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := config.NewInputParser().LoadFromFile(input)
			if err != nil {
				return err
			}
			opts.logger.Debug("input validated", "file", input)
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: ages %d-%d (%d years), %s expenses, %s returns\n",
				input, params.InitialAge, params.EndAge, params.HorizonYears(), params.ExpenseMode, params.InterestScenario)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input document (YAML or JSON)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
