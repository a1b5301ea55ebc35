package main

import (
	"fmt"

	"github.com/lifeplan/cashflow-simulator/internal/config"
	"github.com/spf13/cobra"
)

func newExampleCommand(opts *cliOptions) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example input document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parser := config.NewInputParser()
			data, err := parser.MarshalDocument(parser.CreateExampleDocument())
			if err != nil {
				return err
			}

			w, closeOutput, err := openOutput(cmd, outputPath)
			if err != nil {
				return err
			}
			if _, err := w.Write(data); err != nil {
				_ = closeOutput()
				return fmt.Errorf("failed to write example: %w", err)
			}
			if outputPath != "" {
				opts.logger.Info("example written", "path", outputPath)
			}
			return closeOutput()
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the example to this file instead of stdout")
	return cmd
}
