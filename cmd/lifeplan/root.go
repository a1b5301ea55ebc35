package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lifeplan/cashflow-simulator/internal/calculation"
	"github.com/lifeplan/cashflow-simulator/internal/log"
	"github.com/spf13/cobra"
)

const (
	envLogLevel       = "LIFEPLAN_LOG_LEVEL"
	envFormat         = "LIFEPLAN_FORMAT"
	defaultEnvFile    = ".env"
	defaultFormatName = "console"
)

// cliOptions is shared by every subcommand
type cliOptions struct {
	logLevel string
	envFile  string

	env    map[string]string
	level  slog.Level
	logger *log.Logger
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "lifeplan",
		Short: "Household cash flow and net worth projection",
		Long: `lifeplan projects a household's income, expenses and assets year by year
from the current age to an end age, including life events such as a car,
a home purchase, marriage, children and parent care.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (env "+envLogLevel+")")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file with LIFEPLAN_* defaults (default .env when present)")

	root.AddCommand(
		newSimulateCommand(opts),
		newMonteCarloCommand(opts),
		newValidateCommand(opts),
		newExampleCommand(opts),
	)
	return root
}

// setup reads the env file and builds the logger for the command about to run
func (o *cliOptions) setup(cmd *cobra.Command) error {
	env, err := loadEnvFile(o.envFile)
	if err != nil {
		return err
	}
	o.env = env

	levelName := o.logLevel
	if !cmd.Flags().Changed("log-level") {
		levelName = o.getenv(envLogLevel)
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}
	o.level = level

	cfg := log.DefaultConfig()
	cfg.Level = level
	cfg.Writer = cmd.ErrOrStderr()
	o.logger = log.New(cfg).WithComponent("cli")
	return nil
}

// loadEnvFile reads an explicit env file, or .env when it exists. The process
// environment is never modified.
func loadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		env, err := godotenv.Read(defaultEnvFile)
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", defaultEnvFile, err)
		}
		return env, nil
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return env, nil
}

// getenv prefers the process environment over the env file
func (o *cliOptions) getenv(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return o.env[key]
}

// resolveFormat returns the flag value, then LIFEPLAN_FORMAT, then the default
func (o *cliOptions) resolveFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := o.getenv(envFormat); v != "" {
		return v
	}
	return defaultFormatName
}

// newEngine builds a calculation engine logging through the CLI logger
func (o *cliOptions) newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(o.logger.WithComponent("engine"))
	engine.Debug = o.level <= slog.LevelDebug
	return engine
}

// openOutput returns stdout, or a created file when path is set
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return f, f.Close, nil
}
