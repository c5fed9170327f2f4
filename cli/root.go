// Package cli implements the fomezero command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/fomezero/config"
	"github.com/spektr-org/fomezero/dataset"
	"github.com/spektr-org/fomezero/pipeline"
)

var (
	version = "dev"
	commit  = "none"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	configPath string
	dataPath   string
	logLevel   string

	cfg      *config.Config
	logger   *zap.SugaredLogger
	pipeline *pipeline.Pipeline
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fomezero",
		Short:         "Fome Zero restaurant analytics",
		Long:          "Load the restaurant listing, filter it and compute the dashboard views.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&a.dataPath, "data", "d", "", "restaurant CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newViewCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newOptionsCmd(a))
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setup applies precedence flag > env > file > default, then builds the
// logger and the pipeline.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = a.dataPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		logger.Warnw("config", "warning", w)
	}

	cache, err := dataset.NewCache(cfg.CacheSize)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.pipeline = pipeline.New(cache, logger)
	return nil
}
