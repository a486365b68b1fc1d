package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/drzo/assistant-revival/internal/config"
	"github.com/drzo/assistant-revival/internal/generate"
	"github.com/drzo/assistant-revival/internal/logging"
	"github.com/drzo/assistant-revival/internal/output"
	"github.com/drzo/assistant-revival/internal/prompt"
	"github.com/drzo/assistant-revival/internal/seedgen"
	"github.com/drzo/assistant-revival/version"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string

	inputPath  string
	sqlOutput  string
	seedOutput string
)

// Populated by PersistentPreRunE.
var (
	cfg    *config.Config
	logger *slog.Logger
	format output.Format
)

var rootCmd = &cobra.Command{
	Use:   "promptseed",
	Short: "Generate SQL and seed-module imports from an assistant prompts export",
	Long: `promptseed turns a JSON export of assistant prompts into import artifacts.

Running it without a subcommand reads the source document, renames
duplicate prompt names with " (2)", " (3)", ... suffixes, and writes:
  - a SQL script that inserts every prompt into assistant_prompts
  - a TypeScript module exporting seedAllPrompts(), which imports every
    prompt whose name is not already stored

Examples:
  promptseed                                  # Use defaults from promptseed.yaml
  promptseed --input export.json              # Read a different source
  promptseed validate                         # Inspect the source without writing
  promptseed import --driver postgres         # Import directly into a database`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE:          runGenerate,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		f, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		format = f

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg = mgr.Get()

		switch {
		case cmd.Flags().Changed("log-level"):
			cfg.LogLevel = logLevel
		case output.IsStructured(format) && cfg.LogLevel == "info":
			// Keep stderr to warnings when stdout is meant for a machine.
			cfg.LogLevel = "warn"
		}
		logger, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		if used := mgr.ConfigFileUsed(); used != "" {
			logger.Debug("loaded config file", "path", used)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./promptseed.yaml or ~/.promptseed/promptseed.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", string(output.DefaultFormat), "output format: text, yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)
	rootCmd.PersistentFlags().StringVarP(
		&inputPath, "input", "i", "", "source JSON document (default from config: assistant_prompts.json)",
	)

	rootCmd.Flags().StringVar(&sqlOutput, "sql-output", "", "SQL script path (default from config)")
	rootCmd.Flags().StringVar(&seedOutput, "seed-output", "", "TypeScript seed module path (default from config)")

	rootCmd.AddCommand(versionCmd)
}

// resolveInput returns the --input flag when set, else the configured path.
func resolveInput(cmd *cobra.Command) string {
	if cmd.Flags().Changed("input") {
		return inputPath
	}
	return cfg.Input
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := generate.Options{
		Input:      resolveInput(cmd),
		SQLOutput:  cfg.SQLOutput,
		SeedOutput: cfg.SeedOutput,
		Seed: seedgen.Options{
			StorageName:   cfg.Seed.StorageName,
			StorageModule: cfg.Seed.StorageModule,
			ProgressEvery: cfg.Import.ProgressEvery,
		},
		Logger: logger,
	}
	if cmd.Flags().Changed("sql-output") {
		opts.SQLOutput = sqlOutput
	}
	if cmd.Flags().Changed("seed-output") {
		opts.SeedOutput = seedOutput
	}

	report, err := generate.Run(cmd.Context(), opts)
	if errors.Is(err, prompt.ErrNotFound) {
		return fmt.Errorf("input file not found: %s (export your prompts to this path or pass --input)", opts.Input)
	}
	if report == nil {
		return err
	}

	if werr := output.Write(cmd.OutOrStdout(), format, report); werr != nil {
		return errors.Join(err, werr)
	}
	return err
}
