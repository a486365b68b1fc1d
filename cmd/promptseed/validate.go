package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drzo/assistant-revival/internal/output"
	"github.com/drzo/assistant-revival/internal/prompt"
)

var validateSamples int

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the source document without writing anything",
	Long: `Load and validate the source document, then report how many prompts it
holds, which names are duplicated, and a preview of the first few records.

Every record must carry a string name, a string instructions and a boolean
is_default. The first record that does not is reported by index.

Examples:
  promptseed validate
  promptseed validate --samples 10
  promptseed validate -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveInput(cmd)

		records, err := prompt.Load(path)
		if err != nil {
			return fmt.Errorf("invalid source %s: %w", path, err)
		}

		samples := cfg.Validate.Samples
		if cmd.Flags().Changed("samples") {
			samples = validateSamples
		}

		inspection := prompt.Inspect(records, samples)
		logger.Info("source document is valid", "path", path, "prompts", inspection.Total)
		return output.Write(cmd.OutOrStdout(), format, inspection)
	},
}

func init() {
	validateCmd.Flags().IntVar(&validateSamples, "samples", 5, "number of records to preview")

	rootCmd.AddCommand(validateCmd)
}
