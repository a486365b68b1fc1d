package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drzo/assistant-revival/internal/importer"
	"github.com/drzo/assistant-revival/internal/output"
	"github.com/drzo/assistant-revival/internal/prompt"
	"github.com/drzo/assistant-revival/internal/store"
)

var (
	importDriver string
	importDSN    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import prompts directly into a database",
	Long: `Import the source document into the assistant_prompts table.

Names are deduplicated the same way the generated artifacts are. Prompts
whose name already exists in the table are skipped, so the import can be
re-run safely. A failure to insert one prompt is counted and the import
continues.

Connection settings come from the database section of the config file
and may be overridden with flags or PROMPTSEED_DATABASE_* variables.

Examples:
  promptseed import                                   # sqlite file from config
  promptseed import --driver sqlite --dsn prompts.db
  promptseed import --driver postgres --dsn "$DATABASE_URL"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbCfg := cfg.Database
		if cmd.Flags().Changed("driver") {
			dbCfg.Driver = importDriver
		}
		if cmd.Flags().Changed("dsn") {
			dbCfg.DSN = importDSN
		}

		path := resolveInput(cmd)
		records, err := prompt.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		st, err := store.Open(ctx, dbCfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		im := importer.New(st, importer.Options{
			ProgressEvery: cfg.Import.ProgressEvery,
			Logger:        logger,
		})
		summary, err := im.Run(ctx, prompt.Dedupe(records))
		if werr := output.Write(cmd.OutOrStdout(), format, summary); werr != nil && err == nil {
			err = werr
		}
		return err
	},
}

func init() {
	importCmd.Flags().StringVar(&importDriver, "driver", "", "database driver: sqlite or postgres (default from config)")
	importCmd.Flags().StringVar(&importDSN, "dsn", "", "database DSN; a file path for sqlite (default from config)")

	rootCmd.AddCommand(importCmd)
}
