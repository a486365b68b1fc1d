package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/drzo/assistant-revival/internal/config"
	"github.com/drzo/assistant-revival/internal/home"
)

var (
	configForce  bool
	configGlobal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage promptseed configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file populated with defaults",
	Long: `Write the default configuration as YAML.

The file is written to ./promptseed.yaml unless a path is given, or to
~/.promptseed/promptseed.yaml with --global. An existing file is left alone
unless --force is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && configGlobal {
			return fmt.Errorf("--global cannot be combined with a path")
		}

		path := home.ConfigFileName
		var exists bool
		if configGlobal {
			h, err := home.New("")
			if err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path, exists = h.ConfigPath(), h.ConfigExists()
		} else {
			if len(args) == 1 {
				path = args[0]
			}
			_, err := os.Stat(path)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			exists = err == nil
		}

		if exists && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configGlobal, "global", false, "write to ~/.promptseed/promptseed.yaml")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
