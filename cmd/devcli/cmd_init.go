package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/config/devclienv"
)

func newCmdInit() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the CLI home directory",
		Long: `Initialize the CLI home directory by creating:
  - $DEVCLI_DIR (default $HOME/.devcli)
  - $DEVCLI_DIR/config.yml with default configuration
  - $DEVCLI_DIR/logs/ (default log file location)

Set the environment and pat keys in config.yml (or the VIKTOR_ENV and
VIKTOR_PAT environment variables) to use a personal access token instead of
interactive login.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, forceFlag)
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing config.yml")
	return cmd
}

func runInit(cmd *cobra.Command, forceFlag bool) error {
	s, err := settingsFromCmd(cmd)
	if err != nil {
		return err
	}
	configPath := s.Env.ConfigPath()
	logDir := filepath.Join(s.Env.Dir, devclienv.LogDirName)

	if !forceFlag {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists (use -f to overwrite)", configPath)
		}
	}

	if err := os.MkdirAll(s.Env.Dir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", s.Env.Dir, err)
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", logDir, err)
	}

	data, err := devclienv.InitialConfigYAML()
	if err != nil {
		return fmt.Errorf("generating default config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized CLI home in %s\n", s.Env.Dir)
	fmt.Fprintf(cmd.OutOrStdout(), "Created:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", configPath)
	fmt.Fprintf(cmd.OutOrStdout(), "  - %s/\n", logDir)
	return nil
}
