package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/config/devclienv"
	"github.com/viktor-dev-tools/devcli/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dev-cli",
		Short:   "VIKTOR developer CLI",
		Long:    "Command line utility for moving data between VIKTOR workspaces.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("devcli-dir", os.Getenv(devclienv.HomeDirKey), "CLI home directory (env DEVCLI_DIR) (default $HOME/.devcli)")
	cmd.PersistentFlags().String("stash-db", "", "Stash registry URL (env DEVCLI_STASH_DB) (sqlite:/path/to.db) (default sqlite:$DEVCLI_DIR/stash.db)")
	cmd.PersistentFlags().String("log-format", "", "Log format (human|text|json)")
	cmd.PersistentFlags().String("log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	cmd.PersistentFlags().String("log-output", "", "Log output (default: auto-generated file, - for stderr only, none to disable)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		s, err := loadSettings(c)
		if err != nil {
			return err
		}
		l, err := setupLogging(c, s)
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		ctx = withSettings(ctx, s)
		c.SetContext(ctx)
		return nil
	}

	// Add subcommands
	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdInit())
	cmd.AddCommand(newCmdShowCreds())
	cmd.AddCommand(newCmdListWorkspaces())
	cmd.AddCommand(newCmdListUsers())
	cmd.AddCommand(newCmdCopyEntities())
	cmd.AddCommand(newCmdDownloadEntities())
	cmd.AddCommand(newCmdStashDatabase())
	cmd.AddCommand(newCmdListStashes())
	cmd.AddCommand(newCmdAddUsers())
	cmd.AddCommand(newCmdUpgrade())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	closeLogFile()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
