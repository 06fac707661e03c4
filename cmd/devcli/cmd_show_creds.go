package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/config/devclienv"
)

func newCmdShowCreds() *cobra.Command {
	return &cobra.Command{
		Use:   "show-creds",
		Short: "Show the configured environment and masked personal access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromCmd(cmd)
			if err != nil {
				return err
			}
			env := s.Environment
			if env == "" {
				env = "Not configured!"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Environment: %s\n", env)
			fmt.Fprintf(cmd.OutOrStdout(), "PAT:         %s\n", devclienv.MaskPAT(s.PAT))
			return nil
		},
	}
}
