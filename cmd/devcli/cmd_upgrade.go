package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/viktor-dev-tools/devcli/cmd/devcli"

func newCmdUpgrade() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade dev-cli to the latest released version",
		RunE: func(cmd *cobra.Command, args []string) error {
			goBin, err := exec.LookPath("go")
			if err != nil {
				return fmt.Errorf("upgrade requires the go toolchain on PATH: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Upgrading %s@latest\n", modulePath)
			c := exec.CommandContext(cmd.Context(), goBin, "install", modulePath+"@latest")
			c.Stdout = cmd.OutOrStdout()
			c.Stderr = os.Stderr
			if err := c.Run(); err != nil {
				return fmt.Errorf("upgrade failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Upgraded. Run dev-cli version to verify.")
			return nil
		},
	}
}
