package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/internal/prompt"
)

func newCmdListWorkspaces() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "list-workspaces",
		Short: "List the workspaces of a subdomain",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromCmd(cmd)
			if err != nil {
				return err
			}
			p := prompt.New()
			ctx := cmd.Context()

			src, err := openDomain(ctx, s, p, flags.Source, flags.Username, flags.SourcePwd, flags.SourceToken, "")
			if err != nil {
				return err
			}
			defer closeDomain(ctx, src)

			workspaces, err := src.Workspaces(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, ws := range workspaces {
				fmt.Fprintf(w, "%d\t%s\n", ws.ID, ws.Name)
			}
			return w.Flush()
		},
	}

	flags.registerSource(cmd)
	return cmd
}
