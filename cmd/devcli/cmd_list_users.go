package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/internal/prompt"
)

func newCmdListUsers() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "list-users",
		Short: "List the users of a subdomain",
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

			users, err := src.Users(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMAIL\tDEV")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%t\n", u.FullName(), u.Email, u.IsDev)
			}
			return w.Flush()
		},
	}

	flags.registerSource(cmd)
	return cmd
}
