package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/internal/prompt"
	"github.com/viktor-dev-tools/devcli/usecase/user"
)

func newCmdAddUsers() *cobra.Command {
	var flags sessionFlags
	var file string

	cmd := &cobra.Command{
		Use:   "add-users",
		Short: "Bulk-add users from a .csv or .xlsx file",
		Long: `Add users to an environment from a spreadsheet with columns first_name,
last_name, email, and optionally job_title. Activation emails are sent by the
platform. Failures on individual users are logged and the run continues.`,
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

			uc := &user.UseCase{API: src}
			out, err := uc.Import(ctx, &user.ImportInput{Path: file})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d users, %d failed\n", out.Added, out.Failed)
			return nil
		},
	}

	flags.registerSource(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "User list file (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
