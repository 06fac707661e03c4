package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/internal/prompt"
	"github.com/viktor-dev-tools/devcli/usecase/stash"
)

const defaultStashFilename = "database_stash.json"

func newCmdStashDatabase() *cobra.Command {
	var flags sessionFlags
	var dir, filename string
	var apply, yes bool

	cmd := &cobra.Command{
		Use:   "stash-database",
		Short: "Stash a workspace database to a local file, or re-apply it",
		Long: `Stash the complete entity structure of a workspace - every root entity with
its full child tree, plus the entity types - into a single JSON file.

With --apply the stashed database replaces the current workspace contents:
root entities are updated with their stashed properties, all of their current
children are deleted, the stashed children are re-created, and entity-ID
reference fields are rewritten to the new IDs. Applying is only valid while
the workspace manifest still produces the same root entities.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromCmd(cmd)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = filepath.Join(s.Env.Dir, "stashes")
			}
			p := prompt.New()
			ctx := cmd.Context()

			src, err := openDomain(ctx, s, p, flags.Source, flags.Username, flags.SourcePwd, flags.SourceToken, flags.SourceWorkspace)
			if err != nil {
				return err
			}
			defer closeDomain(ctx, src)

			repo, err := buildStashRepository(cmd, s)
			if err != nil {
				return err
			}
			uc := &stash.UseCase{API: src, Repos: &stash.Repos{Stash: repo}}

			if apply {
				out, err := uc.Apply(ctx, &stash.ApplyInput{
					Dir:      dir,
					Filename: filename,
					Confirm:  p.Confirm,
					Yes:      yes,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied stash: %d roots updated, %d entities created, %d remapped\n",
					out.RootsUpdated, out.Created, out.Remapped)
				return nil
			}

			out, err := uc.Create(ctx, &stash.CreateInput{
				Subdomain:   src.Name,
				WorkspaceID: src.WorkspaceID(),
				Dir:         dir,
				Filename:    filename,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stashed %d entities to %s\n", out.Stash.EntityCount, out.Stash.Path)
			return nil
		},
	}

	flags.registerSource(cmd)
	cmd.Flags().StringVar(&dir, "dir", "", "Stash folder (default $DEVCLI_DIR/stashes)")
	cmd.Flags().StringVar(&filename, "filename", defaultStashFilename, "Stash file name")
	cmd.Flags().BoolVar(&apply, "apply", false, "Re-apply a stashed database to the workspace")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation before applying")
	return cmd
}

func newCmdListStashes() *cobra.Command {
	return &cobra.Command{
		Use:   "list-stashes",
		Short: "List stashed databases recorded in the local registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromCmd(cmd)
			if err != nil {
				return err
			}
			repo, err := buildStashRepository(cmd, s)
			if err != nil {
				return err
			}
			uc := &stash.UseCase{Repos: &stash.Repos{Stash: repo}}
			out, err := uc.List(cmd.Context(), &stash.ListInput{})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSUBDOMAIN\tWORKSPACE\tENTITIES\tCREATED\tPATH")
			for _, it := range out.Items {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					it.ID, it.Subdomain, it.WorkspaceID, it.EntityCount,
					it.CreatedAt.Format("2006-01-02 15:04"), it.Path)
			}
			return w.Flush()
		},
	}
}
