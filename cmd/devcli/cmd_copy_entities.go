package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/internal/prompt"
	"github.com/viktor-dev-tools/devcli/usecase/entity"
)

func newCmdCopyEntities() *cobra.Command {
	var flags sessionFlags
	var destinationID int64
	var excludeChildren, allowPartial, dryRun bool

	cmd := &cobra.Command{
		Use:   "copy-entities <entity-id>...",
		Short: "Copy entities between workspaces",
		Long: `Copy entity trees from a source workspace to a destination workspace,
re-uploading file contents along the way. Source and destination may be the
same subdomain or different ones.

Entity types are matched between the two workspaces by name; entities whose
type does not exist in the destination fail the copy unless --allow-partial
is given, in which case their subtrees are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid entity id %q", a)
				}
				ids = append(ids, id)
			}

			s, err := settingsFromCmd(cmd)
			if err != nil {
				return err
			}
			p := prompt.New()
			if err := flags.consolidate(p); err != nil {
				return err
			}
			ctx := cmd.Context()

			src, err := openDomain(ctx, s, p, flags.Source, flags.Username, flags.SourcePwd, flags.SourceToken, flags.SourceWorkspace)
			if err != nil {
				return err
			}
			defer closeDomain(ctx, src)
			dst, err := openDomain(ctx, s, p, flags.Destination, flags.Username, flags.DestinationPwd, flags.DestinationToken, flags.DestinationWorkspace)
			if err != nil {
				return err
			}
			defer closeDomain(ctx, dst)

			uc := &entity.UseCase{Source: src, Destination: dst}
			out, err := uc.Copy(ctx, &entity.CopyInput{
				EntityIDs:           ids,
				DestinationParentID: destinationID,
				ExcludeChildren:     excludeChildren,
				AllowPartialTypes:   allowPartial,
				DryRun:              dryRun,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d entities, skipped %d\n", out.Created, out.Skipped)
			return nil
		},
	}

	flags.registerSource(cmd)
	flags.registerDestination(cmd)
	cmd.Flags().Int64Var(&destinationID, "destination-id", 0, "Destination parent entity id (default: resolved from the parent entity type)")
	cmd.Flags().BoolVar(&excludeChildren, "exclude-children", false, "Copy only the named entities, not their subtrees")
	cmd.Flags().BoolVar(&allowPartial, "allow-partial", false, "Skip entities whose type has no counterpart in the destination")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Walk and log without creating anything")
	return cmd
}
