package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/internal/prompt"
	"github.com/viktor-dev-tools/devcli/usecase/entity"
)

func newCmdDownloadEntities() *cobra.Command {
	var flags sessionFlags
	var destination string
	var entityTypes []string
	var includeRevisions bool

	cmd := &cobra.Command{
		Use:   "download-entities",
		Short: "Download entities to a local folder",
		Long: `Download all entities of the given entity types as JSON files, one folder
per entity type. With --include-revisions every revision of every entity is
written as a separate file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromCmd(cmd)
			if err != nil {
				return err
			}
			p := prompt.New()
			ctx := cmd.Context()

			src, err := openDomain(ctx, s, p, flags.Source, flags.Username, flags.SourcePwd, flags.SourceToken, flags.SourceWorkspace)
			if err != nil {
				return err
			}
			defer closeDomain(ctx, src)

			uc := &entity.UseCase{Source: src}
			out, err := uc.Download(ctx, &entity.DownloadInput{
				Destination:      destination,
				EntityTypeNames:  entityTypes,
				IncludeRevisions: includeRevisions,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d files to %s\n", out.Files, destination)
			return nil
		},
	}

	flags.registerSource(cmd)
	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Local folder to write into")
	cmd.Flags().StringArrayVarP(&entityTypes, "entity-type", "t", nil, "Entity type name to download (repeatable)")
	cmd.Flags().BoolVar(&includeRevisions, "include-revisions", false, "Write every revision of every entity")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("entity-type")
	return cmd
}
