package stash

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viktor-dev-tools/devcli/domain/model"
	"github.com/viktor-dev-tools/devcli/internal/logging"
	"github.com/viktor-dev-tools/devcli/usecase/entity"
)

// ApplyInput contains data to re-apply a stashed database to a workspace.
type ApplyInput struct {
	// Dir and Filename locate the snapshot file to read.
	Dir      string
	Filename string
	// Confirm is asked before children are deleted. Nil or Yes skips it.
	Confirm func(question string) (bool, error)
	// Yes skips the confirmation for scripted runs.
	Yes bool
}

// ApplyOutput reports what an apply did.
type ApplyOutput struct {
	// RootsUpdated counts root entities whose properties were replaced.
	RootsUpdated int
	// Created counts child entities re-created from the snapshot.
	Created int
	// Remapped counts entities whose reference fields were rewritten.
	Remapped int
}

// Apply replaces the workspace contents with a stashed database:
// root entities are updated with their stashed properties, all of their
// current children are deleted, the stashed children are re-created, and
// entity-ID reference fields are rewritten to the new IDs. Only valid while
// the workspace manifest still produces the same root entities.
func (u *UseCase) Apply(ctx context.Context, in *ApplyInput) (*ApplyOutput, error) {
	if in == nil || in.Dir == "" || in.Filename == "" {
		return nil, model.ErrStashInvalid
	}
	logger := logging.FromContext(ctx)

	path := filepath.Join(in.Dir, in.Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stash file: %w", err)
	}
	var doc model.StashDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", model.ErrStashInvalid, path, err)
	}

	roots, err := u.API.RootEntities(ctx)
	if err != nil {
		return nil, err
	}
	types, err := u.API.EntityTypes(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRoots(&doc, roots, types); err != nil {
		return nil, err
	}
	logger.Info(ctx, "stash is compatible with workspace root entities")

	if !in.Yes {
		if in.Confirm == nil {
			return nil, fmt.Errorf("apply deletes all current entities in the workspace; pass --yes to proceed")
		}
		ok, err := in.Confirm("[DANGER] This removes all current entities in this workspace. Do you want to continue?")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("aborted")
		}
	}

	for _, root := range roots {
		logger.Info(ctx, "removing children", "root", root.Name)
		if err := u.API.DeleteChildren(ctx, root.ID); err != nil {
			return nil, fmt.Errorf("deleting children of root %d: %w", root.ID, err)
		}
	}

	mapping := model.MapEntityTypes(doc.EntityTypes, types)
	poster := &entity.UseCase{Source: u.API, Destination: u.API}
	idMap := map[int64]int64{}
	out := &ApplyOutput{}

	logger.Info(ctx, "uploading database", "roots", len(doc.Entities))
	for i, srcRoot := range doc.Entities {
		dstRoot := roots[i]
		if _, err := u.API.UpdateEntity(ctx, dstRoot.ID, srcRoot.Properties, "Apply database stash"); err != nil {
			return nil, fmt.Errorf("updating root entity %d: %w", dstRoot.ID, err)
		}
		out.RootsUpdated++
		idMap[srcRoot.ID] = dstRoot.ID
		if err := poster.PostChildren(ctx, dstRoot.ID, srcRoot.Children, mapping, &entity.PostOptions{
			IDMapping: idMap,
			Created:   &out.Created,
		}); err != nil {
			return nil, err
		}
	}

	remapped, err := u.remapReferences(ctx, idMap)
	if err != nil {
		return nil, err
	}
	out.Remapped = remapped
	logger.Info(ctx, "applied stashed database", "created", out.Created, "remapped", out.Remapped)
	return out, nil
}

// validateRoots checks the stash against the workspace: same number of root
// entities and the same entity type name at every position. Anything else
// means the manifest changed since the stash was taken.
func validateRoots(doc *model.StashDocument, roots []*model.Entity, types []model.EntityType) error {
	nameOf := func(types []model.EntityType, id int64) string {
		for _, t := range types {
			if t.ID == id {
				return t.ClassName
			}
		}
		return ""
	}
	if len(doc.Entities) != len(roots) {
		return fmt.Errorf("%w: stash has %d root entities, workspace has %d; restore the manifest root entities as they were stashed",
			model.ErrStashIncompatible, len(doc.Entities), len(roots))
	}
	for i, src := range doc.Entities {
		srcName := nameOf(doc.EntityTypes, src.EntityType)
		dstName := nameOf(types, roots[i].EntityType)
		if srcName == "" || srcName != dstName {
			return fmt.Errorf("%w: root %d is %q in the stash but %q in the workspace",
				model.ErrStashIncompatible, i, srcName, dstName)
		}
	}
	return nil
}

// remapReferences rewrites entity-ID fields on every re-created entity.
// Parametrizations are fetched once per entity type; entities whose type has
// no reference fields are left untouched.
func (u *UseCase) remapReferences(ctx context.Context, idMap map[int64]int64) (int, error) {
	logger := logging.FromContext(ctx)
	logger.Info(ctx, "replacing entity ID references")

	pathsByType := map[int64][]RefPath{}
	remapped := 0
	for _, newID := range idMap {
		e, err := u.API.Entity(ctx, newID)
		if err != nil {
			return remapped, err
		}
		paths, ok := pathsByType[e.EntityType]
		if !ok {
			fields, err := u.API.Parametrization(ctx, newID)
			if err != nil {
				return remapped, err
			}
			paths = CollectRefPaths(fields)
			pathsByType[e.EntityType] = paths
		}
		if len(paths) == 0 {
			continue
		}
		if RemapRefs(e.Properties, paths, idMap) {
			if _, err := u.API.UpdateEntity(ctx, e.ID, e.Properties, "Remap entity references"); err != nil {
				return remapped, err
			}
			remapped++
		}
	}
	return remapped, nil
}
