package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/viktor-dev-tools/devcli/domain/model"
	"github.com/viktor-dev-tools/devcli/internal/logging"
)

// CopyInput contains data to copy entity trees between workspaces.
type CopyInput struct {
	// EntityIDs are the source entities to copy.
	EntityIDs []int64
	// DestinationParentID is the parent to create entities under. Zero means
	// resolve it from the mapped parent entity type.
	DestinationParentID int64
	// ExcludeChildren copies only the named entities, not their subtrees.
	ExcludeChildren bool
	// AllowPartialTypes skips entities whose type has no counterpart in the
	// destination instead of failing the whole copy.
	AllowPartialTypes bool
	// DryRun walks and logs without creating anything.
	DryRun bool
}

// CopyOutput reports what a copy did.
type CopyOutput struct {
	// Created counts entities created in the destination.
	Created int
	// Skipped counts entities skipped for unmapped types (subtrees included).
	Skipped int
	// IDMapping maps source entity IDs to their destination counterparts.
	IDMapping map[int64]int64
}

// Copy transfers the given entity trees from the source workspace into the
// destination workspace, re-uploading file contents along the way.
func (u *UseCase) Copy(ctx context.Context, in *CopyInput) (*CopyOutput, error) {
	if in == nil || len(in.EntityIDs) == 0 {
		return nil, model.ErrEntityInvalid
	}
	logger := logging.FromContext(ctx)

	mapping, err := u.entityTypeMapping(ctx, in.AllowPartialTypes)
	if err != nil {
		return nil, err
	}

	out := &CopyOutput{IDMapping: map[int64]int64{}}
	for _, id := range in.EntityIDs {
		tree, err := u.Source.EntityTree(ctx, id, in.ExcludeChildren)
		if err != nil {
			return nil, fmt.Errorf("fetching entity %d: %w", id, err)
		}
		logger.Info(ctx, "fetched entity tree", "entity", tree.Name, "size", tree.Size())

		var children []*model.Entity
		var parentType int64
		if tree.IsRoot() {
			// Root entities cannot be created remotely; only their children
			// are posted, under a destination entity of the root's own type.
			logger.Warn(ctx, "source entity is a root entity, creating child entities only", "entity", tree.Name)
			children = tree.Children
			var ok bool
			if parentType, ok = mapping[tree.EntityType]; !ok {
				return nil, fmt.Errorf("entity type of root %q has no counterpart in destination", tree.Name)
			}
		} else {
			children = []*model.Entity{tree}
			var ok bool
			if parentType, ok = mapping[*tree.ParentEntityType]; !ok {
				return nil, fmt.Errorf("parent entity type of %q has no counterpart in destination", tree.Name)
			}
		}

		parentID := in.DestinationParentID
		if parentID == 0 {
			if parentID, err = u.resolveParent(ctx, parentType); err != nil {
				return nil, err
			}
		}

		if err := u.PostChildren(ctx, parentID, children, mapping, &PostOptions{
			DryRun:    in.DryRun,
			IDMapping: out.IDMapping,
			Created:   &out.Created,
			Skipped:   &out.Skipped,
		}); err != nil {
			return nil, err
		}
	}
	logger.Info(ctx, "copy finished", "created", out.Created, "skipped", out.Skipped, "dry_run", in.DryRun)
	return out, nil
}

// entityTypeMapping maps source entity type IDs to destination IDs by class
// name. Unless partial mappings are allowed, every source type must match.
func (u *UseCase) entityTypeMapping(ctx context.Context, allowPartial bool) (map[int64]int64, error) {
	srcTypes, err := u.Source.EntityTypes(ctx)
	if err != nil {
		return nil, err
	}
	dstTypes, err := u.Destination.EntityTypes(ctx)
	if err != nil {
		return nil, err
	}
	mapping := model.MapEntityTypes(srcTypes, dstTypes)
	if len(mapping) < len(srcTypes) && !allowPartial {
		var missing []string
		for _, t := range srcTypes {
			if _, ok := mapping[t.ID]; !ok {
				missing = append(missing, t.ClassName)
			}
		}
		return nil, fmt.Errorf("entity types not present in destination: %s (use --allow-partial to skip them)",
			strings.Join(missing, ", "))
	}
	return mapping, nil
}

// resolveParent finds the destination entity to post under when no explicit
// parent was given. Unambiguous only when exactly one entity of the mapped
// parent type exists.
func (u *UseCase) resolveParent(ctx context.Context, parentType int64) (int64, error) {
	candidates, err := u.Destination.EntitiesOfType(ctx, parentType)
	if err != nil {
		return 0, err
	}
	switch len(candidates) {
	case 0:
		return 0, fmt.Errorf("no destination entity of parent type %d exists", parentType)
	case 1:
		return candidates[0].ID, nil
	}
	var names []string
	for _, e := range candidates {
		names = append(names, fmt.Sprintf("%s: %d", e.Name, e.ID))
	}
	return 0, fmt.Errorf("multiple possible destination parents, pass one with --destination-id:\n - %s",
		strings.Join(names, "\n - "))
}

// PostOptions tunes PostChildren. Counters are optional.
type PostOptions struct {
	DryRun    bool
	IDMapping map[int64]int64
	Created   *int
	Skipped   *int
}

// PostChildren creates the given entities and their subtrees under parentID,
// translating entity types through mapping and re-uploading file contents.
// Entities whose type has no mapping are skipped together with their
// subtrees. The stash apply path reuses this for re-posting snapshots.
func (u *UseCase) PostChildren(ctx context.Context, parentID int64, children []*model.Entity, mapping map[int64]int64, opts *PostOptions) error {
	if opts == nil {
		opts = &PostOptions{}
	}
	logger := logging.FromContext(ctx)
	for _, child := range children {
		typeID, ok := mapping[child.EntityType]
		if !ok {
			logger.Warn(ctx, "no destination entity type, skipping entity and its children", "entity", child.Name)
			if opts.Skipped != nil {
				*opts.Skipped += child.Size()
			}
			continue
		}

		props := child.Properties
		if props == nil {
			props = map[string]any{}
		}
		if url := child.FileRef(); url != "" && !opts.DryRun {
			content, err := u.Source.FetchFile(ctx, url)
			if err != nil {
				return fmt.Errorf("downloading file of entity %q: %w", child.Name, err)
			}
			key, err := u.Destination.UploadFile(ctx, typeID, content)
			if err != nil {
				return fmt.Errorf("uploading file of entity %q: %w", child.Name, err)
			}
			props["filename"] = key
		}

		var newID int64
		if opts.DryRun {
			logger.Info(ctx, "would create entity", "entity", child.Name, "parent", parentID)
		} else {
			created, err := u.Destination.CreateChild(ctx, parentID, typeID, child.Name, props)
			if err != nil {
				return fmt.Errorf("creating entity %q: %w", child.Name, err)
			}
			newID = created.ID
			logger.Info(ctx, "created entity", "entity", child.Name, "id", newID)
		}
		if opts.Created != nil {
			*opts.Created++
		}
		if opts.IDMapping != nil {
			opts.IDMapping[child.ID] = newID
		}

		if err := u.PostChildren(ctx, newID, child.Children, mapping, opts); err != nil {
			return err
		}
	}
	return nil
}
