package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viktor-dev-tools/devcli/domain/model"
	"github.com/viktor-dev-tools/devcli/internal/logging"
)

// DownloadInput contains data to export entities to the local filesystem.
type DownloadInput struct {
	// Destination is the local folder to write into.
	Destination string
	// EntityTypeNames selects which entity types to export, by class name.
	EntityTypeNames []string
	// IncludeRevisions writes every revision of every entity.
	IncludeRevisions bool
}

// DownloadOutput reports what a download wrote.
type DownloadOutput struct {
	// Files counts JSON files written.
	Files int
}

// Download exports all entities of the named types as JSON files, one folder
// per entity type: <dest>/<class_name>/<id>.json, or <id>_rev<i>.json per
// revision when requested.
func (u *UseCase) Download(ctx context.Context, in *DownloadInput) (*DownloadOutput, error) {
	if in == nil || in.Destination == "" || len(in.EntityTypeNames) == 0 {
		return nil, model.ErrEntityInvalid
	}
	logger := logging.FromContext(ctx)

	wanted := make(map[string]bool, len(in.EntityTypeNames))
	for _, n := range in.EntityTypeNames {
		wanted[n] = true
	}

	types, err := u.Source.EntityTypes(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(in.Destination, 0755); err != nil {
		return nil, fmt.Errorf("creating destination folder: %w", err)
	}

	out := &DownloadOutput{}
	seen := 0
	for _, t := range types {
		if !wanted[t.ClassName] {
			continue
		}
		seen++
		typeDir := filepath.Join(in.Destination, t.ClassName)
		if err := os.MkdirAll(typeDir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", typeDir, err)
		}

		logger.Info(ctx, "listing entities", "type", t.ClassName)
		entities, err := u.Source.EntitiesOfType(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range entities {
			if in.IncludeRevisions {
				revs, err := u.Source.Revisions(ctx, e.ID)
				if err != nil {
					return nil, err
				}
				for i, rev := range revs {
					path := filepath.Join(typeDir, fmt.Sprintf("%d_rev%d.json", e.ID, i))
					if err := os.WriteFile(path, rev, 0644); err != nil {
						return nil, fmt.Errorf("writing %s: %w", path, err)
					}
					out.Files++
				}
				continue
			}
			data, err := json.Marshal(e)
			if err != nil {
				return nil, err
			}
			path := filepath.Join(typeDir, fmt.Sprintf("%d.json", e.ID))
			if err := os.WriteFile(path, data, 0644); err != nil {
				return nil, fmt.Errorf("writing %s: %w", path, err)
			}
			out.Files++
		}
		logger.Info(ctx, "entities saved", "type", t.ClassName, "count", len(entities))
	}
	if seen == 0 {
		return nil, fmt.Errorf("none of the requested entity types exist in the workspace")
	}
	return out, nil
}
