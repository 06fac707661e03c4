package stash

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/viktor-dev-tools/devcli/domain/model"
	"github.com/viktor-dev-tools/devcli/internal/logging"
)

// CreateInput contains data to stash a workspace database to a local file.
type CreateInput struct {
	// Subdomain and WorkspaceID identify where the snapshot came from; they
	// are recorded in the local registry, not sent anywhere.
	Subdomain   string
	WorkspaceID int64
	// Dir and Filename locate the snapshot file to write.
	Dir      string
	Filename string
}

// CreateOutput wraps the recorded stash.
type CreateOutput struct {
	Stash *model.Stash `json:"stash"`
}

// Create downloads the complete entity structure of the workspace (every
// root entity with its full child tree, plus the entity types) into a
// single JSON file, and records the stash in the local registry.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Dir == "" || in.Filename == "" {
		return nil, model.ErrStashInvalid
	}
	logger := logging.FromContext(ctx)

	roots, err := u.API.RootEntities(ctx)
	if err != nil {
		return nil, err
	}
	doc := &model.StashDocument{}
	for _, root := range roots {
		logger.Info(ctx, "retrieving root entity tree", "entity", root.Name)
		tree, err := u.API.EntityTree(ctx, root.ID, false)
		if err != nil {
			return nil, fmt.Errorf("fetching tree of root entity %d: %w", root.ID, err)
		}
		doc.Entities = append(doc.Entities, tree)
	}
	if doc.EntityTypes, err = u.API.EntityTypes(ctx); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(in.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating stash folder: %w", err)
	}
	path := filepath.Join(in.Dir, in.Filename)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing stash file: %w", err)
	}

	s := &model.Stash{
		Name:        in.Filename,
		Subdomain:   in.Subdomain,
		WorkspaceID: in.WorkspaceID,
		Path:        path,
		EntityCount: doc.EntityCount(),
		CreatedAt:   time.Now().UTC(),
	}
	if u.Repos != nil && u.Repos.Stash != nil {
		if err := u.Repos.Stash.Create(ctx, s); err != nil {
			return nil, fmt.Errorf("recording stash: %w", err)
		}
	}
	logger.Info(ctx, "stashed database", "path", path, "entities", s.EntityCount)
	return &CreateOutput{Stash: s}, nil
}
