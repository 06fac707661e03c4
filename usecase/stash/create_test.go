package stash

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

// mockStashRepo is a mock implementation for testing.
type mockStashRepo struct {
	createFunc func(ctx context.Context, s *model.Stash) error
	listFunc   func(ctx context.Context) ([]*model.Stash, error)
}

func (m *mockStashRepo) Create(ctx context.Context, s *model.Stash) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return errors.New("not implemented")
}

func (m *mockStashRepo) Get(ctx context.Context, id string) (*model.Stash, error) {
	return nil, errors.New("not implemented")
}

func (m *mockStashRepo) List(ctx context.Context) ([]*model.Stash, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockStashRepo) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	tree := &model.Entity{
		ID: 1, Name: "Root", EntityType: 100,
		Children: []*model.Entity{{ID: 2, Name: "Child", EntityType: 101}},
	}
	api := &mockAPI{
		rootEntitiesFunc: func(ctx context.Context) ([]*model.Entity, error) {
			return []*model.Entity{{ID: 1, Name: "Root", EntityType: 100}}, nil
		},
		entityTreeFunc: func(ctx context.Context, id int64, excludeChildren bool) (*model.Entity, error) {
			if id != 1 || excludeChildren {
				t.Errorf("unexpected tree request: id %d excludeChildren %v", id, excludeChildren)
			}
			return tree, nil
		},
		entityTypesFunc: func(ctx context.Context) ([]model.EntityType, error) {
			return []model.EntityType{{ID: 100, ClassName: "Folder"}, {ID: 101, ClassName: "Report"}}, nil
		},
	}

	var recorded *model.Stash
	repo := &mockStashRepo{
		createFunc: func(ctx context.Context, s *model.Stash) error {
			recorded = s
			return nil
		},
	}

	dir := t.TempDir()
	uc := &UseCase{API: api, Repos: &Repos{Stash: repo}}
	out, err := uc.Create(ctx, &CreateInput{
		Subdomain:   "geo-tools",
		WorkspaceID: 7,
		Dir:         dir,
		Filename:    "database_stash.json",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.Stash.EntityCount != 2 {
		t.Fatalf("unexpected entity count %d", out.Stash.EntityCount)
	}
	if recorded == nil || recorded.Subdomain != "geo-tools" || recorded.WorkspaceID != 7 {
		t.Fatalf("stash not recorded: %+v", recorded)
	}

	data, err := os.ReadFile(filepath.Join(dir, "database_stash.json"))
	if err != nil {
		t.Fatalf("reading stash file: %v", err)
	}
	var doc model.StashDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing stash file: %v", err)
	}
	if len(doc.Entities) != 1 || len(doc.Entities[0].Children) != 1 || len(doc.EntityTypes) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := &mockStashRepo{
		listFunc: func(ctx context.Context) ([]*model.Stash, error) {
			return []*model.Stash{{ID: "stash-1"}, {ID: "stash-2"}}, nil
		},
	}
	uc := &UseCase{Repos: &Repos{Stash: repo}}
	out, err := uc.List(ctx, &ListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("unexpected items: %+v", out.Items)
	}
}
