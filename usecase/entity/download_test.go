package entity

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

func TestDownload(t *testing.T) {
	ctx := context.Background()
	types := []model.EntityType{{ID: 100, ClassName: "Folder"}, {ID: 101, ClassName: "Report"}}
	entities := map[int64][]*model.Entity{
		101: {
			{ID: 2, Name: "Report A", EntityType: 101},
			{ID: 3, Name: "Report B", EntityType: 101},
		},
	}

	full := &mockSourceWithListing{
		mockSource: &mockSource{entityTypesFunc: sameTypes(types...)},
		entitiesOfTypeFunc: func(ctx context.Context, typeID int64) ([]*model.Entity, error) {
			return entities[typeID], nil
		},
		revisionsFunc: func(ctx context.Context, entityID int64) ([]json.RawMessage, error) {
			return []json.RawMessage{[]byte(`{"rev":0}`), []byte(`{"rev":1}`)}, nil
		},
	}

	t.Run("writes one file per entity", func(t *testing.T) {
		dest := t.TempDir()
		uc := &UseCase{Source: full}
		out, err := uc.Download(ctx, &DownloadInput{Destination: dest, EntityTypeNames: []string{"Report"}})
		if err != nil {
			t.Fatalf("Download: %v", err)
		}
		if out.Files != 2 {
			t.Fatalf("expected 2 files, got %d", out.Files)
		}
		if _, err := os.Stat(filepath.Join(dest, "Report", "2.json")); err != nil {
			t.Fatalf("missing entity file: %v", err)
		}
	})

	t.Run("writes one file per revision", func(t *testing.T) {
		dest := t.TempDir()
		uc := &UseCase{Source: full}
		out, err := uc.Download(ctx, &DownloadInput{Destination: dest, EntityTypeNames: []string{"Report"}, IncludeRevisions: true})
		if err != nil {
			t.Fatalf("Download: %v", err)
		}
		if out.Files != 4 {
			t.Fatalf("expected 4 files, got %d", out.Files)
		}
		if _, err := os.Stat(filepath.Join(dest, "Report", "3_rev1.json")); err != nil {
			t.Fatalf("missing revision file: %v", err)
		}
	})

	t.Run("unknown type fails", func(t *testing.T) {
		uc := &UseCase{Source: full}
		if _, err := uc.Download(ctx, &DownloadInput{Destination: t.TempDir(), EntityTypeNames: []string{"Missing"}}); err == nil {
			t.Fatal("expected error for unknown entity type")
		}
	})
}

// mockSourceWithListing extends mockSource with type listing and revisions.
type mockSourceWithListing struct {
	*mockSource
	entitiesOfTypeFunc func(ctx context.Context, typeID int64) ([]*model.Entity, error)
	revisionsFunc      func(ctx context.Context, entityID int64) ([]json.RawMessage, error)
}

func (m *mockSourceWithListing) EntitiesOfType(ctx context.Context, typeID int64) ([]*model.Entity, error) {
	return m.entitiesOfTypeFunc(ctx, typeID)
}

func (m *mockSourceWithListing) Revisions(ctx context.Context, entityID int64) ([]json.RawMessage, error) {
	return m.revisionsFunc(ctx, entityID)
}
