package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/viktor-dev-tools/devcli/domain/model"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("OpenFromURL: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func TestStashRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStashRepository(newTestDB(t))

	t.Run("create assigns an id", func(t *testing.T) {
		s := &model.Stash{Name: "database_stash.json", Subdomain: "geo-tools", WorkspaceID: 7, EntityCount: 3, CreatedAt: time.Now().UTC()}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if s.ID == "" {
			t.Fatal("expected a generated id")
		}

		got, err := repo.Get(ctx, s.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Subdomain != "geo-tools" || got.WorkspaceID != 7 || got.EntityCount != 3 {
			t.Fatalf("unexpected stash: %+v", got)
		}
	})

	t.Run("list orders by creation time", func(t *testing.T) {
		repo := NewStashRepository(newTestDB(t))
		older := &model.Stash{Name: "a.json", CreatedAt: time.Now().UTC().Add(-time.Hour)}
		newer := &model.Stash{Name: "b.json", CreatedAt: time.Now().UTC()}
		for _, s := range []*model.Stash{newer, older} {
			if err := repo.Create(ctx, s); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(items) != 2 || items[0].Name != "a.json" {
			t.Fatalf("unexpected order: %+v", items)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		if _, err := repo.Get(ctx, "stash-missing"); !errors.Is(err, model.ErrStashNotFound) {
			t.Fatalf("expected ErrStashNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := &model.Stash{Name: "c.json", CreatedAt: time.Now().UTC()}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := repo.Delete(ctx, s.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := repo.Delete(ctx, s.ID); !errors.Is(err, model.ErrStashNotFound) {
			t.Fatalf("expected ErrStashNotFound on second delete, got %v", err)
		}
	})
}
