package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

func workspaceListHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/workspaces/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 20, "name": "Production"},
			{"id": 10, "name": "Development"},
		})
	})
}

func TestWorkspacesSorted(t *testing.T) {
	c := newTestClient(t, workspaceListHandler(t))
	ws, err := c.Workspaces(context.Background())
	if err != nil {
		t.Fatalf("Workspaces: %v", err)
	}
	if len(ws) != 2 || ws[0].ID != 10 || ws[1].ID != 20 {
		t.Fatalf("unexpected workspaces: %+v", ws)
	}
}

func TestResolveWorkspace(t *testing.T) {
	ctx := context.Background()

	t.Run("numeric id passes through", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected for numeric ids")
		}))
		id, err := c.ResolveWorkspace(ctx, "42")
		if err != nil || id != 42 {
			t.Fatalf("got %d, %v", id, err)
		}
	})

	t.Run("name is case-insensitive", func(t *testing.T) {
		c := newTestClient(t, workspaceListHandler(t))
		id, err := c.ResolveWorkspace(ctx, "production")
		if err != nil || id != 20 {
			t.Fatalf("got %d, %v", id, err)
		}
	})

	t.Run("unknown name lists available workspaces", func(t *testing.T) {
		c := newTestClient(t, workspaceListHandler(t))
		_, err := c.ResolveWorkspace(ctx, "staging")
		if !errors.Is(err, model.ErrWorkspaceNotFound) {
			t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), "Development") || !strings.Contains(err.Error(), "Production") {
			t.Fatalf("error should name available workspaces: %v", err)
		}
	})
}

func TestSelectWorkspace(t *testing.T) {
	c := newTestClient(t, workspaceListHandler(t))
	if err := c.SelectWorkspace(context.Background(), "Development"); err != nil {
		t.Fatalf("SelectWorkspace: %v", err)
	}
	if c.WorkspaceID() != 10 {
		t.Fatalf("workspace not pinned: %d", c.WorkspaceID())
	}
}
