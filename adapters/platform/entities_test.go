package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"testing"
)

func TestEntityTree(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("/workspaces/0/entities/1/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": "Project", "entity_type": 100, "properties": map[string]any{}})
	})
	mux.HandleFunc("/workspaces/0/entities/1/parents/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"id": 9, "entity_type": 99}})
	})
	mux.HandleFunc("/workspaces/0/entities/1/entities/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 2, "name": "Report", "entity_type": 101, "properties": map[string]any{}},
		})
	})
	mux.HandleFunc("/workspaces/0/entities/2/entities/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	c := newTestClient(t, mux)

	e, err := c.EntityTree(ctx, 1, false)
	if err != nil {
		t.Fatalf("EntityTree: %v", err)
	}
	if e.ParentEntityType == nil || *e.ParentEntityType != 99 {
		t.Fatalf("parent entity type not resolved: %+v", e.ParentEntityType)
	}
	if len(e.Children) != 1 || e.Children[0].Name != "Report" {
		t.Fatalf("unexpected children: %+v", e.Children)
	}
	if e.Size() != 2 {
		t.Fatalf("unexpected tree size %d", e.Size())
	}
}

func TestEntityFileRefBecomesDownloadURL(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("/workspaces/0/entities/3/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 3, "name": "Data file", "entity_type": 102,
			"properties": map[string]any{"filename": "uploads/abc"},
		})
	})
	mux.HandleFunc("/workspaces/0/entities/3/parents/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "entity_type": 100}})
	})
	mux.HandleFunc("/workspaces/0/entities/3/download/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"temporary_download_url": "https://files.example/abc?sig=x"})
	})
	c := newTestClient(t, mux)

	e, err := c.Entity(ctx, 3)
	if err != nil {
		t.Fatalf("Entity: %v", err)
	}
	if got := e.FileRef(); got != "https://files.example/abc?sig=x" {
		t.Fatalf("filename not replaced with download url: %q", got)
	}
}

func TestDeleteChildrenDepthFirst(t *testing.T) {
	ctx := context.Background()
	children := map[int64][]int64{1: {2, 3}, 2: {4}}
	var deleted []int64

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if n, _ := fmt.Sscanf(r.URL.Path, "/workspaces/0/entities/%d", &id); n != 1 {
			t.Errorf("unexpected path %q", r.URL.Path)
			return
		}
		if r.Method == http.MethodDelete {
			deleted = append(deleted, id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		out := []map[string]any{}
		for _, cid := range children[id] {
			out = append(out, map[string]any{"id": cid, "properties": map[string]any{}})
		}
		json.NewEncoder(w).Encode(out)
	})
	c := newTestClient(t, mux)

	if err := c.DeleteChildren(ctx, 1); err != nil {
		t.Fatalf("DeleteChildren: %v", err)
	}
	if want := []int64{4, 2, 3}; !reflect.DeepEqual(deleted, want) {
		t.Fatalf("deletion order %v, want %v", deleted, want)
	}
}

func TestCreateChild(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("/workspaces/0/entities/5/entities/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["entity_type"] != float64(101) || body["name"] != "Report" {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 77, "name": "Report", "entity_type": 101})
	})
	c := newTestClient(t, mux)

	e, err := c.CreateChild(ctx, 5, 101, "Report", map[string]any{"x": 1})
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	if e.ID != 77 {
		t.Fatalf("unexpected id %d", e.ID)
	}
}

func TestParametrization(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("/workspaces/0/entities/5/parametrization/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]any{
				"parametrization": []any{
					map[string]any{"name": "ref", "type": "entity_select"},
				},
			},
		})
	})
	c := newTestClient(t, mux)

	fields, err := c.Parametrization(ctx, 5)
	if err != nil {
		t.Fatalf("Parametrization: %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}
