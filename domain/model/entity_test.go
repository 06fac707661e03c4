package model

import (
	"reflect"
	"testing"
)

func TestEntitySize(t *testing.T) {
	e := &Entity{
		ID: 1,
		Children: []*Entity{
			{ID: 2, Children: []*Entity{{ID: 3}, {ID: 4}}},
			{ID: 5},
		},
	}
	if got := e.Size(); got != 5 {
		t.Fatalf("Size() = %d, want 5", got)
	}
}

func TestEntityIsRoot(t *testing.T) {
	parent := int64(100)
	if root := (&Entity{ID: 1}); !root.IsRoot() {
		t.Fatal("entity without parent type must be root")
	}
	if child := (&Entity{ID: 2, ParentEntityType: &parent}); child.IsRoot() {
		t.Fatal("entity with parent type must not be root")
	}
}

func TestEntityFileRef(t *testing.T) {
	if got := (&Entity{}).FileRef(); got != "" {
		t.Fatalf("nil properties should have no file ref, got %q", got)
	}
	e := &Entity{Properties: map[string]any{"filename": "uploads/abc"}}
	if got := e.FileRef(); got != "uploads/abc" {
		t.Fatalf("FileRef() = %q", got)
	}
	n := &Entity{Properties: map[string]any{"filename": 12}}
	if got := n.FileRef(); got != "" {
		t.Fatalf("non-string filename should be ignored, got %q", got)
	}
}

func TestMapEntityTypes(t *testing.T) {
	src := []EntityType{{ID: 1, ClassName: "Folder"}, {ID: 2, ClassName: "Report"}, {ID: 3, ClassName: "Special"}}
	dst := []EntityType{{ID: 10, ClassName: "Folder"}, {ID: 20, ClassName: "Report"}}

	got := MapEntityTypes(src, dst)
	want := map[int64]int64{1: 10, 2: 20}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MapEntityTypes() = %v, want %v", got, want)
	}
}
