package stash

import (
	"reflect"
	"testing"
)

func TestCollectRefPaths(t *testing.T) {
	fields := []any{
		map[string]any{"name": "general.owner", "type": "string"},
		map[string]any{"name": "general.site", "type": "entity_select"},
		map[string]any{
			"name": "page1", "type": "page",
			"content": []any{
				map[string]any{"name": "page1.ref", "type": "entity_multi_select"},
			},
		},
		map[string]any{
			"name": "rows", "type": "array",
			"arrayItems": []any{
				map[string]any{"name": "segment", "type": "entity_select"},
				map[string]any{"name": "length", "type": "number"},
			},
		},
	}

	paths := CollectRefPaths(fields)
	want := []RefPath{
		{Keys: []string{"general", "site"}},
		{Keys: []string{"page1", "ref"}},
		{Keys: []string{"rows"}, Items: []RefPath{{Keys: []string{"segment"}}}},
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("got %+v, want %+v", paths, want)
	}
}

func TestRemapRefs(t *testing.T) {
	idMap := map[int64]int64{10: 110, 20: 120}

	t.Run("single id", func(t *testing.T) {
		props := map[string]any{"general": map[string]any{"site": float64(10)}}
		paths := []RefPath{{Keys: []string{"general", "site"}}}
		if !RemapRefs(props, paths, idMap) {
			t.Fatal("expected a change")
		}
		if got := props["general"].(map[string]any)["site"]; got != float64(110) {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("multi-select list", func(t *testing.T) {
		props := map[string]any{"refs": []any{float64(10), float64(20), float64(99)}}
		paths := []RefPath{{Keys: []string{"refs"}}}
		if !RemapRefs(props, paths, idMap) {
			t.Fatal("expected a change")
		}
		want := []any{float64(110), float64(120), float64(99)}
		if !reflect.DeepEqual(props["refs"], want) {
			t.Fatalf("got %v, want %v", props["refs"], want)
		}
	})

	t.Run("array rows", func(t *testing.T) {
		props := map[string]any{"rows": []any{
			map[string]any{"segment": float64(20), "length": float64(5)},
			map[string]any{"segment": float64(30)},
		}}
		paths := []RefPath{{Keys: []string{"rows"}, Items: []RefPath{{Keys: []string{"segment"}}}}}
		if !RemapRefs(props, paths, idMap) {
			t.Fatal("expected a change")
		}
		rows := props["rows"].([]any)
		if rows[0].(map[string]any)["segment"] != float64(120) {
			t.Fatalf("row 0 not remapped: %v", rows[0])
		}
		if rows[1].(map[string]any)["segment"] != float64(30) {
			t.Fatalf("unmapped id must stay: %v", rows[1])
		}
	})

	t.Run("missing fields are ignored", func(t *testing.T) {
		props := map[string]any{"other": float64(1)}
		paths := []RefPath{{Keys: []string{"general", "site"}}}
		if RemapRefs(props, paths, idMap) {
			t.Fatal("expected no change")
		}
	})

	t.Run("ids outside the mapping stay put", func(t *testing.T) {
		props := map[string]any{"general": map[string]any{"site": float64(999)}}
		paths := []RefPath{{Keys: []string{"general", "site"}}}
		if RemapRefs(props, paths, idMap) {
			t.Fatal("expected no change")
		}
	})
}
