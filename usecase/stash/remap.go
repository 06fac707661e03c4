package stash

import "strings"

// RefPath locates fields inside entity properties that hold entity IDs.
// Keys is the property path from the root; when the addressed field is an
// array of rows, Items holds the paths to apply within each row.
type RefPath struct {
	Keys  []string
	Items []RefPath
}

// CollectRefPaths walks a parametrization field list and returns the paths
// of all fields whose type refers to entities, including fields nested in
// pages/sections ("content") and in array rows ("arrayItems").
func CollectRefPaths(fields []any) []RefPath {
	var out []RefPath
	for _, f := range fields {
		field, ok := f.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := field["type"].(string)
		name, _ := field["name"].(string)
		if strings.Contains(typ, "entity") && name != "" {
			out = append(out, RefPath{Keys: strings.Split(name, ".")})
		}
		if content, ok := field["content"].([]any); ok {
			out = append(out, CollectRefPaths(content)...)
		}
		if items, ok := field["arrayItems"].([]any); ok {
			if nested := CollectRefPaths(items); len(nested) > 0 && name != "" {
				out = append(out, RefPath{Keys: strings.Split(name, "."), Items: nested})
			}
		}
	}
	return out
}

// RemapRefs rewrites entity IDs in properties along the given paths using
// the old-to-new ID mapping. Fields may hold a single ID or a list of IDs
// (multi-select). Returns whether anything changed.
func RemapRefs(properties map[string]any, paths []RefPath, idMap map[int64]int64) bool {
	changed := false
	for _, p := range paths {
		if applyPath(properties, p, idMap) {
			changed = true
		}
	}
	return changed
}

func applyPath(node map[string]any, p RefPath, idMap map[int64]int64) bool {
	cur := node
	for i, key := range p.Keys {
		v, ok := cur[key]
		if !ok {
			return false
		}
		if i < len(p.Keys)-1 {
			next, ok := v.(map[string]any)
			if !ok {
				return false
			}
			cur = next
			continue
		}
		// Last key: an array of rows, a single ID, or a list of IDs.
		if len(p.Items) > 0 {
			rows, ok := v.([]any)
			if !ok {
				return false
			}
			changed := false
			for _, row := range rows {
				rm, ok := row.(map[string]any)
				if !ok {
					continue
				}
				for _, ip := range p.Items {
					if applyPath(rm, ip, idMap) {
						changed = true
					}
				}
			}
			return changed
		}
		switch vv := v.(type) {
		case []any:
			changed := false
			for idx, item := range vv {
				if old, ok := asID(item); ok {
					if nid, ok := idMap[old]; ok {
						vv[idx] = float64(nid)
						changed = true
					}
				}
			}
			return changed
		default:
			if old, ok := asID(vv); ok {
				if nid, ok := idMap[old]; ok {
					cur[key] = float64(nid)
					return true
				}
			}
		}
		return false
	}
	return false
}

// asID coerces a decoded JSON value into an entity ID. Properties come from
// encoding/json, so numbers are float64; int forms show up in tests.
func asID(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
