package model

// Entity is a single record in a workspace entity database. The platform
// owns the schema; Properties are forwarded verbatim.
type Entity struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	EntityType       int64          `json:"entity_type"`
	Properties       map[string]any `json:"properties"`
	ParentEntityType *int64         `json:"parent_entity_type,omitempty"`
	Children         []*Entity      `json:"children"`
}

// IsRoot reports whether the entity has no parent in its workspace.
// Root entities cannot be created remotely, only updated.
func (e *Entity) IsRoot() bool { return e.ParentEntityType == nil }

// Size counts the entity itself plus all descendants.
func (e *Entity) Size() int {
	n := 1
	for _, c := range e.Children {
		n += c.Size()
	}
	return n
}

// FileRef returns the filename property of a file entity, or "" when the
// entity carries no file.
func (e *Entity) FileRef() string {
	if e.Properties == nil {
		return ""
	}
	s, _ := e.Properties["filename"].(string)
	return s
}

// EntityType describes one entity type registered in a workspace manifest.
type EntityType struct {
	ID        int64  `json:"id"`
	ClassName string `json:"class_name"`
}

// MapEntityTypes maps source entity type IDs to destination entity type IDs
// by matching class names. Types without a counterpart are absent from the
// result; callers decide whether that is fatal.
func MapEntityTypes(src, dst []EntityType) map[int64]int64 {
	byName := make(map[string]int64, len(dst))
	for _, t := range dst {
		byName[t.ClassName] = t.ID
	}
	m := make(map[int64]int64, len(src))
	for _, t := range src {
		if id, ok := byName[t.ClassName]; ok {
			m[t.ID] = id
		}
	}
	return m
}
