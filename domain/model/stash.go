package model

import "time"

// Stash records one database snapshot written to the local filesystem.
type Stash struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Subdomain   string    `json:"subdomain"`
	WorkspaceID int64     `json:"workspace_id"`
	Path        string    `json:"path"`
	EntityCount int       `json:"entity_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// StashDocument is the on-disk snapshot format: every root entity with its
// full child tree, plus the entity types present at stash time.
type StashDocument struct {
	Entities    []*Entity    `json:"entities"`
	EntityTypes []EntityType `json:"entity_types"`
}

// EntityCount counts all entities in the document, children included.
func (d *StashDocument) EntityCount() int {
	n := 0
	for _, e := range d.Entities {
		n += e.Size()
	}
	return n
}
