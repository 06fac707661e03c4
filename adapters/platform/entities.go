package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

// RootEntities lists the workspace's root entities.
func (c *Client) RootEntities(ctx context.Context) ([]*model.Entity, error) {
	var out []*model.Entity
	if err := c.getJSON(ctx, "/entities/", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Entity fetches a single entity. The parent entity type is resolved from
// the parents listing so callers can tell roots apart; file entities get
// their filename property replaced with a temporary download URL.
func (c *Client) Entity(ctx context.Context, id int64) (*model.Entity, error) {
	var e model.Entity
	if err := c.getJSON(ctx, fmt.Sprintf("/entities/%d/", id), &e, false); err != nil {
		return nil, err
	}
	parents, err := c.Parents(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(parents) > 0 {
		t := parents[0].EntityType
		e.ParentEntityType = &t
	}
	if err := c.refreshFileRef(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Parents lists an entity's parents.
func (c *Client) Parents(ctx context.Context, id int64) ([]*model.Entity, error) {
	var out []*model.Entity
	if err := c.getJSON(ctx, fmt.Sprintf("/entities/%d/parents/", id), &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Children lists the direct children of an entity. When recursive is set
// the full subtree is fetched. File entities get their filename property
// replaced with a temporary download URL so contents stay reachable.
func (c *Client) Children(ctx context.Context, parentID int64, recursive bool) ([]*model.Entity, error) {
	var children []*model.Entity
	if err := c.getJSON(ctx, fmt.Sprintf("/entities/%d/entities/", parentID), &children, false); err != nil {
		return nil, err
	}
	for _, child := range children {
		if err := c.refreshFileRef(ctx, child); err != nil {
			return nil, err
		}
		if recursive {
			sub, err := c.Children(ctx, child.ID, true)
			if err != nil {
				return nil, err
			}
			child.Children = sub
		}
	}
	return children, nil
}

// EntityTree fetches an entity and, unless excludeChildren is set, its full
// descendant tree.
func (c *Client) EntityTree(ctx context.Context, id int64, excludeChildren bool) (*model.Entity, error) {
	e, err := c.Entity(ctx, id)
	if err != nil {
		return nil, err
	}
	if !excludeChildren {
		if e.Children, err = c.Children(ctx, id, true); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// EntityTypes lists the entity types registered in the workspace manifest.
func (c *Client) EntityTypes(ctx context.Context) ([]model.EntityType, error) {
	var out []model.EntityType
	if err := c.getJSON(ctx, "/entity_types/", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// EntitiesOfType lists all entities of one entity type.
func (c *Client) EntitiesOfType(ctx context.Context, typeID int64) ([]*model.Entity, error) {
	var out []*model.Entity
	if err := c.getJSON(ctx, fmt.Sprintf("/entity_types/%d/entities/", typeID), &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Revisions lists all revisions of an entity as raw documents; revision
// schemas are owned by the platform and written to disk verbatim.
func (c *Client) Revisions(ctx context.Context, entityID int64) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := c.getJSON(ctx, fmt.Sprintf("/entities/%d/revisions/", entityID), &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateChild creates a new entity under parentID.
func (c *Client) CreateChild(ctx context.Context, parentID, entityType int64, name string, properties map[string]any) (*model.Entity, error) {
	body := map[string]any{"entity_type": entityType, "name": name, "properties": properties}
	var e model.Entity
	if err := c.postJSON(ctx, fmt.Sprintf("/entities/%d/entities/", parentID), body, &e, false); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEntity writes a new revision of an entity's properties.
func (c *Client) UpdateEntity(ctx context.Context, id int64, properties map[string]any, message string) (*model.Entity, error) {
	body := map[string]any{"message": message, "properties": properties}
	var e model.Entity
	if err := c.putJSON(ctx, fmt.Sprintf("/entities/%d/", id), body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEntity removes a single entity.
func (c *Client) DeleteEntity(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/entities/%d/", id))
}

// DeleteChildren removes all descendants of an entity, depth first, leaving
// the entity itself in place.
func (c *Client) DeleteChildren(ctx context.Context, id int64) error {
	children, err := c.Children(ctx, id, false)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := c.DeleteChildren(ctx, child.ID); err != nil {
			return err
		}
		if err := c.DeleteEntity(ctx, child.ID); err != nil {
			return err
		}
	}
	return nil
}

// Parametrization fetches the parametrization of an entity. The returned
// value is the raw field list; field types are inspected when remapping
// entity references after a stash apply.
func (c *Client) Parametrization(ctx context.Context, entityID int64) ([]any, error) {
	var resp struct {
		Content struct {
			Parametrization []any `json:"parametrization"`
		} `json:"content"`
	}
	if err := c.postJSON(ctx, fmt.Sprintf("/entities/%d/parametrization/", entityID), map[string]any{}, &resp, false); err != nil {
		return nil, err
	}
	return resp.Content.Parametrization, nil
}

// refreshFileRef swaps a file entity's filename property for a temporary
// download URL.
func (c *Client) refreshFileRef(ctx context.Context, e *model.Entity) error {
	if e.FileRef() == "" {
		return nil
	}
	url, err := c.TemporaryDownloadURL(ctx, e.ID)
	if err != nil {
		return err
	}
	e.Properties["filename"] = url
	return nil
}
