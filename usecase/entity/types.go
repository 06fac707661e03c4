package entity

import (
	"context"
	"encoding/json"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

// SourceAPI is the slice of the platform client that entity use cases read
// from.
type SourceAPI interface {
	EntityTree(ctx context.Context, id int64, excludeChildren bool) (*model.Entity, error)
	EntityTypes(ctx context.Context) ([]model.EntityType, error)
	EntitiesOfType(ctx context.Context, typeID int64) ([]*model.Entity, error)
	Revisions(ctx context.Context, entityID int64) ([]json.RawMessage, error)
	FetchFile(ctx context.Context, url string) ([]byte, error)
}

// DestinationAPI is the slice of the platform client that entity use cases
// write to.
type DestinationAPI interface {
	EntityTypes(ctx context.Context) ([]model.EntityType, error)
	EntitiesOfType(ctx context.Context, typeID int64) ([]*model.Entity, error)
	CreateChild(ctx context.Context, parentID, entityType int64, name string, properties map[string]any) (*model.Entity, error)
	UploadFile(ctx context.Context, entityType int64, content []byte) (string, error)
}

// UseCase wires the source and destination sessions for entity transfer.
// Both may point at the same client when moving data within one subdomain.
type UseCase struct {
	Source      SourceAPI
	Destination DestinationAPI
}
