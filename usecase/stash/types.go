package stash

import (
	"context"

	"github.com/viktor-dev-tools/devcli/domain"
	"github.com/viktor-dev-tools/devcli/domain/model"
	"github.com/viktor-dev-tools/devcli/usecase/entity"
)

// API is the slice of the platform client used by stash use cases. It is a
// superset of the entity transfer interfaces so snapshot re-posting can be
// delegated to the entity use case against the same session.
type API interface {
	entity.SourceAPI
	entity.DestinationAPI

	RootEntities(ctx context.Context) ([]*model.Entity, error)
	Entity(ctx context.Context, id int64) (*model.Entity, error)
	UpdateEntity(ctx context.Context, id int64, properties map[string]any, message string) (*model.Entity, error)
	DeleteChildren(ctx context.Context, id int64) error
	Parametrization(ctx context.Context, entityID int64) ([]any, error)
}

// Repos holds repositories needed for stash use cases.
type Repos struct {
	Stash domain.StashRepository
}

// UseCase wires the platform session and the local stash registry.
type UseCase struct {
	API   API
	Repos *Repos
}
