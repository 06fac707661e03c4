package domain

import (
	"context"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

// StashRepository stores and retrieves local stash records.
type StashRepository interface {
	Create(ctx context.Context, s *model.Stash) error
	Get(ctx context.Context, id string) (*model.Stash, error)
	List(ctx context.Context) ([]*model.Stash, error)
	Delete(ctx context.Context, id string) error
}
