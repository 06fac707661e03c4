package stash

import (
	"context"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

// ListInput has no fields yet; kept for symmetry with other operations.
type ListInput struct{}

// ListOutput wraps the recorded stashes.
type ListOutput struct {
	Items []*model.Stash `json:"items"`
}

// List returns all stashes recorded in the local registry.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	items, err := u.Repos.Stash.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Items: items}, nil
}
