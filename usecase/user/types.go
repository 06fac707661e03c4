package user

import (
	"context"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

// API is the slice of the platform client used by user use cases.
type API interface {
	AddUser(ctx context.Context, u *model.User) error
}

// UseCase wires the platform session for user management.
type UseCase struct {
	API API
}
