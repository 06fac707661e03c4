package user

import (
	"context"
	"fmt"

	"github.com/viktor-dev-tools/devcli/domain/model"
	"github.com/viktor-dev-tools/devcli/internal/logging"
	"github.com/viktor-dev-tools/devcli/internal/tabular"
)

// ImportInput contains data to bulk-add users from a local file.
type ImportInput struct {
	// Path points at a .csv or .xlsx file with columns
	// first_name, last_name, email, and optionally job_title.
	Path string
}

// ImportOutput reports how the import went.
type ImportOutput struct {
	Added  int
	Failed int
}

var requiredColumns = []string{"first_name", "last_name", "email"}

// Import creates one platform account per row. Failures on individual users
// are logged and the run continues with the next row.
func (u *UseCase) Import(ctx context.Context, in *ImportInput) (*ImportOutput, error) {
	if in == nil || in.Path == "" {
		return nil, fmt.Errorf("user list file required")
	}
	logger := logging.FromContext(ctx)

	rows, err := tabular.ReadRows(in.Path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no user rows", in.Path)
	}
	for _, col := range requiredColumns {
		if _, ok := rows[0][col]; !ok {
			return nil, fmt.Errorf("%s does not have a column with label %q", in.Path, col)
		}
	}

	out := &ImportOutput{}
	for _, row := range rows {
		usr := &model.User{
			FirstName: row["first_name"],
			LastName:  row["last_name"],
			Email:     row["email"],
			JobTitle:  row["job_title"],
			IsDev:     true,
		}
		if err := u.API.AddUser(ctx, usr); err != nil {
			logger.Warn(ctx, "failed to add user, continuing with next", "user", usr.FullName(), "error", err)
			out.Failed++
			continue
		}
		logger.Info(ctx, "added user", "user", usr.FullName())
		out.Added++
	}
	return out, nil
}
