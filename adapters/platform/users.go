package platform

import (
	"context"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

// Users lists all users of the environment.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.getJSON(ctx, "/users/", &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// AddUser creates a platform account and sends the activation mail.
// User management is environment-scoped, not workspace-scoped.
func (c *Client) AddUser(ctx context.Context, u *model.User) error {
	body := map[string]any{
		"email":                 u.Email,
		"first_name":            u.FirstName,
		"last_name":             u.LastName,
		"job_title":             u.JobTitle,
		"is_dev":                u.IsDev,
		"is_env_admin":          u.IsEnvAdmin,
		"is_external":           u.IsExternal,
		"send_activation_email": true,
	}
	return c.postJSON(ctx, "/users/", body, nil, true)
}
