package platform

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/viktor-dev-tools/devcli/domain/model"
)

// Workspaces lists all workspaces of the subdomain.
func (c *Client) Workspaces(ctx context.Context) ([]model.Workspace, error) {
	var ws []model.Workspace
	if err := c.getJSON(ctx, "/workspaces/", &ws, true); err != nil {
		return nil, err
	}
	sort.Slice(ws, func(i, j int) bool { return ws[i].ID < ws[j].ID })
	return ws, nil
}

// ResolveWorkspace accepts a numeric workspace ID or a case-insensitive
// workspace name and returns the ID.
func (c *Client) ResolveWorkspace(ctx context.Context, idOrName string) (int64, error) {
	idOrName = strings.TrimSpace(idOrName)
	if id, err := strconv.ParseInt(idOrName, 10, 64); err == nil {
		return id, nil
	}
	ws, err := c.Workspaces(ctx)
	if err != nil {
		return 0, err
	}
	names := make([]string, 0, len(ws))
	for _, w := range ws {
		if strings.EqualFold(w.Name, idOrName) {
			return w.ID, nil
		}
		names = append(names, w.Name)
	}
	return 0, fmt.Errorf("%w: %q not found on %s, available workspaces:\n - %s",
		model.ErrWorkspaceNotFound, idOrName, c.Name, strings.Join(names, "\n - "))
}

// SelectWorkspace resolves and pins the workspace used by workspace-scoped
// calls on this client.
func (c *Client) SelectWorkspace(ctx context.Context, idOrName string) error {
	id, err := c.ResolveWorkspace(ctx, idOrName)
	if err != nil {
		return err
	}
	c.workspaceID = id
	return nil
}
