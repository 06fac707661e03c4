// Package platform binds the hosted platform's REST API: authentication,
// workspace resolution, entity transfer, and file up/downloads.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PATPrefix is the required prefix of a personal access token.
const PATPrefix = "vktrpat_"

const defaultTimeout = 30 * time.Second

// Config carries everything needed to open a session against one subdomain.
type Config struct {
	// Subdomain is the tenant name, e.g. "geo-tools" for geo-tools.viktor.ai.
	Subdomain string
	// BaseURL overrides the derived https://<subdomain>.viktor.ai/api URL.
	// Used by tests and non-production environments.
	BaseURL string
	// ClientID identifies this CLI to the token endpoint (password grant).
	ClientID string
	// Username/Password for the password grant.
	Username string
	Password string
	// Token is a pre-issued access token (SSO) or a personal access token.
	Token string
	// RefreshToken accompanies SSO tokens; empty for PATs.
	RefreshToken string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

func (c *Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.viktor.ai/api", c.Subdomain)
}

// Client is an authenticated session against one subdomain. A workspace must
// be selected with SelectWorkspace before workspace-scoped calls.
type Client struct {
	Name string // subdomain, for messages

	host         string
	clientID     string
	httpc        *http.Client
	accessToken  string
	refreshToken string
	// passwordGrant marks sessions whose token we issued ourselves and must
	// revoke on Logout. SSO and PAT sessions are left alone.
	passwordGrant bool

	workspaceID int64
}

// NewFromToken opens a session with a pre-issued token (SSO or PAT).
func NewFromToken(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("access token required")
	}
	return &Client{
		Name:         cfg.Subdomain,
		host:         cfg.baseURL(),
		clientID:     cfg.ClientID,
		httpc:        cfg.httpClient(),
		accessToken:  cfg.Token,
		refreshToken: cfg.RefreshToken,
	}, nil
}

// Login opens a session through the password grant.
func Login(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("username and password required for %s", cfg.Subdomain)
	}
	c := &Client{
		Name:          cfg.Subdomain,
		host:          cfg.baseURL(),
		clientID:      cfg.ClientID,
		httpc:         cfg.httpClient(),
		passwordGrant: true,
	}
	tok, err := c.requestToken(ctx, map[string]string{
		"client_id":  cfg.ClientID,
		"username":   cfg.Username,
		"password":   cfg.Password,
		"grant_type": "password",
	})
	if err != nil {
		return nil, fmt.Errorf("login to %s: %w", cfg.Subdomain, err)
	}
	c.accessToken = tok.AccessToken
	c.refreshToken = tok.RefreshToken
	return c, nil
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

// WorkspaceID returns the currently selected workspace.
func (c *Client) WorkspaceID() int64 { return c.workspaceID }

// APIError is a non-2xx platform response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.accessToken)
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-cache")
	return h
}

// do issues one JSON request. Workspace-scoped paths are prefixed with
// /workspaces/<id> unless excludeWorkspace is set. A 401 triggers a single
// token refresh and retry when a refresh token is available.
func (c *Client) do(ctx context.Context, method, path string, body any, excludeWorkspace bool) (json.RawMessage, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path must start with /: %q", path)
	}
	url := c.host
	if !excludeWorkspace {
		url += fmt.Sprintf("/workspaces/%d", c.workspaceID)
	}
	url += path

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, url, payload)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && c.refreshToken != "" {
		_ = resp.Body.Close()
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		if resp, err = c.send(ctx, method, url, payload); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response of %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, method, url string, payload []byte) (*http.Response, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	req.Header = c.headers()
	return c.httpc.Do(req)
}

func (c *Client) getJSON(ctx context.Context, path string, out any, excludeWorkspace bool) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, excludeWorkspace)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any, excludeWorkspace bool) error {
	data, err := c.do(ctx, http.MethodPost, path, body, excludeWorkspace)
	if err != nil {
		return err
	}
	if out == nil || data == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	data, err := c.do(ctx, http.MethodPut, path, body, false)
	if err != nil {
		return err
	}
	if out == nil || data == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, false)
	return err
}
