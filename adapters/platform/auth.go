package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// requestToken posts to the token endpoint without Authorization headers.
func (c *Client) requestToken(ctx context.Context, form map[string]string) (*tokenResponse, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/o/token/", strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Method: http.MethodPost, Path: "/o/token/", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	return &tok, nil
}

// Refresh exchanges the refresh token for a new access token. SSO tokens
// expire within minutes, so any long run may need this mid-flight.
func (c *Client) Refresh(ctx context.Context) error {
	if c.refreshToken == "" {
		return fmt.Errorf("no refresh token for %s", c.Name)
	}
	tok, err := c.requestToken(ctx, map[string]string{
		"refresh_token": c.refreshToken,
		"client_id":     c.clientID,
		"grant_type":    "refresh_token",
	})
	if err != nil {
		return fmt.Errorf("refreshing token for %s: %w", c.Name, err)
	}
	c.accessToken = tok.AccessToken
	c.refreshToken = tok.RefreshToken
	return nil
}

// Logout revokes the access token of a password-grant session. SSO and PAT
// sessions are not revoked; their tokens expire on their own.
func (c *Client) Logout(ctx context.Context) error {
	if !c.passwordGrant {
		return nil
	}
	payload := map[string]string{"client_id": c.clientID, "token": c.accessToken}
	if _, err := c.do(ctx, http.MethodPost, "/o/revoke_token/", payload, true); err != nil {
		return fmt.Errorf("logout from %s: %w", c.Name, err)
	}
	return nil
}
