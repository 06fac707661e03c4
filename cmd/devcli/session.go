package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/adapters/platform"
	"github.com/viktor-dev-tools/devcli/config/devclienv"
	"github.com/viktor-dev-tools/devcli/internal/logging"
	"github.com/viktor-dev-tools/devcli/internal/prompt"
)

// OAuth client IDs registered for this CLI on the platform. Password-grant
// sessions are revoked on exit; SSO/PAT sessions expire on their own.
const (
	oauthClientID    = "Hle1POdTCyoWconstn6bKFBpcgDjRnGECbiAxv2Q"
	oauthClientIDSSO = "PAWrxBnvDSdfEBJo38vVAoajuPxwAPV2mFUwUdWk"
)

// sessionFlags are the credential and workspace flags shared by commands that
// talk to one or two subdomains.
type sessionFlags struct {
	Username             string
	Source               string
	SourcePwd            string
	SourceToken          string
	SourceWorkspace      string
	Destination          string
	DestinationPwd       string
	DestinationToken     string
	DestinationWorkspace string
}

func (f *sessionFlags) registerSource(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "Username, if it is the same for source and destination")
	cmd.Flags().StringVarP(&f.Source, "source", "s", "", "Source subdomain")
	cmd.Flags().StringVar(&f.SourcePwd, "source-pwd", "", "Source password")
	cmd.Flags().StringVar(&f.SourceToken, "source-token", "", "Source access token (SSO or PAT)")
	cmd.Flags().StringVarP(&f.SourceWorkspace, "source-workspace", "w", "", "Source workspace id or name")
}

func (f *sessionFlags) registerDestination(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Destination, "destination", "d", "", "Destination subdomain")
	cmd.Flags().StringVar(&f.DestinationPwd, "destination-pwd", "", "Destination password")
	cmd.Flags().StringVar(&f.DestinationToken, "destination-token", "", "Destination access token (SSO or PAT)")
	cmd.Flags().StringVar(&f.DestinationWorkspace, "destination-workspace", "", "Destination workspace id or name")
}

// consolidate re-uses credentials when source and destination are the same
// subdomain, prompting for a shared password at most once. An omitted
// destination means the source subdomain serves both sides.
func (f *sessionFlags) consolidate(p *prompt.Prompter) error {
	if f.Destination == "" {
		f.Destination = f.Source
	}
	if f.Source != f.Destination {
		return nil
	}
	if f.SourceToken != "" && f.DestinationToken == "" {
		f.DestinationToken = f.SourceToken
	}
	if f.Username != "" && f.SourceToken == "" {
		if f.SourcePwd == "" {
			pwd, err := p.AskSecret(fmt.Sprintf("Password for %s", f.Source))
			if err != nil {
				return err
			}
			f.SourcePwd = pwd
		}
		if f.DestinationPwd == "" {
			f.DestinationPwd = f.SourcePwd
		}
	}
	return nil
}

// normalizeSubdomain accepts "company", "company.viktor.ai", or a full URL
// and returns the bare subdomain.
func normalizeSubdomain(s string) string {
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(strings.TrimSuffix(s, "/"), "/api")
	return strings.TrimSuffix(s, ".viktor.ai")
}

// openDomain opens an authenticated session against one subdomain and selects
// the workspace. Credential resolution order: explicit token, the configured
// PAT when the subdomain matches the configured environment (or is omitted),
// then username/password with interactive prompts for whatever is missing.
func openDomain(ctx context.Context, s *settings, p *prompt.Prompter, subdomain, username, pwd, token, workspace string) (*platform.Client, error) {
	subdomain = normalizeSubdomain(subdomain)
	envSubdomain := normalizeSubdomain(s.Environment)

	if token == "" && username == "" && pwd == "" && devclienv.ValidPAT(s.PAT) {
		if subdomain == "" || subdomain == envSubdomain {
			subdomain = envSubdomain
			token = s.PAT
		}
	}
	if subdomain == "" {
		return nil, fmt.Errorf("subdomain required; pass a flag or configure %s", devclienv.EnvKey)
	}

	var c *platform.Client
	var err error
	if token != "" {
		c, err = platform.NewFromToken(platform.Config{
			Subdomain: subdomain,
			ClientID:  oauthClientIDSSO,
			Token:     token,
		})
	} else {
		if username == "" {
			if username, err = p.Ask(fmt.Sprintf("Username for %s", subdomain)); err != nil {
				return nil, err
			}
		}
		if pwd == "" {
			if pwd, err = p.AskSecret(fmt.Sprintf("Password for %s", subdomain)); err != nil {
				return nil, err
			}
		}
		c, err = platform.Login(ctx, platform.Config{
			Subdomain: subdomain,
			ClientID:  oauthClientID,
			Username:  username,
			Password:  pwd,
		})
	}
	if err != nil {
		return nil, err
	}

	if workspace == "" {
		workspace = s.Workspace
	}
	if workspace != "" {
		if err := c.SelectWorkspace(ctx, workspace); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// closeDomain revokes a password-grant session, logging but not failing on
// revocation errors.
func closeDomain(ctx context.Context, c *platform.Client) {
	if c == nil {
		return
	}
	if err := c.Logout(ctx); err != nil {
		logging.FromContext(ctx).Warn(ctx, "logout failed", "subdomain", c.Name, "error", err)
	}
}
