package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/viktor-dev-tools/devcli/config/devclienv"
)

// settings is the resolved CLI configuration: config.yml merged with the
// VIKTOR_ENV / VIKTOR_PAT environment variables, which take precedence.
type settings struct {
	Env         *devclienv.Env
	Environment string // platform domain, e.g. company.viktor.ai
	PAT         string
	Workspace   string // default workspace id or name
	Logging     devclienv.Logging
}

type settingsKey struct{}

func withSettings(ctx context.Context, s *settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// settingsFromCmd retrieves the settings resolved by the root PersistentPreRunE.
func settingsFromCmd(cmd *cobra.Command) (*settings, error) {
	if s, ok := cmd.Context().Value(settingsKey{}).(*settings); ok && s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("settings not initialized")
}

// loadSettings reads config.yml (if present) and binds environment overrides.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	dir := ""
	if f := findFlag(cmd, "devcli-dir"); f != nil {
		dir = f.Value.String()
	}
	home, _ := homedir.Dir()
	env, err := devclienv.Resolve(dir, home)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(env.ConfigPath())
	v.SetConfigType("yaml")
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.retentionDays", 7)
	_ = v.BindEnv("environment", devclienv.EnvKey)
	_ = v.BindEnv("pat", devclienv.PATKey)
	if err := v.ReadInConfig(); err != nil {
		// A missing config.yml is fine; init creates it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", env.ConfigPath(), err)
		}
	}

	s := &settings{
		Env:         env,
		Environment: v.GetString("environment"),
		PAT:         v.GetString("pat"),
		Workspace:   v.GetString("workspace"),
	}
	if err := v.UnmarshalKey("logging", &s.Logging); err != nil {
		return nil, fmt.Errorf("reading logging config: %w", err)
	}
	return s, nil
}

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}
