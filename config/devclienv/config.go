// Package devclienv owns the CLI home directory layout ($HOME/.devcli),
// the config.yml schema, and personal access token helpers. Reading the
// config happens at the command layer (viper); this package knows the paths
// and writes the initial template.
package devclienv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names
const (
	EnvKey     = "VIKTOR_ENV"
	PATKey     = "VIKTOR_PAT"
	HomeDirKey = "DEVCLI_DIR"
	StashDBKey = "DEVCLI_STASH_DB"
)

// Directory and file names
const (
	DirName        = ".devcli"
	ConfigFileName = "config.yml"
	StashDBName    = "stash.db"
	LogDirName     = "logs"
)

// PATPrefix is the required prefix of a personal access token.
const PATPrefix = "vktrpat_"

// Env is the resolved CLI directory.
type Env struct {
	Dir string // typically $HOME/.devcli
}

// Resolve locates the CLI directory.
//
// Resolution order:
//  1. dir parameter (from --devcli-dir flag or DEVCLI_DIR env)
//  2. Default: <home>/.devcli
func Resolve(dir, home string) (*Env, error) {
	if dir == "" {
		if home == "" {
			return nil, fmt.Errorf("home directory unknown; set %s", HomeDirKey)
		}
		dir = filepath.Join(home, DirName)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving CLI directory: %w", err)
	}
	return &Env{Dir: filepath.Clean(dir)}, nil
}

// ConfigPath returns the path of config.yml.
func (e *Env) ConfigPath() string { return filepath.Join(e.Dir, ConfigFileName) }

// LogDir returns the log directory, defaulting to $DIR/logs.
func (e *Env) LogDir(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(e.Dir, LogDirName)
}

// StashDBURL returns the db-url of the local stash registry.
func (e *Env) StashDBURL() string {
	if v := os.Getenv(StashDBKey); v != "" {
		return v
	}
	return "sqlite:" + filepath.Join(e.Dir, StashDBName)
}

// Logging is the logging section of config.yml.
type Logging struct {
	Dir           string `yaml:"dir,omitempty" mapstructure:"dir"`                     // Log directory (default: $DEVCLI_DIR/logs)
	Format        string `yaml:"format,omitempty" mapstructure:"format"`               // human (default), text, json
	Level         string `yaml:"level,omitempty" mapstructure:"level"`                 // DEBUG, INFO (default), WARN, ERROR
	RetentionDays int    `yaml:"retentionDays,omitempty" mapstructure:"retentionDays"` // Days to retain log files (default: 7)
}

// configFile is the structure of config.yml.
type configFile struct {
	Version     int     `yaml:"version"`
	Environment string  `yaml:"environment,omitempty"` // platform domain, e.g. company.viktor.ai
	PAT         string  `yaml:"pat,omitempty"`
	Workspace   string  `yaml:"workspace,omitempty"` // default workspace id or name
	Logging     Logging `yaml:"logging,omitempty"`
}

// ValidPAT reports whether a personal access token has the expected format.
func ValidPAT(pat string) bool {
	return strings.HasPrefix(pat, PATPrefix)
}

// MaskPAT renders a PAT safe for display: the first 16 characters followed
// by 48 asterisks.
func MaskPAT(pat string) string {
	if pat == "" {
		return "Not configured!"
	}
	if len(pat) < 16 {
		return strings.Repeat("*", 64)
	}
	return pat[:16] + strings.Repeat("*", 48)
}

// InitialConfigYAML generates the initial config.yml content as YAML bytes.
func InitialConfigYAML() ([]byte, error) {
	defaultConfig := configFile{
		Version: 1,
		Logging: Logging{
			Format:        "human",
			Level:         "INFO",
			RetentionDays: 7,
		},
	}
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&defaultConfig); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("closing yaml encoder: %w", err)
	}
	return []byte(buf.String()), nil
}
