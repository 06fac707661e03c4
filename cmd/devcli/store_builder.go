package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/adapters/store/inmem"
	"github.com/viktor-dev-tools/devcli/adapters/store/rdb"
	"github.com/viktor-dev-tools/devcli/domain"
)

// buildStashRepository opens the local stash registry. The db-url comes from
// --stash-db, DEVCLI_STASH_DB, or defaults to sqlite:$DEVCLI_DIR/stash.db.
func buildStashRepository(cmd *cobra.Command, s *settings) (domain.StashRepository, error) {
	dbURL := ""
	if f := findFlag(cmd, "stash-db"); f != nil {
		dbURL = f.Value.String()
	}
	if dbURL == "" {
		dbURL = s.Env.StashDBURL()
	}

	switch {
	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return rdb.NewStashRepository(db), nil

	case strings.HasPrefix(dbURL, "inmem:"):
		// Useful for tests and throwaway runs; nothing is persisted.
		return inmem.NewStashRepository(), nil

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}
