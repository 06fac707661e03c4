package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/viktor-dev-tools/devcli/internal/logging"
)

// activeLogFile is the log file opened for the current invocation, closed by
// main after the command finishes.
var activeLogFile *logging.LogFile

func closeLogFile() {
	if activeLogFile != nil {
		_ = activeLogFile.Close()
		activeLogFile = nil
	}
}

// setupLogging builds the logger from config.yml, overridden by the
// --log-format, --log-level, and --log-output flags. Unless disabled, output
// goes to stderr and to a log file under the CLI log directory.
func setupLogging(cmd *cobra.Command, s *settings) (logging.Logger, error) {
	cfg := &logging.LogConfig{
		Format:        s.Logging.Format,
		Level:         s.Logging.Level,
		Dir:           s.Env.LogDir(s.Logging.Dir),
		RetentionDays: s.Logging.RetentionDays,
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Format = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Level = v
	}
	cfg.Output, _ = cmd.Flags().GetString("log-output")

	lf, err := logging.NewLogFile(cfg)
	if err != nil {
		return nil, err
	}
	activeLogFile = lf
	_ = logging.CleanupOldLogFiles(cfg.Dir, cfg.RetentionDays)

	w := lf.Writer()
	if lf.Path != "" {
		// Keep the terminal informed while the file captures the full run.
		w = io.MultiWriter(os.Stderr, lf.Writer())
	}
	return logging.NewWithWriter(cfg.Format, logging.ParseLevel(cfg.Level), w)
}
