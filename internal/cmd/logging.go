package cmd

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logLevelEnv overrides the default level when --verbose is not given.
const logLevelEnv = "CMDLENS_LOG_LEVEL"

// newLogger builds the console logger used by every command.
// Level: --verbose (debug), else CMDLENS_LOG_LEVEL, else warn.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if v := os.Getenv(logLevelEnv); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: noColor}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
