package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger returns the diagnostics logger: a console on stderr with -v, silent otherwise.
func logger() zerolog.Logger {
	if !*Verbose {
		return zerolog.Nop()
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}
