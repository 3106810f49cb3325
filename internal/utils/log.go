package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// InitLogger configures the debug logger. Output goes to stderr so it never
// mixes with command output on stdout.
func InitLogger(debug, colors bool) zerolog.Logger {
	return initLogger(os.Stderr, debug, colors)
}

func initLogger(out io.Writer, debug, colors bool) zerolog.Logger {
	if !debug {
		logger = zerolog.Nop()
		return logger
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !colors,
	}
	logger = zerolog.New(writer).With().Timestamp().Str("app", "contentful").Logger().Level(zerolog.DebugLevel)
	return logger
}

// Logger returns the configured debug logger
func Logger() *zerolog.Logger {
	return &logger
}
