// Package logger is a small leveled logging facade used across the module.
//
// It exists so that library packages can emit trace/debug output without
// carrying a logger through every call; hosts configure the level once at
// startup.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger().
	Level(zerolog.InfoLevel)

// SetLevel sets the minimum level of messages that will be written.
func SetLevel(level zerolog.Level) {
	log = log.Level(level)
}

// SetVerbose is shorthand for enabling debug output.
func SetVerbose() {
	SetLevel(zerolog.DebugLevel)
}

func Tracef(format string, args ...interface{}) {
	log.Trace().Msgf(format, args...)
}

func Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

func Infof(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}
