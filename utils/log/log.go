// Package log holds the process-wide logrus logger. Diagnostic output goes to
// stderr so that it never mixes with command output on stdout.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const DefaultLevel = logrus.WarnLevel

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(DefaultLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return l
}

// Logger returns the shared logger.
func Logger() *logrus.Logger {
	return logger
}

// SetLevel parses a level name ("debug", "info", ...) and applies it.
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output.
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
}

func WithField(key string, value any) *logrus.Entry {
	return logger.WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}
