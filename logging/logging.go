// Package logging builds the logrus logger shared by the server components.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to stdout at the given level.
func New(level logrus.Level) *logrus.Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(level logrus.Level, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return log
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	return NewWithOutput(logrus.PanicLevel, io.Discard)
}
