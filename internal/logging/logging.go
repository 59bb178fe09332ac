// Package logging builds the logrus logger shared by every pipeline stage.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Levels lists the accepted --log-level values.
var Levels = []string{"debug", "info", "warn", "error"}

// Formats lists the accepted --log-format values.
var Formats = []string{"text", "json"}

// New creates an isolated logger. It does not touch the logrus standard
// logger. Unknown levels fall back to info and unknown formats to text.
func New(levelStr, formatStr string, out io.Writer, noColor bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(formatStr) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:    noColor,
			DisableTimestamp: true,
		})
	}
	return logger
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
