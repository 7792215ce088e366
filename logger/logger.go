// Package logger wraps logrus with a service-tagged entry so every
// line carries the component that produced it.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Entry
}

// New builds a logger for a named component. level is a logrus level
// string ("debug", "info", ...); format is "json" or "text".
func New(service, level, format string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &Logger{Entry: l.WithField("service", service)}
}

// Named returns a child logger tagged with a sub-component name.
func (l *Logger) Named(service string) *Logger {
	return &Logger{Entry: l.WithField("service", service)}
}
