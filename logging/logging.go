// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package logging wraps a logrus logger with the small, fixed surface the
// compiler and CLI actually call: leveled messages, such as the Debug-level
// rebinding note the block compiler's Pass 1 emits (§4.6).
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Level mirrors the subset of logrus levels the compiler cares about.
type Level uint32

const (
	Error Level = iota
	Warn
	Info
	Debug
)

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	case Info:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Logger is the logging interface; StandardLogger is the logrus-backed
// implementation and NoOpLogger the discarding one, which can stand in
// during tests.
type Logger interface {
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Warnf(format string, a ...interface{})
	Errorf(format string, a ...interface{})
	WithFields(fields map[string]interface{}) Logger
	SetLevel(Level)
	GetLevel() Level
}

// StandardLogger is the default Logger, backed by logrus.
type StandardLogger struct {
	entry *logrus.Entry
}

// New returns a StandardLogger writing to stderr with a compact text
// formatter, matching the CLI's own plain-text error output.
func New() *StandardLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&prettyFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return &StandardLogger{entry: logrus.NewEntry(l)}
}

var std = New()

// Get returns the package-level logger used by the CLI and compiler when
// no caller-supplied Logger is threaded through.
func Get() *StandardLogger { return std }

func (s *StandardLogger) Debugf(format string, a ...interface{}) { s.entry.Debugf(format, a...) }
func (s *StandardLogger) Infof(format string, a ...interface{})  { s.entry.Infof(format, a...) }
func (s *StandardLogger) Warnf(format string, a ...interface{})  { s.entry.Warnf(format, a...) }
func (s *StandardLogger) Errorf(format string, a ...interface{}) { s.entry.Errorf(format, a...) }

func (s *StandardLogger) WithFields(fields map[string]interface{}) Logger {
	return &StandardLogger{entry: s.entry.WithFields(fields)}
}

func (s *StandardLogger) SetLevel(l Level) { s.entry.Logger.SetLevel(l.logrusLevel()) }

func (s *StandardLogger) GetLevel() Level {
	switch s.entry.Logger.GetLevel() {
	case logrus.ErrorLevel:
		return Error
	case logrus.WarnLevel:
		return Warn
	case logrus.InfoLevel:
		return Info
	default:
		return Debug
	}
}

// NoOpLogger discards everything; useful for library callers who do not
// want compiler diagnostics going to stderr.
type NoOpLogger struct{}

func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (*NoOpLogger) Debugf(string, ...interface{}) {}
func (*NoOpLogger) Infof(string, ...interface{})  {}
func (*NoOpLogger) Warnf(string, ...interface{})  {}
func (*NoOpLogger) Errorf(string, ...interface{}) {}
func (n *NoOpLogger) WithFields(map[string]interface{}) Logger { return n }
func (*NoOpLogger) SetLevel(Level)                             {}
func (*NoOpLogger) GetLevel() Level                            { return Error }

// prettyFormatter renders a log entry as "level: message  key=value ...",
// a compact single line rather than logrus's default field-heavy output.
type prettyFormatter struct{}

func (f *prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	buf := []byte(e.Level.String() + ": " + e.Message)
	for k, v := range e.Data {
		buf = append(buf, []byte("  "+k+"=")...)
		buf = append(buf, []byte(formatField(v))...)
	}
	buf = append(buf, '\n')
	return buf, nil
}

func formatField(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return logrus.Fields{"v": v}.String()
}
