// Package vbslogging bridges logrus to the logr.Logger interface threaded
// through every component, the same bridge cmd/analyzer/main.go builds for
// its own CLI.
package vbslogging

import (
	"os"

	"github.com/bombsimon/logrusr/v3"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

// New builds a logr.Logger backed by logrus, writing to stderr so stdout
// stays free for the JSON-RPC stream. level follows logrus.Level values
// (0 Panic .. 6 Trace); verbose callers typically pass 4 (Info) or higher.
func New(level int) logr.Logger {
	logrusLog := logrus.New()
	logrusLog.SetOutput(os.Stderr)
	logrusLog.SetFormatter(&logrus.TextFormatter{})
	logrusLog.SetLevel(logrus.Level(level))

	return logrusr.New(logrusLog)
}
