package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init so that packages
// and tests can log without bootstrapping; Init applies the environment settings.
var Log = logrus.New()

// Init configures the global logger from the environment.
// Call it once from main.
//
//	LOG_LEVEL  - logrus level name, "info" by default ("debug" dumps search internals)
//	LOG_FORMAT - "json" for log collectors, anything else for colored text
func Init() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence routes the logger to io.Discard. Used by tests that exercise noisy paths.
func Silence() {
	Log.SetOutput(io.Discard)
}
