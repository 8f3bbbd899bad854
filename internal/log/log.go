package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	defaultLogger = logrus.StandardLogger()

	// Loggers is convenient when you want to apply configuration to all
	// loggers
	Loggers = []*logrus.Logger{defaultLogger}
)

func init() {
	// Standard output carries command output, logs go to stderr.
	for _, l := range Loggers {
		l.Out = os.Stderr
	}
}

// Configure sets the format and level on all loggers.
func Configure(format string, level string) {
	switch format {
	case "json":
		for _, l := range Loggers {
			l.Formatter = &logrus.JSONFormatter{}
		}
	case "text":
		for _, l := range Loggers {
			l.Formatter = &logrus.TextFormatter{}
		}
	case "":
		// Just stick with the default
	default:
		logrus.WithField("format", format).Fatal("invalid logger format")
	}

	logrusLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrusLevel = logrus.InfoLevel
	}

	for _, l := range Loggers {
		l.SetLevel(logrusLevel)
	}
}

// Default is the default logrus logger
func Default() *logrus.Entry { return defaultLogger.WithField("pid", os.Getpid()) }
