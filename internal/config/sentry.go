package config

import (
	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// ConfigureSentry configures the sentry DSN. It reports whether events will
// be sent.
func ConfigureSentry(version string, logging Logging) bool {
	if logging.SentryDSN == "" {
		return false
	}

	log.Debug("Using sentry logging")

	opts := sentry.ClientOptions{
		Dsn:         logging.SentryDSN,
		Environment: logging.SentryEnvironment,
	}
	if version != "" {
		opts.Release = "v" + version
	}

	if err := sentry.Init(opts); err != nil {
		log.WithError(err).Warn("Unable to initialize sentry client")
		return false
	}

	return true
}
