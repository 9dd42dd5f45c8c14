package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogging configures the shared logrus logger. Release deployments
// (GIN_MODE=release) log JSON for ingestion; anything else keeps the
// human-readable text formatter.
func InitLogging() {
	logrus.SetOutput(os.Stdout)

	if os.Getenv("GIN_MODE") == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
		return
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
}
