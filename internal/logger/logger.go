// Package logger configures the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"kycportal/internal/config"
)

// Setup applies cfg to the standard logrus logger. Format "json" selects
// structured output; anything else prints human-readable lines.
func Setup(cfg config.LogConfig) error {
	return configure(log.StandardLogger(), cfg, os.Stdout)
}

func configure(l *log.Logger, cfg config.LogConfig, out io.Writer) error {
	level, err := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return fmt.Errorf("logger.Setup: couldn't parse log level: %w", err)
	}
	l.SetLevel(level)
	l.SetOutput(out)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&log.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	default:
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
