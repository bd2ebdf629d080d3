package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLogLevel keeps routine output quiet in the terminal.
const DefaultLogLevel = "warn"

// NewLogger returns a text logger on stderr at the named level.
func NewLogger(level string) (*logrus.Logger, error) {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLogLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger, nil
}
