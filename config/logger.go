package config

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// NewLogger builds a logger from the log section. Colours are only used when out is a terminal.
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.Out = out

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q %w", c.Log.Level, err)
	}

	logger.Level = level

	switch c.Log.Format {
	case LFJSON:
		logger.Formatter = &logrus.JSONFormatter{}
	case LFText, "":
		logger.Formatter = &logrus.TextFormatter{
			ForceColors:   isTerminal(out),
			DisableColors: !isTerminal(out),
			FullTimestamp: true,
		}
	default:
		return nil, fmt.Errorf("unsupported log format %q", c.Log.Format)
	}

	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
