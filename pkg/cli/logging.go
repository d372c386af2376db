package cli

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger initializes the application logger. Debug mode logs everything
// as colored text; otherwise JSON at the given level ("info" when empty).
func NewLogger(out io.Writer, debug bool, level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("debug logging enabled")
		return logger, nil
	}

	lvl := logrus.InfoLevel
	if level != "" {
		var err error
		if lvl, err = logrus.ParseLevel(level); err != nil {
			return nil, err
		}
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger, nil
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
