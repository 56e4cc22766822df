// ABOUTME: Logger construction for the creatine toolkit.
// ABOUTME: Returns explicitly constructed logrus instances; no package-level singleton.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New constructs a logger writing to out at the named level. Unknown levels
// fall back to info. Callers pass the instance to each component; there is
// no process-wide logger.
func New(out io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FullTimestamp:   true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

// Discard constructs a logger that drops everything; used in tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
