package obs

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// SetupLogger configures the global logrus logger for key=value output at
// the given level. Unknown levels fall back to info.
func SetupLogger(level string) {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
