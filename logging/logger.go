package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	// Packages log before main bootstraps; tests never call BootstrapLogger.
	Log = logrus.New()
}

func BootstrapLogger(level string) {
	Log = &logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			DisableColors:   false,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		},
		Level:    logrus.DebugLevel,
		ExitFunc: os.Exit,
	}
	Log.SetReportCaller(true)

	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("unknown log level %q, keeping debug", level)
		return
	}
	Log.SetLevel(lvl)
}
