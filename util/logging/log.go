package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// EnvSmamDebug raises the log level of every logger to debug when set
// to any non-empty value.
const EnvSmamDebug = "SMAM_DEBUG"

var defaultLevel = log.InfoLevel

func init() {
	if os.Getenv(EnvSmamDebug) != "" {
		defaultLevel = log.DebugLevel
	}
}

// GetLogger returns a logger for the given module name. Loggers write
// to stderr so that command output on stdout stays clean for shell
// consumption.
func GetLogger(module string) *log.Logger {
	lg := log.New(os.Stderr)
	lg.SetLevel(defaultLevel)
	if module != "" {
		lg.SetPrefix(module)
	}
	if defaultLevel == log.DebugLevel {
		lg.SetTimeFormat(time.TimeOnly)
		lg.SetReportTimestamp(true)
		lg.SetReportCaller(true)
	}
	return lg
}
