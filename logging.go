package vkt

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package wide logger. Diagnostics from the pool allocators and
// the debug report callback go through it; applications can silence or retune
// it with SetLogger.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "vkt",
})

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// SetLogLevel adjusts the level of the package logger. The default level
// hides debug output such as per-allocation pool details.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}
