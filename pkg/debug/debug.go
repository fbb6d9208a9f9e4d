// Package debug provides conditional debug logging for sheetmon.
//
// Debug logging is enabled by setting the SHEETMON_DEBUG environment variable:
//
//	SHEETMON_DEBUG=1 sheetmon
//
// Messages go to stderr unless SHEETMON_DEBUG_FILE names a file, which is
// the useful setting while the TUI owns the terminal:
//
//	SHEETMON_DEBUG=1 SHEETMON_DEBUG_FILE=/tmp/sheetmon.log sheetmon
//
// When disabled (default), all debug functions are no-ops.
package debug

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zap.NewNop().Sugar()
)

func init() {
	if os.Getenv("SHEETMON_DEBUG") != "" {
		SetEnabled(true)
	}
}

// newLogger builds a development zap logger writing to path ("stderr" if empty).
func newLogger(path string) *zap.SugaredLogger {
	if path == "" {
		path = "stderr"
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Named("sheetmon").Sugar()
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e {
		logger = newLogger(os.Getenv("SHEETMON_DEBUG_FILE"))
	} else {
		_ = logger.Sync()
		logger = zap.NewNop().Sugar()
	}
}

// SetLogger replaces the underlying logger. Tests use this with an
// observer core; passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = zap.NewNop().Sugar()
		enabled = false
		return
	}
	logger = l.Sugar()
	enabled = true
}

// Logger returns the current sugared logger (a no-op logger when disabled).
func Logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !Enabled() {
		return
	}
	Logger().Debugf(format, args...)
}

// Logw writes a structured debug message with key/value pairs.
func Logw(msg string, keysAndValues ...any) {
	if !Enabled() {
		return
	}
	Logger().Debugw(msg, keysAndValues...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !Enabled() {
		return
	}
	Logger().Debugw("timing", "op", name, "took", d)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// Sync flushes buffered log entries. Call before exit.
func Sync() {
	_ = Logger().Sync()
}
