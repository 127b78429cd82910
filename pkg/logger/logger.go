// Package logger provides the process-wide structured logger singleton.
//
// Initialize must be called once, early, from the CLI root command's
// PersistentPreRun; every other function in this package reads the
// singleton it installs.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	mu  sync.RWMutex
	log *zap.SugaredLogger

	// Log is the package-level sugared logger, for callers that prefer the
	// logger.Log.Infof(...) form over the package functions below.
	Log *zap.SugaredLogger
)

func init() {
	// A usable logger exists even if Initialize is never called (e.g. in
	// unit tests of packages that log incidentally).
	l, _ := zap.NewProduction()
	setLogger(l.Sugar())
}

func setLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
	Log = l
}

// Initialize installs the process logger. Debug mode (env JJZ_DEBUG=1 or the
// debug bool) switches to a development console encoder at debug level;
// otherwise a production JSON encoder writing to stderr is installed so
// stdout stays reserved for --json and TSV command output.
func Initialize() {
	InitializeWithDebug(os.Getenv("JJZ_DEBUG") == "1" || os.Getenv("JJZ_DEBUG") == "true")
}

// InitializeWithDebug installs the process logger with an explicit debug flag.
func InitializeWithDebug(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		// Fall back to a minimal logger rather than leaving the singleton nil.
		l, _ = zap.NewProduction()
	}
	setLogger(l.Sugar())
}

// Get returns the current singleton logger.
func Get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Sync flushes any buffered log entries. Safe to call even when the
// underlying output is a non-syncable stream (the error is swallowed, as is
// conventional for zap's Sync on stderr/stdout).
func Sync() {
	_ = Get().Sync()
}

// Debug logs at debug level.
func Debug(args ...interface{}) { Get().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(template string, args ...interface{}) { Get().Debugf(template, args...) }

// Debugw logs a message with structured key/value pairs at debug level.
func Debugw(msg string, kv ...interface{}) { Get().Debugw(msg, kv...) }

// Info logs at info level.
func Info(args ...interface{}) { Get().Info(args...) }

// Infof logs a formatted message at info level.
func Infof(template string, args ...interface{}) { Get().Infof(template, args...) }

// Infow logs a message with structured key/value pairs at info level.
func Infow(msg string, kv ...interface{}) { Get().Infow(msg, kv...) }

// Warn logs at warn level.
func Warn(args ...interface{}) { Get().Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(template string, args ...interface{}) { Get().Warnf(template, args...) }

// Warnw logs a message with structured key/value pairs at warn level.
func Warnw(msg string, kv ...interface{}) { Get().Warnw(msg, kv...) }

// Error logs at error level.
func Error(args ...interface{}) { Get().Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(template string, args ...interface{}) { Get().Errorf(template, args...) }

// Errorw logs a message with structured key/value pairs at error level.
func Errorw(msg string, kv ...interface{}) { Get().Errorw(msg, kv...) }
