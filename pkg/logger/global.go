package logger

import (
	"context"
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // package-level singleton backing the global logging functions
var (
	globalStore  atomic.Value // holds a Logger
	bindOnce     sync.Once    // guards SetGlobal
	fallbackOnce sync.Once    // guards the lazily built default
)

// SetGlobal installs the global logger used by the package-level functions.
// Call it once during application startup, before any logging happens.
// A second call panics.
func SetGlobal(cfg Config) {
	bound := false
	bindOnce.Do(func() {
		// Burn the fallback so a later getGlobal cannot replace this logger.
		fallbackOnce.Do(func() {})

		l, err := newLogger(cfg)
		if err != nil {
			panic("[logger]: global logger init failed: " + err.Error())
		}
		globalStore.Store(l)
		bound = true
	})
	if !bound {
		panic("[logger]: SetGlobal called twice")
	}
}

// getGlobal returns the installed global logger, building a default
// pretty/debug logger on first use when SetGlobal was never called.
func getGlobal() Logger {
	if v := globalStore.Load(); v != nil {
		return mustLogger(v)
	}

	fallbackOnce.Do(func() {
		l, err := newLogger(Config{Level: levelDebug, Encoding: encPretty})
		if err != nil {
			panic("[logger]: default logger init failed: " + err.Error())
		}
		globalStore.Store(l)
	})

	return mustLogger(globalStore.Load())
}

func mustLogger(v any) Logger {
	l, ok := v.(Logger)
	if !ok {
		panic("[logger]: global store holds an invalid type")
	}
	return l
}

// Debug logs a message at debug level.
func Debug(msg any) { getGlobal().Debug(msg) }

// Info logs a message at info level.
func Info(msg any) { getGlobal().Info(msg) }

// Warn logs a message at warn level.
func Warn(msg any) { getGlobal().Warn(msg) }

// Error logs a message at error level.
func Error(msg any) { getGlobal().Error(msg) }

// Fatal logs a message at fatal level, then calls os.Exit(1).
func Fatal(msg any) { getGlobal().Fatal(msg) }

// Debugf logs a printf-formatted message at debug level.
func Debugf(format string, args ...any) { getGlobal().Debugf(format, args...) }

// Infof logs a printf-formatted message at info level.
func Infof(format string, args ...any) { getGlobal().Infof(format, args...) }

// Warnf logs a printf-formatted message at warn level.
func Warnf(format string, args ...any) { getGlobal().Warnf(format, args...) }

// Errorf logs a printf-formatted message at error level.
func Errorf(format string, args ...any) { getGlobal().Errorf(format, args...) }

// Fatalf logs a printf-formatted message at fatal level, then calls os.Exit(1).
func Fatalf(format string, args ...any) { getGlobal().Fatalf(format, args...) }

// Warnx logs err at warn level, expanding errx metadata.
func Warnx(err error) { getGlobal().Warnx(err) }

// Errorx logs err at error level, expanding errx metadata.
func Errorx(err error) { getGlobal().Errorx(err) }

// Fatalx logs err at fatal level, expanding errx metadata, then calls os.Exit(1).
func Fatalx(err error) { getGlobal().Fatalx(err) }

// With returns a logger derived from the global one that includes the
// given key-value pairs in every entry.
func With(keysAndValues ...any) Logger { return getGlobal().With(keysAndValues...) }

// WithContext returns a logger derived from the global one, enriched with
// the request metadata stored in ctx.
func WithContext(ctx context.Context) Logger { return getGlobal().WithContext(ctx) }

// Named adds a sub-scope to the global logger's name.
func Named(name string) Logger { return getGlobal().Named(name) }

// Sync flushes buffered entries from the global logger.
// Intended for use on application shutdown.
func Sync() error { return getGlobal().Sync() }
