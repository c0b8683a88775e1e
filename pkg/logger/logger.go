package logger

import (
	"context"
	"errors"

	"github.com/code19m/errx"
	"go.uber.org/zap"

	"github.com/rise-and-shine/filedrop/pkg/meta"
)

// Logger is the logging interface shared across the codebase.
type Logger interface {
	// Leveled logging. The Fatal variants call os.Exit(1) after writing.
	Debug(msg any)
	Info(msg any)
	Warn(msg any)
	Error(msg any)
	Fatal(msg any)

	// Printf-style variants of the above.
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)

	// Error logging that expands errx metadata (code, type, trace, fields,
	// details) into structured fields.
	Warnx(err error)
	Errorx(err error)
	Fatalx(err error)

	// With returns a logger that includes the given key-value pairs in every
	// subsequent entry. WithContext does the same with the request metadata
	// stored in ctx. Named adds a sub-scope to the logger's name.
	With(keysAndValues ...any) Logger
	WithContext(ctx context.Context) Logger
	Named(name string) Logger

	// Sync flushes buffered entries. Call it on shutdown.
	Sync() error
}

// logger implements Logger on top of zap's SugaredLogger.
type logger struct {
	*zap.SugaredLogger
}

// New creates a Logger from the provided configuration.
func New(cfg Config) (Logger, error) {
	return newLogger(cfg)
}

func newLogger(cfg Config) (Logger, error) {
	if cfg.Disable {
		return &logger{zap.NewNop().Sugar()}, nil
	}

	zapCfg, err := cfg.buildZapConfig()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if cfg.Encoding == encPretty {
		return &logger{newPrettyLogger(zapCfg).Sugar()}, nil
	}

	zl, err := zapCfg.Build()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &logger{zl.Sugar()}, nil
}

// errxKV returns the structured fields carried by an errx error,
// or nil when err is not one.
func errxKV(err error) []any {
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return nil
	}
	return []any{
		"error_code", e.Code(),
		"error_type", e.Type().String(),
		"error_trace", e.Trace(),
		"error_fields", e.Fields(),
		"error_details", e.Details(),
	}
}

func (l *logger) Warnx(err error) {
	l.With(errxKV(err)...).Warn(err.Error())
}

func (l *logger) Errorx(err error) {
	l.With(errxKV(err)...).Error(err.Error())
}

func (l *logger) Fatalx(err error) {
	l.With(errxKV(err)...).Fatal(err.Error())
}

func (l *logger) With(keysAndValues ...any) Logger {
	if len(keysAndValues) == 0 {
		return l
	}
	return &logger{l.SugaredLogger.With(keysAndValues...)}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	md := meta.ExtractMetaFromContext(ctx)
	if len(md) == 0 {
		return l
	}

	var kv []any
	for k, v := range md {
		kv = append(kv, string(k), v)
	}
	return l.With(kv...)
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

func (l *logger) Debug(msg any) { l.SugaredLogger.Debug(msg) }
func (l *logger) Info(msg any)  { l.SugaredLogger.Info(msg) }
func (l *logger) Warn(msg any)  { l.SugaredLogger.Warn(msg) }
func (l *logger) Error(msg any) { l.SugaredLogger.Error(msg) }
func (l *logger) Fatal(msg any) { l.SugaredLogger.Fatal(msg) }
