// Package logger provides structured, leveled logging on top of zap,
// with errx-aware error expansion and context metadata extraction.
package logger

import (
	"github.com/code19m/errx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Reserved entry keys emitted by the underlying zap encoder.
const (
	messageKey = "msg"
	levelKey   = "level"
	nameKey    = "logger"
	timeKey    = "time"

	encPretty  = "pretty"
	levelDebug = "debug"
)

// Config controls the level and encoding of emitted log entries.
type Config struct {
	// Level is the minimum level to emit: "debug", "info", "warn" or
	// "error". Defaults to "debug".
	Level string `yaml:"level" validate:"oneof=debug info warn error" default:"debug"`

	// Encoding selects the output format.
	//
	// "pretty" renders colorized, indented entries for terminals during
	// development. "json" produces compact single-line JSON suited for
	// production log pipelines. Default is "pretty".
	Encoding string `yaml:"encoding" validate:"oneof=json pretty" default:"pretty"`

	// Disable swaps the logger for a no-op implementation.
	// Useful in tests. Default is false.
	Disable bool `yaml:"disable" default:"false"`
}

// buildZapConfig translates Config into a zap.Config.
func (c Config) buildZapConfig() (*zap.Config, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, errx.Wrap(err)
	}

	return &zap.Config{
		Level:            level,
		Encoding:         c.Encoding,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     messageKey,
			LevelKey:       levelKey,
			NameKey:        nameKey,
			TimeKey:        timeKey,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
	}, nil
}
