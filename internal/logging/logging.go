// Package logging builds the zap logger used across finratios.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and encoding of the logger.
type Options struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "console" or "json"
}

// New creates a logger writing to stderr so stdout stays the human report.
func New(opts Options) (*zap.Logger, error) {
	return NewWithWriter(opts, os.Stderr)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(opts Options, w io.Writer) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(consoleEncoderConfig())
	case "json":
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core), nil
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return level, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     shortTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

func shortTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}
