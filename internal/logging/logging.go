// Package logging builds the zap loggers used by the HTTP server.
package logging

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings accepted by New.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Config selects the level and encoding of a logger.
type Config struct {
	Level    string // debug, info, warn, error; unknown values mean info
	Encoding string // console or json; empty means console
	Service  string // optional logger name
}

// New returns a logger writing to w. A nil w discards output.
func New(cfg Config, w io.Writer) *zap.Logger {
	if w == nil {
		return zap.NewNop()
	}

	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	if strings.ToLower(cfg.Encoding) == EncodingJSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.TimeKey = "time"
		encCfg.MessageKey = "msg"
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	logger := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
	if name := strings.TrimSpace(cfg.Service); name != "" {
		logger = logger.Named(name)
	}
	return logger
}
