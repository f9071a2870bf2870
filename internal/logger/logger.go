package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const name = "skill-heatmap"

// New builds the application logger. Logs go to stderr so that rendered
// heat maps on stdout stay clean when piped.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:          "console",
		Level:             zap.NewAtomicLevelAt(level),
		DisableStacktrace: !debug,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig:     encoderConfig(json),
	}
	if json {
		cfg.Encoding = "json"
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Named(name), nil
}

func encoderConfig(json bool) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "level",
		TimeKey:       "time",
		NameKey:       "logger",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",

		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	if json {
		enc.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc.EncodeTime = zapcore.RFC3339TimeEncoder
		enc.EncodeDuration = zapcore.MillisDurationEncoder
	}

	return enc
}

// TruncateForLog trims s and cuts it to limit runes, marking the cut with "...".
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
