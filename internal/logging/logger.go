// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _ LoggerInterface = (*Logger)(nil)

// Logger is the application logger, a zap SugaredLogger with an attached
// security audit logger.
type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a JSON logger writing to stdout at the given level.
// Invalid levels fall back to error.
func NewLogger(l string) *Logger {
	return NewLoggerWithFile(l, "")
}

// NewLoggerWithFile behaves like NewLogger, additionally teeing output to a
// size-rotated file when path is not empty.
func NewLoggerWithFile(l, path string) *Logger {
	level := parseLevel(l)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "@timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	if path != "" {
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	base := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	logger := new(Logger)
	logger.SugaredLogger = base.Sugar()
	logger.security = &SecurityLogger{l: base.Named("security").With(zap.String("type", "security"))}

	logger.Debugf("logger initialized with level %s", level.String())

	return logger
}

func parseLevel(l string) zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(strings.ToLower(l))
	if err != nil {
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return level
}
