// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a json logger writing to stdout, the level is parsed from the
// LOG_LEVEL string and defaults to error when it can't be understood
func NewLogger(l string) *Logger {
	var lvl string

	switch strings.ToLower(l) {
	case "debug", "info", "warn", "error":
		lvl = strings.ToLower(l)
	default:
		lvl = "error"
	}

	rawLevel := zap.NewAtomicLevel()
	if err := rawLevel.UnmarshalText([]byte(lvl)); err != nil {
		rawLevel = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}

	c := zap.NewProductionConfig()
	c.Level = rawLevel
	c.EncoderConfig.TimeKey = "@timestamp"
	c.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	z, err := c.Build()
	if err != nil {
		panic(err)
	}

	logger := new(Logger)
	logger.SugaredLogger = z.Sugar()
	logger.security = newSecurityLogger(z.With(zap.String("type", "security")))

	logger.Debugf("Logging level set to %s", lvl)

	return logger
}
