// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logFileMaxSizeMB and logFileMaxBackups bound the rotating log file this
// package writes to when NewFileLogger is used, the same defaults as the
// surrounding monorepo's other components.
const (
	logFileMaxSizeMB  = 5
	logFileMaxBackups = 3
	logFileMaxAgeDays = 30
)

// NewFileLogger builds a zap.Logger that writes structured, rotating logs
// to path. It is a convenience constructor for WithLogger; callers that
// already have a *zap.Logger from elsewhere in their application should
// pass it to WithLogger directly instead.
func NewFileLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return nil, errors.Wrapf(ErrIO, "log file path must not be empty")
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	return zap.New(core), nil
}
