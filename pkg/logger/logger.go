package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GlebRadaev/creditmeter/internal/config"
)

const (
	timeLayout = "15:04:05 02-01-2006"
	name       = "creditmeter"
)

var logLvlMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// New builds the console logger used across the service. Ledger and metering
// code log through zap.L(), so callers normally want InitLogger instead.
func New(level string) (*zap.Logger, error) {
	lvl, ok := logLvlMap[level]
	if !ok {
		return nil, fmt.Errorf("unsupported log lvl: %s", level)
	}

	encodeConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "console",
		EncoderConfig:    encodeConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to create zap logger, error: %w", err)
	}
	return logger.Named(name), nil
}

func InitLogger(conf *config.Config) error {
	logger, err := New(conf.LogLvl)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
