package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/oauth2"

	"whatsapp-media-bridge/internal/config"
	"whatsapp-media-bridge/internal/gauth"
)

type commandContext struct {
	logFlag *bool

	once   sync.Once
	config *config.Config
	logger *zap.Logger
	err    error
}

func newCommandContext(logFlag *bool) *commandContext {
	return &commandContext{logFlag: logFlag}
}

// setup loads .env, the configuration and the logger once per process.
func (c *commandContext) setup() (*config.Config, *zap.Logger, error) {
	c.once.Do(func() {
		config.LoadEnv()
		logger, err := newLogger(c.logFlag != nil && *c.logFlag)
		if err != nil {
			c.err = err
			return
		}
		cfg, err := config.FromEnv()
		if err != nil {
			c.err = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.logger, c.err
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// googleTokenSource builds a service-account token source and checks it can
// issue a token.
func (c *commandContext) googleTokenSource(ctx context.Context, cfg *config.Config, scopes ...string) (oauth2.TokenSource, error) {
	ts, err := gauth.TokenSource(ctx, cfg.Google.Credentials, scopes...)
	if err != nil {
		return nil, err
	}
	if err := gauth.Authorize(ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// newLogger writes to stdout and, when toFile is set, also to logs/debug.log
// as JSON.
func newLogger(toFile bool) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.DebugLevel)

	if toFile {
		if err := os.MkdirAll("logs", 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
		logFile, err := os.OpenFile("logs/debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
		core = zapcore.NewTee(
			core,
			zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), zapcore.DebugLevel),
		)
	}

	return zap.New(core, zap.AddCaller()), nil
}
