// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zap loggers used across textdiff.
//
// Loggers are created once at the command boundary and passed down
// explicitly. Library packages never create their own; tests use zap.NewNop.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/textdiff/internal/config"
)

// ParseLevel converts a config level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New builds a logger writing to stderr. verbose forces debug level.
func New(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	zcfg, err := buildConfig(cfg, verbose)
	if err != nil {
		return nil, err
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewWithWriter builds a logger like New but writes to w.
func NewWithWriter(cfg config.LogConfig, verbose bool, w zapcore.WriteSyncer) (*zap.Logger, error) {
	zcfg, err := buildConfig(cfg, verbose)
	if err != nil {
		return nil, err
	}

	var enc zapcore.Encoder
	if zcfg.Encoding == "json" {
		enc = zapcore.NewJSONEncoder(zcfg.EncoderConfig)
	} else {
		enc = zapcore.NewConsoleEncoder(zcfg.EncoderConfig)
	}
	return zap.New(zapcore.NewCore(enc, w, zcfg.Level)), nil
}

func buildConfig(cfg config.LogConfig, verbose bool) (zap.Config, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Sampling drops repeated request logs under load.
	zcfg.Sampling = nil

	switch strings.ToLower(cfg.Format) {
	case "json":
		zcfg.Encoding = "json"
	default:
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zcfg, nil
}
