// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for textdiff.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - DiffConfig: default comparison options
//   - UIConfig: terminal rendering settings
//   - ServerConfig: HTTP service settings
//   - LimitsConfig: bounds on comparison size
//   - StorageConfig: comparison history settings
//   - LogConfig: logger level and encoding
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (TEXTDIFF_*)
//   - ~/.textdiff/config.toml
//   - ~/.textdiff/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	ctx := cfg.Diff.Context
package config
