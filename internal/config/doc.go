// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for nutrirag.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Backend URL, retrieval depth and request timeout
//   - StorageConfig: Where the clinical profile is kept
//   - UIConfig: Theme and layout of the terminal UI
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (NUTRIRAG_*, VITE_API_URL), including a local .env
//   - ~/.nutrirag/config.toml
//   - ~/.nutrirag/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil && cfg == nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	client := backend.NewClientWithConfig(&backend.ClientConfig{
//	    BaseURL: cfg.API.BaseURL,
//	    Timeout: cfg.API.Timeout.Duration,
//	})
package config
