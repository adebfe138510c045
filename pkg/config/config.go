// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	API       APIConfig       `koanf:"api"`
	Auth      AuthConfig      `koanf:"auth"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type APIConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

type AuthConfig struct {
	Email    string `koanf:"email"`
	APIKey   string `koanf:"api_key"`
	Password string `koanf:"password"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

type TelemetryConfig struct {
	Exporter     string `koanf:"exporter"` // none, stdout, otlp
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	OTLPInsecure bool   `koanf:"otlp_insecure"`
}

// Global k instance
var k = koanf.New(".")

func Load(path string) (*Config, error) {
	// Defaults
	k.Set("api.base_url", "https://astrasync.ai/api/v1")
	k.Set("api.timeout", "30s")
	k.Set("log.level", "info")
	k.Set("log.format", "text")
	k.Set("telemetry.exporter", "none")
	k.Set("telemetry.otlp_endpoint", "localhost:4317")
	k.Set("telemetry.otlp_insecure", true)

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// 2. Load from ENV (ASTRASYNC_API_BASE_URL -> api.base_url)
	if err := k.Load(env.Provider("ASTRASYNC_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "ASTRASYNC_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
