// Package config loads CLI configuration from an optional YAML file and
// PEASY_-prefixed environment variables, env taking precedence.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	WebsiteID         string   `koanf:"website_id"`
	IngestURL         string   `koanf:"ingest_url"`
	Location          string   `koanf:"location"`
	DBPath            string   `koanf:"db_path"`
	MaskPatterns      []string `koanf:"mask_patterns"`
	SkipPatterns      []string `koanf:"skip_patterns"`
	IgnoreQueryParams bool     `koanf:"ignore_query_params"`
}

// Load reads path (when it exists) and then overlays environment variables:
// PEASY_WEBSITE_ID maps to website_id, and so on.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider("PEASY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PEASY_"))
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("location") {
		k.Set("location", "https://localhost/")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
