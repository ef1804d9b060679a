package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Location != "https://localhost/" {
			t.Errorf("Load() location = %v, want https://localhost/", cfg.Location)
		}
	})

	t.Run("env var override", func(t *testing.T) {
		t.Setenv("PEASY_WEBSITE_ID", "site-env")
		t.Setenv("PEASY_LOCATION", "https://example.com/")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.WebsiteID != "site-env" {
			t.Errorf("Load() website_id = %v, want site-env", cfg.WebsiteID)
		}
		if cfg.Location != "https://example.com/" {
			t.Errorf("Load() location = %v, want https://example.com/", cfg.Location)
		}
	})

	t.Run("yaml file with env precedence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "peasy.yaml")
		data := []byte("website_id: site-file\ningest_url: https://collect.example.net\nmask_patterns:\n  - /user/*\n")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("PEASY_WEBSITE_ID", "site-env")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.WebsiteID != "site-env" {
			t.Errorf("Load() website_id = %v, want env to win", cfg.WebsiteID)
		}
		if cfg.IngestURL != "https://collect.example.net" {
			t.Errorf("Load() ingest_url = %v", cfg.IngestURL)
		}
		if len(cfg.MaskPatterns) != 1 || cfg.MaskPatterns[0] != "/user/*" {
			t.Errorf("Load() mask_patterns = %v", cfg.MaskPatterns)
		}
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	})
}
