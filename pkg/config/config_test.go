package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home) // windows
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OCR.Language != "spa" {
		t.Errorf("Language = %q, want spa", cfg.OCR.Language)
	}
	if cfg.OCR.OptimizeLevel != 1 {
		t.Errorf("OptimizeLevel = %d, want 1", cfg.OCR.OptimizeLevel)
	}
	if !cfg.Processing.CreateBackups {
		t.Error("CreateBackups should default on")
	}
	if cfg.Processing.MaxFileSizeMB != 100 {
		t.Errorf("MaxFileSizeMB = %d, want 100", cfg.Processing.MaxFileSizeMB)
	}
	if cfg.OCRmyPDFPath != "ocrmypdf" || cfg.TesseractPath != "tesseract" {
		t.Error("tool paths should default to bare binary names")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown language", func(c *Config) { c.OCR.Language = "xx" }},
		{"optimize too high", func(c *Config) { c.OCR.OptimizeLevel = 4 }},
		{"optimize negative", func(c *Config) { c.OCR.OptimizeLevel = -1 }},
		{"zero max file size", func(c *Config) { c.Processing.MaxFileSizeMB = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.OCR.Language != DefaultLanguage {
		t.Errorf("Language = %q, want default", cfg.OCR.Language)
	}
}

func TestSaveAndReloadConfig(t *testing.T) {
	home := isolateHome(t)

	cfg := DefaultConfig()
	cfg.OCR.Language = "eng"
	cfg.Processing.SkipExisting = true
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, AppDirName, ConfigFileName)); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.OCR.Language != "eng" {
		t.Errorf("Language = %q, want eng", loaded.OCR.Language)
	}
	if !loaded.Processing.SkipExisting {
		t.Error("SkipExisting not persisted")
	}
}

func TestSetAndGetConfigValue(t *testing.T) {
	isolateHome(t)

	if err := SetConfigValue("ocr.language", "fra"); err != nil {
		t.Fatalf("SetConfigValue: %v", err)
	}
	value, err := GetConfigValue("ocr.language")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if value != "fra" {
		t.Errorf("got %q, want fra", value)
	}

	if err := SetConfigValue("processing.create_backups", "false"); err != nil {
		t.Fatalf("SetConfigValue: %v", err)
	}
	value, _ = GetConfigValue("processing.create_backups")
	if value != "false" {
		t.Errorf("got %q, want false", value)
	}
}

func TestSetConfigValueRejectsUnknownKeyAndBadValue(t *testing.T) {
	isolateHome(t)

	if err := SetConfigValue("no.such.key", "x"); err == nil {
		t.Error("expected an error for an unknown key")
	}
	if err := SetConfigValue("ocr.language", "klingon"); err == nil {
		t.Error("expected an error for an unsupported language")
	}
	if err := SetConfigValue("ocr.optimize_level", "nine"); err == nil {
		t.Error("expected an error for a non-integer value")
	}
}

func TestEnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("OCRPROYECTO_LANGUAGE", "por")
	t.Setenv("OCRPROYECTO_OCRMYPDF_PATH", "/opt/bin/ocrmypdf")

	cfg := LoadConfigWithEnvOverrides()
	if cfg.OCR.Language != "por" {
		t.Errorf("Language = %q, want por", cfg.OCR.Language)
	}
	if cfg.OCRmyPDFPath != "/opt/bin/ocrmypdf" {
		t.Errorf("OCRmyPDFPath = %q", cfg.OCRmyPDFPath)
	}
}

func TestConfigKeysRoundTrip(t *testing.T) {
	isolateHome(t)

	for _, key := range ConfigKeys() {
		if _, err := GetConfigValue(key); err != nil {
			t.Errorf("GetConfigValue(%q) failed on defaults: %v", key, err)
		}
	}
}
