package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/polytri/pkg/mesh"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Attributes != mesh.DefaultAttributeNames() {
		t.Errorf("expected default attribute names, got %+v", cfg.Attributes)
	}
	if cfg.Extract.UVPointFallback {
		t.Error("expected uv point fallback to be off by default")
	}
	if cfg.Extract.ColorAlpha != 0 {
		t.Errorf("expected color alpha 0, got %f", cfg.Extract.ColorAlpha)
	}
	if cfg.Extract.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Extract.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Extract.ColorAlpha = 1
	cfg.Extract.Workers = 4
	cfg.Attributes.UV = "st"

	opts := cfg.Options()
	if opts.ColorAlpha != 1 {
		t.Errorf("expected alpha 1, got %f", opts.ColorAlpha)
	}
	if opts.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", opts.Workers)
	}
	if opts.Names.UV != "st" {
		t.Errorf("expected uv name 'st', got %s", opts.Names.UV)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "polytri.yaml")

	yamlContent := `
attributes:
  position: P
  normal: N
  color: Cd
  uv: st

extract:
  uv_point_fallback: true
  color_alpha: 1
  workers: -1
  parallel_threshold: 100

export:
  generator: "bake test"

logging:
  level: "debug"
  log_file: "bake.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Attributes.UV != "st" {
		t.Errorf("expected uv name 'st', got %s", cfg.Attributes.UV)
	}
	if !cfg.Extract.UVPointFallback {
		t.Error("expected uv point fallback to be true")
	}
	if cfg.Extract.ColorAlpha != 1 {
		t.Errorf("expected color alpha 1, got %f", cfg.Extract.ColorAlpha)
	}
	if cfg.Extract.Workers != -1 {
		t.Errorf("expected workers -1, got %d", cfg.Extract.Workers)
	}
	if cfg.Extract.ParallelThreshold != 100 {
		t.Errorf("expected threshold 100, got %d", cfg.Extract.ParallelThreshold)
	}
	if cfg.Export.Generator != "bake test" {
		t.Errorf("expected generator 'bake test', got %s", cfg.Export.Generator)
	}
	// Not in the file, so the default survives.
	if cfg.Export.MeshName != "cooked" {
		t.Errorf("expected mesh name 'cooked', got %s", cfg.Export.MeshName)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "bake.log" {
		t.Errorf("expected log file 'bake.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
extract:
  workers: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/polytri.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"opaque alpha", func(c *Config) { c.Extract.ColorAlpha = 1 }, false},
		{"alpha above one", func(c *Config) { c.Extract.ColorAlpha = 1.5 }, true},
		{"negative alpha", func(c *Config) { c.Extract.ColorAlpha = -0.1 }, true},
		{"nan alpha", func(c *Config) { c.Extract.ColorAlpha = float32(math.NaN()) }, true},
		{"no position name", func(c *Config) { c.Attributes.Position = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	cfg := Default()
	cfg.Extract.ColorAlpha = 2
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidAlpha) {
		t.Errorf("expected ErrInvalidAlpha, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "polytri.yaml")
	if err := os.WriteFile(configPath, []byte("extract:\n  workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find polytri.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "workers flag",
			setup: func() { *flagWorkers = 8 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Extract.Workers != 8 {
					t.Errorf("expected 8 workers, got %d", cfg.Extract.Workers)
				}
			},
			teardown: func() { *flagWorkers = 0 },
		},
		{
			name:  "alpha flag",
			setup: func() { *flagAlpha = 1 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Extract.ColorAlpha != 1 {
					t.Errorf("expected alpha 1, got %f", cfg.Extract.ColorAlpha)
				}
			},
			teardown: func() { *flagAlpha = -1 },
		},
		{
			name:  "unset alpha keeps default",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Extract.ColorAlpha != mesh.DefaultColorAlpha {
					t.Errorf("expected default alpha, got %f", cfg.Extract.ColorAlpha)
				}
			},
			teardown: func() {},
		},
		{
			name:  "uv fallback flag",
			setup: func() { *flagUVFallback = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Extract.UVPointFallback {
					t.Error("expected uv point fallback to be enabled")
				}
			},
			teardown: func() { *flagUVFallback = false },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "bake.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "bake.log" {
					t.Errorf("expected log file bake.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "polytri.yaml")

	yamlContent := `
extract:
  workers: 2
  color_alpha: 0.5
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWorkers = 6
	defer func() {
		*flagConfig = ""
		*flagWorkers = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Workers from flag, alpha from file.
	if cfg.Extract.Workers != 6 {
		t.Errorf("expected 6 workers from flag, got %d", cfg.Extract.Workers)
	}
	if cfg.Extract.ColorAlpha != 0.5 {
		t.Errorf("expected alpha 0.5 from file, got %f", cfg.Extract.ColorAlpha)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "polytri.yaml")

	cfg := Default()
	cfg.Extract.ColorAlpha = 1
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config = %+v, want %+v", loaded, cfg)
	}
}
