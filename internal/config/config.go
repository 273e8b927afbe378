// Package config handles polytri configuration loading and management.
package config

import "github.com/Faultbox/polytri/pkg/mesh"

// Config holds all polytri settings.
type Config struct {
	Attributes mesh.AttributeNames `yaml:"attributes"`
	Extract    ExtractConfig       `yaml:"extract"`
	Export     ExportConfig        `yaml:"export"`
	Logging    LoggingConfig       `yaml:"logging"`
}

// ExtractConfig holds triangle-list extraction settings.
type ExtractConfig struct {
	UVPointFallback   bool    `yaml:"uv_point_fallback"`
	ColorAlpha        float32 `yaml:"color_alpha"`
	Workers           int     `yaml:"workers"` // <0 = GOMAXPROCS
	ParallelThreshold int     `yaml:"parallel_threshold"`
}

// ExportConfig holds glTF export settings.
type ExportConfig struct {
	Generator string `yaml:"generator"`
	MeshName  string `yaml:"mesh_name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the established extraction behavior.
func Default() *Config {
	return &Config{
		Attributes: mesh.DefaultAttributeNames(),
		Extract: ExtractConfig{
			UVPointFallback:   false,
			ColorAlpha:        mesh.DefaultColorAlpha,
			Workers:           1,
			ParallelThreshold: mesh.DefaultParallelThreshold,
		},
		Export: ExportConfig{
			Generator: "polytri",
			MeshName:  "cooked",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the config into extraction options.
func (c *Config) Options() mesh.Options {
	return mesh.Options{
		Names:             c.Attributes,
		UVPointFallback:   c.Extract.UVPointFallback,
		ColorAlpha:        c.Extract.ColorAlpha,
		Workers:           c.Extract.Workers,
		ParallelThreshold: c.Extract.ParallelThreshold,
	}
}
