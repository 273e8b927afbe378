package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file")
	flagWorkers    = flag.Int("workers", 0, "Parallel fill workers (-1 = all CPUs)")
	flagAlpha      = flag.Float64("alpha", -1, "Alpha for RGB colors widened to RGBA")
	flagUVFallback = flag.Bool("uv-fallback", false, "Resolve uv at point rate when no vertex uv exists")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWorkers != 0 {
		cfg.Extract.Workers = *flagWorkers
	}
	if *flagAlpha >= 0 {
		cfg.Extract.ColorAlpha = float32(*flagAlpha)
	}
	if *flagUVFallback {
		cfg.Extract.UVPointFallback = true
	}
}
