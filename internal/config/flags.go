package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagRoot    = flag.String("root", "", "Asset tree root to convert")
	flagOut     = flag.String("out", "", "Output directory")
	flagWorkers = flag.Int("workers", 0, "Worker count for batch runs (0 = one per CPU)")
	flagUVJSON  = flag.Bool("uvjson", false, "Also dump UV channels as JSON")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ParseArgs parses the given argument list instead of os.Args, for
// subcommand-style CLIs that strip the command name first.
func ParseArgs(args []string) error {
	return flag.CommandLine.Parse(args)
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
	if *flagRoot != "" {
		cfg.Input.Root = *flagRoot
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagWorkers > 0 {
		cfg.Batch.Workers = *flagWorkers
	}
	if *flagUVJSON {
		cfg.Output.UVJSON = true
	}
}
