// Package config handles configuration for the mesh extraction tools.
package config

// Config holds all meshtool settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Decode  DecodeConfig  `yaml:"decode"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig locates the asset tree to convert.
type InputConfig struct {
	Root       string   `yaml:"root"`       // directory walked for assets
	Extensions []string `yaml:"extensions"` // matched case-insensitively
}

// OutputConfig controls what the conversion writes.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	UVJSON  bool   `yaml:"uv_json"`  // also dump both UV channels as JSON
	Mapping string `yaml:"mapping"`  // asset mapping file name
	Results string `yaml:"results"`  // per-file results file name
}

// DecodeConfig holds decoder guards.
type DecodeConfig struct {
	MaxSubMeshes uint32 `yaml:"max_submeshes"` // per-chunk cap, 0 = default
}

// BatchConfig holds conversion-run settings.
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Extensions: []string{".preinstanced"},
		},
		Output: OutputConfig{
			Dir:     "extracted",
			UVJSON:  false,
			Mapping: "asset_mapping.json",
			Results: "results.json",
		},
		Decode: DecodeConfig{
			MaxSubMeshes: 0,
		},
		Batch: BatchConfig{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
