package workspace

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the optional on-disk configuration file, merged under whatever
// flags the CLI was given (flags win).
type Config struct {
	WorkspaceRoot string   `yaml:"workspaceRoot,omitempty"`
	Encoding      string   `yaml:"encoding,omitempty"`
	Verbose       bool     `yaml:"verbose,omitempty"`
	ExcludeDirs   []string `yaml:"excludeDirs,omitempty"`
	ScanThreshold int      `yaml:"scanThreshold,omitempty"`
}

// LoadConfig reads and parses a YAML config file. An empty path is not an
// error: it yields a zero Config, so the caller proceeds with CLI flags
// alone. A path naming a file that cannot be read is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge overlays non-zero fields from override onto cfg, implementing
// "flags win over config file".
func (cfg Config) Merge(override Config) Config {
	out := cfg
	if override.WorkspaceRoot != "" {
		out.WorkspaceRoot = override.WorkspaceRoot
	}
	if override.Encoding != "" {
		out.Encoding = override.Encoding
	}
	if override.Verbose {
		out.Verbose = true
	}
	if len(override.ExcludeDirs) > 0 {
		out.ExcludeDirs = override.ExcludeDirs
	}
	if override.ScanThreshold > 0 {
		out.ScanThreshold = override.ScanThreshold
	}
	return out
}
