package drivepath

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the explicit configuration object for a client. It is
// constructed once and passed by reference; there is no process-wide
// settings singleton.
type Config struct {
	// Roots maps shared-drive labels to their remote root identifiers.
	// Paths can only be resolved under these labels.
	Roots Roots `yaml:"roots"`
	// TmpDir is the default destination directory for Download.
	TmpDir string `yaml:"tmp_dir"`
	// Account is the impersonated account, informational to the resolver;
	// authentication itself happens when the drive.Service is built.
	Account string `yaml:"account"`
	// ChunkSize is the resumable upload chunk size in bytes.
	// Zero selects DefaultChunkSize.
	ChunkSize int `yaml:"chunk_size"`
}

// Validate fails fast on a configuration that would otherwise only break at
// first use.
func (c Config) Validate() error {
	if len(c.Roots) == 0 {
		return fmt.Errorf("config: at least one root label is required")
	}
	for label, id := range c.Roots {
		if label == "" {
			return fmt.Errorf("config: empty root label")
		}
		if id == "" {
			return fmt.Errorf("config: root '%s' has an empty identifier", label)
		}
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("config: negative chunk size %d", c.ChunkSize)
	}
	return nil
}

// LoadConfig reads and validates a yaml config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, newIOError("failed to read config file", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
