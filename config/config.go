package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Entry    Entry    `toml:"entry"`
	Override Override `toml:"override"`
	Input    Input    `toml:"input"`
	Watch    Watch    `toml:"watch"`
	Metrics  Metrics  `toml:"metrics"`
}

type Entry struct {
	StrictMain bool `toml:"strict_main"`
}

type Override struct {
	AllowCompatible bool `toml:"allow_compatible"`
}

// Input selects AST documents when a directory is analyzed. Patterns are
// matched against the file's base name.
type Input struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type Watch struct {
	Debounce Duration `toml:"debounce"`
}

type Metrics struct {
	Textfile string `toml:"textfile"`
}

// Duration decodes TOML strings such as "300ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Input.Include) == 0 {
		c.Input.Include = []string{"*.yaml", "*.yml", "*.json"}
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 300 * time.Millisecond
	}
}
