package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the glacierkit CLI.
type Config struct {
	Bucket      string    `yaml:"bucket"`
	Files       []string  `yaml:"files"`
	Workers     int       `yaml:"workers"`
	Overwrite   bool      `yaml:"overwrite"`
	Progress    bool      `yaml:"progress"`
	ColormapDir string    `yaml:"colormap_dir"`
	Tag         TagConfig `yaml:"tag"`
}

// TagConfig defines dataset tagging behavior.
type TagConfig struct {
	Pattern  string   `yaml:"pattern"`
	Dim      string   `yaml:"dim"`
	DropVars []string `yaml:"drop_vars"`
	DropDims []string `yaml:"drop_dims"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Workers:  4,
		Progress: true,
		Tag: TagConfig{
			Pattern: "id_(.+?)_",
			Dim:     "exp_id",
		},
	}
}

// LoadFromFile loads configuration from a YAML file, layered over the
// defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	// Unmarshal straight into the defaults rather than merging, so a
	// file can set progress or overwrite to false explicitly.
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the GLACIERKIT_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("GLACIERKIT_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("GLACIERKIT_FILES"); v != "" {
		c.Files = splitList(v)
	}
	if v := os.Getenv("GLACIERKIT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse GLACIERKIT_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("GLACIERKIT_OVERWRITE"); v != "" {
		c.Overwrite = v == "true" || v == "1"
	}
	if v := os.Getenv("GLACIERKIT_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("GLACIERKIT_COLORMAP_DIR"); v != "" {
		c.ColormapDir = v
	}
	if v := os.Getenv("GLACIERKIT_TAG_PATTERN"); v != "" {
		c.Tag.Pattern = v
	}
	if v := os.Getenv("GLACIERKIT_TAG_DIM"); v != "" {
		c.Tag.Dim = v
	}
	if v := os.Getenv("GLACIERKIT_TAG_DROP_VARS"); v != "" {
		c.Tag.DropVars = splitList(v)
	}
	if v := os.Getenv("GLACIERKIT_TAG_DROP_DIMS"); v != "" {
		c.Tag.DropDims = splitList(v)
	}

	return nil
}

// Validate validates the configuration for a fetch run.
func (c *Config) Validate() error {
	if c.Bucket == "" && !allURLs(c.Files) {
		return errors.New("config: bucket is required unless every file is an HTTP(S) URL")
	}
	if len(c.Files) == 0 {
		return errors.New("config: at least one file is required")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Bucket != "" {
		c.Bucket = override.Bucket
	}
	if len(override.Files) != 0 {
		c.Files = override.Files
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.Overwrite {
		c.Overwrite = override.Overwrite
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.ColormapDir != "" {
		c.ColormapDir = override.ColormapDir
	}
	if override.Tag.Pattern != "" {
		c.Tag.Pattern = override.Tag.Pattern
	}
	if override.Tag.Dim != "" {
		c.Tag.Dim = override.Tag.Dim
	}
	if len(override.Tag.DropVars) != 0 {
		c.Tag.DropVars = override.Tag.DropVars
	}
	if len(override.Tag.DropDims) != 0 {
		c.Tag.DropDims = override.Tag.DropDims
	}
	return c
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func allURLs(files []string) bool {
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !strings.HasPrefix(f, "http://") && !strings.HasPrefix(f, "https://") {
			return false
		}
	}
	return true
}
