package config

import (
	"fmt"
	"os"
	"strings"

	"video2audio/domain/audio"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when --config is not given
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
	Audio  AudioConfig  `yaml:"audio"`
	Batch  BatchConfig  `yaml:"batch"`
}

// FFmpegConfig contains settings for the external converter
type FFmpegConfig struct {
	Path string `yaml:"path"`
}

// AudioConfig contains default output settings
type AudioConfig struct {
	Format  string `yaml:"format"`
	Quality string `yaml:"quality"`
}

// BatchConfig contains batch discovery settings
type BatchConfig struct {
	Extensions []string `yaml:"extensions,flow"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		FFmpeg: FFmpegConfig{Path: "ffmpeg"},
		Audio: AudioConfig{
			Format:  string(audio.DefaultFormat),
			Quality: audio.DefaultQuality,
		},
		Batch: BatchConfig{
			Extensions: append([]string(nil), audio.DefaultVideoExtensions...),
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Keys missing from the file keep their built-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail late, at conversion time
func (c *Config) Validate() error {
	if _, err := audio.ParseFormat(c.Audio.Format); err != nil {
		return err
	}
	for _, ext := range c.Batch.Extensions {
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("batch extension %q must not contain a path separator", ext)
		}
	}
	return nil
}

// Resolve returns the flag value when set, otherwise the config value, otherwise def
func Resolve(flagValue, configValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return def
}
