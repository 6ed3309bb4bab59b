// Package config loads optional per-repository defaults for the CLI from a
// YAML file. Flags override anything set here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no config flag is
// given.
const DefaultPath = ".release-train.yaml"

// Config holds per-repository defaults.
type Config struct {
	// BaseBranch is the branch pull requests are compared against.
	BaseBranch string `yaml:"base_branch"`
	// ChangelogPath is the changelog file updated on release.
	ChangelogPath string `yaml:"changelog_path"`
	// TagOffsetSeconds is the margin added to a tag's creation date when it
	// bounds a changelog window.
	TagOffsetSeconds int `yaml:"tag_offset_seconds"`
}

// Load reads the configuration from the given file. A missing file is not
// an error and yields the defaults.
func Load(filename string) (*Config, error) {
	config := &Config{
		BaseBranch:       "master",
		TagOffsetSeconds: 60,
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.BaseBranch == "" {
		config.BaseBranch = "master"
	}
	if config.TagOffsetSeconds == 0 {
		config.TagOffsetSeconds = 60
	}

	return config, nil
}

// TagOffset returns the tag margin as a duration.
func (c *Config) TagOffset() time.Duration {
	return time.Duration(c.TagOffsetSeconds) * time.Second
}
