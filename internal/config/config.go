// Package config loads the gabble configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all gabble configuration.
type Config struct {
	Brain BrainConfig `yaml:"brain"`
	Paths PathsConfig `yaml:"paths"`
	Feeds FeedsConfig `yaml:"feeds"`
	Chat  ChatConfig  `yaml:"chat"`
}

// BrainConfig configures the markov model.
type BrainConfig struct {
	MarkovOrder     int     `yaml:"markov_order"`
	MaxBlendChance  float64 `yaml:"max_blend_chance"`
	CorrectSpelling bool    `yaml:"correct_spelling"`
}

// PathsConfig locates the on-disk resources.
type PathsConfig struct {
	LexiconDir string `yaml:"lexicon_dir"`
	StatePath  string `yaml:"state_path"`
	CorpusPath string `yaml:"corpus_path"`
}

// FeedsConfig configures RSS ingestion.
type FeedsConfig struct {
	URLs     []string `yaml:"urls"`
	Interval string   `yaml:"interval"`
}

// ChatConfig configures reply pacing and candidate search.
type ChatConfig struct {
	Candidates     int    `yaml:"candidates"`
	TypingCPS      int    `yaml:"typing_cps"`
	MinTypingDelay string `yaml:"min_typing_delay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Brain: BrainConfig{
			MarkovOrder:     3,
			MaxBlendChance:  0.75,
			CorrectSpelling: true,
		},
		Paths: PathsConfig{
			LexiconDir: "data/lexicon",
			StatePath:  "data/gabble.sqlite",
			CorpusPath: "data/corpus.txt",
		},
		Feeds: FeedsConfig{
			Interval: "15m",
		},
		Chat: ChatConfig{
			Candidates:     3,
			TypingCPS:      18,
			MinTypingDelay: "500ms",
		},
	}
}

// Load overlays the yaml file at path onto the defaults. An empty path
// returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Brain.MarkovOrder < 1 {
		return fmt.Errorf("brain.markov_order %d out of range", c.Brain.MarkovOrder)
	}
	if c.Brain.MaxBlendChance < 0 || c.Brain.MaxBlendChance > 1 {
		return fmt.Errorf("brain.max_blend_chance %v out of range", c.Brain.MaxBlendChance)
	}
	if _, err := c.FeedInterval(); err != nil {
		return err
	}
	if _, err := c.MinTypingDelay(); err != nil {
		return err
	}
	return nil
}

// FeedInterval parses feeds.interval.
func (c *Config) FeedInterval() (time.Duration, error) {
	return time.ParseDuration(c.Feeds.Interval)
}

// MinTypingDelay parses chat.min_typing_delay.
func (c *Config) MinTypingDelay() (time.Duration, error) {
	return time.ParseDuration(c.Chat.MinTypingDelay)
}
