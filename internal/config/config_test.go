package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.Brain.MarkovOrder)
	assert.Equal(t, 0.75, cfg.Brain.MaxBlendChance)

	iv, err := cfg.FeedInterval()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, iv)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gabble.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
brain:
  markov_order: 4
feeds:
  urls:
    - http://example.com/rss
  interval: 1h
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Brain.MarkovOrder)
	assert.Equal(t, 0.75, cfg.Brain.MaxBlendChance, "untouched keys keep defaults")
	assert.Equal(t, []string{"http://example.com/rss"}, cfg.Feeds.URLs)

	iv, err := cfg.FeedInterval()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, iv)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"zero order":     "brain:\n  markov_order: 0\n",
		"blend too high": "brain:\n  max_blend_chance: 1.5\n",
		"bad interval":   "feeds:\n  interval: soon\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gabble.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
