package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.Bands.Low)
	assert.Equal(t, 10, cfg.Bands.Medium)
	assert.Equal(t, 15, cfg.Bands.High)
	assert.InDelta(t, 1.0, cfg.Health.Weights.Sum(), 0.0001)
	assert.Equal(t, "console", cfg.Output.Format)
	assert.Equal(t, ScoreThresholds{Excellent: 90, Good: 75, Fair: 50}, cfg.Health.ScoreThresholds)
}

func TestValidateRejectsUnorderedScoreThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.ScoreThresholds = ScoreThresholds{Excellent: 50, Good: 75, Fair: 90}
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadConfigNoFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chromalint.yml")

	cfg := DefaultConfig()
	cfg.Analysis.MaxWorkers = 8
	cfg.Bands.Low = 3
	cfg.Bands.Medium = 6
	cfg.Bands.High = 9
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  max_workers: 2\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Analysis.MaxWorkers)
	assert.Equal(t, DefaultConfig().Bands, cfg.Bands, "unset keys keep their defaults")
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("bands:\n  low: 20\n  medium: 10\n  high: 15\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.Weights.Complexity = 0.9
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsZeroWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.MaxWorkers = 0
	assert.Error(t, cfg.Validate())
}

func TestGenerateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated", ".chromalint.yml")
	require.NoError(t, GenerateConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.NoError(t, loaded.Validate())
}
