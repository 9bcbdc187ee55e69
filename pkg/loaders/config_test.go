package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-interactive-raytracer/pkg/renderer"
)

func TestParseConfig_OverlaysDefaults(t *testing.T) {
	config, err := ParseConfig([]byte(`
width: 64
height: 48
tone_mapper: reinhard
accelerator:
  branching_factor: 8
`))
	require.NoError(t, err)

	expected := renderer.DefaultConfig()
	expected.Width = 64
	expected.Height = 48
	expected.ToneMapper = renderer.ToneMapperReinhard
	expected.Accelerator.BranchingFactor = 8
	assert.Equal(t, expected, config)
}

func TestParseConfig_Empty(t *testing.T) {
	config, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, renderer.DefaultConfig(), config)
}

func TestParseConfig_RejectsUnknownFields(t *testing.T) {
	_, err := ParseConfig([]byte("widht: 64\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestParseConfig_Validates(t *testing.T) {
	_, err := ParseConfig([]byte("samples_per_pass: 0\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, renderer.ErrInvalidConfig))

	var configErr *renderer.ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "samples_per_pass", configErr.Field)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 9\nghost_factor_static: 0.5\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(9), config.Seed)
	assert.Equal(t, 0.5, config.GhostFactorStatic)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
