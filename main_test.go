package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScenesCommand(t *testing.T) {
	out, err := executeCommand(t, "scenes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(scene.ListScenes()))
	for i, info := range scene.ListScenes() {
		assert.True(t, strings.HasPrefix(lines[i], info.Name), lines[i])
		assert.Contains(t, lines[i], info.Description)
	}
}

func TestRenderCommand_Headless(t *testing.T) {
	_, err := executeCommand(t, "render",
		"--scene", "emissive", "--width", "8", "--height", "6", "--spp", "1",
		"--frames", "3", "--fps", "0", "--display", "none", "--log-every", "1")
	assert.NoError(t, err)
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"render", "--scene", "nonexistent", "--display", "none", "--frames", "1"}},
		{"missing scene file", []string{"render", "--scene-file", "nope.yaml", "--display", "none", "--frames", "1"}},
		{"invalid width", []string{"render", "--width", "0", "--display", "none", "--frames", "1"}},
		{"invalid display", []string{"render", "--scene", "emissive", "--width", "4", "--height", "4", "--display", "window"}},
		{"extra argument", []string{"render", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func parseRootFlags(t *testing.T, args ...string) (*RootOptions, *pflag.FlagSet) {
	t.Helper()
	opts := &RootOptions{}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addRootFlags(flags, opts)
	require.NoError(t, flags.Parse(args))
	return opts, flags
}

func TestLoadSetup_Precedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("width: 64\nheight: 48\nseed: 3\n"), 0644))

	opts, flags := parseRootFlags(t, "--config", configPath, "--scene", "emissive", "--height", "20")
	sc, config, err := loadSetup(opts, flags)
	require.NoError(t, err)
	require.NotNil(t, sc)

	assert.Equal(t, 64, config.Width)  // from the file
	assert.Equal(t, 20, config.Height) // flag beats the file
	assert.Equal(t, int64(3), config.Seed)
	assert.Equal(t, renderer.DefaultConfig().SamplesPerPass, config.SamplesPerPass)
}

func TestLoadSetup_Defaults(t *testing.T) {
	opts, flags := parseRootFlags(t)
	sc, config, err := loadSetup(opts, flags)
	require.NoError(t, err)

	assert.Equal(t, renderer.DefaultConfig(), config)
	assert.NotNil(t, sc.Puppet)
}

func TestLoadSetup_SceneFile(t *testing.T) {
	scenePath := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(`
camera:
  center: [0, 0, 2]
  look_at: [0, 0, 0]
environment:
  type: uniform
  color: [0.2, 0.2, 0.2]
spheres:
  - center: [0, 0, 0]
    radius: 1
    material: {type: lambertian, albedo: [0.5, 0.5, 0.5]}
`), 0644))

	opts, flags := parseRootFlags(t, "--scene", "nonexistent", "--scene-file", scenePath, "--tone-mapper", "reinhard")
	sc, config, err := loadSetup(opts, flags)
	require.NoError(t, err)
	assert.Len(t, sc.Spheres, 1)
	assert.Equal(t, renderer.ToneMapperReinhard, config.ToneMapper)
}

func TestLoadSetup_InvalidOverride(t *testing.T) {
	opts, flags := parseRootFlags(t, "--spp", "0")
	_, _, err := loadSetup(opts, flags)
	assert.ErrorIs(t, err, renderer.ErrInvalidConfig)
}
