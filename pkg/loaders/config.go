package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-interactive-raytracer/pkg/renderer"
)

// LoadConfig reads a renderer configuration file. Keys that are absent keep
// their renderer.DefaultConfig values; unknown keys are rejected.
func LoadConfig(path string) (renderer.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return renderer.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of the default configuration and validates it
func ParseConfig(data []byte) (renderer.Config, error) {
	config := renderer.DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return renderer.Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return renderer.Config{}, err
	}
	return config, nil
}
