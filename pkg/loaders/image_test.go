package loaders

import (
	"image"
	imagecolor "image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// writePNG saves a 2x2 test pattern: white, red / green, blue
func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, imagecolor.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, imagecolor.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, imagecolor.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, imagecolor.RGBA{R: 0, G: 0, B: 255, A: 255})

	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadImage(t *testing.T) {
	imageData, err := LoadImage(writePNG(t, t.TempDir()))
	require.NoError(t, err)

	require.Equal(t, 2, imageData.Width)
	require.Equal(t, 2, imageData.Height)
	require.Len(t, imageData.Pixels, 4)

	// Row-major order
	expected := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}
	for i, e := range expected {
		assert.InDelta(t, e.X, imageData.Pixels[i].X, 0.01, "pixel %d", i)
		assert.InDelta(t, e.Y, imageData.Pixels[i].Y, 0.01, "pixel %d", i)
		assert.InDelta(t, e.Z, imageData.Pixels[i].Z, 0.01, "pixel %d", i)
	}

	tex := imageData.Texture()
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, imageData.Pixels, tex.Pixels)
}

func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadImageNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("not a picture"), 0o644))

	_, err := LoadImage(path)
	assert.ErrorIs(t, err, image.ErrFormat)
}
