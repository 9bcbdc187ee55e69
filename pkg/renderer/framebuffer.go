package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// FrameBuffer is a dense row-major grid of linear RGB samples
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Pixels[y*Width + x]
}

// NewFrameBuffer allocates a black buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the sample at (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set overwrites the sample at (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// Add accumulates c into the sample at (x, y)
func (fb *FrameBuffer) Add(x, y int, c core.Vec3) {
	i := y*fb.Width + x
	fb.Pixels[i] = fb.Pixels[i].Add(c)
}

// Fill sets every sample to c
func (fb *FrameBuffer) Fill(c core.Vec3) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// CopyFrom copies src, which must have the same size
func (fb *FrameBuffer) CopyFrom(src *FrameBuffer) {
	copy(fb.Pixels, src.Pixels)
}

// Blend mixes src into the buffer: fb = factor*fb + (1-factor)*src
func (fb *FrameBuffer) Blend(src *FrameBuffer, factor float64) {
	for i, c := range src.Pixels {
		fb.Pixels[i] = fb.Pixels[i].Multiply(factor).Add(c.Multiply(1 - factor))
	}
}

// Row returns a view of row y, left to right
func (fb *FrameBuffer) Row(y int) LineView {
	return LineView{pixels: fb.Pixels, offset: y * fb.Width, stride: 1, length: fb.Width}
}

// Column returns a view of column x, top to bottom
func (fb *FrameBuffer) Column(x int) LineView {
	return LineView{pixels: fb.Pixels, offset: x, stride: fb.Width, length: fb.Height}
}

// ToImage converts a display buffer (already tone mapped to [0,1]) to 8-bit RGBA
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, toRGBA(fb.At(x, y)))
		}
	}
	return img
}

// AverageLuminance returns the mean luminance of the buffer
func (fb *FrameBuffer) AverageLuminance() float64 {
	if len(fb.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range fb.Pixels {
		total += c.Luminance()
	}
	return total / float64(len(fb.Pixels))
}

func toRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// LineView is a strided 1D view into a frame buffer's pixels
type LineView struct {
	pixels []core.Vec3
	offset int
	stride int
	length int
}

// Len returns the number of samples in the line
func (v LineView) Len() int {
	return v.length
}

// At returns sample i of the line
func (v LineView) At(i int) core.Vec3 {
	return v.pixels[v.offset+i*v.stride]
}

// Set overwrites sample i of the line
func (v LineView) Set(i int, c core.Vec3) {
	v.pixels[v.offset+i*v.stride] = c
}
