package display

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	"github.com/df07/go-interactive-raytracer/pkg/renderer"
)

// ImagePresenter keeps the most recent frame as an image. It is safe to read
// from other goroutines while the render goroutine presents.
type ImagePresenter struct {
	mu      sync.RWMutex
	latest  *image.RGBA
	version uint64
	notify  chan struct{}
}

// NewImagePresenter creates an empty image presenter
func NewImagePresenter() *ImagePresenter {
	return &ImagePresenter{notify: make(chan struct{})}
}

// Present implements renderer.Presenter
func (ip *ImagePresenter) Present(buf *renderer.FrameBuffer) error {
	img := buf.ToImage()

	ip.mu.Lock()
	ip.latest = img
	ip.version++
	close(ip.notify)
	ip.notify = make(chan struct{})
	ip.mu.Unlock()
	return nil
}

// Latest returns the last presented frame and its version, which counts
// presents. The image is nil before the first frame and must not be modified.
func (ip *ImagePresenter) Latest() (*image.RGBA, uint64) {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	return ip.latest, ip.version
}

// Changed returns a channel that is closed by the next Present
func (ip *ImagePresenter) Changed() <-chan struct{} {
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	return ip.notify
}

// EncodePNG returns the last frame as PNG bytes, or nil before the first frame
func (ip *ImagePresenter) EncodePNG() ([]byte, uint64, error) {
	img, version := ip.Latest()
	if img == nil {
		return nil, version, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, version, err
	}
	return buf.Bytes(), version, nil
}
