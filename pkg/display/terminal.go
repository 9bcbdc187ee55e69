package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
)

// ErrNotTerminal is returned when the terminal presenter is pointed at
// something that is not a TTY
var ErrNotTerminal = errors.New("output is not a terminal")

// upperHalfBlock is drawn with the top pixel as foreground and the bottom
// pixel as background, giving two image rows per text row
const upperHalfBlock = "▀"

// TerminalPresenter draws frames with 24-bit ANSI colors. Each character
// cell shows two vertically stacked pixels.
type TerminalPresenter struct {
	out  io.Writer
	size func() (cols, rows int, err error)
}

// NewTerminalPresenter draws to f, scaling frames to fit the terminal
func NewTerminalPresenter(f *os.File) (*TerminalPresenter, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
	}
	return &TerminalPresenter{
		out:  f,
		size: func() (int, int, error) { return term.GetSize(fd) },
	}, nil
}

// NewFixedTerminalPresenter draws to any writer as if it were a terminal of
// cols x rows characters
func NewFixedTerminalPresenter(out io.Writer, cols, rows int) *TerminalPresenter {
	return &TerminalPresenter{
		out:  out,
		size: func() (int, int, error) { return cols, rows, nil },
	}
}

// Present implements renderer.Presenter
func (tp *TerminalPresenter) Present(buf *renderer.FrameBuffer) error {
	cols, rows, err := tp.size()
	if err != nil {
		return fmt.Errorf("reading terminal size: %w", err)
	}
	// Keep the last row free for the cursor
	width, height := fitSize(buf.Width, buf.Height, cols, 2*(rows-1))
	if width == 0 || height == 0 {
		return nil
	}

	w := bufio.NewWriter(tp.out)
	w.WriteString("\x1b[H")
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := sample(buf, x, y, width, height)
			bottom := core.Vec3{}
			if y+1 < height {
				bottom = sample(buf, x, y+1, width, height)
			}
			tr, tg, tb := to8bit(top)
			br, bg, bb := to8bit(bottom)
			fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s", tr, tg, tb, br, bg, bb, upperHalfBlock)
		}
		w.WriteString("\x1b[0m\r\n")
	}
	return w.Flush()
}

// fitSize scales (w, h) down to fit inside (maxW, maxH) keeping the aspect
// ratio. Frames are never scaled up.
func fitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

// sample picks the nearest source pixel for (x, y) in a width x height target
func sample(buf *renderer.FrameBuffer, x, y, width, height int) core.Vec3 {
	sx := x * buf.Width / width
	sy := y * buf.Height / height
	return buf.At(sx, sy)
}

func to8bit(c core.Vec3) (uint8, uint8, uint8) {
	c = c.Clamp(0, 1)
	return uint8(255 * c.X), uint8(255 * c.Y), uint8(255 * c.Z)
}
