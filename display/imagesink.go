package display

import (
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/echoflaresat/osao/render"
)

// ImageSink keeps the most recent frame as an RGBA image, scaled by an
// integer factor. Windowed and headless frontends both draw from it.
type ImageSink struct {
	scale  int
	smooth bool

	mu     sync.Mutex
	target *image.RGBA
	view   render.View
	frames int
}

// NewImageSink scales frames by scale (values below 1 are treated as 1).
// Smooth selects bilinear filtering over nearest neighbour.
func NewImageSink(scale int, smooth bool) *ImageSink {
	if scale < 1 {
		scale = 1
	}
	return &ImageSink{scale: scale, smooth: smooth}
}

func (s *ImageSink) Present(view render.View, frame *image.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := frame.Bounds()
	dst := image.Rect(0, 0, b.Dx()*s.scale, b.Dy()*s.scale)
	if s.target == nil || s.target.Bounds() != dst {
		s.target = image.NewRGBA(dst)
	}

	var scaler draw.Scaler = draw.NearestNeighbor
	if s.smooth {
		scaler = draw.ApproxBiLinear
	}
	if s.scale == 1 {
		draw.Draw(s.target, dst, frame, b.Min, draw.Src)
	} else {
		scaler.Scale(s.target, dst, frame, b, draw.Src, nil)
	}
	s.view = view
	s.frames++
}

// Last returns the latest frame and the view it came from. The image is
// reused by the next Present, so callers must copy it out under their own
// frame cadence. It is nil until the first frame arrives.
func (s *ImageSink) Last() (*image.RGBA, render.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target, s.view
}

// CopyTo copies the latest frame's pixels into dst, which must be at least
// as large. It returns false when no frame has arrived yet.
func (s *ImageSink) CopyTo(dst []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return false
	}
	copy(dst, s.target.Pix)
	return true
}

// Size is the scaled frame size, or zero before the first frame.
func (s *ImageSink) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

// Frames counts presented frames.
func (s *ImageSink) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
