package buffer

import (
	"fmt"
	"sync"

	"github.com/echoflaresat/osao/vectors"
)

// Sample is the geometry seen through one pixel.
type Sample struct {
	Hit    bool
	Point  vectors.Vec3
	Normal vectors.Vec3
	Depth  float64
}

// GBuffer stores per-pixel world-space hit point, normal and depth,
// written by the direct pass.
type GBuffer struct {
	mu      sync.RWMutex
	width   int
	height  int
	samples []Sample
}

func NewGBuffer(width, height int) *GBuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("gbuffer: invalid size %dx%d", width, height))
	}
	return &GBuffer{width: width, height: height, samples: make([]Sample, width*height)}
}

func (g *GBuffer) Bounds() (width, height int) {
	return g.width, g.height
}

func (g *GBuffer) index(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("gbuffer: pixel (%d,%d) outside %dx%d", x, y, g.width, g.height))
	}
	return x + y*g.width
}

func (g *GBuffer) Set(x, y int, s Sample) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.samples[g.index(x, y)] = s
}

func (g *GBuffer) At(x, y int) Sample {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.samples[g.index(x, y)]
}

// DepthRange returns the smallest and largest depth over hit pixels.
// ok is false when no pixel hit anything.
func (g *GBuffer) DepthRange() (lo, hi float64, ok bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, s := range g.samples {
		if !s.Hit {
			continue
		}
		if !ok {
			lo, hi, ok = s.Depth, s.Depth, true
			continue
		}
		lo = min(lo, s.Depth)
		hi = max(hi, s.Depth)
	}
	return lo, hi, ok
}
