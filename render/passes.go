package render

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/osao/buffer"
	"github.com/echoflaresat/osao/colors"
)

// forEachRow runs fn for every image row on up to workers goroutines and
// logs progress at 10% milestones.
func forEachRow(pass string, width, height, workers int, fn func(y int)) {
	start := time.Now()
	if workers <= 0 {
		workers = 1
	}

	var done atomic.Int64
	var milestone atomic.Int64

	var g errgroup.Group
	g.SetLimit(workers)
	for y := 0; y < height; y++ {
		g.Go(func() error {
			fn(y)
			n := done.Add(1)
			progress := n * 100 / int64(height)
			for {
				m := milestone.Load()
				if progress < m+10 {
					break
				}
				if milestone.CompareAndSwap(m, m+10) {
					slog.Debug("pass progress", "pass", pass, "percent", m+10)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("pass complete",
		"pass", pass,
		"pixels", width*height,
		"workers", workers,
		"elapsed", time.Since(start).Round(time.Millisecond))
}

// DirectPass traces one primary ray per pixel, shades it with the scene
// lights and fills the direct image, the G-buffer and the normal view.
func (c *Context) DirectPass() {
	w, h := c.Size()
	direct := c.Buffer(ViewDirect)
	normals := c.Buffer(ViewNormals)

	forEachRow("direct", w, h, c.Options.Workers, func(y int) {
		for x := 0; x < w; x++ {
			ray := c.Camera.Ray(float64(x), float64(y))
			col, hit, ok := c.Scene.Trace(ray)
			direct.Set(x, y, col)

			if !ok {
				c.GBuffer.Set(x, y, buffer.Sample{})
				normals.Set(x, y, colors.Black())
				continue
			}
			c.GBuffer.Set(x, y, buffer.Sample{
				Hit:    true,
				Point:  hit.Point(ray),
				Normal: hit.Normal,
				Depth:  hit.Distance,
			})
			n := hit.Normal
			normals.Set(x, y, colors.New(n.X*0.5+0.5, n.Y*0.5+0.5, n.Z*0.5+0.5, 1))
		}
	})
}

// DepthPass renders hit distance from the G-buffer, stretched so the
// nearest hit is black and the farthest white. Misses are black. When every
// hit lies at the same distance, hits are white.
func (c *Context) DepthPass() {
	w, h := c.Size()
	depth := c.Buffer(ViewDepth)

	lo, hi, ok := c.GBuffer.DepthRange()
	if !ok {
		depth.Fill(colors.Black())
		return
	}
	flat := hi <= lo

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := c.GBuffer.At(x, y)
			switch {
			case !s.Hit && flat:
				depth.Set(x, y, colors.Black())
			case !s.Hit:
				// lo maps to black once stretched
				depth.Set(x, y, colors.Gray(lo))
			case flat:
				depth.Set(x, y, colors.White())
			default:
				depth.Set(x, y, colors.Gray(s.Depth))
			}
		}
	}
	if !flat {
		depth.Normalize()
	}
}

// OcclusionPass re-traces each primary ray and estimates ambient occlusion
// at the hit, writing the factor as gray into the raw occlusion image.
func (c *Context) OcclusionPass() {
	w, h := c.Size()
	raw := c.Buffer(ViewOcclusionRaw)
	est := c.occlusion()

	forEachRow("occlusion", w, h, c.Options.Workers, func(y int) {
		rng := rand.New(rand.NewPCG(c.Options.Seed, uint64(y)))
		for x := 0; x < w; x++ {
			ray := c.Camera.Ray(float64(x), float64(y))
			hit, ok := c.Scene.IntersectObjects(ray)
			if !ok {
				raw.Set(x, y, colors.Black())
				continue
			}
			n := faceForward(hit.Normal, ray.Direction)
			f := est.Estimate(hit.Point(ray), n, rng)
			raw.Set(x, y, colors.Gray(f))
		}
	})
}

// Composite blurs and inverts the occlusion pass, then multiplies it into a
// copy of the direct image.
func (c *Context) Composite() {
	start := time.Now()

	ao := c.Buffer(ViewOcclusion)
	ao.CopyFrom(c.Buffer(ViewOcclusionRaw))
	ao.Blur(c.Options.BlurKernel)
	ao.Invert()

	final := c.Buffer(ViewFinal)
	final.CopyFrom(c.Buffer(ViewDirect))
	final.Multiply(ao)

	slog.Info("composite complete", "elapsed", time.Since(start).Round(time.Millisecond))
}
