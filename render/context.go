package render

import (
	"fmt"
	"runtime"

	"github.com/echoflaresat/osao/buffer"
	"github.com/echoflaresat/osao/scene"
)

// View enumerates the image buffers a presenter can show.
type View int

const (
	ViewDirect View = iota
	ViewNormals
	ViewDepth
	ViewOcclusionRaw
	ViewOcclusion
	ViewFinal

	NumViews = int(ViewFinal) + 1
)

var viewNames = [NumViews]string{
	ViewDirect:       "direct",
	ViewNormals:      "normals",
	ViewDepth:        "depth",
	ViewOcclusionRaw: "ao-raw",
	ViewOcclusion:    "ao",
	ViewFinal:        "final",
}

func (v View) String() string {
	if v < 0 || int(v) >= NumViews {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView accepts the names returned by String.
func ParseView(name string) (View, error) {
	for i, n := range viewNames {
		if n == name {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", name)
}

// Options tunes the render passes.
type Options struct {
	Samples     int
	Radius      float64
	MinDistance float64
	Sampling    Sampling
	BlurKernel  int
	Workers     int
	Seed        uint64
}

// DefaultOptions matches the original demo: 128 samples and a 0.40 locality
// radius.
func DefaultOptions() Options {
	return Options{
		Samples:     128,
		Radius:      0.40,
		MinDistance: 0.0001,
		Sampling:    SampleCube,
		BlurKernel:  buffer.BlurKernel,
		Workers:     runtime.GOMAXPROCS(0),
		Seed:        1,
	}
}

// Context owns everything a render touches: the read-only scene and camera
// and every output buffer. The background job writes the buffers and a
// presenter reads them; each buffer carries its own lock.
type Context struct {
	Scene   *scene.Scene
	Camera  *Camera
	Options Options

	GBuffer *buffer.GBuffer
	buffers [NumViews]*buffer.Image
}

// NewContext allocates all buffers at the camera's image size.
func NewContext(sc *scene.Scene, cam *Camera, opts Options) *Context {
	w, h := cam.Size()
	c := &Context{
		Scene:   sc,
		Camera:  cam,
		Options: opts,
		GBuffer: buffer.NewGBuffer(w, h),
	}
	for i := range c.buffers {
		c.buffers[i] = buffer.New(View(i).String(), w, h)
	}
	return c
}

// Buffer returns the image behind view v.
func (c *Context) Buffer(v View) *buffer.Image {
	if v < 0 || int(v) >= NumViews {
		panic(fmt.Sprintf("render: no buffer for %v", v))
	}
	return c.buffers[v]
}

// Size returns the dimensions shared by every buffer.
func (c *Context) Size() (width, height int) {
	return c.Camera.Size()
}

// LockAll locks every buffer in view order. The render passes never hold
// more than one buffer lock at a time, so this cannot deadlock with them.
func (c *Context) LockAll() {
	for _, b := range c.buffers {
		b.Lock()
	}
}

// UnlockAll releases the locks taken by LockAll.
func (c *Context) UnlockAll() {
	for i := len(c.buffers) - 1; i >= 0; i-- {
		c.buffers[i].Unlock()
	}
}

func (c *Context) occlusion() Occlusion {
	return Occlusion{
		Scene:       c.Scene,
		Samples:     c.Options.Samples,
		Radius:      c.Options.Radius,
		MinDistance: c.Options.MinDistance,
		Sampling:    c.Options.Sampling,
	}
}
