package buffer

import (
	"fmt"
	"image"
	"sync"

	"github.com/echoflaresat/osao/colors"
)

// Image is a width×height grid of float colors guarded by its own mutex.
//
// Every mutation marks the image dirty and bumps its generation; taking a
// snapshot clears the dirty flag. Pixel addresses outside the grid and
// dimension mismatches panic: they are programming errors and clamping would
// silently corrupt the compositing math.
type Image struct {
	Name string

	mu         sync.Mutex
	width      int
	height     int
	data       []colors.Color4
	dirty      bool
	generation uint64
}

// New allocates a black image.
func New(name string, width, height int) *Image {
	img := &Image{Name: name}
	img.create(width, height)
	return img
}

// Create replaces the pixel grid wholesale with a black one of the new size.
func (img *Image) Create(width, height int) {
	img.mu.Lock()
	defer img.mu.Unlock()
	img.create(width, height)
}

func (img *Image) create(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("buffer %q: invalid size %dx%d", img.Name, width, height))
	}
	img.width = width
	img.height = height
	img.data = make([]colors.Color4, width*height)
	for i := range img.data {
		img.data[i] = colors.Black()
	}
	img.touch()
}

func (img *Image) touch() {
	img.dirty = true
	img.generation++
}

// Bounds returns the fixed dimensions.
func (img *Image) Bounds() (width, height int) {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.width, img.height
}

func (img *Image) index(x, y int) int {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		panic(fmt.Sprintf("buffer %q: pixel (%d,%d) outside %dx%d", img.Name, x, y, img.width, img.height))
	}
	return x + y*img.width
}

func (img *Image) Set(x, y int, c colors.Color4) {
	img.mu.Lock()
	defer img.mu.Unlock()
	img.data[img.index(x, y)] = c
	img.touch()
}

func (img *Image) At(x, y int) colors.Color4 {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.data[img.index(x, y)]
}

// Fill sets every pixel to c.
func (img *Image) Fill(c colors.Color4) {
	img.mu.Lock()
	defer img.mu.Unlock()
	for i := range img.data {
		img.data[i] = c
	}
	img.touch()
}

// Pixels returns a copy of the grid in row-major order.
func (img *Image) Pixels() (width, height int, pix []colors.Color4) {
	img.mu.Lock()
	defer img.mu.Unlock()
	out := make([]colors.Color4, len(img.data))
	copy(out, img.data)
	return img.width, img.height, out
}

// Dirty reports whether the image changed since the last snapshot.
func (img *Image) Dirty() bool {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.dirty
}

// Generation counts mutations since creation.
func (img *Image) Generation() uint64 {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.generation
}

// Lock and Unlock expose the buffer mutex to a presenter that needs several
// buffers frozen at once. While held, use the *Locked methods only.
func (img *Image) Lock()   { img.mu.Lock() }
func (img *Image) Unlock() { img.mu.Unlock() }

// GenerationLocked is Generation for callers holding the lock.
func (img *Image) GenerationLocked() uint64 {
	return img.generation
}

// SnapshotLocked serializes the grid to 8-bit NRGBA and clears the dirty
// flag. The caller must hold the lock.
func (img *Image) SnapshotLocked() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))
	for y := 0; y < img.height; y++ {
		row := img.data[y*img.width : (y+1)*img.width]
		for x, c := range row {
			out.SetNRGBA(x, y, c.ToNRGBA())
		}
	}
	img.dirty = false
	return out
}

// Snapshot is SnapshotLocked with its own locking.
func (img *Image) Snapshot() *image.NRGBA {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.SnapshotLocked()
}
