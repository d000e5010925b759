package render

import (
	"fmt"
	"math"

	"github.com/echoflaresat/osao/geom"
	"github.com/echoflaresat/osao/vectors"
)

// Camera models a pinhole camera looking at a target point.
//
// Configure evaluates the ray direction at the four image corners once;
// Ray then interpolates between them bilinearly, which is exact for a planar
// perspective frustum and avoids rebuilding the view-plane offset per pixel.
type Camera struct {
	FOVY     float64 // vertical field of view, radians
	Position vectors.Vec3
	Forward  vectors.Vec3
	Right    vectors.Vec3
	Up       vectors.Vec3

	width, height  float64
	planeW, planeH float64
	corners        [4]vectors.Vec3 // top-left, top-right, bottom-left, bottom-right
}

// NewCamera constructs a camera at pos looking at lookAt.
func NewCamera(fovY float64, pos, lookAt, upDir vectors.Vec3, width, height int) *Camera {
	c := &Camera{}
	c.Configure(fovY, pos, lookAt, upDir, width, height)
	return c
}

// Configure derives the orthonormal view basis and the view-plane extent at
// distance 1, then caches the corner rays. width and height must be positive.
func (c *Camera) Configure(fovY float64, pos, lookAt, upDir vectors.Vec3, width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("camera: invalid image size %dx%d", width, height))
	}

	fwd := lookAt.Sub(pos).Normalize()
	right := fwd.Cross(upDir).Normalize()
	up := right.Cross(fwd).Normalize()

	c.FOVY = fovY
	c.Position = pos
	c.Forward = fwd
	c.Right = right
	c.Up = up

	c.width = float64(width)
	c.height = float64(height)
	c.planeH = 2.0 * math.Tan(fovY/2.0)
	c.planeW = c.planeH * c.width / c.height

	c.corners[0] = c.computeRay(0, 0).Direction
	c.corners[1] = c.computeRay(c.width, 0).Direction
	c.corners[2] = c.computeRay(0, c.height).Direction
	c.corners[3] = c.computeRay(c.width, c.height).Direction
}

// computeRay evaluates the exact view-plane ray for pixel coordinate (px,py).
// py grows downward while the view plane's Up grows upward, hence the sign.
func (c *Camera) computeRay(px, py float64) geom.Ray {
	offX := c.planeW * (px/c.width - 0.5 + 0.5/c.width)
	offY := -c.planeH * (py/c.height - 0.5 + 0.5/c.height)

	dir := c.Forward.
		Add(c.Right.Scale(offX)).
		Add(c.Up.Scale(offY))
	return geom.NewRay(c.Position, dir)
}

// Ray returns the primary ray for pixel (px,py). Coordinates may be
// fractional.
func (c *Camera) Ray(px, py float64) geom.Ray {
	x := px / c.width
	y := py / c.height
	dir := vectors.Interpolate(c.corners[0], c.corners[1], c.corners[2], c.corners[3], x, y)
	return geom.NewRay(c.Position, dir)
}

// Size returns the image dimensions the camera was configured for.
func (c *Camera) Size() (width, height int) {
	return int(c.width), int(c.height)
}
