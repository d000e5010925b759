package geom

import "github.com/echoflaresat/osao/vectors"

// Ray is a half-line origin + t·direction. The direction is unit length,
// so t is measured in world units.
type Ray struct {
	Origin    vectors.Vec3
	Direction vectors.Vec3
}

// NewRay normalizes dir. A zero-length dir yields a degenerate ray that
// never intersects anything.
func NewRay(origin, dir vectors.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at parameter t.
func (r Ray) At(t float64) vectors.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Degenerate reports whether the ray has no usable direction.
func (r Ray) Degenerate() bool {
	return r.Direction.IsZero()
}
