package geom

import (
	"math"

	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/vectors"
)

type Sphere struct {
	Center vectors.Vec3
	Radius float64
	Color  colors.Color4
}

func NewSphere(center vectors.Vec3, radius float64, color colors.Color4) *Sphere {
	return &Sphere{Center: center, Radius: radius, Color: color}
}

// Intersect solves |O + tD - C|² = r². When the origin is inside the sphere
// the exit point is returned. The normal always points outward.
func (s *Sphere) Intersect(r Ray) (Hit, bool) {
	if r.Degenerate() {
		return Hit{}, false
	}

	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2.0 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4.0*a*c
	if disc < 0 {
		return Hit{}, false
	}

	// q form avoids cancellation when b² >> 4ac
	sqrtDisc := math.Sqrt(disc)
	var q float64
	if b < 0 {
		q = (-b - sqrtDisc) / 2.0
	} else {
		q = (-b + sqrtDisc) / 2.0
	}
	if q == 0 {
		return Hit{}, false
	}
	t0 := q / a
	t1 := c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if t1 < 0 {
		return Hit{}, false
	}
	t := t0
	if t0 < 0 {
		t = t1
	}

	n := r.At(t).Sub(s.Center).Normalize()
	return Hit{Distance: t, Normal: n, Color: s.Color}, true
}
