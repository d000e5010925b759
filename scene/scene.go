package scene

import (
	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/geom"
	"github.com/echoflaresat/osao/vectors"
)

// Scene holds the primitives and lights of a frame. It is populated once
// before rendering and only read afterwards, so concurrent queries need no
// locking.
type Scene struct {
	Primitives []geom.Primitive
	Lights     []Light
}

func New() *Scene {
	return &Scene{}
}

// Add appends primitives in order.
func (s *Scene) Add(p ...geom.Primitive) *Scene {
	s.Primitives = append(s.Primitives, p...)
	return s
}

// AddLight appends lights in order.
func (s *Scene) AddLight(l ...Light) *Scene {
	s.Lights = append(s.Lights, l...)
	return s
}

// IntersectObjects tests every primitive and keeps the nearest hit.
// There is no early exit and no acceleration structure.
func (s *Scene) IntersectObjects(r geom.Ray) (geom.Hit, bool) {
	var nearest geom.Hit
	found := false
	for _, p := range s.Primitives {
		hit, ok := p.Intersect(r)
		if !ok {
			continue
		}
		if !found || hit.Distance < nearest.Distance {
			nearest = hit
			found = true
		}
	}
	return nearest, found
}

// Shade sums the contribution of every light. Without lights the surface
// color passes through unlit.
func (s *Scene) Shade(r geom.Ray, distance float64, normal vectors.Vec3, surface colors.Color4) colors.Color4 {
	if len(s.Lights) == 0 {
		return surface
	}
	res := colors.Black()
	for _, l := range s.Lights {
		res = res.Add(l.Shade(r, distance, normal, surface))
	}
	return res
}

// Trace returns the lit color seen along r and the hit that produced it.
// A miss yields black.
func (s *Scene) Trace(r geom.Ray) (colors.Color4, geom.Hit, bool) {
	hit, ok := s.IntersectObjects(r)
	if !ok {
		return colors.Black(), hit, false
	}
	return s.Shade(r, hit.Distance, hit.Normal, hit.Color), hit, true
}
