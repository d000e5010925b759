package geom

import (
	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/vectors"
)

// triangleEps rejects rays nearly parallel to the triangle plane.
const triangleEps = 1e-4

// Triangle is flat shaded: every hit reports the same face normal.
type Triangle struct {
	V0, V1, V2 vectors.Vec3
	Color      colors.Color4

	edge1, edge2 vectors.Vec3
	normal       vectors.Vec3
}

func NewTriangle(v0, v1, v2 vectors.Vec3, color colors.Color4) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		Color:  color,
		edge1:  v1.Sub(v0),
		edge2:  v2.Sub(v0),
		normal: v0.Sub(v1).Cross(v0.Sub(v2)).Normalize(),
	}
}

// Normal returns the precomputed face normal.
func (tr *Triangle) Normal() vectors.Vec3 {
	return tr.normal
}

// Intersect implements Möller–Trumbore.
func (tr *Triangle) Intersect(r Ray) (Hit, bool) {
	if r.Degenerate() {
		return Hit{}, false
	}

	p := r.Direction.Cross(tr.edge2)
	f := tr.edge1.Dot(p)
	if f < triangleEps && f > -triangleEps {
		return Hit{}, false
	}
	inv := 1.0 / f

	s := r.Origin.Sub(tr.V0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	q := s.Cross(tr.edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := tr.edge2.Dot(q) * inv
	if t < 0 {
		return Hit{}, false
	}
	return Hit{Distance: t, Normal: tr.normal, Color: tr.Color}, true
}
