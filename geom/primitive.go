package geom

import (
	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/vectors"
)

// Hit describes the nearest intersection of a ray with a primitive.
type Hit struct {
	Distance float64
	Normal   vectors.Vec3
	Color    colors.Color4
}

// Point returns the world-space hit position along r.
func (h Hit) Point(r Ray) vectors.Vec3 {
	return r.At(h.Distance)
}

// Primitive is the closed set of shapes a scene can hold: *Sphere, *Box and
// *Triangle. Intersect reports the smallest non-negative ray parameter.
type Primitive interface {
	Intersect(r Ray) (Hit, bool)
	primitive()
}

func (*Sphere) primitive()   {}
func (*Box) primitive()      {}
func (*Triangle) primitive() {}
