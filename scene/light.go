package scene

import (
	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/geom"
	"github.com/echoflaresat/osao/vectors"
)

// Light is the closed set of light kinds: Ambient and Directional.
// Shade returns the light's contribution for a surface of the given color.
type Light interface {
	Shade(r geom.Ray, distance float64, normal vectors.Vec3, surface colors.Color4) colors.Color4
	light()
}

// Ambient tints every surface uniformly.
type Ambient struct {
	Color colors.Color4
}

func NewAmbient(c colors.Color4) Ambient {
	return Ambient{Color: c}
}

func (a Ambient) Shade(_ geom.Ray, _ float64, _ vectors.Vec3, surface colors.Color4) colors.Color4 {
	return a.Color.Mul(surface)
}

// Directional is a light at infinity shining along Direction.
type Directional struct {
	Color     colors.Color4
	Direction vectors.Vec3
}

// NewDirectional normalizes dir, the direction light travels in.
func NewDirectional(c colors.Color4, dir vectors.Vec3) Directional {
	return Directional{Color: c, Direction: dir.Normalize()}
}

// Shade is a plain Lambertian term. The normal is flipped to face the
// incoming ray so both sides of a surface can be lit.
func (d Directional) Shade(r geom.Ray, _ float64, normal vectors.Vec3, surface colors.Color4) colors.Color4 {
	n := normal
	if n.Dot(r.Direction) > 0 {
		n = n.Neg()
	}

	diffuse := -n.Dot(d.Direction)
	if diffuse < 0 {
		return colors.Black()
	}
	return surface.Mul(d.Color.Scale(diffuse))
}

func (Ambient) light()     {}
func (Directional) light() {}
