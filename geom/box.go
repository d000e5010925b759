package geom

import (
	"math"

	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/vectors"
)

// parallelEps is the threshold below which a ray counts as parallel to a slab.
const parallelEps = 1e-10

var boxAxes = [3]vectors.Vec3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

// Box is an axis-aligned box given by its opposite corners.
type Box struct {
	Min, Max vectors.Vec3
	Color    colors.Color4

	center   vectors.Vec3
	halfSize [3]float64
}

// NewBox accepts the corners in any order.
func NewBox(a, b vectors.Vec3, color colors.Color4) *Box {
	lo, hi := vectors.Min(a, b), vectors.Max(a, b)
	half := hi.Sub(lo).Scale(0.5)
	return &Box{
		Min:      lo,
		Max:      hi,
		Color:    color,
		center:   lo.Add(hi).Scale(0.5),
		halfSize: [3]float64{half.X, half.Y, half.Z},
	}
}

// Intersect uses the slab method. Faces are numbered 2*axis for the positive
// face and 2*axis+1 for the negative one. From outside the box the entry face
// normal points outward; from inside, the exit face normal points back toward
// the ray origin.
func (b *Box) Intersect(r Ray) (Hit, bool) {
	if r.Degenerate() {
		return Hit{}, false
	}

	tmin, tmax := math.Inf(-1), math.Inf(1)
	idMin, idMax := 0, 0

	p := b.center.Sub(r.Origin)
	for i := 0; i < 3; i++ {
		e := p.Axis(i)
		f := r.Direction.Axis(i)
		h := b.halfSize[i]

		if math.Abs(f) <= parallelEps {
			// parallel: origin must lie within the slab
			if -e-h > 0 || -e+h < 0 {
				return Hit{}, false
			}
			continue
		}

		id1, id2 := 2*i, 2*i+1
		t1 := (e + h) / f
		t2 := (e - h) / f
		if t1 > t2 {
			t1, t2 = t2, t1
			id1, id2 = id2, id1
		}
		if t1 > tmin {
			tmin, idMin = t1, id1
		}
		if t2 < tmax {
			tmax, idMax = t2, id2
		}
		if tmax < 0 || tmin > tmax {
			return Hit{}, false
		}
	}

	var t float64
	var n vectors.Vec3
	if tmin > 0 {
		t = tmin
		n = faceNormal(idMin)
	} else {
		t = tmax
		n = faceNormal(idMax).Neg()
	}
	if math.IsInf(t, 0) {
		return Hit{}, false
	}
	return Hit{Distance: t, Normal: n, Color: b.Color}, true
}

func faceNormal(id int) vectors.Vec3 {
	n := boxAxes[id/2]
	if id%2 == 1 {
		return n.Neg()
	}
	return n
}

// Contains reports whether p lies inside or on the box.
func (b *Box) Contains(p vectors.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
