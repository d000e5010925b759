package render

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/echoflaresat/osao/geom"
	"github.com/echoflaresat/osao/scene"
	"github.com/echoflaresat/osao/vectors"
)

// Sampling selects how hemisphere directions are drawn.
type Sampling int

const (
	// SampleCube draws u,v in [-1,1] and w in [0,1] and normalizes directly.
	SampleCube Sampling = iota
	// SampleRejection draws the same box but discards points outside the
	// unit ball before normalizing, which removes the bias toward the corners.
	SampleRejection
)

func (s Sampling) String() string {
	switch s {
	case SampleCube:
		return "cube"
	case SampleRejection:
		return "rejection"
	}
	return fmt.Sprintf("Sampling(%d)", int(s))
}

// ParseSampling is the inverse of String.
func ParseSampling(name string) (Sampling, error) {
	switch name {
	case "cube":
		return SampleCube, nil
	case "rejection":
		return SampleRejection, nil
	}
	return 0, fmt.Errorf("unknown sampling mode %q", name)
}

const (
	// tangentEps decides when a normal is too close to ±Z to build the
	// tangent from its X/Y components.
	tangentEps = 1e-6
	// minSampleLength rejects draws too short to normalize reliably.
	minSampleLength = 1e-6
)

// TangentFrame returns unit vectors t and b with t ⊥ n and b = t × n.
func TangentFrame(n vectors.Vec3) (t, b vectors.Vec3) {
	if math.Abs(n.X) > tangentEps || math.Abs(n.Y) > tangentEps {
		t = vectors.New(-n.Y, n.X, 0).Normalize()
	} else {
		t = vectors.New(0, -n.Z, n.Y).Normalize()
	}
	return t, t.Cross(n)
}

// Occlusion estimates object-space ambient occlusion by firing a batch of
// hemisphere rays from a surface point and counting hits inside the
// (MinDistance, Radius) window. Hits beyond Radius count as open sky.
type Occlusion struct {
	Scene       *scene.Scene
	Samples     int
	Radius      float64
	MinDistance float64
	Sampling    Sampling
}

// Estimate returns the fraction of sample rays from p that are blocked,
// 0 for fully open and 1 for fully occluded. n must be the unit normal on
// the side the point is seen from.
func (o Occlusion) Estimate(p, n vectors.Vec3, rng *rand.Rand) float64 {
	if o.Samples <= 0 {
		panic(fmt.Sprintf("occlusion: sample count must be positive, got %d", o.Samples))
	}

	t, b := TangentFrame(n)
	// lift off the surface so the point cannot re-hit its own primitive at t≈0
	origin := p.Add(n.Scale(o.MinDistance))

	blocked := 0
	for i := 0; i < o.Samples; i++ {
		dir := o.sampleDirection(rng, t, b, n)
		hit, ok := o.Scene.IntersectObjects(geom.NewRay(origin, dir))
		if ok && hit.Distance > o.MinDistance && hit.Distance < o.Radius {
			blocked++
		}
	}
	return float64(blocked) / float64(o.Samples)
}

func (o Occlusion) sampleDirection(rng *rand.Rand, t, b, n vectors.Vec3) vectors.Vec3 {
	for {
		u := rng.Float64()*2 - 1
		v := rng.Float64()*2 - 1
		w := rng.Float64()

		l2 := u*u + v*v + w*w
		if l2 < minSampleLength*minSampleLength {
			continue
		}
		if o.Sampling == SampleRejection && l2 > 1 {
			continue
		}
		return t.Scale(u).Add(b.Scale(v)).Add(n.Scale(w))
	}
}

// faceForward flips n so it faces back along dir.
func faceForward(n, dir vectors.Vec3) vectors.Vec3 {
	if n.Dot(dir) > 0 {
		return n.Neg()
	}
	return n
}
