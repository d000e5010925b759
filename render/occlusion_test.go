package render

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/geom"
	"github.com/echoflaresat/osao/scene"
	"github.com/echoflaresat/osao/vectors"
)

func TestTangentFrameIsOrthonormal(t *testing.T) {
	normals := []vectors.Vec3{
		vectors.New(0, 0, 1),
		vectors.New(0, 0, -1),
		vectors.New(1, 0, 0),
		vectors.New(0, -1, 0),
	}
	rng := rand.New(rand.NewPCG(11, 12))
	for i := 0; i < 200; i++ {
		n := vectors.New(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
		if n.Norm() > 1e-3 {
			normals = append(normals, n.Normalize())
		}
	}

	for _, n := range normals {
		tg, bn := TangentFrame(n)
		assert.InDelta(t, 1, tg.Norm(), 1e-9)
		assert.InDelta(t, 1, bn.Norm(), 1e-9)
		assert.InDelta(t, 0, tg.Dot(n), 1e-9)
		assert.InDelta(t, 0, bn.Dot(n), 1e-9)
		assert.InDelta(t, 0, tg.Dot(bn), 1e-9)
	}
}

func TestSampleDirectionsStayInHemisphere(t *testing.T) {
	n := vectors.New(0.3, -0.5, 0.8).Normalize()
	tg, bn := TangentFrame(n)
	rng := rand.New(rand.NewPCG(5, 6))

	for _, mode := range []Sampling{SampleCube, SampleRejection} {
		o := Occlusion{Sampling: mode}
		for i := 0; i < 1000; i++ {
			d := o.sampleDirection(rng, tg, bn, n)
			require.GreaterOrEqual(t, d.Dot(n), 0.0, mode.String())
			require.Greater(t, d.Norm(), 0.0)
			if mode == SampleRejection {
				require.LessOrEqual(t, d.Norm(), 1.0+1e-12)
			}
		}
	}
}

// enclosed builds a large room with a small sphere resting just above the
// floor, far from every other wall.
func enclosed() *scene.Scene {
	return scene.New().
		Add(
			geom.NewBox(vectors.New(-5, -5, -5), vectors.New(5, 5, 5), colors.White()),
			geom.NewSphere(vectors.New(0, -4.45, 0), 0.5, colors.White()),
		).
		AddLight(scene.NewAmbient(colors.White()))
}

func TestOcclusionNearWall(t *testing.T) {
	for _, mode := range []Sampling{SampleCube, SampleRejection} {
		t.Run(mode.String(), func(t *testing.T) {
			o := Occlusion{Scene: enclosed(), Samples: 256, Radius: 0.40, MinDistance: 0.0001, Sampling: mode}
			rng := rand.New(rand.NewPCG(1, 0))

			bottom := o.Estimate(vectors.New(0, -4.95, 0), vectors.New(0, -1, 0), rng)
			assert.Greater(t, bottom, 0.5)

			top := o.Estimate(vectors.New(0, -3.95, 0), vectors.New(0, 1, 0), rng)
			assert.InDelta(t, 0, top, 1e-9)
		})
	}
}

func TestOcclusionIgnoresFarGeometry(t *testing.T) {
	sc := scene.New().Add(
		geom.NewSphere(vectors.Zero(), 1, colors.White()),
		geom.NewSphere(vectors.New(0, 2.5, 0), 1, colors.White()),
	)
	o := Occlusion{Scene: sc, Samples: 256, Radius: 0.40, MinDistance: 0.0001}
	rng := rand.New(rand.NewPCG(2, 0))

	// 0.5 units of clearance above the top of the first sphere
	f := o.Estimate(vectors.New(0, 1, 0), vectors.New(0, 1, 0), rng)
	assert.Equal(t, 0.0, f)

	o.Radius = 2
	f = o.Estimate(vectors.New(0, 1, 0), vectors.New(0, 1, 0), rng)
	// the second sphere covers roughly a fifth of the cube-distributed samples
	assert.Greater(t, f, 0.1)
	assert.Less(t, f, 0.4)
}

func TestOcclusionRequiresSamples(t *testing.T) {
	o := Occlusion{Scene: enclosed()}
	assert.Panics(t, func() {
		o.Estimate(vectors.Zero(), vectors.New(0, 1, 0), rand.New(rand.NewPCG(1, 1)))
	})
}

func TestParseSampling(t *testing.T) {
	for _, s := range []Sampling{SampleCube, SampleRejection} {
		got, err := ParseSampling(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSampling("cosine")
	assert.Error(t, err)
}
