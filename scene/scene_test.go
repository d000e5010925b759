package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/geom"
	"github.com/echoflaresat/osao/vectors"
)

func TestIntersectObjectsKeepsNearest(t *testing.T) {
	far := geom.NewSphere(vectors.New(0, 0, -10), 1, colors.Blue())
	near := geom.NewSphere(vectors.New(0, 0, -4), 1, colors.Yellow())
	r := geom.NewRay(vectors.Zero(), vectors.New(0, 0, -1))

	for name, s := range map[string]*Scene{
		"near first": New().Add(near, far),
		"far first":  New().Add(far, near),
	} {
		t.Run(name, func(t *testing.T) {
			hit, ok := s.IntersectObjects(r)
			require.True(t, ok)
			assert.InDelta(t, 3.0, hit.Distance, 1e-9)
			assert.Equal(t, colors.Yellow(), hit.Color)
			assert.True(t, vectors.New(0, 0, 1).ApproxEqual(hit.Normal))
		})
	}
}

func TestIntersectObjectsEmpty(t *testing.T) {
	_, ok := New().IntersectObjects(geom.NewRay(vectors.Zero(), vectors.New(1, 0, 0)))
	assert.False(t, ok)
}

func TestShadeWithoutLightsPassesThrough(t *testing.T) {
	c := colors.New(0.3, 0.2, 0.1, 1)
	got := New().Shade(geom.NewRay(vectors.Zero(), vectors.New(0, 0, -1)), 1, vectors.New(0, 0, 1), c)
	assert.Equal(t, c, got)
}

func TestShadeAccumulatesLights(t *testing.T) {
	amb := NewAmbient(colors.Gray(0.2))
	dir := NewDirectional(colors.White(), vectors.New(0, 0, -1))
	r := geom.NewRay(vectors.New(0, 0, 5), vectors.New(0, 0, -1))
	surface := colors.New(1, 0.5, 0.25, 1)

	a := New().AddLight(amb, dir).Shade(r, 4, vectors.New(0, 0, 1), surface)
	b := New().AddLight(dir, amb).Shade(r, 4, vectors.New(0, 0, 1), surface)

	assert.True(t, a.ApproxEqual(b, 1e-12), "light order must not matter")
	assert.True(t, colors.New(1.2, 0.6, 0.3, 1).ApproxEqual(a, 1e-12))
}

func TestDirectionalLight(t *testing.T) {
	l := NewDirectional(colors.White(), vectors.New(0, -1, 0))
	surface := colors.White()
	down := geom.NewRay(vectors.New(0, 5, 0), vectors.New(0, -1, 0))

	t.Run("facing", func(t *testing.T) {
		c := l.Shade(down, 5, vectors.New(0, 1, 0), surface)
		assert.True(t, colors.White().ApproxEqual(c, 1e-12))
	})
	t.Run("flipped normal", func(t *testing.T) {
		c := l.Shade(down, 5, vectors.New(0, -1, 0), surface)
		assert.True(t, colors.White().ApproxEqual(c, 1e-12))
	})
	t.Run("back lit clamps to black", func(t *testing.T) {
		up := geom.NewRay(vectors.New(0, -5, 0), vectors.New(0, 1, 0))
		c := l.Shade(up, 5, vectors.New(0, -1, 0), surface)
		assert.Equal(t, colors.Black(), c)
	})
	t.Run("grazing", func(t *testing.T) {
		side := geom.NewRay(vectors.New(0, 5, 0), vectors.New(0, -1, 0))
		c := l.Shade(side, 5, vectors.New(1, 1, 0).Normalize(), surface)
		assert.InDelta(t, 0.70710678, c.R, 1e-6)
	})
}

func TestTraceMissIsBlack(t *testing.T) {
	s := New().Add(geom.NewSphere(vectors.New(0, 0, -5), 1, colors.White()))
	c, _, ok := s.Trace(geom.NewRay(vectors.Zero(), vectors.New(0, 1, 0)))
	assert.False(t, ok)
	assert.Equal(t, colors.Black(), c)
}
