package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"default", "enclosed", "prism", "sphere"}, Names())

	for _, name := range Names() {
		b, err := Lookup(name)
		require.NoError(t, err, name)
		sc, cam := b(32, 24)
		require.NotNil(t, sc)
		require.NotNil(t, cam)
		w, h := cam.Size()
		assert.Equal(t, 32, w)
		assert.Equal(t, 24, h)
		assert.NotEmpty(t, sc.Primitives)
		assert.NotEmpty(t, sc.Lights)
	}

	_, err := Lookup("cornell")
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestClosedScenesCoverEveryPixel(t *testing.T) {
	for _, name := range []string{"default", "enclosed", "prism"} {
		t.Run(name, func(t *testing.T) {
			b, err := Lookup(name)
			require.NoError(t, err)
			sc, cam := b(16, 12)
			for y := 0; y < 12; y++ {
				for x := 0; x < 16; x++ {
					_, ok := sc.IntersectObjects(cam.Ray(float64(x), float64(y)))
					require.True(t, ok, "pixel %d,%d", x, y)
				}
			}
		})
	}
}

func TestSphereSceneFramesTheSphere(t *testing.T) {
	sc, cam := Sphere(64, 64)
	_, ok := sc.IntersectObjects(cam.Ray(32, 32))
	assert.True(t, ok)
	_, ok = sc.IntersectObjects(cam.Ray(0, 0))
	assert.False(t, ok, "corners look past the sphere")
}
