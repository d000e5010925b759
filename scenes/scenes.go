// Package scenes holds the built-in scene descriptions.
package scenes

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/echoflaresat/osao/colors"
	"github.com/echoflaresat/osao/geom"
	"github.com/echoflaresat/osao/render"
	"github.com/echoflaresat/osao/scene"
	"github.com/echoflaresat/osao/vectors"
)

var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a scene and a camera sized for a width x height image.
type Builder func(width, height int) (*scene.Scene, *render.Camera)

var builtin = map[string]Builder{
	"default":  Room,
	"sphere":   Sphere,
	"enclosed": Enclosed,
	"prism":    Prism,
}

// Lookup returns the builder registered under name.
func Lookup(name string) (Builder, error) {
	b, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownScene, name, Names())
	}
	return b, nil
}

// Names lists the built-in scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var up = vectors.New(0, 1, 0)

// Room is the demo scene: three spheres resting in an open-fronted box lit
// by a dim ambient term and a white light from above and behind the viewer.
func Room(width, height int) (*scene.Scene, *render.Camera) {
	sc := scene.New().
		Add(
			geom.NewSphere(vectors.New(0.75, -1, -4.75), 1, colors.Yellow()),
			geom.NewSphere(vectors.New(-0.75, -1.25, -3.5), 0.75, colors.Blue()),
			geom.NewSphere(vectors.New(0.5, -1.6, -3.5), 0.4, colors.Green()),
			geom.NewBox(vectors.New(-2, -2, -6), vectors.New(2, 2, 0.1), colors.White().Scale(0.8)),
		).
		AddLight(
			scene.NewAmbient(colors.Gray(0.2)),
			scene.NewDirectional(colors.White(), vectors.New(0, 1, 0.6).Neg()),
		)

	cam := render.NewCamera(math.Pi/3.2,
		vectors.New(0, -0.7, -0.3),
		vectors.New(0, -0.7, -6),
		up, width, height)
	return sc, cam
}

// Sphere is a unit sphere at the origin seen from five units away under
// full ambient light.
func Sphere(width, height int) (*scene.Scene, *render.Camera) {
	sc := scene.New().
		Add(geom.NewSphere(vectors.Zero(), 1, colors.White())).
		AddLight(scene.NewAmbient(colors.White()))
	cam := render.NewCamera(math.Pi/3, vectors.New(0, 0, 5), vectors.Zero(), up, width, height)
	return sc, cam
}

// Enclosed is a closed 10-unit room with a small sphere hovering just above
// the floor. Only the floor under the sphere and the sphere's underside
// should darken.
func Enclosed(width, height int) (*scene.Scene, *render.Camera) {
	sc := scene.New().
		Add(
			geom.NewBox(vectors.New(-5, -5, -5), vectors.New(5, 5, 5), colors.White()),
			geom.NewSphere(vectors.New(0, -4.45, 0), 0.5, colors.White()),
		).
		AddLight(
			scene.NewAmbient(colors.Gray(0.3)),
			scene.NewDirectional(colors.Gray(0.7), vectors.New(0.2, -1, -0.3)),
		)
	cam := render.NewCamera(math.Pi/3,
		vectors.New(0, -2.5, 4.5),
		vectors.New(0, -4.45, 0),
		up, width, height)
	return sc, cam
}

// Prism stands a triangular prism and a tilted ground quad inside a box,
// so creases between triangles and walls pick up occlusion.
func Prism(width, height int) (*scene.Scene, *render.Camera) {
	red := colors.FromARGB(0xffc0392b)
	gray := colors.Gray(0.75)

	// prism base triangle on the floor, apex ridge along z
	a0 := vectors.New(-0.8, -1, -3.2)
	b0 := vectors.New(0.8, -1, -3.2)
	c0 := vectors.New(0, 0.2, -3.2)
	a1 := vectors.New(-0.8, -1, -4.6)
	b1 := vectors.New(0.8, -1, -4.6)
	c1 := vectors.New(0, 0.2, -4.6)

	sc := scene.New().
		Add(
			// caps
			geom.NewTriangle(a0, b0, c0, red),
			geom.NewTriangle(a1, c1, b1, red),
			// sloped sides
			geom.NewTriangle(a0, c0, c1, red),
			geom.NewTriangle(a0, c1, a1, red),
			geom.NewTriangle(b0, b1, c1, red),
			geom.NewTriangle(b0, c1, c0, red),
			geom.NewSphere(vectors.New(1.4, -0.6, -3.6), 0.4, colors.Blue()),
			geom.NewBox(vectors.New(-2.5, -1, -6), vectors.New(2.5, 2, 0.5), gray),
		).
		AddLight(
			scene.NewAmbient(colors.Gray(0.25)),
			scene.NewDirectional(colors.White(), vectors.New(-0.4, -1, -0.5)),
		)
	cam := render.NewCamera(math.Pi/3.2,
		vectors.New(0.3, 0.4, -0.2),
		vectors.New(0, -0.6, -4),
		up, width, height)
	return sc, cam
}
