package main

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoflaresat/osao/config"
	"github.com/echoflaresat/osao/render"
	"github.com/echoflaresat/osao/scenes"
)

func testConfig(scene string) config.Config {
	cfg := config.Default()
	cfg.Scene = scene
	cfg.Width = 48
	cfg.Height = 36
	cfg.Samples = 16
	return cfg
}

func TestViews(t *testing.T) {
	for _, name := range scenes.Names() {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(name)
			require.NoError(t, cfg.Validate())

			cfg.Workers = 1
			serial, err := renderView(cfg, render.ViewFinal)
			require.NoError(t, err)

			cfg.Workers = 4
			parallel, err := renderView(cfg, render.ViewFinal)
			require.NoError(t, err)

			assert.Equal(t, image.Rect(0, 0, 48, 36), serial.Bounds())
			assert.True(t, imagesEqual(serial, parallel), "render depends on worker count")
		})
	}
}

func TestSeedChangesOcclusion(t *testing.T) {
	cfg := testConfig("default")
	a, err := renderView(cfg, render.ViewOcclusionRaw)
	require.NoError(t, err)

	cfg.Seed = 7
	b, err := renderView(cfg, render.ViewOcclusionRaw)
	require.NoError(t, err)
	assert.False(t, imagesEqual(a, b))
}

func TestUnknownScene(t *testing.T) {
	_, err := renderView(testConfig("teapot"), render.ViewFinal)
	assert.ErrorIs(t, err, scenes.ErrUnknownScene)
}

func TestWritePNG(t *testing.T) {
	img, err := renderView(testConfig("sphere"), render.ViewDirect)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, writePNG(path, img))
	assert.Equal(t, filepath.Join("x", "out-ao.png"), viewPath(filepath.Join("x", "out.png"), render.ViewOcclusion))
}

func imagesEqual(a, b image.Image) bool {
	var bufA, bufB bytes.Buffer
	_ = png.Encode(&bufA, a)
	_ = png.Encode(&bufB, b)
	return bytes.Equal(bufA.Bytes(), bufB.Bytes())
}
