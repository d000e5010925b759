package config

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoflaresat/osao/render"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	opts := c.Options()
	assert.Equal(t, 128, opts.Samples)
	assert.InDelta(t, 0.40, opts.Radius, 1e-12)
	assert.InDelta(t, 0.0001, opts.MinDistance, 1e-12)
	assert.Equal(t, render.SampleCube, opts.Sampling)
	assert.Equal(t, 9, opts.BlurKernel)
	assert.Equal(t, uint64(1), opts.Seed)
	assert.Greater(t, opts.Workers, 0)
	assert.Equal(t, render.ViewFinal, c.InitialView())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"no samples", func(c *Config) { c.Samples = 0 }},
		{"too many samples", func(c *Config) { c.Samples = MaxSamples + 1 }},
		{"even blur", func(c *Config) { c.Blur = 8 }},
		{"radius below min distance", func(c *Config) { c.Radius = 0.00001 }},
		{"negative min distance", func(c *Config) { c.MinDistance = -1 }},
		{"unknown sampling", func(c *Config) { c.Sampling = "cosine" }},
		{"unknown view", func(c *Config) { c.View = "albedo" }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"zero interval", func(c *Config) { c.Interval.Duration = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestDecode(t *testing.T) {
	c := Default()
	err := c.Decode(strings.NewReader(`
samples = 64
sampling = "rejection"
interval = "100ms"
scene = "enclosed"
`))
	require.NoError(t, err)
	assert.Equal(t, 64, c.Samples)
	assert.Equal(t, "rejection", c.Sampling)
	assert.Equal(t, 100*time.Millisecond, c.Interval.Duration)
	assert.Equal(t, "enclosed", c.Scene)
	assert.Equal(t, 640, c.Width, "absent keys keep their value")
	require.NoError(t, c.Validate())
	assert.Equal(t, render.SampleRejection, c.Options().Sampling)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	c := Default()
	err := c.Decode(strings.NewReader("samples = 32\nsupersample = 3\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParsePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ao.toml")
	require.NoError(t, os.WriteFile(path, []byte("samples = 32\nradius = 0.8\n"), 0o644))

	c, err := Parse(newFlagSet(), []string{"-config", path, "-samples", "16", "-view", "ao"})
	require.NoError(t, err)
	assert.Equal(t, 16, c.Samples, "flag beats file")
	assert.InDelta(t, 0.8, c.Radius, 1e-12, "file beats default")
	assert.Equal(t, 480, c.Height)
	assert.Equal(t, render.ViewOcclusion, c.InitialView())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-blur", "4"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Parse(newFlagSet(), []string{"-config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Parse(newFlagSet(), []string{"-nope"})
	assert.Error(t, err)
}

func TestPrintGroup(t *testing.T) {
	fs := newFlagSet()
	c := Default()
	c.RegisterFlags(fs)

	var buf bytes.Buffer
	for _, g := range Groups {
		PrintGroup(&buf, fs, g.Title, g.Names)
	}
	out := buf.String()
	assert.Contains(t, out, "Occlusion Options:")
	assert.Contains(t, out, "-samples")
	assert.Contains(t, out, `(default "128")`)
}
