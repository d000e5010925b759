// Package config collects render and presentation settings from defaults,
// an optional TOML file and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/echoflaresat/osao/render"
)

var ErrInvalid = errors.New("invalid configuration")

const MaxSamples = 4096

// Duration decodes TOML strings such as "33ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Samples     int     `toml:"samples"`
	Radius      float64 `toml:"radius"`
	MinDistance float64 `toml:"min_distance"`
	Sampling    string  `toml:"sampling"`
	Blur        int     `toml:"blur"`
	Workers     int     `toml:"workers"`
	Seed        uint64  `toml:"seed"`

	Scene    string   `toml:"scene"`
	View     string   `toml:"view"`
	Interval Duration `toml:"interval"`
	Scale    int      `toml:"scale"`
	Smooth   bool     `toml:"smooth"`
}

func Default() Config {
	return Config{
		Width:       640,
		Height:      480,
		Samples:     128,
		Radius:      0.40,
		MinDistance: 0.0001,
		Sampling:    render.SampleCube.String(),
		Blur:        9,
		Workers:     runtime.GOMAXPROCS(0),
		Seed:        1,
		Scene:       "default",
		View:        render.ViewFinal.String(),
		Interval:    Duration{33 * time.Millisecond},
		Scale:       1,
	}
}

// Decode overlays the keys present in r onto c. Unknown keys are an error.
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var sm *toml.StrictMissingError
		if errors.As(err, &sm) {
			return fmt.Errorf("%w: %s", ErrInvalid, sm.String())
		}
		return err
	}
	return nil
}

// Load overlays the TOML file at path onto c.
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	if err := c.Decode(f); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Validate checks every field and reports the first problem found.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case c.Samples < 1 || c.Samples > MaxSamples:
		return fmt.Errorf("%w: samples %d outside [1, %d]", ErrInvalid, c.Samples, MaxSamples)
	case c.Blur <= 0 || c.Blur%2 == 0:
		return fmt.Errorf("%w: blur kernel %d must be odd and positive", ErrInvalid, c.Blur)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min distance %g is negative", ErrInvalid, c.MinDistance)
	case c.Radius <= c.MinDistance:
		return fmt.Errorf("%w: radius %g must exceed min distance %g", ErrInvalid, c.Radius, c.MinDistance)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d is negative", ErrInvalid, c.Workers)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale %d must be at least 1", ErrInvalid, c.Scale)
	case c.Interval.Duration <= 0:
		return fmt.Errorf("%w: interval %v must be positive", ErrInvalid, c.Interval.Duration)
	}
	if _, err := render.ParseSampling(c.Sampling); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := render.ParseView(c.View); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Options converts the render settings. Call Validate first.
func (c Config) Options() render.Options {
	sampling, _ := render.ParseSampling(c.Sampling)
	workers := c.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return render.Options{
		Samples:     c.Samples,
		Radius:      c.Radius,
		MinDistance: c.MinDistance,
		Sampling:    sampling,
		BlurKernel:  c.Blur,
		Workers:     workers,
		Seed:        c.Seed,
	}
}

// InitialView is the parsed View. Call Validate first.
func (c Config) InitialView() render.View {
	v, _ := render.ParseView(c.View)
	return v
}

// RegisterFlags binds one flag per field, using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "Image width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "Image height in pixels")

	fs.IntVar(&c.Samples, "samples", c.Samples, "Occlusion rays per pixel")
	fs.Float64Var(&c.Radius, "radius", c.Radius, "Occlusion locality radius in world units")
	fs.Float64Var(&c.MinDistance, "min-distance", c.MinDistance, "Occlusion hits closer than this are ignored")
	fs.StringVar(&c.Sampling, "sampling", c.Sampling, "Hemisphere sampling: cube or rejection")
	fs.IntVar(&c.Blur, "blur", c.Blur, "Occlusion blur kernel size (odd)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Render goroutines (0 = GOMAXPROCS)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Sampling seed")

	fs.StringVar(&c.Scene, "scene", c.Scene, "Built-in scene name")

	fs.StringVar(&c.View, "view", c.View, "Initial view: direct, normals, depth, ao-raw, ao, final")
	fs.DurationVar(&c.Interval.Duration, "interval", c.Interval.Duration, "Presentation interval")
	fs.IntVar(&c.Scale, "scale", c.Scale, "Window scale factor")
	fs.BoolVar(&c.Smooth, "smooth", c.Smooth, "Bilinear filtering when scaling")
}

// Groups orders the flags of RegisterFlags for help output.
var Groups = []struct {
	Title string
	Names []string
}{
	{"Image Options", []string{"width", "height", "scene"}},
	{"Occlusion Options", []string{"samples", "radius", "min-distance", "sampling", "blur", "workers", "seed"}},
	{"Display Options", []string{"view", "interval", "scale", "smooth"}},
}

// PrintGroup writes the named flags of fs under a title.
func PrintGroup(w io.Writer, fs *flag.FlagSet, title string, names []string) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, name := range names {
		if f := fs.Lookup(name); f != nil {
			fmt.Fprintf(w, "  -%-13s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(w)
}

// Parse builds a Config from defaults, the file named by -config (if any)
// and the remaining flags, in increasing precedence, then validates it.
// Flags registered on fs by the caller are parsed as well.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	path := fs.String("config", "", "TOML configuration file")
	cfg.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if *path != "" {
		if err := cfg.Load(*path); err != nil {
			return cfg, err
		}
		// explicit flags win over the file
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}
