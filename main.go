package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/echoflaresat/osao/config"
	"github.com/echoflaresat/osao/display"
	"github.com/echoflaresat/osao/render"
	"github.com/echoflaresat/osao/scenes"
)

type flags struct {
	out      *string
	allViews *bool
	verbose  *bool
	showHelp *bool
}

func defineFlags(fs *flag.FlagSet) flags {
	return flags{
		out:      fs.String("out", "osao.png", "Output PNG file path (scaled by -scale)"),
		allViews: fs.Bool("all", false, "Also write every view next to -out"),
		verbose:  fs.Bool("v", false, "Debug logging"),
		showHelp: fs.Bool("h", false, "Show this help message"),
	}
}

func printHelp(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, `Object-Space Ambient Occlusion Renderer

Usage:
  %[1]s [options]

Scenes: %[2]s

`, os.Args[0], strings.Join(scenes.Names(), ", "))

		for _, g := range config.Groups {
			config.PrintGroup(os.Stderr, fs, g.Title, g.Names)
		}
		config.PrintGroup(os.Stderr, fs, "Output", []string{"out", "all", "config"})
		config.PrintGroup(os.Stderr, fs, "Misc", []string{"v", "h"})
	}
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := defineFlags(fs)
	fs.Usage = printHelp(fs)

	cfg, err := config.Parse(fs, os.Args[1:])
	if *opts.showHelp {
		fs.Usage()
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	level := slog.LevelInfo
	if *opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, err := newContext(cfg)
	if err != nil {
		log.Fatal(err)
	}

	slog.Info("rendering",
		"scene", cfg.Scene,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"samples", cfg.Samples,
		"sampling", cfg.Sampling,
		"workers", ctx.Options.Workers)

	job := ctx.Start()
	sink := display.NewImageSink(cfg.Scale, cfg.Smooth)
	presenter := display.NewPresenter(ctx, sink, display.StopWhen(job.Done()), cfg.InitialView())
	err = presenter.Run(context.Background(), cfg.Interval.Duration)
	display.Shutdown(job)
	if err != nil {
		log.Fatal(err)
	}
	// the stop event arrives with the finished render; show that frame too
	presenter.Flush()
	slog.Info("done", "frames", presenter.Frames())

	frame, _ := sink.Last()
	if err := writePNG(*opts.out, frame); err != nil {
		log.Fatalf("Failed to write PNG: %v", err)
	}
	if *opts.allViews {
		for v := render.View(0); int(v) < render.NumViews; v++ {
			path := viewPath(*opts.out, v)
			if err := writePNG(path, ctx.Buffer(v).Snapshot()); err != nil {
				log.Fatalf("Failed to write PNG: %v", err)
			}
			slog.Debug("wrote view", "view", v, "path", path)
		}
	}
}

// newContext builds the configured scene and allocates its buffers.
func newContext(cfg config.Config) (*render.Context, error) {
	build, err := scenes.Lookup(cfg.Scene)
	if err != nil {
		return nil, err
	}
	sc, cam := build(cfg.Width, cfg.Height)
	return render.NewContext(sc, cam, cfg.Options()), nil
}

// renderView runs every pass synchronously and returns one view.
func renderView(cfg config.Config, v render.View) (image.Image, error) {
	ctx, err := newContext(cfg)
	if err != nil {
		return nil, err
	}
	render.NewJob(ctx).Run()
	return ctx.Buffer(v).Snapshot(), nil
}

// viewPath turns out.png into out-<view>.png.
func viewPath(out string, v render.View) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "-" + v.String() + ext
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img)
}
