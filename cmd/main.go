package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/echoflaresat/osao/config"
	"github.com/echoflaresat/osao/display"
	"github.com/echoflaresat/osao/render"
	"github.com/echoflaresat/osao/scenes"
)

var viewKeys = [render.NumViews]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// viewer is the window: ebiten polls it for input and draws whatever the
// presenter last handed to the sink.
type viewer struct {
	job       *render.Job
	presenter *display.Presenter
	sink      *display.ImageSink

	width, height int
	frame         *ebiten.Image
	pix           []byte
	title         string
}

func newViewer(ctx *render.Context, job *render.Job, cfg config.Config) *viewer {
	w, h := ctx.Size()
	v := &viewer{
		job:    job,
		sink:   display.NewImageSink(cfg.Scale, cfg.Smooth),
		width:  w * cfg.Scale,
		height: h * cfg.Scale,
	}
	v.frame = ebiten.NewImage(v.width, v.height)
	v.pix = make([]byte, 4*v.width*v.height)
	v.presenter = display.NewPresenter(ctx, v.sink, v, cfg.InitialView())
	return v
}

// Poll maps keys 1-6 to views and Escape or Q to stop.
func (v *viewer) Poll() []display.Event {
	var events []display.Event
	for i, k := range viewKeys {
		if inpututil.IsKeyJustPressed(k) {
			events = append(events, display.SelectView(render.View(i)))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		events = append(events, display.Stop())
	}
	return events
}

func (v *viewer) Update() error {
	if err := v.presenter.Tick(); err != nil {
		if errors.Is(err, display.ErrStopped) {
			return ebiten.Termination
		}
		return err
	}

	title := fmt.Sprintf("osao - %v [%v]", v.presenter.View(), v.job.State())
	if title != v.title {
		ebiten.SetWindowTitle(title)
		v.title = title
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if !v.sink.CopyTo(v.pix) {
		return
	}
	v.frame.WritePixels(v.pix)
	screen.DrawImage(v.frame, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Ambient Occlusion Viewer\n\nUsage:\n  %s [options]\n\nKeys: 1-6 select a view, Esc quits.\n\n", os.Args[0])
		for _, g := range config.Groups {
			config.PrintGroup(os.Stderr, fs, g.Title, g.Names)
		}
		config.PrintGroup(os.Stderr, fs, "Misc", []string{"config", "v"})
	}

	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	build, err := scenes.Lookup(cfg.Scene)
	if err != nil {
		log.Fatal(err)
	}
	sc, cam := build(cfg.Width, cfg.Height)
	ctx := render.NewContext(sc, cam, cfg.Options())

	job := ctx.Start()
	game := newViewer(ctx, job, cfg)

	ebiten.SetTPS(max(1, int(time.Second/cfg.Interval.Duration)))
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("osao")
	err = ebiten.RunGame(game)
	display.Shutdown(job)
	if err != nil {
		log.Fatal(err)
	}
}
