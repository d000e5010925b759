package display

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/echoflaresat/osao/render"
)

// ErrStopped is returned by Tick once a stop event has been received.
var ErrStopped = errors.New("display: presenter stopped")

// Presenter pulls the buffer selected by the current view and hands it to a
// sink. It reads buffers wherever the render job currently is, so frames
// shown mid-render may be partially written.
type Presenter struct {
	ctx   *render.Context
	sink  Sink
	input InputSource

	view    render.View
	stopped bool
	frames  int
	cache   *lru.Cache // render.View -> cachedFrame
}

// cachedFrame is a snapshot together with the buffer generation it was
// taken at.
type cachedFrame struct {
	generation uint64
	frame      *image.NRGBA
}

// CacheSize is the number of per-view snapshots kept: the current view and
// the one shown before it.
const CacheSize = 2

// NewPresenter starts on the given view.
func NewPresenter(ctx *render.Context, sink Sink, input InputSource, view render.View) *Presenter {
	cache, err := lru.New(CacheSize)
	if err != nil {
		panic(err)
	}
	if input == nil {
		input = InputFunc(func() []Event { return nil })
	}
	return &Presenter{
		ctx:   ctx,
		sink:  sink,
		input: input,
		view:  view,
		cache: cache,
	}
}

// View returns the currently selected view.
func (p *Presenter) View() render.View {
	return p.view
}

// Frames counts the frames handed to the sink.
func (p *Presenter) Frames() int {
	return p.frames
}

// Tick polls input once and presents the selected buffer. After a stop event
// it returns ErrStopped without presenting.
func (p *Presenter) Tick() error {
	if p.stopped {
		return ErrStopped
	}

	for _, e := range p.input.Poll() {
		switch e.Kind {
		case EventStop:
			p.stopped = true
		case EventSelectView:
			if e.View < 0 || int(e.View) >= render.NumViews {
				slog.Warn("ignoring unknown view", "view", int(e.View))
				continue
			}
			if e.View != p.view {
				slog.Debug("view selected", "view", e.View)
			}
			p.view = e.View
		}
	}
	if p.stopped {
		return ErrStopped
	}

	p.present()
	return nil
}

// Flush presents the current view once more, even after a stop event. It
// hands the finished frame to the sink when presentation stopped because the
// render completed.
func (p *Presenter) Flush() {
	p.present()
}

func (p *Presenter) present() {
	p.sink.Present(p.view, p.snapshot(p.view))
	p.frames++
}

// snapshot holds every buffer lock while serializing so the frame is taken
// from a single consistent instant. A buffer whose generation has not moved
// since its cached snapshot is served from the cache.
func (p *Presenter) snapshot(v render.View) *image.NRGBA {
	p.ctx.LockAll()
	defer p.ctx.UnlockAll()

	img := p.ctx.Buffer(v)
	gen := img.GenerationLocked()
	if cached, ok := p.cache.Get(v); ok {
		if c := cached.(cachedFrame); c.generation == gen {
			return c.frame
		}
	}
	frame := img.SnapshotLocked()
	p.cache.Add(v, cachedFrame{generation: gen, frame: frame})
	return frame
}

// Run ticks every interval until a stop event arrives or ctx is cancelled.
func (p *Presenter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := p.Tick(); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
