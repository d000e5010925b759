// Package display presents the buffers of a render context to an external
// display at its own cadence.
package display

import (
	"image"

	"github.com/echoflaresat/osao/render"
)

// Sink receives one read-only 8-bit snapshot per presentation tick. The
// frame uses R,G,B,A byte order and must not be modified.
type Sink interface {
	Present(view render.View, frame *image.NRGBA)
}

// EventKind distinguishes input events.
type EventKind int

const (
	EventSelectView EventKind = iota
	EventStop
)

// Event is a discrete input: a view selection or a stop request.
type Event struct {
	Kind EventKind
	View render.View
}

func SelectView(v render.View) Event {
	return Event{Kind: EventSelectView, View: v}
}

func Stop() Event {
	return Event{Kind: EventStop}
}

// InputSource is polled once per tick and must not block.
type InputSource interface {
	Poll() []Event
}

// InputFunc adapts a function to InputSource.
type InputFunc func() []Event

func (f InputFunc) Poll() []Event { return f() }

// StopWhen emits a stop event once done is closed.
func StopWhen(done <-chan struct{}) InputSource {
	return InputFunc(func() []Event {
		select {
		case <-done:
			return []Event{Stop()}
		default:
			return nil
		}
	})
}

// Sequence emits its events in order, one per poll, and nothing afterwards.
type Sequence struct {
	events []Event
}

func NewSequence(events ...Event) *Sequence {
	return &Sequence{events: events}
}

func (s *Sequence) Poll() []Event {
	if len(s.events) == 0 {
		return nil
	}
	e := s.events[0]
	s.events = s.events[1:]
	return []Event{e}
}

// Inputs merges several sources; each is polled on every tick.
func Inputs(sources ...InputSource) InputSource {
	return InputFunc(func() []Event {
		var out []Event
		for _, s := range sources {
			out = append(out, s.Poll()...)
		}
		return out
	})
}
