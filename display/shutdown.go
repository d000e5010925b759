package display

import (
	"log/slog"
	"time"

	"github.com/echoflaresat/osao/render"
)

// Job is the part of a render job that teardown depends on.
type Job interface {
	Done() <-chan struct{}
	State() render.State
	Wait() time.Duration
}

// Shutdown blocks until job has finished and returns its duration. A job
// still running when presentation ended is logged and then awaited, so its
// buffers are never released under it.
func Shutdown(job Job) time.Duration {
	select {
	case <-job.Done():
	default:
		slog.Info("presentation ended, waiting for render", "state", job.State())
	}
	elapsed := job.Wait()
	slog.Info("render complete", "elapsed", elapsed.Round(time.Millisecond))
	return elapsed
}
