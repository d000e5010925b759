package render

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// State is a step of the render job. Transitions are strictly linear.
type State int32

const (
	StateIdle State = iota
	StateDirectPass
	StateOcclusionPass
	StateComposite
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDirectPass:
		return "direct-pass"
	case StateOcclusionPass:
		return "occlusion-pass"
	case StateComposite:
		return "composite"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Job runs the passes of a Context exactly once on a background goroutine.
// It cannot be cancelled; shutdown waits for it with Wait before the buffers
// are released.
type Job struct {
	ctx     *Context
	state   atomic.Int32
	started atomic.Bool
	done    chan struct{}
	elapsed time.Duration
}

// NewJob prepares a job in the idle state.
func NewJob(ctx *Context) *Job {
	return &Job{ctx: ctx, done: make(chan struct{})}
}

// Start launches the job and returns it. Starting twice panics.
func (c *Context) Start() *Job {
	j := NewJob(c)
	j.Start()
	return j
}

// Start runs the job on a new goroutine.
func (j *Job) Start() {
	j.claim()
	go j.run()
}

// Run executes the job on the calling goroutine.
func (j *Job) Run() {
	j.claim()
	j.run()
}

func (j *Job) claim() {
	if !j.started.CompareAndSwap(false, true) {
		panic("render: job already started")
	}
}

func (j *Job) run() {
	defer close(j.done)
	start := time.Now()

	j.enter(StateDirectPass)
	j.ctx.DirectPass()
	j.ctx.DepthPass()

	j.enter(StateOcclusionPass)
	j.ctx.OcclusionPass()

	j.enter(StateComposite)
	j.ctx.Composite()

	j.elapsed = time.Since(start)
	j.enter(StateDone)
	slog.Info("render finished", "elapsed", j.elapsed.Round(time.Millisecond))
}

func (j *Job) enter(s State) {
	prev := State(j.state.Swap(int32(s)))
	slog.Debug("render state", "from", prev, "to", s)
}

// State reports the current step.
func (j *Job) State() State {
	return State(j.state.Load())
}

// Done is closed once the job reaches StateDone.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job has finished and returns its total duration.
func (j *Job) Wait() time.Duration {
	<-j.done
	return j.elapsed
}
