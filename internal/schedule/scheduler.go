package schedule

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/layout"
	"github.com/san-kum/rodfield/internal/scene"
)

// DefaultContainer is the container size used until the first Resize.
var DefaultContainer = layout.Viewport{Width: 960, Height: 900}

// Status is a copy of the output surface.
type Status struct {
	Params    field.Parameters
	Magnitude float64 // N/C
	Error     string
	Loading   bool
	Container layout.Viewport
	Layout    *layout.Layout
	Passes    int
}

// KiloNewtons is the magnitude in kN/C.
func (s Status) KiloNewtons() float64 {
	return s.Magnitude / 1000
}

// Scheduler owns the parameters and their derived values and drives a
// scene.Backend.
type Scheduler struct {
	backend  scene.Backend
	debounce *Debouncer
	logger   *log.Logger
	choreo   scene.Choreography
	clock    Clock
	delay    time.Duration
	onRender func(Status)

	mu        sync.Mutex
	params    field.Parameters
	result    field.Result
	errMsg    string
	loading   bool
	container layout.Viewport
	current   *layout.Layout
	passes    int
}

type Option func(*Scheduler)

func WithClock(c Clock) Option                     { return func(s *Scheduler) { s.clock = c } }
func WithDelay(d time.Duration) Option             { return func(s *Scheduler) { s.delay = d } }
func WithLogger(l *log.Logger) Option              { return func(s *Scheduler) { s.logger = l } }
func WithChoreography(c scene.Choreography) Option { return func(s *Scheduler) { s.choreo = c } }
func WithParameters(p field.Parameters) Option     { return func(s *Scheduler) { s.params = p } }
func WithContainer(vp layout.Viewport) Option      { return func(s *Scheduler) { s.container = vp } }

// WithRenderHook registers f to run after every render pass.
func WithRenderHook(f func(Status)) Option { return func(s *Scheduler) { s.onRender = f } }

// New creates a scheduler for backend. Nothing is computed until Start.
func New(backend scene.Backend, opts ...Option) *Scheduler {
	s := &Scheduler{
		backend:   backend,
		choreo:    scene.DefaultChoreography(),
		clock:     RealClock(),
		delay:     DefaultDelay,
		params:    field.DefaultParameters(),
		container: DefaultContainer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.debounce = NewDebouncer(s.clock, s.delay)
	return s
}

// Start computes the initial field and schedules the first render pass.
func (s *Scheduler) Start() {
	s.mu.Lock()
	s.recompute()
	s.mu.Unlock()
	s.schedule()
}

// Apply routes a raw input event to the parameters. A value that cannot be
// parsed leaves the parameters unchanged and is shown as the error message.
func (s *Scheduler) Apply(name, raw string) error {
	s.mu.Lock()
	next, err := s.params.Apply(name, raw)
	if err != nil {
		s.fail(err)
		s.mu.Unlock()
		return err
	}
	s.params = next
	err = s.recompute()
	s.mu.Unlock()

	s.schedule()
	return err
}

// SetParameters replaces the parameters wholesale.
func (s *Scheduler) SetParameters(p field.Parameters) error {
	s.mu.Lock()
	s.params = p
	err := s.recompute()
	s.mu.Unlock()

	s.schedule()
	return err
}

// Resize records the container size and schedules a redraw. The field is
// not recomputed.
func (s *Scheduler) Resize(width, height float64) {
	s.mu.Lock()
	s.container = layout.Viewport{Width: width, Height: height}
	s.mu.Unlock()

	s.logger.Debug("resize", "width", width, "height", height)
	s.schedule()
}

// Flush runs a pending render pass immediately.
func (s *Scheduler) Flush() bool {
	return s.debounce.Flush()
}

// Pending reports whether a render pass is waiting on the debounce window.
func (s *Scheduler) Pending() bool {
	return s.debounce.Pending()
}

// Close drops any pending render pass.
func (s *Scheduler) Close() {
	s.debounce.Cancel()
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Scheduler) status() Status {
	st := Status{
		Params:    s.params,
		Magnitude: s.result.Magnitude,
		Error:     s.errMsg,
		Loading:   s.loading,
		Container: s.container,
		Passes:    s.passes,
	}
	if s.current != nil {
		l := *s.current
		st.Layout = &l
	}
	return st
}

// recompute must be called with mu held.
func (s *Scheduler) recompute() error {
	res, err := field.Compute(s.params)
	if err != nil {
		s.fail(err)
		return err
	}
	s.result = res
	s.errMsg = ""
	s.logger.Debug("field computed", "params", s.params.String(), "magnitude", res.Magnitude)
	return nil
}

func (s *Scheduler) fail(err error) {
	s.result = field.Result{}
	s.errMsg = err.Error()
	if errors.Is(err, field.ErrInvalidParameter) {
		s.logger.Warn("invalid parameter", "err", err)
		return
	}
	s.logger.Error("field computation failed", "err", err)
}

func (s *Scheduler) schedule() {
	s.debounce.Trigger(s.render)
}

func (s *Scheduler) render() {
	start := time.Now()

	s.mu.Lock()
	if err := s.params.Validate(); err != nil {
		// Nothing sensible to lay out; the error message stays on screen.
		s.current = nil
		s.mu.Unlock()
		s.logger.Debug("render skipped", "err", err)
		return
	}
	s.loading = true
	params := s.params
	vp := layout.ClampViewport(s.container.Width, s.container.Height)
	s.mu.Unlock()

	l := layout.Compute(params, vp)
	scene.Replay(s.backend, scene.Compose(l, params.Unit, s.choreo))

	s.mu.Lock()
	s.current = &l
	s.loading = false
	s.passes++
	st := s.status()
	s.mu.Unlock()

	s.logger.Debug("render pass",
		"pass", st.Passes,
		"lines", len(l.FieldLines),
		"width", vp.Width,
		"height", vp.Height,
		"took", time.Since(start))

	if s.onRender != nil {
		s.onRender(st)
	}
}
