package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is the period between automatic cycles.
const DefaultInterval = 5 * time.Second

// ErrStopped is returned by Dispatch once the controller loop has exited.
var ErrStopped = errors.New("dashboard: controller stopped")

// State is the controller's scheduling state.
type State int32

const (
	StateIdle State = iota
	StateManual
	StatePeriodic
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateManual:
		return "manual"
	case StatePeriodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Command is an instruction for the controller loop.
type Command interface {
	command()
}

// RunOnce requests a single extra cycle. It does not disturb an active
// periodic schedule.
type RunOnce struct{}

// SetPeriodic turns periodic cycling on or off.
type SetPeriodic struct {
	Enabled bool
}

func (RunOnce) command()     {}
func (SetPeriodic) command() {}

// Renderer receives a snapshot after every cycle. Render is called on the
// controller goroutine; the next cycle waits until every renderer returns.
type Renderer interface {
	Render(Snapshot)
}

// StateObserver is implemented by renderers that also want to hear about
// schedule changes that do not run a cycle.
type StateObserver interface {
	StateChanged(State)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Snapshot)

func (f RendererFunc) Render(s Snapshot) { f(s) }

// Options configures a Controller.
type Options struct {
	Interval     time.Duration
	Clock        Clock
	Logger       *zap.Logger
	Renderers    []Renderer
	InitialCycle bool // run one cycle as soon as Run starts
	AutoStart    bool // enable periodic mode as soon as Run starts
}

type request struct {
	cmd  Command
	done chan struct{}
}

// Controller serializes every cycle of a Dashboard on a single goroutine.
// Manual requests and periodic ticks are handled strictly in arrival order,
// and at most one periodic task exists at a time.
type Controller struct {
	dash      *Dashboard
	clock     Clock
	interval  time.Duration
	renderers []Renderer
	log       *zap.Logger
	initial   bool
	autoStart bool

	requests chan request
	stopped  chan struct{}
	state    atomic.Int32
	ticker   Ticker
}

// NewController wires a controller around dash.
func NewController(dash *Dashboard, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		dash:      dash,
		clock:     opts.Clock,
		interval:  opts.Interval,
		renderers: opts.Renderers,
		log:       opts.Logger.Named("dashboard"),
		initial:   opts.InitialCycle,
		autoStart: opts.AutoStart,
		requests:  make(chan request),
		stopped:   make(chan struct{}),
	}
}

// AddRenderer registers r. It must be called before Run.
func (c *Controller) AddRenderer(r Renderer) {
	c.renderers = append(c.renderers, r)
}

// State reports the current scheduling state. Safe to call from any
// goroutine.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Dispatch hands cmd to the loop and waits until it has been fully
// processed, including any cycle it triggered.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	req := request{cmd: cmd, done: make(chan struct{})}

	select {
	case c.requests <- req:
	case <-c.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.done:
		return nil
	case <-c.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the loop until ctx is cancelled. It must be called once.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.stopped)
	defer c.stopPeriodic()

	c.log.Info("controller started",
		zap.Duration("interval", c.interval),
		zap.Bool("auto_start", c.autoStart),
	)

	if c.initial {
		c.cycle(TriggerStartup)
	}
	if c.autoStart {
		c.handle(SetPeriodic{Enabled: true})
	}

	for {
		var tick <-chan time.Time
		if c.ticker != nil {
			tick = c.ticker.C()
		}

		select {
		case <-ctx.Done():
			c.log.Info("controller stopped", zap.Uint64("cycles", c.dash.Cycles()))
			return nil
		case req := <-c.requests:
			// A tick that was already pending arrived before this request.
			select {
			case <-tick:
				c.cycle(TriggerPeriodic)
			default:
			}
			c.handle(req.cmd)
			close(req.done)
		case <-tick:
			c.cycle(TriggerPeriodic)
		}
	}
}

func (c *Controller) handle(cmd Command) {
	switch cmd := cmd.(type) {
	case RunOnce:
		if c.State() == StateIdle {
			c.setState(StateManual)
			c.cycle(TriggerManual)
			c.setState(StateIdle)
			return
		}
		c.cycle(TriggerManual)

	case SetPeriodic:
		if cmd.Enabled {
			c.startPeriodic()
		} else {
			c.stopPeriodic()
		}

	default:
		c.log.Warn("unknown command ignored", zap.String("type", fmt.Sprintf("%T", cmd)))
	}
}

func (c *Controller) startPeriodic() {
	if c.ticker != nil {
		return
	}
	c.setState(StatePeriodic)
	c.log.Info("periodic mode enabled", zap.Duration("interval", c.interval))
	c.cycle(TriggerPeriodic)
	c.ticker = c.clock.NewTicker(c.interval)
}

func (c *Controller) stopPeriodic() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
	c.setState(StateIdle)
	c.log.Info("periodic mode disabled")
}

func (c *Controller) setState(s State) {
	if State(c.state.Swap(int32(s))) == s {
		return
	}
	for _, r := range c.renderers {
		if o, ok := r.(StateObserver); ok {
			o.StateChanged(s)
		}
	}
}

func (c *Controller) cycle(trigger Trigger) {
	snap := c.dash.Cycle(trigger, c.State())

	c.log.Debug("cycle",
		zap.Uint64("cycle", snap.Cycle),
		zap.Stringer("trigger", trigger),
		zap.Int("score", int(snap.Score)),
		zap.Stringer("level", snap.Level),
	)
	if snap.Alert != nil {
		c.log.Warn("danger alert",
			zap.String("id", snap.Alert.ID.String()),
			zap.Int("score", int(snap.Score)),
			zap.String("message", snap.Alert.Message),
		)
	}

	for _, r := range c.renderers {
		r.Render(snap)
	}
}
