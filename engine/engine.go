// Package engine runs the function generator: a single cooperative loop that
// streams the current table while running, edits parameters while
// configuring and rebuilds the table when leaving configuration.
//
// Interrupt handlers only increment the two press counters; everything else
// happens inside Step, which never blocks.
package engine

import (
	"context"
	"runtime"
	"time"

	"funcgen-go/bus"
	"funcgen-go/editor"
	"funcgen-go/scheduler"
	"funcgen-go/types"
	"funcgen-go/wave"
	"funcgen-go/x/logx"
	"funcgen-go/x/tally"
	"funcgen-go/x/timex"
)

// Output receives converter codes.
type Output interface {
	SetCode(code uint16)
}

// Snapshot is what a display needs to draw one frame.
type Snapshot struct {
	Mode     Mode
	Kind     wave.Kind
	Params   wave.Params
	Cursor   editor.Field
	Interval uint32
}

// Display draws the user interface. Redraw is a full repaint on mode
// changes; Refresh updates values only.
type Display interface {
	Redraw(s Snapshot)
	Refresh(s Snapshot)
}

// Encoder yields one signed step per detent, 0 when idle.
type Encoder interface {
	Poll() int8
}

// Inputs are the operator controls. Nil counters are allocated by New.
type Inputs struct {
	Mode    *tally.Counter
	Field   *tally.Counter
	Encoder Encoder
}

type Option func(*Engine)

// WithBus publishes retained status messages on conn.
func WithBus(conn *bus.Connection) Option { return func(e *Engine) { e.conn = conn } }

func WithLogger(l *logx.Logger) Option { return func(e *Engine) { e.log = l } }

type Engine struct {
	cfg   Config
	clock timex.Clock
	disp  Display
	in    Inputs
	conn  *bus.Connection
	log   *logx.Logger

	mode   Mode
	kind   wave.Kind
	params wave.Params
	ed     editor.Editor

	sched  *scheduler.Scheduler
	tables [2]wave.Table
	back   int // index of the table not owned by the scheduler

	lastSat     uint64
	lastRefresh uint64
	lastStats   uint64
}

func New(cfg Config, clock timex.Clock, out Output, disp Display, in Inputs, opts ...Option) *Engine {
	cfg = cfg.withDefaults()
	if in.Mode == nil {
		in.Mode = new(tally.Counter)
	}
	if in.Field == nil {
		in.Field = new(tally.Counter)
	}
	if in.Encoder == nil {
		in.Encoder = idleEncoder{}
	}
	if disp == nil {
		disp = nopDisplay{}
	}
	e := &Engine{
		cfg:    cfg,
		clock:  clock,
		disp:   disp,
		in:     in,
		log:    logx.Nop(),
		mode:   Calculating,
		kind:   cfg.Kind,
		params: cfg.Params,
		sched:  scheduler.New(out, clock),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Step runs one loop iteration. At most one mode transition happens per call.
func (e *Engine) Step() {
	switch e.mode {
	case Calculating:
		e.calculate()
	case Running:
		e.running()
	case Configuring:
		e.configuring()
	default:
		e.log.Warn("invalid mode, recalculating", "mode", uint8(e.mode))
		e.mode = Calculating
	}
}

// Run calls Step until ctx is done, yielding between iterations.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("started", "mode", e.mode)
	for {
		select {
		case <-ctx.Done():
			e.log.Info("stopping")
			return ctx.Err()
		default:
		}
		e.Step()
		runtime.Gosched()
	}
}

// ---- states ----

func (e *Engine) calculate() {
	e.params = wave.Saturate(e.params, e.cfg.Limits)
	if !e.kind.Valid() {
		e.kind = wave.Sine
	}

	t := &e.tables[e.back]
	wave.GenerateInto(t, e.kind, e.params, e.cfg.Limits.VRef)
	t.Interval = wave.Interval(e.params.Frequency, e.params.Samples, e.cfg.Compensation)
	e.sched.Load(t)
	e.back ^= 1

	e.ed.Reset()
	e.in.Field.Drain()

	now := e.clock.Micros()
	e.lastStats = now
	e.mode = Running

	e.log.Info("table ready",
		"kind", e.kind,
		"freq", e.params.Frequency,
		"samples", e.params.Samples,
		"interval_us", t.Interval)
	e.publishTable(t, now)
	e.publishMode(now)
	e.disp.Redraw(e.Snapshot())
}

func (e *Engine) running() {
	e.sched.Poll()
	e.in.Field.Drain()

	now := e.clock.Micros()
	if e.conn != nil && timex.Since(now, e.lastStats) >= micros(e.cfg.StatsPeriod) {
		e.lastStats = now
		e.publishStats(now)
	}

	if e.in.Mode.Take(1) == 1 {
		e.in.Encoder.Poll() // resync the decoder; movement while running is ignored
		e.mode = Configuring
		e.lastSat = now
		e.lastRefresh = now
		e.publishMode(now)
		e.disp.Redraw(e.Snapshot())
	}
}

func (e *Engine) configuring() {
	if n := e.in.Field.Drain(); n > 0 {
		e.ed.Advance(n, e.kind)
	}
	if step := e.in.Encoder.Poll(); step != 0 {
		e.ed.Apply(step, &e.params, &e.kind)
	}

	now := e.clock.Micros()
	if timex.Since(now, e.lastSat) >= micros(e.cfg.SaturatePeriod) {
		e.lastSat = now
		e.saturate()
	}
	if timex.Since(now, e.lastRefresh) >= micros(e.cfg.RefreshPeriod) {
		e.lastRefresh = now
		e.saturate()
		e.disp.Refresh(e.Snapshot())
	}

	if e.in.Mode.Take(1) == 1 {
		e.mode = Calculating
		e.publishMode(now)
	}
}

func (e *Engine) saturate() { e.params = wave.Saturate(e.params, e.cfg.Limits) }

// ---- accessors ----

func (e *Engine) Mode() Mode             { return e.mode }
func (e *Engine) Kind() wave.Kind        { return e.kind }
func (e *Engine) Params() wave.Params    { return e.params }
func (e *Engine) Cursor() editor.Field   { return e.ed.Cursor() }
func (e *Engine) Inputs() Inputs         { return e.in }
func (e *Engine) Stats() scheduler.Stats { return e.sched.Stats() }
func (e *Engine) Limits() wave.Limits    { return e.cfg.Limits }
func (e *Engine) Compensation() float64  { return e.cfg.Compensation }

// Table is the table being streamed, nil before the first calculation.
func (e *Engine) Table() *wave.Table { return e.sched.Table() }

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{Mode: e.mode, Kind: e.kind, Params: e.params, Cursor: e.ed.Cursor()}
	if t := e.sched.Table(); t != nil {
		s.Interval = t.Interval
	}
	return s
}

// ---- bus ----

func (e *Engine) publish(kind string, payload any) {
	if e.conn == nil {
		return
	}
	e.conn.Publish(e.conn.NewMessage(bus.T(types.TopicFuncgen, kind), payload, true))
}

func (e *Engine) publishMode(now uint64) {
	c := e.ed.Cursor()
	e.publish(types.TopicMode, types.ModeStatus{
		Mode:   e.mode.String(),
		Cursor: uint8(c),
		Field:  c.String(),
		TS:     ms(now),
	})
}

func (e *Engine) publishTable(t *wave.Table, now uint64) {
	e.publish(types.TopicTable, types.TableStatus{
		Kind:      e.kind.String(),
		Frequency: e.params.Frequency,
		Amplitude: e.params.Amplitude,
		Offset:    e.params.Offset,
		Samples:   e.params.Samples,
		Interval:  t.Interval,
		Checksum:  t.Checksum(),
		TS:        ms(now),
	})
}

func (e *Engine) publishStats(now uint64) {
	st := e.sched.Stats()
	e.publish(types.TopicStats, types.StatsStatus{
		Emitted: st.Emitted,
		Late:    st.Late,
		Mode:    e.mode.String(),
		TS:      ms(now),
	})
}

func micros(d time.Duration) uint64 { return uint64(d / time.Microsecond) }

func ms(us uint64) int64 { return int64(us / 1000) }

type idleEncoder struct{}

func (idleEncoder) Poll() int8 { return 0 }

type nopDisplay struct{}

func (nopDisplay) Redraw(Snapshot)  {}
func (nopDisplay) Refresh(Snapshot) {}
