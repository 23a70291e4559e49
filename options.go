// SPDX-License-Identifier: MIT

package moyo

import (
	"log/slog"
	"runtime"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSymprec is the length tolerance, in the units of the lattice.
	DefaultSymprec = 1e-4

	// DefaultAction treats magnetic moments as axial vectors (spins).
	DefaultAction = base.Axial
)

// Panic messages for invalid option values.
const (
	panicSymprec     = "moyo: WithSymprec: symprec must be > 0"
	panicMagSymprec  = "moyo: WithMagSymprec: magSymprec must be > 0"
	panicNilLogger   = "moyo: WithLogger: logger must not be nil"
	panicNilMetrics  = "moyo: WithMetrics: metrics must not be nil"
	panicConcurrency = "moyo: WithConcurrency: workers must be > 0"
)

// Options configures Analyze, AnalyzeMagnetic and AnalyzeAll.
type Options struct {
	// Symprec is the length tolerance of the symmetry search.
	Symprec float64
	// AngleTolerance bounds lattice angles; the default heuristic compares
	// metrics with Symprec alone.
	AngleTolerance base.AngleTolerance
	// MagSymprec is the moment tolerance; 0 means Symprec.
	MagSymprec float64
	Setting    data.Setting
	Action     base.RotationMomentAction
	Logger     *slog.Logger
	// Metrics is optional.
	Metrics     *Metrics
	Concurrency int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Symprec:        DefaultSymprec,
		AngleTolerance: base.DefaultAngle(),
		Setting:        data.Standard,
		Action:         DefaultAction,
		Logger:         slog.New(slog.DiscardHandler),
		Concurrency:    runtime.GOMAXPROCS(0),
	}
}

// WithSymprec sets the length tolerance.
// Panics if symprec <= 0.
func WithSymprec(symprec float64) Option {
	if !(symprec > 0) {
		panic(panicSymprec)
	}

	return func(o *Options) { o.Symprec = symprec }
}

// WithAngleTolerance sets an explicit angle tolerance or, with
// base.DefaultAngle(), restores the heuristic.
func WithAngleTolerance(angle base.AngleTolerance) Option {
	return func(o *Options) { o.AngleTolerance = angle }
}

// WithMagSymprec sets the moment tolerance.
// Panics if magSymprec <= 0.
func WithMagSymprec(magSymprec float64) Option {
	if !(magSymprec > 0) {
		panic(panicMagSymprec)
	}

	return func(o *Options) { o.MagSymprec = magSymprec }
}

// WithSetting selects the Hall setting of the standardized cell.
func WithSetting(s data.Setting) Option {
	return func(o *Options) { o.Setting = s }
}

// WithRotationMomentAction selects polar or axial moments.
func WithRotationMomentAction(a base.RotationMomentAction) Option {
	return func(o *Options) { o.Action = a }
}

// WithLogger routes Debug records to logger.
// Panics if logger is nil.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.Logger = logger }
}

// WithMetrics records every analysis in m.
// Panics if m is nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic(panicNilMetrics)
	}

	return func(o *Options) { o.Metrics = m }
}

// WithConcurrency bounds the number of cells AnalyzeAll works on at once.
// Panics if workers <= 0.
func WithConcurrency(workers int) Option {
	if workers <= 0 {
		panic(panicConcurrency)
	}

	return func(o *Options) { o.Concurrency = workers }
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.MagSymprec == 0 {
		o.MagSymprec = o.Symprec
	}

	return o
}
