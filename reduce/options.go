// SPDX-License-Identifier: MIT

package reduce

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the tolerance on Gram-matrix entries (squared length
	// units) used by every inequality test of the reducers.
	DefaultEpsilon = 1e-8

	// DefaultMaxIterations caps the outer loop of each reducer: Niggli rounds
	// (returns to step 1), Delaunay reflections, Minkowski passes.
	DefaultMaxIterations = 10000
)

// Panic messages for invalid option values.
const (
	panicEpsilonNegative = "reduce: WithEpsilon: epsilon must be >= 0"
	panicMaxIterations   = "reduce: WithMaxIterations: cap must be > 0"
)

// Options configures a reducer call.
type Options struct {
	Epsilon       float64
	MaxIterations int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon, MaxIterations: DefaultMaxIterations}
}

// WithEpsilon overrides the comparison tolerance.
// Panics if eps < 0.
func WithEpsilon(eps float64) Option {
	if eps < 0 {
		panic(panicEpsilonNegative)
	}

	return func(o *Options) { o.Epsilon = eps }
}

// WithMaxIterations overrides the iteration cap.
// Panics if n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterations)
	}

	return func(o *Options) { o.MaxIterations = n }
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
