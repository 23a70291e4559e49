// SPDX-License-Identifier: MIT

package group

import "fmt"

// DefaultMaxOrder bounds the number of coset representatives a traversal
// may produce; 48 is the largest crystallographic point group, a grey
// magnetic group doubles it.
const DefaultMaxOrder = 96

// Option configures Traverse via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation by the traversal.
type Option func(*Options)

// Options holds traversal parameters.
type Options struct {
	// MaxOrder caps the number of distinct elements.
	MaxOrder int

	// Denominator, if > 0, snaps every translation to the nearest multiple
	// of 1/Denominator after each product.
	Denominator int

	// OnVisit is called for each new element with its BFS depth; an error
	// aborts the traversal.
	OnVisit func(depth int) error

	err error
}

// DefaultOptions returns MaxOrder = DefaultMaxOrder, no snapping and a
// no-op hook.
func DefaultOptions() Options {
	return Options{
		MaxOrder: DefaultMaxOrder,
		OnVisit:  func(int) error { return nil },
	}
}

// WithMaxOrder overrides the order cap; n must be positive.
func WithMaxOrder(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxOrder must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxOrder = n
	}
}

// WithDenominator snaps translations to multiples of 1/d; d must be
// positive.
func WithDenominator(d int) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: Denominator must be positive (%d)", ErrOptionViolation, d)
			return
		}
		o.Denominator = d
	}
}

// WithOnVisit registers a per-element callback.
func WithOnVisit(fn func(depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}
