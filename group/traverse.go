// SPDX-License-Identifier: MIT

package group

import (
	"fmt"
	"math"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

// queueItem pairs an element with its BFS depth.
type queueItem[E any] struct {
	elem  E
	depth int
}

// walker encapsulates mutable traversal state. key identifies an element up
// to lattice translations; mul multiplies and purifies.
type walker[E any, K comparable] struct {
	opts    Options
	gens    []E
	key     func(E) K
	mul     func(E, E) E
	queue   []queueItem[E]
	visited map[K]struct{}
	out     []E
}

func (w *walker[E, K]) loop(identity E) ([]E, error) {
	w.queue = append(w.queue, queueItem[E]{elem: identity})
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		k := w.key(item.elem)
		if _, seen := w.visited[k]; seen {
			continue
		}
		w.visited[k] = struct{}{}
		w.out = append(w.out, item.elem)
		if len(w.out) > w.opts.MaxOrder {
			return nil, fmt.Errorf("Traverse: more than %d elements: %w", w.opts.MaxOrder, ErrOrderExceeded)
		}
		if err := w.opts.OnVisit(item.depth); err != nil {
			return nil, err
		}
		for _, g := range w.gens {
			w.queue = append(w.queue, queueItem[E]{elem: w.mul(item.elem, g), depth: item.depth + 1})
		}
	}

	return w.out, nil
}

// Traverse closes generators under composition and returns one operation per
// distinct rotation, identity first, in breadth-first order. Translations
// are wrapped into [0,1).
func Traverse(generators base.Operations, opts ...Option) (base.Operations, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	w := &walker[base.Operation, matrix.IMat3]{
		opts:    o,
		gens:    generators,
		key:     func(op base.Operation) matrix.IMat3 { return op.Rotation },
		mul:     func(a, b base.Operation) base.Operation { return purify(a.Mul(b), o.Denominator) },
		visited: make(map[matrix.IMat3]struct{}, o.MaxOrder),
	}

	return w.loop(base.IdentityOperation())
}

// magneticKey identifies a magnetic operation modulo translations.
type magneticKey struct {
	rotation     matrix.IMat3
	timeReversal bool
}

// TraverseMagnetic is Traverse for magnetic operations, keyed by rotation and
// time reversal.
func TraverseMagnetic(generators base.MagneticOperations, opts ...Option) (base.MagneticOperations, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	w := &walker[base.MagneticOperation, magneticKey]{
		opts: o,
		gens: generators,
		key: func(m base.MagneticOperation) magneticKey {
			return magneticKey{rotation: m.Rotation, timeReversal: m.TimeReversal}
		},
		mul: func(a, b base.MagneticOperation) base.MagneticOperation {
			c := a.Mul(b)
			c.Operation = purify(c.Operation, o.Denominator)

			return c
		},
		visited: make(map[magneticKey]struct{}, o.MaxOrder),
	}

	return w.loop(base.IdentityMagneticOperation())
}

// TraverseRotations closes a set of rotations.
func TraverseRotations(generators []matrix.IMat3, opts ...Option) ([]matrix.IMat3, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	w := &walker[matrix.IMat3, matrix.IMat3]{
		opts:    o,
		gens:    generators,
		key:     func(r matrix.IMat3) matrix.IMat3 { return r },
		mul:     func(a, b matrix.IMat3) matrix.IMat3 { return a.Mul(b) },
		visited: make(map[matrix.IMat3]struct{}, o.MaxOrder),
	}

	return w.loop(matrix.IIdentity())
}

// purify wraps the translation and optionally snaps it to 1/den.
func purify(op base.Operation, den int) base.Operation {
	t := op.Translation
	if den > 0 {
		d := float64(den)
		for i := range t {
			t[i] = math.Round(t[i]*d) / d
		}
	}
	op.Translation = t.Wrap()

	return op
}
