// SPDX-License-Identifier: MIT

package moyo

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/identify"
	"github.com/katalvlaran/moyo/matrix"
)

// IdentifyPointGroup returns the arithmetic crystal class of primitive
// rotations. With a lattice, identification runs in its Minkowski-reduced
// basis, which copes with rotations written in a skewed basis.
func IdentifyPointGroup(rotations []matrix.IMat3, lattice *base.Lattice) (*identify.PointGroup, error) {
	var (
		pg  *identify.PointGroup
		err error
	)
	if lattice == nil {
		pg, err = identify.NewPointGroup(rotations)
	} else {
		pg, err = identify.PointGroupFromLattice(*lattice, rotations)
	}

	return pg, errors.WithMessage(err, "moyo: identify point group")
}

// IdentifySpaceGroup returns the space-group type of primitive operations
// in the given setting. eps compares fractional translations.
func IdentifySpaceGroup(ops base.Operations, lattice *base.Lattice, setting data.Setting, eps float64) (*identify.SpaceGroup, error) {
	var (
		sg  *identify.SpaceGroup
		err error
	)
	if lattice == nil {
		sg, err = identify.NewSpaceGroup(ops, setting, eps)
	} else {
		sg, err = identify.SpaceGroupFromLattice(*lattice, ops, setting, eps)
	}

	return sg, errors.WithMessage(err, "moyo: identify space group")
}

// IdentifyMagneticSpaceGroup returns the magnetic space-group type of
// primitive magnetic operations. eps compares fractional translations.
func IdentifyMagneticSpaceGroup(mops base.MagneticOperations, lattice *base.Lattice, eps float64) (*identify.MagneticSpaceGroup, error) {
	if lattice == nil {
		msg, err := identify.NewMagneticSpaceGroup(mops, eps)

		return msg, errors.WithMessage(err, "moyo: identify magnetic space group")
	}

	_, t, err := lattice.MinkowskiReduce()
	if err != nil {
		return nil, errors.Wrap(err, "moyo: identify magnetic space group")
	}
	toReduced := base.MustUnimodular(t, matrix.Vec3{})
	msg, err := identify.NewMagneticSpaceGroup(toReduced.TransformMagneticOperations(mops), eps)
	if err != nil {
		return nil, errors.Wrap(err, "moyo: identify magnetic space group")
	}
	msg.Transformation = toReduced.Compose(msg.Transformation)

	return msg, nil
}
