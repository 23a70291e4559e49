// SPDX-License-Identifier: MIT

package moyo

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

// Version tags the JSON field set of Dataset and MagneticDataset.
const Version = "0.1.0"

// Dataset is the result of Analyze.
//
// Linear parts and origin shifts are expressed in the basis of the input
// cell: the basis of StdCell is StdRotationMatrix·B·StdLinear for the input
// basis B, and an input position x sits at StdLinear⁻¹·(x − StdOriginShift)
// in StdCell.
type Dataset struct {
	Number     int `json:"number"`
	HallNumber int `json:"hall_number"`
	// Operations act on the input cell, pure translations included.
	Operations base.Operations `json:"operations"`
	// Orbits labels each input site with the lowest index of its orbit.
	Orbits              []int    `json:"orbits"`
	Wyckoffs            []string `json:"wyckoffs"`
	SiteSymmetrySymbols []string `json:"site_symmetry_symbols"`

	StdCell           base.Cell   `json:"std_cell"`
	StdLinear         matrix.Mat3 `json:"std_linear"`
	StdOriginShift    matrix.Vec3 `json:"std_origin_shift"`
	StdRotationMatrix matrix.Mat3 `json:"std_rotation_matrix"`

	PrimStdCell        base.Cell   `json:"prim_std_cell"`
	PrimStdLinear      matrix.Mat3 `json:"prim_std_linear"`
	PrimStdOriginShift matrix.Vec3 `json:"prim_std_origin_shift"`
	// MappingStdPrim sends every site of StdCell to its site of PrimStdCell.
	MappingStdPrim []int `json:"mapping_std_prim"`

	Symprec        float64             `json:"symprec"`
	AngleTolerance base.AngleTolerance `json:"angle_tolerance"`
	PearsonSymbol  string              `json:"pearson_symbol"`
}

// operationsJSON is the column layout of operations on the wire.
type operationsJSON struct {
	Rotations     []matrix.IMat3 `json:"rotations"`
	Translations  []matrix.Vec3  `json:"translations"`
	TimeReversals []bool         `json:"time_reversals,omitempty"`
}

func newOperationsJSON(ops base.Operations) operationsJSON {
	return operationsJSON{Rotations: ops.Rotations(), Translations: ops.Translations()}
}

func (o operationsJSON) operations() (base.Operations, error) {
	if len(o.Rotations) != len(o.Translations) {
		return nil, errors.Errorf("moyo: %d rotations vs %d translations", len(o.Rotations), len(o.Translations))
	}

	return lo.Map(o.Rotations, func(r matrix.IMat3, i int) base.Operation {
		return base.NewOperation(r, o.Translations[i])
	}), nil
}

func (o operationsJSON) magneticOperations() (base.MagneticOperations, error) {
	ops, err := o.operations()
	if err != nil {
		return nil, err
	}
	if len(o.TimeReversals) != len(ops) {
		return nil, errors.Errorf("moyo: %d time reversals vs %d operations", len(o.TimeReversals), len(ops))
	}

	return lo.Map(ops, func(op base.Operation, i int) base.MagneticOperation {
		return base.MagneticOperation{Operation: op, TimeReversal: o.TimeReversals[i]}
	}), nil
}

// datasetFields and magneticDatasetFields drop the JSON methods so the
// wrappers below can embed the plain field set.
type (
	datasetFields                           Dataset
	magneticDatasetFields[M base.Moment[M]] MagneticDataset[M]
)

func checkVersion(v string) error {
	if v != Version {
		return errors.Errorf("moyo: dataset version %q, want %q", v, Version)
	}

	return nil
}

// MarshalJSON writes the versioned field set with operations as parallel
// rotation and translation arrays.
func (d Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Version string `json:"version"`
		datasetFields
		Operations operationsJSON `json:"operations"`
	}{Version: Version, datasetFields: datasetFields(d), Operations: newOperationsJSON(d.Operations)})
}

// UnmarshalJSON reads what MarshalJSON writes and rejects other versions.
func (d *Dataset) UnmarshalJSON(b []byte) error {
	var aux struct {
		Version string `json:"version"`
		datasetFields
		Operations operationsJSON `json:"operations"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if err := checkVersion(aux.Version); err != nil {
		return err
	}
	ops, err := aux.Operations.operations()
	if err != nil {
		return err
	}
	*d = Dataset(aux.datasetFields)
	d.Operations = ops

	return nil
}

// MagneticDataset is the result of AnalyzeMagnetic. Coordinates follow the
// conventions of Dataset; the standardized cells carry the symmetrized
// moments in the rotated frame.
type MagneticDataset[M base.Moment[M]] struct {
	UNINumber          int                     `json:"uni_number"`
	MagneticOperations base.MagneticOperations `json:"magnetic_operations"`
	Orbits             []int                   `json:"orbits"`

	StdMagCell        base.MagneticCell[M] `json:"std_mag_cell"`
	StdLinear         matrix.Mat3          `json:"std_linear"`
	StdOriginShift    matrix.Vec3          `json:"std_origin_shift"`
	StdRotationMatrix matrix.Mat3          `json:"std_rotation_matrix"`

	PrimStdMagCell     base.MagneticCell[M] `json:"prim_std_mag_cell"`
	PrimStdLinear      matrix.Mat3          `json:"prim_std_linear"`
	PrimStdOriginShift matrix.Vec3          `json:"prim_std_origin_shift"`
	MappingStdPrim     []int                `json:"mapping_std_prim"`

	Symprec        float64             `json:"symprec"`
	AngleTolerance base.AngleTolerance `json:"angle_tolerance"`
	MagSymprec     float64             `json:"mag_symprec"`
}

// MarshalJSON writes magnetic operations as parallel rotation, translation
// and time-reversal arrays.
func (d MagneticDataset[M]) MarshalJSON() ([]byte, error) {
	ops := newOperationsJSON(d.MagneticOperations.Operations())
	ops.TimeReversals = d.MagneticOperations.TimeReversals()

	return json.Marshal(struct {
		Version string `json:"version"`
		magneticDatasetFields[M]
		MagneticOperations operationsJSON `json:"magnetic_operations"`
	}{Version: Version, magneticDatasetFields: magneticDatasetFields[M](d), MagneticOperations: ops})
}

// UnmarshalJSON reads what MarshalJSON writes and rejects other versions.
func (d *MagneticDataset[M]) UnmarshalJSON(b []byte) error {
	var aux struct {
		Version string `json:"version"`
		magneticDatasetFields[M]
		MagneticOperations operationsJSON `json:"magnetic_operations"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if err := checkVersion(aux.Version); err != nil {
		return err
	}
	mops, err := aux.MagneticOperations.magneticOperations()
	if err != nil {
		return err
	}
	*d = MagneticDataset[M](aux.magneticDatasetFields)
	d.MagneticOperations = mops

	return nil
}
