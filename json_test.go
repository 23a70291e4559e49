package moyo_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moyo"
	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

func TestDataset_JSONRoundTrip(t *testing.T) {
	ds, err := moyo.Analyze(hcp(t), moyo.WithAngleTolerance(base.Radian(0.01)))
	require.NoError(t, err)

	b, err := json.Marshal(ds)
	require.NoError(t, err)

	var got moyo.Dataset
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, *ds, got)
}

func TestDataset_JSONFields(t *testing.T) {
	ds, err := moyo.Analyze(simpleCubic(t))
	require.NoError(t, err)
	b, err := json.Marshal(ds)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"version", "number", "hall_number", "operations", "orbits", "wyckoffs",
		"site_symmetry_symbols", "std_cell", "std_linear", "std_origin_shift",
		"std_rotation_matrix", "prim_std_cell", "prim_std_linear",
		"prim_std_origin_shift", "mapping_std_prim", "symprec", "angle_tolerance",
		"pearson_symbol",
	}, keys)
	assert.JSONEq(t, `"`+moyo.Version+`"`, string(raw["version"]))
	assert.JSONEq(t, `null`, string(raw["angle_tolerance"]))

	var ops struct {
		Rotations    []matrix.IMat3 `json:"rotations"`
		Translations []matrix.Vec3  `json:"translations"`
	}
	require.NoError(t, json.Unmarshal(raw["operations"], &ops))
	assert.Len(t, ops.Rotations, 48)
	assert.Len(t, ops.Translations, 48)
}

func TestDataset_JSONRejects(t *testing.T) {
	var ds moyo.Dataset
	assert.Error(t, json.Unmarshal([]byte(`{"version":"0.0.0"}`), &ds))
	assert.Error(t, json.Unmarshal([]byte(`{"version":"`+moyo.Version+`","operations":{"rotations":[[[1,0,0],[0,1,0],[0,0,1]]],"translations":[]}}`), &ds))
}

func TestMagneticDataset_JSONRoundTrip(t *testing.T) {
	cell := newCell(t, matrix.Identity().Scale(2.87), []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{26, 26})
	mc, err := base.NewMagneticCell(cell, []base.NonCollinear{{0, 0, 1}, {0, 0, -1}})
	require.NoError(t, err)
	ds, err := moyo.AnalyzeMagnetic(mc)
	require.NoError(t, err)

	b, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"time_reversals":[`)

	var got moyo.MagneticDataset[base.NonCollinear]
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, *ds, got)
}
