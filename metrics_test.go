package moyo_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moyo"
	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := moyo.NewMetrics(reg)
	require.NoError(t, err)

	_, err = moyo.Analyze(bcc(t), moyo.WithMetrics(m))
	require.NoError(t, err)
	_, err = moyo.Analyze(bcc(t), moyo.WithMetrics(m), moyo.WithSetting(data.HallNumberSetting(1)))
	require.Error(t, err)
	mc, err := base.NewMagneticCell(simpleCubic(t), []base.Collinear{1})
	require.NoError(t, err)
	_, err = moyo.AnalyzeMagnetic(mc, moyo.WithMetrics(m))
	require.NoError(t, err)

	expected := `
# HELP moyo_analysis_results_total Analyses by kind and outcome.
# TYPE moyo_analysis_results_total counter
moyo_analysis_results_total{kind="crystal",outcome="error"} 1
moyo_analysis_results_total{kind="crystal",outcome="ok"} 1
moyo_analysis_results_total{kind="magnetic",outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "moyo_analysis_results_total"))

	n, err := testutil.GatherAndCount(reg, "moyo_analysis_duration_seconds", "moyo_analysis_operations")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := moyo.NewMetrics(reg)
	require.NoError(t, err)
	_, err = moyo.NewMetrics(reg)
	assert.Error(t, err)
}
