package predict

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekPrediction(week int, mean, variance float64) WeekPrediction {
	return WeekPrediction{
		Week:   week,
		Filter: DefaultInjuryFilter(),
		Total:  Estimate{Mean: mean, StdDev: math.Sqrt(variance)},
	}
}

func TestAnalyzeProjectsWinner(t *testing.T) {
	x := weekPrediction(1, 95.33, 100)
	y := weekPrediction(1, 119.43, 81)

	d, err := Analyze(1027, x, 943, y)
	require.NoError(t, err)

	assert.InDelta(t, 1122.33, d.FinalA, 1e-9)
	assert.InDelta(t, 1062.43, d.FinalB, 1e-9)
	assert.InDelta(t, 59.90, d.Mean, 1e-9)
	assert.InDelta(t, 13.45, d.StdDev, 0.005)
	assert.InDelta(t, math.Sqrt(181), d.StdDev, 1e-9)
	assert.InDelta(t, 59.90, d.Margin, 1e-9)
	assert.Equal(t, SideA, d.Winner)
	assert.Greater(t, d.WinProbability, 0.99)
}

func TestAnalyzeSideB(t *testing.T) {
	d, err := Analyze(0, weekPrediction(2, 80, 16), 0, weekPrediction(2, 100, 9))
	require.NoError(t, err)

	assert.Equal(t, -20.0, d.Mean)
	assert.Equal(t, 5.0, d.StdDev)
	assert.Equal(t, 20.0, d.Margin)
	assert.Equal(t, SideB, d.Winner)
	assert.Less(t, d.WinProbability, 0.5)
}

func TestAnalyzeTie(t *testing.T) {
	d, err := Analyze(50, weekPrediction(1, 50, 4), 60, weekPrediction(1, 40, 9))
	require.NoError(t, err)

	assert.Equal(t, SideTie, d.Winner)
	assert.Equal(t, 0.0, d.Mean)
	assert.Equal(t, 0.5, d.WinProbability)
}

func TestAnalyzeZeroSpread(t *testing.T) {
	d, err := Analyze(10, weekPrediction(1, 0, 0), 5, weekPrediction(1, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, 0.0, d.StdDev)
	assert.Equal(t, SideA, d.Winner)
	assert.Equal(t, 1.0, d.WinProbability)
}

func TestAnalyzeOneSigmaLead(t *testing.T) {
	d, err := Analyze(0, weekPrediction(1, 60, 16), 0, weekPrediction(1, 55, 9))
	require.NoError(t, err)

	assert.Equal(t, 5.0, d.StdDev)
	assert.InDelta(t, 0.8413447, d.WinProbability, 1e-6)
}

func TestAnalyzeMismatchedWeeks(t *testing.T) {
	_, err := Analyze(0, weekPrediction(1, 10, 1), 0, weekPrediction(2, 10, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAnalyzeMismatchedFilters(t *testing.T) {
	broad, err := ParseInjuryFilter([]string{"ACTIVE", "DAY_TO_DAY"})
	require.NoError(t, err)

	b := weekPrediction(1, 10, 1)
	b.Filter = broad

	_, err = Analyze(0, weekPrediction(1, 10, 1), 0, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "injury_status", perr.Field)
}
