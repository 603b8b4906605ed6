package predict

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

type Side string

const (
	SideA   Side = "A"
	SideB   Side = "B"
	SideTie Side = "TIE"
)

// Differential describes final score A minus final score B.
type Differential struct {
	FinalA         float64 `json:"final_a"`
	FinalB         float64 `json:"final_b"`
	Mean           float64 `json:"mean"`
	StdDev         float64 `json:"std_dev"`
	Margin         float64 `json:"margin"`
	Winner         Side    `json:"winner"`
	WinProbability float64 `json:"win_probability_a"`
}

// Analyze projects both sides to the end of the week and compares them. The
// two outcomes are treated as independent, so the differential variance is
// the sum of the two remaining-week variances. Both predictions must cover
// the same week with the same injury filter.
func Analyze(scoreA float64, a WeekPrediction, scoreB float64, b WeekPrediction) (Differential, error) {
	if a.Week != b.Week {
		return Differential{}, validationError("week_index", "predictions cover weeks %d and %d", a.Week, b.Week)
	}
	if !a.Filter.Equal(b.Filter) {
		return Differential{}, validationError("injury_status", "filters differ: %q vs %q", a.Filter.String(), b.Filter.String())
	}

	d := Differential{
		FinalA: scoreA + a.Total.Mean,
		FinalB: scoreB + b.Total.Mean,
	}
	d.Mean = d.FinalA - d.FinalB
	d.StdDev = math.Sqrt(a.Total.Variance() + b.Total.Variance())
	d.Margin = math.Abs(d.Mean)

	switch {
	case d.FinalA > d.FinalB:
		d.Winner = SideA
	case d.FinalB > d.FinalA:
		d.Winner = SideB
	default:
		d.Winner = SideTie
	}

	d.WinProbability = winProbability(d.Mean, d.StdDev)
	return d, nil
}

// winProbability is P(diff > 0) under a normal approximation.
func winProbability(mean, sd float64) float64 {
	if sd == 0 {
		switch {
		case mean > 0:
			return 1
		case mean < 0:
			return 0
		default:
			return 0.5
		}
	}
	return distuv.UnitNormal.CDF(mean / sd)
}
