package predict

import "math"

// Estimate is a normal approximation of fantasy points: a mean, a standard
// deviation and the number of player-games behind it.
type Estimate struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Games  int     `json:"games"`
}

// Variance returns StdDev squared.
func (e Estimate) Variance() float64 {
	return e.StdDev * e.StdDev
}

// Add combines two independent estimates. Means and variances add; no
// covariance term is ever included.
func (e Estimate) Add(o Estimate) Estimate {
	return Estimate{
		Mean:   e.Mean + o.Mean,
		StdDev: math.Sqrt(e.Variance() + o.Variance()),
		Games:  e.Games + o.Games,
	}
}

// AggregateDay sums per-game projections for one day.
//
// Players, and each game a player's team plays that day, are modeled as
// statistically independent: the day variance is the sum of the per-game
// variances. Teammates' outcomes are correlated in practice, so the spread
// is an approximation.
func AggregateDay(players []Eligible) Estimate {
	var mean, variance float64
	var games int
	for _, e := range players {
		if e.Games <= 0 {
			continue
		}
		sd := e.Player.ProjectedStdDev
		mean += float64(e.Games) * e.Player.ProjectedMean
		variance += float64(e.Games) * sd * sd
		games += e.Games
	}
	return Estimate{Mean: mean, StdDev: math.Sqrt(variance), Games: games}
}
