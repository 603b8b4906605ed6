package predict

import (
	"math"
	"testing"

	"github.com/omarshaarawi/courtside/internal/models"
	"github.com/stretchr/testify/assert"
)

func eligible(mean, sd float64, games int) Eligible {
	return Eligible{
		Player: models.FantasyPlayer{ProjectedMean: mean, ProjectedStdDev: sd},
		Games:  games,
	}
}

func TestAggregateDayTwoPlayers(t *testing.T) {
	got := AggregateDay([]Eligible{eligible(20, 5, 1), eligible(15, 4, 1)})

	assert.Equal(t, 35.0, got.Mean)
	assert.InDelta(t, 6.40, got.StdDev, 0.005)
	assert.Equal(t, math.Sqrt(41), got.StdDev)
	assert.Equal(t, 2, got.Games)
}

func TestAggregateDayEmpty(t *testing.T) {
	assert.Equal(t, Estimate{}, AggregateDay(nil))
	assert.Equal(t, Estimate{}, AggregateDay([]Eligible{}))
}

func TestAggregateDaySinglePlayer(t *testing.T) {
	got := AggregateDay([]Eligible{eligible(22.5, 7.25, 1)})

	assert.Equal(t, 22.5, got.Mean)
	assert.Equal(t, 7.25, got.StdDev)
	assert.Equal(t, 1, got.Games)
}

func TestAggregateDaySumsVariances(t *testing.T) {
	sds := []float64{1, 2, 3, 4.5, 0}
	var in []Eligible
	var variance float64
	for _, sd := range sds {
		in = append(in, eligible(10, sd, 1))
		variance += sd * sd
	}

	got := AggregateDay(in)
	assert.Equal(t, math.Sqrt(variance), got.StdDev)
	assert.Equal(t, 50.0, got.Mean)
}

func TestAggregateDayMultipleGames(t *testing.T) {
	got := AggregateDay([]Eligible{eligible(20, 5, 2)})

	assert.Equal(t, 40.0, got.Mean)
	assert.Equal(t, math.Sqrt(50), got.StdDev)
	assert.Equal(t, 2, got.Games)
}

func TestEstimateAdd(t *testing.T) {
	got := Estimate{Mean: 10, StdDev: 3, Games: 1}.Add(Estimate{Mean: 5, StdDev: 4, Games: 2})
	assert.Equal(t, Estimate{Mean: 15, StdDev: 5, Games: 3}, got)
}
