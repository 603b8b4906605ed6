package espn

import (
	"github.com/omarshaarawi/courtside/internal/models"
	"gonum.org/v1/gonum/stat"
)

// FantasyPoints scores one line of per-game averages with the league's
// points formula.
func FantasyPoints(avg map[string]float64) float64 {
	return avg[statPTS] +
		avg[stat3PTM] -
		avg[statFGA] +
		avg[statFGM]*2 -
		avg[statFTA] +
		avg[statFTM] +
		avg[statREB] +
		avg[statAST]*2 +
		avg[statSTL]*4 +
		avg[statBLK]*4 -
		avg[statTO]*2
}

// ProjectPlayer derives a per-game mean and standard deviation from the
// player's recent windows (last 30/15/7) and the season projection. The
// spread is the sample standard deviation across those windows; with fewer
// than two windows it is zero.
func ProjectPlayer(stats []models.Stat, seasonID int) (float64, float64) {
	var points []float64
	for _, s := range stats {
		if seasonID != 0 && s.SeasonID != seasonID {
			continue
		}
		if !projectionWindow(s) || len(s.AverageStats) == 0 {
			continue
		}
		points = append(points, FantasyPoints(s.AverageStats))
	}

	switch len(points) {
	case 0:
		return 0, 0
	case 1:
		return points[0], 0
	}
	return stat.MeanStdDev(points, nil)
}

func projectionWindow(s models.Stat) bool {
	switch {
	case s.StatSourceID == sourceProj && s.StatSplitTypeID == splitSeason:
		return true
	case s.StatSourceID == sourceActual:
		return s.StatSplitTypeID == splitLast7 || s.StatSplitTypeID == splitLast15 || s.StatSplitTypeID == splitLast30
	}
	return false
}
