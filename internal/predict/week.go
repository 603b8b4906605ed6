package predict

import (
	"math"
	"time"

	"github.com/omarshaarawi/courtside/internal/models"
)

type DayPrediction struct {
	Day      int       `json:"day"`
	PeriodID int       `json:"scoring_period"`
	Date     time.Time `json:"date"`
	// Daily is the estimate for this day alone.
	Daily Estimate `json:"daily"`
	// Cumulative runs from the start day through this day.
	Cumulative Estimate `json:"cumulative"`
	// Remaining runs from this day through the end of the week.
	Remaining Estimate `json:"remaining"`
}

type WeekPrediction struct {
	TeamID        int             `json:"team_id"`
	Week          int             `json:"week"`
	StartDay      int             `json:"start_day"`
	Filter        InjuryFilter    `json:"injury_status"`
	Days          []DayPrediction `json:"days"`
	Total         Estimate        `json:"total"`
	DaysRemaining int             `json:"days_remaining"`
}

// RemainingDays accumulates a team's daily estimates from startDay through
// the end of the week. A startDay past the last day yields no entries and a
// zero total.
func RemainingDays(team models.FantasyTeam, week Week, startDay int, filter InjuryFilter, opts Options) (WeekPrediction, error) {
	if startDay < 0 {
		return WeekPrediction{}, rangeError("start_day", "start day %d is negative", startDay)
	}

	pred := WeekPrediction{
		TeamID:   team.ID,
		Week:     week.Index,
		StartDay: startDay,
		Filter:   filter,
	}
	if startDay >= len(week.Periods) {
		return pred, nil
	}

	periods := week.Periods[startDay:]
	daily := make([]Estimate, len(periods))
	for i, p := range periods {
		daily[i] = AggregateDay(EligiblePlayers(team, p, filter, opts))
	}

	pred.Days = make([]DayPrediction, len(periods))

	var mean, variance float64
	var games int
	for i, p := range periods {
		mean += daily[i].Mean
		variance += daily[i].Variance()
		games += daily[i].Games
		pred.Days[i] = DayPrediction{
			Day:        p.Day,
			PeriodID:   p.ID,
			Date:       p.Date,
			Daily:      daily[i],
			Cumulative: Estimate{Mean: mean, StdDev: math.Sqrt(variance), Games: games},
		}
	}

	mean, variance, games = 0, 0, 0
	for i := len(periods) - 1; i >= 0; i-- {
		mean += daily[i].Mean
		variance += daily[i].Variance()
		games += daily[i].Games
		pred.Days[i].Remaining = Estimate{Mean: mean, StdDev: math.Sqrt(variance), Games: games}
	}

	pred.Total = pred.Days[len(pred.Days)-1].Cumulative
	pred.DaysRemaining = len(pred.Days)
	return pred, nil
}

// PredictLeague runs RemainingDays for every team in the snapshot from the
// week's start day, in snapshot team order.
func PredictLeague(snap *models.LeagueSnapshot, week Week, filter InjuryFilter, opts Options) ([]WeekPrediction, error) {
	out := make([]WeekPrediction, 0, len(snap.Teams))
	for _, team := range snap.Teams {
		pred, err := RemainingDays(team, week, week.StartDay, filter, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, pred)
	}
	return out, nil
}

// PredictTeam runs RemainingDays for a single team id.
func PredictTeam(snap *models.LeagueSnapshot, teamID int, week Week, filter InjuryFilter, opts Options) (WeekPrediction, error) {
	team, ok := snap.Team(teamID)
	if !ok {
		return WeekPrediction{}, NotFound("team_id", teamID)
	}
	return RemainingDays(team, week, week.StartDay, filter, opts)
}
