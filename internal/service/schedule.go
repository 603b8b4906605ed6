package service

import (
	"context"
	"sort"
	"time"

	"github.com/omarshaarawi/courtside/internal/predict"
)

type DaySchedule struct {
	Day      int       `json:"day"`
	PeriodID int       `json:"scoring_period"`
	Date     time.Time `json:"date"`
	// Teams is the number of pro teams with at least one game.
	Teams int `json:"pro_teams_playing"`
}

type TeamGames struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
	Games    int    `json:"games"`
}

// ScheduleSummary counts pro games per remaining day and the games each
// fantasy team can still use under the request's filter.
type ScheduleSummary struct {
	Week         int            `json:"week"`
	StartDay     int            `json:"start_day"`
	Days         []DaySchedule  `json:"days"`
	ProTeamGames map[string]int `json:"pro_team_games"`
	Teams        []TeamGames    `json:"teams"`
}

func (s *PredictionService) WeekSchedule(ctx context.Context, req Request) (*ScheduleSummary, error) {
	r, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &ScheduleSummary{
		Week:         r.week.Index,
		StartDay:     r.week.StartDay,
		ProTeamGames: make(map[string]int),
	}

	for _, p := range r.week.Remaining() {
		var playing int
		for _, n := range p.Games {
			if n > 0 {
				playing++
			}
		}
		out.Days = append(out.Days, DaySchedule{Day: p.Day, PeriodID: p.ID, Date: p.Date, Teams: playing})
	}

	abbrevs := make(map[int]string)
	for _, t := range r.snap.Teams {
		for _, slot := range t.Roster {
			abbrevs[slot.Player.ProTeamID] = slot.Player.ProTeam
		}
	}
	for id, n := range r.week.GameCounts() {
		name, ok := abbrevs[id]
		if !ok || name == "" {
			continue
		}
		out.ProTeamGames[name] = n
	}

	for _, t := range r.snap.Teams {
		pred, err := predict.RemainingDays(t, r.week, r.week.StartDay, r.filter, s.defaults.Options)
		if err != nil {
			return nil, err
		}
		out.Teams = append(out.Teams, TeamGames{TeamID: t.ID, TeamName: t.Name, Games: pred.Total.Games})
	}
	sort.SliceStable(out.Teams, func(i, j int) bool {
		return out.Teams[i].Games > out.Teams[j].Games
	})

	return out, nil
}
