package service

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/omarshaarawi/courtside/internal/api/fantasy"
	"github.com/omarshaarawi/courtside/internal/models"
	"github.com/omarshaarawi/courtside/internal/predict"
)

// Request selects what to predict. Zero values mean "use the default".
type Request struct {
	// WeekIndex is 1-based; 0 selects the league's current week.
	WeekIndex int
	// DayOfWeek is the first remaining day (0-6). When nil it is derived
	// from the current scoring period for the current week and 0 otherwise.
	DayOfWeek *int
	// TeamID limits league predictions to one team; 0 means all teams.
	TeamID int
	// InjuryStatus is the allow-list of injury labels; empty uses the
	// service default.
	InjuryStatus []string
}

type Defaults struct {
	Filter  predict.InjuryFilter
	Options predict.Options
}

type PredictionService struct {
	provider fantasy.SnapshotProvider
	defaults Defaults
	now      func() time.Time
}

func NewPredictionService(provider fantasy.SnapshotProvider, defaults Defaults) *PredictionService {
	if len(defaults.Filter.Labels()) == 0 {
		defaults.Filter = predict.DefaultInjuryFilter()
	}
	return &PredictionService{provider: provider, defaults: defaults, now: time.Now}
}

type TeamPrediction struct {
	Team           models.FantasyTeam     `json:"team"`
	CurrentScore   float64                `json:"current_score"`
	ProjectedFinal float64                `json:"projected_final"`
	Prediction     predict.WeekPrediction `json:"prediction"`
}

type LeaguePrediction struct {
	LeagueID int                  `json:"league_id"`
	Week     int                  `json:"week"`
	StartDay int                  `json:"start_day"`
	Filter   predict.InjuryFilter `json:"injury_status"`
	Teams    []TeamPrediction     `json:"teams"`
}

type MatchupOutlook struct {
	Week         int                  `json:"week"`
	Home         TeamPrediction       `json:"home"`
	Away         TeamPrediction       `json:"away"`
	Differential predict.Differential `json:"differential"`
}

type TeamOutlook struct {
	Week     int             `json:"week"`
	Team     TeamPrediction  `json:"team"`
	Home     bool            `json:"home"`
	Opponent *TeamPrediction `json:"opponent,omitempty"`
	// Differential is team minus opponent, rounded to two decimals.
	Differential *predict.Differential `json:"differential,omitempty"`
}

// resolved is a request with every default filled in.
type resolved struct {
	snap   *models.LeagueSnapshot
	week   predict.Week
	filter predict.InjuryFilter
	// live is set when the prediction starts today in the current week, so
	// the matchup's ESPN score covers exactly the days already played.
	live bool
}

func (s *PredictionService) snapshot(ctx context.Context) (*models.LeagueSnapshot, error) {
	snap, err := s.provider.FetchSnapshot(ctx)
	if err != nil {
		return nil, predict.DataUnavailable(err)
	}
	return snap, nil
}

func (s *PredictionService) resolve(ctx context.Context, req Request) (resolved, error) {
	filter := s.defaults.Filter
	if len(req.InjuryStatus) > 0 {
		f, err := predict.ParseInjuryFilter(req.InjuryStatus)
		if err != nil {
			return resolved{}, err
		}
		filter = f
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return resolved{}, err
	}

	current := s.currentWeek(snap)
	weekIndex := req.WeekIndex
	if weekIndex == 0 {
		weekIndex = current
	}

	var day, today int
	if weekIndex == current {
		today = s.currentDay(snap, weekIndex)
		day = today
	}
	if req.DayOfWeek != nil {
		day = *req.DayOfWeek
	}

	week, err := predict.ResolveWeek(snap.Calendar, snap.Schedule, weekIndex, day)
	if err != nil {
		return resolved{}, err
	}

	return resolved{
		snap:   snap,
		week:   week,
		filter: filter,
		live:   weekIndex == current && day == today,
	}, nil
}

func (s *PredictionService) currentPeriod(snap *models.LeagueSnapshot) int {
	if snap.CurrentScoringPeriod > 0 {
		return snap.CurrentScoringPeriod
	}
	return snap.Calendar.PeriodForDate(s.now())
}

func (s *PredictionService) currentWeek(snap *models.LeagueSnapshot) int {
	if snap.CurrentWeek > 0 {
		return snap.CurrentWeek
	}
	return snap.Calendar.WeekForPeriod(s.currentPeriod(snap))
}

// currentDay is today's offset into the week, clamped to the week's days.
func (s *PredictionService) currentDay(snap *models.LeagueSnapshot, week int) int {
	day := s.currentPeriod(snap) - snap.Calendar.WeekStart(week)
	return max(0, min(day, models.DaysPerWeek-1))
}

// accrued returns the points a team has already banked in the week. Only a
// live prediction has banked points: one that starts on the first day counts
// the whole week, and one for another week or day forecasts from its start
// day with nothing banked.
func accrued(r resolved, teamID int) float64 {
	if !r.live || r.week.StartDay == 0 {
		return 0
	}
	m, ok := r.snap.MatchupFor(r.week.Index, teamID)
	if !ok {
		return 0
	}
	if m.HomeTeamID == teamID {
		return m.HomeScore
	}
	return m.AwayScore
}

func (s *PredictionService) teamPrediction(r resolved, teamID int) (TeamPrediction, error) {
	team, ok := r.snap.Team(teamID)
	if !ok {
		return TeamPrediction{}, predict.NotFound("team_id", teamID)
	}
	pred, err := predict.RemainingDays(team, r.week, r.week.StartDay, r.filter, s.defaults.Options)
	if err != nil {
		return TeamPrediction{}, err
	}
	score := accrued(r, teamID)
	return TeamPrediction{
		Team:           team,
		CurrentScore:   score,
		ProjectedFinal: score + pred.Total.Mean,
		Prediction:     pred,
	}, nil
}

// PredictWeek predicts every team (or the requested one) for the resolved
// week. Teams are ordered by projected remaining total, highest first.
func (s *PredictionService) PredictWeek(ctx context.Context, req Request) (*LeaguePrediction, error) {
	r, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(r.snap.Teams))
	if req.TeamID != 0 {
		ids = append(ids, req.TeamID)
	} else {
		for _, t := range r.snap.Teams {
			ids = append(ids, t.ID)
		}
	}

	out := &LeaguePrediction{
		LeagueID: r.snap.LeagueID,
		Week:     r.week.Index,
		StartDay: r.week.StartDay,
		Filter:   r.filter,
		Teams:    make([]TeamPrediction, 0, len(ids)),
	}
	for _, id := range ids {
		tp, err := s.teamPrediction(r, id)
		if err != nil {
			return nil, err
		}
		out.Teams = append(out.Teams, tp)
	}

	sort.SliceStable(out.Teams, func(i, j int) bool {
		return out.Teams[i].Prediction.Total.Mean > out.Teams[j].Prediction.Total.Mean
	})

	slog.Info("Predicted week",
		"league", out.LeagueID,
		"week", out.Week,
		"start_day", out.StartDay,
		"teams", len(out.Teams),
		"filter", r.filter.String(),
	)
	return out, nil
}

// MatchupOutlooks analyzes every matchup scheduled in the resolved week.
func (s *PredictionService) MatchupOutlooks(ctx context.Context, req Request) ([]MatchupOutlook, error) {
	r, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	var out []MatchupOutlook
	for _, m := range r.snap.WeekMatchups(r.week.Index) {
		if m.Bye() {
			continue
		}
		if req.TeamID != 0 && m.HomeTeamID != req.TeamID && m.AwayTeamID != req.TeamID {
			continue
		}
		outlook, err := s.matchupOutlook(r, m)
		if err != nil {
			return nil, err
		}
		out = append(out, outlook)
	}
	return out, nil
}

func (s *PredictionService) matchupOutlook(r resolved, m models.Matchup) (MatchupOutlook, error) {
	home, err := s.teamPrediction(r, m.HomeTeamID)
	if err != nil {
		return MatchupOutlook{}, err
	}
	away, err := s.teamPrediction(r, m.AwayTeamID)
	if err != nil {
		return MatchupOutlook{}, err
	}

	diff, err := predict.Analyze(home.CurrentScore, home.Prediction, away.CurrentScore, away.Prediction)
	if err != nil {
		return MatchupOutlook{}, err
	}

	return MatchupOutlook{Week: r.week.Index, Home: home, Away: away, Differential: diff}, nil
}

// TeamOutlook predicts one team and, when it has a matchup that week, its
// opponent and the differential from the team's side.
func (s *PredictionService) TeamOutlook(ctx context.Context, req Request) (*TeamOutlook, error) {
	r, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	team, err := s.teamPrediction(r, req.TeamID)
	if err != nil {
		return nil, err
	}
	out := &TeamOutlook{Week: r.week.Index, Team: team}

	m, ok := r.snap.MatchupFor(r.week.Index, req.TeamID)
	if !ok || m.Bye() {
		return out, nil
	}

	opponentID := m.HomeTeamID
	out.Home = m.HomeTeamID == req.TeamID
	if out.Home {
		opponentID = m.AwayTeamID
	}

	opponent, err := s.teamPrediction(r, opponentID)
	if err != nil {
		return nil, err
	}
	diff, err := predict.Analyze(team.CurrentScore, team.Prediction, opponent.CurrentScore, opponent.Prediction)
	if err != nil {
		return nil, err
	}
	diff = roundDifferential(diff)

	out.Opponent = &opponent
	out.Differential = &diff
	return out, nil
}

// Teams lists the league's fantasy teams in snapshot order.
func (s *PredictionService) Teams(ctx context.Context) ([]models.FantasyTeam, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Teams, nil
}

// FindTeam resolves a team by id, abbreviation or approximate name.
func (s *PredictionService) FindTeam(ctx context.Context, query string) (models.FantasyTeam, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return models.FantasyTeam{}, err
	}
	return findTeam(snap.Teams, query)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundDifferential(d predict.Differential) predict.Differential {
	d.FinalA = round2(d.FinalA)
	d.FinalB = round2(d.FinalB)
	d.Mean = round2(d.Mean)
	d.StdDev = round2(d.StdDev)
	d.Margin = round2(d.Margin)
	d.WinProbability = round2(d.WinProbability)
	return d
}
