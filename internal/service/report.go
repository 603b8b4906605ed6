package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/omarshaarawi/courtside/internal/models"
	"github.com/omarshaarawi/courtside/internal/predict"
)

func intPtr(v int) *int {
	return &v
}

// GetWeekOutlook reports the whole current week from its first day.
func (s *PredictionService) GetWeekOutlook(ctx context.Context) (string, error) {
	return s.leagueReport(ctx, Request{DayOfWeek: intPtr(0)}, "Week %d Outlook")
}

// GetRemainingOutlook reports the current week from today onward.
func (s *PredictionService) GetRemainingOutlook(ctx context.Context) (string, error) {
	return s.leagueReport(ctx, Request{}, "Week %d Rest-of-Week Outlook")
}

func (s *PredictionService) leagueReport(ctx context.Context, req Request, title string) (string, error) {
	league, err := s.PredictWeek(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error predicting week: %w", err)
	}

	req.WeekIndex = league.Week
	req.DayOfWeek = intPtr(league.StartDay)
	matchups, err := s.MatchupOutlooks(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error analyzing matchups: %w", err)
	}

	return formatLeagueReport(fmt.Sprintf(title, league.Week), league, matchups), nil
}

func formatLeagueReport(title string, league *LeaguePrediction, matchups []MatchupOutlook) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏀 *%s*\n", title))
	sb.WriteString(fmt.Sprintf("_%d day(s) left, injury filter: %s_\n\n", models.DaysPerWeek-league.StartDay, league.Filter.String()))

	sb.WriteString("*Projected Remaining*\n")
	for i, t := range league.Teams {
		total := t.Prediction.Total
		sb.WriteString(fmt.Sprintf("%d. *%s* %.1f ± %.1f (%d games)\n", i+1, t.Team.Name, total.Mean, total.StdDev, total.Games))
	}

	if len(matchups) == 0 {
		return sb.String()
	}

	sb.WriteString("\n*Matchups*\n")
	for _, m := range matchups {
		sb.WriteString(formatMatchupLine(m))
	}
	return sb.String()
}

func formatMatchupLine(m MatchupOutlook) string {
	d := m.Differential
	favorite := "Toss-up"
	switch d.Winner {
	case predict.SideA:
		favorite = fmt.Sprintf("%s by %.1f (%.0f%%)", m.Home.Team.Name, d.Margin, d.WinProbability*100)
	case predict.SideB:
		favorite = fmt.Sprintf("%s by %.1f (%.0f%%)", m.Away.Team.Name, d.Margin, (1-d.WinProbability)*100)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", m.Home.Team.Name, m.Away.Team.Name))
	if m.Home.CurrentScore > 0 || m.Away.CurrentScore > 0 {
		sb.WriteString(fmt.Sprintf("Current: %.2f - %.2f\n", m.Home.CurrentScore, m.Away.CurrentScore))
	}
	sb.WriteString(fmt.Sprintf("Projected: %.2f - %.2f\n", d.FinalA, d.FinalB))
	sb.WriteString(fmt.Sprintf("Favorite: %s\n\n", favorite))
	return sb.String()
}

// GetTeamReport reports one team's remaining week and its matchup.
func (s *PredictionService) GetTeamReport(ctx context.Context, query string) (string, error) {
	team, err := s.FindTeam(ctx, query)
	if err != nil {
		return "", err
	}

	outlook, err := s.TeamOutlook(ctx, Request{TeamID: team.ID})
	if err != nil {
		return "", fmt.Errorf("error predicting team: %w", err)
	}

	var sb strings.Builder
	pred := outlook.Team.Prediction
	sb.WriteString(fmt.Sprintf("🏀 *%s* (Week %d)\n", team.Name, outlook.Week))
	if team.Owner != "" {
		sb.WriteString(fmt.Sprintf("Owner: %s\n", team.Owner))
	}
	sb.WriteString(fmt.Sprintf("Record: %d-%d-%d\n", team.Record.Wins, team.Record.Losses, team.Record.Ties))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")

	for _, day := range pred.Days {
		sb.WriteString(fmt.Sprintf("%s: %.1f ± %.1f (%d games), %.1f to go\n",
			day.Date.Format("Mon 1/2"), day.Daily.Mean, day.Daily.StdDev, day.Daily.Games, day.Remaining.Mean))
	}
	if len(pred.Days) == 0 {
		sb.WriteString("No days left this week.\n")
	}

	sb.WriteString(fmt.Sprintf("\nProjected final: %.2f\n", outlook.Team.ProjectedFinal))

	if outlook.Opponent == nil {
		sb.WriteString("No matchup this week.")
		return sb.String(), nil
	}

	where := "Away at"
	if outlook.Home {
		where = "Home vs"
	}
	d := outlook.Differential
	sb.WriteString(fmt.Sprintf("%s *%s*, projected %.2f\n", where, outlook.Opponent.Team.Name, outlook.Opponent.ProjectedFinal))
	sb.WriteString(fmt.Sprintf("Differential: %+.2f ± %.2f, win chance %.0f%%", d.Mean, d.StdDev, d.WinProbability*100))
	return sb.String(), nil
}

// GetMatchupReport reports the current-week matchup involving one team.
func (s *PredictionService) GetMatchupReport(ctx context.Context, query string) (string, error) {
	team, err := s.FindTeam(ctx, query)
	if err != nil {
		return "", err
	}

	matchups, err := s.MatchupOutlooks(ctx, Request{TeamID: team.ID})
	if err != nil {
		return "", fmt.Errorf("error analyzing matchups: %w", err)
	}
	if len(matchups) == 0 {
		return fmt.Sprintf("🔍 No matchup found for *%s* this week.", team.Name), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏀 *Week %d Matchup*\n\n", matchups[0].Week))
	for _, m := range matchups {
		sb.WriteString(formatMatchupLine(m))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// GetSchedule reports remaining pro games for the current week.
func (s *PredictionService) GetSchedule(ctx context.Context) (string, error) {
	summary, err := s.WeekSchedule(ctx, Request{})
	if err != nil {
		return "", fmt.Errorf("error fetching schedule: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Week %d Schedule*\n\n", summary.Week))
	for _, day := range summary.Days {
		sb.WriteString(fmt.Sprintf("%s: %d teams playing\n", day.Date.Format("Mon 1/2"), day.Teams))
	}

	sb.WriteString("\n*Games Left*\n")
	for _, t := range summary.Teams {
		sb.WriteString(fmt.Sprintf("%s: %d\n", t.TeamName, t.Games))
	}

	if len(summary.ProTeamGames) > 0 {
		names := make([]string, 0, len(summary.ProTeamGames))
		for name := range summary.ProTeamGames {
			names = append(names, name)
		}
		sort.Strings(names)

		sb.WriteString("\n*Rostered Pro Teams*\n")
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("%s %d  ", name, summary.ProTeamGames[name]))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
