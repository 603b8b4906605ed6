package espn

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/courtside/internal/models"
)

type API struct {
	client   *Client
	fallback models.Calendar
	now      func() time.Time
}

// NewAPI builds the ESPN snapshot provider. fallback supplies the season
// start and week count when ESPN's schedule does not.
func NewAPI(client *Client, fallback models.Calendar) *API {
	return &API{client: client, fallback: fallback, now: time.Now}
}

func (a *API) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, a.client.Config.LeagueID)
}

// FetchSnapshot loads rosters, matchups, settings and the pro schedule and
// assembles them into one immutable snapshot.
func (a *API) FetchSnapshot(ctx context.Context) (*models.LeagueSnapshot, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam,mRoster,mMatchupScore,mSettings",
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching league: %w", err)
	}

	proTeams, err := a.GetProSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching pro schedule: %w", err)
	}

	snap := buildSnapshot(leagueResponse, proTeams, a.fallback)
	snap.FetchedAt = a.now()

	slog.Info("Fetched league snapshot",
		"league", snap.LeagueID,
		"teams", len(snap.Teams),
		"week", snap.CurrentWeek,
		"scoring_period", snap.CurrentScoringPeriod,
	)
	return snap, nil
}

func (a *API) GetProSchedule(ctx context.Context) ([]models.ProTeamInfo, error) {
	var scheduleResponse models.ProScheduleResponse

	endpoint := fmt.Sprintf("/seasons/%s", a.client.Config.Year)
	params := map[string]string{
		"view": "proTeamSchedules_wl",
	}

	if err := a.client.Get(ctx, endpoint, params, nil, &scheduleResponse); err != nil {
		return nil, err
	}

	return scheduleResponse.Settings.ProTeams, nil
}

func buildSnapshot(resp models.LeagueResponse, proTeams []models.ProTeamInfo, fallback models.Calendar) *models.LeagueSnapshot {
	cal := fallback
	if resp.Status.FirstScoringPeriod > 0 {
		cal.FirstScoringPeriod = resp.Status.FirstScoringPeriod
	}
	if n := resp.Settings.ScheduleSettings.MatchupPeriodCount; n > 0 {
		cal.Weeks = n
	}
	if start, ok := seasonStart(proTeams, cal); ok {
		cal.SeasonStart = start
	}

	owners := make(map[string]string, len(resp.Members))
	for _, m := range resp.Members {
		name := strings.TrimSpace(m.FirstName + " " + m.LastName)
		if name == "" {
			name = m.DisplayName
		}
		owners[m.ID] = name
	}

	teams := make([]models.FantasyTeam, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		teams = append(teams, buildTeam(t, owners, resp.SeasonID))
	}

	currentWeek := resp.Status.CurrentMatchupPeriod
	if currentWeek == 0 && resp.ScoringPeriodID > 0 {
		currentWeek = cal.WeekForPeriod(resp.ScoringPeriodID)
	}

	return &models.LeagueSnapshot{
		LeagueID:             resp.ID,
		Name:                 resp.Settings.Name,
		SeasonID:             resp.SeasonID,
		CurrentWeek:          currentWeek,
		CurrentScoringPeriod: resp.ScoringPeriodID,
		Calendar:             cal,
		Teams:                teams,
		Schedule:             buildGameSchedule(proTeams),
		Matchups:             buildMatchups(resp.Schedule),
	}
}

func buildTeam(t models.Team, owners map[string]string, seasonID int) models.FantasyTeam {
	name := t.Name
	if name == "" {
		name = strings.TrimSpace(t.Location + " " + t.Nickname)
	}

	var owner string
	if len(t.Owners) > 0 {
		owner = owners[t.Owners[0]]
	}

	team := models.FantasyTeam{
		ID:     t.ID,
		Name:   name,
		Abbrev: t.Abbreviation,
		Owner:  owner,
		Record: models.TeamRecord{
			Wins:          t.Record.Overall.Wins,
			Losses:        t.Record.Overall.Losses,
			Ties:          t.Record.Overall.Ties,
			PointsFor:     t.Record.Overall.PointsFor,
			PointsAgainst: t.Record.Overall.PointsAgainst,
		},
		Roster: make([]models.RosterSlot, 0, len(t.Roster.Entries)),
	}

	for _, entry := range t.Roster.Entries {
		player := entry.PlayerPoolEntry.Player
		status := player.InjuryStatus
		if status == "" {
			status = entry.InjuryStatus
		}
		mean, sd := ProjectPlayer(player.Stats, seasonID)

		team.Roster = append(team.Roster, models.RosterSlot{
			SlotID: entry.LineupSlotID,
			Slot:   getLineupSlotString(entry.LineupSlotID),
			Player: models.FantasyPlayer{
				ID:              player.ID,
				Name:            player.FullName,
				Positions:       eligiblePositions(player.EligibleSlots),
				ProTeamID:       player.ProTeamID,
				ProTeam:         getProTeamString(player.ProTeamID),
				InjuryStatus:    status,
				ProjectedMean:   mean,
				ProjectedStdDev: sd,
			},
		})
	}

	return team
}

// buildGameSchedule counts games per pro team per scoring period. A team with
// two games in one period gets a count of two.
func buildGameSchedule(proTeams []models.ProTeamInfo) models.GameSchedule {
	schedule := make(models.GameSchedule)
	for _, team := range proTeams {
		for key, games := range team.ProGamesByScoringPeriod {
			period, err := strconv.Atoi(key)
			if err != nil || len(games) == 0 {
				continue
			}
			if schedule[period] == nil {
				schedule[period] = make(map[int]int)
			}
			schedule[period][team.ID] += len(games)
		}
	}
	return schedule
}

// seasonStart anchors the calendar on the earliest scheduled game: the date
// of a game in period p minus (p - first) days.
func seasonStart(proTeams []models.ProTeamInfo, cal models.Calendar) (time.Time, bool) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}

	best := -1
	var bestDate int64
	for _, team := range proTeams {
		for key, games := range team.ProGamesByScoringPeriod {
			period, err := strconv.Atoi(key)
			if err != nil || len(games) == 0 || games[0].Date == 0 {
				continue
			}
			if best == -1 || period < best {
				best = period
				bestDate = games[0].Date
			}
		}
	}
	if best == -1 {
		return time.Time{}, false
	}

	local := time.UnixMilli(bestDate).In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	first := cal.FirstScoringPeriod
	if first < 1 {
		first = 1
	}
	return day.AddDate(0, 0, first-best), true
}

// buildMatchups keeps byes, which ESPN sends without an away side, as
// matchups with no opponent.
func buildMatchups(schedule []models.MatchupScore) []models.Matchup {
	matchups := make([]models.Matchup, 0, len(schedule))
	for _, match := range schedule {
		home, away := match.Home, match.Away
		if home.TeamID == 0 {
			home, away = away, home
		}
		if home.TeamID == 0 {
			continue
		}
		matchups = append(matchups, models.Matchup{
			Week:       match.MatchupPeriodID,
			HomeTeamID: home.TeamID,
			AwayTeamID: away.TeamID,
			HomeScore:  getScore(home),
			AwayScore:  getScore(away),
		})
	}

	sort.SliceStable(matchups, func(i, j int) bool {
		return matchups[i].Week < matchups[j].Week
	})
	return matchups
}

func getScore(teamScore models.TeamScore) float64 {
	score := teamScore.TotalPointsLive
	if score == 0 {
		score = teamScore.TotalPoints
	}
	return score
}
