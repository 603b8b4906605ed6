package models

import "time"

const DaysPerWeek = 7

// Injury status labels as reported by ESPN. An empty label is read as active.
const (
	InjuryActive       = "ACTIVE"
	InjuryDayToDay     = "DAY_TO_DAY"
	InjuryProbable     = "PROBABLE"
	InjuryQuestionable = "QUESTIONABLE"
	InjuryDoubtful     = "DOUBTFUL"
	InjuryOut          = "OUT"
	InjuryReserve      = "INJURY_RESERVE"
	InjurySuspension   = "SUSPENSION"
)

// Lineup slot ids that are not part of the active lineup.
const (
	SlotBench          = 12
	SlotInjuredReserve = 13
)

// LeagueSnapshot is an immutable view of a league at one point in time.
// Nothing in the repository mutates a snapshot after it is built.
type LeagueSnapshot struct {
	LeagueID             int           `json:"league_id"`
	Name                 string        `json:"name"`
	SeasonID             int           `json:"season_id"`
	CurrentWeek          int           `json:"current_week"`
	CurrentScoringPeriod int           `json:"current_scoring_period"`
	Calendar             Calendar      `json:"calendar"`
	Teams                []FantasyTeam `json:"-"`
	Schedule             GameSchedule  `json:"-"`
	Matchups             []Matchup     `json:"-"`
	FetchedAt            time.Time     `json:"fetched_at"`
}

type FantasyTeam struct {
	ID     int          `json:"id"`
	Name   string       `json:"name"`
	Abbrev string       `json:"abbrev"`
	Owner  string       `json:"owner"`
	Record TeamRecord   `json:"record"`
	Roster []RosterSlot `json:"-"`
}

type TeamRecord struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

type RosterSlot struct {
	Player FantasyPlayer `json:"player"`
	SlotID int           `json:"slot_id"`
	Slot   string        `json:"slot"`
}

// Active reports whether the slot counts toward the daily lineup.
func (s RosterSlot) Active() bool {
	return s.SlotID != SlotBench && s.SlotID != SlotInjuredReserve
}

type FantasyPlayer struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Positions       []string `json:"positions"`
	ProTeamID       int      `json:"pro_team_id"`
	ProTeam         string   `json:"pro_team"`
	InjuryStatus    string   `json:"injury_status"`
	ProjectedMean   float64  `json:"projected_mean"`
	ProjectedStdDev float64  `json:"projected_std_dev"`
}

// Status returns the injury label, defaulting to ACTIVE.
func (p FantasyPlayer) Status() string {
	if p.InjuryStatus == "" {
		return InjuryActive
	}
	return p.InjuryStatus
}

// Matchup is one scheduled pairing. A bye is stored with the idle team as
// HomeTeamID and no away team.
type Matchup struct {
	Week       int     `json:"week"`
	HomeTeamID int     `json:"home_team_id"`
	AwayTeamID int     `json:"away_team_id,omitempty"`
	HomeScore  float64 `json:"home_score"`
	AwayScore  float64 `json:"away_score"`
}

func (m Matchup) Bye() bool {
	return m.HomeTeamID == 0 || m.AwayTeamID == 0
}

// GameSchedule maps scoring period id to pro team id to the number of games
// that team plays in the period.
type GameSchedule map[int]map[int]int

// Games returns the pro team game counts for one scoring period.
func (s GameSchedule) Games(periodID int) map[int]int {
	return s[periodID]
}

// Calendar maps scoring periods onto dates and matchup weeks. Scoring
// period FirstScoringPeriod falls on SeasonStart and each period is one day.
type Calendar struct {
	SeasonStart        time.Time `json:"season_start"`
	FirstScoringPeriod int       `json:"first_scoring_period"`
	Weeks              int       `json:"weeks"`
}

func (c Calendar) first() int {
	if c.FirstScoringPeriod < 1 {
		return 1
	}
	return c.FirstScoringPeriod
}

func (c Calendar) PeriodDate(periodID int) time.Time {
	return c.SeasonStart.AddDate(0, 0, periodID-c.first())
}

// PeriodForDate returns the scoring period containing t. Dates before the
// season start map to the first period.
func (c Calendar) PeriodForDate(t time.Time) int {
	start := time.Date(c.SeasonStart.Year(), c.SeasonStart.Month(), c.SeasonStart.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(start) {
		return c.first()
	}
	return c.first() + int(day.Sub(start).Hours()/24)
}

func (c Calendar) WeekForPeriod(periodID int) int {
	if periodID < c.first() {
		return 1
	}
	return (periodID-c.first())/DaysPerWeek + 1
}

// WeekStart returns the first scoring period of a 1-based week.
func (c Calendar) WeekStart(week int) int {
	return c.first() + DaysPerWeek*(week-1)
}

func (s *LeagueSnapshot) Team(id int) (FantasyTeam, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return FantasyTeam{}, false
}

// MatchupFor finds the matchup involving teamID in the given week.
func (s *LeagueSnapshot) MatchupFor(week, teamID int) (Matchup, bool) {
	for _, m := range s.Matchups {
		if m.Week != week {
			continue
		}
		if m.HomeTeamID == teamID || m.AwayTeamID == teamID {
			return m, true
		}
	}
	return Matchup{}, false
}

func (s *LeagueSnapshot) WeekMatchups(week int) []Matchup {
	var out []Matchup
	for _, m := range s.Matchups {
		if m.Week == week {
			out = append(out, m)
		}
	}
	return out
}
