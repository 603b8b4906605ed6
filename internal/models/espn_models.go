package models

type LeagueResponse struct {
	ID              int            `json:"id"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	SeasonID        int            `json:"seasonId"`
	SegmentID       int            `json:"segmentId"`
	Status          Status         `json:"status"`
	Teams           []Team         `json:"teams"`
	Members         []Member       `json:"members"`
	Schedule        []MatchupScore `json:"schedule"`
	Settings        Settings       `json:"settings"`
}

type Settings struct {
	Name             string           `json:"name"`
	Size             int              `json:"size"`
	ScheduleSettings ScheduleSettings `json:"scheduleSettings"`
}

type ScheduleSettings struct {
	MatchupPeriodCount int              `json:"matchupPeriodCount"`
	MatchupPeriods     map[string][]int `json:"matchupPeriods"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type Team struct {
	ID           int      `json:"id"`
	Abbreviation string   `json:"abbrev"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Nickname     string   `json:"nickname"`
	Owners       []string `json:"owners"`
	PlayoffSeed  int      `json:"playoffSeed"`
	Points       float64  `json:"points"`
	Roster       Roster   `json:"roster"`
	Record       Record   `json:"record"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type Record struct {
	Overall RecordDetails `json:"overall"`
}

type RecordDetails struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Percentage    float64 `json:"percentage"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type MatchupScore struct {
	ID              int       `json:"id"`
	MatchupPeriodID int       `json:"matchupPeriodId"`
	Away            TeamScore `json:"away"`
	Home            TeamScore `json:"home"`
	Winner          string    `json:"winner"`
}

type TeamScore struct {
	TeamID          int     `json:"teamId"`
	TotalPoints     float64 `json:"totalPoints"`
	TotalPointsLive float64 `json:"totalPointsLive"`
}

type RosterEntry struct {
	PlayerID        int             `json:"playerId"`
	LineupSlotID    int             `json:"lineupSlotId"`
	InjuryStatus    string          `json:"injuryStatus"`
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
}

type PlayerPoolEntry struct {
	ID       int    `json:"id"`
	OnTeamID int    `json:"onTeamId"`
	Player   Player `json:"player"`
}

type Player struct {
	ID                int    `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	EligibleSlots     []int  `json:"eligibleSlots"`
	ProTeamID         int    `json:"proTeamId"`
	Injured           bool   `json:"injured"`
	InjuryStatus      string `json:"injuryStatus"`
	Stats             []Stat `json:"stats"`
}

// Stat is one ESPN stat window. StatSplitTypeID 0 is the season, 1/2/3 are
// the last 7/15/30 days; StatSourceID 1 marks projections.
type Stat struct {
	ID              string             `json:"id"`
	SeasonID        int                `json:"seasonId"`
	StatSourceID    int                `json:"statSourceId"`
	StatSplitTypeID int                `json:"statSplitTypeId"`
	ScoringPeriodID int                `json:"scoringPeriodId"`
	AppliedTotal    float64            `json:"appliedTotal"`
	AppliedAverage  float64            `json:"appliedAverage"`
	AverageStats    map[string]float64 `json:"averageStats"`
}

type ProScheduleResponse struct {
	Settings struct {
		ProTeams []ProTeamInfo `json:"proTeams"`
	} `json:"settings"`
}

type ProTeamInfo struct {
	ID                      int                  `json:"id"`
	Abbrev                  string               `json:"abbrev"`
	Name                    string               `json:"name"`
	ProGamesByScoringPeriod map[string][]ProGame `json:"proGamesByScoringPeriod"`
}

type ProGame struct {
	ID            int   `json:"id"`
	Date          int64 `json:"date"`
	HomeProTeamID int   `json:"homeProTeamId"`
	AwayProTeamID int   `json:"awayProTeamId"`
}
