// Package snapshotfile loads a league snapshot from a YAML or JSON file so
// predictions can run without ESPN credentials.
package snapshotfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/courtside/internal/api/espn"
	"github.com/omarshaarawi/courtside/internal/models"
	yaml "gopkg.in/yaml.v2"
)

type File struct {
	LeagueID             int                    `json:"leagueId" yaml:"leagueId"`
	Name                 string                 `json:"name" yaml:"name"`
	SeasonID             int                    `json:"seasonId" yaml:"seasonId"`
	CurrentWeek          int                    `json:"currentWeek" yaml:"currentWeek"`
	CurrentScoringPeriod int                    `json:"currentScoringPeriod" yaml:"currentScoringPeriod"`
	SeasonStart          string                 `json:"seasonStart" yaml:"seasonStart"`
	FirstScoringPeriod   int                    `json:"firstScoringPeriod" yaml:"firstScoringPeriod"`
	Weeks                int                    `json:"weeks" yaml:"weeks"`
	Teams                []Team                 `json:"teams" yaml:"teams"`
	Schedule             map[int]map[string]int `json:"schedule" yaml:"schedule"`
	Matchups             []Matchup              `json:"matchups" yaml:"matchups"`
}

type Team struct {
	ID     int      `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Abbrev string   `json:"abbrev" yaml:"abbrev"`
	Owner  string   `json:"owner" yaml:"owner"`
	Wins   int      `json:"wins" yaml:"wins"`
	Losses int      `json:"losses" yaml:"losses"`
	Ties   int      `json:"ties" yaml:"ties"`
	Roster []Player `json:"roster" yaml:"roster"`
}

type Player struct {
	ID        int      `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Positions []string `json:"positions" yaml:"positions"`
	ProTeam   string   `json:"proTeam" yaml:"proTeam"`
	SlotID    int      `json:"slotId" yaml:"slotId"`
	Injury    string   `json:"injuryStatus" yaml:"injuryStatus"`
	Mean      float64  `json:"mean" yaml:"mean"`
	StdDev    float64  `json:"stdDev" yaml:"stdDev"`
}

type Matchup struct {
	Week      int     `json:"week" yaml:"week"`
	Home      int     `json:"home" yaml:"home"`
	Away      int     `json:"away" yaml:"away"`
	HomeScore float64 `json:"homeScore" yaml:"homeScore"`
	AwayScore float64 `json:"awayScore" yaml:"awayScore"`
}

// Loader reads the snapshot file on every fetch; caching is left to the
// repository in front of it.
type Loader struct {
	path string
	now  func() time.Time
}

func NewLoader(path string) *Loader {
	return &Loader{path: path, now: time.Now}
}

func (l *Loader) FetchSnapshot(ctx context.Context) (*models.LeagueSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var f File
	switch ext := filepath.Ext(l.path); ext {
	case ".json":
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("bad JSON in %s: %w", l.path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("bad YAML in %s: %w", l.path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot file format: %s", ext)
	}

	snap, err := f.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot file %s: %w", l.path, err)
	}
	snap.FetchedAt = l.now()
	return snap, nil
}

// Snapshot validates the file and converts it into a league snapshot.
func (f File) Snapshot() (*models.LeagueSnapshot, error) {
	if len(f.Teams) == 0 {
		return nil, fmt.Errorf("'teams' cannot be empty")
	}

	start, err := time.Parse("2006-01-02", f.SeasonStart)
	if err != nil {
		return nil, fmt.Errorf("parsing seasonStart: %w", err)
	}

	snap := &models.LeagueSnapshot{
		LeagueID:             f.LeagueID,
		Name:                 f.Name,
		SeasonID:             f.SeasonID,
		CurrentWeek:          f.CurrentWeek,
		CurrentScoringPeriod: f.CurrentScoringPeriod,
		Calendar: models.Calendar{
			SeasonStart:        start,
			FirstScoringPeriod: f.FirstScoringPeriod,
			Weeks:              f.Weeks,
		},
		Schedule: make(models.GameSchedule, len(f.Schedule)),
	}
	if snap.CurrentWeek == 0 && snap.CurrentScoringPeriod > 0 {
		snap.CurrentWeek = snap.Calendar.WeekForPeriod(snap.CurrentScoringPeriod)
	}

	seen := make(map[int]bool, len(f.Teams))
	for _, t := range f.Teams {
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate team id %d", t.ID)
		}
		seen[t.ID] = true

		team := models.FantasyTeam{
			ID:     t.ID,
			Name:   t.Name,
			Abbrev: t.Abbrev,
			Owner:  t.Owner,
			Record: models.TeamRecord{Wins: t.Wins, Losses: t.Losses, Ties: t.Ties},
			Roster: make([]models.RosterSlot, 0, len(t.Roster)),
		}
		for _, p := range t.Roster {
			if p.Mean < 0 || p.StdDev < 0 {
				return nil, fmt.Errorf("player %q: negative projection", p.Name)
			}
			proTeamID, err := proTeam(p.ProTeam)
			if err != nil {
				return nil, fmt.Errorf("player %q: %w", p.Name, err)
			}
			team.Roster = append(team.Roster, models.RosterSlot{
				SlotID: p.SlotID,
				Slot:   espn.SlotName(p.SlotID),
				Player: models.FantasyPlayer{
					ID:              p.ID,
					Name:            p.Name,
					Positions:       p.Positions,
					ProTeamID:       proTeamID,
					ProTeam:         strings.ToUpper(p.ProTeam),
					InjuryStatus:    strings.ToUpper(p.Injury),
					ProjectedMean:   p.Mean,
					ProjectedStdDev: p.StdDev,
				},
			})
		}
		snap.Teams = append(snap.Teams, team)
	}

	for period, games := range f.Schedule {
		counts := make(map[int]int, len(games))
		for abbrev, n := range games {
			if n < 0 {
				return nil, fmt.Errorf("schedule period %d: negative game count for %s", period, abbrev)
			}
			id, err := proTeam(abbrev)
			if err != nil {
				return nil, fmt.Errorf("schedule period %d: %w", period, err)
			}
			counts[id] += n
		}
		snap.Schedule[period] = counts
	}

	for _, m := range f.Matchups {
		if !seen[m.Home] || (m.Away != 0 && !seen[m.Away]) {
			return nil, fmt.Errorf("matchup in week %d references unknown team", m.Week)
		}
		snap.Matchups = append(snap.Matchups, models.Matchup{
			Week:       m.Week,
			HomeTeamID: m.Home,
			AwayTeamID: m.Away,
			HomeScore:  m.HomeScore,
			AwayScore:  m.AwayScore,
		})
	}

	return snap, nil
}

// proTeam accepts either an abbreviation ("LAL") or a numeric ESPN id.
func proTeam(s string) (int, error) {
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	if id, ok := espn.ProTeamID(strings.ToUpper(s)); ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown pro team %q", s)
}
