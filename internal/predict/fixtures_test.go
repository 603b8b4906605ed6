package predict

import (
	"time"

	"github.com/omarshaarawi/courtside/internal/models"
)

const (
	proBOS = 2
	proGSW = 9
	proLAL = 13
	proMIA = 14
)

func testCalendar() models.Calendar {
	return models.Calendar{
		SeasonStart:        time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		FirstScoringPeriod: 1,
		Weeks:              20,
	}
}

// Week 1 schedule: LAL plays days 0, 2 (twice) and 5; BOS plays 0, 1, 4;
// GSW plays 1 and 6; MIA never plays.
func testSchedule() models.GameSchedule {
	return models.GameSchedule{
		1: {proLAL: 1, proBOS: 1},
		2: {proBOS: 1, proGSW: 1},
		3: {proLAL: 2},
		5: {proBOS: 1},
		6: {proLAL: 1},
		7: {proGSW: 1},
	}
}

func player(id int, name string, pro int, status string, mean, sd float64) models.FantasyPlayer {
	return models.FantasyPlayer{
		ID:              id,
		Name:            name,
		ProTeamID:       pro,
		InjuryStatus:    status,
		ProjectedMean:   mean,
		ProjectedStdDev: sd,
	}
}

func slot(p models.FantasyPlayer, slotID int) models.RosterSlot {
	return models.RosterSlot{Player: p, SlotID: slotID}
}

func testTeam() models.FantasyTeam {
	return models.FantasyTeam{
		ID:   1,
		Name: "Splash Bros",
		Roster: []models.RosterSlot{
			slot(player(101, "Laker Starter", proLAL, models.InjuryActive, 20, 5), 0),
			slot(player(102, "Celtic Starter", proBOS, "", 15, 4), 1),
			slot(player(103, "Warrior DTD", proGSW, models.InjuryDayToDay, 30, 6), 2),
			slot(player(104, "Heat Starter", proMIA, models.InjuryActive, 25, 5), 3),
			slot(player(105, "Laker Bench", proLAL, models.InjuryActive, 10, 2), models.SlotBench),
			slot(player(106, "Celtic IR", proBOS, models.InjuryOut, 40, 8), models.SlotInjuredReserve),
		},
	}
}

func testSnapshot() *models.LeagueSnapshot {
	other := models.FantasyTeam{
		ID:   2,
		Name: "Bench Mob",
		Roster: []models.RosterSlot{
			slot(player(201, "Warrior Starter", proGSW, models.InjuryActive, 18, 3), 0),
			slot(player(202, "Celtic Sixth", proBOS, models.InjuryActive, 12, 4), 1),
		},
	}
	return &models.LeagueSnapshot{
		LeagueID:    42,
		CurrentWeek: 1,
		Calendar:    testCalendar(),
		Teams:       []models.FantasyTeam{testTeam(), other},
		Schedule:    testSchedule(),
		Matchups: []models.Matchup{
			{Week: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: 10, AwayScore: 5},
		},
	}
}

func mustWeek(week, day int) Week {
	w, err := ResolveWeek(testCalendar(), testSchedule(), week, day)
	if err != nil {
		panic(err)
	}
	return w
}
