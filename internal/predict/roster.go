package predict

import (
	"sort"

	"github.com/omarshaarawi/courtside/internal/models"
)

// Options tunes roster resolution.
type Options struct {
	// IncludeBench counts bench players. Injured reserve never counts.
	IncludeBench bool
	// DailyLimit caps the players counted per day to the top N by projected
	// mean. Zero means no cap.
	DailyLimit int
}

// Eligible is a player who contributes on a given day, with the number of
// games their pro team plays that day.
type Eligible struct {
	Player models.FantasyPlayer
	Games  int
}

// EligiblePlayers selects the roster players that score in the period. An
// empty result is a normal outcome.
func EligiblePlayers(team models.FantasyTeam, period ScoringPeriod, filter InjuryFilter, opts Options) []Eligible {
	var out []Eligible
	for _, slot := range team.Roster {
		if slot.SlotID == models.SlotInjuredReserve {
			continue
		}
		if !slot.Active() && !opts.IncludeBench {
			continue
		}
		if !filter.Allows(slot.Player.Status()) {
			continue
		}
		games := period.GamesFor(slot.Player.ProTeamID)
		if games <= 0 {
			continue
		}
		out = append(out, Eligible{Player: slot.Player, Games: games})
	}

	if opts.DailyLimit > 0 && len(out) > opts.DailyLimit {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Player.ProjectedMean > out[j].Player.ProjectedMean
		})
		out = out[:opts.DailyLimit]
	}

	return out
}
