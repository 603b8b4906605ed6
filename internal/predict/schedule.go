package predict

import (
	"time"

	"github.com/omarshaarawi/courtside/internal/models"
)

// ScoringPeriod is one day of a matchup week.
type ScoringPeriod struct {
	ID    int
	Day   int
	Date  time.Time
	Games map[int]int
}

// GamesFor returns how many games the pro team plays in the period.
func (p ScoringPeriod) GamesFor(proTeamID int) int {
	return p.Games[proTeamID]
}

type Week struct {
	Index    int
	StartDay int
	Periods  []ScoringPeriod
}

// ResolveWeek maps a 1-based week index onto its seven scoring periods.
// day marks the first remaining day (0 is the first day of the week).
func ResolveWeek(cal models.Calendar, schedule models.GameSchedule, week, day int) (Week, error) {
	if week < 1 || (cal.Weeks > 0 && week > cal.Weeks) {
		return Week{}, rangeError("week_index", "week %d outside 1..%d", week, cal.Weeks)
	}
	if day < 0 || day >= models.DaysPerWeek {
		return Week{}, rangeError("day_of_week_override", "day %d outside 0..%d", day, models.DaysPerWeek-1)
	}

	first := cal.WeekStart(week)
	periods := make([]ScoringPeriod, models.DaysPerWeek)
	for i := range periods {
		id := first + i
		periods[i] = ScoringPeriod{
			ID:    id,
			Day:   i,
			Date:  cal.PeriodDate(id),
			Games: schedule.Games(id),
		}
	}

	return Week{Index: week, StartDay: day, Periods: periods}, nil
}

// Remaining returns the periods from StartDay through the end of the week.
func (w Week) Remaining() []ScoringPeriod {
	if w.StartDay >= len(w.Periods) {
		return nil
	}
	return w.Periods[w.StartDay:]
}

// GameCounts totals games per pro team over the remaining days.
func (w Week) GameCounts() map[int]int {
	counts := make(map[int]int)
	for _, p := range w.Remaining() {
		for team, n := range p.Games {
			if n > 0 {
				counts[team] += n
			}
		}
	}
	return counts
}
