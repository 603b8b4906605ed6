package predict

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/omarshaarawi/courtside/internal/models"
)

var knownStatuses = map[string]bool{
	models.InjuryActive:       true,
	models.InjuryDayToDay:     true,
	models.InjuryProbable:     true,
	models.InjuryQuestionable: true,
	models.InjuryDoubtful:     true,
	models.InjuryOut:          true,
	models.InjuryReserve:      true,
	models.InjurySuspension:   true,
}

// InjuryFilter is an allow-list of injury status labels. The zero value
// allows nothing; use DefaultInjuryFilter or ParseInjuryFilter.
type InjuryFilter struct {
	labels []string
}

func DefaultInjuryFilter() InjuryFilter {
	return InjuryFilter{labels: []string{models.InjuryActive}}
}

// ParseInjuryFilter normalizes labels ("day-to-day" becomes DAY_TO_DAY) and
// rejects anything outside the ESPN enumeration. No labels means {ACTIVE}.
func ParseInjuryFilter(labels []string) (InjuryFilter, error) {
	if len(labels) == 0 {
		return DefaultInjuryFilter(), nil
	}

	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, raw := range labels {
		label := normalizeStatus(raw)
		if !knownStatuses[label] {
			return InjuryFilter{}, validationError("injury_status", "unknown injury status %q", raw)
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	sort.Strings(out)
	return InjuryFilter{labels: out}, nil
}

// ParseInjuryFilterString parses a comma separated list such as
// "ACTIVE,DAY_TO_DAY".
func ParseInjuryFilterString(s string) (InjuryFilter, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultInjuryFilter(), nil
	}
	return ParseInjuryFilter(strings.Split(s, ","))
}

func normalizeStatus(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

func (f InjuryFilter) Allows(status string) bool {
	if status == "" {
		status = models.InjuryActive
	}
	for _, l := range f.labels {
		if l == status {
			return true
		}
	}
	return false
}

// Labels returns the sorted labels.
func (f InjuryFilter) Labels() []string {
	return append([]string(nil), f.labels...)
}

func (f InjuryFilter) String() string {
	return strings.Join(f.labels, ",")
}

func (f InjuryFilter) Equal(o InjuryFilter) bool {
	return f.String() == o.String()
}

func (f InjuryFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Labels())
}
