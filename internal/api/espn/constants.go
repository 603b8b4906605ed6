package espn

var proTeams = map[int]string{
	0: "FA", 1: "ATL", 2: "BOS", 3: "NOP", 4: "CHI", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
	9: "GSW", 10: "HOU", 11: "IND", 12: "LAC", 13: "LAL", 14: "MIA", 15: "MIL", 16: "MIN",
	17: "BKN", 18: "NYK", 19: "ORL", 20: "PHI", 21: "PHX", 22: "POR", 23: "SAC", 24: "SAS",
	25: "OKC", 26: "UTA", 27: "WAS", 28: "TOR", 29: "MEM", 30: "CHA",
}

func getProTeamString(proTeamID int) string {
	if team, ok := proTeams[proTeamID]; ok {
		return team
	}
	return "Unknown"
}

// ProTeamID resolves an abbreviation such as "LAL" to its ESPN id.
func ProTeamID(abbrev string) (int, bool) {
	for id, a := range proTeams {
		if a == abbrev {
			return id, true
		}
	}
	return 0, false
}

func getLineupSlotString(slotID int) string {
	switch slotID {
	case 0:
		return "PG"
	case 1:
		return "SG"
	case 2:
		return "SF"
	case 3:
		return "PF"
	case 4:
		return "C"
	case 5:
		return "G"
	case 6:
		return "F"
	case 7:
		return "SG/SF"
	case 8:
		return "G/F"
	case 9:
		return "PF/C"
	case 10:
		return "F/C"
	case 11:
		return "UT"
	case 12:
		return "BE"
	case 13:
		return "IR"
	case 15:
		return "Rookie"
	default:
		return "Unknown"
	}
}

// eligiblePositions keeps the primary and combo positions from a player's
// eligible slots, dropping UT/BE/IR.
func eligiblePositions(slots []int) []string {
	var out []string
	for _, id := range slots {
		if id > 10 {
			continue
		}
		out = append(out, getLineupSlotString(id))
	}
	return out
}

// Stat ids used by the points league scoring formula.
const (
	statPTS  = "0"
	statBLK  = "1"
	statSTL  = "2"
	statAST  = "3"
	statREB  = "6"
	statTO   = "11"
	statFGM  = "13"
	statFGA  = "14"
	statFTM  = "15"
	statFTA  = "16"
	stat3PTM = "17"
)

const (
	splitSeason  = 0
	splitLast7   = 1
	splitLast15  = 2
	splitLast30  = 3
	sourceActual = 0
	sourceProj   = 1
)

// SlotName returns the lineup label for an ESPN slot id.
func SlotName(slotID int) string {
	return getLineupSlotString(slotID)
}
