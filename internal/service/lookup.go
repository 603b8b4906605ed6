package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/courtside/internal/models"
	"github.com/omarshaarawi/courtside/internal/predict"
)

const matchThreshold = 0.5

// findTeam matches, in order: a numeric id, an exact abbreviation, then the
// closest team name by Levenshtein similarity above matchThreshold.
func findTeam(teams []models.FantasyTeam, query string) (models.FantasyTeam, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.FantasyTeam{}, &predict.Error{Kind: predict.KindValidation, Field: "team", Msg: "team name is required"}
	}

	if id, err := strconv.Atoi(query); err == nil {
		for _, t := range teams {
			if t.ID == id {
				return t, nil
			}
		}
		return models.FantasyTeam{}, predict.NotFound("team_id", id)
	}

	for _, t := range teams {
		if t.Abbrev != "" && strings.EqualFold(t.Abbrev, query) {
			return t, nil
		}
	}

	lowered := strings.ToLower(query)
	bestScore := -1.0
	var bestMatch *models.FantasyTeam

	for i, t := range teams {
		name := strings.ToLower(t.Name)
		distance := fuzzy.LevenshteinDistance(lowered, name)
		maxLen := float64(max(len(lowered), len(name)))
		similarity := 1 - float64(distance)/maxLen

		// A query that spells out a prefix or initials of the name counts as
		// a strong match even when the edit distance is large.
		if fuzzy.MatchFold(query, t.Name) {
			similarity = max(similarity, matchThreshold+0.01)
		}

		if similarity > matchThreshold && similarity > bestScore {
			bestScore = similarity
			bestMatch = &teams[i]
		}
	}

	if bestMatch == nil {
		return models.FantasyTeam{}, &predict.Error{
			Kind:  predict.KindNotFound,
			Field: "team",
			Msg:   fmt.Sprintf("no team matching %q", query),
		}
	}
	return *bestMatch, nil
}
