package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/omarshaarawi/courtside/internal/models"
	"github.com/omarshaarawi/courtside/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	snap *models.LeagueSnapshot
	err  error
}

func (p stubProvider) FetchSnapshot(ctx context.Context) (*models.LeagueSnapshot, error) {
	return p.snap, p.err
}

func testSnapshot() *models.LeagueSnapshot {
	return &models.LeagueSnapshot{
		LeagueID:             5,
		CurrentWeek:          1,
		CurrentScoringPeriod: 1,
		Calendar: models.Calendar{
			SeasonStart:        time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
			FirstScoringPeriod: 1,
			Weeks:              20,
		},
		Teams: []models.FantasyTeam{
			{ID: 1, Name: "Team X", Roster: []models.RosterSlot{
				{SlotID: 0, Player: models.FantasyPlayer{ID: 11, ProTeamID: 13, ProjectedMean: 30, ProjectedStdDev: 4}},
			}},
			{ID: 2, Name: "Team Y", Roster: []models.RosterSlot{
				{SlotID: 0, Player: models.FantasyPlayer{ID: 21, ProTeamID: 2, ProjectedMean: 20, ProjectedStdDev: 3}},
			}},
		},
		Schedule: models.GameSchedule{1: {13: 1, 2: 1}},
		Matchups: []models.Matchup{{Week: 1, HomeTeamID: 1, AwayTeamID: 2}},
	}
}

func newTestServer(p stubProvider) *Server {
	return NewServer(service.NewPredictionService(p, service.Defaults{}), "test")
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestCalculatePredictions(t *testing.T) {
	s := newTestServer(stubProvider{snap: testSnapshot()})

	res, _, err := s.calculatePredictions(context.Background(), &mcp.CallToolRequest{}, PredictionArgs{})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out struct {
		Week         int      `json:"week"`
		InjuryStatus []string `json:"injury_status"`
		Teams        []struct {
			Prediction struct {
				Total struct {
					Mean   float64 `json:"mean"`
					StdDev float64 `json:"std_dev"`
				} `json:"total"`
			} `json:"prediction"`
		} `json:"teams"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))

	assert.Equal(t, 1, out.Week)
	assert.Equal(t, []string{"ACTIVE"}, out.InjuryStatus)
	require.Len(t, out.Teams, 2)
	assert.Equal(t, 30.0, out.Teams[0].Prediction.Total.Mean)
	assert.Equal(t, 4.0, out.Teams[0].Prediction.Total.StdDev)
}

func TestCalculatePredictionsRangeError(t *testing.T) {
	s := newTestServer(stubProvider{snap: testSnapshot()})

	res, _, err := s.calculatePredictions(context.Background(), &mcp.CallToolRequest{}, PredictionArgs{WeekIndex: 40})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "error (RANGE): week_index")
}

func TestTeamOutlookRequiresTeam(t *testing.T) {
	s := newTestServer(stubProvider{snap: testSnapshot()})

	res, _, err := s.teamOutlook(context.Background(), &mcp.CallToolRequest{}, PredictionArgs{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "error: team_id is required", resultText(t, res))

	res, _, err = s.teamOutlook(context.Background(), &mcp.CallToolRequest{}, PredictionArgs{TeamID: 2})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"winner": "B"`)
}

func TestMatchupOutlookDataUnavailable(t *testing.T) {
	s := newTestServer(stubProvider{err: errors.New("timeout")})

	res, _, err := s.matchupOutlook(context.Background(), &mcp.CallToolRequest{}, PredictionArgs{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "DATA_UNAVAILABLE")
}

func TestServerOverInMemoryTransport(t *testing.T) {
	s := newTestServer(stubProvider{snap: testSnapshot()})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.MCP().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"calculate_fantasy_predictions", "team_outlook", "matchup_outlook", "list_teams"}, names)
	assert.Len(t, s.Tools(), 4)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "matchup_outlook", Arguments: map[string]any{"day_of_week_override": 0}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out struct {
		Matchups []struct {
			Differential struct {
				Mean   float64 `json:"mean"`
				Winner string  `json:"winner"`
			} `json:"differential"`
		} `json:"matchups"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	require.Len(t, out.Matchups, 1)
	assert.Equal(t, 10.0, out.Matchups[0].Differential.Mean)
	assert.Equal(t, "A", out.Matchups[0].Differential.Winner)
}
