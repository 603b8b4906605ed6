// Package tools exposes the prediction service as MCP tools over streamable
// HTTP.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/omarshaarawi/courtside/internal/predict"
	"github.com/omarshaarawi/courtside/internal/service"
)

type PredictionArgs struct {
	WeekIndex    int      `json:"week_index,omitempty" jsonschema:"Matchup week, 1-based (0 = current week)"`
	DayOfWeek    *int     `json:"day_of_week_override,omitempty" jsonschema:"First remaining day 0-6 (default: today for the current week, otherwise 0)"`
	TeamID       int      `json:"team_id,omitempty" jsonschema:"Limit the result to one fantasy team id"`
	InjuryStatus []string `json:"injury_status,omitempty" jsonschema:"Injury labels to count (default ACTIVE)"`
}

func (a PredictionArgs) request() service.Request {
	return service.Request{
		WeekIndex:    a.WeekIndex,
		DayOfWeek:    a.DayOfWeek,
		TeamID:       a.TeamID,
		InjuryStatus: a.InjuryStatus,
	}
}

type ListTeamsArgs struct{}

type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Server struct {
	mcp      *mcp.Server
	svc      *service.PredictionService
	registry []ToolInfo
}

func NewServer(svc *service.PredictionService, version string) *Server {
	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "courtside",
				Version: version,
			},
			nil,
		),
		svc:      svc,
		registry: make([]ToolInfo, 0, 4),
	}

	addTool(s, &mcp.Tool{
		Name:        "calculate_fantasy_predictions",
		Description: "Per-day, cumulative and remaining fantasy point estimates (mean and standard deviation) for every team in a matchup week",
	}, s.calculatePredictions)

	addTool(s, &mcp.Tool{
		Name:        "team_outlook",
		Description: "Remaining-week projection for one team with its opponent and the projected differential",
	}, s.teamOutlook)

	addTool(s, &mcp.Tool{
		Name:        "matchup_outlook",
		Description: "Projected final scores, margin and win probability for each matchup in a week",
	}, s.matchupOutlook)

	addTool(s, &mcp.Tool{
		Name:        "list_teams",
		Description: "Fantasy teams in the league with ids, owners and records",
	}, s.listTeams)

	return s
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.registry = append(s.registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.mcp, tool, handler)
}

// Tools lists the registered tools.
func (s *Server) Tools() []ToolInfo {
	return s.registry
}

// MCP returns the underlying server for transports other than HTTP.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (s *Server) calculatePredictions(ctx context.Context, req *mcp.CallToolRequest, args PredictionArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(s.svc.PredictWeek(ctx, args.request()))
}

func (s *Server) teamOutlook(ctx context.Context, req *mcp.CallToolRequest, args PredictionArgs) (*mcp.CallToolResult, any, error) {
	if args.TeamID == 0 {
		return toolError(fmt.Errorf("team_id is required")), nil, nil
	}
	return toolJSON(s.svc.TeamOutlook(ctx, args.request()))
}

func (s *Server) matchupOutlook(ctx context.Context, req *mcp.CallToolRequest, args PredictionArgs) (*mcp.CallToolResult, any, error) {
	outlooks, err := s.svc.MatchupOutlooks(ctx, args.request())
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(map[string]any{"matchups": outlooks}, nil)
}

func (s *Server) listTeams(ctx context.Context, req *mcp.CallToolRequest, args ListTeamsArgs) (*mcp.CallToolResult, any, error) {
	teams, err := s.svc.Teams(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(map[string]any{"teams": teams}, nil)
}

func toolJSON(v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("encoding result: %w", err)), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	text := fmt.Sprintf("error: %v", err)
	if kind := predict.KindOf(err); kind != "" {
		text = fmt.Sprintf("error (%s): %v", kind, err)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
