package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/courtside/internal/predict"
	"github.com/stretchr/testify/assert"
)

type fakeReporter struct {
	lastTeam string
	err      error
}

func (f *fakeReporter) GetWeekOutlook(ctx context.Context) (string, error) {
	return "week outlook", f.err
}

func (f *fakeReporter) GetRemainingOutlook(ctx context.Context) (string, error) {
	return "remaining outlook", f.err
}

func (f *fakeReporter) GetMatchupReport(ctx context.Context, team string) (string, error) {
	f.lastTeam = team
	return "matchup " + team, f.err
}

func (f *fakeReporter) GetTeamReport(ctx context.Context, team string) (string, error) {
	f.lastTeam = team
	return "team " + team, f.err
}

func (f *fakeReporter) GetSchedule(ctx context.Context) (string, error) {
	return "schedule", f.err
}

func command(text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			Chat:     &tgbotapi.Chat{ID: 99},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
		},
	}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/predict", "week outlook"},
		{"/remaining", "remaining outlook"},
		{"/schedule", "schedule"},
		{"/team  Team X ", "team Team X"},
		{"/matchup bombers", "matchup bombers"},
		{"/MATCHUP bombers", "matchup bombers"},
		{"/team", "Please provide a team name. Usage: /team <team name>"},
		{"/matchup", "Please provide a team name. Usage: /matchup <team name>"},
		{"/standings", "Unknown command. Use /help to see available commands."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			h := NewHandler(&fakeReporter{})
			msg := h.HandleCommand(context.Background(), command(tt.text))
			assert.Equal(t, tt.want, msg.Text)
			assert.Equal(t, int64(99), msg.ChatID)
			assert.Equal(t, "Markdown", msg.ParseMode)
		})
	}
}

func TestHandleCommandHelp(t *testing.T) {
	msg := NewHandler(&fakeReporter{}).HandleCommand(context.Background(), command("/help"))
	assert.Contains(t, msg.Text, "/remaining")
	assert.Contains(t, msg.Text, "/matchup <team>")
}

func TestHandleCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", predict.NotFound("team_id", 9), "🔍 team_id: no entry with id 9"},
		{"data unavailable", predict.DataUnavailable(errors.New("503")), "League data is unavailable right now. Try again in a few minutes."},
		{"other", errors.New("boom"), "Error predicting the week: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeReporter{err: tt.err})
			msg := h.HandleCommand(context.Background(), command("/predict"))
			assert.Equal(t, tt.want, msg.Text)
		})
	}
}
