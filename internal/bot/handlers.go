package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/courtside/internal/predict"
)

const helpText = "Available commands:\n" +
	"/predict - Full-week projection for every team\n" +
	"/remaining - Projection for the rest of the week\n" +
	"/matchup <team> - Projected result of a team's matchup\n" +
	"/team <team> - Day-by-day outlook for one team\n" +
	"/schedule - Games left this week"

// Reporter is the part of the prediction service the bot talks to.
type Reporter interface {
	GetWeekOutlook(ctx context.Context) (string, error)
	GetRemainingOutlook(ctx context.Context) (string, error)
	GetMatchupReport(ctx context.Context, team string) (string, error)
	GetTeamReport(ctx context.Context, team string) (string, error)
	GetSchedule(ctx context.Context) (string, error)
}

type Handler struct {
	reporter Reporter
}

func NewHandler(reporter Reporter) *Handler {
	return &Handler{reporter: reporter}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to Courtside! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "predict":
		h.reply(&msg, "predicting the week", func() (string, error) {
			return h.reporter.GetWeekOutlook(ctx)
		})
	case "remaining":
		h.reply(&msg, "predicting the rest of the week", func() (string, error) {
			return h.reporter.GetRemainingOutlook(ctx)
		})
	case "matchup":
		if args == "" {
			msg.Text = "Please provide a team name. Usage: /matchup <team name>"
			return msg
		}
		h.reply(&msg, "analyzing matchup", func() (string, error) {
			return h.reporter.GetMatchupReport(ctx, args)
		})
	case "team":
		if args == "" {
			msg.Text = "Please provide a team name. Usage: /team <team name>"
			return msg
		}
		h.reply(&msg, "getting team outlook", func() (string, error) {
			return h.reporter.GetTeamReport(ctx, args)
		})
	case "schedule":
		h.reply(&msg, "fetching schedule", func() (string, error) {
			return h.reporter.GetSchedule(ctx)
		})
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) reply(msg *tgbotapi.MessageConfig, action string, build func() (string, error)) {
	text, err := build()
	if err != nil {
		msg.Text = errorText(action, err)
		return
	}
	msg.Text = text
}

func errorText(action string, err error) string {
	switch predict.KindOf(err) {
	case predict.KindNotFound:
		return fmt.Sprintf("🔍 %v", err)
	case predict.KindRange, predict.KindValidation:
		return fmt.Sprintf("⚠️ %v", err)
	case predict.KindDataUnavailable:
		return "League data is unavailable right now. Try again in a few minutes."
	}
	return fmt.Sprintf("Error %s: %v", action, err)
}
