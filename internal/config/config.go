package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	TelegramBot TelegramBot
	ESPNAPI     ESPNAPI
	Prediction  Prediction
	Server      Server
	Scheduler   Scheduler
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type ESPNAPI struct {
	Year              string        `envconfig:"YEAR" required:"true"`
	LeagueID          string        `envconfig:"LEAGUE_ID" required:"true"`
	SWID              string        `envconfig:"SWID"`
	ESPNS2            string        `envconfig:"ESPN_S2"`
	BaseURL           string        `envconfig:"ESPN_BASE_URL" default:"https://lm-api-reads.fantasy.espn.com/apis/v3/games/fba"`
	RequestsPerSecond float64       `envconfig:"ESPN_REQUESTS_PER_SECOND" default:"2"`
	Timeout           time.Duration `envconfig:"ESPN_TIMEOUT" default:"10s"`
	BreakerTimeout    time.Duration `envconfig:"ESPN_BREAKER_TIMEOUT" default:"30s"`
}

type Prediction struct {
	SnapshotFile  string        `envconfig:"SNAPSHOT_FILE"`
	CacheTTL      time.Duration `envconfig:"SNAPSHOT_TTL" default:"15m"`
	InjuryStatus  string        `envconfig:"INJURY_STATUS" default:"ACTIVE"`
	IncludeBench  bool          `envconfig:"INCLUDE_BENCH" default:"false"`
	DailyLimit    int           `envconfig:"DAILY_ACTIVE_LIMIT" default:"10"`
	SeasonStart   string        `envconfig:"SEASON_START" default:"2025-10-21"`
	Weeks         int           `envconfig:"SEASON_WEEKS" default:"20"`
	SeasonStartAt time.Time     `ignored:"true"`
}

type Server struct {
	Addr    string `envconfig:"HTTP_ADDR" default:":80"`
	MCPPath string `envconfig:"MCP_PATH" default:"/mcp"`
}

type Scheduler struct {
	Timezone      string `envconfig:"SCHEDULER_TZ" default:"America/Chicago"`
	OutlookCron   string `envconfig:"OUTLOOK_CRON" default:"30 7 * * 1"`
	RemainingCron string `envconfig:"REMAINING_CRON" default:"30 7 * * 0,2-6"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	start, err := time.Parse("2006-01-02", c.Prediction.SeasonStart)
	if err != nil {
		return fmt.Errorf("parsing SEASON_START: %w", err)
	}
	c.Prediction.SeasonStartAt = start

	if c.Prediction.Weeks < 1 {
		return fmt.Errorf("SEASON_WEEKS must be positive, got %d", c.Prediction.Weeks)
	}
	if c.Prediction.DailyLimit < 0 {
		return fmt.Errorf("DAILY_ACTIVE_LIMIT must not be negative, got %d", c.Prediction.DailyLimit)
	}

	for name, spec := range map[string]string{
		"OUTLOOK_CRON":   c.Scheduler.OutlookCron,
		"REMAINING_CRON": c.Scheduler.RemainingCron,
	} {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
	}

	return nil
}
