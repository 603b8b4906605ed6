package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/courtside/internal/api/espn"
	"github.com/omarshaarawi/courtside/internal/api/fantasy"
	"github.com/omarshaarawi/courtside/internal/api/snapshotfile"
	"github.com/omarshaarawi/courtside/internal/bot"
	"github.com/omarshaarawi/courtside/internal/config"
	"github.com/omarshaarawi/courtside/internal/models"
	"github.com/omarshaarawi/courtside/internal/predict"
	"github.com/omarshaarawi/courtside/internal/repository/memory"
	"github.com/omarshaarawi/courtside/internal/scheduler"
	"github.com/omarshaarawi/courtside/internal/service"
	"github.com/omarshaarawi/courtside/internal/tools"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	filter, err := predict.ParseInjuryFilterString(cfg.Prediction.InjuryStatus)
	if err != nil {
		return err
	}

	var provider fantasy.SnapshotProvider
	cacheKey := cfg.ESPNAPI.LeagueID
	if cfg.Prediction.SnapshotFile != "" {
		provider = snapshotfile.NewLoader(cfg.Prediction.SnapshotFile)
		cacheKey = cfg.Prediction.SnapshotFile
		slog.Info("Using snapshot file", "path", cfg.Prediction.SnapshotFile)
	} else {
		espnClient := espn.NewClient(cfg.ESPNAPI)
		provider = espn.NewAPI(espnClient, models.Calendar{
			SeasonStart: cfg.Prediction.SeasonStartAt,
			Weeks:       cfg.Prediction.Weeks,
		})
	}

	repo := memory.NewRepository()
	fantasyAPI := fantasy.NewAPI(provider, repo, cacheKey, cfg.Prediction.CacheTTL)
	predictionService := service.NewPredictionService(fantasyAPI, service.Defaults{
		Filter: filter,
		Options: predict.Options{
			IncludeBench: cfg.Prediction.IncludeBench,
			DailyLimit:   cfg.Prediction.DailyLimit,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramBot.Token != "" {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, predictionService)
		if err != nil {
			return err
		}

		sched, err := scheduler.NewScheduler(cfg.Scheduler, predictionService, telegramBot.SendMessage)
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer func() {
			err := sched.Stop()
			if err != nil {
				slog.Error("Error stopping scheduler", "error", err)
			}
		}()

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Warn("TELEGRAM_TOKEN not set, bot and scheduled reports disabled")
	}

	toolServer := tools.NewServer(predictionService, version)

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler)
	mux.HandleFunc("/tools", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"tools": toolServer.Tools()}); err != nil {
			slog.Error("Error writing tool list", "error", err)
		}
	})
	mux.Handle(cfg.Server.MCPPath, toolServer.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Server.Addr, "mcp_path", cfg.Server.MCPPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
	}

	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
