package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timetable-calendar-sync/config"
	"timetable-calendar-sync/internal/httpserver"
	syncDelivery "timetable-calendar-sync/internal/sync/delivery/http"
	gcalRepo "timetable-calendar-sync/internal/sync/repository/gcal"
	sduiRepo "timetable-calendar-sync/internal/sync/repository/sdui"
	"timetable-calendar-sync/internal/sync/usecase"
	"timetable-calendar-sync/pkg/backoff"
	"timetable-calendar-sync/pkg/datemath"
	"timetable-calendar-sync/pkg/gcalendar"
	"timetable-calendar-sync/pkg/log"
	"timetable-calendar-sync/pkg/sdui"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting timetable calendar sync...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Target timezone and date parsing
	location, err := time.LoadLocation(cfg.Sync.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Sync.Timezone, err)
		location = time.UTC
	}
	dateParser, err := datemath.NewParser(location.String())
	if err != nil {
		logger.Errorf(ctx, "Failed to build date parser: %v", err)
		return
	}

	// 4. SDUI timetable client
	sduiClient := sdui.NewClient(cfg.SDUI.BaseURL, cfg.SDUI.UserID, cfg.SDUI.AuthToken)
	timetableRepo := sduiRepo.New(sduiClient, cfg.Sync.CacheTTL, logger)

	// 5. Google Calendar client
	if cfg.GoogleCalendar.CredentialsPath == "" {
		logger.Error(ctx, "google_calendar.credentials_path is not configured")
		return
	}
	calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		logger.Errorf(ctx, "Google Calendar not available: %v", err)
		logger.Error(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		return
	}
	logger.Info(ctx, "Google Calendar initialized")

	calendarRepo := gcalRepo.New(calendarClient, cfg.GoogleCalendar.CalendarID,
		cfg.Sync.Timezone, cfg.Sync.RequestsPerMinute, logger)

	// 6. Sync engine
	syncUC := usecase.New(logger, timetableRepo, calendarRepo, usecase.Options{
		Location:       location,
		InsertPolicy:   backoff.Exponential(cfg.Sync.InsertMaxAttempts, time.Second, 60*time.Second, 500*time.Millisecond),
		DeletePolicy:   backoff.Constant(cfg.Sync.DeleteMaxAttempts, 2*time.Second),
		ClearMaxPasses: cfg.Sync.ClearMaxPasses,
		LogCapacity:    cfg.Sync.LogCapacity,
	})

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		SyncHandler: syncDelivery.New(logger, syncUC, dateParser),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
