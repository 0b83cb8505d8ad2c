// synctool runs one sync or clear pass from the command line and streams the
// engine log feed until the run finishes.
//
// Usage:
//
//	go run cmd/synctool/main.go -mode sync -from 2025-09-01 -to 2025-09-05
//	go run cmd/synctool/main.go -mode clear -from 2025-09-01 -to 2025-09-05
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"timetable-calendar-sync/config"
	"timetable-calendar-sync/internal/model"
	syncDomain "timetable-calendar-sync/internal/sync"
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
	mode := flag.String("mode", "sync", "sync or clear")
	from := flag.String("from", "today", "range start, YYYY-MM-DD or relative (\"today\", \"next monday\")")
	to := flag.String("to", "in 1 week", "range end, YYYY-MM-DD or relative (\"in 2 weeks\")")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	dates, err := datemath.NewParser(cfg.Sync.Timezone)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid timezone in config:", err)
		os.Exit(1)
	}
	now := time.Now()
	start, err := dates.Parse(*from, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -from date:", err)
		os.Exit(2)
	}
	end, err := dates.Parse(*to, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -to date:", err)
		os.Exit(2)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "warn", // keep the terminal for the run feed
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	location, err := time.LoadLocation(cfg.Sync.Timezone)
	if err != nil {
		location = time.UTC
	}

	sduiClient := sdui.NewClient(cfg.SDUI.BaseURL, cfg.SDUI.UserID, cfg.SDUI.AuthToken)
	timetableRepo := sduiRepo.New(sduiClient, cfg.Sync.CacheTTL, logger)

	calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "google calendar unavailable:", err)
		os.Exit(1)
	}
	calendarRepo := gcalRepo.New(calendarClient, cfg.GoogleCalendar.CalendarID,
		cfg.Sync.Timezone, cfg.Sync.RequestsPerMinute, logger)

	uc := usecase.New(logger, timetableRepo, calendarRepo, usecase.Options{
		Location:       location,
		InsertPolicy:   backoff.Exponential(cfg.Sync.InsertMaxAttempts, time.Second, 60*time.Second, 500*time.Millisecond),
		DeletePolicy:   backoff.Constant(cfg.Sync.DeleteMaxAttempts, 2*time.Second),
		ClearMaxPasses: cfg.Sync.ClearMaxPasses,
		LogCapacity:    cfg.Sync.LogCapacity,
	})

	input := syncDomain.StartInput{Range: model.DateRange{Start: start, End: end}}
	switch *mode {
	case "sync":
		_, err = uc.StartSync(ctx, input)
	case "clear":
		_, err = uc.StartClear(ctx, input)
	default:
		fmt.Fprintln(os.Stderr, "unknown -mode:", *mode)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "start failed:", err)
		os.Exit(1)
	}

	streamUntilIdle(ctx, uc)
}

// streamUntilIdle polls the status feed and prints log lines as they appear.
func streamUntilIdle(ctx context.Context, uc syncDomain.UseCase) {
	printed := 0
	for {
		st := uc.Status(ctx)

		if fresh := st.TotalLogged - printed; fresh > 0 {
			lines := st.RecentLogs
			if fresh < len(lines) {
				lines = lines[len(lines)-fresh:]
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			printed = st.TotalLogged
		}

		if !st.Running {
			return
		}
		time.Sleep(500 * time.Millisecond)
	}
}
