package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/sadopc/komisi/internal/clock"
	"github.com/sadopc/komisi/internal/config"
	"github.com/sadopc/komisi/internal/ledger"
	"github.com/sadopc/komisi/internal/log"
	"github.com/sadopc/komisi/internal/report"
	"github.com/sadopc/komisi/internal/store"
	"github.com/sadopc/komisi/internal/tui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := log.OpenFile(cfg.LogFile, log.ParseLevel(cfg.LogLevel), "main")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetDefault(logger)

	s, err := store.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	mode := ledger.Mode(s.SettingOr(store.SettingCommissionMode, cfg.CommissionMode))
	if mode != ledger.ModeCatalog && mode != ledger.ModePercentage {
		logger.Warn("ignoring stored commission mode", "mode", mode)
		mode = ledger.Mode(cfg.CommissionMode)
	}

	clk := clock.New(cfg.UTCOffset)
	l := ledger.New(s, clk,
		ledger.WithMode(mode),
		ledger.WithRate(decimal.NewFromFloat(cfg.CommissionRate)),
		ledger.WithLogger(logger.WithComponent("ledger")),
	)

	var notice string
	if err := l.Load(); err != nil {
		notice = "Could not load saved entries"
	}

	logger.Info("starting", "db", cfg.DBPath, "mode", mode, "entries", l.Len(), "today", clk.Today())

	app := tui.NewApp(l, s, tui.Options{
		Report: report.Options{
			BusinessName: cfg.BusinessName,
			Instagram:    cfg.Instagram,
		},
		ExportDir: cfg.ExportDir,
		Log:       logger.WithComponent("tui"),
		Notice:    notice,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		clock.WatchMidnight(ctx, clk, func(today string) {
			p.Send(tui.DayChanged{Today: today})
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("exit", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("stopped", "entries", l.Len())
}
