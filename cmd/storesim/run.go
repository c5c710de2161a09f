package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/storesim-xyz/go-storesim/sim"
)

func run(args []string) error {
	cfg, err := sim.LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	seed := fs.Int64("seed", cfg.Seed, "Random seed")
	days := fs.Int("days", cfg.Days, "Days to simulate")
	cash := fs.Float64("cash", cfg.StartingCash, "Starting cash")
	stock := fs.Int("stock", cfg.StartingStock, "Starting units per product")
	restock := fs.Int("restock", cfg.RestockQuantity, "Units the fallback strategy reorders per stockout")
	logPath := fs.String("log", cfg.LogPath, "JSONL event log path (optional)")
	histPath := fs.String("history", cfg.HistoryPath, "SQLite history path (optional)")
	verbose := fs.Bool("verbose", cfg.Verbose, "Per-day debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: storesim run [options]

Play one simulation session. Every option also binds to a STORESIM_*
environment variable; flags win.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Seed = *seed
	cfg.Days = *days
	cfg.StartingCash = *cash
	cfg.StartingStock = *stock
	cfg.RestockQuantity = *restock
	cfg.LogPath = *logPath
	cfg.HistoryPath = *histPath
	cfg.Verbose = *verbose

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	runner, err := sim.NewRunner(cfg, nil, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Session:  %s\n", res.SessionID)
	fmt.Printf("Days:     %d\n", res.DaysPlayed)
	fmt.Printf("Cash:     $%.2f\n", res.FinalCash)
	fmt.Printf("Revenue:  $%.2f\n", res.TotalRevenue)
	fmt.Printf("Profit:   $%.2f\n", res.TotalProfit)
	fmt.Printf("Spoilage: $%.2f\n", res.SpoilageCost)
	if res.Bankrupt {
		fmt.Println("Outcome:  bankrupt")
	}
	return nil
}
