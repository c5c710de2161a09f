package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/storesim-xyz/go-storesim/eventlog"
)

func summary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	session := fs.String("session", "", "Limit output to one session ID")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: storesim summary <run.jsonl> [options]

Summarize the runs recorded in a JSONL event log.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("log file required")
	}

	log, err := eventlog.ParseJSONL(fs.Arg(0))
	if err != nil {
		return err
	}

	runs := log.Runs()
	if *session != "" {
		run := log.Run(*session)
		if run == nil {
			return fmt.Errorf("session %q not found", *session)
		}
		runs = []*eventlog.Run{run}
	}

	for _, run := range runs {
		s := run.Summarize()
		fmt.Printf("Session %s\n", s.SessionID)
		fmt.Printf("  Days:          %d\n", s.Days)
		fmt.Printf("  Total revenue: $%.2f\n", s.TotalRevenue)
		fmt.Printf("  Total profit:  $%.2f\n", s.TotalProfit)
		fmt.Printf("  Spoilage cost: $%.2f\n", s.SpoilageCost)
		fmt.Printf("  Final cash:    $%.2f\n", s.FinalCash)
		fmt.Printf("  Crisis days:   %d\n", s.CrisisDays)
		fmt.Printf("  Best day:      %d ($%.2f profit)\n", s.BestDay.Day, s.BestDay.Profit)
		fmt.Printf("  Worst day:     %d ($%.2f profit)\n", s.WorstDay.Day, s.WorstDay.Profit)
	}
	return nil
}
