package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/storesim-xyz/go-storesim/history"
)

func historyCmd(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 10, "Sessions to list")
	session := fs.String("session", "", "Export one session as JSON instead of listing")
	seeds := fs.Bool("seeds", false, "Show aggregate stats per seed instead of listing")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: storesim history <store.db> [options]

Inspect the SQLite history database.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("database path required")
	}

	store, err := history.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer store.Close()

	if *session != "" {
		data, err := store.ExportSessionJSON(*session)
		if err != nil {
			return fmt.Errorf("export session: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if *seeds {
		stats, err := store.StatsBySeed()
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %-10s %-10s %-12s %s\n", "SEED", "SESSIONS", "AVG DAYS", "AVG CASH", "BANKRUPTCIES")
		for _, st := range stats {
			fmt.Printf("%-12d %-10d %-10.1f $%-11.2f %d\n",
				st.Seed, st.Sessions, st.AvgDays, st.AvgCash, st.Bankruptcies)
		}
		return nil
	}

	sessions, err := store.RecentSessions(*limit)
	if err != nil {
		return err
	}
	fmt.Printf("%-38s %-8s %-6s %-12s %s\n", "SESSION", "SEED", "DAYS", "FINAL CASH", "STARTED")
	for _, s := range sessions {
		fmt.Printf("%-38s %-8d %-6d $%-11.2f %s\n",
			s.ID, s.Seed, s.DaysPlayed, s.FinalCash, s.StartedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
