package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/storesim-xyz/go-storesim/eventlog"
)

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("output", "", "CSV output path (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: storesim export <run.jsonl> --output runs.csv

Convert a JSONL run log to CSV.

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
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	log, err := eventlog.ParseJSONL(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := eventlog.ExportCSV(*output, log); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records across %d sessions to %s\n",
		log.NumRecords(), log.NumRuns(), *output)
	return nil
}
