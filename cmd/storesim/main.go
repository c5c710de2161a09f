package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		if err := run(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "summary":
		if err := summary(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := historyCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := export(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("storesim version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`storesim - convenience store economy simulator

Usage:
  storesim <command> [options]

Commands:
  run        Play a simulation session
  summary    Summarize a JSONL run log
  history    List recent sessions from the history database
  export     Export a JSONL run log to CSV
  help       Show this help message
  version    Show version information

Examples:
  # Play 30 days with a fixed seed, logging each day
  storesim run --seed 7 --days 30 --log run.jsonl

  # Persist the session to SQLite as well
  storesim run --history store.db

  # Summarize a finished run
  storesim summary run.jsonl

  # Inspect past sessions
  storesim history store.db --limit 10

For command-specific help, run:
  storesim <command> --help`)
}
