package sim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storesim-xyz/go-storesim/eventlog"
	"github.com/storesim-xyz/go-storesim/history"
	"github.com/storesim-xyz/go-storesim/store"
	"github.com/storesim-xyz/go-storesim/supply"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"STORESIM_SEED", "STORESIM_DAYS", "STORESIM_STARTING_CASH",
		"STORESIM_STARTING_STOCK", "STORESIM_RESTOCK_QTY",
		"STORESIM_LOG_PATH", "STORESIM_HISTORY_PATH", "STORESIM_VERBOSE",
	} {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Expected %+v, got %+v", DefaultConfig(), cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORESIM_SEED", "99")
	t.Setenv("STORESIM_DAYS", "7")
	t.Setenv("STORESIM_STARTING_CASH", "300.5")
	t.Setenv("STORESIM_VERBOSE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Seed != 99 || cfg.Days != 7 || cfg.StartingCash != 300.5 || !cfg.Verbose {
		t.Errorf("Expected env overrides applied, got %+v", cfg)
	}
}

func TestHoldAndRestockOrdersStockouts(t *testing.T) {
	snap := store.Snapshot{
		Stockouts: []string{"Chips", "Gum", "Water"},
		Pending:   []supply.PendingDelivery{{Product: "Gum", Quantity: 10}},
	}

	d := HoldAndRestock{Quantity: 5}.Decide(snap)
	if d.Prices != nil {
		t.Error("Expected hold strategy to leave prices alone")
	}
	if len(d.Orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(d.Orders))
	}
	if d.Orders["Chips"] != 5 || d.Orders["Water"] != 5 {
		t.Errorf("Expected 5 units of Chips and Water, got %v", d.Orders)
	}
	if _, ok := d.Orders["Gum"]; ok {
		t.Error("Expected no reorder while a Gum delivery is in transit")
	}
}

func TestRunPlaysConfiguredDays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Days = 10
	cfg.StartingCash = 1000 // enough to rule out early bankruptcy

	r, err := NewRunner(cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	defer r.Close()

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.DaysPlayed != 10 {
		t.Errorf("Expected 10 days played, got %d", res.DaysPlayed)
	}
	if res.Bankrupt {
		t.Error("Expected no bankruptcy with $1000 starting cash over 10 days")
	}
	if res.SessionID == "" {
		t.Error("Expected a session ID")
	}
	if res.TotalRevenue <= 0 {
		t.Errorf("Expected positive revenue over 10 days, got %v", res.TotalRevenue)
	}
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	run := func() RunResult {
		cfg := DefaultConfig()
		cfg.Seed = 12
		cfg.Days = 20
		cfg.StartingCash = 1000
		r, err := NewRunner(cfg, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewRunner failed: %v", err)
		}
		defer r.Close()
		res, err := r.Run(context.Background())
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return res
	}

	a, b := run(), run()
	if a.TotalRevenue != b.TotalRevenue || a.FinalCash != b.FinalCash || a.DaysPlayed != b.DaysPlayed {
		t.Errorf("Expected identical outcomes for one seed, got %+v and %+v", a, b)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Days = 1000

	r, err := NewRunner(cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx); err == nil {
		t.Error("Expected a cancelled context to stop the run")
	}
}

func TestRunWritesEventLogAndHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Days = 5
	cfg.StartingCash = 1000
	cfg.LogPath = filepath.Join(dir, "run.jsonl")
	cfg.HistoryPath = filepath.Join(dir, "history.db")

	r, err := NewRunner(cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	log, err := eventlog.ParseJSONL(cfg.LogPath)
	if err != nil {
		t.Fatalf("ParseJSONL failed: %v", err)
	}
	run := log.Run(res.SessionID)
	if run == nil || run.Days() != 5 {
		t.Fatalf("Expected 5 JSONL records for the session, got %+v", run)
	}

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		t.Fatalf("Opening history failed: %v", err)
	}
	defer hist.Close()

	sess, err := hist.Session(res.SessionID)
	if err != nil {
		t.Fatalf("Session lookup failed: %v", err)
	}
	if sess.EndedAt == nil || sess.DaysPlayed != 5 {
		t.Errorf("Expected an ended 5-day session, got %+v", sess)
	}
	days, err := hist.Days(res.SessionID)
	if err != nil {
		t.Fatalf("Days failed: %v", err)
	}
	if len(days) != 5 {
		t.Errorf("Expected 5 day rows, got %d", len(days))
	}
}

func TestCustomDecider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Days = 3
	cfg.StartingCash = 1000

	var sawSnapshots int
	dec := DeciderFunc(func(snap store.Snapshot) Decision {
		sawSnapshots++
		return Decision{Prices: map[string]float64{"Coke": 2.50}}
	})

	r, err := NewRunner(cfg, dec, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	defer r.Close()

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sawSnapshots != 3 {
		t.Errorf("Expected the decider called once per day, got %d", sawSnapshots)
	}
	if got := r.Engine().Prices()["Coke"]; got != 2.50 {
		t.Errorf("Expected Coke repriced to 2.50, got %v", got)
	}
}
