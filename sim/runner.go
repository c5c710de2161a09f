// Package sim drives full simulation runs: it loads configuration from the
// environment, feeds daily snapshots to a Decider, applies the resulting
// prices and orders, settles each day, and streams the outcome to
// structured logs, JSONL event logs, and the SQLite history store.
package sim

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storesim-xyz/go-storesim/eventlog"
	"github.com/storesim-xyz/go-storesim/history"
	"github.com/storesim-xyz/go-storesim/store"
)

// RunResult is the final standing of a completed run.
type RunResult struct {
	SessionID    string
	DaysPlayed   int
	FinalCash    float64
	TotalRevenue float64
	TotalProfit  float64
	SpoilageCost float64
	Bankrupt     bool
}

// Runner executes one session end to end.
type Runner struct {
	cfg       Config
	eng       *store.Engine
	dec       Decider
	log       zerolog.Logger
	sessionID string

	hist    *history.Store
	logFile *os.File
	out     *eventlog.Writer
}

// NewRunner builds a runner from config. A nil decider falls back to
// HoldAndRestock. The JSONL log and SQLite history are opened only when
// their paths are configured; Close releases both.
func NewRunner(cfg Config, dec Decider, logger zerolog.Logger) (*Runner, error) {
	if dec == nil {
		dec = HoldAndRestock{Quantity: cfg.RestockQuantity}
	}

	r := &Runner{
		cfg: cfg,
		eng: store.New(store.Config{
			Seed:          cfg.Seed,
			StartingCash:  cfg.StartingCash,
			StartingStock: cfg.StartingStock,
		}),
		dec:       dec,
		log:       logger,
		sessionID: uuid.NewString(),
	}

	if cfg.HistoryPath != "" {
		hist, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		r.hist = hist
	}
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			if r.hist != nil {
				r.hist.Close()
			}
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		r.logFile = f
		r.out = eventlog.NewWriter(f)
	}
	return r, nil
}

// SessionID returns the run's identifier.
func (r *Runner) SessionID() string { return r.sessionID }

// Engine exposes the underlying store engine, for tests and custom loops.
func (r *Runner) Engine() *store.Engine { return r.eng }

// Close flushes and releases the run's outputs.
func (r *Runner) Close() error {
	var firstErr error
	if r.out != nil {
		if err := r.out.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.logFile != nil {
		if err := r.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.hist != nil {
		if err := r.hist.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run plays the configured number of days, stopping early on bankruptcy or
// context cancellation.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	if r.hist != nil {
		if err := r.hist.CreateSession(r.sessionID, r.cfg.Seed); err != nil {
			return RunResult{}, fmt.Errorf("creating session: %w", err)
		}
	}
	r.log.Info().
		Str("session", r.sessionID).
		Int64("seed", r.cfg.Seed).
		Int("days", r.cfg.Days).
		Float64("cash", r.eng.Cash()).
		Msg("run started")

	res := RunResult{SessionID: r.sessionID}
	for i := 0; i < r.cfg.Days; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		summary, err := r.playDay()
		if err != nil {
			return res, err
		}
		res.DaysPlayed++
		res.FinalCash = summary.Cash

		if summary.Cash < 0 {
			res.Bankrupt = true
			r.log.Warn().
				Int("day", summary.Day).
				Float64("cash", summary.Cash).
				Msg("bankrupt")
			break
		}
	}

	res.TotalRevenue = r.eng.TotalRevenue()
	res.TotalProfit = r.eng.TotalProfit()
	res.SpoilageCost = r.eng.TotalSpoilageCost()

	if r.out != nil {
		if err := r.out.Flush(); err != nil {
			return res, fmt.Errorf("flushing event log: %w", err)
		}
	}
	if r.hist != nil {
		err := r.hist.EndSession(r.sessionID, res.DaysPlayed, res.FinalCash,
			res.TotalRevenue, res.TotalProfit, res.Bankrupt)
		if err != nil {
			return res, fmt.Errorf("ending session: %w", err)
		}
	}

	r.log.Info().
		Str("session", r.sessionID).
		Int("days_played", res.DaysPlayed).
		Float64("final_cash", res.FinalCash).
		Float64("total_revenue", res.TotalRevenue).
		Float64("total_profit", res.TotalProfit).
		Bool("bankrupt", res.Bankrupt).
		Msg("run finished")
	return res, nil
}

// playDay runs one day: decide, apply, sell, settle, record.
func (r *Runner) playDay() (store.DaySummary, error) {
	snap := r.eng.Snapshot()
	decision := r.dec.Decide(snap)

	if len(decision.Prices) > 0 {
		for name, err := range r.eng.SetPrices(decision.Prices) {
			r.log.Warn().Int("day", snap.Day).Str("product", name).Err(err).Msg("price rejected")
		}
	}
	if len(decision.Orders) > 0 {
		for name, result := range r.eng.ProcessOrders(decision.Orders) {
			if result.Err != nil {
				r.log.Warn().Int("day", snap.Day).Str("product", name).Err(result.Err).Msg("order rejected")
				continue
			}
			r.log.Debug().
				Int("day", snap.Day).
				Str("product", name).
				Str("supplier", result.Supplier).
				Int("quantity", result.Quantity).
				Float64("total_cost", result.TotalCost).
				Int("delivery_day", result.DeliveryDay).
				Msg("order placed")
		}
	}

	r.eng.SimulateCustomers()
	summary := r.eng.EndDay()

	for _, c := range summary.NewCrises {
		r.log.Warn().
			Int("day", summary.Day).
			Str("type", string(c.Type)).
			Float64("severity", c.Severity).
			Int("duration", c.DurationDays).
			Msg("crisis started")
	}
	r.log.Info().
		Int("day", summary.Day).
		Float64("revenue", summary.Revenue).
		Float64("profit", summary.Profit).
		Float64("cash", summary.Cash).
		Int("units_sold", summary.UnitsSold).
		Int("active_crises", summary.ActiveCrises).
		Float64("war_intensity", summary.WarIntensity).
		Msg("day settled")

	rec := eventlog.FromSummary(r.sessionID, summary)
	if r.out != nil {
		if err := r.out.Write(rec); err != nil {
			return summary, fmt.Errorf("writing event log: %w", err)
		}
	}
	if r.hist != nil {
		if err := r.hist.LogDay(rec); err != nil {
			return summary, fmt.Errorf("logging day: %w", err)
		}
	}
	return summary, nil
}
