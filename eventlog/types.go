// Package eventlog records and replays simulation runs. Each day of a run
// produces one Record; records append to JSONL files as the run progresses
// and export to CSV for analysis. Parsing reverses both formats.
package eventlog

import (
	"fmt"
	"sort"

	"github.com/storesim-xyz/go-storesim/store"
)

// Record is one day of one simulation run.
type Record struct {
	SessionID string `json:"session_id"`
	Day       int    `json:"day"`

	Revenue      float64 `json:"revenue"`
	Profit       float64 `json:"profit"`
	SpoilageCost float64 `json:"spoilage_cost"`
	UnitsSold    int     `json:"units_sold"`
	UnitsSpoiled int     `json:"units_spoiled"`

	Cash            float64 `json:"cash"`
	AccountsPayable float64 `json:"accounts_payable"`
	CashFlowCrisis  bool    `json:"cash_flow_crisis"`

	ActiveCrises int     `json:"active_crises"`
	CrisisCost   float64 `json:"crisis_cost"`
	WarIntensity float64 `json:"war_intensity"`

	Strategy string `json:"competitor_strategy"`
	Market   string `json:"market"`
}

// FromSummary converts a settlement summary into a log record.
func FromSummary(sessionID string, s store.DaySummary) Record {
	return Record{
		SessionID:       sessionID,
		Day:             s.Day,
		Revenue:         s.Revenue,
		Profit:          s.Profit,
		SpoilageCost:    s.SpoilageCost,
		UnitsSold:       s.UnitsSold,
		UnitsSpoiled:    s.UnitsSpoiled,
		Cash:            s.Cash,
		AccountsPayable: s.AccountsPayable,
		CashFlowCrisis:  s.CashFlowCrisis,
		ActiveCrises:    s.ActiveCrises,
		CrisisCost:      s.CrisisCost,
		WarIntensity:    s.WarIntensity,
		Strategy:        string(s.CompetitorStrategy),
		Market:          s.Market.Description,
	}
}

// Run is the day-ordered record sequence of a single session.
type Run struct {
	SessionID string
	Records   []Record
}

// Log groups records by session.
type Log struct {
	runs map[string]*Run
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{runs: make(map[string]*Run)}
}

// Add appends a record to its session's run.
func (l *Log) Add(r Record) {
	run, ok := l.runs[r.SessionID]
	if !ok {
		run = &Run{SessionID: r.SessionID}
		l.runs[r.SessionID] = run
	}
	run.Records = append(run.Records, r)
}

// Runs returns all runs sorted by session ID.
func (l *Log) Runs() []*Run {
	out := make([]*Run, 0, len(l.runs))
	for _, run := range l.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SessionID < out[j].SessionID
	})
	return out
}

// Run returns one session's run, or nil.
func (l *Log) Run(sessionID string) *Run {
	return l.runs[sessionID]
}

// NumRuns returns the number of sessions in the log.
func (l *Log) NumRuns() int {
	return len(l.runs)
}

// NumRecords returns the total day count across sessions.
func (l *Log) NumRecords() int {
	total := 0
	for _, run := range l.runs {
		total += len(run.Records)
	}
	return total
}

// sortByDay orders every run's records chronologically.
func (l *Log) sortByDay() {
	for _, run := range l.runs {
		sort.Slice(run.Records, func(i, j int) bool {
			return run.Records[i].Day < run.Records[j].Day
		})
	}
}

// Days returns the run's length in days.
func (run *Run) Days() int {
	return len(run.Records)
}

// Final returns the last record, or the zero Record for an empty run.
func (run *Run) Final() Record {
	if len(run.Records) == 0 {
		return Record{}
	}
	return run.Records[len(run.Records)-1]
}

func (run *Run) String() string {
	f := run.Final()
	return fmt.Sprintf("Session %s: %d days, $%.2f cash", run.SessionID, run.Days(), f.Cash)
}

// RunSummary is the aggregate view of one run.
type RunSummary struct {
	SessionID    string
	Days         int
	TotalRevenue float64
	TotalProfit  float64
	FinalCash    float64
	BestDay      Record
	WorstDay     Record
	CrisisDays   int
	SpoilageCost float64
}

// Summarize aggregates a run. Best and worst days rank by profit.
func (run *Run) Summarize() RunSummary {
	s := RunSummary{SessionID: run.SessionID, Days: run.Days()}
	if len(run.Records) == 0 {
		return s
	}

	s.BestDay = run.Records[0]
	s.WorstDay = run.Records[0]
	for _, r := range run.Records {
		s.TotalRevenue += r.Revenue
		s.TotalProfit += r.Profit
		s.SpoilageCost += r.SpoilageCost
		if r.ActiveCrises > 0 {
			s.CrisisDays++
		}
		if r.Profit > s.BestDay.Profit {
			s.BestDay = r
		}
		if r.Profit < s.WorstDay.Profit {
			s.WorstDay = r
		}
	}
	s.FinalCash = run.Final().Cash
	return s
}
