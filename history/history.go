// Package history persists simulation runs to SQLite for later analysis:
// one row per session and one row per settled day.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/storesim-xyz/go-storesim/eventlog"
)

// Store handles SQLite persistence of sessions and day records.
type Store struct {
	db *sql.DB
}

// Session is one simulation run's metadata.
type Session struct {
	ID           string     `json:"id"`
	Seed         int64      `json:"seed"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	DaysPlayed   int        `json:"days_played"`
	FinalCash    float64    `json:"final_cash"`
	TotalRevenue float64    `json:"total_revenue"`
	TotalProfit  float64    `json:"total_profit"`
	Bankrupt     bool       `json:"bankrupt"`
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ended_at DATETIME,
		days_played INTEGER DEFAULT 0,
		final_cash REAL DEFAULT 0,
		total_revenue REAL DEFAULT 0,
		total_profit REAL DEFAULT 0,
		bankrupt INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS days (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		revenue REAL NOT NULL,
		profit REAL NOT NULL,
		spoilage_cost REAL NOT NULL,
		units_sold INTEGER NOT NULL,
		units_spoiled INTEGER NOT NULL,
		cash REAL NOT NULL,
		accounts_payable REAL NOT NULL,
		cash_flow_crisis INTEGER DEFAULT 0,
		active_crises INTEGER DEFAULT 0,
		crisis_cost REAL DEFAULT 0,
		war_intensity REAL DEFAULT 0,
		competitor_strategy TEXT,
		market TEXT,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_days_session ON days(session_id);
	CREATE INDEX IF NOT EXISTS idx_days_session_day ON days(session_id, day);
	CREATE INDEX IF NOT EXISTS idx_sessions_seed ON sessions(seed);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// CreateSession records the start of a run.
func (s *Store) CreateSession(id string, seed int64) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, seed, started_at) VALUES (?, ?, ?)`,
		id, seed, time.Now().UTC(),
	)
	return err
}

// EndSession records a run's final standing.
func (s *Store) EndSession(id string, days int, finalCash, revenue, profit float64, bankrupt bool) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET ended_at = ?, days_played = ?, final_cash = ?,
		 total_revenue = ?, total_profit = ?, bankrupt = ?
		 WHERE id = ?`,
		time.Now().UTC(), days, finalCash, revenue, profit, bankrupt, id,
	)
	return err
}

// LogDay inserts one settled day.
func (s *Store) LogDay(r eventlog.Record) error {
	_, err := s.db.Exec(
		`INSERT INTO days (session_id, day, revenue, profit, spoilage_cost,
		 units_sold, units_spoiled, cash, accounts_payable, cash_flow_crisis,
		 active_crises, crisis_cost, war_intensity, competitor_strategy, market)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Day, r.Revenue, r.Profit, r.SpoilageCost,
		r.UnitsSold, r.UnitsSpoiled, r.Cash, r.AccountsPayable, r.CashFlowCrisis,
		r.ActiveCrises, r.CrisisCost, r.WarIntensity, r.Strategy, r.Market,
	)
	return err
}

// Session retrieves one session by ID.
func (s *Store) Session(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, started_at, ended_at, days_played, final_cash,
		 total_revenue, total_profit, bankrupt
		 FROM sessions WHERE id = ?`, id,
	)
	return scanSession(row.Scan)
}

// RecentSessions returns the most recently started sessions.
func (s *Store) RecentSessions(limit int) ([]*Session, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, started_at, ended_at, days_played, final_cash,
		 total_revenue, total_profit, bankrupt
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SessionsBySeed returns sessions that ran a given seed.
func (s *Store) SessionsBySeed(seed int64) ([]*Session, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, started_at, ended_at, days_played, final_cash,
		 total_revenue, total_profit, bankrupt
		 FROM sessions WHERE seed = ? ORDER BY started_at DESC`, seed,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func scanSession(scan func(...any) error) (*Session, error) {
	var sess Session
	var endedAt sql.NullTime
	err := scan(&sess.ID, &sess.Seed, &sess.StartedAt, &endedAt,
		&sess.DaysPlayed, &sess.FinalCash, &sess.TotalRevenue,
		&sess.TotalProfit, &sess.Bankrupt)
	if err != nil {
		return nil, err
	}
	if endedAt.Valid {
		sess.EndedAt = &endedAt.Time
	}
	return &sess, nil
}

// Days retrieves a session's day records in chronological order.
func (s *Store) Days(sessionID string) ([]eventlog.Record, error) {
	rows, err := s.db.Query(
		`SELECT session_id, day, revenue, profit, spoilage_cost,
		 units_sold, units_spoiled, cash, accounts_payable, cash_flow_crisis,
		 active_crises, crisis_cost, war_intensity, competitor_strategy, market
		 FROM days WHERE session_id = ? ORDER BY day`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []eventlog.Record
	for rows.Next() {
		var r eventlog.Record
		var strategy, mkt sql.NullString
		err := rows.Scan(&r.SessionID, &r.Day, &r.Revenue, &r.Profit, &r.SpoilageCost,
			&r.UnitsSold, &r.UnitsSpoiled, &r.Cash, &r.AccountsPayable, &r.CashFlowCrisis,
			&r.ActiveCrises, &r.CrisisCost, &r.WarIntensity, &strategy, &mkt)
		if err != nil {
			return nil, err
		}
		if strategy.Valid {
			r.Strategy = strategy.String
		}
		if mkt.Valid {
			r.Market = mkt.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SeedStats aggregates outcomes across every session of one seed.
type SeedStats struct {
	Seed         int64   `json:"seed"`
	Sessions     int     `json:"sessions"`
	AvgDays      float64 `json:"avg_days"`
	AvgCash      float64 `json:"avg_cash"`
	Bankruptcies int     `json:"bankruptcies"`
}

// StatsBySeed aggregates finished sessions grouped by seed.
func (s *Store) StatsBySeed() ([]SeedStats, error) {
	rows, err := s.db.Query(
		`SELECT seed, COUNT(*), AVG(days_played), AVG(final_cash), SUM(bankrupt)
		 FROM sessions WHERE ended_at IS NOT NULL
		 GROUP BY seed ORDER BY seed`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []SeedStats
	for rows.Next() {
		var st SeedStats
		if err := rows.Scan(&st.Seed, &st.Sessions, &st.AvgDays, &st.AvgCash, &st.Bankruptcies); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// ExportSessionJSON exports a session and its days as indented JSON.
func (s *Store) ExportSessionJSON(sessionID string) ([]byte, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}
	days, err := s.Days(sessionID)
	if err != nil {
		return nil, err
	}

	export := map[string]any{
		"session": sess,
		"days":    days,
	}
	return json.MarshalIndent(export, "", "  ")
}
