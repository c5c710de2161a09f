package eventlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{SessionID: "run-a", Day: 1, Revenue: 42.50, Profit: 18.30, UnitsSold: 21, Cash: 192.50, Strategy: "balanced", Market: "pleasant weather"},
		{SessionID: "run-a", Day: 2, Revenue: 38.00, Profit: 12.10, UnitsSold: 19, Cash: 210.20, ActiveCrises: 1, CrisisCost: 25.0},
		{SessionID: "run-b", Day: 1, Revenue: 51.75, Profit: 22.40, UnitsSold: 25, Cash: 201.75, CashFlowCrisis: true},
	}
}

func TestParseJSONLBasic(t *testing.T) {
	jsonl := `{"session_id": "run-a", "day": 2, "revenue": 38.0, "cash": 210.2}
{"session_id": "run-a", "day": 1, "revenue": 42.5, "cash": 192.5}
{"session_id": "run-b", "day": 1, "revenue": 51.75, "cash": 201.75}`

	log, err := ParseJSONLReader(strings.NewReader(jsonl))
	if err != nil {
		t.Fatalf("ParseJSONLReader failed: %v", err)
	}

	if log.NumRuns() != 2 {
		t.Errorf("Expected 2 runs, got %d", log.NumRuns())
	}
	if log.NumRecords() != 3 {
		t.Errorf("Expected 3 records, got %d", log.NumRecords())
	}

	run := log.Run("run-a")
	if run == nil || run.Days() != 2 {
		t.Fatalf("Expected run-a with 2 days, got %+v", run)
	}
	// Records sort by day regardless of file order.
	if run.Records[0].Day != 1 || run.Records[1].Day != 2 {
		t.Errorf("Expected days in order 1, 2, got %d, %d", run.Records[0].Day, run.Records[1].Day)
	}
}

func TestParseJSONLSkipsEmptyLines(t *testing.T) {
	jsonl := `{"session_id": "run-a", "day": 1}

{"session_id": "run-a", "day": 2}
`
	log, err := ParseJSONLReader(strings.NewReader(jsonl))
	if err != nil {
		t.Fatalf("ParseJSONLReader failed: %v", err)
	}
	if log.NumRecords() != 2 {
		t.Errorf("Expected 2 records, got %d", log.NumRecords())
	}
}

func TestParseJSONLRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		jsonl string
	}{
		{"invalid json", `{"session_id": "run-a", "day":`},
		{"missing session", `{"day": 1}`},
		{"bad day", `{"session_id": "run-a", "day": 0}`},
	}
	for _, tc := range cases {
		if _, err := ParseJSONLReader(strings.NewReader(tc.jsonl)); err == nil {
			t.Errorf("Expected %s to fail", tc.name)
		}
	}
}

func TestWriterRoundTrip(t *testing.T) {
	records := sampleRecords()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, r := range records {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	log, err := ParseJSONLBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseJSONLBytes failed: %v", err)
	}
	if log.NumRecords() != len(records) {
		t.Fatalf("Expected %d records, got %d", len(records), log.NumRecords())
	}

	got := log.Run("run-a").Records[1]
	if got.CrisisCost != 25.0 || got.ActiveCrises != 1 {
		t.Errorf("Expected crisis fields to survive the round trip, got %+v", got)
	}
	if !log.Run("run-b").Records[0].CashFlowCrisis {
		t.Error("Expected cash_flow_crisis flag to survive the round trip")
	}
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")

	records := sampleRecords()
	if err := AppendFile(path, records[:2]); err != nil {
		t.Fatalf("AppendFile failed: %v", err)
	}
	if err := AppendFile(path, records[2:]); err != nil {
		t.Fatalf("Second AppendFile failed: %v", err)
	}

	log, err := ParseJSONL(path)
	if err != nil {
		t.Fatalf("ParseJSONL failed: %v", err)
	}
	if log.NumRecords() != 3 {
		t.Errorf("Expected 3 records after two appends, got %d", log.NumRecords())
	}
	if log.NumRuns() != 2 {
		t.Errorf("Expected 2 runs, got %d", log.NumRuns())
	}
}

func TestParseJSONLMissingFile(t *testing.T) {
	if _, err := ParseJSONL(filepath.Join(os.TempDir(), "does-not-exist.jsonl")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestRunSummarize(t *testing.T) {
	log := NewLog()
	log.Add(Record{SessionID: "run-a", Day: 1, Revenue: 40, Profit: 10, Cash: 160})
	log.Add(Record{SessionID: "run-a", Day: 2, Revenue: 60, Profit: -5, Cash: 155, ActiveCrises: 2, SpoilageCost: 8})
	log.Add(Record{SessionID: "run-a", Day: 3, Revenue: 55, Profit: 20, Cash: 175})

	s := log.Run("run-a").Summarize()
	if s.Days != 3 {
		t.Errorf("Expected 3 days, got %d", s.Days)
	}
	if s.TotalRevenue != 155 {
		t.Errorf("Expected total revenue 155, got %v", s.TotalRevenue)
	}
	if s.TotalProfit != 25 {
		t.Errorf("Expected total profit 25, got %v", s.TotalProfit)
	}
	if s.BestDay.Day != 3 || s.WorstDay.Day != 2 {
		t.Errorf("Expected best day 3 and worst day 2, got %d and %d", s.BestDay.Day, s.WorstDay.Day)
	}
	if s.CrisisDays != 1 {
		t.Errorf("Expected 1 crisis day, got %d", s.CrisisDays)
	}
	if s.FinalCash != 175 {
		t.Errorf("Expected final cash 175, got %v", s.FinalCash)
	}
}
