package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// csvHeader fixes the column order for CSV export and import.
var csvHeader = []string{
	"session_id", "day",
	"revenue", "profit", "spoilage_cost", "units_sold", "units_spoiled",
	"cash", "accounts_payable", "cash_flow_crisis",
	"active_crises", "crisis_cost", "war_intensity",
	"competitor_strategy", "market",
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		row := []string{
			r.SessionID,
			strconv.Itoa(r.Day),
			formatFloat(r.Revenue),
			formatFloat(r.Profit),
			formatFloat(r.SpoilageCost),
			strconv.Itoa(r.UnitsSold),
			strconv.Itoa(r.UnitsSpoiled),
			formatFloat(r.Cash),
			formatFloat(r.AccountsPayable),
			strconv.FormatBool(r.CashFlowCrisis),
			strconv.Itoa(r.ActiveCrises),
			formatFloat(r.CrisisCost),
			formatFloat(r.WarIntensity),
			r.Strategy,
			r.Market,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes a log's records to a CSV file, sessions in sorted order
// and days ascending within each session.
func ExportCSV(filename string, log *Log) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	var records []Record
	for _, run := range log.Runs() {
		records = append(records, run.Records...)
	}
	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

// ParseCSV parses a run log from a CSV file.
func ParseCSV(filename string) (*Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseCSVReader(f)
}

// ParseCSVReader parses a run log from CSV. Columns are located by header
// name, so column order and extra columns do not matter.
func ParseCSVReader(r io.Reader) (*Log, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"session_id", "day"} {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("column %q not found in header: %v", required, header)
		}
	}

	log := NewLog()
	lineNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", lineNum+1, err)
		}
		lineNum++

		cell := func(name string) string {
			idx, ok := colIndex[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		rec := Record{
			SessionID: cell("session_id"),
			Strategy:  cell("competitor_strategy"),
			Market:    cell("market"),
		}
		if rec.SessionID == "" {
			return nil, fmt.Errorf("line %d: empty session_id", lineNum)
		}

		parseErr := func(name string, err error) error {
			return fmt.Errorf("line %d: column %q: %w", lineNum, name, err)
		}
		if rec.Day, err = strconv.Atoi(cell("day")); err != nil {
			return nil, parseErr("day", err)
		}
		if rec.Revenue, err = parseFloatCell(cell("revenue")); err != nil {
			return nil, parseErr("revenue", err)
		}
		if rec.Profit, err = parseFloatCell(cell("profit")); err != nil {
			return nil, parseErr("profit", err)
		}
		if rec.SpoilageCost, err = parseFloatCell(cell("spoilage_cost")); err != nil {
			return nil, parseErr("spoilage_cost", err)
		}
		if rec.UnitsSold, err = parseIntCell(cell("units_sold")); err != nil {
			return nil, parseErr("units_sold", err)
		}
		if rec.UnitsSpoiled, err = parseIntCell(cell("units_spoiled")); err != nil {
			return nil, parseErr("units_spoiled", err)
		}
		if rec.Cash, err = parseFloatCell(cell("cash")); err != nil {
			return nil, parseErr("cash", err)
		}
		if rec.AccountsPayable, err = parseFloatCell(cell("accounts_payable")); err != nil {
			return nil, parseErr("accounts_payable", err)
		}
		if rec.ActiveCrises, err = parseIntCell(cell("active_crises")); err != nil {
			return nil, parseErr("active_crises", err)
		}
		if rec.CrisisCost, err = parseFloatCell(cell("crisis_cost")); err != nil {
			return nil, parseErr("crisis_cost", err)
		}
		if rec.WarIntensity, err = parseFloatCell(cell("war_intensity")); err != nil {
			return nil, parseErr("war_intensity", err)
		}
		rec.CashFlowCrisis = strings.EqualFold(cell("cash_flow_crisis"), "true")

		log.Add(rec)
	}

	log.sortByDay()
	return log, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloatCell(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseIntCell(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
