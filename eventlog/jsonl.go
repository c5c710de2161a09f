package eventlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Writer streams records to a JSONL destination, one JSON object per line.
// Call Flush before the underlying writer is closed.
type Writer struct {
	buf *bufio.Writer
	enc *json.Encoder
}

// NewWriter wraps w for JSONL output.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	return &Writer{buf: buf, enc: json.NewEncoder(buf)}
}

// Write appends one record line.
func (w *Writer) Write(r Record) error {
	if err := w.enc.Encode(r); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}

// Flush drains buffered output.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// AppendFile appends records to a JSONL file, creating it if needed.
func AppendFile(filename string, records []Record) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	w := NewWriter(f)
	for _, r := range records {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing file: %w", err)
	}
	return f.Close()
}

// ParseJSONL parses a run log from a JSONL file.
func ParseJSONL(filename string) (*Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseJSONLReader(f)
}

// ParseJSONLReader parses a run log from a JSONL stream. Empty lines are
// skipped; records sort by day within each session.
func ParseJSONLReader(r io.Reader) (*Log, error) {
	log := NewLog()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNum, err)
		}
		if rec.SessionID == "" {
			return nil, fmt.Errorf("line %d: missing session_id", lineNum)
		}
		if rec.Day <= 0 {
			return nil, fmt.Errorf("line %d: invalid day %d", lineNum, rec.Day)
		}
		log.Add(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}

	log.sortByDay()
	return log, nil
}

// ParseJSONLBytes parses a run log from JSONL bytes.
func ParseJSONLBytes(data []byte) (*Log, error) {
	return ParseJSONLReader(bytes.NewReader(data))
}
