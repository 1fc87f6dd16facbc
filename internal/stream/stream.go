// Package stream reads JSONL record streams and hands decoded records to
// the caller. A malformed line is a warning, never a stream failure: the
// input may legitimately contain payloads from a newer backend.
package stream

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"agentrelay/internal/wire"
)

// Entry is one decoded line: record identity plus the untrusted record.
type Entry struct {
	Line      int
	ID        string
	LocalID   string
	CreatedAt time.Time
	Record    wire.Record
}

type rawLine struct {
	ID        string         `json:"id"`
	LocalID   string         `json:"localId"`
	CreatedAt string         `json:"createdAt"`
	Role      string         `json:"role"`
	Content   map[string]any `json:"content"`
	Meta      map[string]any `json:"meta"`
}

// Iterate scans r line by line and calls fn for each decoded entry.
// Decode failures are reported through warn and skipped. fn returning an
// error stops iteration.
func Iterate(r io.Reader, warn func(line int, err error), fn func(Entry) error) error {
	if warn == nil {
		warn = func(int, error) {}
	}

	scanner := newScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		entry, err := parseLine(line, raw)
		if err != nil {
			warn(line, err)
			continue
		}

		if err := fn(entry); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan records: %w", err)
	}
	return nil
}

// IterateFile opens path (or stdin for "-") and iterates its records.
func IterateFile(path string, warn func(line int, err error), fn func(Entry) error) error {
	if path == "-" {
		return Iterate(os.Stdin, warn, fn)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open record file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	return Iterate(file, warn, fn)
}

func parseLine(line int, raw []byte) (Entry, error) {
	var rec rawLine
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Entry{}, fmt.Errorf("unmarshal record: %w", err)
	}

	var ts time.Time
	if rec.CreatedAt != "" {
		var err error
		ts, err = parseTimestamp(rec.CreatedAt)
		if err != nil {
			return Entry{}, err
		}
	}

	localID := rec.LocalID
	if localID == "" {
		// Storage dedups on id/localId, so every entry gets one.
		localID = uuid.NewString()
	}

	return Entry{
		Line:      line,
		ID:        rec.ID,
		LocalID:   localID,
		CreatedAt: ts,
		Record: wire.Record{
			Role:    wire.Role(rec.Role),
			Content: rec.Content,
			Meta:    rec.Meta,
		},
	}, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Allow large payloads such as tool outputs.
	const maxCapacity = 8 * 1024 * 1024
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxCapacity)
	return scanner
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing timestamp")
	}

	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
