package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
)

const (
	recordFields  = 5
	maxRecordLine = 64 << 20
)

// ErrMalformedRecord marks a line without the five comma-separated fields
var ErrMalformedRecord = errors.New("malformed record")

// ParseRecord parses one "id,f2,f3,f4,<html>" line. Only the first four
// commas split fields, so the markup may contain commas.
func ParseRecord(line string) (model.Document, error) {
	parts := strings.SplitN(strings.TrimSpace(line), ",", recordFields)
	if len(parts) != recordFields {
		return model.Document{}, fmt.Errorf("%w: %d fields", ErrMalformedRecord, len(parts))
	}

	text, err := ReduceMarkup(parts[recordFields-1])
	if err != nil {
		return model.Document{}, err
	}

	return model.Document{
		ID:   strings.TrimSpace(parts[0]),
		Text: text,
	}, nil
}

// ReadStats summarizes one record stream
type ReadStats struct {
	Lines   int
	Records int
	Skipped int
}

// ReadRecords reads every record line from r. Blank and malformed lines are
// skipped and counted; only I/O errors are returned.
func ReadRecords(r io.Reader, source string) ([]model.Document, ReadStats, error) {
	var (
		docs  []model.Document
		stats ReadStats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		doc, err := ParseRecord(line)
		if err != nil {
			stats.Skipped++
			continue
		}
		doc.Source = fmt.Sprintf("%s:%d", source, stats.Lines)
		docs = append(docs, doc)
		stats.Records++
	}
	if err := scanner.Err(); err != nil {
		return docs, stats, fmt.Errorf("read records: %w", err)
	}

	return docs, stats, nil
}

// ReadFile reads a record file from disk
func ReadFile(path string) ([]model.Document, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("open records: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadRecords(f, path)
}
