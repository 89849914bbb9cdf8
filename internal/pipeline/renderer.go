package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/verdict/internal/model"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

const (
	recordsSheet = "records"
	personsSheet = "persons"
	listSep      = "; "
)

var recordHeaders = []string{
	"ID", "Case Number", "Executive Number", "Archive Number",
	"Branch", "Judges", "Persons", "Dates", "Amounts",
	"Law References", "Places", "Addresses", "Redacted", "Ruling Text",
}

// Renderer writes case records in one output format
type Renderer struct {
	format string
}

// NewRenderer validates the format and creates a renderer
func NewRenderer(format string) (*Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		format = FormatJSON
	case "yml":
		format = FormatYAML
	case FormatJSON, FormatYAML, FormatXLSX:
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: json, yaml, xlsx)", format)
	}
	return &Renderer{format: format}, nil
}

// Format returns the output format
func (r *Renderer) Format() string {
	return r.format
}

// RenderRecord writes a single record. XLSX output is a one-row workbook.
func (r *Renderer) RenderRecord(w io.Writer, record *model.CaseRecord) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, record)
	case FormatYAML:
		return writeYAML(w, record)
	default:
		return writeXLSX(w, []*model.CaseRecord{record})
	}
}

// RenderRecords writes a batch of records as one array, YAML sequence or workbook
func (r *Renderer) RenderRecords(w io.Writer, records []*model.CaseRecord) error {
	if records == nil {
		records = []*model.CaseRecord{}
	}
	switch r.format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	default:
		return writeXLSX(w, records)
	}
}

// Persian text is written as is, not as \u escapes or HTML-safe entities
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

func writeXLSX(w io.Writer, records []*model.CaseRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(personsSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	writeRow := func(sheet string, row int, values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	headers := make([]any, len(recordHeaders))
	for i, h := range recordHeaders {
		headers[i] = h
	}
	if err := writeRow(recordsSheet, 1, headers); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	if err := writeRow(personsSheet, 1, []any{"ID", "Name", "Role"}); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}

	personRow := 2
	for i, rec := range records {
		persons := make([]string, 0, len(rec.Persons))
		for _, p := range rec.Persons {
			persons = append(persons, fmt.Sprintf("%s (%s)", p.Name, p.Role))
			if err := writeRow(personsSheet, personRow, []any{rec.ID, p.Name, string(p.Role)}); err != nil {
				return fmt.Errorf("xlsx person row: %w", err)
			}
			personRow++
		}

		values := []any{
			rec.ID,
			rec.CaseInfo.CaseNumber,
			rec.CaseInfo.ExecutiveNumber,
			rec.CaseInfo.ArchiveNumber,
			rec.CourtInfo.Branch,
			strings.Join(rec.CourtInfo.Judges, listSep),
			strings.Join(persons, listSep),
			strings.Join(rec.Dates, listSep),
			strings.Join(rec.Amounts, listSep),
			strings.Join(rec.LawReferences, listSep),
			strings.Join(rec.Places, listSep),
			strings.Join(rec.Addresses, listSep),
			strings.Join(rec.Redacted, listSep),
			rec.RulingText,
		}
		if err := writeRow(recordsSheet, i+2, values); err != nil {
			return fmt.Errorf("xlsx record row: %w", err)
		}
	}

	_ = f.SetColWidth(recordsSheet, "A", "E", 18)
	_ = f.SetColWidth(recordsSheet, "F", "M", 32)
	_ = f.SetColWidth(recordsSheet, "N", "N", 80)
	_ = f.SetColWidth(personsSheet, "A", "C", 20)

	if idx, err := f.GetSheetIndex(recordsSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
