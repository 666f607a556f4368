package filesystem

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"greek-vocab-trainer/internal/domain/vocabulary"
)

// Format is a vocabulary file format
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// csvHeader is the header row written to and expected in CSV files
var csvHeader = []string{"term", "meaning", "category"}

// legacyColumns maps the column names of older vocabulary files
var legacyColumns = map[string]string{
	"greek":   "term",
	"english": "meaning",
	"type":    "category",
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".csv":
		return FormatCSV, true
	default:
		return "", false
	}
}

// entryRecord represents a single vocabulary entry in JSON. Pointer fields
// tell a missing key apart from an empty value.
type entryRecord struct {
	Term     *string `json:"term"`
	Meaning  *string `json:"meaning"`
	Category *string `json:"category"`

	Greek   *string `json:"greek"`
	English *string `json:"english"`
	Type    *string `json:"type"`
}

func (r entryRecord) fields() (term, meaning, category *string) {
	return coalesce(r.Term, r.Greek), coalesce(r.Meaning, r.English), coalesce(r.Category, r.Type)
}

func coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// Encode writes entries in the given format
func Encode(w io.Writer, format Format, entries []vocabulary.Entry) error {
	if entries == nil {
		entries = []vocabulary.Entry{}
	}

	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, e := range entries {
			if err := cw.Write([]string{e.Term, e.Meaning, string(e.Category)}); err != nil {
				return fmt.Errorf("failed to write CSV row %q: %w", e.Term, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode vocabulary JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Decode reads import candidates in the given format. Rows or objects that
// lack one of the three fields are skipped.
func Decode(r io.Reader, format Format) ([]vocabulary.Entry, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(r)
	case FormatJSON:
		records, err := decodeRecords(r)
		if err != nil {
			return nil, err
		}

		var entries []vocabulary.Entry
		for _, rec := range records {
			term, meaning, category := rec.fields()
			if term == nil || meaning == nil || category == nil {
				continue
			}
			if e, err := vocabulary.NewEntry(*term, *meaning, *category); err == nil {
				entries = append(entries, e)
			}
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// decodeStored reads the persisted vocabulary. Unlike Decode it fails on
// any entry without a term or meaning; a missing category is allowed.
func decodeStored(r io.Reader) ([]vocabulary.Entry, error) {
	records, err := decodeRecords(r)
	if err != nil {
		return nil, err
	}

	entries := make([]vocabulary.Entry, 0, len(records))
	for i, rec := range records {
		term, meaning, category := rec.fields()
		if term == nil || meaning == nil {
			return nil, fmt.Errorf("entry %d: missing term or meaning", i)
		}

		e := vocabulary.Entry{Term: *term, Meaning: *meaning}
		if category != nil {
			e.Category = vocabulary.Category(*category)
		}
		entries = append(entries, e.Clean())
	}

	return entries, nil
}

func decodeRecords(r io.Reader) ([]entryRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary JSON: %w", err)
	}

	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\ufeff")))
	if len(data) == 0 || data[0] != '[' {
		return nil, errors.New("data must be a list of vocabulary entries")
	}

	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary JSON: %w", err)
	}

	return records, nil
}

func decodeCSV(r io.Reader) ([]vocabulary.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := legacyColumns[name]; ok {
			if _, taken := columns[canonical]; taken {
				continue
			}
			name = canonical
		}
		columns[name] = i
	}

	termIdx, okTerm := columns["term"]
	meaningIdx, okMeaning := columns["meaning"]
	categoryIdx, okCategory := columns["category"]
	if !okTerm || !okMeaning || !okCategory {
		return nil, nil
	}

	var entries []vocabulary.Entry
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		if termIdx >= len(row) || meaningIdx >= len(row) || categoryIdx >= len(row) {
			continue
		}
		e, err := vocabulary.NewEntry(row[termIdx], row[meaningIdx], row[categoryIdx])
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}

	return entries, nil
}
