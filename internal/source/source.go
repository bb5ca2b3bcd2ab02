// Package source decodes submission exports (.csv and .xlsx) into header-keyed
// rows.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sentinel errors for source decoding.
var (
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrNoHeader          = errors.New("source has no header row")
	ErrDuplicateHeader   = errors.New("duplicate column header")
	ErrSheetNotFound     = errors.New("sheet not found")
)

// utf8BOM is prepended to CSV files by spreadsheet exports.
const utf8BOM = "\ufeff"

// Table is a decoded source: its header and one map per data row.
// A CSV row shorter than the header has no key for the missing cells.
type Table struct {
	Source string
	Header []string
	Rows   []map[string]string
}

// Load decodes the file at path by extension. sheet selects a worksheet in
// .xlsx files; empty means the first one. It is ignored for .csv.
func Load(path, sheet string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, fmt.Errorf("%w: %q (want .csv or .xlsx)", ErrUnsupportedFormat, filepath.Base(path))
	}

	f, err := os.Open(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(path)
	if ext == ".xlsx" {
		return DecodeXLSX(f, name, sheet)
	}
	return DecodeCSV(f, name)
}

// DecodeCSV reads a header row followed by data rows. Blank lines are skipped.
func DecodeCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: reading CSV: %w", name, err)
	}
	return fromRecords(name, records, false)
}

// DecodeXLSX reads the named sheet, or the first sheet when sheet is empty.
// Empty rows are skipped.
func DecodeXLSX(r io.Reader, name, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: reading workbook: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%s: %w: %q (have %s)", name, ErrSheetNotFound, sheet, strings.Join(f.GetSheetList(), ", "))
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: reading sheet %q: %w", name, sheet, err)
	}
	return fromRecords(name, records, true)
}

// fromRecords keys each data record by the cleaned header. excelize omits
// trailing empty cells, so pad restores them as empty values instead of
// leaving the keys absent.
func fromRecords(name string, records [][]string, pad bool) (*Table, error) {
	records = dropBlank(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoHeader)
	}

	header := cleanHeader(records[0])
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if h == "" {
			continue
		}
		if seen[h] {
			return nil, fmt.Errorf("%s: %w: %q", name, ErrDuplicateHeader, h)
		}
		seen[h] = true
	}

	t := &Table{Source: name, Header: header, Rows: make([]map[string]string, 0, len(records)-1)}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			switch {
			case i < len(rec):
				row[h] = rec[i]
			case pad:
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func cleanHeader(cells []string) []string {
	header := make([]string, len(cells))
	for i, c := range cells {
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		header[i] = strings.TrimSpace(c)
	}
	return header
}

func dropBlank(records [][]string) [][]string {
	kept := records[:0]
	for _, rec := range records {
		if !isBlank(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
