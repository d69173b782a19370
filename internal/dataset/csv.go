package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jstittsworth/fplmate/internal/models"
)

// table is a CSV file held in memory with a header -> column index map
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

// readTable loads a CSV file and checks that every required column is present.
// Extra columns are ignored.
func readTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &models.ResourceNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &models.DataIntegrityError{Source: path, Reason: "file is empty, header row expected"}
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, &models.DataIntegrityError{Source: path, Column: col, Reason: "missing expected column"}
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", path, err)
	}

	return &table{path: path, columns: columns, rows: rows}, nil
}

func (t *table) cell(row int, col string) string {
	idx := t.columns[col]
	if idx >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][idx])
}

func (t *table) str(row int, col string) string {
	return t.cell(row, col)
}

// invalid reports a bad cell with its file line (header is line 1)
func (t *table) invalid(row int, col, reason string) error {
	return &models.DataIntegrityError{
		Source: fmt.Sprintf("%s:%d", t.path, row+2),
		Column: col,
		Reason: reason,
	}
}

func (t *table) parseNumber(row int, col string, required bool) (float64, error) {
	raw := t.cell(row, col)
	if raw == "" {
		if required {
			return 0, t.invalid(row, col, "value is required")
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, t.invalid(row, col, fmt.Sprintf("invalid number %q", raw))
	}
	// ParseFloat accepts NaN and Inf, which pandas writes for missing values
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, t.invalid(row, col, fmt.Sprintf("non-finite number %q", raw))
	}
	return v, nil
}

func (t *table) parseInteger(row int, col string, required bool) (int, error) {
	v, err := t.parseNumber(row, col, required)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, t.invalid(row, col, fmt.Sprintf("%v is not a whole number", v))
	}
	return int(v), nil
}

// number parses a numeric cell; blanks read as zero
func (t *table) number(row int, col string) (float64, error) {
	return t.parseNumber(row, col, false)
}

// integer parses a whole-number cell such as "3" or "3.0"; blanks read as zero
func (t *table) integer(row int, col string) (int, error) {
	return t.parseInteger(row, col, false)
}

// requiredInteger is integer for key columns where a blank is an error
func (t *table) requiredInteger(row int, col string) (int, error) {
	return t.parseInteger(row, col, true)
}

func (t *table) count() int {
	return len(t.rows)
}
