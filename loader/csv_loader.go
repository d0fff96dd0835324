package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/ridoystarlord/matchstats/schema"
)

var (
	// ErrMissingInput is returned when no match file was supplied.
	ErrMissingInput = errors.New("no match file supplied")
	// ErrMalformedRow is returned for rows with the wrong shape or unparsable numbers.
	ErrMalformedRow = errors.New("malformed row")
)

// RowError reports the input line that could not be parsed.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadMatchesFromCSV reads a headerless match table from filename.
func LoadMatchesFromCSV(filename string) ([]schema.MatchRecord, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrMissingInput
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading match file: %w", err)
	}
	return ParseMatches(data)
}

// ParseMatches parses a headerless, comma-separated match table. Every row
// must carry exactly schema.ColumnCount() columns; the first row is data.
func ParseMatches(data []byte) ([]schema.MatchRecord, error) {
	cols, err := schema.Columns()
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = len(cols)

	var records []schema.MatchRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rowErrorFrom(err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := decodeRow(row, cols, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func decodeRow(row []string, cols []schema.Column, line int) (schema.MatchRecord, error) {
	var rec schema.MatchRecord
	v := reflect.ValueOf(&rec).Elem()

	for _, col := range cols {
		raw := row[col.Position]
		field := v.Field(col.Field)

		switch col.Type {
		case schema.IntColumn:
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return rec, &RowError{Line: line, Column: col.Name, Err: fmt.Errorf("%q is not an integer", raw)}
			}
			field.SetInt(int64(n))
		default:
			field.SetString(raw)
		}
	}
	return rec, nil
}

func rowErrorFrom(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &RowError{Line: perr.Line, Err: perr.Err}
	}
	return fmt.Errorf("reading match table: %w", err)
}
