package validator

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ridoystarlord/matchstats/schema"
)

// ValidationError represents a validation finding with details
type ValidationError struct {
	Type     string `json:"type"`
	Line     int    `json:"line,omitempty"`
	Column   string `json:"column,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Rows     int               `json:"rows"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

// TableValidator checks the shape of a headerless match table. Only errors
// stop the table from loading; warnings flag rows the statistics treat
// loosely (unknown decisions, winners who did not play).
type TableValidator struct {
	// MaxFindings caps errors and warnings each; 0 means unlimited.
	MaxFindings int
}

func NewTableValidator() *TableValidator {
	return &TableValidator{MaxFindings: 50}
}

// ValidateTable reads every row of data and reports what it finds.
func (v *TableValidator) ValidateTable(data []byte) (*ValidationResult, error) {
	cols, err := schema.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to load column layout: %w", err)
	}

	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1

	seen := newTableSummary()

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				v.addError(result, ValidationError{
					Type:    "csv_syntax",
					Line:    perr.Line,
					Message: perr.Err.Error(),
				})
				result.Valid = false
				break
			}
			return nil, fmt.Errorf("failed to read table: %w", err)
		}
		line, _ := reader.FieldPos(0)
		result.Rows++

		if len(row) != len(cols) {
			v.addError(result, ValidationError{
				Type:    "column_count",
				Line:    line,
				Message: fmt.Sprintf("row has %d columns, expected %d (%s)", len(row), len(cols), strings.Join(schema.ColumnNames(), ", ")),
			})
			continue
		}

		rec, ok := v.validateRow(row, cols, line, result)
		if !ok {
			continue
		}
		v.checkRecord(rec, line, seen, result)
	}

	v.finish(result, seen)
	return result, nil
}

// ValidateRecords runs the row checks on records that were already decoded,
// such as a YAML or JSON table. Line is the 1-based record position.
func (v *TableValidator) ValidateRecords(records []schema.MatchRecord) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}
	seen := newTableSummary()
	for i, rec := range records {
		result.Rows++
		v.checkRecord(rec, i+1, seen, result)
	}
	v.finish(result, seen)
	return result
}

// tableSummary tracks ids and seasons across rows.
type tableSummary struct {
	ids       map[int]int
	seasons   map[int]bool
	minSeason int
	maxSeason int
}

func newTableSummary() *tableSummary {
	return &tableSummary{ids: make(map[int]int), seasons: make(map[int]bool)}
}

func (t *tableSummary) addSeason(season int) {
	if t.seasons[season] {
		return
	}
	t.seasons[season] = true
	if t.minSeason == 0 || season < t.minSeason {
		t.minSeason = season
	}
	if season > t.maxSeason {
		t.maxSeason = season
	}
}

func (v *TableValidator) finish(result *ValidationResult, seen *tableSummary) {
	if result.Rows == 0 {
		v.addError(result, ValidationError{
			Type:    "empty_table",
			Message: "table has no rows",
		})
	} else {
		result.Info = append(result.Info, ValidationError{
			Type:     "rows",
			Message:  fmt.Sprintf("%d rows read", result.Rows),
			Severity: "info",
		})
	}
	if len(seen.seasons) > 0 {
		result.Info = append(result.Info, ValidationError{
			Type:     "seasons",
			Message:  fmt.Sprintf("%d seasons between %d and %d", len(seen.seasons), seen.minSeason, seen.maxSeason),
			Severity: "info",
		})
	}
	result.Valid = len(result.Errors) == 0
}

// validateRow checks a row with the right column count. It returns false
// when the row could not be decoded at all.
func (v *TableValidator) validateRow(row []string, cols []schema.Column, line int, result *ValidationResult) (schema.MatchRecord, bool) {
	var rec schema.MatchRecord
	values := make(map[string]string, len(cols))
	for _, c := range cols {
		values[c.Name] = row[c.Position]
	}

	ok := true
	for _, c := range cols {
		if c.Type != schema.IntColumn {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(values[c.Name]))
		if err != nil {
			msg := fmt.Sprintf("%q is not an integer", values[c.Name])
			if line == 1 {
				msg += "; the table must not have a header row"
			}
			v.addError(result, ValidationError{Type: "not_integer", Line: line, Column: c.Name, Message: msg})
			ok = false
			continue
		}
		switch c.Name {
		case "id":
			rec.ID = n
		case "season":
			rec.Season = n
		}
	}
	if !ok {
		return rec, false
	}

	rec.Team1, rec.Team2 = values["team1"], values["team2"]
	rec.TossWinner = values["toss_winner"]
	rec.TossDecision = schema.TossDecision(values["toss_decision"])
	rec.Winner = values["winner"]
	return rec, true
}

// checkRecord reports warnings for a decoded row.
func (v *TableValidator) checkRecord(rec schema.MatchRecord, line int, seen *tableSummary, result *ValidationResult) {
	if rec.Season < 1000 || rec.Season > 9999 {
		v.addWarning(result, ValidationError{
			Type:    "season_year",
			Line:    line,
			Column:  "season",
			Message: fmt.Sprintf("season %d is not a 4-digit year", rec.Season),
		})
	}

	team1, team2 := rec.Team1, rec.Team2
	if team1 != "" && team1 == team2 {
		v.addWarning(result, ValidationError{
			Type:    "same_teams",
			Line:    line,
			Column:  "team2",
			Message: fmt.Sprintf("team1 and team2 are both %q", team1),
		})
	}

	if toss := rec.TossWinner; toss != "" && toss != team1 && toss != team2 {
		v.addWarning(result, ValidationError{
			Type:    "toss_winner",
			Line:    line,
			Column:  "toss_winner",
			Message: fmt.Sprintf("toss winner %q played neither side; batting order is undefined", toss),
		})
	}

	if d := rec.TossDecision; !d.Valid() {
		v.addWarning(result, ValidationError{
			Type:    "toss_decision",
			Line:    line,
			Column:  "toss_decision",
			Message: fmt.Sprintf("toss decision %q is not bat, field or bowl", d),
		})
	}

	if w := rec.Winner; w != "" && w != team1 && w != team2 && !strings.EqualFold(w, "draw") {
		v.addWarning(result, ValidationError{
			Type:    "winner",
			Line:    line,
			Column:  "winner",
			Message: fmt.Sprintf("winner %q played neither side", w),
		})
	}

	if first, dup := seen.ids[rec.ID]; dup {
		v.addWarning(result, ValidationError{
			Type:    "duplicate_id",
			Line:    line,
			Column:  "id",
			Message: fmt.Sprintf("id %d already used on line %d", rec.ID, first),
		})
	} else {
		seen.ids[rec.ID] = line
	}
	seen.addSeason(rec.Season)
}

func (v *TableValidator) addError(result *ValidationResult, e ValidationError) {
	e.Severity = "error"
	if v.MaxFindings > 0 && len(result.Errors) >= v.MaxFindings {
		return
	}
	result.Errors = append(result.Errors, e)
}

func (v *TableValidator) addWarning(result *ValidationResult, e ValidationError) {
	e.Severity = "warning"
	if v.MaxFindings > 0 && len(result.Warnings) >= v.MaxFindings {
		return
	}
	result.Warnings = append(result.Warnings, e)
}
