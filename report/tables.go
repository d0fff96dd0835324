package report

import (
	"strconv"

	"github.com/ridoystarlord/matchstats/derive"
	"github.com/ridoystarlord/matchstats/schema"
)

// PreviewTable shows the first n records as loaded. n <= 0 shows all.
func PreviewTable(records []schema.MatchRecord, n int) *Table {
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	t := &Table{Columns: schema.ColumnNames(), Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		t.Rows = append(t.Rows, recordRow(r))
	}
	return t
}

// DerivedTable lists every match with its derived columns appended.
func DerivedTable(matches []derive.Match) *Table {
	cols := append(schema.ColumnNames(), derive.DerivedColumns...)
	t := &Table{Columns: cols, Rows: make([][]string, 0, len(matches))}
	for _, m := range matches {
		row := recordRow(m.MatchRecord)
		row = append(row,
			m.BattingFirst,
			strconv.FormatBool(m.WinnerBattedFirst),
			strconv.FormatBool(m.TossWinnerWonMatch),
			string(m.TossDecisionNorm),
			m.HomeTeam,
			m.AwayTeam,
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func recordRow(r schema.MatchRecord) []string {
	return schema.Values(r)
}
