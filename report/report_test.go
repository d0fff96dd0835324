package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/matchstats/derive"
	"github.com/ridoystarlord/matchstats/schema"
	"github.com/ridoystarlord/matchstats/stats"
)

func records() []schema.MatchRecord {
	return []schema.MatchRecord{
		{ID: 1, Season: 2008, City: "Mumbai", Team1: "Mumbai Indians", Team2: "Chennai Super Kings",
			TossWinner: "Mumbai Indians", TossDecision: schema.DecisionBat, Result: "normal",
			Winner: "Mumbai Indians", Venue: "Wankhede Stadium"},
		{ID: 2, Season: 2008, City: "Chennai", Team1: "Chennai Super Kings", Team2: "Royal Challengers Bangalore",
			TossWinner: "Royal Challengers Bangalore", TossDecision: schema.DecisionField, Result: "normal",
			Winner: "Chennai Super Kings", Venue: "MA Chidambaram Stadium"},
		{ID: 3, Season: 2008, City: "Bangalore", Team1: "Royal Challengers Bangalore", Team2: "Mumbai Indians",
			TossWinner: "Mumbai Indians", TossDecision: schema.DecisionBowl, Result: "normal",
			Winner: "Mumbai Indians", Venue: "M Chinnaswamy Stadium"},
		{ID: 4, Season: 2009, City: "Bangalore", Team1: "Royal Challengers Bangalore", Team2: "Chennai Super Kings",
			TossWinner: "Royal Challengers Bangalore", TossDecision: schema.DecisionBat, Result: "normal",
			Winner: "Royal Challengers Bangalore", Venue: "M Chinnaswamy Stadium"},
	}
}

func buildReport(t *testing.T) *Report {
	t.Helper()
	in, err := stats.Compute(records(), stats.DefaultOptions())
	require.NoError(t, err)
	return Build(in)
}

func TestBuildSectionsAndItems(t *testing.T) {
	rep := buildReport(t)

	require.Len(t, rep.Sections, 4)
	assert.Equal(t, SectionKeyInsights, rep.Sections[0].Title)
	assert.Equal(t, SectionVenueCity, rep.Sections[1].Title)
	assert.Equal(t, SectionDeeper, rep.Sections[2].Title)
	assert.Equal(t, SectionAdditional, rep.Sections[3].Title)
	assert.Equal(t, 4, rep.Records)

	it, ok := rep.Item(stats.OutMostWinsSeason)
	require.True(t, ok)
	assert.Equal(t, "Team with most wins in 2008", it.Label)
	assert.Equal(t, "Mumbai Indians", it.Display())

	it, ok = rep.Item(stats.OutTossWinPct)
	require.True(t, ok)
	assert.Equal(t, "75.00%", it.Display())

	it, ok = rep.Item(stats.OutAvgMatchesPerCity)
	require.True(t, ok)
	assert.Equal(t, "1.33", it.Display())

	it, ok = rep.Item(stats.OutHighestWinPctTeam)
	require.True(t, ok)
	assert.Equal(t, "Mumbai Indians (100.00%)", it.Display())

	it, ok = rep.Item(stats.OutTeamAppearances)
	require.True(t, ok)
	assert.Equal(t, KindChart, it.Kind)
	assert.Len(t, it.Chart.Bars, 3)
	assert.Equal(t, 3.0, it.Chart.Max())

	it, ok = rep.Item(stats.OutTopPairs)
	require.True(t, ok)
	assert.Equal(t, []string{"Team 1", "Team 2", "Matches"}, it.Table.Columns)
	assert.Len(t, it.Table.Rows, 4)
}

func TestBuildSkipsMissingOutputs(t *testing.T) {
	in, err := stats.Compute(records(), stats.Options{Season: 2012})
	require.Error(t, err)

	rep := Build(in)
	assert.Empty(t, rep.Sections)
	assert.Empty(t, rep.Items())
	_, ok := rep.Item(stats.OutTopCity)
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "1.33", FormatNumber(1.333))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "33.50", FormatNumber(33.5))
}

func TestTextRenderer(t *testing.T) {
	color.NoColor = true
	rep := buildReport(t)
	rep.Source = "matches.csv"

	var buf bytes.Buffer
	require.NoError(t, TextRenderer{BarWidth: 10}.Render(&buf, rep))
	out := buf.String()

	assert.Contains(t, out, "🏏 IPL Match Data Analysis")
	assert.Contains(t, out, "📄 Source: matches.csv")
	assert.Contains(t, out, "City hosting the most matches: Bangalore")
	assert.Contains(t, out, "Toss winners who went on to win the match: 75.00%")
	assert.Contains(t, out, SectionAdditional)
	assert.Contains(t, out, strings.Repeat("█", 10))
	assert.NotContains(t, out, "❌")
}

func TestWriteTableText(t *testing.T) {
	var buf bytes.Buffer
	WriteTableText(&buf, &Table{Columns: []string{"City", "Matches"}, Rows: [][]string{{"Bangalore", "2"}}})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "City")
	assert.Contains(t, lines[2], "Bangalore")

	buf.Reset()
	WriteTableText(&buf, &Table{Columns: []string{"City"}})
	assert.Contains(t, buf.String(), "(no data)")
}

func TestJSONRenderer(t *testing.T) {
	rep := buildReport(t)

	var buf bytes.Buffer
	require.NoError(t, JSONRenderer{Indent: "  "}.Render(&buf, rep))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.Title, decoded.Title)
	assert.Len(t, decoded.Items(), len(rep.Items()))

	it, ok := decoded.Item(stats.OutTopVenue)
	require.True(t, ok)
	assert.Equal(t, "M Chinnaswamy Stadium", it.Text)
	assert.Empty(t, it.Icon)
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAMLRenderer{}.Render(&buf, buildReport(t)))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, DefaultTitle, decoded["title"])
	assert.Len(t, decoded["sections"], 4)
}

func TestCSVRenderer(t *testing.T) {
	rep := buildReport(t)
	rep.Error = "boom"

	var buf bytes.Buffer
	require.NoError(t, CSVRenderer{}.Render(&buf, rep))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"key", "label", "value"}, rows[0])
	assert.Contains(t, rows, []string{stats.OutTopCity, "City hosting the most matches", "Bangalore"})
	assert.Contains(t, rows, []string{"# " + stats.OutTeamAppearances})
	assert.Contains(t, rows, []string{"Chennai Super Kings", "3"})
	assert.Equal(t, []string{"error", "boom"}, rows[len(rows)-1])
}

func TestNewRenderer(t *testing.T) {
	for _, f := range Formats {
		r, err := NewRenderer(f)
		require.NoError(t, err, f)
		assert.NotNil(t, r)
	}
	_, err := NewRenderer("xml")
	assert.Error(t, err)
}

func TestRenderPage(t *testing.T) {
	recs := records()
	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, Page{
		Filename:   "matches.csv",
		Message:    "Loaded",
		Preview:    PreviewTable(recs, 2),
		Report:     buildReport(t),
		UploadPath: "/analyze",
	}))
	out := buf.String()

	assert.Contains(t, out, "<title>IPL Match Data Analysis</title>")
	assert.Contains(t, out, `action="/analyze"`)
	assert.Contains(t, out, "toss_decision")
	assert.Contains(t, out, "Wankhede Stadium")
	assert.Contains(t, out, "Teams with most appearances")
	assert.Contains(t, out, "width: 100.0%")
	assert.NotContains(t, out, `class="card error"`)

	buf.Reset()
	require.NoError(t, RenderPage(&buf, Page{Prompt: "Upload a file", Error: "<bad>"}))
	out = buf.String()
	assert.Contains(t, out, "Upload a file")
	assert.Contains(t, out, "&lt;bad&gt;")
	assert.NotContains(t, out, "<form")
}

func TestPreviewAndDerivedTables(t *testing.T) {
	recs := records()
	preview := PreviewTable(recs, 2)
	assert.Equal(t, schema.ColumnNames(), preview.Columns)
	assert.Len(t, preview.Rows, 2)
	assert.Len(t, PreviewTable(recs, 0).Rows, 4)

	derived := DerivedTable(derive.All(recs))
	assert.Len(t, derived.Columns, 17)
	assert.Equal(t, "away_team", derived.Columns[16])
	// match 3: RCB at Bangalore, MI won the toss and bowled
	assert.Equal(t, []string{
		"Royal Challengers Bangalore", "false", "true", "field",
		"Royal Challengers Bangalore", "Mumbai Indians",
	}, derived.Rows[2][11:])
}
