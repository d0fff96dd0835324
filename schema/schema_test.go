package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsFollowFieldOrder(t *testing.T) {
	cols, err := Columns()
	require.NoError(t, err)
	require.Len(t, cols, 11)

	assert.Equal(t, []string{
		"id", "season", "city", "date", "team1", "team2",
		"toss_winner", "toss_decision", "result", "winner", "venue",
	}, ColumnNames())
	assert.Equal(t, 11, ColumnCount())

	for i, c := range cols {
		assert.Equal(t, i, c.Position, c.Name)
	}
	assert.Equal(t, IntColumn, cols[0].Type)
	assert.Equal(t, IntColumn, cols[1].Type)
	assert.Equal(t, TextColumn, cols[2].Type)
}

func TestValuesInColumnOrder(t *testing.T) {
	r := MatchRecord{
		ID:           7,
		Season:       2008,
		City:         "Mumbai",
		Date:         "2008-05-04",
		Team1:        "Mumbai Indians",
		Team2:        "Deccan Chargers",
		TossWinner:   "Deccan Chargers",
		TossDecision: DecisionField,
		Result:       "normal",
		Winner:       "Mumbai Indians",
		Venue:        "Wankhede Stadium",
	}
	assert.Equal(t, []string{
		"7", "2008", "Mumbai", "2008-05-04", "Mumbai Indians", "Deccan Chargers",
		"Deccan Chargers", "field", "normal", "Mumbai Indians", "Wankhede Stadium",
	}, Values(r))
}

func TestParseColTag(t *testing.T) {
	col, err := parseColTag("TossWinner", "toss_winner")
	require.NoError(t, err)
	assert.Equal(t, "toss_winner", col.Name)
	assert.Equal(t, TextColumn, col.Type)

	col, err = parseColTag("Season", "type:int")
	require.NoError(t, err)
	assert.Equal(t, "season", col.Name)
	assert.Equal(t, IntColumn, col.Type)

	_, err = parseColTag("Season", "season,type:float")
	assert.Error(t, err)
}

func TestLoadColumnsRejectsKindMismatch(t *testing.T) {
	type bad struct {
		Season string `col:"season,type:int"`
	}
	_, err := loadColumns(reflect.TypeOf(bad{}))
	assert.Error(t, err)
}

func TestTossDecision(t *testing.T) {
	tests := []struct {
		in    TossDecision
		norm  TossDecision
		valid bool
	}{
		{DecisionBat, DecisionBat, true},
		{DecisionField, DecisionField, true},
		{DecisionBowl, DecisionField, true},
		{"", "", false},
		{"Bat", "Bat", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.norm, tt.in.Normalize(), string(tt.in))
		assert.Equal(t, tt.valid, tt.in.Valid(), string(tt.in))
	}
}

func TestIsTeam(t *testing.T) {
	r := MatchRecord{Team1: "Kolkata Knight Riders", Team2: "Royal Challengers Bangalore"}
	assert.True(t, r.IsTeam("Kolkata Knight Riders"))
	assert.True(t, r.IsTeam("Royal Challengers Bangalore"))
	assert.False(t, r.IsTeam("Chennai Super Kings"))
	assert.False(t, r.IsTeam(""))
	assert.False(t, MatchRecord{}.IsTeam(""))
	assert.Equal(t, [2]string{"Kolkata Knight Riders", "Royal Challengers Bangalore"}, r.Teams())
}
