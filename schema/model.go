package schema

// MatchRecord is one row of the match table. The col tag names the input
// column and its type; fields are declared in input column order.
type MatchRecord struct {
	ID           int          `json:"id" yaml:"id" col:"id,type:int"`
	Season       int          `json:"season" yaml:"season" col:"season,type:int"`
	City         string       `json:"city" yaml:"city" col:"city"`
	Date         string       `json:"date" yaml:"date" col:"date"`
	Team1        string       `json:"team1" yaml:"team1" col:"team1"`
	Team2        string       `json:"team2" yaml:"team2" col:"team2"`
	TossWinner   string       `json:"toss_winner" yaml:"toss_winner" col:"toss_winner"`
	TossDecision TossDecision `json:"toss_decision" yaml:"toss_decision" col:"toss_decision"`
	Result       string       `json:"result" yaml:"result" col:"result"`
	Winner       string       `json:"winner" yaml:"winner" col:"winner"`
	Venue        string       `json:"venue" yaml:"venue" col:"venue"`
}

// Column describes one positional input column.
type Column struct {
	Name     string
	Type     ColumnType
	Position int
	Field    int // index of the backing MatchRecord field
}

type ColumnType string

const (
	TextColumn ColumnType = "text"
	IntColumn  ColumnType = "int"
)

type TossDecision string

const (
	DecisionBat   TossDecision = "bat"
	DecisionField TossDecision = "field"
	DecisionBowl  TossDecision = "bowl" // same as field
)

// Normalize folds bowl into field. Other values are returned unchanged.
func (d TossDecision) Normalize() TossDecision {
	if d == DecisionBowl {
		return DecisionField
	}
	return d
}

// Valid reports whether d is one of the known decisions.
func (d TossDecision) Valid() bool {
	switch d {
	case DecisionBat, DecisionField, DecisionBowl:
		return true
	}
	return false
}

// Teams returns both sides of the fixture in input order.
func (m MatchRecord) Teams() [2]string {
	return [2]string{m.Team1, m.Team2}
}

// IsTeam reports whether name is one of the two sides of the record.
// The empty string never names a team.
func (m MatchRecord) IsTeam(name string) bool {
	return name != "" && (name == m.Team1 || name == m.Team2)
}
