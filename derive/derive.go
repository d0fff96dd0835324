// Package derive computes the per-match attributes the statistics engine
// aggregates over. Every function is a pure function of one record.
package derive

import (
	"strings"

	"github.com/ridoystarlord/matchstats/schema"
)

// Match is a record together with its derived attributes.
type Match struct {
	schema.MatchRecord `yaml:",inline"`

	BattingFirst       string              `json:"batting_first" yaml:"batting_first"`
	WinnerBattedFirst  bool                `json:"winner_batted_first" yaml:"winner_batted_first"`
	TossWinnerWonMatch bool                `json:"toss_winner_won_match" yaml:"toss_winner_won_match"`
	TossDecisionNorm   schema.TossDecision `json:"toss_decision_norm" yaml:"toss_decision_norm"`
	HomeTeam           string              `json:"home_team" yaml:"home_team"`
	AwayTeam           string              `json:"away_team" yaml:"away_team"`
}

// DerivedColumns names the columns Derive appends, in output order.
var DerivedColumns = []string{
	"batting_first",
	"winner_batted_first",
	"toss_winner_won_match",
	"toss_decision_norm",
	"home_team",
	"away_team",
}

// Derive computes every derived attribute of r. Undefined team attributes
// are left empty.
func Derive(r schema.MatchRecord) Match {
	m := Match{
		MatchRecord:        r,
		WinnerBattedFirst:  WinnerBattedFirst(r),
		TossWinnerWonMatch: TossWinnerWonMatch(r),
		TossDecisionNorm:   r.TossDecision.Normalize(),
	}
	if team, ok := BattingFirst(r); ok {
		m.BattingFirst = team
	}
	if team, ok := HomeTeam(r); ok {
		m.HomeTeam = team
	}
	if team, ok := AwayTeam(r); ok {
		m.AwayTeam = team
	}
	return m
}

// All derives every record, preserving input order.
func All(records []schema.MatchRecord) []Match {
	out := make([]Match, len(records))
	for i, r := range records {
		out[i] = Derive(r)
	}
	return out
}

// Opponent returns the side that lost the toss. It is undefined when the
// toss winner is neither team1 nor team2.
func Opponent(r schema.MatchRecord) (string, bool) {
	switch {
	case r.TossWinner == "":
		return "", false
	case r.TossWinner == r.Team1:
		return r.Team2, r.Team2 != ""
	case r.TossWinner == r.Team2:
		return r.Team1, r.Team1 != ""
	}
	return "", false
}

// BattingFirst returns the side that batted in the first innings: the toss
// winner if they chose to bat, their opponent if they chose to field (or
// bowl). The result is always team1 or team2, never a third value.
func BattingFirst(r schema.MatchRecord) (string, bool) {
	if !r.IsTeam(r.TossWinner) {
		return "", false
	}
	switch r.TossDecision.Normalize() {
	case schema.DecisionBat:
		return r.TossWinner, true
	case schema.DecisionField:
		return Opponent(r)
	}
	return "", false
}

// WinnerBattedFirst reports whether the winner is the side that batted first.
func WinnerBattedFirst(r schema.MatchRecord) bool {
	team, ok := BattingFirst(r)
	return ok && r.Winner == team
}

// TossWinnerWonMatch reports whether toss_winner == winner.
func TossWinnerWonMatch(r schema.MatchRecord) bool {
	return r.TossWinner == r.Winner
}

// HomeTeam approximates the home side: team1 is home when the last word of
// its name occurs in the city name. "Mumbai Indians" in "Mumbai" is not
// home under this rule; the approximation is kept as is.
func HomeTeam(r schema.MatchRecord) (string, bool) {
	words := strings.Fields(r.Team1)
	if len(words) == 0 || r.City == "" {
		return "", false
	}
	if strings.Contains(r.City, words[len(words)-1]) {
		return r.Team1, true
	}
	return "", false
}

// AwayTeam returns team2 unless it is the home side.
func AwayTeam(r schema.MatchRecord) (string, bool) {
	if r.Team2 == "" {
		return "", false
	}
	if home, ok := HomeTeam(r); ok && home == r.Team2 {
		return "", false
	}
	return r.Team2, true
}

// HomeWin reports whether the match was won by the approximated home side.
func HomeWin(r schema.MatchRecord) bool {
	home, ok := HomeTeam(r)
	return ok && r.Winner == home
}

// AwayWin reports whether the match was won by the approximated away side.
func AwayWin(r schema.MatchRecord) bool {
	away, ok := AwayTeam(r)
	return ok && r.Winner == away
}
