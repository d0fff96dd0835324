// Package stats is the match statistics engine. Compute is a pure function
// from a table of match records to a set of labelled aggregates; it never
// renders anything.
package stats

import (
	"fmt"
	"sort"

	"github.com/ridoystarlord/matchstats/derive"
	"github.com/ridoystarlord/matchstats/schema"
)

// Output keys, in computation order.
const (
	OutMostWinsSeason         = "most_wins_season"
	OutTopCity                = "top_city"
	OutTopBattingFirstWinner  = "top_batting_first_winner"
	OutTopFieldingFirstWinner = "top_fielding_first_winner"
	OutTossWinPct             = "toss_win_pct"
	OutBestTossDecision       = "best_toss_decision"
	OutTopVenue               = "top_venue"
	OutAvgMatchesPerCity      = "avg_matches_per_city"
	OutHomeWinVenue           = "home_win_venue"
	OutAwayWinVenue           = "away_win_venue"
	OutHighestWinPctTeam      = "highest_win_pct_team"
	OutTossLostPct            = "toss_lost_pct"
	OutTeamAppearances        = "team_appearances"
	OutBatWinPct              = "bat_win_pct"
	OutFieldWinPct            = "field_win_pct"
	OutCityFieldingSuccess    = "city_fielding_success"
	OutTopPairs               = "top_pairs"
	OutHomeWinVenues          = "home_win_venues"
)

type Options struct {
	// Season whose most frequent winner is reported.
	Season int
	// TopN bounds the pair and home-win venue tables.
	TopN int
}

func DefaultOptions() Options {
	return Options{Season: 2008, TopN: 10}
}

// TeamWinPct is a team's share of wins over the matches it appeared in.
type TeamWinPct struct {
	Team   string  `json:"team" yaml:"team"`
	Wins   int     `json:"wins" yaml:"wins"`
	Played int     `json:"played" yaml:"played"`
	Pct    float64 `json:"pct" yaml:"pct"`
}

// CityRate is the percentage of a city's matches not won by the side
// batting first.
type CityRate struct {
	City    string  `json:"city" yaml:"city"`
	Matches int     `json:"matches" yaml:"matches"`
	Pct     float64 `json:"pct" yaml:"pct"`
}

// PairCount counts matches between an ordered (team1, team2) pair.
type PairCount struct {
	Team1   string `json:"team1" yaml:"team1"`
	Team2   string `json:"team2" yaml:"team2"`
	Matches int    `json:"matches" yaml:"matches"`
}

// Insights holds every computed aggregate. A nil field was not computed:
// either it is optional and its input subset was empty, or an earlier
// output failed and aborted the computation.
type Insights struct {
	Records int `json:"records" yaml:"records"`
	Season  int `json:"season" yaml:"season"`

	MostWinsInSeason       *string  `json:"most_wins_season,omitempty" yaml:"most_wins_season,omitempty"`
	TopCity                *string  `json:"top_city,omitempty" yaml:"top_city,omitempty"`
	TopBattingFirstWinner  *string  `json:"top_batting_first_winner,omitempty" yaml:"top_batting_first_winner,omitempty"`
	TopFieldingFirstWinner *string  `json:"top_fielding_first_winner,omitempty" yaml:"top_fielding_first_winner,omitempty"`
	TossWinPct             *float64 `json:"toss_win_pct,omitempty" yaml:"toss_win_pct,omitempty"`
	BestTossDecision       *string  `json:"best_toss_decision,omitempty" yaml:"best_toss_decision,omitempty"`

	TopVenue          *string  `json:"top_venue,omitempty" yaml:"top_venue,omitempty"`
	AvgMatchesPerCity *float64 `json:"avg_matches_per_city,omitempty" yaml:"avg_matches_per_city,omitempty"`
	HomeWinVenue      *string  `json:"home_win_venue,omitempty" yaml:"home_win_venue,omitempty"`
	AwayWinVenue      *string  `json:"away_win_venue,omitempty" yaml:"away_win_venue,omitempty"`

	WinPercentages  []TeamWinPct `json:"win_percentages,omitempty" yaml:"win_percentages,omitempty"`
	TossLostPct     *float64     `json:"toss_lost_pct,omitempty" yaml:"toss_lost_pct,omitempty"`
	TeamAppearances []Count      `json:"team_appearances,omitempty" yaml:"team_appearances,omitempty"`
	BatWinPct       *float64     `json:"bat_win_pct,omitempty" yaml:"bat_win_pct,omitempty"`
	FieldWinPct     *float64     `json:"field_win_pct,omitempty" yaml:"field_win_pct,omitempty"`

	CityFieldingSuccess []CityRate  `json:"city_fielding_success,omitempty" yaml:"city_fielding_success,omitempty"`
	TopPairs            []PairCount `json:"top_pairs,omitempty" yaml:"top_pairs,omitempty"`
	HomeWinVenues       []Count     `json:"home_win_venues,omitempty" yaml:"home_win_venues,omitempty"`
}

// HighestWinPct returns the team with the best win percentage.
func (in *Insights) HighestWinPct() (TeamWinPct, bool) {
	if len(in.WinPercentages) == 0 {
		return TeamWinPct{}, false
	}
	return in.WinPercentages[0], true
}

type run struct {
	opts    Options
	matches []derive.Match
	out     *Insights

	homeVenues *Counter
}

type step func(*run) error

var steps = []step{
	mostWinsInSeason,
	topCity,
	topBattingFirstWinner,
	topFieldingFirstWinner,
	tossWinPct,
	bestTossDecision,
	topVenue,
	avgMatchesPerCity,
	homeAwayVenues,
	winPercentages,
	tossLostPct,
	batFieldWinPct,
	cityFieldingSuccess,
	topPairs,
	homeWinVenues,
}

// Compute derives and aggregates records. On an empty aggregation it
// returns the outputs computed so far together with an error wrapping
// ErrEmptyAggregation.
func Compute(records []schema.MatchRecord, opts Options) (*Insights, error) {
	return ComputeDerived(derive.All(records), opts)
}

// ComputeDerived is Compute over already derived matches.
func ComputeDerived(matches []derive.Match, opts Options) (*Insights, error) {
	if opts.TopN <= 0 {
		opts.TopN = DefaultOptions().TopN
	}
	r := &run{
		opts:    opts,
		matches: matches,
		out: &Insights{
			Records: len(matches),
			Season:  opts.Season,
		},
	}
	for _, s := range steps {
		if err := s(r); err != nil {
			return r.out, err
		}
	}
	return r.out, nil
}

func (r *run) count(value func(derive.Match) string, keep func(derive.Match) bool) *Counter {
	c := NewCounter()
	for _, m := range r.matches {
		if keep == nil || keep(m) {
			c.Add(value(m))
		}
	}
	return c
}

func (r *run) mode(output, detail string, value func(derive.Match) string, keep func(derive.Match) bool) (*string, error) {
	v, ok := r.count(value, keep).Mode()
	if !ok {
		return nil, emptyAggregation(output, detail)
	}
	return &v, nil
}

func (r *run) mean(output string, value func(derive.Match) bool) (float64, error) {
	values := make([]bool, len(r.matches))
	for i, m := range r.matches {
		values[i] = value(m)
	}
	mean, ok := meanOf(values)
	if !ok {
		return 0, emptyAggregation(output, "no matches")
	}
	return mean, nil
}

func winner(m derive.Match) string { return m.Winner }
func city(m derive.Match) string   { return m.City }
func venue(m derive.Match) string  { return m.Venue }

func mostWinsInSeason(r *run) (err error) {
	season := r.opts.Season
	r.out.MostWinsInSeason, err = r.mode(OutMostWinsSeason,
		fmt.Sprintf("no winners in season %d", season),
		winner,
		func(m derive.Match) bool { return m.Season == season })
	return err
}

func topCity(r *run) (err error) {
	r.out.TopCity, err = r.mode(OutTopCity, "no cities", city, nil)
	return err
}

func topBattingFirstWinner(r *run) (err error) {
	r.out.TopBattingFirstWinner, err = r.mode(OutTopBattingFirstWinner,
		"no matches won batting first",
		winner,
		func(m derive.Match) bool { return m.WinnerBattedFirst })
	return err
}

func topFieldingFirstWinner(r *run) (err error) {
	r.out.TopFieldingFirstWinner, err = r.mode(OutTopFieldingFirstWinner,
		"no matches won fielding first",
		winner,
		func(m derive.Match) bool { return !m.WinnerBattedFirst })
	return err
}

func tossWinPct(r *run) error {
	mean, err := r.mean(OutTossWinPct, func(m derive.Match) bool { return m.TossWinnerWonMatch })
	if err != nil {
		return err
	}
	pct := RoundTo2(mean * 100)
	r.out.TossWinPct = &pct
	return nil
}

func bestTossDecision(r *run) (err error) {
	r.out.BestTossDecision, err = r.mode(OutBestTossDecision,
		"no toss winner won the match",
		func(m derive.Match) string { return string(m.TossDecisionNorm) },
		func(m derive.Match) bool { return m.TossWinnerWonMatch })
	return err
}

func topVenue(r *run) (err error) {
	r.out.TopVenue, err = r.mode(OutTopVenue, "no venues", venue, nil)
	return err
}

func avgMatchesPerCity(r *run) error {
	mean, ok := r.count(city, nil).MeanCount()
	if !ok {
		return emptyAggregation(OutAvgMatchesPerCity, "no cities")
	}
	avg := RoundTo2(mean)
	r.out.AvgMatchesPerCity = &avg
	return nil
}

// homeAwayVenues never fails; an empty subset just omits the output.
func homeAwayVenues(r *run) error {
	r.homeVenues = r.count(venue, func(m derive.Match) bool { return derive.HomeWin(m.MatchRecord) })
	if v, ok := r.homeVenues.Mode(); ok {
		r.out.HomeWinVenue = &v
	}
	away := r.count(venue, func(m derive.Match) bool { return derive.AwayWin(m.MatchRecord) })
	if v, ok := away.Mode(); ok {
		r.out.AwayWinVenue = &v
	}
	return nil
}

func winPercentages(r *run) error {
	appearances, pcts, err := TeamTable(r.matches)
	if err != nil {
		return err
	}
	r.out.WinPercentages = pcts
	r.out.TeamAppearances = appearances
	return nil
}

// TeamTable counts appearances per team (team1 column, then team2 column)
// and ranks teams by win percentage. Both results are sorted descending;
// ties keep the order in which teams first appear.
func TeamTable(matches []derive.Match) ([]Count, []TeamWinPct, error) {
	played := NewCounter()
	wins := NewCounter()
	for _, m := range matches {
		played.Add(m.Team1)
		wins.Add(m.Winner)
	}
	for _, m := range matches {
		played.Add(m.Team2)
	}
	if played.Len() == 0 {
		return nil, nil, emptyAggregation(OutHighestWinPctTeam, "no teams")
	}

	type ranked struct {
		TeamWinPct
		raw float64
	}
	table := make([]ranked, 0, played.Len())
	for _, p := range played.Ordered() {
		w := wins.Get(p.Value)
		raw := float64(w) / float64(p.Count) * 100
		table = append(table, ranked{
			TeamWinPct: TeamWinPct{Team: p.Value, Wins: w, Played: p.Count, Pct: RoundTo2(raw)},
			raw:        raw,
		})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].raw > table[j].raw
	})

	pcts := make([]TeamWinPct, len(table))
	for i, t := range table {
		pcts[i] = t.TeamWinPct
	}
	return played.Sorted(), pcts, nil
}

func tossLostPct(r *run) error {
	if r.out.TossWinPct == nil {
		return emptyAggregation(OutTossLostPct, "toss win percentage unavailable")
	}
	lost := RoundTo2(100 - *r.out.TossWinPct)
	r.out.TossLostPct = &lost
	return nil
}

func batFieldWinPct(r *run) error {
	mean, err := r.mean(OutBatWinPct, func(m derive.Match) bool { return m.WinnerBattedFirst })
	if err != nil {
		return err
	}
	bat := mean * 100
	field := 100 - bat
	r.out.BatWinPct = &bat
	r.out.FieldWinPct = &field
	return nil
}

func cityFieldingSuccess(r *run) error {
	r.out.CityFieldingSuccess = CityFieldingSuccess(r.matches)
	return nil
}

// CityFieldingSuccess gives, per city, the percentage of matches not won by
// the side batting first. Highest first; ties by city name.
func CityFieldingSuccess(matches []derive.Match) []CityRate {
	type tally struct{ matches, battedFirstWins int }
	byCity := make(map[string]*tally)
	for _, m := range matches {
		if m.City == "" {
			continue
		}
		t, ok := byCity[m.City]
		if !ok {
			t = &tally{}
			byCity[m.City] = t
		}
		t.matches++
		if m.WinnerBattedFirst {
			t.battedFirstWins++
		}
	}

	rates := make([]CityRate, 0, len(byCity))
	for c, t := range byCity {
		mean := float64(t.battedFirstWins) / float64(t.matches)
		rates = append(rates, CityRate{City: c, Matches: t.matches, Pct: RoundTo2((1 - mean) * 100)})
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].Pct != rates[j].Pct {
			return rates[i].Pct > rates[j].Pct
		}
		return rates[i].City < rates[j].City
	})
	return rates
}

func topPairs(r *run) error {
	r.out.TopPairs = TopPairs(r.matches, r.opts.TopN)
	return nil
}

// TopPairs counts ordered (team1, team2) pairs, most frequent first, ties
// by team names. n <= 0 returns every pair.
func TopPairs(matches []derive.Match, n int) []PairCount {
	counts := make(map[[2]string]int)
	for _, m := range matches {
		if m.Team1 == "" || m.Team2 == "" {
			continue
		}
		counts[[2]string{m.Team1, m.Team2}]++
	}

	pairs := make([]PairCount, 0, len(counts))
	for k, c := range counts {
		pairs = append(pairs, PairCount{Team1: k[0], Team2: k[1], Matches: c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if a.Matches != b.Matches {
			return a.Matches > b.Matches
		}
		if a.Team1 != b.Team1 {
			return a.Team1 < b.Team1
		}
		return a.Team2 < b.Team2
	})
	if n > 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

func homeWinVenues(r *run) error {
	r.out.HomeWinVenues = r.homeVenues.Top(r.opts.TopN)
	return nil
}
