// Package report turns engine output into labelled, ordered items and
// renders them. The stats engine never imports this package.
package report

import (
	"fmt"
	"strconv"

	"github.com/ridoystarlord/matchstats/stats"
)

type Kind string

const (
	KindText    Kind = "text"
	KindNumber  Kind = "number"
	KindPercent Kind = "percent"
	KindTable   Kind = "table"
	KindChart   Kind = "chart"
)

// Table is a small rectangular result. Rows hold display strings.
type Table struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

type Bar struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

type Chart struct {
	XAxis string `json:"xAxis" yaml:"x_axis"`
	YAxis string `json:"yAxis" yaml:"y_axis"`
	Bars  []Bar  `json:"bars" yaml:"bars"`
}

// Item is one labelled result.
type Item struct {
	Key   string   `json:"key" yaml:"key"`
	Icon  string   `json:"-" yaml:"-"`
	Label string   `json:"label" yaml:"label"`
	Kind  Kind     `json:"kind" yaml:"kind"`
	Text  string   `json:"text,omitempty" yaml:"text,omitempty"`
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Table *Table   `json:"table,omitempty" yaml:"table,omitempty"`
	Chart *Chart   `json:"chart,omitempty" yaml:"chart,omitempty"`
}

// Display returns the value of a scalar item as it is shown to a reader.
func (it Item) Display() string {
	switch it.Kind {
	case KindPercent:
		if it.Value != nil {
			return fmt.Sprintf("%.2f%%", *it.Value)
		}
	case KindNumber:
		if it.Value != nil {
			return FormatNumber(*it.Value)
		}
	}
	return it.Text
}

// IsScalar reports whether the item is a single value rather than a table or chart.
func (it Item) IsScalar() bool {
	return it.Kind != KindTable && it.Kind != KindChart
}

type Section struct {
	Title string `json:"title" yaml:"title"`
	Items []Item `json:"items" yaml:"items"`
}

// Report is the full set of results for one input table.
type Report struct {
	Title    string    `json:"title" yaml:"title"`
	Source   string    `json:"source,omitempty" yaml:"source,omitempty"`
	Records  int       `json:"records" yaml:"records"`
	Sections []Section `json:"sections" yaml:"sections"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Items returns every item in section order.
func (r *Report) Items() []Item {
	var out []Item
	for _, s := range r.Sections {
		out = append(out, s.Items...)
	}
	return out
}

// Item looks up an item by key.
func (r *Report) Item(key string) (Item, bool) {
	for _, it := range r.Items() {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

const (
	SectionKeyInsights = "Key Insights"
	SectionVenueCity   = "Venue & City Analysis"
	SectionDeeper      = "Deeper Statistics"
	SectionAdditional  = "Additional Insights"
)

// DefaultTitle heads every rendered report.
const DefaultTitle = "IPL Match Data Analysis"

// Build lays out the computed insights. Outputs that were not computed are
// left out; sections with no items are dropped.
func Build(in *stats.Insights) *Report {
	rep := &Report{Title: DefaultTitle, Records: in.Records}

	key := Section{Title: SectionKeyInsights}
	key.add(text(stats.OutMostWinsSeason, "🏆", fmt.Sprintf("Team with most wins in %d", in.Season), in.MostWinsInSeason))
	key.add(text(stats.OutTopCity, "🌆", "City hosting the most matches", in.TopCity))
	key.add(text(stats.OutTopBattingFirstWinner, "🔥", "Team winning more often while batting first", in.TopBattingFirstWinner))
	key.add(text(stats.OutTopFieldingFirstWinner, "💪", "Team winning more often while fielding first", in.TopFieldingFirstWinner))
	key.add(number(stats.OutTossWinPct, "🎯", "Toss winners who went on to win the match", KindPercent, in.TossWinPct))
	key.add(text(stats.OutBestTossDecision, "🧠", "Toss decision leading to more wins", in.BestTossDecision))

	venue := Section{Title: SectionVenueCity}
	venue.add(text(stats.OutTopVenue, "🏟", "Most matches by stadium", in.TopVenue))
	venue.add(number(stats.OutAvgMatchesPerCity, "📍", "Average matches per city", KindNumber, in.AvgMatchesPerCity))
	venue.add(text(stats.OutHomeWinVenue, "🏠", "Venue with most home wins", in.HomeWinVenue))
	venue.add(text(stats.OutAwayWinVenue, "✈️", "Venue with most away wins", in.AwayWinVenue))

	deeper := Section{Title: SectionDeeper}
	if best, ok := in.HighestWinPct(); ok {
		pct := best.Pct
		deeper.add(&Item{
			Key:   stats.OutHighestWinPctTeam,
			Icon:  "🏅",
			Label: "Highest win percentage",
			Kind:  KindText,
			Text:  fmt.Sprintf("%s (%.2f%%)", best.Team, best.Pct),
			Value: &pct,
		})
	}
	deeper.add(number(stats.OutTossLostPct, "😅", "Toss winner lost match", KindPercent, in.TossLostPct))
	if in.TeamAppearances != nil {
		deeper.add(&Item{
			Key:   stats.OutTeamAppearances,
			Icon:  "📊",
			Label: "Teams with most appearances",
			Kind:  KindChart,
			Chart: AppearanceChart(in.TeamAppearances),
		})
	}
	deeper.add(number(stats.OutBatWinPct, "⚖", "Batting first wins", KindPercent, in.BatWinPct))
	deeper.add(number(stats.OutFieldWinPct, "⚖", "Fielding first wins", KindPercent, in.FieldWinPct))

	extra := Section{Title: SectionAdditional}
	if in.CityFieldingSuccess != nil {
		extra.add(&Item{
			Key:   stats.OutCityFieldingSuccess,
			Icon:  "🧩",
			Label: "Cities where fielding gives higher chance of winning",
			Kind:  KindTable,
			Table: CityTable(in.CityFieldingSuccess),
		})
	}
	if in.TopPairs != nil {
		extra.add(&Item{
			Key:   stats.OutTopPairs,
			Icon:  "🤝",
			Label: "Most frequent opponent pairs",
			Kind:  KindTable,
			Table: PairTable(in.TopPairs),
		})
	}
	if in.HomeWinVenues != nil {
		extra.add(&Item{
			Key:   stats.OutHomeWinVenues,
			Icon:  "🏠",
			Label: "Teams dominating in home city (approx)",
			Kind:  KindTable,
			Table: CountTable("Venue", "Home wins", in.HomeWinVenues),
		})
	}

	for _, s := range []Section{key, venue, deeper, extra} {
		if len(s.Items) > 0 {
			rep.Sections = append(rep.Sections, s)
		}
	}
	return rep
}

func (s *Section) add(it *Item) {
	if it != nil {
		s.Items = append(s.Items, *it)
	}
}

func text(key, icon, label string, v *string) *Item {
	if v == nil {
		return nil
	}
	return &Item{Key: key, Icon: icon, Label: label, Kind: KindText, Text: *v}
}

func number(key, icon, label string, kind Kind, v *float64) *Item {
	if v == nil {
		return nil
	}
	val := *v
	it := &Item{Key: key, Icon: icon, Label: label, Kind: kind, Value: &val}
	it.Text = it.Display()
	return it
}

// AppearanceChart charts per-team appearance counts.
func AppearanceChart(counts []stats.Count) *Chart {
	c := &Chart{XAxis: "Team", YAxis: "Matches played", Bars: make([]Bar, 0, len(counts))}
	for _, e := range counts {
		c.Bars = append(c.Bars, Bar{Label: e.Value, Value: float64(e.Count)})
	}
	return c
}

func CityTable(rates []stats.CityRate) *Table {
	t := &Table{Columns: []string{"City", "Matches", "Fielding success %"}, Rows: [][]string{}}
	for _, r := range rates {
		t.Rows = append(t.Rows, []string{r.City, strconv.Itoa(r.Matches), FormatNumber(r.Pct)})
	}
	return t
}

func PairTable(pairs []stats.PairCount) *Table {
	t := &Table{Columns: []string{"Team 1", "Team 2", "Matches"}, Rows: [][]string{}}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []string{p.Team1, p.Team2, strconv.Itoa(p.Matches)})
	}
	return t
}

func CountTable(valueLabel, countLabel string, counts []stats.Count) *Table {
	t := &Table{Columns: []string{valueLabel, countLabel}, Rows: [][]string{}}
	for _, c := range counts {
		t.Rows = append(t.Rows, []string{c.Value, strconv.Itoa(c.Count)})
	}
	return t
}

func WinPctTable(teams []stats.TeamWinPct) *Table {
	t := &Table{Columns: []string{"Team", "Played", "Wins", "Win %"}, Rows: [][]string{}}
	for _, w := range teams {
		t.Rows = append(t.Rows, []string{w.Team, strconv.Itoa(w.Played), strconv.Itoa(w.Wins), FormatNumber(w.Pct)})
	}
	return t
}

// FormatNumber prints whole numbers without decimals and everything else
// with two.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%.2f", v)
}
