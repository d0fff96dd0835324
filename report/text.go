package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// TextRenderer writes a coloured terminal report. Colours follow
// color.NoColor.
type TextRenderer struct {
	BarWidth int
}

func (t TextRenderer) Render(w io.Writer, r *Report) error {
	title := color.New(color.FgCyan, color.Bold)
	heading := color.New(color.FgBlue, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	title.Fprintf(w, "🏏 %s\n", r.Title)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	if r.Source != "" {
		fmt.Fprintf(w, "📄 Source: %s\n", r.Source)
	}
	fmt.Fprintf(w, "📋 Matches: %d\n", r.Records)

	for _, s := range r.Sections {
		fmt.Fprintln(w)
		heading.Fprintln(w, s.Title)
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, it := range s.Items {
			t.WriteItem(w, it)
		}
	}

	if r.Error != "" {
		fmt.Fprintln(w)
		red.Fprintf(w, "❌ %s\n", r.Error)
	}
	return nil
}

// WriteItem writes a single item.
func (t TextRenderer) WriteItem(w io.Writer, it Item) {
	value := color.New(color.FgGreen, color.Bold)

	switch it.Kind {
	case KindTable:
		fmt.Fprintf(w, "%s %s:\n", it.Icon, it.Label)
		WriteTableText(w, it.Table)
	case KindChart:
		fmt.Fprintf(w, "%s %s:\n", it.Icon, it.Label)
		t.WriteBars(w, it.Chart)
	default:
		fmt.Fprintf(w, "%s %s: ", it.Icon, it.Label)
		value.Fprintln(w, it.Display())
	}
}

// WriteBars draws a horizontal bar chart scaled to BarWidth.
func (t TextRenderer) WriteBars(w io.Writer, c *Chart) {
	bar := color.New(color.FgYellow)
	width := t.BarWidth
	if width <= 0 {
		width = 40
	}
	if c == nil || len(c.Bars) == 0 {
		fmt.Fprintln(w, "   (no data)")
		return
	}

	labelWidth := 0
	for _, b := range c.Bars {
		if n := utf8.RuneCountInString(b.Label); n > labelWidth {
			labelWidth = n
		}
	}
	top := c.Max()
	for _, b := range c.Bars {
		n := 0
		if top > 0 {
			n = int(math.Round(b.Value / top * float64(width)))
		}
		if n == 0 && b.Value > 0 {
			n = 1
		}
		fmt.Fprintf(w, "   %-*s ", labelWidth, b.Label)
		bar.Fprint(w, strings.Repeat("█", n))
		fmt.Fprintf(w, " %s\n", FormatNumber(b.Value))
	}
}

// WriteTableText writes an aligned plain-text table.
func WriteTableText(w io.Writer, t *Table) {
	if t == nil || len(t.Rows) == 0 {
		fmt.Fprintln(w, "   (no data)")
		return
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if n := utf8.RuneCountInString(cell); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	total := 0
	for _, n := range widths {
		total += n + 2
	}

	writeRow(w, t.Columns, widths)
	fmt.Fprintf(w, "   %s\n", strings.Repeat("-", total))
	for _, row := range t.Rows {
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	fmt.Fprint(w, "  ")
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		fmt.Fprintf(w, " %-*s ", widths[i], cell)
	}
	fmt.Fprintln(w)
}
