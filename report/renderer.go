package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Renderer writes a report in one output format.
type Renderer interface {
	Render(w io.Writer, r *Report) error
}

// Formats lists the accepted --format values.
var Formats = []string{"text", "json", "yaml", "csv", "html"}

// NewRenderer returns the renderer for format.
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return TextRenderer{BarWidth: 40}, nil
	case "json":
		return JSONRenderer{Indent: "  "}, nil
	case "yaml", "yml":
		return YAMLRenderer{}, nil
	case "csv":
		return CSVRenderer{}, nil
	case "html":
		return HTMLRenderer{}, nil
	}
	return nil, fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(Formats, ", "))
}

type JSONRenderer struct {
	Indent string
}

func (j JSONRenderer) Render(w io.Writer, r *Report) error {
	return WriteJSON(w, r, j.Indent)
}

// WriteJSON encodes v, indented when indent is non-empty.
func WriteJSON(w io.Writer, v any, indent string) error {
	encoder := json.NewEncoder(w)
	if indent != "" {
		encoder.SetIndent("", indent)
	}
	return encoder.Encode(v)
}

type YAMLRenderer struct{}

func (YAMLRenderer) Render(w io.Writer, r *Report) error {
	return WriteYAML(w, r)
}

// WriteYAML encodes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}

// CSVRenderer writes scalar items as key,label,value rows followed by one
// block per table or chart.
type CSVRenderer struct{}

func (CSVRenderer) Render(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	cw.Write([]string{"key", "label", "value"})
	for _, it := range r.Items() {
		if it.IsScalar() {
			cw.Write([]string{it.Key, it.Label, it.Display()})
		}
	}

	for _, it := range r.Items() {
		var t *Table
		switch {
		case it.Table != nil:
			t = it.Table
		case it.Chart != nil:
			t = it.Chart.Table()
		default:
			continue
		}
		cw.Write(nil)
		cw.Write([]string{"# " + it.Key})
		WriteTableCSV(cw, t)
	}
	if r.Error != "" {
		cw.Write(nil)
		cw.Write([]string{"error", r.Error})
	}

	cw.Flush()
	return cw.Error()
}

// WriteTableCSV writes a header row and the table rows. The caller flushes.
func WriteTableCSV(cw *csv.Writer, t *Table) {
	cw.Write(t.Columns)
	for _, row := range t.Rows {
		cw.Write(row)
	}
}

// Table flattens a chart into label/value rows.
func (c *Chart) Table() *Table {
	t := &Table{Columns: []string{c.XAxis, c.YAxis}, Rows: make([][]string, 0, len(c.Bars))}
	for _, b := range c.Bars {
		t.Rows = append(t.Rows, []string{b.Label, FormatNumber(b.Value)})
	}
	return t
}

// Max returns the largest bar value.
func (c *Chart) Max() float64 {
	var m float64
	for _, b := range c.Bars {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}
