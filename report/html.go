package report

import (
	"fmt"
	"html/template"
	"io"
)

// Page is everything the dashboard shows on one screen.
type Page struct {
	Title       string
	Filename    string
	Message     string // shown after a successful upload
	Prompt      string // shown when nothing was uploaded yet
	Error       string
	Preview     *Table
	Report      *Report
	UploadPath  string // form action; empty hides the form
	MaxUploadMB int64
}

// HTMLRenderer renders a report as a standalone page without an upload form.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(w io.Writer, r *Report) error {
	return RenderPage(w, Page{Title: r.Title, Report: r, Error: r.Error})
}

// RenderPage writes the dashboard page.
func RenderPage(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"barWidth": func(c *Chart, v float64) string {
		top := c.Max()
		if top <= 0 {
			return "0%"
		}
		return fmt.Sprintf("%.1f%%", v/top*100)
	},
	"num": FormatNumber,
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f8fafc; color: #0f172a; }
        main { max-width: 1100px; margin: 0 auto; padding: 24px; }
        h1 { margin-top: 0; }
        h2 { border-bottom: 1px solid #cbd5e1; padding-bottom: 4px; margin-top: 32px; }
        .card { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.08); margin-bottom: 16px; }
        .info { background: #eff6ff; border-left: 4px solid #3b82f6; }
        .success { background: #ecfdf5; border-left: 4px solid #10b981; }
        .error { background: #fef2f2; border-left: 4px solid #ef4444; }
        table { border-collapse: collapse; width: 100%; font-size: 14px; }
        th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #e2e8f0; }
        th { background: #f1f5f9; }
        .scalar { margin: 6px 0; }
        .scalar b { color: #2563eb; }
        .bar-row { display: flex; align-items: center; margin: 3px 0; font-size: 13px; }
        .bar-label { width: 260px; flex-shrink: 0; }
        .bar-track { flex-grow: 1; background: #f1f5f9; border-radius: 3px; }
        .bar { background: #4f46e5; height: 16px; border-radius: 3px; }
        .bar-value { width: 60px; text-align: right; }
    </style>
</head>
<body>
<main>
    <h1>🏏 {{.Title}}</h1>
    {{if .UploadPath}}
    <form class="card" action="{{.UploadPath}}" method="post" enctype="multipart/form-data">
        <label for="file">📤 Upload IPL matches.csv file{{if .MaxUploadMB}} (max {{.MaxUploadMB}} MB){{end}}</label><br><br>
        <input type="file" id="file" name="file" accept=".csv,.yaml,.yml,.json">
        <button type="submit">Analyze</button>
    </form>
    {{end}}
    {{with .Prompt}}<div class="card info">👆 {{.}}</div>{{end}}
    {{with .Message}}<div class="card success">✅ {{.}}{{with $.Filename}} ({{.}}){{end}}</div>{{end}}
    {{with .Preview}}
    <div class="card">
        <table>
            <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
            {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
        </table>
    </div>
    {{end}}
    {{with .Report}}
    {{range .Sections}}
    <h2>{{.Title}}</h2>
    <div class="card">
        {{range .Items}}
        {{if eq .Kind "table"}}
        <p><b>{{.Icon}} {{.Label}}</b></p>
        <table>
            <tr>{{range .Table.Columns}}<th>{{.}}</th>{{end}}</tr>
            {{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
        </table>
        {{else if eq .Kind "chart"}}
        <p><b>{{.Icon}} {{.Label}}</b></p>
        {{$chart := .Chart}}
        {{range $chart.Bars}}
        <div class="bar-row">
            <span class="bar-label">{{.Label}}</span>
            <span class="bar-track"><div class="bar" style="width: {{barWidth $chart .Value}}"></div></span>
            <span class="bar-value">{{num .Value}}</span>
        </div>
        {{end}}
        {{else}}
        <p class="scalar">{{.Icon}} <em>{{.Label}}:</em> <b>{{.Display}}</b></p>
        {{end}}
        {{end}}
    </div>
    {{end}}
    {{end}}
    {{with .Error}}<div class="card error">❌ {{.}}</div>{{end}}
</main>
</body>
</html>
`
