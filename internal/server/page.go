// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"html/template"
	"net/http"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/export"
	"go.uber.org/zap"
)

// formPage is the data behind the comparison form.
type formPage struct {
	Text1            string
	Text2            string
	IgnoreWhitespace bool
	IgnoreCase       bool
	LineNumbers      bool

	Error   string
	HasDiff bool
	Summary template.HTML
	Table   template.HTML

	Style template.CSS
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>textdiff</title>
    <style>
{{.Style}}
        form.compare { padding: 24px 32px; display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
        form.compare textarea { width: 100%; height: 280px; font-family: var(--font-mono); font-size: 13px;
            background: var(--bg-secondary); color: var(--text-primary); border: 1px solid var(--border-color); padding: 8px; }
        form.compare .options { grid-column: 1 / span 2; display: flex; gap: 24px; align-items: center; flex-wrap: wrap; }
        form.compare button, form.compare a.button { padding: 6px 16px; border: 1px solid var(--border-color);
            background: var(--bg-tertiary); color: var(--text-primary); cursor: pointer; text-decoration: none; }
        .error { padding: 12px 32px; color: var(--accent-red); font-weight: 600; }
    </style>
</head>
<body class="dark-theme">
    <div class="container">
        <header class="header">
            <h1>Text Diff</h1>
            <div class="metadata">Compare two texts line by line.</div>
        </header>
        <form class="compare" method="post" action="/">
            <label>Original text
                <textarea name="text1" spellcheck="false">{{.Text1}}</textarea>
            </label>
            <label>Modified text
                <textarea name="text2" spellcheck="false">{{.Text2}}</textarea>
            </label>
            <div class="options">
                <label><input type="checkbox" name="ignore_whitespace" value="1"{{if .IgnoreWhitespace}} checked{{end}}> Ignore whitespace</label>
                <label><input type="checkbox" name="ignore_case" value="1"{{if .IgnoreCase}} checked{{end}}> Ignore case</label>
                <label><input type="checkbox" name="line_numbers" value="1"{{if .LineNumbers}} checked{{end}}> Line numbers</label>
                <button type="submit">Compare</button>
                <a class="button" href="/?sample=1">Load sample</a>
                <a class="button" href="/">Clear</a>
            </div>
        </form>
{{- if .Error}}
        <p class="error">{{.Error}}</p>
{{- end}}
{{- if .HasDiff}}
        <section class="header">
{{.Summary}}
        </section>
        <main>
{{.Table}}
        </main>
{{- end}}
    </div>
</body>
</html>
`))

// newFormPage returns an empty form with line numbers on.
func newFormPage() formPage {
	return formPage{
		LineNumbers: true,
		Style:       template.CSS(export.StyleSheet),
	}
}

// setResult fills the summary and table. RenderTable and RenderSummary escape
// all user content.
func (p *formPage) setResult(res diff.Result) {
	p.HasDiff = true
	p.Summary = template.HTML(export.RenderSummary(res.Summary))
	p.Table = template.HTML(export.RenderTable(res, p.LineNumbers))
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, page); err != nil {
		s.logger.Error("render form page failed", zap.Error(err))
	}
}
