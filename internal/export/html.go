// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/storage"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports comparisons as a standalone HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a comparison to HTML format.
func (e *HTMLExporter) Export(c *storage.Comparison) ([]byte, error) {
	if err := validate(c); err != nil {
		return nil, err
	}

	res := c.Result()
	title := c.DisplayTitle()
	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("    <meta name=\"generator\" content=\"" + Generator + "\">\n")
	if !c.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", c.CreatedAt.Format(time.RFC3339)))
	}
	sb.WriteString("    <style>\n")
	sb.WriteString(StyleSheet)
	sb.WriteString("    </style>\n")
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", theme))
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString(e.renderHeader(c, res.Summary))
	sb.WriteString("        <main>\n")
	sb.WriteString(RenderTable(res, true))
	sb.WriteString("        </main>\n")

	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>%s</strong> on %s</p>\n",
		Generator, e.options.now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString(script)
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderHeader(c *storage.Comparison, s diff.Summary) string {
	left, right := sideNames(c)

	var sb strings.Builder
	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(c.DisplayTitle())))
	sb.WriteString("            <div class=\"metadata\">\n")
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Left:</strong> %s</span>\n", html.EscapeString(left)))
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Right:</strong> %s</span>\n", html.EscapeString(right)))
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Options:</strong> %s</span>\n", optionsLabel(c.Options)))
	if !c.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Created:</strong> %s</span>\n", formatTimestamp(c.CreatedAt)))
	}
	sb.WriteString("                <button class=\"theme-toggle\" onclick=\"toggleTheme()\" title=\"Toggle theme\">[Theme]</button>\n")
	sb.WriteString("            </div>\n")
	sb.WriteString(RenderSummary(s))
	sb.WriteString("        </header>\n")
	return sb.String()
}

// RenderSummary renders the added/removed/unchanged counters.
func RenderSummary(s diff.Summary) string {
	var sb strings.Builder
	sb.WriteString("            <div class=\"summary\">\n")
	sb.WriteString(fmt.Sprintf("                <span class=\"count added\">Added: %d</span>\n", s.Added))
	sb.WriteString(fmt.Sprintf("                <span class=\"count removed\">Removed: %d</span>\n", s.Removed))
	sb.WriteString(fmt.Sprintf("                <span class=\"count unchanged\">Unchanged: %d</span>\n", s.Unchanged))
	sb.WriteString("            </div>\n")
	return sb.String()
}

// RenderTable renders the result as an HTML table, one row per line, with
// paired removed/added lines highlighted at character level. All content is
// escaped.
func RenderTable(res diff.Result, lineNumbers bool) string {
	if len(res.Lines) == 0 {
		return "            <p class=\"empty\">No lines to compare.</p>\n"
	}

	spans := make(map[*diff.Line][]diff.Span)
	for _, p := range res.Pairs() {
		if p.Left != nil && p.Right != nil && p.Left.Kind == diff.KindRemoved {
			all := diff.Spans(p.Left.Content, p.Right.Content)
			spans[p.Left] = diff.OldSide(all)
			spans[p.Right] = diff.NewSide(all)
		}
	}

	var sb strings.Builder
	sb.WriteString("            <table class=\"diff\">\n")
	sb.WriteString("                <tbody>\n")
	for i := range res.Lines {
		line := &res.Lines[i]
		sb.WriteString(fmt.Sprintf("                    <tr class=\"line-%s\">", line.Kind))
		if lineNumbers {
			sb.WriteString("<td class=\"num\">" + lineNumber(line.OldLine) + "</td>")
			sb.WriteString("<td class=\"num\">" + lineNumber(line.NewLine) + "</td>")
		}
		sb.WriteString("<td class=\"marker\">" + html.EscapeString(line.Kind.Prefix()) + "</td>")
		sb.WriteString("<td class=\"content\">" + renderContent(line.Content, spans[line]) + "</td>")
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("                </tbody>\n")
	sb.WriteString("            </table>\n")
	return sb.String()
}

func renderContent(content string, spans []diff.Span) string {
	if len(spans) == 0 {
		return html.EscapeString(content)
	}
	var sb strings.Builder
	for _, s := range spans {
		text := html.EscapeString(s.Text)
		switch s.Op {
		case diff.SpanDelete:
			sb.WriteString("<del>" + text + "</del>")
		case diff.SpanInsert:
			sb.WriteString("<ins>" + text + "</ins>")
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}

func lineNumber(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// =============================================================================
// EMBEDDED CSS AND SCRIPT
// =============================================================================

// StyleSheet styles diff tables. Shared with the web form.
const StyleSheet = `        * { margin: 0; padding: 0; box-sizing: border-box; }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", "Source Code Pro", monospace;
        }

        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-muted: #565f89;
            --border-color: #414868;
            --added-bg: rgba(158, 206, 106, 0.15);
            --added-strong: rgba(158, 206, 106, 0.40);
            --removed-bg: rgba(247, 118, 142, 0.15);
            --removed-strong: rgba(247, 118, 142, 0.40);
            --accent-green: #9ece6a;
            --accent-red: #f7768e;
        }

        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f8fa;
            --bg-tertiary: #e1e4e8;
            --text-primary: #24292e;
            --text-muted: #6a737d;
            --border-color: #e1e4e8;
            --added-bg: #e6ffed;
            --added-strong: #acf2bd;
            --removed-bg: #ffeef0;
            --removed-strong: #fdb8c0;
            --accent-green: #22863a;
            --accent-red: #d73a49;
        }

        body {
            font-family: var(--font-sans);
            font-size: 15px;
            line-height: 1.5;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
        }

        .container {
            max-width: 1100px;
            margin: 0 auto;
            background: var(--bg-secondary);
            border-radius: 12px;
            overflow: hidden;
        }

        .header { padding: 24px 32px; background: var(--bg-tertiary); }
        .header h1 { font-size: 24px; margin-bottom: 12px; }
        .metadata { display: flex; flex-wrap: wrap; gap: 16px; font-size: 14px; align-items: center; }
        .summary { display: flex; gap: 16px; margin-top: 12px; font-weight: 600; }
        .count.added { color: var(--accent-green); }
        .count.removed { color: var(--accent-red); }
        .count.unchanged { color: var(--text-muted); }

        .theme-toggle {
            margin-left: auto;
            background: none;
            border: 1px solid var(--border-color);
            color: var(--text-primary);
            border-radius: 6px;
            padding: 2px 8px;
            cursor: pointer;
        }

        table.diff {
            width: 100%;
            border-collapse: collapse;
            font-family: var(--font-mono);
            font-size: 13px;
        }
        table.diff td { padding: 0 8px; vertical-align: top; white-space: pre-wrap; word-break: break-all; }
        table.diff td.num { width: 1%; text-align: right; color: var(--text-muted); user-select: none; }
        table.diff td.marker { width: 1%; user-select: none; }
        tr.line-added { background: var(--added-bg); }
        tr.line-removed { background: var(--removed-bg); }
        tr.line-added ins { background: var(--added-strong); text-decoration: none; }
        tr.line-removed del { background: var(--removed-strong); text-decoration: none; }

        .empty { padding: 24px 32px; color: var(--text-muted); }
        .footer { padding: 16px 32px; font-size: 13px; color: var(--text-muted); }
`

const script = `    <script>
        function toggleTheme() {
            const body = document.body;
            const next = body.classList.contains('dark-theme') ? 'light' : 'dark';
            body.classList.remove('dark-theme', 'light-theme');
            body.classList.add(next + '-theme');
            localStorage.setItem('theme', next);
        }

        document.addEventListener('DOMContentLoaded', function() {
            const saved = localStorage.getItem('theme');
            if (saved) {
                document.body.classList.remove('dark-theme', 'light-theme');
                document.body.classList.add(saved + '-theme');
            }
        });
    </script>
`
