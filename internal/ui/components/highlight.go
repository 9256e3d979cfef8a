// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlighter colours single lines of source code for the terminal.
type highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// newHighlighter returns nil when no lexer matches language or the profile
// has no colour. language may be a lexer name ("go") or a file name
// ("main.go").
func newHighlighter(language string, profile termenv.Profile, dark bool) *highlighter {
	if language == "" || profile == termenv.Ascii {
		return nil
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Match(language)
	}
	if lexer == nil {
		return nil
	}

	styleName := "monokai"
	if !dark {
		styleName = "github"
	}
	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	var formatterName string
	switch profile {
	case termenv.TrueColor:
		formatterName = "terminal16m"
	case termenv.ANSI256:
		formatterName = "terminal256"
	default:
		formatterName = "terminal"
	}
	formatter := formatters.Get(formatterName)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: formatter,
	}
}

// Line highlights one line. On any failure the line is returned unchanged.
func (h *highlighter) Line(line string) string {
	if h == nil || line == "" {
		return line
	}

	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return line
	}
	// Lexers append a newline token to unterminated input.
	return strings.ReplaceAll(buf.String(), "\n", "")
}

// LanguageName returns the canonical lexer name for a language or file name,
// or "" when chroma does not know it.
func LanguageName(language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Match(language)
	}
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
