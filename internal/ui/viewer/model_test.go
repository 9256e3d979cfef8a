// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/ui/components"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestModel builds a sized model with a recording clipboard.
func newTestModel(t *testing.T, left, right string, height int) (Model, *[]string) {
	t.Helper()
	var copied []string
	m := New(left, right, Options{
		LeftName:  "old",
		RightName: "new",
		Viewer:    components.DefaultViewerOptions(),
		Clipboard: func(s string) error {
			copied = append(copied, s)
			return nil
		},
	})
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: height}), &copied
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func numbered(n int, replace map[int]string) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%d", i+1)
		if r, ok := replace[i+1]; ok {
			lines[i] = r
		}
	}
	return strings.Join(lines, "\n")
}

func TestModel_LoadingBeforeResize(t *testing.T) {
	m := New("a", "b", Options{})
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, "a\nb", "a\nc", 12)
	view := m.View()

	assert.Contains(t, view, "old -> new")
	assert.Contains(t, view, "Added: 1")
	assert.Contains(t, view, "- b")
	assert.Contains(t, view, "+ c")
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), 12)
}

func TestModel_ToggleWhitespace(t *testing.T) {
	m, _ := newTestModel(t, "a \nb", "a\nb", 10)
	require.False(t, m.Result().Identical())

	m = send(t, m, runes("w"))
	assert.True(t, m.DiffOptions().IgnoreWhitespace)
	assert.True(t, m.Result().Identical())
	assert.Contains(t, m.View(), "Ignore whitespace: on")

	m = send(t, m, runes("w"))
	assert.False(t, m.Result().Identical())
}

func TestModel_ToggleCase(t *testing.T) {
	m, _ := newTestModel(t, "Hello", "hello", 10)
	require.False(t, m.Result().Identical())

	m = send(t, m, runes("c"))
	assert.True(t, m.DiffOptions().IgnoreCase)
	assert.True(t, m.Result().Identical())
}

func TestModel_ToggleSplitAndNumbers(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", 10)

	m = send(t, m, runes("s"))
	assert.Equal(t, components.ModeSplit, m.ViewerOptions().Mode)
	assert.Contains(t, m.View(), "│")

	m = send(t, m, runes("s"))
	assert.Equal(t, components.ModeInline, m.ViewerOptions().Mode)

	m = send(t, m, runes("n"))
	assert.False(t, m.ViewerOptions().LineNumbers)
}

func TestModel_ContextToggle(t *testing.T) {
	m, _ := newTestModel(t, numbered(20, nil), numbered(20, map[int]string{10: "ten"}), 30)
	require.Equal(t, -1, m.ViewerOptions().Context)

	m = send(t, m, runes("u"))
	assert.Equal(t, diff.DefaultContext, m.ViewerOptions().Context)
	assert.Contains(t, m.View(), "@@ -7,7 +7,7 @@")

	m = send(t, m, runes("+"))
	assert.Equal(t, diff.DefaultContext+1, m.ViewerOptions().Context)

	m = send(t, m, runes("-"))
	m = send(t, m, runes("-"))
	assert.Equal(t, diff.DefaultContext-1, m.ViewerOptions().Context)

	// Back to all lines, then hunks again with the last context.
	m = send(t, m, runes("u"))
	assert.Equal(t, -1, m.ViewerOptions().Context)
	m = send(t, m, runes("u"))
	assert.Equal(t, diff.DefaultContext-1, m.ViewerOptions().Context)
}

func TestModel_ContextAdjustIgnoredWhenShowingAll(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", 10)
	m = send(t, m, runes("+"))
	assert.Equal(t, -1, m.ViewerOptions().Context)
}

func TestModel_NextPrevChange(t *testing.T) {
	left := numbered(30, nil)
	right := numbered(30, map[int]string{5: "X", 20: "Y"})
	// Height 10 leaves 7 body rows under the title and summary.
	m, _ := newTestModel(t, left, right, 10)
	require.Equal(t, 0, m.YOffset())

	m = send(t, m, runes("]"))
	assert.Equal(t, 4, m.YOffset())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 20, m.YOffset())

	m = send(t, m, runes("]"))
	assert.Equal(t, 20, m.YOffset())
	assert.Contains(t, m.View(), "Last change")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 4, m.YOffset())

	m = send(t, m, runes("["))
	assert.Equal(t, 4, m.YOffset())
	assert.Contains(t, m.View(), "First change")
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t, numbered(30, nil), numbered(30, nil), 10)

	m = send(t, m, runes("j"))
	assert.Equal(t, 1, m.YOffset())
	m = send(t, m, runes("k"))
	assert.Equal(t, 0, m.YOffset())

	m = send(t, m, runes("G"))
	assert.Equal(t, 30-7, m.YOffset())
	m = send(t, m, runes("g"))
	assert.Equal(t, 0, m.YOffset())
}

func TestModel_Copy(t *testing.T) {
	m, copied := newTestModel(t, "a\nb", "a\nc", 10)

	m = send(t, m, runes("y"))
	require.Len(t, *copied, 1)
	assert.Equal(t, diff.FormatUnified(m.Result(), "old", "new", diff.DefaultContext), (*copied)[0])
	assert.Contains(t, m.View(), "Copied unified diff")
}

func TestModel_CopyIdentical(t *testing.T) {
	m, copied := newTestModel(t, "same", "same", 10)

	m = send(t, m, runes("y"))
	assert.Empty(t, *copied)
	assert.Contains(t, m.View(), "No differences to copy")
}

func TestModel_CopyFailure(t *testing.T) {
	m := New("a", "b", Options{
		Clipboard: func(string) error { return errors.New("no clipboard") },
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 10})

	m = send(t, m, runes("y"))
	assert.Contains(t, m.View(), "[X] Failed to copy: no clipboard")
}

func TestModel_StatusClears(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", 10)
	m = send(t, m, runes("w"))
	require.Contains(t, m.View(), "Ignore whitespace")

	// A stale timer leaves the newer message alone.
	m = send(t, m, clearStatusMsg{seq: m.statusSeq - 1})
	assert.Contains(t, m.View(), "Ignore whitespace")

	m = send(t, m, clearStatusMsg{seq: m.statusSeq})
	assert.NotContains(t, m.View(), "Ignore whitespace")
}

func TestModel_TextsChanged(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", 10)
	require.False(t, m.Result().Identical())

	m = send(t, m, TextsChangedMsg{Left: "same", Right: "same"})
	assert.True(t, m.Result().Identical())
	assert.Contains(t, m.View(), "Reloaded")
}

func TestModel_ErrorMsg(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", 10)
	m = send(t, m, ErrorMsg{Err: errors.New("read failed")})
	assert.Contains(t, m.View(), "read failed")
}

func TestModel_Help(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", 20)
	assert.NotContains(t, m.View(), "ignore whitespace")

	m = send(t, m, runes("?"))
	assert.Contains(t, m.View(), "ignore whitespace")
	assert.LessOrEqual(t, len(strings.Split(m.View(), "\n")), 20)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", 10)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestKeyMap_Help(t *testing.T) {
	k := DefaultKeyMap()
	assert.NotEmpty(t, k.ShortHelp())
	for _, group := range k.FullHelp() {
		for _, b := range group {
			assert.NotEmpty(t, b.Help().Key)
			assert.NotEmpty(t, b.Help().Desc)
		}
	}
}
