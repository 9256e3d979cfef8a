// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/textdiff/internal/diff"
)

func TestStatusBar_Widths(t *testing.T) {
	for _, width := range []int{40, 80, 140} {
		s := NewStatusBar(nil)
		s.SetWidth(width)
		s.Summary = diff.Summary{Added: 1200, Removed: 3}
		s.SetPosition(9, 100)

		view := s.View()
		if got := lipgloss.Width(view); got != width {
			t.Errorf("width %d: rendered %d columns: %q", width, got, view)
		}
		if !strings.Contains(view, "+1,200 -3") {
			t.Errorf("width %d: counts missing from %q", width, view)
		}
		if !strings.Contains(view, "10/100") {
			t.Errorf("width %d: position missing from %q", width, view)
		}
	}
}

func TestStatusBar_Options(t *testing.T) {
	s := NewStatusBar(nil)
	s.SetWidth(80)
	s.IgnoreWhitespace = true
	s.IgnoreCase = true
	s.Context = 3
	s.Mode = ModeSplit

	view := s.View()
	for _, want := range []string{"SPLIT", "-w -i U3"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() = %q, missing %q", view, want)
		}
	}
}

func TestStatusBar_Message(t *testing.T) {
	s := NewStatusBar(nil)
	s.SetWidth(80)

	s.SetMessage("Copied to clipboard", false)
	if !strings.Contains(s.View(), "[OK] Copied to clipboard") {
		t.Errorf("View() = %q", s.View())
	}

	s.SetMessage("clipboard unavailable", true)
	if !strings.Contains(s.View(), "[X] clipboard unavailable") {
		t.Errorf("View() = %q", s.View())
	}

	s.ClearMessage()
	if strings.Contains(s.View(), "clipboard") {
		t.Error("message still shown after ClearMessage")
	}
}

func TestStatusBar_Shortcuts(t *testing.T) {
	s := NewStatusBar(nil)
	s.SetWidth(140)
	if !strings.Contains(s.View(), "next/prev") {
		t.Errorf("wide View() = %q, want shortcuts", s.View())
	}

	s.ShowShortcuts = false
	if strings.Contains(s.View(), "next/prev") {
		t.Error("shortcuts shown when disabled")
	}
}

func TestStatusBar_EmptyPosition(t *testing.T) {
	s := NewStatusBar(nil)
	if got := s.renderPosition(); got != "0/0" {
		t.Errorf("renderPosition() = %q, want 0/0", got)
	}
}
