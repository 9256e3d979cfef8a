// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestPlainTheme(t *testing.T) {
	theme := PlainTheme()

	if theme.HasColor() {
		t.Fatal("PlainTheme should not emit colour")
	}
	got := theme.Added.Render("+ line")
	if got != "+ line" {
		t.Errorf("Added.Render = %q, want plain text", got)
	}
	if strings.Contains(theme.RenderError("boom"), "\x1b[") {
		t.Error("RenderError emitted escape sequences")
	}
}

func TestNewTheme_ForcedProfile(t *testing.T) {
	profile := termenv.TrueColor
	theme := NewTheme(ThemeOptions{Output: &bytes.Buffer{}, Profile: &profile, Mode: "dark"})

	if !theme.HasColor() {
		t.Fatal("expected a colour profile")
	}
	if !theme.IsDark {
		t.Error("Mode dark should set IsDark")
	}
	got := theme.Removed.Render("x")
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Removed.Render = %q, want ANSI colour", got)
	}
}

func TestNewTheme_LightMode(t *testing.T) {
	profile := termenv.ANSI256
	theme := NewTheme(ThemeOptions{Output: &bytes.Buffer{}, Profile: &profile, Mode: "light"})

	if theme.IsDark {
		t.Error("Mode light should clear IsDark")
	}
	// Light and dark variants differ, so the rendered sequences differ too.
	dark := NewTheme(ThemeOptions{Output: &bytes.Buffer{}, Profile: &profile, Mode: "dark"})
	if theme.Added.Render("x") == dark.Added.Render("x") {
		t.Error("light and dark themes rendered identically")
	}
}

func TestNewTheme_NonTTYOutputIsPlain(t *testing.T) {
	// A bytes.Buffer is not a terminal, so detection yields no colour.
	theme := NewTheme(ThemeOptions{Output: &bytes.Buffer{}})
	if got := theme.Added.Render("x"); got != "x" {
		t.Errorf("Render to non-terminal = %q, want %q", got, "x")
	}
}

func TestStatusIndicators(t *testing.T) {
	for name, v := range map[string]string{
		"success": StatusIndicators.Success,
		"error":   StatusIndicators.Error,
		"info":    StatusIndicators.Info,
	} {
		for _, r := range v {
			if r > 127 {
				t.Errorf("%s indicator %q is not ASCII", name, v)
			}
		}
	}
}
