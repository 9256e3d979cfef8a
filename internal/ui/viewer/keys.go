// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewer

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the interactive viewer.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	NextChange key.Binding
	PrevChange key.Binding

	ToggleWhitespace key.Binding
	ToggleCase       key.Binding
	ToggleSplit      key.Binding
	ToggleContext    key.Binding
	ToggleNumbers    key.Binding
	MoreContext      key.Binding
	LessContext      key.Binding

	Copy key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings. Navigation supports both
// standard terminal keys and vim-like shortcuts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u", "b"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d", " ", "f"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "go to bottom"),
		),
		NextChange: key.NewBinding(
			key.WithKeys("]", "tab"),
			key.WithHelp("]/Tab", "next change"),
		),
		PrevChange: key.NewBinding(
			key.WithKeys("[", "shift+tab"),
			key.WithHelp("[/S-Tab", "previous change"),
		),
		ToggleWhitespace: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "ignore whitespace"),
		),
		ToggleCase: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "ignore case"),
		),
		ToggleSplit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "split/inline"),
		),
		ToggleContext: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "hunks/all lines"),
		),
		ToggleNumbers: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "line numbers"),
		),
		MoreContext: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more context"),
		),
		LessContext: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "less context"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy unified diff"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/Esc", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextChange, k.ToggleSplit, k.Copy, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		// Changes
		{k.NextChange, k.PrevChange, k.ToggleContext, k.MoreContext, k.LessContext},
		// Comparison
		{k.ToggleWhitespace, k.ToggleCase, k.ToggleSplit, k.ToggleNumbers},
		// Actions
		{k.Copy, k.Help, k.Quit},
	}
}
