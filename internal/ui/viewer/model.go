// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/ui/components"
	"github.com/jeranaias/textdiff/internal/ui/styles"
)

// statusTimeout is how long transient status messages stay visible.
const statusTimeout = 3 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// TextsChangedMsg replaces both texts, for example after a file on disk was
// rewritten. The diff is recomputed with the current options.
type TextsChangedMsg struct {
	Left  string
	Right string
}

// ErrorMsg shows an error in the status bar without quitting.
type ErrorMsg struct {
	Err error
}

// clearStatusMsg clears a transient status message. The sequence number
// drops stale timers.
type clearStatusMsg struct {
	seq int
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	LeftName  string
	RightName string

	Diff   diff.Options
	Viewer components.ViewerOptions

	// Context restored when toggling from all lines back to hunks.
	DefaultContext int

	Theme  *styles.Theme
	KeyMap KeyMap

	// Clipboard writes text to the system clipboard. Defaults to
	// atotto/clipboard.
	Clipboard func(string) error
}

// Model is the interactive diff viewer.
type Model struct {
	left, right string
	leftName    string
	rightName   string

	diffOpts       diff.Options
	defaultContext int
	result         diff.Result

	theme     *styles.Theme
	keys      KeyMap
	clipboard func(string) error

	diffViewer *components.DiffViewer
	statusBar  *components.StatusBar
	viewport   viewport.Model
	help       help.Model

	width, height int
	ready         bool
	showHelp      bool
	statusSeq     int
}

// New creates a viewer for two texts.
func New(left, right string, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.PlainTheme()
	}
	keys := opts.KeyMap
	if len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	defaultContext := opts.DefaultContext
	if defaultContext <= 0 {
		defaultContext = diff.DefaultContext
	}

	viewerOpts := opts.Viewer
	if viewerOpts.Title == "" && (opts.LeftName != "" || opts.RightName != "") {
		viewerOpts.Title = opts.LeftName + " -> " + opts.RightName
	}

	result := diff.Compute(left, right, opts.Diff)

	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.FullDesc = theme.ShortcutDesc

	m := Model{
		left:           left,
		right:          right,
		leftName:       opts.LeftName,
		rightName:      opts.RightName,
		diffOpts:       opts.Diff,
		defaultContext: defaultContext,
		result:         result,
		theme:          theme,
		keys:           keys,
		clipboard:      copyFn,
		diffViewer:     components.NewDiffViewer(result, theme, viewerOpts),
		statusBar:      components.NewStatusBar(theme),
		viewport:       viewport.New(80, 20),
		help:           h,
	}
	m.syncStatus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.syncStatus()
		return m, cmd

	case TextsChangedMsg:
		m.left, m.right = msg.Left, msg.Right
		m.recompute()
		return m, m.setStatus("Reloaded", false)

	case ErrorMsg:
		return m, m.setStatus(msg.Err.Error(), true)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusBar.ClearMessage()
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	parts := []string{}
	if header := m.diffViewer.Header(); header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, m.viewport.View())
	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	}
	parts = append(parts, m.statusBar.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Result returns the diff currently displayed.
func (m Model) Result() diff.Result {
	return m.result
}

// DiffOptions returns the comparison options currently in effect.
func (m Model) DiffOptions() diff.Options {
	return m.diffOpts
}

// ViewerOptions returns the rendering options currently in effect.
func (m Model) ViewerOptions() components.ViewerOptions {
	return m.diffViewer.Options()
}

// YOffset returns the first visible body row.
func (m Model) YOffset() int {
	return m.viewport.YOffset
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.diffViewer.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.help.Width = m.width
	m.layout()
	m.refresh()
	return m, nil
}

// layout sizes the viewport to the space left by the header, help and
// status bar.
func (m *Model) layout() {
	reserved := 1 // status bar
	if header := m.diffViewer.Header(); header != "" {
		reserved += lipgloss.Height(header)
	}
	if m.showHelp {
		reserved += lipgloss.Height(m.help.View(m.keys))
	}

	m.viewport.Width = max(1, m.width)
	m.viewport.Height = max(1, m.height-reserved)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.layout()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.NextChange):
		return m.jumpChange(true)

	case key.Matches(msg, m.keys.PrevChange):
		return m.jumpChange(false)

	case key.Matches(msg, m.keys.ToggleWhitespace):
		m.diffOpts.IgnoreWhitespace = !m.diffOpts.IgnoreWhitespace
		m.recompute()
		return m, m.setStatus(onOff("Ignore whitespace", m.diffOpts.IgnoreWhitespace), false)

	case key.Matches(msg, m.keys.ToggleCase):
		m.diffOpts.IgnoreCase = !m.diffOpts.IgnoreCase
		m.recompute()
		return m, m.setStatus(onOff("Ignore case", m.diffOpts.IgnoreCase), false)

	case key.Matches(msg, m.keys.ToggleSplit):
		opts := m.diffViewer.Options()
		if opts.Mode == components.ModeSplit {
			opts.Mode = components.ModeInline
		} else {
			opts.Mode = components.ModeSplit
		}
		m.setViewerOptions(opts)
		return m, nil

	case key.Matches(msg, m.keys.ToggleNumbers):
		opts := m.diffViewer.Options()
		opts.LineNumbers = !opts.LineNumbers
		m.setViewerOptions(opts)
		return m, nil

	case key.Matches(msg, m.keys.ToggleContext):
		opts := m.diffViewer.Options()
		if opts.Context < 0 {
			opts.Context = m.defaultContext
		} else {
			m.defaultContext = opts.Context
			opts.Context = -1
		}
		m.setViewerOptions(opts)
		return m, nil

	case key.Matches(msg, m.keys.MoreContext), key.Matches(msg, m.keys.LessContext):
		opts := m.diffViewer.Options()
		if opts.Context < 0 {
			return m, nil
		}
		if key.Matches(msg, m.keys.MoreContext) {
			opts.Context++
		} else if opts.Context > 0 {
			opts.Context--
		}
		m.setViewerOptions(opts)
		return m, m.setStatus(fmt.Sprintf("Context: %d lines", opts.Context), false)

	case key.Matches(msg, m.keys.Copy):
		return m.copyUnified()
	}

	return m.handleNavigationKeys(msg)
}

func (m Model) handleNavigationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
	}
	m.syncStatus()
	return m, nil
}

// jumpChange scrolls to the next or previous run of changed lines.
func (m Model) jumpChange(forward bool) (tea.Model, tea.Cmd) {
	starts := m.diffViewer.ChangeStarts()
	if len(starts) == 0 {
		return m, m.setStatus("No changes", false)
	}

	current := m.viewport.YOffset
	target := -1
	if forward {
		for _, s := range starts {
			if s > current {
				target = s
				break
			}
		}
	} else {
		for i := len(starts) - 1; i >= 0; i-- {
			if starts[i] < current {
				target = starts[i]
				break
			}
		}
	}
	if target < 0 {
		if forward {
			return m, m.setStatus("Last change", false)
		}
		return m, m.setStatus("First change", false)
	}

	m.viewport.SetYOffset(target)
	m.syncStatus()
	return m, nil
}

func (m Model) copyUnified() (tea.Model, tea.Cmd) {
	if m.result.Identical() {
		return m, m.setStatus("No differences to copy", false)
	}

	lines := m.diffViewer.Options().Context
	if lines < 0 {
		lines = m.defaultContext
	}
	text := diff.FormatUnified(m.result, m.leftName, m.rightName, lines)
	if err := m.clipboard(text); err != nil {
		return m, m.setStatus("Failed to copy: "+err.Error(), true)
	}
	return m, m.setStatus("Copied unified diff to clipboard", false)
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// recompute rebuilds the whole result after the texts or options changed.
func (m *Model) recompute() {
	m.result = diff.Compute(m.left, m.right, m.diffOpts)
	m.diffViewer.SetResult(m.result)
	m.layout()
	m.refresh()
}

func (m *Model) setViewerOptions(opts components.ViewerOptions) {
	m.diffViewer.SetOptions(opts)
	m.layout()
	m.refresh()
}

// refresh re-renders the body into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.diffViewer.Body())
	m.syncStatus()
}

func (m *Model) syncStatus() {
	opts := m.diffViewer.Options()
	m.statusBar.Mode = opts.Mode
	m.statusBar.Context = opts.Context
	m.statusBar.IgnoreWhitespace = m.diffOpts.IgnoreWhitespace
	m.statusBar.IgnoreCase = m.diffOpts.IgnoreCase
	m.statusBar.Summary = m.result.Summary
	m.statusBar.SetPosition(m.viewport.YOffset, m.viewport.TotalLineCount())
}

// setStatus shows a transient message and schedules its removal.
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.statusBar.SetMessage(msg, isError)
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func onOff(label string, on bool) string {
	if on {
		return label + ": on"
	}
	return label + ": off"
}

// =============================================================================
// PROGRAM
// =============================================================================

// Run starts the viewer on the alternate screen and blocks until the user
// quits or ctx is cancelled. updates, when non-nil, delivers messages such
// as TextsChangedMsg and ErrorMsg while the program runs.
func Run(ctx context.Context, m Model, updates <-chan tea.Msg, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, opts...)
	p := tea.NewProgram(m, opts...)

	if updates != nil {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-updates:
					if !ok {
						return
					}
					p.Send(msg)
				}
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
