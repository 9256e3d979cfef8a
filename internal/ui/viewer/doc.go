// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package viewer is the interactive Bubble Tea diff viewer.
//
// The viewer scrolls a rendered diff in a viewport, jumps between changes,
// and toggles comparison options at runtime. Toggling an option recomputes
// the whole result; nothing is patched incrementally. TextsChangedMsg lets
// a file watcher push new texts into a running program.
package viewer
