// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-runs a comparison whenever one of two files changes.
//
// Bursts of file system events are debounced into a single reload. Read and
// limit errors are reported through Options.OnError and the watcher keeps
// running, so a half-written file does not end a session.
package watch
