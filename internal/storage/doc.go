// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists comparison history in SQLite.
//
// A Comparison stores both texts, the options and the summary counts. The
// per-line result is never stored: Comparison.Result recomputes it, so a
// stored comparison always agrees with the current engine.
//
// The database uses the pure Go modernc.org/sqlite driver and a single
// connection, so a Store is safe for concurrent use.
package storage
