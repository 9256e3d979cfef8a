// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves the comparison form and a JSON API over HTTP.
//
// # Endpoints
//
//   - GET  /                              - comparison form (?sample=1 loads the demo pair)
//   - POST /                              - form submission, renders the result table
//   - POST /api/diff                      - JSON comparison
//   - POST /api/diff/unified              - unified diff as text/plain
//   - GET  /api/comparisons               - saved comparisons, newest first
//   - POST /api/comparisons               - save a comparison
//   - GET  /api/comparisons/{id}          - one saved comparison with its lines
//   - DELETE /api/comparisons/{id}        - delete a saved comparison
//   - GET  /api/comparisons/{id}/export   - export as json, yaml, markdown or html
//   - GET  /health                        - health check
//
// The history routes exist only when the server has a store.
//
// # Middleware
//
// Requests pass through panic recovery, zap request logging, security
// headers, a CORS allow-list, per-client rate limiting and a body size cap.
// Comparisons whose LCS table would exceed limits.max_table_cells are
// rejected with 413.
//
// # Usage
//
//	srv := server.New(cfg, logger, store)
//	if err := srv.Start(ctx); err != nil {
//		logger.Fatal("serve", zap.Error(err))
//	}
package server
