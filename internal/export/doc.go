// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes comparisons to shareable formats.
//
// # Supported Formats
//
//   - JSON: the full Document (summary, numbered lines, unified diff)
//   - YAML: the same Document as YAML
//   - Markdown: summary table and a fenced diff block
//   - HTML: standalone page with coloured rows and intra-line highlights
//
// Every exporter recomputes the diff from the comparison's texts, so exports
// always match the engine.
//
// # Usage
//
//	exporter, err := export.ForFormat("html", nil)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(comparison, exporter, &export.Options{OutputDir: "reports"})
package export
