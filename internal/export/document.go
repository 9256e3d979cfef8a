// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"time"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/storage"
)

// Generator is recorded in exported documents.
const Generator = "textdiff"

// Document is the structured form shared by the JSON and YAML exporters.
type Document struct {
	ID        string       `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string       `json:"title" yaml:"title"`
	LeftName  string       `json:"left_name" yaml:"left_name"`
	RightName string       `json:"right_name" yaml:"right_name"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
	Exported  time.Time    `json:"exported" yaml:"exported"`
	Generator string       `json:"generator" yaml:"generator"`
	Options   diff.Options `json:"options" yaml:"options"`
	Summary   diff.Summary `json:"summary" yaml:"summary"`
	Lines     []diff.Line  `json:"lines" yaml:"lines"`
	Unified   string       `json:"unified,omitempty" yaml:"unified,omitempty"`
	LeftText  string       `json:"left_text,omitempty" yaml:"left_text,omitempty"`
	RightText string       `json:"right_text,omitempty" yaml:"right_text,omitempty"`
}

// NewDocument recomputes the comparison and builds its exported form.
func NewDocument(c *storage.Comparison, opts *Options) Document {
	if opts == nil {
		opts = DefaultOptions()
	}
	res := c.Result()
	left, right := sideNames(c)

	context := opts.Context
	if context < 0 {
		context = len(res.Lines)
	}

	doc := Document{
		ID:        c.ID,
		Title:     c.DisplayTitle(),
		LeftName:  c.LeftName,
		RightName: c.RightName,
		CreatedAt: c.CreatedAt,
		Exported:  opts.now(),
		Generator: Generator,
		Options:   c.Options,
		Summary:   res.Summary,
		Lines:     res.Lines,
		Unified:   diff.FormatUnified(res, left, right, context),
	}
	if doc.Lines == nil {
		doc.Lines = []diff.Line{}
	}
	if opts.IncludeTexts {
		doc.LeftText = c.LeftText
		doc.RightText = c.RightText
	}
	return doc
}
