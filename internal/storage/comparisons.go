// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when no comparison matches an ID.
	ErrNotFound = errors.New("comparison not found")

	// ErrAmbiguousID is returned when an ID prefix matches several comparisons.
	ErrAmbiguousID = errors.New("ambiguous comparison id")
)

// maxTitleRunes bounds generated titles.
const maxTitleRunes = 60

// =============================================================================
// COMPARISON TYPE
// =============================================================================

// Comparison is a saved pair of texts with the options they were compared with.
type Comparison struct {
	ID        string       `json:"id" yaml:"id"`
	Title     string       `json:"title" yaml:"title"`
	LeftName  string       `json:"left_name" yaml:"left_name"`
	RightName string       `json:"right_name" yaml:"right_name"`
	LeftText  string       `json:"left_text" yaml:"left_text"`
	RightText string       `json:"right_text" yaml:"right_text"`
	Options   diff.Options `json:"options" yaml:"options"`
	Summary   diff.Summary `json:"summary" yaml:"summary"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
}

// NewComparison computes the summary for two texts and returns an unsaved
// comparison.
func NewComparison(leftName, rightName, leftText, rightText string, opts diff.Options) *Comparison {
	res := diff.Compute(leftText, rightText, opts)
	return &Comparison{
		LeftName:  leftName,
		RightName: rightName,
		LeftText:  leftText,
		RightText: rightText,
		Options:   opts,
		Summary:   res.Summary,
	}
}

// Result recomputes the diff of the stored texts.
func (c *Comparison) Result() diff.Result {
	return diff.Compute(c.LeftText, c.RightText, c.Options)
}

// DisplayTitle returns Title, or "left vs right" when no title was given.
func (c *Comparison) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	left, right := c.LeftName, c.RightName
	if left == "" {
		left = "left"
	}
	if right == "" {
		right = "right"
	}
	return util.TruncateRunes(left+" vs "+right, maxTitleRunes)
}

// ComparisonMeta is the listing view of a comparison, without texts.
type ComparisonMeta struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	LeftName  string       `json:"left_name"`
	RightName string       `json:"right_name"`
	Summary   diff.Summary `json:"summary"`
	CreatedAt time.Time    `json:"created_at"`
}

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite comparison history.
type Store struct {
	db   *sql.DB
	path string

	// MaxComparisons prunes the oldest rows after each Save (0 = unlimited).
	MaxComparisons int
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage: empty database path")
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	// This also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save inserts a comparison and returns its ID. A missing ID, title or
// creation time is filled in. The summary is always recomputed.
func (s *Store) Save(ctx context.Context, c *Comparison) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Title == "" {
		c.Title = c.DisplayTitle()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.Summary = c.Result().Summary

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comparisons (
			id, title, left_name, right_name, left_text, right_text,
			ignore_whitespace, ignore_case, added, removed, unchanged, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.LeftName, c.RightName, c.LeftText, c.RightText,
		boolToInt(c.Options.IgnoreWhitespace), boolToInt(c.Options.IgnoreCase),
		c.Summary.Added, c.Summary.Removed, c.Summary.Unchanged,
		c.CreatedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("save comparison: %w", err)
	}

	if s.MaxComparisons > 0 {
		if _, err := s.Prune(ctx, s.MaxComparisons); err != nil {
			return c.ID, err
		}
	}
	return c.ID, nil
}

// Prune deletes all but the newest keep comparisons and returns how many
// were removed. keep <= 0 removes nothing.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM comparisons WHERE id NOT IN (
			SELECT id FROM comparisons ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune comparisons: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune comparisons: %w", err)
	}
	return int(n), nil
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load returns the comparison with the given ID. A unique ID prefix is also
// accepted.
func (s *Store) Load(ctx context.Context, id string) (*Comparison, error) {
	id, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, left_name, right_name, left_text, right_text,
			ignore_whitespace, ignore_case, added, removed, unchanged, created_at
		FROM comparisons WHERE id = ?`, id)

	var (
		c          Comparison
		ignoreWS   int
		ignoreCase int
		created    int64
	)
	err = row.Scan(&c.ID, &c.Title, &c.LeftName, &c.RightName, &c.LeftText, &c.RightText,
		&ignoreWS, &ignoreCase, &c.Summary.Added, &c.Summary.Removed, &c.Summary.Unchanged, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load comparison: %w", err)
	}
	c.Options = diff.Options{IgnoreWhitespace: ignoreWS != 0, IgnoreCase: ignoreCase != 0}
	c.CreatedAt = time.Unix(0, created).UTC()
	return &c, nil
}

// resolve expands an ID prefix to a full ID.
func (s *Store) resolve(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM comparisons WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2`,
		id, len(id), id)
	if err != nil {
		return "", fmt.Errorf("load comparison: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var found string
		if err := rows.Scan(&found); err != nil {
			return "", fmt.Errorf("load comparison: %w", err)
		}
		if found == id {
			return found, nil
		}
		ids = append(ids, found)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("load comparison: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns the newest comparisons first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]ComparisonMeta, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, left_name, right_name, added, removed, unchanged, created_at
		FROM comparisons ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()

	metas := []ComparisonMeta{}
	for rows.Next() {
		var (
			m       ComparisonMeta
			created int64
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.LeftName, &m.RightName,
			&m.Summary.Added, &m.Summary.Removed, &m.Summary.Unchanged, &created); err != nil {
			return nil, fmt.Errorf("list comparisons: %w", err)
		}
		m.CreatedAt = time.Unix(0, created).UTC()
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	return metas, nil
}

// Count returns the number of stored comparisons.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comparisons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comparisons: %w", err)
	}
	return n, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a comparison by ID or unique ID prefix.
func (s *Store) Delete(ctx context.Context, id string) error {
	id, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM comparisons WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete comparison: %w", err)
	}
	return nil
}

// =============================================================================
// LIST FORMATTING
// =============================================================================

// FormatList formats comparisons as a plain text table.
func FormatList(metas []ComparisonMeta) string {
	if len(metas) == 0 {
		return "No saved comparisons."
	}

	var sb strings.Builder
	sb.WriteString(util.PadWidth("ID", 8) + "  " + util.PadWidth("Created", 16) + "  " +
		util.PadWidth("Changes", 14) + "  Title\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, m := range metas {
		id := m.ID
		if len(id) > 8 {
			id = id[:8]
		}
		sb.WriteString(util.PadWidth(id, 8) + "  " +
			util.PadWidth(m.CreatedAt.Local().Format("2006-01-02 15:04"), 16) + "  " +
			util.PadWidth(m.Summary.String(), 14) + "  " +
			util.TruncateRunes(m.Title, 40) + "\n")
	}
	return sb.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
