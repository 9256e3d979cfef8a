// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/textdiff/internal/diff"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setup(t *testing.T, left, right string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	l := filepath.Join(dir, "left.txt")
	r := filepath.Join(dir, "right.txt")
	writeFile(t, l, left)
	writeFile(t, r, right)
	return l, r
}

// run starts w.Run and returns a stop function that cancels it, closes the
// watcher and waits for Run to return.
func run(t *testing.T, w *Watcher) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return")
		}
		assert.NoError(t, w.Close())
	}
}

func TestNew_MissingFile(t *testing.T) {
	l, _ := setup(t, "a", "b")

	_, err := New(l, filepath.Join(t.TempDir(), "missing.txt"), Options{})
	assert.Error(t, err)
}

func TestNew_Directory(t *testing.T) {
	l, _ := setup(t, "a", "b")

	_, err := New(l, t.TempDir(), Options{})
	assert.ErrorContains(t, err, "is a directory")
}

func TestCompare(t *testing.T) {
	l, r := setup(t, "a\nb", "a\nc")

	w, err := New(l, r, Options{})
	require.NoError(t, err)
	defer w.Close()

	res, err := w.Compare()
	require.NoError(t, err)
	assert.Equal(t, diff.Summary{Added: 1, Removed: 1, Unchanged: 1}, res.Summary)

	left, right := w.Paths()
	assert.True(t, filepath.IsAbs(left))
	assert.Equal(t, "right.txt", filepath.Base(right))
}

func TestCompare_TooLarge(t *testing.T) {
	l, r := setup(t, "a\nb", "a\nc")

	w, err := New(l, r, Options{Limits: diff.Limits{MaxTableCells: 4}})
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Compare()
	assert.ErrorIs(t, err, diff.ErrTooLarge)
}

func TestRun_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	l, r := setup(t, "a\nb", "a\nb")

	changes := make(chan diff.Result, 10)
	reloads := make(chan [2]string, 10)
	w, err := New(l, r, Options{
		Debounce: 50 * time.Millisecond,
		OnChange: func(res diff.Result) { changes <- res },
		OnReload: func(left, right string) { reloads <- [2]string{left, right} },
	})
	require.NoError(t, err)
	stop := run(t, w)
	defer stop()

	writeFile(t, r, "a\nb\nc")

	select {
	case res := <-changes:
		assert.Equal(t, diff.Summary{Added: 1, Unchanged: 2}, res.Summary)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	texts := <-reloads
	assert.Equal(t, "a\nb", texts[0])
	assert.Equal(t, "a\nb\nc", texts[1])
}

func TestRun_DebouncesBursts(t *testing.T) {
	l, r := setup(t, "x", "x")

	changes := make(chan diff.Result, 10)
	w, err := New(l, r, Options{
		Debounce: 200 * time.Millisecond,
		OnChange: func(res diff.Result) { changes <- res },
	})
	require.NoError(t, err)
	stop := run(t, w)
	defer stop()

	for _, content := range []string{"x\n1", "x\n1\n2", "x\n1\n2\n3"} {
		writeFile(t, l, content)
	}

	select {
	case res := <-changes:
		assert.Equal(t, diff.Summary{Removed: 3, Unchanged: 1}, res.Summary)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case res := <-changes:
		t.Fatalf("unexpected second reload: %v", res.Summary)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	l, r := setup(t, "x", "x")

	changes := make(chan diff.Result, 10)
	w, err := New(l, r, Options{
		Debounce: 20 * time.Millisecond,
		OnChange: func(res diff.Result) { changes <- res },
	})
	require.NoError(t, err)
	stop := run(t, w)
	defer stop()

	writeFile(t, filepath.Join(filepath.Dir(l), "unrelated.txt"), "noise")

	select {
	case <-changes:
		t.Fatal("reload for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRun_ReportsErrorsAndKeepsGoing(t *testing.T) {
	l, r := setup(t, "a", "a")

	errs := make(chan error, 10)
	changes := make(chan diff.Result, 10)
	w, err := New(l, r, Options{
		Debounce: 20 * time.Millisecond,
		Limits:   diff.Limits{MaxInputBytes: 4},
		OnChange: func(res diff.Result) { changes <- res },
		OnError:  func(err error) { errs <- err },
	})
	require.NoError(t, err)
	stop := run(t, w)
	defer stop()

	writeFile(t, r, "too long")
	select {
	case err := <-errs:
		assert.ErrorIs(t, err, diff.ErrTooLarge)
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported")
	}

	writeFile(t, r, "b")
	select {
	case res := <-changes:
		assert.Equal(t, 1, res.Summary.Added)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher stopped after an error")
	}
}

func TestRun_ReturnsWhenClosed(t *testing.T) {
	l, r := setup(t, "a", "b")

	w, err := New(l, r, Options{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}
