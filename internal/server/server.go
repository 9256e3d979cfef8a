// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/textdiff/internal/config"
	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/export"
	"github.com/jeranaias/textdiff/internal/storage"
)

// ============================================================================
// CONSTANTS
// ============================================================================

var (
	// Version is reported by /health.
	Version = "dev"
)

const (
	// defaultListLimit is used by GET /api/comparisons without ?limit.
	defaultListLimit = 50

	// bodyOverhead leaves room for JSON framing and form encoding around two
	// maximum-size texts.
	bodyOverhead = 64 << 10
)

// ============================================================================
// SERVER
// ============================================================================

// Server serves the comparison form and the JSON API.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *storage.Store
	router  *http.ServeMux
	limiter *RateLimiter
}

// New creates a server. A nil store disables the /api/comparisons routes; a
// nil logger discards logs.
func New(cfg *config.Config, logger *zap.Logger, store *storage.Store) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		router:  http.NewServeMux(),
		limiter: NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst),
	}
	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes.
func (s *Server) setupRoutes() {
	// Form
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("POST /{$}", s.handleCompareForm)

	// JSON API
	s.router.HandleFunc("POST /api/diff", s.handleDiff)
	s.router.HandleFunc("POST /api/diff/unified", s.handleUnified)

	// History
	if s.store != nil {
		s.router.HandleFunc("GET /api/comparisons", s.handleListComparisons)
		s.router.HandleFunc("POST /api/comparisons", s.handleSaveComparison)
		s.router.HandleFunc("GET /api/comparisons/{id}", s.handleGetComparison)
		s.router.HandleFunc("DELETE /api/comparisons/{id}", s.handleDeleteComparison)
		s.router.HandleFunc("GET /api/comparisons/{id}/export", s.handleExportComparison)
	}

	s.router.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(s.logger),
		LoggingMiddleware(s.logger),
		SecurityHeadersMiddleware(),
		CORSMiddleware(DefaultCORSConfig(s.cfg.Server.AllowedOrigins)),
		RateLimitMiddleware(s.limiter, s.logger),
		BodyLimitMiddleware(s.maxBodyBytes()),
	)(s.router)
}

func (s *Server) maxBodyBytes() int64 {
	if s.cfg.Limits.MaxInputBytes <= 0 {
		return 0
	}
	return 2*s.cfg.Limits.MaxInputBytes + bodyOverhead
}

// ============================================================================
// REQUEST AND RESPONSE TYPES
// ============================================================================

// DiffRequest is the body of POST /api/diff and POST /api/diff/unified.
type DiffRequest struct {
	Text1   string       `json:"text1"`
	Text2   string       `json:"text2"`
	Options diff.Options `json:"options"`

	// Context is the number of unchanged lines around each change in the
	// unified output. Nil uses the configured default; negative means all.
	Context *int `json:"context,omitempty"`

	// Unified asks /api/diff to include the unified text.
	Unified bool `json:"unified,omitempty"`

	LeftName  string `json:"left_name,omitempty"`
	RightName string `json:"right_name,omitempty"`
}

// DiffResponse is the body returned by POST /api/diff.
type DiffResponse struct {
	Summary   diff.Summary `json:"summary"`
	Identical bool         `json:"identical"`
	Lines     []diff.Line  `json:"lines"`
	Unified   string       `json:"unified,omitempty"`
}

// SaveRequest is the body of POST /api/comparisons.
type SaveRequest struct {
	Title     string       `json:"title,omitempty"`
	LeftName  string       `json:"left_name,omitempty"`
	RightName string       `json:"right_name,omitempty"`
	Text1     string       `json:"text1"`
	Text2     string       `json:"text2"`
	Options   diff.Options `json:"options"`
}

// SaveResponse is returned by POST /api/comparisons.
type SaveResponse struct {
	ID      string       `json:"id"`
	Summary diff.Summary `json:"summary"`
}

// ComparisonResponse is a stored comparison with its recomputed lines.
type ComparisonResponse struct {
	*storage.Comparison
	Lines []diff.Line `json:"lines"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	History bool   `json:"history"`
}

func (r *DiffRequest) names() (string, string) {
	left, right := r.LeftName, r.RightName
	if left == "" {
		left = "text1"
	}
	if right == "" {
		right = "text2"
	}
	return left, right
}

// ============================================================================
// FORM HANDLERS
// ============================================================================

// handleIndex handles GET /. ?sample=1 fills the form with the demo pair.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := newFormPage()
	if r.URL.Query().Get("sample") != "" {
		page.Text1 = diff.SampleLeft
		page.Text2 = diff.SampleRight
	}
	s.renderPage(w, http.StatusOK, page)
}

// handleCompareForm handles POST / from the form.
func (s *Server) handleCompareForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		status := http.StatusBadRequest
		if isTooLarge(err) {
			status = http.StatusRequestEntityTooLarge
		}
		page := newFormPage()
		page.Error = "Could not read the form: " + err.Error()
		s.renderPage(w, status, page)
		return
	}

	page := newFormPage()
	page.Text1 = r.PostForm.Get("text1")
	page.Text2 = r.PostForm.Get("text2")
	page.IgnoreWhitespace = r.PostForm.Get("ignore_whitespace") != ""
	page.IgnoreCase = r.PostForm.Get("ignore_case") != ""
	page.LineNumbers = r.PostForm.Get("line_numbers") != ""

	// Two blank texts show no result.
	if strings.TrimSpace(page.Text1) == "" && strings.TrimSpace(page.Text2) == "" {
		s.renderPage(w, http.StatusOK, page)
		return
	}

	opts := diff.Options{IgnoreWhitespace: page.IgnoreWhitespace, IgnoreCase: page.IgnoreCase}
	if err := s.checkSize(page.Text1, page.Text2, opts); err != nil {
		page.Error = err.Error()
		s.renderPage(w, http.StatusRequestEntityTooLarge, page)
		return
	}

	page.setResult(diff.Compute(page.Text1, page.Text2, opts))
	s.renderPage(w, http.StatusOK, page)
}

// ============================================================================
// DIFF API HANDLERS
// ============================================================================

// handleDiff handles POST /api/diff.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.checkSize(req.Text1, req.Text2, req.Options); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	res := diff.Compute(req.Text1, req.Text2, req.Options)
	resp := DiffResponse{
		Summary:   res.Summary,
		Identical: res.Identical(),
		Lines:     res.Lines,
	}
	if resp.Lines == nil {
		resp.Lines = []diff.Line{}
	}
	if req.Unified {
		left, right := req.names()
		resp.Unified = diff.FormatUnified(res, left, right, s.contextLines(req.Context))
	}

	s.logger.Debug("diff computed",
		zap.Int("added", res.Summary.Added),
		zap.Int("removed", res.Summary.Removed),
		zap.Int("unchanged", res.Summary.Unchanged),
	)
	writeJSON(w, http.StatusOK, resp)
}

// handleUnified handles POST /api/diff/unified. Identical texts produce an
// empty body.
func (s *Server) handleUnified(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.checkSize(req.Text1, req.Text2, req.Options); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	res := diff.Compute(req.Text1, req.Text2, req.Options)
	left, right := req.names()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, diff.FormatUnified(res, left, right, s.contextLines(req.Context)))
}

// ============================================================================
// HISTORY HANDLERS
// ============================================================================

// handleListComparisons handles GET /api/comparisons?limit=N.
func (s *Server) handleListComparisons(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	metas, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.internalError(w, "list comparisons", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comparisons": metas})
}

// handleSaveComparison handles POST /api/comparisons.
func (s *Server) handleSaveComparison(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.checkSize(req.Text1, req.Text2, req.Options); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	c := storage.NewComparison(req.LeftName, req.RightName, req.Text1, req.Text2, req.Options)
	c.Title = req.Title
	id, err := s.store.Save(r.Context(), c)
	if err != nil {
		s.internalError(w, "save comparison", err)
		return
	}

	s.logger.Info("comparison saved", zap.String("id", id), zap.String("client_ip", GetClientIP(r)))
	writeJSON(w, http.StatusCreated, SaveResponse{ID: id, Summary: c.Summary})
}

// handleGetComparison handles GET /api/comparisons/{id}. Unique ID prefixes
// are accepted.
func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadComparison(w, r)
	if !ok {
		return
	}
	lines := c.Result().Lines
	if lines == nil {
		lines = []diff.Line{}
	}
	writeJSON(w, http.StatusOK, ComparisonResponse{Comparison: c, Lines: lines})
}

// handleDeleteComparison handles DELETE /api/comparisons/{id}.
func (s *Server) handleDeleteComparison(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadComparison(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), c.ID); err != nil {
		s.internalError(w, "delete comparison", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportComparison handles GET /api/comparisons/{id}/export?format=F.
func (s *Server) handleExportComparison(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	opts := export.DefaultOptions()
	opts.Context = s.cfg.Diff.Context
	if s.cfg.UI.Theme == "light" {
		opts.Theme = "light"
	}
	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, ok := s.loadComparison(w, r)
	if !ok {
		return
	}
	data, err := exporter.Export(c)
	if err != nil {
		s.internalError(w, "export comparison", err)
		return
	}

	short := c.ID
	if len(short) > 8 {
		short = short[:8]
	}
	w.Header().Set("Content-Type", exporter.MimeType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"comparison_%s%s\"", short, exporter.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) loadComparison(w http.ResponseWriter, r *http.Request) (*storage.Comparison, bool) {
	c, err := s.store.Load(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "comparison not found")
		return nil, false
	case errors.Is(err, storage.ErrAmbiguousID):
		writeError(w, http.StatusConflict, "comparison ID prefix is ambiguous")
		return nil, false
	case err != nil:
		s.internalError(w, "load comparison", err)
		return nil, false
	}
	return c, true
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		History: s.store != nil,
	})
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully,
// letting in-flight requests finish within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       seconds(s.cfg.Server.ReadTimeoutSecs),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      seconds(s.cfg.Server.WriteTimeoutSecs),
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("server started", zap.String("addr", ln.Addr().String()), zap.String("version", Version))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	timeout := seconds(s.cfg.Server.ShutdownTimeoutSecs)
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

// checkSize rejects inputs over the configured byte and table-cell limits.
func (s *Server) checkSize(text1, text2 string, opts diff.Options) error {
	return diff.Limits{
		MaxInputBytes: s.cfg.Limits.MaxInputBytes,
		MaxTableCells: s.cfg.Limits.MaxTableCells,
	}.Check(text1, text2, opts)
}

func (s *Server) contextLines(requested *int) int {
	if requested != nil {
		return *requested
	}
	return s.cfg.Diff.Context
}

// decodeJSON reads a JSON body into v. On failure it writes the error
// response and returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, op+" failed")
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response of the form {"error": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
