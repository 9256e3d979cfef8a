// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/textdiff/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete textdiff configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Comparison defaults
	Diff DiffConfig `toml:"diff" json:"diff"`

	// Terminal rendering
	UI UIConfig `toml:"ui" json:"ui"`

	// HTTP service
	Server ServerConfig `toml:"server" json:"server"`

	// Input size limits
	Limits LimitsConfig `toml:"limits" json:"limits"`

	// Comparison history
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Logging
	Log LogConfig `toml:"log" json:"log"`
}

// DiffConfig holds the default comparison options.
type DiffConfig struct {
	IgnoreWhitespace bool `toml:"ignore_whitespace" json:"ignore_whitespace"`
	IgnoreCase       bool `toml:"ignore_case" json:"ignore_case"`

	// Context is the number of unchanged lines around each change in unified
	// output. Negative means all lines.
	Context int `toml:"context" json:"context"`
}

// UIConfig holds terminal rendering settings.
type UIConfig struct {
	Theme       string `toml:"theme" json:"theme"`               // auto, dark, light
	Mode        string `toml:"mode" json:"mode"`                 // inline, split
	Color       string `toml:"color" json:"color"`               // auto, always, never
	LineNumbers bool   `toml:"line_numbers" json:"line_numbers"` // show the line number gutter
	Highlight   bool   `toml:"highlight" json:"highlight"`       // syntax highlight unchanged lines
	TabWidth    int    `toml:"tab_width" json:"tab_width"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr                string   `toml:"addr" json:"addr"`
	AllowedOrigins      []string `toml:"allowed_origins" json:"allowed_origins"`
	RateLimit           float64  `toml:"rate_limit" json:"rate_limit"` // requests per second per client
	RateBurst           int      `toml:"rate_burst" json:"rate_burst"`
	ReadTimeoutSecs     int      `toml:"read_timeout_secs" json:"read_timeout_secs"`
	WriteTimeoutSecs    int      `toml:"write_timeout_secs" json:"write_timeout_secs"`
	ShutdownTimeoutSecs int      `toml:"shutdown_timeout_secs" json:"shutdown_timeout_secs"`
}

// LimitsConfig bounds the size of a comparison.
type LimitsConfig struct {
	// MaxTableCells caps (m+1)*(n+1) for m and n compared lines.
	MaxTableCells int `toml:"max_table_cells" json:"max_table_cells"`

	// MaxInputBytes caps each input text.
	MaxInputBytes int64 `toml:"max_input_bytes" json:"max_input_bytes"`
}

// StorageConfig holds comparison history settings.
type StorageConfig struct {
	Enabled        bool   `toml:"enabled" json:"enabled"`
	Path           string `toml:"path" json:"path"` // empty means <config dir>/history.db
	MaxComparisons int    `toml:"max_comparisons" json:"max_comparisons"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`   // debug, info, warn, error
	Format string `toml:"format" json:"format"` // console, json
}

// =============================================================================
// DEFAULTS
// =============================================================================

// CurrentVersion is the configuration format version written by Save.
const CurrentVersion = "1"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Diff: DiffConfig{
			Context: 3,
		},
		UI: UIConfig{
			Theme:       "auto",
			Mode:        "inline",
			Color:       "auto",
			LineNumbers: true,
			Highlight:   false,
			TabWidth:    4,
		},
		Server: ServerConfig{
			Addr:                "127.0.0.1:8787",
			AllowedOrigins:      []string{"http://localhost", "http://127.0.0.1"},
			RateLimit:           10,
			RateBurst:           20,
			ReadTimeoutSecs:     15,
			WriteTimeoutSecs:    30,
			ShutdownTimeoutSecs: 10,
		},
		Limits: LimitsConfig{
			MaxTableCells: 25_000_000,
			MaxInputBytes: 5 << 20,
		},
		Storage: StorageConfig{
			Enabled:        true,
			MaxComparisons: 500,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the textdiff configuration directory. TEXTDIFF_HOME
// overrides the default of ~/.textdiff.
func ConfigDir() (string, error) {
	if dir := os.Getenv("TEXTDIFF_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".textdiff"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// HistoryPath returns the history database path, honouring storage.path.
func (c *Config) HistoryPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the configuration. The TOML file wins over the JSON file, and
// defaults fill anything neither sets. Environment overrides are applied last.
// A missing file is not an error.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(tomlPath); statErr == nil {
		return LoadFromPath(tomlPath)
	}

	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(jsonPath); statErr == nil {
		return LoadFromPath(jsonPath)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath reads the configuration from a specific file. Files ending in
// .json are decoded as JSON, everything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys the file does not set keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// SetDefaults replaces zero values that are never valid with defaults.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.Mode == "" {
		c.UI.Mode = d.UI.Mode
	}
	if c.UI.Color == "" {
		c.UI.Color = d.UI.Color
	}
	if c.UI.TabWidth == 0 {
		c.UI.TabWidth = d.UI.TabWidth
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.ShutdownTimeoutSecs == 0 {
		c.Server.ShutdownTimeoutSecs = d.Server.ShutdownTimeoutSecs
	}
	if c.Limits.MaxTableCells == 0 {
		c.Limits.MaxTableCells = d.Limits.MaxTableCells
	}
	if c.Limits.MaxInputBytes == 0 {
		c.Limits.MaxInputBytes = d.Limits.MaxInputBytes
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML, atomically and readable only by
// the owner.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# textdiff configuration file\n")
	sb.WriteString("# Generated by `textdiff config init`; edit with care\n\n")

	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, []byte(sb.String()), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every validation failure of a config.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}

// Validate checks every section and returns ValidateErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Diff
	if c.Diff.Context > 1000 {
		add("diff.context", "%d is too large (max 1000)", c.Diff.Context)
	}

	// UI
	if !oneOf(c.UI.Theme, "auto", "dark", "light") {
		add("ui.theme", "invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme)
	}
	if !oneOf(c.UI.Mode, "inline", "split") {
		add("ui.mode", "invalid mode '%s', must be one of: inline, split", c.UI.Mode)
	}
	if !oneOf(c.UI.Color, "auto", "always", "never") {
		add("ui.color", "invalid color '%s', must be one of: auto, always, never", c.UI.Color)
	}
	if c.UI.TabWidth < 1 || c.UI.TabWidth > 16 {
		add("ui.tab_width", "must be between 1 and 16, got %d", c.UI.TabWidth)
	}

	// Server
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		add("server.addr", "invalid address '%s': %v", c.Server.Addr, err)
	}
	if c.Server.RateLimit < 0 {
		add("server.rate_limit", "must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		add("server.rate_burst", "must be at least 1 when rate limiting is enabled")
	}
	if c.Server.ReadTimeoutSecs < 0 || c.Server.WriteTimeoutSecs < 0 || c.Server.ShutdownTimeoutSecs < 0 {
		add("server", "timeouts must not be negative")
	}

	// Limits
	if c.Limits.MaxTableCells < 4 {
		add("limits.max_table_cells", "must be at least 4, got %d", c.Limits.MaxTableCells)
	}
	if c.Limits.MaxInputBytes < 1 {
		add("limits.max_input_bytes", "must be positive, got %d", c.Limits.MaxInputBytes)
	}

	// Storage
	if c.Storage.MaxComparisons < 0 {
		add("storage.max_comparisons", "must not be negative")
	}

	// Log
	if !oneOf(c.Log.Level, "debug", "info", "warn", "error") {
		add("log.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}
	if !oneOf(c.Log.Format, "console", "json") {
		add("log.format", "invalid format '%s', must be one of: console, json", c.Log.Format)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies TEXTDIFF_* environment variables:
//   - TEXTDIFF_IGNORE_WHITESPACE, TEXTDIFF_IGNORE_CASE: diff options
//   - TEXTDIFF_CONTEXT: diff.context
//   - TEXTDIFF_THEME: ui.theme
//   - TEXTDIFF_ADDR: server.addr
//   - TEXTDIFF_MAX_TABLE_CELLS: limits.max_table_cells
//   - TEXTDIFF_HISTORY: storage.path ("off" disables history)
//   - TEXTDIFF_LOG_LEVEL: log.level
//
// Unparseable numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TEXTDIFF_IGNORE_WHITESPACE"); v != "" {
		c.Diff.IgnoreWhitespace = parseBool(v)
	}
	if v := os.Getenv("TEXTDIFF_IGNORE_CASE"); v != "" {
		c.Diff.IgnoreCase = parseBool(v)
	}
	if v := os.Getenv("TEXTDIFF_CONTEXT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Diff.Context = n
		}
	}
	if v := os.Getenv("TEXTDIFF_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("TEXTDIFF_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TEXTDIFF_MAX_TABLE_CELLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Limits.MaxTableCells = n
		}
	}
	if v := os.Getenv("TEXTDIFF_HISTORY"); v != "" {
		if strings.EqualFold(v, "off") {
			c.Storage.Enabled = false
		} else {
			c.Storage.Enabled = true
			c.Storage.Path = v
		}
	}
	if v := os.Getenv("TEXTDIFF_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// lookup walks a dot-notation key ("ui.tab_width") to its struct field.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// Get returns the value at a dot-notation key such as "diff.context".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns the value at a dot-notation key. String values are converted to
// the field's type; list fields take comma-separated strings.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// normalizeFieldName turns snake_case or kebab-case into a Go field name.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strings.ReplaceAll(strVal, "_", ""), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				boolVal = parseBool(strVal)
			}
			field.SetBool(boolVal)
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, item := range strings.Split(strVal, ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns every settable key in dot notation, in file order.
func GetAllKeys() []string {
	return []string{
		"version",
		"diff.ignore_whitespace",
		"diff.ignore_case",
		"diff.context",
		"ui.theme",
		"ui.mode",
		"ui.color",
		"ui.line_numbers",
		"ui.highlight",
		"ui.tab_width",
		"server.addr",
		"server.allowed_origins",
		"server.rate_limit",
		"server.rate_burst",
		"server.read_timeout_secs",
		"server.write_timeout_secs",
		"server.shutdown_timeout_secs",
		"limits.max_table_cells",
		"limits.max_input_bytes",
		"storage.enabled",
		"storage.path",
		"storage.max_comparisons",
		"log.level",
		"log.format",
	}
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Server.AllowedOrigins != nil {
		clone.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	}
	return &clone
}

// String renders the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
