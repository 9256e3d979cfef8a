// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/textdiff/internal/config"
	"github.com/jeranaias/textdiff/internal/ui/components"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change settings",
		Long: `Read and write the configuration file.

Keys use dot notation, for example diff.context or ui.theme. TEXTDIFF_*
environment variables such as TEXTDIFF_CONTEXT override the file.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every setting",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, key := range config.GetAllKeys() {
					value, err := app.cfg.Get(key)
					if err != nil {
						return err
					}
					fmt.Fprintf(app.Out, "%s = %s\n", key, formatValue(value))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := app.cfg.Get(args[0])
				if err != nil {
					return unknownKey(args[0])
				}
				fmt.Fprintln(app.Out, formatValue(value))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one setting and save the file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := app.configFile()
				if err != nil {
					return err
				}

				// Start from the file alone so environment overrides are not
				// written back.
				cfg := config.Default()
				if _, statErr := os.Stat(path); statErr == nil {
					if err := loadFile(cfg, path); err != nil {
						return err
					}
				}

				if !knownKey(args[0]) {
					return unknownKey(args[0])
				}
				if err := cfg.Set(args[0], args[1]); err != nil {
					return &UsageError{Flag: args[0], Value: args[1], Reason: err.Error()}
				}
				if err := cfg.Validate(); err != nil {
					return err
				}
				if err := saveFile(cfg, path); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "%s = %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := app.configFile()
				if err != nil {
					return err
				}
				fmt.Fprintln(app.Out, path)
				return nil
			},
		},
		newConfigInitCommand(app),
	)
	return cmd
}

func newConfigInitCommand(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.configFile()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := saveFile(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configFile is the --config path, the existing JSON file, or the TOML path.
func (a *App) configFile() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := config.ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

func knownKey(key string) bool {
	for _, k := range config.GetAllKeys() {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// unknownKey suggests the closest settable keys.
func unknownKey(key string) error {
	reason := "see 'textdiff config list'"
	if matches := components.Suggest(key, config.GetAllKeys(), 3); len(matches) > 0 {
		reason = "did you mean " + strings.Join(matches, " or ") + "?"
	}
	return &UsageError{Flag: "key", Value: key, Reason: reason}
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

func loadFile(cfg *config.Config, path string) error {
	if isJSONPath(path) {
		return config.LoadJSON(cfg, path)
	}
	return config.LoadTOML(cfg, path)
}

func saveFile(cfg *config.Config, path string) error {
	if isJSONPath(path) {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}

// formatValue prints lists comma-separated, the form Set accepts.
func formatValue(v interface{}) string {
	if list, ok := v.([]string); ok {
		return strings.Join(list, ",")
	}
	return fmt.Sprint(v)
}
