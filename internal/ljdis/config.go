// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljdis

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/tailscale/hujson"
	"zb.256lights.llc/ljbc/internal/ljcode"
)

// config is the set of settings that can be read from a configuration file.
type config struct {
	Debug           bool                 `json:"debug"`
	ResolveChildren bool                 `json:"resolveChildren"`
	LineWidth       ljcode.LineWidthRule `json:"lineWidth"`
	Jobs            int                  `json:"jobs"`
}

const defaultJobs = 4

func defaultConfig() *config {
	return &config{
		LineWidth: ljcode.LineWidthFromFirstLine,
		Jobs:      defaultJobs,
	}
}

// defaultConfigPath returns the path of the configuration file
// read when --config is not given,
// or the empty string if there is no user configuration directory.
func defaultConfigPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "ljdis", "config.jsonc")
}

// mergeFiles reads the HuJSON files at the given paths in order,
// with later files taking precedence over earlier ones.
// Missing files are skipped.
func (cfg *config) mergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, cfg, jsonv2.RejectUnknownMembers(true)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}
	return nil
}

func (cfg *config) validate() error {
	if cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be positive (got %d)", cfg.Jobs)
	}
	if _, err := cfg.LineWidth.MarshalText(); err != nil {
		return err
	}
	return nil
}

func (cfg *config) decodeOptions() *ljcode.DecodeOptions {
	return &ljcode.DecodeOptions{
		ResolveChildren: cfg.ResolveChildren,
		LineWidth:       cfg.LineWidth,
	}
}
