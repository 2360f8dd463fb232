/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the registry's configuration file: a JSON
// document by default, with an additive YAML variant selected by file
// extension.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
	"github.com/deepdreamgames/pachka/internal/ingest"
	"github.com/deepdreamgames/pachka/internal/logx"
)

// DefaultPath is the config file path used when the process is not
// given one on the command line.
const DefaultPath = "./config.json"

// Config is the registry's fully-resolved configuration, after defaults
// have been applied.
type Config struct {
	// Endpoints are the URL prefixes the HTTP dispatcher listens on,
	// each normalized to end in "/".
	Endpoints []string

	// Path is the packages directory to scan.
	Path string

	// Extensions is the allowlist of candidate file extensions.
	Extensions []string

	// Verbosity is the logging verbosity the process starts at.
	Verbosity logx.Level
}

// rawConfig mirrors the file's on-disk shape before defaults are
// applied. Verbosity is read as `any` because the file may spell it as
// either a level name or an integer.
type rawConfig struct {
	Endpoints  []string `json:"endpoints" yaml:"endpoints"`
	Path       string   `json:"path" yaml:"path"`
	Extensions []string `json:"extensions" yaml:"extensions"`
	Verbosity  any      `json:"verbosity" yaml:"verbosity"`
}

// Load reads and parses the config file at path, choosing a JSON or
// YAML decoder by its extension (".yaml"/".yml" select YAML; anything
// else, including no extension, is read as JSON), and applies the
// documented defaults for any field left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &dxerrors.UnmarshalError{Type: "YAML config", Data: data, Reason: err.Error()}
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &dxerrors.UnmarshalError{Type: "JSON config", Data: data, Reason: err.Error()}
		}
	}

	cfg := &Config{
		Endpoints:  raw.Endpoints,
		Path:       raw.Path,
		Extensions: raw.Extensions,
		Verbosity:  logx.DefaultLevel,
	}
	applyDefaults(cfg)

	if raw.Verbosity != nil {
		lvl, err := parseVerbosityValue(raw.Verbosity)
		if err != nil {
			return nil, err
		}
		cfg.Verbosity = lvl
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Endpoints) == 0 {
		cfg.Endpoints = []string{"http://localhost/"}
	}
	for i, e := range cfg.Endpoints {
		if !strings.HasSuffix(e, "/") {
			cfg.Endpoints[i] = e + "/"
		}
	}
	if cfg.Path == "" {
		cfg.Path = "./"
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = ingest.DefaultExtensions
	}
}

func parseVerbosityValue(v any) (logx.Level, error) {
	switch t := v.(type) {
	case string:
		return logx.MustParseLevel(t)
	case int:
		return logx.MustParseLevel(strconv.Itoa(t))
	case float64:
		return logx.MustParseLevel(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		return 0, &dxerrors.ValidationError{Type: "Config", Field: "verbosity", Reason: "must be a string or integer", Value: v}
	}
}
