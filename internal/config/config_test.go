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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deepdreamgames/pachka/internal/logx"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_JSON_AppliesDefaults(t *testing.T) {
	path := writeTemp(t, "config.json", `{}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Endpoints) != 1 || cfg.Endpoints[0] != "http://localhost/" {
		t.Errorf("Endpoints = %v", cfg.Endpoints)
	}
	if cfg.Path != "./" {
		t.Errorf("Path = %q", cfg.Path)
	}
	if len(cfg.Extensions) != 3 {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if cfg.Verbosity != logx.LevelLog {
		t.Errorf("Verbosity = %v, want LevelLog", cfg.Verbosity)
	}
}

func TestLoad_JSON_ExplicitValuesAndStringVerbosity(t *testing.T) {
	path := writeTemp(t, "config.json", `{
		"endpoints": ["http://example.com:8080"],
		"path": "packages",
		"extensions": ["tgz"],
		"verbosity": "Debug"
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Endpoints[0] != "http://example.com:8080/" {
		t.Errorf("Endpoints[0] = %q, want trailing slash appended", cfg.Endpoints[0])
	}
	if cfg.Verbosity != logx.LevelDebug {
		t.Errorf("Verbosity = %v, want LevelDebug", cfg.Verbosity)
	}
}

func TestLoad_JSON_IntegerVerbosity(t *testing.T) {
	path := writeTemp(t, "config.json", `{"verbosity": 6}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Verbosity != logx.LevelDebug {
		t.Errorf("Verbosity = %v, want LevelDebug", cfg.Verbosity)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", "path: packages\nverbosity: Warning\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != "packages" {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Verbosity != logx.LevelWarning {
		t.Errorf("Verbosity = %v, want LevelWarning", cfg.Verbosity)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := writeTemp(t, "config.json", `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoad_InvalidVerbosity(t *testing.T) {
	path := writeTemp(t, "config.json", `{"verbosity": "nonsense"}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid verbosity")
	}
}
