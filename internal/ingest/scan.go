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

package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/deepdreamgames/pachka/internal/catalog"
	"github.com/deepdreamgames/pachka/internal/ojson"
)

// DefaultExtensions is the extension allowlist used when a config file
// does not specify one.
var DefaultExtensions = []string{".tgz", ".tar.gz", ".taz"}

// Scan rebuilds a catalog from scratch by ingesting every regular file
// in dir whose name ends in one of extensions (matched case-insensitively,
// leading dot optional). It never aborts on a single bad file: failures
// are aggregated and returned alongside the catalog built from whatever
// succeeded.
func Scan(dir string, extensions []string, jsonReader ojson.Reader) (*catalog.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	b := catalog.NewBuilder()
	var errs error

	for _, de := range entries {
		if de.IsDir() || !hasAllowedExtension(de.Name(), extensions) {
			continue
		}
		res, err := File(filepath.Join(dir, de.Name()), jsonReader)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := b.Add(res.Document, res.ModTime); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	cat, buildErr := b.Build()
	errs = multierr.Append(errs, buildErr)
	return cat, errs
}

func hasAllowedExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		e := strings.ToLower(ext)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}
