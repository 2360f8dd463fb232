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

package catalog

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
	"github.com/deepdreamgames/pachka/internal/semver"
)

// Builder assembles a Catalog from the version documents a scan
// produces. It is not safe for concurrent use; a scan feeds it
// documents sequentially and then calls Build once.
type Builder struct {
	packages map[string]*PackageEntry
	errs     error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{packages: make(map[string]*PackageEntry)}
}

// Add inserts doc into the package entry matching its name, recording
// mtime as that version's publish timestamp. A version string that
// collides with one already added to the same package is rejected and
// the newcomer dropped, per the data model's duplicate-version rule.
// Versions are keyed case-insensitively, so "1.0.0-Alpha" and
// "1.0.0-alpha" collide even though they are distinct SemVer strings.
func (b *Builder) Add(doc *VersionDocument, mtime time.Time) error {
	key := strings.ToLower(doc.Name())
	entry, ok := b.packages[key]
	if !ok {
		entry = &PackageEntry{
			Name:     doc.Name(),
			Versions: make(map[string]*VersionDocument),
			Time:     make(map[string]time.Time),
		}
		b.packages[key] = entry
	}

	verKey := strings.ToLower(doc.Version())
	if _, exists := entry.Versions[verKey]; exists {
		err := &dxerrors.IngestError{
			File:   doc.Name() + "@" + doc.Version(),
			Reason: fmt.Sprintf("duplicate version %q for package %q", doc.Version(), doc.Name()),
		}
		b.errs = multierr.Append(b.errs, err)
		return err
	}

	entry.Versions[verKey] = doc
	entry.Time[verKey] = mtime.UTC()
	return nil
}

// Build finalizes the catalog: versions that fail SemVer validation are
// dropped, packages left with zero versions are dropped, and each
// surviving package's Latest is set to the version of highest SemVer
// precedence. It returns every error accumulated across Add calls and
// this final pass, combined via multierr; a non-nil error does not mean
// Build failed, only that some input was rejected and logged.
func (b *Builder) Build() (*Catalog, error) {
	c := &Catalog{packages: make(map[string]*PackageEntry)}

	for key, entry := range b.packages {
		for verKey, doc := range entry.Versions {
			if _, ok := semver.Parse(doc.Version()); ok {
				continue
			}
			b.errs = multierr.Append(b.errs, &dxerrors.ValidationError{
				Type: "version", Field: "version", Reason: "invalid SemVer", Value: doc.Version(),
			})
			delete(entry.Versions, verKey)
			delete(entry.Time, verKey)
		}
		if len(entry.Versions) == 0 {
			continue
		}

		var latestKey string
		var latestVer semver.Version
		first := true
		for verKey, doc := range entry.Versions {
			v, _ := semver.Parse(doc.Version())
			if first || v.Greater(latestVer) {
				latestVer, latestKey, first = v, verKey, false
			}
		}
		entry.Latest = latestKey
		c.packages[key] = entry
	}

	return c, b.errs
}
