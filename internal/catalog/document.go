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

// Package catalog models the in-memory, read-only package index the HTTP
// dispatcher serves from: version documents assembled by the ingester,
// grouped into package entries, and published as an atomically-swapped
// snapshot.
package catalog

import (
	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
	"github.com/deepdreamgames/pachka/internal/ojson"
)

// VersionDocument wraps the ordered JSON object describing one released
// version of a package: the fields copied verbatim from a tarball's
// package.json, plus the fields this registry synthesizes.
type VersionDocument struct {
	obj *ojson.Object
}

// NewVersionDocument builds a VersionDocument from a parsed package.json
// tree, injecting the synthesized registry fields described by the data
// model: category, readmeFilename, _id, and dist.shasum/dist.tarball.
// pkgJSON's own field order is preserved; synthesized fields are
// appended after it unless package.json already declared them, in which
// case their original position is kept and the value overwritten.
func NewVersionDocument(pkgJSON *ojson.Object, shasum, tarballFileName string) (*VersionDocument, error) {
	name, err := requiredString(pkgJSON, "name")
	if err != nil {
		return nil, err
	}
	version, err := requiredString(pkgJSON, "version")
	if err != nil {
		return nil, err
	}

	doc := pkgJSON.Clone()
	doc.Set("category", ojson.String(""))
	doc.Set("readmeFilename", ojson.String("README.md"))
	doc.Set("_id", ojson.String(name+"@"+version))

	dist := ojson.NewObject()
	dist.Set("shasum", ojson.String(shasum))
	dist.Set("tarball", ojson.String(tarballFileName))
	doc.Set("dist", ojson.FromObject(dist))

	return &VersionDocument{obj: doc}, nil
}

func requiredString(o *ojson.Object, field string) (string, error) {
	v, ok := o.Get(field)
	if !ok || v.Kind() != ojson.KindString || v.AsString() == "" {
		return "", &dxerrors.ValidationError{Type: "package.json", Field: field, Reason: "missing or empty"}
	}
	return v.AsString(), nil
}

// SetReadme attaches the UTF-8 contents of package/README.md to the
// document as its readme field.
func (d *VersionDocument) SetReadme(readme string) {
	d.obj.Set("readme", ojson.String(readme))
}

// Object returns the document's underlying ordered JSON tree. Callers
// must not mutate it.
func (d *VersionDocument) Object() *ojson.Object { return d.obj }

// Name returns the document's package id.
func (d *VersionDocument) Name() string {
	v, _ := d.obj.Get("name")
	return v.AsString()
}

// Version returns the document's SemVer version string.
func (d *VersionDocument) Version() string {
	v, _ := d.obj.Get("version")
	return v.AsString()
}

// Description returns the document's description field, or "" if absent
// or not a string.
func (d *VersionDocument) Description() string {
	v, ok := d.obj.Get("description")
	if !ok || v.Kind() != ojson.KindString {
		return ""
	}
	return v.AsString()
}

// Readme returns the document's readme field and whether it is present.
func (d *VersionDocument) Readme() (string, bool) {
	v, ok := d.obj.Get("readme")
	if !ok || v.Kind() != ojson.KindString {
		return "", false
	}
	return v.AsString(), true
}

// Keywords returns the document's keywords array as a string slice,
// skipping any non-string elements.
func (d *VersionDocument) Keywords() []string {
	v, ok := d.obj.Get("keywords")
	if !ok || v.Kind() != ojson.KindArray {
		return nil
	}
	items := v.AsArray().Items()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Kind() == ojson.KindString {
			out = append(out, item.AsString())
		}
	}
	return out
}

// Shasum returns the document's dist.shasum field.
func (d *VersionDocument) Shasum() string {
	return d.distField("shasum")
}

// TarballFileName returns the base file name stored in dist.tarball,
// before any per-request absolute-URL rewrite.
func (d *VersionDocument) TarballFileName() string {
	return d.distField("tarball")
}

func (d *VersionDocument) distField(field string) string {
	distVal, ok := d.obj.Get("dist")
	if !ok || distVal.Kind() != ojson.KindObject {
		return ""
	}
	v, ok := distVal.AsObject().Get(field)
	if !ok || v.Kind() != ojson.KindString {
		return ""
	}
	return v.AsString()
}

// WithAbsoluteTarball returns a clone of the document's JSON tree with
// dist.tarball rewritten to the given absolute URL, leaving the stored
// document untouched so the catalog snapshot stays request-independent.
func (d *VersionDocument) WithAbsoluteTarball(url string) *ojson.Object {
	clone := d.obj.Clone()
	distVal, ok := clone.Get("dist")
	if !ok || distVal.Kind() != ojson.KindObject {
		return clone
	}
	distClone := distVal.AsObject().Clone()
	distClone.Set("tarball", ojson.String(url))
	clone.Set("dist", ojson.FromObject(distClone))
	return clone
}
