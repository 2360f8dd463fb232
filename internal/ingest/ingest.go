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

// Package ingest turns a candidate tarball in the packages directory
// into a catalog version document, and drives a full directory scan
// into a fresh catalog.Builder.
package ingest

import (
	"compress/gzip"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"time"

	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
	"github.com/deepdreamgames/pachka/internal/catalog"
	"github.com/deepdreamgames/pachka/internal/ojson"
	"github.com/deepdreamgames/pachka/internal/tario"
)

const (
	packageJSONEntry = "package/package.json"
	readmeEntry      = "package/readme.md"
)

// Result is one tarball's ingestion outcome: the version document it
// produced, plus the file metadata the catalog needs alongside it.
type Result struct {
	Document *catalog.VersionDocument
	ModTime  time.Time
	FileName string
}

// File ingests a single tarball at path: it hashes the raw compressed
// bytes, then replays the file through gzip and the tar reader looking
// for package/package.json and package/README.md. jsonReader is reused
// across calls by the caller under its own synchronization.
func File(path string, jsonReader ojson.Reader) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	baseName := info.Name()

	shasum, err := sha1Hex(f)
	if err != nil {
		return nil, &dxerrors.IngestError{File: baseName, Reason: "reading file: " + err.Error()}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, &dxerrors.IngestError{File: baseName, Reason: "rewinding file: " + err.Error()}
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, &dxerrors.IngestError{File: baseName, Reason: "not a gzip stream: " + err.Error()}
	}
	defer gz.Close()

	pkgJSON, readme, haveReadme, err := readTarball(gz, jsonReader, baseName)
	if err != nil {
		return nil, err
	}
	if pkgJSON == nil {
		return nil, &dxerrors.IngestError{File: baseName, Reason: "missing " + packageJSONEntry}
	}

	doc, err := catalog.NewVersionDocument(pkgJSON, shasum, baseName)
	if err != nil {
		return nil, &dxerrors.IngestError{File: baseName, Reason: err.Error()}
	}
	if haveReadme {
		doc.SetReadme(readme)
	}

	return &Result{Document: doc, ModTime: info.ModTime(), FileName: baseName}, nil
}

// readTarball walks every regular-file entry in the tar stream,
// extracting package.json and README.md and draining everything else.
// Directories and any other typeflag are counted implicitly by simply
// being skipped: tario discards unread payload automatically on the
// next Next call.
func readTarball(r io.Reader, jsonReader ojson.Reader, baseName string) (*ojson.Object, string, bool, error) {
	tr := tario.NewReader(r)

	var pkgJSON *ojson.Object
	var readme string
	var haveReadme bool

	for {
		entry, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", false, &dxerrors.IngestError{File: baseName, Reason: "tar read failed: " + err.Error()}
		}
		if !entry.IsRegular() {
			continue
		}

		switch strings.ToLower(entry.Name) {
		case packageJSONEntry:
			data, err := io.ReadAll(entry.Payload)
			if err != nil {
				return nil, "", false, &dxerrors.IngestError{File: baseName, Reason: "reading package.json: " + err.Error()}
			}
			v, err := jsonReader.Parse(data)
			if err != nil {
				return nil, "", false, &dxerrors.IngestError{File: baseName, Reason: "parsing package.json: " + err.Error()}
			}
			if v.Kind() != ojson.KindObject {
				return nil, "", false, &dxerrors.IngestError{File: baseName, Reason: "package.json is not an object"}
			}
			pkgJSON = v.AsObject()

		case readmeEntry:
			data, err := io.ReadAll(entry.Payload)
			if err != nil {
				return nil, "", false, &dxerrors.IngestError{File: baseName, Reason: "reading README.md: " + err.Error()}
			}
			readme, haveReadme = string(data), true
		}
	}

	return pkgJSON, readme, haveReadme, nil
}

func sha1Hex(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
