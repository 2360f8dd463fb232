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
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/deepdreamgames/pachka/internal/ojson"
)

const blockSize = 512

func octalField(n int64, width int) []byte {
	s := fmt.Sprintf("%0*o", width-1, n)
	out := make([]byte, width)
	copy(out, s)
	return out
}

func tarHeader(name string, size int64, typeflag byte) []byte {
	b := make([]byte, blockSize)
	copy(b[0:100], name)
	copy(b[124:136], octalField(size, 12))
	b[156] = typeflag
	copy(b[257:263], "ustar")
	return b
}

func paddingFor(size int64) int64 {
	rem := size % blockSize
	if rem == 0 {
		return 0
	}
	return blockSize - rem
}

func tarEntry(buf *bytes.Buffer, name string, typeflag byte, payload string) {
	buf.Write(tarHeader(name, int64(len(payload)), typeflag))
	buf.WriteString(payload)
	if pad := paddingFor(int64(len(payload))); pad > 0 {
		buf.Write(make([]byte, pad))
	}
}

// buildTgz writes a gzip-compressed tar archive containing the given
// name/payload pairs as regular files, terminated correctly.
func buildTgz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var tarBuf bytes.Buffer
	for name, content := range files {
		tarEntry(&tarBuf, name, '0', content)
	}
	tarBuf.Write(make([]byte, blockSize*2))

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(tarBuf.Bytes()); err != nil {
		t.Fatalf("gzip write error = %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close error = %v", err)
	}
}

func TestFile_ExtractsPackageJSONAndReadme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "com.x.y-1.2.3.tgz")
	buildTgz(t, path, map[string]string{
		"package/package.json": `{"name":"com.x.y","version":"1.2.3","description":"d"}`,
		"package/README.md":    "hello readme",
	})

	res, err := File(path, ojson.Reader{})
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if res.Document.Name() != "com.x.y" {
		t.Errorf("Name() = %q", res.Document.Name())
	}
	if res.Document.Version() != "1.2.3" {
		t.Errorf("Version() = %q", res.Document.Version())
	}
	if len(res.Document.Shasum()) != 40 {
		t.Errorf("Shasum() len = %d, want 40", len(res.Document.Shasum()))
	}
	readme, ok := res.Document.Readme()
	if !ok || readme != "hello readme" {
		t.Errorf("Readme() = (%q, %v)", readme, ok)
	}
}

func TestFile_MissingPackageJSONRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.tgz")
	buildTgz(t, path, map[string]string{
		"package/other.txt": "nothing useful",
	})

	if _, err := File(path, ojson.Reader{}); err == nil {
		t.Fatalf("expected error for missing package.json")
	}
}

func TestScan_BuildsCatalogFromDirectory(t *testing.T) {
	dir := t.TempDir()
	buildTgz(t, filepath.Join(dir, "a.tgz"), map[string]string{
		"package/package.json": `{"name":"com.a","version":"1.0.0"}`,
	})
	buildTgz(t, filepath.Join(dir, "b.tgz"), map[string]string{
		"package/package.json": `{"name":"com.b","version":"2.0.0"}`,
	})
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cat, err := Scan(dir, DefaultExtensions, ojson.Reader{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	if _, ok := cat.Get("com.a"); !ok {
		t.Errorf("expected com.a in catalog")
	}
}
