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

package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deepdreamgames/pachka/internal/ojson"
)

const maxSearchSize = 250

func (s *Server) handleRoot(c *gin.Context) {
	o := ojson.NewObject()
	o.Set("db_name", ojson.String("registry"))
	writeJSON(c, http.StatusOK, ojson.FromObject(o))
}

func (s *Server) handlePing(c *gin.Context) {
	o := ojson.NewObject()
	o.Set("ok", ojson.Bool(true))
	writeJSON(c, http.StatusOK, ojson.FromObject(o))
}

func (s *Server) handleNotFound(c *gin.Context) {
	// gin routes before middleware runs, so a case variant of the search
	// path lands here after normalizeStructuralSegments has rewritten it.
	if c.Request.Method == http.MethodGet && c.Request.URL.Path == "/-/v1/search" {
		s.handleSearch(c)
		return
	}
	writeError(c, http.StatusNotFound, "not found")
}

// handleSearch implements the ring-buffer paging behavior: the returned
// window is always the last `size` matches among the first `from+size`
// matches, not a plain offset/limit slice.
func (s *Server) handleSearch(c *gin.Context) {
	cat := s.store.Load()
	if cat == nil {
		writeError(c, http.StatusInternalServerError, "catalog not ready")
		return
	}

	from := clampInt(parseIntOr(c.Query("from"), 0), 0, -1)
	size := clampInt(parseIntOr(c.Query("size"), 20), 0, maxSearchSize)

	matches := cat.Search(c.Query("text"))
	total := len(matches)

	prefixLen := from + size
	if prefixLen > total {
		prefixLen = total
	}
	prefix := matches[:prefixLen]
	windowStart := len(prefix) - size
	if windowStart < 0 {
		windowStart = 0
	}
	window := prefix[windowStart:]

	arr := ojson.NewArray()
	for _, entry := range window {
		doc := entry.LatestDocument()
		o := ojson.NewObject()
		o.Set("name", ojson.String(doc.Name()))
		o.Set("version", ojson.String(doc.Version()))
		o.Set("description", ojson.String(doc.Description()))
		kw := ojson.NewArray()
		for _, k := range doc.Keywords() {
			kw.Append(ojson.String(k))
		}
		o.Set("keywords", ojson.FromArray(kw))
		arr.Append(ojson.FromObject(o))
	}

	result := ojson.NewObject()
	result.Set("objects", ojson.FromArray(arr))
	result.Set("total", ojson.Int(int64(total)))
	writeJSON(c, http.StatusOK, ojson.FromObject(result))
}

func (s *Server) handlePackage(c *gin.Context) {
	cat := s.store.Load()
	if cat == nil {
		writeError(c, http.StatusInternalServerError, "catalog not ready")
		return
	}
	entry, ok := cat.Get(c.Param("pkg"))
	if !ok {
		writeError(c, http.StatusNotFound, "package not found")
		return
	}
	latest := entry.LatestDocument()

	versionKeys := make([]string, 0, len(entry.Versions))
	for v := range entry.Versions {
		versionKeys = append(versionKeys, v)
	}
	sort.Strings(versionKeys)

	versions := ojson.NewObject()
	times := ojson.NewObject()
	for _, v := range versionKeys {
		doc := entry.Versions[v]
		display := doc.Version()
		absURL := s.tarballURL(c, entry.Name, doc.TarballFileName())
		versions.Set(display, ojson.FromObject(doc.WithAbsoluteTarball(absURL)))
		if t, ok := entry.Time[v]; ok {
			times.Set(display, ojson.String(t.UTC().Format("2006-01-02T15:04:05Z")))
		}
	}

	distTags := ojson.NewObject()
	distTags.Set("latest", ojson.String(entry.LatestDocument().Version()))

	o := ojson.NewObject()
	o.Set("dist-tags", ojson.FromObject(distTags))
	o.Set("name", ojson.String(entry.Name))
	o.Set("description", ojson.String(latest.Description()))
	o.Set("versions", ojson.FromObject(versions))
	o.Set("time", ojson.FromObject(times))
	if readme, ok := latest.Readme(); ok {
		o.Set("readme", ojson.String(readme))
	}
	writeJSON(c, http.StatusOK, ojson.FromObject(o))
}

func (s *Server) handleVersion(c *gin.Context) {
	cat := s.store.Load()
	if cat == nil {
		writeError(c, http.StatusInternalServerError, "catalog not ready")
		return
	}
	entry, ok := cat.Get(c.Param("pkg"))
	if !ok {
		writeError(c, http.StatusNotFound, "package not found")
		return
	}

	verParam := c.Param("version")
	verKey := strings.ToLower(verParam)
	if strings.EqualFold(verParam, "latest") {
		verKey = entry.Latest
	}
	doc, ok := entry.Versions[verKey]
	if !ok {
		writeError(c, http.StatusNotFound, "version not found")
		return
	}

	absURL := s.tarballURL(c, entry.Name, doc.TarballFileName())
	writeJSON(c, http.StatusOK, ojson.FromObject(doc.WithAbsoluteTarball(absURL)))
}

// handleTarball streams a tarball file from the packages directory,
// rejecting any resolved path that escapes it via the same case-insensitive
// string-prefix check the protocol specifies.
func (s *Server) handleTarball(c *gin.Context) {
	cat := s.store.Load()
	if cat == nil {
		writeError(c, http.StatusInternalServerError, "catalog not ready")
		return
	}
	if _, ok := cat.Get(c.Param("pkg")); !ok {
		writeError(c, http.StatusNotFound, "package not found")
		return
	}

	resolved := filepath.Join(s.packagesDir, c.Param("file"))
	absDir, err := filepath.Abs(s.packagesDir)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	absResolved, err := filepath.Abs(resolved)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if !strings.HasPrefix(strings.ToLower(absResolved), strings.ToLower(absDir)) {
		writeError(c, http.StatusInternalServerError, "path escapes packages directory")
		return
	}

	info, err := os.Stat(absResolved)
	if err != nil || info.IsDir() {
		writeError(c, http.StatusInternalServerError, "file not found")
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Length", strconv.FormatInt(info.Size(), 10))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filepath.Base(absResolved)))
	c.Header("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))

	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}

	f, err := os.Open(absResolved)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "file vanished")
		return
	}
	defer f.Close()

	c.Status(http.StatusOK)
	io.Copy(c.Writer, f)
}

// tarballURL builds the absolute dist.tarball URL for a package's
// tarball from the incoming request, omitting the port when it is the
// scheme's default.
func (s *Server) tarballURL(c *gin.Context, pkgName, fileName string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	host := stripDefaultPort(c.Request.Host, scheme)
	return fmt.Sprintf("%s://%s/%s/-/%s", scheme, host, pkgName, fileName)
}

func stripDefaultPort(host, scheme string) string {
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		return strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		return strings.TrimSuffix(host, ":443")
	default:
		return host
	}
}

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// clampInt clamps n to [min, max]. A negative max means "no upper bound".
func clampInt(n, min, max int) int {
	if n < min {
		n = min
	}
	if max >= 0 && n > max {
		n = max
	}
	return n
}
