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
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// normalizeStructuralSegments rewrites the request path's "v1" and
// "search" segments to their canonical case when they appear in the
// `/-/v1/search` position. gin has already matched the route by then, so
// a case variant reaches the NoRoute handler, which serves the rewritten
// path as a search; this keeps the protocol's structural segments
// case-insensitive. The `-` segment needs no normalization: it is
// punctuation, not a letter.
func normalizeStructuralSegments() gin.HandlerFunc {
	return func(c *gin.Context) {
		segs := strings.Split(c.Request.URL.Path, "/")
		if len(segs) >= 4 && segs[1] == "-" && strings.EqualFold(segs[2], "v1") && strings.EqualFold(segs[3], "search") {
			segs[2], segs[3] = "v1", "search"
			c.Request.URL.Path = strings.Join(segs, "/")
		}
		c.Next()
	}
}

// accessLogMiddleware logs one structured line per request through the
// shared zerolog logger, in place of gin's default text access log.
func accessLogMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// recoveryMiddleware replaces gin's default panic recovery so that a
// handler panic renders the registry's own JSON error shape instead of
// gin's plain-text 500 page.
func recoveryMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("handler panic")
				writeError(c, http.StatusInternalServerError, "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
