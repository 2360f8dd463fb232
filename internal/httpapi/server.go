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

// Package httpapi dispatches the npm registry HTTP protocol subset this
// server speaks: package and version metadata, search, and tarball
// streaming, all rendered from a catalog.Store snapshot.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deepdreamgames/pachka/internal/catalog"
)

// Server wires a catalog snapshot and a packages directory into a gin
// engine implementing the registry's routes. It holds no other mutable
// state; every handler reads the current snapshot from store fresh.
type Server struct {
	store       *catalog.Store
	packagesDir string
	logger      zerolog.Logger
	engine      *gin.Engine
}

// NewServer builds a Server backed by store, resolving tarball files
// under packagesDir and logging through logger.
func NewServer(store *catalog.Store, packagesDir string, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:       store,
		packagesDir: packagesDir,
		logger:      logger,
		engine:      gin.New(),
	}

	s.engine.Use(accessLogMiddleware(logger), recoveryMiddleware(logger), normalizeStructuralSegments())
	s.registerRoutes()
	return s
}

// Engine returns the underlying gin engine, for handing to an
// http.Server by the process that owns listener lifecycle.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	e := s.engine
	e.GET("/", s.handleRoot)
	e.GET("/-/ping", s.handlePing)
	e.GET("/-/v1/search", s.handleSearch)
	e.GET("/:pkg", s.handlePackage)
	e.GET("/:pkg/:version", s.handleVersion)
	e.GET("/:pkg/-/:file", s.handleTarball)
	e.HEAD("/:pkg/-/:file", s.handleTarball)
	e.NoRoute(s.handleNotFound)
}
