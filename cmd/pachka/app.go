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

package main

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
	"github.com/deepdreamgames/pachka/internal/catalog"
	"github.com/deepdreamgames/pachka/internal/config"
	"github.com/deepdreamgames/pachka/internal/httpapi"
	"github.com/deepdreamgames/pachka/internal/ingest"
	"github.com/deepdreamgames/pachka/internal/logx"
	"github.com/deepdreamgames/pachka/internal/ojson"
)

// app owns the process's mutable runtime state: the listeners the
// `start`/`stop`/`restart` shell commands control, and the catalog
// snapshot a scan replaces. It implements shell.Controller.
type app struct {
	mu sync.Mutex

	cfg        *config.Config
	store      *catalog.Store
	server     *httpapi.Server
	jsonReader ojson.Reader
	logger     zerolog.Logger

	httpServers []*http.Server
	running     bool
	verbosity   logx.Level
}

func newApp(cfg *config.Config, logger zerolog.Logger) *app {
	store := &catalog.Store{}
	return &app{
		cfg:       cfg,
		store:     store,
		server:    httpapi.NewServer(store, cfg.Path, logger),
		logger:    logger,
		verbosity: cfg.Verbosity,
	}
}

// Start binds a listener for every configured endpoint and begins
// serving. Calling Start while already running is a no-op.
func (a *app) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return nil
	}

	var errs error
	for _, endpoint := range a.cfg.Endpoints {
		addr, err := addrFromEndpoint(endpoint)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			errs = multierr.Append(errs, &dxerrors.RouteError{
				Status: http.StatusInternalServerError,
				Reason: "bind failed for " + addr + ": " + err.Error(),
			})
			continue
		}

		srv := &http.Server{Addr: addr, Handler: a.server.Engine()}
		a.httpServers = append(a.httpServers, srv)
		go func() {
			if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
				a.logger.Error().Err(err).Str("addr", srv.Addr).Msg("listener error")
			}
		}()
	}

	if len(a.httpServers) > 0 {
		a.running = true
	}
	return errs
}

// Stop gracefully shuts down every listener. Calling Stop while already
// stopped is a no-op.
func (a *app) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs error
	for _, srv := range a.httpServers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	a.httpServers = nil
	a.running = false
	return errs
}

// Scan rebuilds the catalog from the packages directory. A scan is
// mutually exclusive with serving: if the server is running, Scan stops
// it first and restarts it afterward.
func (a *app) Scan() error {
	a.mu.Lock()
	wasRunning := a.running
	a.mu.Unlock()

	if wasRunning {
		if err := a.Stop(); err != nil {
			return err
		}
	}

	cat, err := ingest.Scan(a.cfg.Path, a.cfg.Extensions, a.jsonReader)
	if cat != nil {
		a.store.Publish(cat)
	}

	if wasRunning {
		if startErr := a.Start(); startErr != nil {
			err = multierr.Append(err, startErr)
		}
	}
	return err
}

// List returns every package id currently in the catalog, sorted.
func (a *app) List() []string {
	cat := a.store.Load()
	if cat == nil {
		return nil
	}
	entries := cat.Search("")
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Verbosity returns the current logging verbosity.
func (a *app) Verbosity() logx.Level {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.verbosity
}

// SetVerbosity updates the process's logging verbosity in place.
func (a *app) SetVerbosity(l logx.Level) {
	a.mu.Lock()
	a.verbosity = l
	a.mu.Unlock()
	zerolog.SetGlobalLevel(l.Zerolog())
}

// addrFromEndpoint extracts a net.Listen-able host:port from one of the
// config file's endpoint URL prefixes.
func addrFromEndpoint(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", &dxerrors.ParseError{Type: "Endpoint", Value: endpoint}
	}
	host := u.Host
	if host == "" {
		return "", &dxerrors.ParseError{Type: "Endpoint", Value: endpoint}
	}
	if !strings.Contains(host, ":") {
		if u.Scheme == "https" {
			host += ":443"
		} else {
			host += ":80"
		}
	}
	return host, nil
}
