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

// Command pachka runs the read-only npm-registry-protocol server: it
// scans a packages directory for tarballs, serves the resulting catalog
// over HTTP, and exposes an interactive command shell for operators.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/deepdreamgames/pachka/internal/config"
	"github.com/deepdreamgames/pachka/internal/logx"
	"github.com/deepdreamgames/pachka/internal/shell"
)

func main() {
	cfgPath := config.DefaultPath
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dxregistry: fatal: failed to load config:", err)
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(cfg.Verbosity.Zerolog())
	logger := logx.New(os.Stdout, cfg.Verbosity)

	a := newApp(cfg, logger)

	if err := a.Scan(); err != nil {
		logger.Error().Err(err).Msg("initial scan reported errors")
	}
	if err := a.Start(); err != nil {
		logger.Error().Err(err).Msg("failed to start listener")
	}

	sh := shell.New(os.Stdin, os.Stdout, a)
	if err := sh.Run(); err != nil {
		logger.Error().Err(err).Msg("shell input closed with error")
	}

	a.Stop()
}
