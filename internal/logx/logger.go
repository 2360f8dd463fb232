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

package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing human-readable output to w at the
// given verbosity. The shell's `verbosity` command changes zerolog's
// process-wide level via zerolog.SetGlobalLevel; it does not change the
// level of a logger already returned by New.
func New(w io.Writer, level Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(level.Zerolog()).With().Timestamp().Logger()
}

// NewDefault builds a logger writing to stderr at DefaultLevel, for use
// before a config file has been loaded.
func NewDefault() zerolog.Logger {
	return New(os.Stderr, DefaultLevel)
}
