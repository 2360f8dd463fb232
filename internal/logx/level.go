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

// Package logx maps the registry's seven-level verbosity enum onto a
// zerolog logger, and builds the process-wide logger configuration
// interactive commands and the HTTP dispatcher share.
package logx

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
)

// Level is the registry's own verbosity scale, independent of zerolog's,
// so that a config file or `verbosity` shell command can name a level
// without depending on the logging library's vocabulary.
type Level int

// The verbosity levels a config file or the `verbosity` command may
// name, in increasing order of chattiness.
const (
	LevelNone Level = iota
	LevelException
	LevelError
	LevelWarning
	LevelLog
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{
	LevelNone:      "None",
	LevelException: "Exception",
	LevelError:     "Error",
	LevelWarning:   "Warning",
	LevelLog:       "Log",
	LevelInfo:      "Info",
	LevelDebug:     "Debug",
}

// DefaultLevel is the verbosity a config file or the shell falls back to
// when none is specified.
const DefaultLevel = LevelLog

// String renders l using its canonical name.
func (l Level) String() string {
	if l < LevelNone || l > LevelDebug {
		return "Unknown(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// ParseLevel accepts either a level name (case-insensitive) or its
// integer value 0-6.
func ParseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < int(LevelNone) || n > int(LevelDebug) {
			return 0, false
		}
		return Level(n), true
	}
	for l, name := range levelNames {
		if strings.EqualFold(name, s) {
			return Level(l), true
		}
	}
	return 0, false
}

// MustParseLevel is ParseLevel reporting failure as a *dxerrors.ParseError
// instead of false; the config loader returns that error as is.
func MustParseLevel(s string) (Level, error) {
	l, ok := ParseLevel(s)
	if !ok {
		return 0, &dxerrors.ParseError{Type: "Verbosity", Value: s}
	}
	return l, nil
}

// Zerolog maps l onto the nearest zerolog.Level. Log and Info collapse
// onto the same zerolog level since zerolog's scale is coarser than the
// registry's; the distinction still matters for the `verbosity` command
// and config file compatibility.
func (l Level) Zerolog() zerolog.Level {
	switch l {
	case LevelNone:
		return zerolog.Disabled
	case LevelException, LevelError:
		return zerolog.ErrorLevel
	case LevelWarning:
		return zerolog.WarnLevel
	case LevelLog, LevelInfo:
		return zerolog.InfoLevel
	case LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
