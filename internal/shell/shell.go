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

// Package shell implements the registry's interactive command surface:
// a line-oriented loop over start/stop/restart/scan/list/verbosity/
// shutdown, matching the npm-registry protocol server's operator
// console rather than any particular scripting shell.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
	"github.com/deepdreamgames/pachka/internal/logx"
)

// Controller is the set of operations the shell drives. cmd/pachka
// supplies the concrete implementation that owns the HTTP listener and
// the catalog scan.
type Controller interface {
	Start() error
	Stop() error
	Scan() error
	List() []string
	Verbosity() logx.Level
	SetVerbosity(logx.Level)
}

// Shell reads whitespace-separated commands from in, one per line,
// until a shutdown/quit/exit command or the input stream ends.
type Shell struct {
	scanner *bufio.Scanner
	out     io.Writer
	ctrl    Controller
	done    bool
}

// New builds a Shell reading commands from in and writing output to out.
func New(in io.Reader, out io.Writer, ctrl Controller) *Shell {
	return &Shell{scanner: bufio.NewScanner(in), out: out, ctrl: ctrl}
}

// Run processes commands until shutdown is requested or in is
// exhausted. It returns any error from reading the input stream itself;
// command errors are printed to out and do not stop the loop.
func (sh *Shell) Run() error {
	for !sh.done && sh.scanner.Scan() {
		line := strings.TrimSpace(sh.scanner.Text())
		if line == "" {
			continue
		}
		if err := sh.dispatch(line); err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
	return sh.scanner.Err()
}

func (sh *Shell) dispatch(line string) error {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "help":
		sh.printHelp()
	case "clear":
		fmt.Fprint(sh.out, "\033[H\033[2J")
	case "start":
		return sh.ctrl.Start()
	case "stop":
		return sh.ctrl.Stop()
	case "restart":
		if err := sh.ctrl.Stop(); err != nil {
			return err
		}
		return sh.ctrl.Start()
	case "list":
		for _, name := range sh.ctrl.List() {
			fmt.Fprintln(sh.out, name)
		}
	case "scan":
		return sh.ctrl.Scan()
	case "verbosity":
		return sh.verbosity(args)
	case "shutdown", "quit", "exit":
		err := sh.ctrl.Stop()
		sh.done = true
		return err
	default:
		fmt.Fprintf(sh.out, "unknown command: %s\n", cmd)
	}
	return nil
}

func (sh *Shell) verbosity(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, sh.ctrl.Verbosity())
		return nil
	}
	lvl, ok := logx.ParseLevel(args[0])
	if !ok {
		return &dxerrors.ParseError{Type: "Verbosity", Value: args[0]}
	}
	sh.ctrl.SetVerbosity(lvl)
	return nil
}

func (sh *Shell) printHelp() {
	fmt.Fprintln(sh.out, "commands: help, clear, start, stop, restart, list, scan, verbosity [<level>], shutdown|quit|exit")
}
