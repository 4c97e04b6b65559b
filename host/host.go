// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host drives an interactive monitor session. It owns the line
// loop, the prompt, and the error echo, and it bundles a reference machine
// so the monitor runs stand-alone. A hosting emulator replaces the machine
// with its own implementation of the mon collaborator interfaces.
package host

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/retromon/mon"
	"github.com/retromon/mon/parse"
)

// A Host reads monitor command lines from an input, interprets them, and
// writes all monitor output to a writer.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	sess        *mon.Session
	mach        *Machine
	parser      *parse.Parser
}

// New creates a host with a fresh session and reference machine.
func New() *Host {
	sess := mon.NewSession()
	h := &Host{
		sess: sess,
		mach: NewMachine(sess),
	}
	return h
}

// Machine exposes the host's reference machine, mostly for tests.
func (h *Host) Machine() *Machine { return h.mach }

// RunCommands accepts monitor commands from a reader and writes the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered. It returns when the
// input is exhausted or a quit/exit command runs.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive
	h.mach.SetOutput(h.output)
	h.parser = parse.New(h.sess, h.mach, h.output)

	for {
		h.prompt()

		line, ok := h.mach.NextPlayback()
		if !ok {
			var err error
			line, err = h.getLine()
			if err != nil {
				break
			}
		}
		h.mach.RecordLine(line)

		st := h.parser.ExecuteLine(line)
		if st != mon.OK {
			h.echoError(line, st)
		}
		h.flush()

		if h.mach.QuitRequested() || h.mach.ExitRequested() {
			break
		}
	}
	h.flush()
}

// QuitRequested reports whether a quit command ended the session.
func (h *Host) QuitRequested() bool { return h.mach.QuitRequested() }

// Break interrupts the current prompt, reprinting it on a fresh line. It is
// safe to call from a signal handler goroutine.
func (h *Host) Break() {
	h.println()
	h.prompt()
}

// echoError prints the failed line with a caret under the offending column,
// followed by the status message. The not-implemented status is terminal
// but not a parse failure, so it is reported without the caret.
func (h *Host) echoError(line string, st mon.Status) {
	if st != mon.StatusNotImplemented {
		h.println(line)
		if col := h.parser.LastErrorCol(); col >= 0 && col <= len(line) {
			h.println(strings.Repeat(" ", col) + "^")
		}
	}
	h.printf("ERROR -- %s\n", st.Message())
}

func (h *Host) write(p []byte) (n int, err error) {
	return h.output.Write(p)
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if !h.interactive {
		return
	}
	if h.parser.InAssembler() {
		h.printf(".%s  ", h.parser.AssembleAddr())
	} else {
		h.printf("(%s:$%04x) ", h.sess.DefaultSpace, h.mach.PC())
	}
	h.flush()
}
