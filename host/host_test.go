// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runScript(script string, interactive bool) string {
	h := New()
	var out bytes.Buffer
	h.RunCommands(strings.NewReader(script), &out, interactive)
	return out.String()
}

func TestRunCommands(t *testing.T) {
	out := runScript("print 2+3\n", false)
	assert.Contains(t, out, "$5  5  5  %101")
}

func TestRunCommandsStopsOnQuit(t *testing.T) {
	h := New()
	var out bytes.Buffer
	h.RunCommands(strings.NewReader("quit\nprint 1\n"), &out, false)
	assert.True(t, h.QuitRequested())
	assert.NotContains(t, out.String(), "$1")
}

func TestErrorEcho(t *testing.T) {
	out := runScript("break xyzzy\n", false)

	// the failed line is echoed with a caret under the bad token
	assert.Contains(t, out, "break xyzzy\n      ^\n")
	assert.Contains(t, out, "ERROR -- Found an undefined label")
}

func TestErrorEchoNotImplemented(t *testing.T) {
	out := runScript("memmapshow\n", false)
	assert.NotContains(t, out, "^")
	assert.Contains(t, out, "ERROR -- Not implemented yet")
}

func TestPrompt(t *testing.T) {
	out := runScript("registers pc = c000\nprint 1\n", true)
	assert.Contains(t, out, "(c:$c000) ")

	// assembler mode switches to the dot prompt
	out = runScript("a 1000\n\n", true)
	assert.Contains(t, out, ".c:$1000  ")
}
