// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/retromon/mon"
	"github.com/retromon/mon/host"
	"github.com/retromon/mon/parse"
)

// testMon wires a parser to a real machine with captured output.
type testMon struct {
	sess *mon.Session
	mach *host.Machine
	p    *parse.Parser
	buf  bytes.Buffer
	bw   *bufio.Writer
}

func newTestMon() *testMon {
	tm := &testMon{sess: mon.NewSession()}
	tm.mach = host.NewMachine(tm.sess)
	tm.bw = bufio.NewWriter(&tm.buf)
	tm.mach.SetOutput(tm.bw)
	tm.p = parse.New(tm.sess, tm.mach, tm.bw)
	return tm
}

func (tm *testMon) run(line string) mon.Status {
	st := tm.p.ExecuteLine(line)
	tm.bw.Flush()
	return st
}

func (tm *testMon) output() string {
	s := tm.buf.String()
	tm.buf.Reset()
	return s
}

func expectStatus(t *testing.T, tm *testMon, line string, want mon.Status) {
	t.Helper()
	if st := tm.run(line); st != want {
		t.Errorf("ExecuteLine(%q) = %v, want %v", line, st, want)
	}
}

func expectOutput(t *testing.T, tm *testMon, line, want string) {
	t.Helper()
	expectStatus(t, tm, line, mon.OK)
	if out := tm.output(); !strings.Contains(out, want) {
		t.Errorf("ExecuteLine(%q) output %q, want substring %q", line, out, want)
	}
}

func TestCommandDispatch(t *testing.T) {
	tm := newTestMon()
	lines := []string{
		"bank",
		"backtrace",
		"cpu",
		"registers",
		"stopwatch",
		"m c000",
		"mem c000 c00f",
		"memchar c000",
		"i c000 c027",
		"disass c000 c010",
		"fill c000 c00f 00",
		"hunt c000 c0ff ab cd",
		"move c000 c00f d000",
		"compare c000 c00f d000",
		"break c000",
		"until c100",
		"watch store d020",
		"trace c000 c0ff",
		"enable",
		"disable 1",
		"delete",
		"show_labels",
		"clear_labels",
		"device",
		"radix",
		"sidefx",
		"dummy",
		"log",
		"warp on",
		"export",
		"print 5+5",
		"pwd",
		"help",
		"help break",
		"tapeoffs",
		"cartfreeze",
		"stop",
	}
	for _, line := range lines {
		expectStatus(t, tm, line, mon.OK)
		tm.output()
	}
}

func TestCommandErrors(t *testing.T) {
	tm := newTestMon()
	cases := []struct {
		line string
		want mon.Status
	}{
		{"bogus", mon.ErrBadCommand},
		{"break xyzzy", mon.ErrUndefinedLabel},
		{"bank nosuchbank", mon.ErrIllegalInput},
		{"registers qq = 5", mon.ErrInvalidRegister},
		{"registers a = 10000", mon.ErrImmediateTooLarge},
		{"print (5+3", mon.ErrMissingCloseParen},
		{"condition 1", mon.ErrIllegalInput},
		{"ignore", mon.ErrExpectCheckpointNumber},
		{"dump", mon.ErrExpectFilename},
		{"fill c000 c00f", mon.ErrIllegalInput},
		{"move c000 d000", mon.ErrExpectAddress},
		{"memmapshow", mon.StatusNotImplemented},
		{">> c000 101", mon.StatusNotImplemented},
	}
	for _, c := range cases {
		expectStatus(t, tm, c.line, c.want)
		tm.output()
	}
}

// Shortcuts resolve through the same table as the full spellings, and an
// ambiguous abbreviation is rejected as bad syntax rather than unknown.
func TestShortcuts(t *testing.T) {
	tm := newTestMon()
	for _, line := range []string{"r", "bk c000", "w d020", "f c000 c00f aa", "p 2*3", "sfx", "?"} {
		expectStatus(t, tm, line, mon.OK)
		tm.output()
	}
}

func TestPrintExpression(t *testing.T) {
	tm := newTestMon()

	// flat left-to-right evaluation, all four operators binding equally
	expectOutput(t, tm, "print (2+3)*4", "$14  20  24  %10100")
	expectOutput(t, tm, "print 2+3*4", "$14  20  24")

	// division by zero yields one
	expectOutput(t, tm, "print 5/0", "$1  1  1  %1")

	// registers are values
	expectStatus(t, tm, "registers pc = c000", mon.OK)
	tm.output()
	expectOutput(t, tm, "print pc+1", "$c001")

	// the ~ form is the same command under a punctuation spelling
	expectOutput(t, tm, "~ 10", "$10  16  20  %10000")
}

func TestRadixCommand(t *testing.T) {
	tm := newTestMon()
	expectOutput(t, tm, "radix", "Hexadecimal")
	expectStatus(t, tm, "radix d", mon.OK)
	expectOutput(t, tm, "print 10", "$a  10  12  %1010")
	expectStatus(t, tm, "rad h", mon.OK)
	expectOutput(t, tm, "print 10", "$10  16  20")
}

func TestCompactRange(t *testing.T) {
	tm := newTestMon()

	// eight hex digits split into a start/end pair under the hex radix
	expectStatus(t, tm, "mem 08000810", mon.OK)
	out := tm.output()
	if !strings.Contains(out, ">c:0800") {
		t.Errorf("mem 08000810 output %q, want rows from >c:0800", out)
	}
	if strings.Contains(out, ">c:0820") {
		t.Errorf("mem 08000810 output %q, ran past the range end", out)
	}

	// under a decimal radix the same text is one out-of-range number
	tm.sess.Radix = mon.Decimal
	expectStatus(t, tm, "mem 08000810", mon.ErrRangeBadStart)
}

func TestRegisterAssignment(t *testing.T) {
	tm := newTestMon()
	expectStatus(t, tm, "registers a = 12, x = 34", mon.OK)
	reg, ok := tm.mach.RegValid(mon.SpaceComp, "a")
	if !ok {
		t.Fatal("register A not recognized")
	}
	if v := tm.mach.RegGet(reg); v != 0x12 {
		t.Errorf("A = $%x, want $12", v)
	}
	reg, _ = tm.mach.RegValid(mon.SpaceComp, "x")
	if v := tm.mach.RegGet(reg); v != 0x34 {
		t.Errorf("X = $%x, want $34", v)
	}
}

func TestLabels(t *testing.T) {
	tm := newTestMon()
	expectStatus(t, tm, "add_label c000 .start", mon.OK)
	expectStatus(t, tm, "break .start", mon.OK)
	if out := tm.output(); !strings.Contains(out, "c:$c000") {
		t.Errorf("break .start output %q, want address c:$c000", out)
	}

	// the .label = address form bypasses the command table
	expectStatus(t, tm, ".done = c010", mon.OK)
	expectOutput(t, tm, "show_labels", ".done")

	expectStatus(t, tm, "delete_label .done", mon.OK)
	expectStatus(t, tm, "break .done", mon.ErrUndefinedLabel)
}

func TestCheckpointConditions(t *testing.T) {
	tm := newTestMon()

	// parentheses are preserved in re-display exactly where written
	expectStatus(t, tm, "break c000 if (a == 1 || x == 2) && 5", mon.OK)
	if out := tm.output(); !strings.Contains(out, "condition: (A == $1 || X == $2) && $5") {
		t.Errorf("condition re-display = %q", out)
	}

	expectStatus(t, tm, "condition 1 if a > 10", mon.OK)
	if out := tm.output(); !strings.Contains(out, "#1 condition: A > $10") {
		t.Errorf("condition re-display = %q", out)
	}

	// a dangling operator is incomplete, not illegal
	expectStatus(t, tm, "break c000 if a == 1 &&", mon.ErrIncompleteCondOp)
	tm.output()

	// an unknown bank name in a bank:address leaf is a syntax error
	expectStatus(t, tm, "break c000 if nosuchbank:a == 1", mon.ErrIllegalInput)
	tm.output()

	// a known bank name qualifies a memory leaf
	expectStatus(t, tm, "break c000 if ram:8000 == 1", mon.OK)
	tm.output()
}

func TestCheckpointLifecycle(t *testing.T) {
	tm := newTestMon()
	expectStatus(t, tm, "break c000", mon.OK)
	if out := tm.output(); !strings.Contains(out, "#1 (exec) c:$c000") {
		t.Errorf("break output = %q", out)
	}
	expectStatus(t, tm, "watch d000 d3ff", mon.OK)
	if out := tm.output(); !strings.Contains(out, "#2 (load|store)") {
		t.Errorf("watch output = %q", out)
	}

	expectOutput(t, tm, "break", "stop")
	expectStatus(t, tm, "disable 1", mon.OK)
	expectOutput(t, tm, "break", "disabled")
	expectStatus(t, tm, "enable 1", mon.OK)

	// checkpoint numbers are decimal regardless of radix
	expectStatus(t, tm, "ignore 2 10", mon.OK)
	tm.output()
	expectStatus(t, tm, "delete 2", mon.OK)
	expectStatus(t, tm, "delete", mon.OK)
	expectOutput(t, tm, "break", "no checkpoints are set")
}

func TestEnterData(t *testing.T) {
	tm := newTestMon()
	expectStatus(t, tm, "> c000 12 34 \"AB\"", mon.OK)
	want := []byte{0x12, 0x34, 'A', 'B'}
	for i, b := range want {
		if got := tm.mach.LoadByte(mon.Addr{Space: mon.SpaceComp, Off: uint16(0xc000 + i)}); got != b {
			t.Errorf("byte at $%04x = $%02x, want $%02x", 0xc000+i, got, b)
		}
	}
}

func TestAssemblerMode(t *testing.T) {
	tm := newTestMon()

	expectStatus(t, tm, "a c000", mon.OK)
	if !tm.p.InAssembler() {
		t.Fatal("assemble with address did not enter assembler mode")
	}
	if a := tm.p.AssembleAddr(); a.Off != 0xc000 {
		t.Errorf("assemble address = $%04x, want $c000", a.Off)
	}

	// instruction lines advance the address by the encoded length
	expectStatus(t, tm, "lda #$05", mon.OK)
	tm.output()
	if a := tm.p.AssembleAddr(); a.Off != 0xc002 {
		t.Errorf("assemble address = $%04x, want $c002", a.Off)
	}
	expectStatus(t, tm, "sta $1234", mon.OK)
	tm.output()
	if a := tm.p.AssembleAddr(); a.Off != 0xc005 {
		t.Errorf("assemble address = $%04x, want $c005", a.Off)
	}

	// a blank line leaves the mode
	expectStatus(t, tm, "", mon.OK)
	if tm.p.InAssembler() {
		t.Fatal("blank line did not leave assembler mode")
	}

	// a lone `a` resumes at the previous address
	expectStatus(t, tm, "a", mon.OK)
	if !tm.p.InAssembler() {
		t.Fatal("lone assemble did not re-enter assembler mode")
	}
	if a := tm.p.AssembleAddr(); a.Off != 0xc005 {
		t.Errorf("resumed address = $%04x, want $c005", a.Off)
	}
	expectStatus(t, tm, "", mon.OK)

	// an inline instruction assembles and stays in the mode
	expectStatus(t, tm, "a c100 ldx #$10", mon.OK)
	tm.output()
	if !tm.p.InAssembler() {
		t.Fatal("inline instruction did not stay in assembler mode")
	}
	if a := tm.p.AssembleAddr(); a.Off != 0xc102 {
		t.Errorf("assemble address = $%04x, want $c102", a.Off)
	}
	expectStatus(t, tm, "", mon.OK)

	// a full instruction list on one line assembles and leaves the mode
	expectStatus(t, tm, "a c200 lda #$01 ; sta $02", mon.OK)
	tm.output()
	if tm.p.InAssembler() {
		t.Fatal("instruction list did not leave assembler mode")
	}

	// an oversized operand degrades softly and keeps the mode
	expectStatus(t, tm, "a c300", mon.OK)
	expectStatus(t, tm, "ldx 20000,u", mon.OK)
	if out := tm.output(); !strings.Contains(out, "offset too large even for 16 bits (signed)") {
		t.Errorf("oversized offset output = %q", out)
	}
	if !tm.p.InAssembler() {
		t.Fatal("soft assembly failure left assembler mode")
	}
	expectStatus(t, tm, "", mon.OK)
}

func TestMultiCommandLine(t *testing.T) {
	tm := newTestMon()
	expectStatus(t, tm, "registers a = 5 ; registers x = 6", mon.OK)
	reg, _ := tm.mach.RegValid(mon.SpaceComp, "x")
	if v := tm.mach.RegGet(reg); v != 6 {
		t.Errorf("X = %d, want 6 after multi-command line", v)
	}

	// the first failing segment aborts the rest, completed work stands
	expectStatus(t, tm, "registers y = 7 ; bogus ; registers y = 8", mon.ErrBadCommand)
	reg, _ = tm.mach.RegValid(mon.SpaceComp, "y")
	if v := tm.mach.RegGet(reg); v != 7 {
		t.Errorf("Y = %d, want 7 after aborted line", v)
	}
}

func TestErrorColumn(t *testing.T) {
	tm := newTestMon()

	expectStatus(t, tm, "break xyzzy", mon.ErrUndefinedLabel)
	if col := tm.p.LastErrorCol(); col != 6 {
		t.Errorf("error column = %d, want 6", col)
	}

	expectStatus(t, tm, "registers", mon.OK)
	tm.output()
	if col := tm.p.LastErrorCol(); col != -1 {
		t.Errorf("error column = %d, want -1 after success", col)
	}
}

func TestDeviceCommand(t *testing.T) {
	tm := newTestMon()
	expectOutput(t, tm, "device", "c:")
	expectStatus(t, tm, "device 8:", mon.OK)
	if tm.sess.DefaultSpace != mon.SpaceDisk8 {
		t.Errorf("default space = %v, want %v", tm.sess.DefaultSpace, mon.SpaceDisk8)
	}
	expectStatus(t, tm, "dev c", mon.OK)
	if tm.sess.DefaultSpace != mon.SpaceComp {
		t.Errorf("default space = %v, want %v", tm.sess.DefaultSpace, mon.SpaceComp)
	}
}

func TestMemoryCommands(t *testing.T) {
	tm := newTestMon()

	expectStatus(t, tm, "fill c000 c00f ab", mon.OK)
	if b := tm.mach.LoadByte(mon.Addr{Space: mon.SpaceComp, Off: 0xc00f}); b != 0xab {
		t.Errorf("fill: byte at $c00f = $%02x, want $ab", b)
	}

	expectStatus(t, tm, "move c000 c00f d000", mon.OK)
	if b := tm.mach.LoadByte(mon.Addr{Space: mon.SpaceComp, Off: 0xd00f}); b != 0xab {
		t.Errorf("move: byte at $d00f = $%02x, want $ab", b)
	}

	expectOutput(t, tm, "hunt c000 c0ff ab ab", "c:c000")
	expectOutput(t, tm, "hunt 0000 00ff ab", "pattern not found")

	// a wildcard element matches any byte
	expectOutput(t, tm, "hunt c000 c0ff ab xx ab", "c:c000")

	expectStatus(t, tm, "> d00f 00", mon.OK)
	expectOutput(t, tm, "compare c000 c00f d000", "$c00f $d00f: ab 00")

	// mem with an explicit radix word requires a range
	expectStatus(t, tm, "mem dec c000 c007", mon.OK)
	if out := tm.output(); !strings.Contains(out, "171") {
		t.Errorf("mem dec output %q, want decimal 171 bytes", out)
	}
}

func TestQuitAndExit(t *testing.T) {
	tm := newTestMon()
	expectStatus(t, tm, "quit", mon.OK)
	if !tm.mach.QuitRequested() {
		t.Error("quit did not request shutdown")
	}

	tm = newTestMon()
	expectStatus(t, tm, "x", mon.OK)
	if !tm.mach.ExitRequested() {
		t.Error("exit did not request leaving the monitor")
	}
}
