// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retromon/mon"
	"github.com/retromon/mon/asm"
)

func parseOperandString(t *testing.T, line string) (asm.Descriptor, mon.Status, string) {
	t.Helper()
	var out bytes.Buffer
	p := New(mon.NewSession(), nil, &out)
	toks, st := tokenize(line)
	if st != mon.OK {
		t.Fatalf("tokenize(%q) failed with %v", line, st)
	}
	p.toks, p.end = toks, len(toks)
	d, st := p.parseOperand()
	return d, st, out.String()
}

func TestParseOperand(t *testing.T) {
	cases := []struct {
		line string
		want asm.Descriptor
	}{
		{"", asm.Descriptor{Mode: asm.ModeImplied}},

		{"#$12", asm.Descriptor{Mode: asm.ModeImmediate, Param: 0x12}},
		{"#$1234", asm.Descriptor{Mode: asm.ModeImmediate16, Param: 0x1234}},

		// Magnitude picks the width, not the spelling.
		{"$50", asm.Descriptor{Mode: asm.ModeZeroPage, Param: 0x50}},
		{"$0050", asm.Descriptor{Mode: asm.ModeZeroPage, Param: 0x50}},
		{"$1234", asm.Descriptor{Mode: asm.ModeAbsolute, Param: 0x1234}},
		{"$12345", asm.Descriptor{Mode: asm.ModeAbsoluteLong, Param: 0x12345}},

		{"$50,x", asm.Descriptor{Mode: asm.ModeZeroPageX, Param: 0x50}},
		{"$1000,x", asm.Descriptor{Mode: asm.ModeAbsoluteX, Param: 0x1000}},
		{"$50,y", asm.Descriptor{Mode: asm.ModeZeroPageY, Param: 0x50}},
		{"$1000,y", asm.Descriptor{Mode: asm.ModeAbsoluteY, Param: 0x1000}},
		{"$50,s", asm.Descriptor{Mode: asm.ModeStackRelative, Param: 0x50}},

		// Larger S offsets and all U offsets take the post-byte form.
		{"$200,s", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseS | asm.SubOff16, Param: 0x200}},
		{"10,u", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseU | asm.SubOff8, Param: 0x10}},

		{"7f,pc", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.SubOffPC8, Param: 0x7f}},
		{"-200,pc", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.SubOffPC16, Param: -0x200}},

		{",x", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseX | asm.SubOff0}},
		{",x+", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseX | asm.SubInc1}},
		{",y++", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseY | asm.SubInc2}},
		{",-u", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseU | asm.SubDec1}},
		{",--s", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseS | asm.SubDec2}},

		{"a,x", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseX | asm.SubOffA}},
		{"b,s", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseS | asm.SubOffB}},
		{"d,u", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseU | asm.SubOffD}},

		// Register names win over their hex-numeral readings.
		{"a", asm.Descriptor{Mode: asm.ModeAccumulator}},
		{"de", asm.Descriptor{Mode: asm.ModeRegDE}},
		{"hl", asm.Descriptor{Mode: asm.ModeRegHL}},
		{"(hl)", asm.Descriptor{Mode: asm.ModeRegIndHL}},
		{"(ix)", asm.Descriptor{Mode: asm.ModeRegIndIX}},

		{"($50,x)", asm.Descriptor{Mode: asm.ModeIndirectX, Param: 0x50}},
		{"($1234,x)", asm.Descriptor{Mode: asm.ModeAbsIndirectX, Param: 0x1234}},
		{"($50,s),y", asm.Descriptor{Mode: asm.ModeStackRelativeY, Param: 0x50}},
		{"($50)", asm.Descriptor{Mode: asm.ModeIndirect, Param: 0x50}},
		{"($1234)", asm.Descriptor{Mode: asm.ModeAbsIndirect, Param: 0x1234}},
		{"($50),y", asm.Descriptor{Mode: asm.ModeIndirectY, Param: 0x50}},
		{"($1234),hl", asm.Descriptor{Mode: asm.ModeAbsoluteHL, Param: 0x1234}},

		{"<$1234", asm.Descriptor{Mode: asm.ModeDirect, Param: 0x1234}},

		{"[$50]", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.SubExtInd, Param: 0x50}},
		{"[$50],y", asm.Descriptor{Mode: asm.ModeIndirectLongY, Param: 0x50}},

		// A bracketed 5-bit offset promotes to the 8-bit indirect form.
		{"[5,x]", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseX | asm.SubOff8 | asm.SubIndirect, Param: 5}},
		{"[-10,x]", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseX | asm.SubOff8 | asm.SubIndirect, Param: -16}},
		{"[$100,y]", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseY | asm.SubOff16 | asm.SubIndirect, Param: 0x100}},
		{"[,--s]", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseS | asm.SubDec2 | asm.SubIndirect}},
		{"[b,y]", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.BaseY | asm.SubOffB | asm.SubIndirect}},
		{"[$100,pc]", asm.Descriptor{Mode: asm.ModeIndexed,
			Submode: asm.SubPostByte | asm.SubOffPC16 | asm.SubIndirect, Param: 0x100}},

		{"50,60", asm.Descriptor{Mode: asm.ModeDouble, Submode: 0x50, Param: 0x60}},
	}

	for _, c := range cases {
		d, st, out := parseOperandString(t, c.line)
		if st != mon.OK {
			t.Errorf("parseOperand(%q) failed with %v", c.line, st)
			continue
		}
		if out != "" {
			t.Errorf("parseOperand(%q) wrote %q, want no output", c.line, out)
		}
		if d != c.want {
			t.Errorf("parseOperand(%q) = %+v, want %+v", c.line, d, c.want)
		}
	}
}

// An offset beyond the signed 16-bit window degrades to the illegal mode
// and emits a diagnostic, but the parse itself succeeds so the rest of the
// line is still checked.
func TestParseOperandOffsetTooLarge(t *testing.T) {
	for _, line := range []string{"20000,pc", "20000,u", "[20000,x]"} {
		d, st, out := parseOperandString(t, line)
		if st != mon.OK {
			t.Errorf("parseOperand(%q) failed with %v", line, st)
			continue
		}
		if d.Mode != asm.ModeIllegal {
			t.Errorf("parseOperand(%q) mode = %v, want %v", line, d.Mode, asm.ModeIllegal)
		}
		if !strings.Contains(out, asm.DiagOffsetTooLarge) {
			t.Errorf("parseOperand(%q) output %q missing diagnostic", line, out)
		}
	}
}

func TestParseOperandDoubleFirstTooLarge(t *testing.T) {
	d, st, _ := parseOperandString(t, "$100,5")
	if st != mon.OK {
		t.Fatalf("parseOperand status = %v, want OK", st)
	}
	if d.Mode != asm.ModeIllegal {
		t.Errorf("mode = %v, want %v", d.Mode, asm.ModeIllegal)
	}
}

func TestParseOperandErrors(t *testing.T) {
	cases := []struct {
		line string
		want mon.Status
	}{
		{"($50", mon.ErrMissingCloseParen},
		{"(hl", mon.ErrMissingCloseParen},
		{"$50,q", mon.ErrIllegalInput},
		{",q", mon.ErrIllegalInput},
		{"#", mon.ErrIllegalInput},
	}
	for _, c := range cases {
		if _, st, _ := parseOperandString(t, c.line); st != c.want {
			t.Errorf("parseOperand(%q) status = %v, want %v", c.line, st, c.want)
		}
	}
}
