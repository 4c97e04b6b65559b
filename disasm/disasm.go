// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm formats resolved addressing-mode descriptors back into
// monitor operand syntax. The assembler echo and the disassembly display
// both go through it, so an operand round-trips to the text a user would
// have typed.
package disasm

import (
	"fmt"

	"github.com/retromon/mon/asm"
)

// Operand formats for the non-indexed modes. Indexed (post-byte) forms
// carry their shape in the sub-mode and are handled separately.
var modeFormat = map[asm.Mode]string{
	asm.ModeImmediate:      "#$%02x",
	asm.ModeImmediate16:    "#$%04x",
	asm.ModeZeroPage:       "$%02x",
	asm.ModeZeroPageX:      "$%02x,x",
	asm.ModeZeroPageY:      "$%02x,y",
	asm.ModeAbsolute:       "$%04x",
	asm.ModeAbsoluteX:      "$%04x,x",
	asm.ModeAbsoluteY:      "$%04x,y",
	asm.ModeAbsoluteLong:   "$%06x",
	asm.ModeAbsoluteLongX:  "$%06x,x",
	asm.ModeIndirect:       "($%02x)",
	asm.ModeAbsIndirect:    "($%04x)",
	asm.ModeAbsIndirectX:   "($%04x,x)",
	asm.ModeIndirectX:      "($%02x,x)",
	asm.ModeIndirectY:      "($%02x),y",
	asm.ModeIndirectLongY:  "[$%02x],y",
	asm.ModeStackRelative:  "$%02x,s",
	asm.ModeStackRelativeY: "($%02x,s),y",
	asm.ModeDirect:         "<$%02x",
	asm.ModeAbsoluteA:      "($%04x),a",
	asm.ModeAbsoluteHL:     "($%04x),hl",
	asm.ModeAbsoluteIX:     "($%04x),ix",
	asm.ModeAbsoluteIY:     "($%04x),iy",
}

var registerNames = map[asm.Mode]string{
	asm.ModeAccumulator: "a",
	asm.ModeRegB:        "b",
	asm.ModeRegC:        "c",
	asm.ModeRegD:        "d",
	asm.ModeRegE:        "e",
	asm.ModeRegH:        "h",
	asm.ModeRegL:        "l",
	asm.ModeRegIXH:      "ixh",
	asm.ModeRegIXL:      "ixl",
	asm.ModeRegIYH:      "iyh",
	asm.ModeRegIYL:      "iyl",
	asm.ModeRegAF:       "af",
	asm.ModeRegBC:       "bc",
	asm.ModeRegDE:       "de",
	asm.ModeRegHL:       "hl",
	asm.ModeRegIX:       "ix",
	asm.ModeRegIY:       "iy",
	asm.ModeRegSP:       "sp",
	asm.ModeRegIndBC:    "(bc)",
	asm.ModeRegIndDE:    "(de)",
	asm.ModeRegIndHL:    "(hl)",
	asm.ModeRegIndIX:    "(ix)",
	asm.ModeRegIndIY:    "(iy)",
	asm.ModeRegIndSP:    "(sp)",
}

var baseNames = [4]string{"x", "y", "u", "s"}

// Operand renders a descriptor as monitor operand text. Implied operands
// and illegal descriptors render as the empty string.
func Operand(d asm.Descriptor) string {
	switch d.Mode {
	case asm.ModeIllegal, asm.ModeImplied:
		return ""
	case asm.ModeIndexed:
		return indexedOperand(d)
	case asm.ModeDouble:
		return fmt.Sprintf("$%02x,$%02x", d.Submode, uint16(d.Param))
	}
	if name, ok := registerNames[d.Mode]; ok {
		return name
	}
	if f, ok := modeFormat[d.Mode]; ok {
		return fmt.Sprintf(f, d.Param)
	}
	return ""
}

// indexedOperand decodes a 6809 post-byte sub-mode back to source form.
func indexedOperand(d asm.Descriptor) string {
	if d.Submode&asm.SubPostByte == 0 {
		// embedded 5-bit offset
		off := int32(int8(d.Submode<<3) >> 3)
		return fmt.Sprintf("%s,%s", signedHex(off), baseNames[d.Submode>>5&3])
	}

	base := baseNames[d.Submode>>5&3]
	indirect := d.Submode&asm.SubIndirect != 0
	var s string
	switch d.Submode & 0x0f {
	case asm.SubInc1:
		s = "," + base + "+"
	case asm.SubInc2:
		s = "," + base + "++"
	case asm.SubDec1:
		s = ",-" + base
	case asm.SubDec2:
		s = ",--" + base
	case asm.SubOff0:
		s = "," + base
	case asm.SubOffA:
		s = "a," + base
	case asm.SubOffB:
		s = "b," + base
	case asm.SubOffD:
		s = "d," + base
	case asm.SubOff8, asm.SubOff16:
		s = fmt.Sprintf("%s,%s", signedHex(d.Param), base)
	case asm.SubOffPC8, asm.SubOffPC16:
		s = fmt.Sprintf("%s,pc", signedHex(d.Param))
	case asm.SubExtInd:
		return fmt.Sprintf("[$%04x]", uint16(d.Param))
	}
	if indirect {
		return "[" + s + "]"
	}
	return s
}

func signedHex(v int32) string {
	if v < 0 {
		return fmt.Sprintf("-$%02x", uint32(-v))
	}
	return fmt.Sprintf("$%02x", uint32(v))
}
