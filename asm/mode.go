// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm resolves inline-assembler operands into addressing-mode
// descriptors for the CPU families the monitor supports. A descriptor names
// the mode, its sub-mode refinements (index register, offset width, auto
// increment/decrement), and one parameter of up to 24 bits. Descriptors are
// consumed by an instruction encoder; this package never emits opcode
// bytes.
package asm

// A Mode is an addressing-mode tag. The set spans the 6502/65816 family,
// the 6809's post-byte indexed forms, and the Z80's register modes.
type Mode byte

const (
	ModeIllegal Mode = iota
	ModeImplied
	ModeAccumulator
	ModeImmediate
	ModeImmediate16
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeAbsoluteLong
	ModeAbsoluteLongX
	ModeIndirect
	ModeAbsIndirect
	ModeAbsIndirectX
	ModeIndirectX
	ModeIndirectY
	ModeIndirectLongY
	ModeStackRelative
	ModeStackRelativeY
	ModeDouble
	ModeDirect
	ModeIndexed // 6809 post-byte form; refinement lives in the sub-mode

	// Z80 register-direct operands. No parameter.
	ModeRegA
	ModeRegB
	ModeRegC
	ModeRegD
	ModeRegE
	ModeRegH
	ModeRegL
	ModeRegIXH
	ModeRegIXL
	ModeRegIYH
	ModeRegIYL
	ModeRegAF
	ModeRegBC
	ModeRegDE
	ModeRegHL
	ModeRegIX
	ModeRegIY
	ModeRegSP

	// Z80 register-indirect operands.
	ModeRegIndBC
	ModeRegIndDE
	ModeRegIndHL
	ModeRegIndIX
	ModeRegIndIY
	ModeRegIndSP

	// Z80 (nn),reg stores.
	ModeAbsoluteA
	ModeAbsoluteHL
	ModeAbsoluteIX
	ModeAbsoluteIY
)

var modeNames = map[Mode]string{
	ModeIllegal:        "illegal",
	ModeImplied:        "implied",
	ModeAccumulator:    "accumulator",
	ModeImmediate:      "immediate",
	ModeImmediate16:    "immediate16",
	ModeZeroPage:       "zeropage",
	ModeZeroPageX:      "zeropage,x",
	ModeZeroPageY:      "zeropage,y",
	ModeAbsolute:       "absolute",
	ModeAbsoluteX:      "absolute,x",
	ModeAbsoluteY:      "absolute,y",
	ModeAbsoluteLong:   "absolute long",
	ModeAbsoluteLongX:  "absolute long,x",
	ModeIndirect:       "indirect",
	ModeAbsIndirect:    "absolute indirect",
	ModeAbsIndirectX:   "absolute indirect,x",
	ModeIndirectX:      "indirect,x",
	ModeIndirectY:      "indirect,y",
	ModeIndirectLongY:  "indirect long,y",
	ModeStackRelative:  "stack relative",
	ModeStackRelativeY: "stack relative,y",
	ModeDouble:         "double",
	ModeDirect:         "direct",
	ModeIndexed:        "indexed",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "register"
}

// Sub-mode bits for ModeIndexed, mirroring the 6809 post-byte layout: bits
// 5-6 select the base register, the low nibble selects the refinement, and
// SubPostByte marks forms that need a full post-byte (everything but the
// embedded 5-bit offset).
const (
	SubInc1     byte = 0x00
	SubInc2     byte = 0x01
	SubDec1     byte = 0x02
	SubDec2     byte = 0x03
	SubOff0     byte = 0x04
	SubOffB     byte = 0x05
	SubOffA     byte = 0x06
	SubOff8    byte = 0x08
	SubOff16   byte = 0x09
	SubOffD    byte = 0x0b
	SubOffPC8  byte = 0x0c
	SubOffPC16 byte = 0x0d
	SubExtInd  byte = 0x0f

	SubIndirect byte = 0x10
	SubPostByte byte = 0x80
)

// Index base registers for ModeIndexed sub-modes.
const (
	BaseX byte = 0 << 5
	BaseY byte = 1 << 5
	BaseU byte = 2 << 5
	BaseS byte = 3 << 5
)

// A Descriptor is a fully resolved operand: the addressing mode, its
// sub-mode bits, and one parameter value of up to 24 bits.
type Descriptor struct {
	Mode    Mode
	Submode byte
	Param   int32
}

// DiagOffsetTooLarge is the diagnostic emitted when an indexed or
// PC-relative offset does not fit a signed 16-bit window. The descriptor
// degrades to ModeIllegal but parsing of the line continues.
const DiagOffsetTooLarge = "offset too large even for 16 bits (signed)"
