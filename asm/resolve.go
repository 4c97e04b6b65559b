// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// Resolution here is driven by the numeric magnitude of the operand, never
// by its surface syntax: $0050 and $50 both land in zero page.

// Immediate resolves a #value operand. Values above one byte use the
// 16-bit immediate form (65816 with a wide accumulator).
func Immediate(v int64) Descriptor {
	if v > 0xff {
		return Descriptor{Mode: ModeImmediate16, Param: int32(v)}
	}
	return Descriptor{Mode: ModeImmediate, Param: int32(v)}
}

// Direct resolves a bare numeric operand: zero page below 0x100, absolute
// below 0x10000, absolute-long above.
func Direct(v int64) Descriptor {
	switch {
	case v >= 0x10000:
		return Descriptor{Mode: ModeAbsoluteLong, Param: int32(v)}
	case v < 0x100:
		return Descriptor{Mode: ModeZeroPage, Param: int32(v)}
	default:
		return Descriptor{Mode: ModeAbsolute, Param: int32(v)}
	}
}

// IndexedX resolves an operand with an ,X suffix by the same magnitude rule
// as Direct.
func IndexedX(v int64) Descriptor {
	switch {
	case v >= 0x10000:
		return Descriptor{Mode: ModeAbsoluteLongX, Param: int32(v)}
	case v < 0x100:
		return Descriptor{Mode: ModeZeroPageX, Param: int32(v)}
	default:
		return Descriptor{Mode: ModeAbsoluteX, Param: int32(v)}
	}
}

// IndexedY resolves an operand with a ,Y suffix. There is no long form.
func IndexedY(v int64) Descriptor {
	if v < 0x100 {
		return Descriptor{Mode: ModeZeroPageY, Param: int32(v)}
	}
	return Descriptor{Mode: ModeAbsoluteY, Param: int32(v)}
}

// IndexedS resolves an operand with an ,S suffix. Small operands take the
// 65816 stack-relative form; anything else falls through to the 6809
// post-byte form with the S base register.
func IndexedS(v int64) Descriptor {
	if v < 0x100 {
		return Descriptor{Mode: ModeStackRelative, Param: int32(v)}
	}
	return PostByteOffset(v, BaseS)
}

// IndexedU resolves an operand with a ,U suffix (6809 only).
func IndexedU(v int64) Descriptor {
	return PostByteOffset(v, BaseU)
}

// PostByteOffset classifies a signed offset from a 6809 index base
// register by magnitude: a 5-bit offset embeds in the post-byte, 8- and
// 16-bit offsets carry the value in the parameter. Offsets beyond the
// signed 16-bit window degrade to ModeIllegal; callers emit
// DiagOffsetTooLarge and keep parsing.
func PostByteOffset(off int64, base byte) Descriptor {
	d := Descriptor{Mode: ModeIndexed}
	switch {
	case off >= -16 && off < 16:
		d.Submode = base | byte(off&0x1f)
	case off >= -128 && off < 128:
		d.Submode = SubPostByte | base | SubOff8
		d.Param = int32(off)
	case off >= -32768 && off < 32768:
		d.Submode = SubPostByte | base | SubOff16
		d.Param = int32(off)
	default:
		d.Mode = ModeIllegal
	}
	return d
}

// AutoInc builds the ,R+ / ,R++ post-increment sub-modes.
func AutoInc(base byte, by int) Descriptor {
	sub := SubInc1
	if by == 2 {
		sub = SubInc2
	}
	return Descriptor{Mode: ModeIndexed, Submode: SubPostByte | base | sub}
}

// AutoDec builds the ,-R / ,--R pre-decrement sub-modes.
func AutoDec(base byte, by int) Descriptor {
	sub := SubDec1
	if by == 2 {
		sub = SubDec2
	}
	return Descriptor{Mode: ModeIndexed, Submode: SubPostByte | base | sub}
}

// ZeroOffset builds the ,R zero-offset sub-mode.
func ZeroOffset(base byte) Descriptor {
	return Descriptor{Mode: ModeIndexed, Submode: SubPostByte | base | SubOff0}
}

// RegOffset builds the A,R / B,R / D,R accumulator-offset sub-modes.
func RegOffset(acc byte, base byte) Descriptor {
	var sub byte
	switch acc {
	case 'a':
		sub = SubOffA
	case 'b':
		sub = SubOffB
	default:
		sub = SubOffD
	}
	return Descriptor{Mode: ModeIndexed, Submode: SubPostByte | base | sub}
}

// ForcedDirect resolves a <value operand, which pins the direct-page form
// regardless of magnitude.
func ForcedDirect(v int64) Descriptor {
	return Descriptor{Mode: ModeDirect, Param: int32(v)}
}

// Indirected turns a post-byte indexed descriptor into its [bracketed]
// indirect form by setting the post-byte indirect bit. The embedded 5-bit
// offset form has no indirect encoding, so it is promoted to the 8-bit
// offset sub-mode first.
func Indirected(d Descriptor) Descriptor {
	if d.Mode != ModeIndexed {
		return d
	}
	if d.Submode&SubPostByte == 0 {
		off := d.Submode & 0x1f
		base := d.Submode & (3 << 5)
		d.Submode = SubPostByte | base | SubOff8
		d.Param = int32(int8(off<<3) >> 3) // sign-extend the 5-bit field
	}
	d.Submode |= SubIndirect
	return d
}

// PCRelative classifies an offset,PC operand: 8-bit when the offset fits a
// signed byte, 16-bit when it fits a signed word, illegal beyond that.
func PCRelative(off int64, indirect bool) Descriptor {
	d := Descriptor{Mode: ModeIndexed, Param: int32(off)}
	switch {
	case off >= -128 && off < 128:
		d.Submode = SubPostByte | SubOffPC8
	case off >= -32768 && off < 32768:
		d.Submode = SubPostByte | SubOffPC16
	default:
		d.Mode = ModeIllegal
		return d
	}
	if indirect {
		d.Submode |= SubIndirect
	}
	return d
}

// ExtendedIndirect builds the 6809 [addr] form.
func ExtendedIndirect(v int64) Descriptor {
	return Descriptor{Mode: ModeIndexed, Submode: SubPostByte | SubExtInd, Param: int32(v)}
}

// Indirect resolves a (value) operand by magnitude.
func Indirect(v int64) Descriptor {
	if v < 0x100 {
		return Descriptor{Mode: ModeIndirect, Param: int32(v)}
	}
	return Descriptor{Mode: ModeAbsIndirect, Param: int32(v)}
}

// IndirectX resolves a (value,X) operand by magnitude.
func IndirectX(v int64) Descriptor {
	if v < 0x100 {
		return Descriptor{Mode: ModeIndirectX, Param: int32(v)}
	}
	return Descriptor{Mode: ModeAbsIndirectX, Param: int32(v)}
}

// IndirectY resolves a (value),Y operand.
func IndirectY(v int64) Descriptor {
	return Descriptor{Mode: ModeIndirectY, Param: int32(v)}
}

// IndirectLongY resolves a [value],Y operand (65816).
func IndirectLongY(v int64) Descriptor {
	return Descriptor{Mode: ModeIndirectLongY, Param: int32(v)}
}

// StackRelativeY resolves a (value,S),Y operand (65816).
func StackRelativeY(v int64) Descriptor {
	return Descriptor{Mode: ModeStackRelativeY, Param: int32(v)}
}

// Double resolves the two-parameter value,value form. The first value must
// fit one byte; it rides in the sub-mode.
func Double(first, second int64) Descriptor {
	if first >= 0x100 {
		return Descriptor{Mode: ModeIllegal}
	}
	return Descriptor{Mode: ModeDouble, Submode: byte(first), Param: int32(second)}
}

var registerModes = map[string]Mode{
	"a":   ModeAccumulator,
	"b":   ModeRegB,
	"c":   ModeRegC,
	"d":   ModeRegD,
	"e":   ModeRegE,
	"h":   ModeRegH,
	"l":   ModeRegL,
	"ixh": ModeRegIXH,
	"ixl": ModeRegIXL,
	"iyh": ModeRegIYH,
	"iyl": ModeRegIYL,
	"af":  ModeRegAF,
	"bc":  ModeRegBC,
	"de":  ModeRegDE,
	"hl":  ModeRegHL,
	"ix":  ModeRegIX,
	"iy":  ModeRegIY,
	"sp":  ModeRegSP,
}

var registerIndirectModes = map[string]Mode{
	"bc": ModeRegIndBC,
	"de": ModeRegIndDE,
	"hl": ModeRegIndHL,
	"ix": ModeRegIndIX,
	"iy": ModeRegIndIY,
	"sp": ModeRegIndSP,
}

// RegisterDirect resolves a bare register-name operand to its fixed mode
// tag. No parameter is carried.
func RegisterDirect(name string) (Descriptor, bool) {
	m, ok := registerModes[name]
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Mode: m}, true
}

// RegisterIndirect resolves a (reg) operand to its fixed mode tag.
func RegisterIndirect(name string) (Descriptor, bool) {
	m, ok := registerIndirectModes[name]
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Mode: m}, true
}

// AbsoluteStore resolves the Z80 (nn),reg store forms.
func AbsoluteStore(v int64, reg string) (Descriptor, bool) {
	var m Mode
	switch reg {
	case "a":
		m = ModeAbsoluteA
	case "hl":
		m = ModeAbsoluteHL
	case "ix":
		m = ModeAbsoluteIX
	case "iy":
		m = ModeAbsoluteIY
	default:
		return Descriptor{}, false
	}
	return Descriptor{Mode: m, Param: int32(v)}, true
}
