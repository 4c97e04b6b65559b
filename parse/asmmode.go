// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"github.com/retromon/mon"
	"github.com/retromon/mon/asm"
)

// indexBases maps index-register names to their post-byte base bits.
var indexBases = map[string]byte{
	"x": asm.BaseX,
	"y": asm.BaseY,
	"u": asm.BaseU,
	"s": asm.BaseS,
}

// noteIllegal emits the oversized-offset diagnostic for descriptors that
// degraded to the illegal mode. The caller keeps parsing; the failure is
// soft by design of the original monitor.
func (p *Parser) noteIllegal(d asm.Descriptor) asm.Descriptor {
	if d.Mode == asm.ModeIllegal {
		p.printf("%s\n", asm.DiagOffsetTooLarge)
	}
	return d
}

// operandNumber reads a possibly negative numeral under the session radix.
func (p *Parser) operandNumber() (int64, mon.Status) {
	neg := p.accept(tokMinus)
	t := p.peek()
	if !t.isNumeral() {
		return 0, p.fail(mon.ErrIllegalInput)
	}
	p.next()
	v, st := resolveNumber(t, p.sess.Radix)
	if st != mon.OK {
		return 0, p.failAt(t, st)
	}
	if neg {
		v = -v
	}
	return v, mon.OK
}

// parseOperand resolves one instruction operand to an addressing-mode
// descriptor. Mode choice is driven by the numeric magnitude of the
// operand, never by its surface syntax; register names take priority over
// their hex-numeral readings, so "lda a" is the accumulator form.
func (p *Parser) parseOperand() (asm.Descriptor, mon.Status) {
	t := p.peek()
	switch {
	case t.kind == tokEnd:
		return asm.Descriptor{Mode: asm.ModeImplied}, mon.OK

	case t.kind == tokHash:
		p.next()
		v, st := p.operandNumber()
		if st != mon.OK {
			return asm.Descriptor{}, st
		}
		return asm.Immediate(v), mon.OK

	case t.kind == tokCondOp && t.op == mon.CondLess:
		p.next()
		v, st := p.operandNumber()
		if st != mon.OK {
			return asm.Descriptor{}, st
		}
		return asm.ForcedDirect(v), mon.OK

	case t.kind == tokComma:
		p.next()
		return p.parseAutoIndexed()

	case t.kind == tokLParen:
		p.next()
		return p.parseParenOperand()

	case t.kind == tokLBracket:
		p.next()
		return p.parseBracketOperand()

	case t.kind == tokWord || t.kind == tokMinus:
		if t.kind == tokWord {
			name := strings.ToLower(t.text)
			// accumulator-offset indexed: A,R B,R D,R
			if base, ok := p.accOffsetBase(name); ok {
				p.pos += 3
				return asm.RegOffset(name[0], base), mon.OK
			}
			if d, ok := asm.RegisterDirect(name); ok {
				p.next()
				return d, mon.OK
			}
		}
		return p.parseNumberOperand()

	default:
		return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
	}
}

// accOffsetBase matches the lookahead for the A,R / B,R / D,R forms.
func (p *Parser) accOffsetBase(name string) (byte, bool) {
	if name != "a" && name != "b" && name != "d" {
		return 0, false
	}
	if p.peek2().kind != tokComma || p.pos+2 >= p.end {
		return 0, false
	}
	rt := p.toks[p.pos+2]
	if rt.kind != tokWord {
		return 0, false
	}
	base, ok := indexBases[strings.ToLower(rt.text)]
	return base, ok
}

// parseNumberOperand handles the operand forms that open with a number:
// direct, indexed, PC-relative and the double-parameter form.
func (p *Parser) parseNumberOperand() (asm.Descriptor, mon.Status) {
	v, st := p.operandNumber()
	if st != mon.OK {
		return asm.Descriptor{}, st
	}
	if !p.accept(tokComma) {
		return asm.Direct(v), mon.OK
	}

	t := p.peek()
	if t.isNumeral() || t.kind == tokMinus {
		second, st := p.operandNumber()
		if st != mon.OK {
			return asm.Descriptor{}, st
		}
		return asm.Double(v, second), mon.OK
	}
	if t.kind != tokWord {
		return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
	}
	p.next()
	switch strings.ToLower(t.text) {
	case "x":
		return asm.IndexedX(v), mon.OK
	case "y":
		return asm.IndexedY(v), mon.OK
	case "s":
		return p.noteIllegal(asm.IndexedS(v)), mon.OK
	case "u":
		return p.noteIllegal(asm.IndexedU(v)), mon.OK
	case "pc":
		return p.noteIllegal(asm.PCRelative(v, false)), mon.OK
	default:
		return asm.Descriptor{}, p.failAt(t, mon.ErrIllegalInput)
	}
}

// parseAutoIndexed handles the 6809 comma-first forms: ,R ,R+ ,R++ ,-R
// and ,--R. The leading comma has been consumed.
func (p *Parser) parseAutoIndexed() (asm.Descriptor, mon.Status) {
	if p.accept(tokMinus) {
		by := 1
		if p.accept(tokMinus) {
			by = 2
		}
		base, st := p.indexRegister()
		if st != mon.OK {
			return asm.Descriptor{}, st
		}
		return asm.AutoDec(base, by), mon.OK
	}

	base, st := p.indexRegister()
	if st != mon.OK {
		return asm.Descriptor{}, st
	}
	by := 0
	for p.accept(tokPlus) {
		by++
	}
	switch by {
	case 0:
		return asm.ZeroOffset(base), mon.OK
	case 1:
		return asm.AutoInc(base, 1), mon.OK
	default:
		return asm.AutoInc(base, 2), mon.OK
	}
}

// indexRegister reads one of the X, Y, U, S base registers.
func (p *Parser) indexRegister() (byte, mon.Status) {
	t := p.peek()
	if t.kind == tokWord {
		if base, ok := indexBases[strings.ToLower(t.text)]; ok {
			p.next()
			return base, mon.OK
		}
	}
	return 0, p.fail(mon.ErrIllegalInput)
}

// parseParenOperand handles indirect forms and the Z80 register-indirect
// and store forms. The '(' has been consumed.
func (p *Parser) parseParenOperand() (asm.Descriptor, mon.Status) {
	if t := p.peek(); t.kind == tokWord && !t.isNumeral() {
		if d, ok := asm.RegisterIndirect(strings.ToLower(t.text)); ok {
			p.next()
			if !p.accept(tokRParen) {
				return asm.Descriptor{}, p.fail(mon.ErrMissingCloseParen)
			}
			return d, mon.OK
		}
	}

	v, st := p.operandNumber()
	if st != mon.OK {
		return asm.Descriptor{}, st
	}

	if p.accept(tokComma) {
		t := p.next()
		if t.kind != tokWord {
			return asm.Descriptor{}, p.failAt(t, mon.ErrIllegalInput)
		}
		switch strings.ToLower(t.text) {
		case "x":
			if !p.accept(tokRParen) {
				return asm.Descriptor{}, p.fail(mon.ErrMissingCloseParen)
			}
			return asm.IndirectX(v), mon.OK
		case "s":
			// ($nn,S),Y
			if !p.accept(tokRParen) {
				return asm.Descriptor{}, p.fail(mon.ErrMissingCloseParen)
			}
			if !p.accept(tokComma) || !p.wordIs("y") {
				return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
			}
			p.next()
			return asm.StackRelativeY(v), mon.OK
		default:
			return asm.Descriptor{}, p.failAt(t, mon.ErrIllegalInput)
		}
	}

	if !p.accept(tokRParen) {
		return asm.Descriptor{}, p.fail(mon.ErrMissingCloseParen)
	}
	if p.accept(tokComma) {
		t := p.next()
		if t.kind != tokWord {
			return asm.Descriptor{}, p.failAt(t, mon.ErrIllegalInput)
		}
		name := strings.ToLower(t.text)
		if name == "y" {
			return asm.IndirectY(v), mon.OK
		}
		if d, ok := asm.AbsoluteStore(v, name); ok {
			return d, mon.OK
		}
		return asm.Descriptor{}, p.failAt(t, mon.ErrIllegalInput)
	}
	return asm.Indirect(v), mon.OK
}

// parseBracketOperand handles the bracketed indirect forms: the 65816
// [addr] and [addr],Y, and the 6809 post-byte indirect family. The '[' has
// been consumed.
func (p *Parser) parseBracketOperand() (asm.Descriptor, mon.Status) {
	if p.accept(tokComma) {
		d, st := p.parseAutoIndexed()
		if st != mon.OK {
			return asm.Descriptor{}, st
		}
		if !p.accept(tokRBracket) {
			return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
		}
		return asm.Indirected(d), mon.OK
	}

	if t := p.peek(); t.kind == tokWord {
		if base, ok := p.accOffsetBase(strings.ToLower(t.text)); ok {
			p.pos += 3
			if !p.accept(tokRBracket) {
				return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
			}
			return asm.Indirected(asm.RegOffset(strings.ToLower(t.text)[0], base)), mon.OK
		}
	}

	v, st := p.operandNumber()
	if st != mon.OK {
		return asm.Descriptor{}, st
	}

	if p.accept(tokComma) {
		t := p.next()
		if t.kind != tokWord {
			return asm.Descriptor{}, p.failAt(t, mon.ErrIllegalInput)
		}
		name := strings.ToLower(t.text)
		if name == "pc" {
			if !p.accept(tokRBracket) {
				return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
			}
			return p.noteIllegal(asm.PCRelative(v, true)), mon.OK
		}
		base, ok := indexBases[name]
		if !ok {
			return asm.Descriptor{}, p.failAt(t, mon.ErrIllegalInput)
		}
		if !p.accept(tokRBracket) {
			return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
		}
		return p.noteIllegal(asm.Indirected(asm.PostByteOffset(v, base))), mon.OK
	}

	if !p.accept(tokRBracket) {
		return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
	}
	if p.accept(tokComma) {
		if p.wordIs("y") {
			p.next()
			return asm.IndirectLongY(v), mon.OK
		}
		return asm.Descriptor{}, p.fail(mon.ErrIllegalInput)
	}
	return asm.ExtendedIndirect(v), mon.OK
}
