// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/retromon/mon"

// parseCond builds a checkpoint guard tree. Comparisons and logical
// combinators form one flat operator class with no precedence; chains
// reduce left to right, and parentheses are the only grouping. A trailing
// operator with no right operand is the incomplete-operator error.
func (p *Parser) parseCond() (*mon.CondNode, mon.Status) {
	node, st := p.parseCondOperand()
	if st != mon.OK {
		return nil, st
	}
	for p.peek().kind == tokCondOp {
		op := p.next().op
		rhs, st := p.parseCondOperand()
		if st == mon.ErrIncompleteCondOp || (st != mon.OK && p.peek().kind == tokEnd) {
			return nil, p.fail(mon.ErrIncompleteCondOp)
		}
		if st != mon.OK {
			return nil, st
		}
		node = mon.NewCondBinary(op, node, rhs)
	}
	return node, mon.OK
}

// parseCondOperand parses one guard operand: a parenthesized sub-tree, a
// register reference, a constant, or a bank-qualified memory reference
// written @bankname:address or @bankname:(sub-tree).
func (p *Parser) parseCondOperand() (*mon.CondNode, mon.Status) {
	t := p.peek()
	switch {
	case t.kind == tokLParen:
		p.next()
		n, st := p.parseCond()
		if st != mon.OK {
			return nil, st
		}
		if !p.accept(tokRParen) {
			return nil, p.fail(mon.ErrMissingCloseParen)
		}
		n.Paren = true
		return n, mon.OK

	case t.kind == tokAt:
		return p.parseCondBankMem()

	case t.kind == tokWord:
		// register names win over numerals: A is the accumulator, not $a
		save := p.pos
		space, hasSpace := p.parseSpacePrefix()
		rt := p.peek()
		if rt.kind == tokWord {
			if reg, ok := p.mach.RegValid(p.sess.ResolveSpace(space), rt.text); ok {
				p.next()
				return mon.NewCondReg(reg), mon.OK
			}
		}
		p.pos = save
		// bankname:operand, with or without the leading @
		if !hasSpace && p.peek2().kind == tokColon {
			p.pos += 2
			return p.parseCondBankRef(t)
		}
		if t.isNumeral() {
			p.next()
			v, st := resolveNumber(t, p.sess.Radix)
			if st != mon.OK {
				return nil, p.failAt(t, st)
			}
			return mon.NewCondConst(int(v)), mon.OK
		}
		return nil, p.fail(mon.ErrIllegalInput)

	case t.kind == tokEnd:
		return nil, p.fail(mon.ErrIncompleteCondOp)

	default:
		return nil, p.fail(mon.ErrIllegalInput)
	}
}

// parseCondBankMem parses the @bankname: forms.
func (p *Parser) parseCondBankMem() (*mon.CondNode, mon.Status) {
	p.next() // '@'
	nt := p.next()
	if nt.kind != tokWord {
		return nil, p.failAt(nt, mon.ErrIllegalInput)
	}
	if !p.accept(tokColon) {
		return nil, p.fail(mon.ErrIllegalInput)
	}
	return p.parseCondBankRef(nt)
}

// parseCondBankRef parses the operand after `bankname:`. An unknown bank
// name is illegal input, deliberately distinct from an undefined label.
func (p *Parser) parseCondBankRef(nt token) (*mon.CondNode, mon.Status) {
	bank, ok := p.mach.BankNum(p.sess.DefaultSpace, nt.text)
	if !ok {
		return nil, p.failAt(nt, mon.ErrIllegalInput)
	}

	if p.peek().kind == tokLParen {
		p.next()
		sub, st := p.parseCond()
		if st != mon.OK {
			return nil, st
		}
		if !p.accept(tokRParen) {
			return nil, p.fail(mon.ErrMissingCloseParen)
		}
		sub.Paren = true
		return mon.NewCondBankMem(bank, nt.text, 0, sub), mon.OK
	}

	a, st := p.parseAddress()
	if st != mon.OK {
		return nil, st
	}
	return mon.NewCondBankMem(bank, nt.text, int(a.Off), nil), mon.OK
}
