// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/retromon/mon"

// evalExpr evaluates an arithmetic expression over numbers, register reads
// and parenthesized sub-expressions. All four operators bind equally and
// associate left to right; there is no multiplicative precedence. Division
// by zero yields 1.
func (p *Parser) evalExpr() (int, mon.Status) {
	v, st := p.evalValue()
	if st != mon.OK {
		return 0, st
	}
	for {
		var op tokKind
		switch p.peek().kind {
		case tokPlus, tokMinus, tokStar, tokSlash:
			op = p.next().kind
		default:
			return v, mon.OK
		}
		rhs, st := p.evalValue()
		if st != mon.OK {
			return 0, st
		}
		switch op {
		case tokPlus:
			v += rhs
		case tokMinus:
			v -= rhs
		case tokStar:
			v *= rhs
		case tokSlash:
			if rhs == 0 {
				v = 1
			} else {
				v /= rhs
			}
		}
	}
}

// evalValue evaluates one expression operand.
func (p *Parser) evalValue() (int, mon.Status) {
	t := p.peek()
	switch {
	case t.kind == tokLParen:
		p.next()
		v, st := p.evalExpr()
		if st != mon.OK {
			return 0, st
		}
		if !p.accept(tokRParen) {
			return 0, p.fail(mon.ErrMissingCloseParen)
		}
		return v, mon.OK

	case t.isNumeral():
		p.next()
		v, st := resolveNumber(t, p.sess.Radix)
		if st != mon.OK {
			return 0, p.failAt(t, st)
		}
		return int(v), mon.OK

	case t.kind == tokWord:
		// a register read, optionally space-qualified
		space, _ := p.parseSpacePrefix()
		rt := p.peek()
		if rt.kind != tokWord {
			return 0, p.fail(mon.ErrIllegalInput)
		}
		reg, ok := p.mach.RegValid(p.sess.ResolveSpace(space), rt.text)
		if !ok {
			return 0, p.fail(mon.ErrIllegalInput)
		}
		p.next()
		return p.mach.RegGet(reg), mon.OK

	default:
		return 0, p.fail(mon.ErrIllegalInput)
	}
}

// parseOptExprDefault evaluates an optional expression argument, returning
// def when it is absent.
func (p *Parser) parseOptExprDefault(def int) (int, mon.Status) {
	p.acceptSep()
	switch p.peek().kind {
	case tokEnd:
		return def, mon.OK
	default:
		return p.evalExpr()
	}
}
