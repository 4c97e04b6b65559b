// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strconv"

	"github.com/retromon/mon"
)

// parseSpacePrefix consumes a `space:` prefix ("c:", "8:", "9:", "10:",
// "11:") if one is present. It returns SpaceDefault otherwise.
func (p *Parser) parseSpacePrefix() (mon.MemSpace, bool) {
	t := p.peek()
	if t.kind != tokWord || p.peek2().kind != tokColon {
		return mon.SpaceDefault, false
	}
	sp, ok := mon.SpaceByName(t.text)
	if !ok {
		return mon.SpaceDefault, false
	}
	p.pos += 2
	return sp, true
}

// canStartAddress reports whether the current token could begin an address:
// a numeral, a symbol name, or a space prefix.
func (p *Parser) canStartAddress() bool {
	t := p.peek()
	return t.kind == tokWord
}

// parseAddress resolves one address: an optional space prefix followed by a
// numeral or a symbol name. Offsets are mask-checked against the space
// width; symbol names are looked up in the space-qualified symbol table.
func (p *Parser) parseAddress() (mon.Addr, mon.Status) {
	space, hasSpace := p.parseSpacePrefix()
	if hasSpace {
		p.acceptSep()
	}
	space = p.sess.ResolveSpace(space)

	t := p.peek()
	switch {
	case t.isNumeral():
		p.next()
		v, st := resolveNumber(t, p.sess.Radix)
		if st != mon.OK {
			return mon.NoAddr, p.failAt(t, st)
		}
		a, st := mon.NewAddr(space, v)
		if st != mon.OK {
			return mon.NoAddr, p.failAt(t, st)
		}
		return a, mon.OK

	case t.kind == tokWord:
		p.next()
		off, ok := p.mach.SymbolLookup(space, t.text)
		if !ok {
			return mon.NoAddr, p.failAt(t, mon.ErrUndefinedLabel)
		}
		return mon.Addr{Space: space, Off: off}, mon.OK

	default:
		return mon.NoAddr, p.fail(mon.ErrExpectAddress)
	}
}

// parseOptAddress resolves an address when one is present and returns the
// NoAddr sentinel when the argument is omitted.
func (p *Parser) parseOptAddress() (mon.Addr, mon.Status) {
	p.acceptSep()
	if !p.canStartAddress() {
		return mon.NoAddr, mon.OK
	}
	return p.parseAddress()
}

// compactRange recognizes the 8-hex-digit shorthand: under the hexadecimal
// default radix only, a bare string of exactly eight hex digits splits into
// start and end offsets of four digits each. Under any other radix the same
// text reads as one ordinary number.
func (p *Parser) compactRange(t token) (mon.Range, bool) {
	if p.sess.Radix != mon.Hexadecimal || t.base != 0 || !t.numeral || len(t.text) != 8 {
		return mon.Range{}, false
	}
	start, _ := strconv.ParseUint(t.text[:4], 16, 16)
	end, _ := strconv.ParseUint(t.text[4:], 16, 16)
	space := p.sess.ResolveSpace(mon.SpaceDefault)
	return mon.Range{
		Start: mon.Addr{Space: space, Off: uint16(start)},
		End:   mon.Addr{Space: space, Off: uint16(end)},
	}, true
}

// parseRange resolves an address range: the compact 8-hex-digit shorthand,
// or a start address followed by an optional end address. A missing end
// leaves the range open unless the caller requires it closed.
func (p *Parser) parseRange(requireEnd bool) (mon.Range, mon.Status) {
	// the shorthand also accepts a leading space prefix
	save := p.pos
	space, hasSpace := p.parseSpacePrefix()
	if hasSpace {
		p.acceptSep()
	}
	if t := p.peek(); t.kind == tokWord {
		if r, ok := p.compactRange(t); ok {
			p.next()
			if hasSpace {
				sp := p.sess.ResolveSpace(space)
				r.Start.Space, r.End.Space = sp, sp
			}
			return r, mon.OK
		}
	}
	p.pos = save

	start, st := p.parseAddress()
	if st != mon.OK {
		if st == mon.ErrAddressTooLarge || st == mon.ErrExpectAddress {
			st = mon.ErrRangeBadStart
		}
		return mon.Range{}, st
	}

	p.acceptSep()
	if !p.canStartAddress() {
		if requireEnd {
			return mon.Range{}, p.fail(mon.ErrRangeBadEnd)
		}
		return mon.Range{Start: start, End: mon.NoAddr}, mon.OK
	}
	end, st := p.parseAddress()
	if st != mon.OK {
		if st == mon.ErrAddressTooLarge || st == mon.ErrExpectAddress {
			st = mon.ErrRangeBadEnd
		}
		return mon.Range{}, st
	}
	return mon.Range{Start: start, End: end}, mon.OK
}

// parseDNumber reads a number that is always decimal regardless of the
// session radix, as device and checkpoint numbers are. An explicit base
// prefix still wins.
func (p *Parser) parseDNumber(missing mon.Status) (int, mon.Status) {
	t := p.peek()
	if !t.isNumeral() {
		return 0, p.fail(missing)
	}
	p.next()
	if t.base != 0 {
		v, st := resolveNumber(t, p.sess.Radix)
		if st != mon.OK {
			return 0, p.failAt(t, missing)
		}
		return int(v), mon.OK
	}
	v, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil {
		return 0, p.failAt(t, missing)
	}
	return int(v), mon.OK
}

// parseFilename reads a filename: a quoted string, or raw line text up to
// the next whitespace.
func (p *Parser) parseFilename() (string, mon.Status) {
	t := p.peek()
	switch t.kind {
	case tokString:
		p.next()
		return t.text, mon.OK
	case tokEnd:
		return "", p.fail(mon.ErrExpectFilename)
	}
	// consume raw text to the next space, spanning punctuation tokens
	start := t.col
	end := p.endCol()
	stop := start
	for stop < end && !isSpace(p.line[stop]) {
		stop++
	}
	for !p.atEnd() && p.toks[p.pos].col < stop {
		p.pos++
	}
	return p.line[start:stop], mon.OK
}
