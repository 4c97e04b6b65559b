// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse implements the monitor's command interpreter: a tokenizer,
// the number/address/expression/condition resolvers, and a dispatcher that
// validates each command's arguments and invokes one action on the hosting
// machine.
//
// The interpreter is strictly line oriented. A line holds one or more
// commands separated by ';'; the first error aborts the remainder of the
// line, but commands already completed are not rolled back. The only state
// carried across lines is the session context and the assembler-entry mode.
package parse

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/cmd"

	"github.com/retromon/mon"
	"github.com/retromon/mon/asm"
)

// Parser interprets monitor command lines against a session and a machine.
type Parser struct {
	sess *mon.Session
	mach mon.Machine
	w    io.Writer

	line   string
	toks   []token
	pos    int // current token, segment relative
	end    int // segment end, exclusive
	errCol int

	asmMode   bool
	asmAddr   mon.Addr
	inAsmList bool // rest of the current line is instructions
}

// New returns a parser bound to a session, a machine and an output writer
// for diagnostics.
func New(sess *mon.Session, mach mon.Machine, w io.Writer) *Parser {
	return &Parser{sess: sess, mach: mach, w: w, errCol: -1}
}

func (p *Parser) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// InAssembler reports whether the parser is in assembler-entry mode, where
// lines are read as instructions instead of commands.
func (p *Parser) InAssembler() bool { return p.asmMode }

// AssembleAddr is the address the next assembler-mode instruction will be
// stored at. Meaningful only while InAssembler is true.
func (p *Parser) AssembleAddr() mon.Addr { return p.asmAddr }

// LastErrorCol is the byte offset within the last executed line where the
// failure was detected, or -1 if the line succeeded. The driver uses it to
// place the caret in the error echo.
func (p *Parser) LastErrorCol() int { return p.errCol }

// ExecuteLine interprets one command line. In assembler-entry mode the line
// is an instruction (or blank, which leaves the mode).
func (p *Parser) ExecuteLine(line string) mon.Status {
	p.line = line
	p.errCol = -1

	toks, badAt, st := tokenizeAt(line)
	if st != mon.OK {
		p.errCol = badAt
		return st
	}
	p.toks = toks

	if p.asmMode {
		return p.assemblyLine()
	}

	start, extra := 0, 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) && toks[i].kind != tokSemi {
			continue
		}
		p.pos, p.end = start, i
		var st mon.Status
		if p.inAsmList {
			// segments after an inline assemble are further instructions
			if !p.atEnd() {
				st = p.assembleOne()
				extra++
			}
		} else {
			st = p.executeCommand()
		}
		if st != mon.OK {
			p.inAsmList = false
			return st
		}
		start = i + 1
	}
	if p.inAsmList {
		p.inAsmList = false
		// a one-line instruction list does not enter interactive entry
		if extra > 0 {
			p.asmMode = false
		}
	}
	return mon.OK
}

// tokenizeAt wraps tokenize, reporting the column of a bad character.
func tokenizeAt(line string) ([]token, int, mon.Status) {
	toks, st := tokenize(line)
	if st != mon.OK {
		col := len(line)
		if n := len(toks); n > 0 {
			// the bad character sits after the last good token
			last := toks[n-1]
			col = last.col + len(last.text) + 1
		}
		return toks, col, st
	}
	return toks, -1, mon.OK
}

// Token-stream helpers. A synthetic end token carries the column one past
// the segment, so failures at end of input still place the caret sensibly.

func (p *Parser) endCol() int {
	if p.end < len(p.toks) {
		return p.toks[p.end].col
	}
	return len(p.line)
}

func (p *Parser) atEnd() bool { return p.pos >= p.end }

func (p *Parser) peek() token {
	if p.atEnd() {
		return token{kind: tokEnd, col: p.endCol()}
	}
	return p.toks[p.pos]
}

func (p *Parser) peek2() token {
	if p.pos+1 >= p.end {
		return token{kind: tokEnd, col: p.endCol()}
	}
	return p.toks[p.pos+1]
}

func (p *Parser) next() token {
	t := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) accept(k tokKind) bool {
	if p.peek().kind == k {
		p.pos++
		return true
	}
	return false
}

// acceptSep consumes the optional comma separator between arguments.
func (p *Parser) acceptSep() { p.accept(tokComma) }

// fail records the failure column at the current token and returns st.
func (p *Parser) fail(st mon.Status) mon.Status {
	if p.errCol < 0 {
		p.errCol = p.peek().col
	}
	return st
}

// failAt is fail for a token that has already been consumed.
func (p *Parser) failAt(t token, st mon.Status) mon.Status {
	if p.errCol < 0 {
		p.errCol = t.col
	}
	return st
}

// expectEnd rejects trailing arguments after a completed command form.
func (p *Parser) expectEnd() mon.Status {
	if !p.atEnd() {
		return p.fail(mon.ErrExpectEndOfCommand)
	}
	return mon.OK
}

// wordIs reports whether the current token is the given keyword,
// case-insensitively.
func (p *Parser) wordIs(s string) bool {
	t := p.peek()
	return t.kind == tokWord && strings.EqualFold(t.text, s)
}

// restOfLine consumes the remaining tokens of the segment and returns the
// raw line text they came from.
func (p *Parser) restOfLine() string {
	if p.atEnd() {
		return ""
	}
	start := p.peek().col
	end := p.endCol()
	p.pos = p.end
	return strings.TrimSpace(p.line[start:end])
}

// executeCommand dispatches one ';'-delimited segment.
func (p *Parser) executeCommand() mon.Status {
	t := p.peek()
	switch {
	case t.kind == tokEnd:
		return mon.OK

	case t.kind == tokCondOp && t.op == mon.CondGreater:
		p.next()
		// >> enters data in binary notation, which is still unsupported.
		if n := p.peek(); n.kind == tokCondOp && n.op == mon.CondGreater {
			return p.notImplemented()
		}
		return p.cmdEnterData()

	case t.kind == tokAt:
		p.next()
		return p.cmdDiskCommand()

	case t.kind == tokTilde:
		p.next()
		return p.cmdConvert()

	case t.kind == tokWord:
		// <label> = <address> assignment, by the leading-dot convention
		if strings.HasPrefix(t.text, ".") && p.peek2().kind == tokEq {
			return p.cmdLabelAssign()
		}
		sel, _, err := monCmds.LookupCommand(strings.ToLower(t.text))
		switch err {
		case nil:
		case cmd.ErrAmbiguous:
			return p.fail(mon.ErrIllegalInput)
		default:
			return p.fail(mon.ErrBadCommand)
		}
		p.next()
		handler := sel.Data.(func(*Parser) mon.Status)
		return handler(p)

	default:
		return p.fail(mon.ErrBadCommand)
	}
}

// Assembler-entry mode. Entered by the assemble command, left again on a
// blank line. Each line holds one instruction, or several separated by ';'.

func (p *Parser) assemblyLine() mon.Status {
	if strings.TrimSpace(p.line) == "" {
		p.asmMode = false
		return mon.OK
	}
	start := 0
	for i := 0; i <= len(p.toks); i++ {
		if i < len(p.toks) && p.toks[i].kind != tokSemi {
			continue
		}
		p.pos, p.end = start, i
		if !p.atEnd() {
			if st := p.assembleOne(); st != mon.OK {
				return st
			}
		}
		start = i + 1
	}
	return mon.OK
}

// assembleOne parses and encodes a single instruction at the current
// assembly address. An illegal-mode operand has already printed its
// diagnostic; the instruction is skipped and parsing continues.
func (p *Parser) assembleOne() mon.Status {
	t := p.next()
	if t.kind != tokWord {
		return p.failAt(t, mon.ErrIllegalInput)
	}
	d, st := p.parseOperand()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if d.Mode == asm.ModeIllegal {
		return mon.OK
	}
	n, err := p.mach.AssembleInstr(p.asmAddr, strings.ToLower(t.text), d)
	if err != nil {
		p.printf("%v\n", err)
		return mon.OK
	}
	p.asmAddr.Off += uint16(n)
	return mon.OK
}
