// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/retromon/mon"

func isSpace(c byte) bool  { return c == ' ' || c == '\t' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Word characters cover labels, mnemonics, file-ish arguments and bare
// numerals alike. The resolvers sort out which is which.
func isWordChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '.'
}

// guessNumeral classifies a string of hex digits by the narrowest digit set
// it fits. Numerals containing a-f need no guess; hex is forced for them.
func guessNumeral(s string) numGuess {
	guess := guessBin
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '0' || c == '1':
		case c <= '7':
			if guess == guessBin {
				guess = guessOct
			}
		case c <= '9':
			if guess != guessDec {
				guess = guessDec
			}
		default:
			return guessNone
		}
	}
	return guess
}

// allHexDigits reports whether s is nonempty and made only of hex digits.
func allHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

// tokenize splits one input line into tokens. It never interprets numbers;
// it only records enough syntax (digit-set guess, explicit base prefix) for
// the radix resolver to work with later.
func tokenize(line string) ([]token, mon.Status) {
	var toks []token
	i := 0
	for i < len(line) {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			break
		}

		col := i
		c := line[i]
		switch {
		case c == '"':
			i++
			start := i
			for i < len(line) && line[i] != '"' {
				i++
			}
			text := line[start:i]
			if i < len(line) {
				i++ // closing quote
			}
			toks = append(toks, token{kind: tokString, text: text, col: col})

		case c == '&' && i+1 < len(line) && line[i+1] == '&':
			toks = append(toks, token{kind: tokCondOp, op: mon.CondAnd, col: col})
			i += 2

		case c == '$' || c == '%' || c == '&':
			// Explicit-base numeral. A lone % or & with no digits after it
			// would be a syntax error anyway; report it as illegal input by
			// emitting a word token with no digits.
			base := 16
			switch c {
			case '%':
				base = 2
			case '&':
				base = 8
			}
			i++
			start := i
			for i < len(line) && isHexDigit(line[i]) {
				i++
			}
			toks = append(toks, token{
				kind: tokWord,
				text: line[start:i],
				base: base,
				col:  col,
			})

		case isWordChar(c):
			start := i
			for i < len(line) && isWordChar(line[i]) {
				i++
			}
			text := line[start:i]
			t := token{kind: tokWord, text: text, col: col}
			if allHexDigits(text) {
				t.numeral = true
				t.guess = guessNumeral(text)
			}
			toks = append(toks, t)

		default:
			t := token{col: col}
			two := ""
			if i+1 < len(line) {
				two = line[i : i+2]
			}
			switch two {
			case "==":
				t.kind, t.op = tokCondOp, mon.CondEqual
			case "!=":
				t.kind, t.op = tokCondOp, mon.CondNotEqual
			case "<=":
				t.kind, t.op = tokCondOp, mon.CondLessEqual
			case ">=":
				t.kind, t.op = tokCondOp, mon.CondGreaterEqual
			case "&&":
				t.kind, t.op = tokCondOp, mon.CondAnd
			case "||":
				t.kind, t.op = tokCondOp, mon.CondOr
			}
			if t.kind == tokCondOp {
				i += 2
				toks = append(toks, t)
				continue
			}
			switch c {
			case '<':
				t.kind, t.op = tokCondOp, mon.CondLess
			case '>':
				t.kind, t.op = tokCondOp, mon.CondGreater
			case '=':
				t.kind = tokEq
			case '+':
				t.kind = tokPlus
			case '-':
				t.kind = tokMinus
			case '*':
				t.kind = tokStar
			case '/':
				t.kind = tokSlash
			case '(':
				t.kind = tokLParen
			case ')':
				t.kind = tokRParen
			case '[':
				t.kind = tokLBracket
			case ']':
				t.kind = tokRBracket
			case ',':
				t.kind = tokComma
			case ':':
				t.kind = tokColon
			case ';':
				t.kind = tokSemi
			case '#':
				t.kind = tokHash
			case '@':
				t.kind = tokAt
			case '~':
				t.kind = tokTilde
			default:
				return toks, mon.ErrIllegalInput
			}
			i++
			toks = append(toks, t)
		}
	}
	return toks, mon.OK
}
