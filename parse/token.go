// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/retromon/mon"

type tokKind byte

const (
	tokEnd tokKind = iota
	tokWord
	tokString
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokColon
	tokSemi
	tokHash
	tokEq
	tokCondOp
	tokAt
	tokTilde
)

// A numGuess is the tokenizer's syntactic guess at a bare numeral's base.
// It is only a tie-breaker; the radix resolver makes the real decision.
type numGuess byte

const (
	guessNone numGuess = iota
	guessBin
	guessOct
	guessDec
)

// A token is one terminal symbol of the command grammar. Text keeps the raw
// spelling; number interpretation is deferred to the resolvers because it
// depends on the session radix. Col is the byte offset within the input
// line, used for the caret in error echoes.
type token struct {
	kind    tokKind
	text    string
	numeral bool     // text consists solely of hex digits
	guess   numGuess // syntactic guess for bare numerals
	base    int      // explicit base from a $/%/& prefix; 0 when bare
	op      mon.CondOp
	col     int
}

func (t token) isWord() bool { return t.kind == tokWord }

// isNumeral reports whether the token can be read as a number at all.
func (t token) isNumeral() bool {
	return t.kind == tokWord && (t.numeral || t.base != 0)
}
