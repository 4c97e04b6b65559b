// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strconv"

	"github.com/retromon/mon"
)

// resolveNumber interprets a numeral token under the session's default
// radix. Bare numerals are ambiguous on purpose: "10" is sixteen under a
// hex default and ten under a decimal one. The resolver never rejects an
// ambiguous literal; it picks a base by the precedence below and parses.
//
// Precedence for bare numerals when the default radix is not hex:
//  1. the default radix, if the digit set allows it
//  2. the tokenizer's syntactic guess, if the digit set allows it
//  3. the narrowest remaining candidate, binary before decimal before octal
//  4. hexadecimal
//
// A hex default short-circuits all of this, since every numeral is a valid
// hex spelling. Letters a-f likewise force hex under any default.
func resolveNumber(t token, radix mon.Radix) (int64, mon.Status) {
	if t.base != 0 {
		v, err := strconv.ParseInt(t.text, t.base, 64)
		if err != nil {
			return 0, mon.ErrIllegalInput
		}
		return v, mon.OK
	}
	if !t.numeral {
		return 0, mon.ErrIllegalInput
	}
	if radix == mon.Hexadecimal || t.guess == guessNone {
		return parseBase(t.text, 16)
	}

	// Letters were routed to hex above, so a decimal reading always fits.
	bin, oct, dec := true, true, true
	for i := 0; i < len(t.text); i++ {
		switch c := t.text[i]; {
		case c == '0' || c == '1':
		case c <= '7':
			bin = false
		default:
			bin, oct = false, false
		}
	}

	switch {
	case radix == mon.Binary && bin:
		return parseBase(t.text, 2)
	case radix == mon.Decimal && dec:
		return parseBase(t.text, 10)
	case radix == mon.Octal && oct:
		return parseBase(t.text, 8)
	}

	switch {
	case t.guess == guessBin && bin:
		return parseBase(t.text, 2)
	case t.guess == guessDec && dec:
		return parseBase(t.text, 10)
	case t.guess == guessOct && oct:
		return parseBase(t.text, 8)
	}

	switch {
	case bin:
		return parseBase(t.text, 2)
	case dec:
		return parseBase(t.text, 10)
	case oct:
		return parseBase(t.text, 8)
	}
	return parseBase(t.text, 16)
}

func parseBase(s string, base int) (int64, mon.Status) {
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, mon.ErrIllegalInput
	}
	return v, mon.OK
}
