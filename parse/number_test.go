// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"testing"

	"github.com/retromon/mon"
)

func numToken(t *testing.T, s string) token {
	t.Helper()
	toks, st := tokenize(s)
	if st != mon.OK {
		t.Fatalf("tokenize(%q) failed with %v", s, st)
	}
	if len(toks) != 1 {
		t.Fatalf("tokenize(%q) produced %d tokens, want 1", s, len(toks))
	}
	return toks[0]
}

func TestResolveNumber(t *testing.T) {
	cases := []struct {
		text  string
		radix mon.Radix
		want  int64
	}{
		// Explicit base prefixes win under any default radix.
		{"$ff", mon.Decimal, 255},
		{"$10", mon.Binary, 16},
		{"%101", mon.Hexadecimal, 5},
		{"&17", mon.Decimal, 15},

		// A hex default short-circuits: every numeral reads as hex.
		{"0800", mon.Hexadecimal, 0x800},
		{"10", mon.Hexadecimal, 0x10},
		{"19", mon.Hexadecimal, 0x19},
		{"abc", mon.Hexadecimal, 0xabc},

		// Letters a-f force hex under any default.
		{"1a", mon.Decimal, 0x1a},
		{"fe", mon.Octal, 0xfe},
		{"10b", mon.Binary, 0x10b},

		// The default radix applies when the digit set allows it.
		{"10", mon.Decimal, 10},
		{"10", mon.Octal, 8},
		{"10", mon.Binary, 2},
		{"777", mon.Octal, 0o777},
		{"101", mon.Binary, 0b101},

		// "08" cannot be octal, so the tokenizer's decimal guess applies.
		{"08", mon.Decimal, 8},
		{"08", mon.Octal, 8},

		// Digit sets too wide for the default fall back to the guess.
		{"123", mon.Binary, 0o123},
		{"129", mon.Binary, 129},
		{"89", mon.Octal, 89},
		{"9", mon.Binary, 9},
	}

	for _, c := range cases {
		tok := numToken(t, c.text)
		v, st := resolveNumber(tok, c.radix)
		if st != mon.OK {
			t.Errorf("resolveNumber(%q, %v) failed with %v", c.text, c.radix, st)
			continue
		}
		if v != c.want {
			t.Errorf("resolveNumber(%q, %v) = %d, want %d", c.text, c.radix, v, c.want)
		}
	}
}

func TestResolveNumberNotNumeral(t *testing.T) {
	tok := numToken(t, "xyz")
	if _, st := resolveNumber(tok, mon.Hexadecimal); st != mon.ErrIllegalInput {
		t.Errorf("resolveNumber(%q) status = %v, want %v", "xyz", st, mon.ErrIllegalInput)
	}
}

func TestTokenizeNumeralGuess(t *testing.T) {
	cases := []struct {
		text string
		want numGuess
	}{
		{"1010", guessBin},
		{"107", guessOct},
		{"109", guessDec},
		{"10f", guessNone},
	}
	for _, c := range cases {
		tok := numToken(t, c.text)
		if tok.guess != c.want {
			t.Errorf("guess(%q) = %d, want %d", c.text, tok.guess, c.want)
		}
	}
}
