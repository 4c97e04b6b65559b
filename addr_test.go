// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mon_test

import (
	"testing"

	"github.com/retromon/mon"
)

func TestSpaceByName(t *testing.T) {
	cases := []struct {
		name string
		want mon.MemSpace
		ok   bool
	}{
		{"c", mon.SpaceComp, true},
		{"8", mon.SpaceDisk8, true},
		{"9", mon.SpaceDisk9, true},
		{"10", mon.SpaceDisk10, true},
		{"11", mon.SpaceDisk11, true},
		{"1", mon.SpaceInvalid, false}, // ambiguous between 10 and 11
		{"z", mon.SpaceInvalid, false},
		{"", mon.SpaceInvalid, false},
	}
	for _, c := range cases {
		s, ok := mon.SpaceByName(c.name)
		if ok != c.ok || s != c.want {
			t.Errorf("SpaceByName(%q) = %v, %v, want %v, %v", c.name, s, ok, c.want, c.ok)
		}
	}
}

func TestNewAddr(t *testing.T) {
	a, st := mon.NewAddr(mon.SpaceComp, 0xffff)
	if st != mon.OK || a.Off != 0xffff {
		t.Errorf("NewAddr(0xffff) = %v, %v", a, st)
	}
	if _, st := mon.NewAddr(mon.SpaceComp, 0x10000); st != mon.ErrAddressTooLarge {
		t.Errorf("NewAddr(0x10000) status = %v, want %v", st, mon.ErrAddressTooLarge)
	}
	if _, st := mon.NewAddr(mon.SpaceComp, -1); st != mon.ErrAddressTooLarge {
		t.Errorf("NewAddr(-1) status = %v, want %v", st, mon.ErrAddressTooLarge)
	}
}

func TestAddrString(t *testing.T) {
	a := mon.Addr{Space: mon.SpaceDisk8, Off: 0x300}
	if got := a.String(); got != "8:$0300" {
		t.Errorf("Addr.String() = %q, want %q", got, "8:$0300")
	}
	if got := mon.NoAddr.String(); got != "<none>" {
		t.Errorf("NoAddr.String() = %q, want %q", got, "<none>")
	}
}

func TestRangeIsOpen(t *testing.T) {
	start := mon.Addr{Space: mon.SpaceComp, Off: 0xc000}
	if !(mon.Range{Start: start, End: mon.NoAddr}).IsOpen() {
		t.Error("range without an end must be open")
	}
	if (mon.Range{Start: start, End: start}).IsOpen() {
		t.Error("range with an end must not be open")
	}
}
