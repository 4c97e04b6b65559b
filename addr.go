// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mon

import (
	"fmt"

	"github.com/beevik/prefixtree/v2"
)

// A MemSpace identifies one of the independently addressable regions of the
// emulated system. The main CPU and each peripheral drive controller reuse
// the same 16-bit offset range with different contents.
type MemSpace byte

const (
	// SpaceDefault is a placeholder resolved against the session's current
	// default space.
	SpaceDefault MemSpace = iota
	SpaceComp
	SpaceDisk8
	SpaceDisk9
	SpaceDisk10
	SpaceDisk11
	SpaceInvalid
)

func (s MemSpace) String() string {
	switch s {
	case SpaceComp:
		return "c"
	case SpaceDisk8:
		return "8"
	case SpaceDisk9:
		return "9"
	case SpaceDisk10:
		return "10"
	case SpaceDisk11:
		return "11"
	case SpaceDefault:
		return "default"
	default:
		return "?"
	}
}

var spaceNames = prefixtree.New[MemSpace]()

func init() {
	for _, s := range []MemSpace{SpaceComp, SpaceDisk8, SpaceDisk9, SpaceDisk10, SpaceDisk11} {
		spaceNames.Add(s.String(), s)
	}
}

// SpaceByName resolves a memory-space name ("c", "8", "9", "10", "11") by
// unique prefix.
func SpaceByName(name string) (MemSpace, bool) {
	s, err := spaceNames.FindValue(name)
	if err != nil {
		return SpaceInvalid, false
	}
	return s, true
}

// AddrMask is the widest offset valid in a space. Every space is 16 bits
// wide; memory accesses wrap at the space boundary.
func (s MemSpace) AddrMask() int64 {
	return 0xffff
}

// CheckAddr reports whether v fits the space's addressable width.
func (s MemSpace) CheckAddr(v int64) bool {
	return v >= 0 && v <= s.AddrMask()
}

// An Addr is a space-tagged 16-bit address. The zero offset in two distinct
// spaces names two unrelated locations.
type Addr struct {
	Space MemSpace
	Off   uint16
}

// NoAddr is the "no address given" sentinel. Commands interpret it as "use
// the current or previous context".
var NoAddr = Addr{Space: SpaceInvalid}

// NewAddr builds a tagged address, mask-checking the offset against the
// space's width. Out-of-range offsets produce ErrAddressTooLarge rather
// than silent truncation.
func NewAddr(space MemSpace, v int64) (Addr, Status) {
	if !space.CheckAddr(v) {
		return NoAddr, ErrAddressTooLarge
	}
	return Addr{Space: space, Off: uint16(v)}, OK
}

// IsNone reports whether the address is the sentinel.
func (a Addr) IsNone() bool {
	return a.Space == SpaceInvalid
}

func (a Addr) String() string {
	if a.IsNone() {
		return "<none>"
	}
	return fmt.Sprintf("%s:$%04x", a.Space, a.Off)
}

// A Range is a pair of tagged addresses. An end equal to NoAddr means the
// range is open; the command decides how far it reaches.
type Range struct {
	Start Addr
	End   Addr
}

// IsOpen reports whether the range has no explicit end.
func (r Range) IsOpen() bool {
	return r.End.IsNone()
}

// A Reg names a register within a memory space. Name is the register's
// source spelling, kept for re-display of condition trees.
type Reg struct {
	Space MemSpace
	ID    int
	Name  string
}
