// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mon defines the data model shared by the retromon machine-level
// monitor: memory spaces and tagged addresses, the session context, status
// codes, condition-node trees for checkpoint guards, and the collaborator
// interfaces a hosting emulator implements to expose its registers, memory,
// symbol tables and checkpoints to the command interpreter.
package mon

// A Radix is the session-wide numeric base used to disambiguate literals
// that carry no explicit base marker.
type Radix byte

const (
	Hexadecimal Radix = iota
	Decimal
	Octal
	Binary
)

// Base returns the numeric base of the radix, suitable for strconv.
func (r Radix) Base() int {
	switch r {
	case Decimal:
		return 10
	case Octal:
		return 8
	case Binary:
		return 2
	default:
		return 16
	}
}

func (r Radix) String() string {
	switch r {
	case Hexadecimal:
		return "Hexadecimal"
	case Decimal:
		return "Decimal"
	case Octal:
		return "Octal"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// A CPUType selects the instruction-set family the monitor is currently
// assembling for and validating register names against.
type CPUType byte

const (
	CPU6502 CPUType = iota
	CPU65816
	CPU6809
	CPUZ80
)

func (c CPUType) String() string {
	switch c {
	case CPU65816:
		return "65816"
	case CPU6809:
		return "6809"
	case CPUZ80:
		return "z80"
	default:
		return "6502"
	}
}

// A Session holds the mutable monitor state read by every resolver: the
// default numeric radix, the default memory space, and the CPU family
// selected for each space. It is created once per monitor session and is
// mutated only by the explicit radix/device/cpu commands, never implicitly
// in the middle of a line.
type Session struct {
	Radix        Radix
	DefaultSpace MemSpace
	cpus         map[MemSpace]CPUType
}

// NewSession creates a session with hexadecimal radix, the main computer
// space as default, and a 6502 on every space.
func NewSession() *Session {
	return &Session{
		Radix:        Hexadecimal,
		DefaultSpace: SpaceComp,
		cpus:         make(map[MemSpace]CPUType),
	}
}

// ResolveSpace maps the "use the default" placeholder to the session's
// current default space. Concrete spaces pass through unchanged.
func (s *Session) ResolveSpace(sp MemSpace) MemSpace {
	if sp == SpaceDefault {
		return s.DefaultSpace
	}
	return sp
}

// CPUFor reports the CPU family active on a memory space.
func (s *Session) CPUFor(sp MemSpace) CPUType {
	return s.cpus[s.ResolveSpace(sp)]
}

// CPU reports the CPU family of the default space.
func (s *Session) CPU() CPUType {
	return s.cpus[s.DefaultSpace]
}

// SetCPU selects the CPU family for a memory space.
func (s *Session) SetCPU(sp MemSpace, c CPUType) {
	s.cpus[s.ResolveSpace(sp)] = c
}
