// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu catalogs the register sets of the CPU families the monitor
// knows about. Register references typed by the user are validated against
// the family active on the addressed memory space before any use.
package cpu

import (
	"strings"

	"github.com/retromon/mon"
)

// A RegDef describes one register of a family: its canonical name, its id
// within the family, and its width in bits.
type RegDef struct {
	Name string
	ID   int
	Bits int
}

// Register ids. Ids are stable across families so that a register
// reference survives a cpu command; a family simply lacks the ids it does
// not implement.
const (
	RegA = iota
	RegX
	RegY
	RegSP
	RegPC
	RegFlags
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
	RegAF
	RegBC
	RegDE
	RegHL
	RegIX
	RegIY
	RegI
	RegR
	RegU
	RegS
	RegDP
	RegCC
	RegPBR
	RegDBR
	RegDPR
	RegEFlag
)

type family struct {
	name string
	regs []RegDef
}

var families = map[mon.CPUType]family{
	mon.CPU6502: {"6502", []RegDef{
		{"A", RegA, 8}, {"X", RegX, 8}, {"Y", RegY, 8},
		{"SP", RegSP, 8}, {"PC", RegPC, 16}, {"FL", RegFlags, 8},
	}},
	mon.CPU65816: {"65816", []RegDef{
		{"A", RegA, 16}, {"B", RegB, 8}, {"X", RegX, 16}, {"Y", RegY, 16},
		{"SP", RegSP, 16}, {"PC", RegPC, 16}, {"FL", RegFlags, 8},
		{"PBR", RegPBR, 8}, {"DBR", RegDBR, 8}, {"DPR", RegDPR, 16},
		{"E", RegEFlag, 1},
	}},
	mon.CPU6809: {"6809", []RegDef{
		{"A", RegA, 8}, {"B", RegB, 8}, {"D", RegD, 16},
		{"X", RegX, 16}, {"Y", RegY, 16}, {"U", RegU, 16}, {"S", RegS, 16},
		{"PC", RegPC, 16}, {"DP", RegDP, 8}, {"CC", RegCC, 8},
	}},
	mon.CPUZ80: {"z80", []RegDef{
		{"A", RegA, 8}, {"B", RegB, 8}, {"C", RegC, 8}, {"D", RegD, 8},
		{"E", RegE, 8}, {"H", RegH, 8}, {"L", RegL, 8},
		{"AF", RegAF, 16}, {"BC", RegBC, 16}, {"DE", RegDE, 16},
		{"HL", RegHL, 16}, {"IX", RegIX, 16}, {"IY", RegIY, 16},
		{"SP", RegSP, 16}, {"PC", RegPC, 16}, {"I", RegI, 8}, {"R", RegR, 8},
	}},
}

// byName maps family -> upper-cased register name -> definition. Register
// names are matched exactly: single-letter names make prefix matching
// pointlessly ambiguous.
var byName = func() map[mon.CPUType]map[string]RegDef {
	m := make(map[mon.CPUType]map[string]RegDef, len(families))
	for t, f := range families {
		regs := make(map[string]RegDef, len(f.regs))
		for _, r := range f.regs {
			regs[r.Name] = r
		}
		m[t] = regs
	}
	return m
}()

// Lookup resolves a register name against a family. The match is
// case-insensitive.
func Lookup(t mon.CPUType, name string) (RegDef, bool) {
	r, ok := byName[t][strings.ToUpper(name)]
	return r, ok
}

// Valid reports whether the family implements the register id.
func Valid(t mon.CPUType, id int) bool {
	for _, r := range families[t].regs {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Registers returns the family's register set in display order.
func Registers(t mon.CPUType) []RegDef {
	return families[t].regs
}

// FamilyByName resolves a cpu command argument to a family.
func FamilyByName(name string) (mon.CPUType, bool) {
	switch strings.ToLower(name) {
	case "6502", "6510":
		return mon.CPU6502, true
	case "65816", "65802":
		return mon.CPU65816, true
	case "6809":
		return mon.CPU6809, true
	case "z80":
		return mon.CPUZ80, true
	default:
		return mon.CPU6502, false
	}
}
