// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bufio"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/retromon/mon"
	"github.com/retromon/mon/asm"
	"github.com/retromon/mon/cpu"
	"github.com/retromon/mon/disasm"
)

// A Machine is the reference implementation of the monitor's collaborator
// interfaces: a flat 64K memory per space, a register file per CPU family,
// symbol tables, bank maps, and a checkpoint store. It lets the monitor run
// stand-alone; a real emulator substitutes its own implementation.
type Machine struct {
	sess *mon.Session
	out  *bufio.Writer

	mem     map[mon.MemSpace]*[0x10000]byte
	regs    map[mon.MemSpace]map[int]int
	syms    map[mon.MemSpace]map[string]uint16
	banks   map[mon.MemSpace][]string
	curBank map[mon.MemSpace]int
	code    map[mon.Addr]instr
	cps     checkpointStore
	setts   *settings

	attached map[int]string // device -> image filename
	history  []uint16
	keybuf   []byte

	sideFX   bool
	warpMode bool
	logging  bool
	logFile  string
	dummies  bool
	cpuTrace bool
	profOn   bool
	cycles   uint64

	quitReq bool
	exitReq bool

	record   *os.File
	playLine []string
}

// An instr remembers an assembled instruction so the range disassembler can
// replay it.
type instr struct {
	mnemonic string
	desc     asm.Descriptor
	length   int
}

// NewMachine creates a machine bound to a session, with every space zeroed
// and the main space carrying the default bank set.
func NewMachine(sess *mon.Session) *Machine {
	m := &Machine{
		sess:     sess,
		out:      bufio.NewWriter(os.Stdout),
		mem:      make(map[mon.MemSpace]*[0x10000]byte),
		regs:     make(map[mon.MemSpace]map[int]int),
		syms:     make(map[mon.MemSpace]map[string]uint16),
		banks:    make(map[mon.MemSpace][]string),
		curBank:  make(map[mon.MemSpace]int),
		code:     make(map[mon.Addr]instr),
		setts:    newSettings(),
		attached: make(map[int]string),
	}
	m.banks[mon.SpaceComp] = []string{"cpu", "ram", "rom", "io"}
	for _, sp := range []mon.MemSpace{mon.SpaceDisk8, mon.SpaceDisk9, mon.SpaceDisk10, mon.SpaceDisk11} {
		m.banks[sp] = []string{"cpu", "ram"}
	}
	return m
}

// SetOutput redirects all machine display output.
func (m *Machine) SetOutput(w *bufio.Writer) { m.out = w }

func (m *Machine) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Machine) space(sp mon.MemSpace) mon.MemSpace { return m.sess.ResolveSpace(sp) }

func (m *Machine) ram(sp mon.MemSpace) *[0x10000]byte {
	sp = m.space(sp)
	r, ok := m.mem[sp]
	if !ok {
		r = new([0x10000]byte)
		m.mem[sp] = r
	}
	return r
}

// rangeEnd closes an open range using the configured default display span.
func (m *Machine) rangeEnd(rng mon.Range, span int) (mon.Addr, uint16) {
	start := rng.Start
	if start.IsNone() {
		start = mon.Addr{Space: m.sess.DefaultSpace, Off: uint16(m.setts.NextDisplayAddr)}
	}
	if rng.IsOpen() {
		return start, start.Off + uint16(span) - 1
	}
	return start, rng.End.Off
}

// Memory.

func (m *Machine) LoadByte(a mon.Addr) byte {
	return m.ram(a.Space)[a.Off]
}

func (m *Machine) StoreByte(a mon.Addr, v byte) {
	m.ram(a.Space)[a.Off] = v
}

// Registers.

func (m *Machine) regFile(sp mon.MemSpace) map[int]int {
	sp = m.space(sp)
	f, ok := m.regs[sp]
	if !ok {
		f = make(map[int]int)
		m.regs[sp] = f
	}
	return f
}

func (m *Machine) RegValid(space mon.MemSpace, name string) (mon.Reg, bool) {
	space = m.space(space)
	def, ok := cpu.Lookup(m.sess.CPUFor(space), name)
	if !ok {
		return mon.Reg{}, false
	}
	return mon.Reg{Space: space, ID: def.ID, Name: strings.ToUpper(name)}, true
}

func (m *Machine) RegGet(r mon.Reg) int {
	return m.regFile(r.Space)[r.ID]
}

func (m *Machine) RegSet(r mon.Reg, v int) {
	m.regFile(r.Space)[r.ID] = v
}

func (m *Machine) RegistersShow(space mon.MemSpace) {
	space = m.space(space)
	file := m.regFile(space)
	defs := cpu.Registers(m.sess.CPUFor(space))
	var names, values strings.Builder
	for _, d := range defs {
		w := d.Bits / 4
		if w < 2 {
			w = 2
		}
		fmt.Fprintf(&names, "%*s ", w, d.Name)
		fmt.Fprintf(&values, "%0*x ", w, file[d.ID])
	}
	m.printf("  %s\n. %s\n", names.String(), values.String())
}

func (m *Machine) pc(space mon.MemSpace) uint16 {
	return uint16(m.regFile(space)[cpu.RegPC])
}

// PC reports the program counter of the default space, for the prompt.
func (m *Machine) PC() uint16 { return m.pc(m.sess.DefaultSpace) }

// Symbols.

func (m *Machine) symTable(sp mon.MemSpace) map[string]uint16 {
	sp = m.space(sp)
	t, ok := m.syms[sp]
	if !ok {
		t = make(map[string]uint16)
		m.syms[sp] = t
	}
	return t
}

func (m *Machine) SymbolLookup(space mon.MemSpace, name string) (uint16, bool) {
	off, ok := m.symTable(space)[strings.ToLower(name)]
	return off, ok
}

func (m *Machine) SymbolAdd(a mon.Addr, name string) {
	m.symTable(a.Space)[strings.ToLower(name)] = a.Off
}

func (m *Machine) SymbolRemove(space mon.MemSpace, name string) {
	delete(m.symTable(space), strings.ToLower(name))
}

func (m *Machine) SymbolsShow(space mon.MemSpace) {
	t := m.symTable(space)
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		m.printf("$%04x %s\n", t[n], n)
	}
}

func (m *Machine) SymbolsClear(space mon.MemSpace) {
	sp := m.space(space)
	m.syms[sp] = make(map[string]uint16)
}

// Label files hold one "$addr name" pair per line, the format SymbolsShow
// prints.
func (m *Machine) SymbolsLoad(space mon.MemSpace, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	t := m.symTable(space)
	for _, line := range strings.Split(string(data), "\n") {
		var off uint16
		var name string
		if n, _ := fmt.Sscanf(strings.TrimSpace(line), "$%x %s", &off, &name); n == 2 {
			t[strings.ToLower(name)] = off
		}
	}
	return nil
}

func (m *Machine) SymbolsSave(space mon.MemSpace, filename string) error {
	t := m.symTable(space)
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, n := range names {
		fmt.Fprintf(&sb, "$%04x %s\n", t[n], n)
	}
	return os.WriteFile(filename, []byte(sb.String()), 0644)
}

// Banks.

func (m *Machine) BankNum(space mon.MemSpace, name string) (int, bool) {
	for i, n := range m.banks[m.space(space)] {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}
	return 0, false
}

func (m *Machine) BankShow(space mon.MemSpace) {
	sp := m.space(space)
	cur := m.curBank[sp]
	var parts []string
	for i, n := range m.banks[sp] {
		if i == cur {
			n = "*" + n
		}
		parts = append(parts, n)
	}
	m.printf("Banks: %s\n", strings.Join(parts, " "))
}

func (m *Machine) BankSet(space mon.MemSpace, name string) error {
	sp := m.space(space)
	n, ok := m.BankNum(sp, name)
	if !ok {
		return fmt.Errorf("unknown bank %q", name)
	}
	m.curBank[sp] = n
	return nil
}

// Execution. The reference machine has no instruction pipeline; stepping
// walks previously assembled instructions and everything else reports the
// request it would carry out.

func (m *Machine) Go(a mon.Addr) {
	if !a.IsNone() {
		m.regFile(a.Space)[cpu.RegPC] = int(a.Off)
	}
	m.printf("resuming at $%04x\n", m.PC())
	m.exitReq = true
}

func (m *Machine) Return() {
	m.printf("running until return\n")
	m.exitReq = true
}

func (m *Machine) Step(count int, over bool) {
	sp := m.sess.DefaultSpace
	file := m.regFile(sp)
	for i := 0; i < count; i++ {
		a := mon.Addr{Space: m.space(sp), Off: uint16(file[cpu.RegPC])}
		m.history = append(m.history, a.Off)
		length := 1
		if in, ok := m.code[a]; ok {
			m.printf(".%s  %s %s\n", a, in.mnemonic, disasm.Operand(in.desc))
			length = in.length
		} else {
			m.printf(".%s  .byte $%02x\n", a, m.LoadByte(a))
		}
		file[cpu.RegPC] = int(a.Off + uint16(length))
		m.cycles += 2
		if id, ok := m.cps.trigger(m, a, mon.OpExec); ok {
			m.printf("#%d (Stop on exec $%04x)\n", id, a.Off)
			break
		}
	}
}

func (m *Machine) StackUp(count int)   { m.printf("up %d frames\n", count) }
func (m *Machine) StackDown(count int) { m.printf("down %d frames\n", count) }

func (m *Machine) Backtrace() {
	n := len(m.history)
	for i := n - 1; i >= 0 && i >= n-8; i-- {
		m.printf("(%d) $%04x\n", n-1-i, m.history[i])
	}
}

func (m *Machine) CPUHistory(count int, spaces []mon.MemSpace) {
	if count < 0 || count > len(m.history) {
		count = len(m.history)
	}
	for _, off := range m.history[len(m.history)-count:] {
		a := mon.Addr{Space: m.sess.DefaultSpace, Off: off}
		if in, ok := m.code[a]; ok {
			m.printf("%s  %s %s\n", a, in.mnemonic, disasm.Operand(in.desc))
		} else {
			m.printf("%s  .byte $%02x\n", a, m.LoadByte(a))
		}
	}
}

func (m *Machine) IOShow(a mon.Addr) {
	if a.IsNone() {
		a = mon.Addr{Space: m.sess.DefaultSpace, Off: 0xd000}
	}
	m.MemDisplay(mon.Hexadecimal, mon.Range{Start: a, End: mon.Addr{Space: a.Space, Off: a.Off + 0xff}})
}

func (m *Machine) ScreenShow(a mon.Addr) {
	if a.IsNone() {
		a = mon.Addr{Space: mon.SpaceComp, Off: 0x0400}
	}
	ram := m.ram(a.Space)
	for row := 0; row < 25; row++ {
		line := make([]byte, 40)
		for col := 0; col < 40; col++ {
			line[col] = printableChar(ram[a.Off+uint16(row*40+col)])
		}
		m.printf("%s\n", line)
	}
}

func (m *Machine) Export() {
	m.printf("cycles: %d  pc: $%04x  bank: %d\n",
		m.cycles, m.PC(), m.curBank[m.space(mon.SpaceDefault)])
}

// Memory operations.

var radixByteFormat = map[mon.Radix]string{
	mon.Hexadecimal: " %02x",
	mon.Decimal:     " %3d",
	mon.Octal:       " %03o",
	mon.Binary:      " %08b",
}

var radixRowBytes = map[mon.Radix]int{
	mon.Hexadecimal: 16,
	mon.Decimal:     8,
	mon.Octal:       8,
	mon.Binary:      4,
}

func (m *Machine) MemDisplay(r mon.Radix, rng mon.Range) {
	perRow := radixRowBytes[r]
	format := radixByteFormat[r]
	start, end := m.rangeEnd(rng, m.setts.MemDumpBytes)
	ram := m.ram(start.Space)
	for off := int(start.Off); off <= int(end); off += perRow {
		var row, chars strings.Builder
		for i := 0; i < perRow && off+i <= int(end); i++ {
			b := ram[uint16(off+i)]
			fmt.Fprintf(&row, format, b)
			chars.WriteByte(printableChar(b))
		}
		m.printf(">%s:%04x %s  %s\n", start.Space, uint16(off), row.String(), chars.String())
	}
	m.setts.NextDisplayAddr = int(end) + 1
}

func (m *Machine) MemDisplayChars(rng mon.Range) {
	start, end := m.rangeEnd(rng, 8*8)
	ram := m.ram(start.Space)
	// 8x8 character cells, one row of bits per line
	for off := int(start.Off); off <= int(end); off++ {
		b := ram[uint16(off)]
		line := make([]byte, 8)
		for bit := 0; bit < 8; bit++ {
			line[bit] = '.'
			if b&(0x80>>bit) != 0 {
				line[bit] = '*'
			}
		}
		m.printf(">%s:%04x %s\n", start.Space, uint16(off), line)
	}
}

func (m *Machine) MemDisplaySprites(rng mon.Range) {
	start, end := m.rangeEnd(rng, 63)
	ram := m.ram(start.Space)
	// sprites are 24x21 cells, three bytes per row
	for off := int(start.Off); off+2 <= int(end); off += 3 {
		var line strings.Builder
		for i := 0; i < 3; i++ {
			b := ram[uint16(off+i)]
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>bit) != 0 {
					line.WriteByte('*')
				} else {
					line.WriteByte('.')
				}
			}
		}
		m.printf(">%s:%04x %s\n", start.Space, uint16(off), line.String())
	}
}

func (m *Machine) MemDisplayText(rng mon.Range, screenCode bool) {
	start, end := m.rangeEnd(rng, 0x100)
	ram := m.ram(start.Space)
	for off := int(start.Off); off <= int(end); off += 40 {
		var line strings.Builder
		for i := 0; i < 40 && off+i <= int(end); i++ {
			b := ram[uint16(off+i)]
			if screenCode {
				b = screenToASCII(b)
			}
			line.WriteByte(printableChar(b))
		}
		m.printf(">%s:%04x %s\n", start.Space, uint16(off), line.String())
	}
}

func (m *Machine) MemFill(rng mon.Range, data []byte) {
	start, end := m.rangeEnd(rng, len(data))
	ram := m.ram(start.Space)
	for off, i := int(start.Off), 0; off <= int(end); off, i = off+1, i+1 {
		ram[uint16(off)] = data[i%len(data)]
	}
}

func (m *Machine) MemHunt(rng mon.Range, data []byte, mask []bool) {
	start, end := m.rangeEnd(rng, 0x100)
	ram := m.ram(start.Space)
	found := 0
	for off := int(start.Off); off+len(data)-1 <= int(end); off++ {
		hit := true
		for i := range data {
			if !mask[i] && ram[uint16(off+i)] != data[i] {
				hit = false
				break
			}
		}
		if hit {
			m.printf("%s:%04x\n", start.Space, uint16(off))
			found++
		}
	}
	if found == 0 {
		m.printf("pattern not found\n")
	}
}

func (m *Machine) MemMove(rng mon.Range, dest mon.Addr) {
	src := m.ram(rng.Start.Space)
	dst := m.ram(dest.Space)
	n := int(rng.End.Off) - int(rng.Start.Off)
	if n < 0 {
		return
	}
	// copy through a scratch buffer so overlapping regions stay intact
	buf := make([]byte, n+1)
	for i := range buf {
		buf[i] = src[rng.Start.Off+uint16(i)]
	}
	for i, b := range buf {
		dst[dest.Off+uint16(i)] = b
	}
}

func (m *Machine) MemCompare(rng mon.Range, dest mon.Addr) {
	src := m.ram(rng.Start.Space)
	dst := m.ram(dest.Space)
	for i := 0; i <= int(rng.End.Off)-int(rng.Start.Off); i++ {
		a, b := src[rng.Start.Off+uint16(i)], dst[dest.Off+uint16(i)]
		if a != b {
			m.printf("$%04x $%04x: %02x %02x\n",
				rng.Start.Off+uint16(i), dest.Off+uint16(i), a, b)
		}
	}
}

func (m *Machine) Disassemble(rng mon.Range) {
	start, end := m.rangeEnd(rng, 0)
	if rng.IsOpen() {
		end = start.Off + uint16(m.setts.DisasmLines) // at least one byte per line
	}
	a := start
	for int(a.Off) <= int(end) {
		if in, ok := m.code[a]; ok {
			m.printf(".%s  %s %s\n", a, in.mnemonic, disasm.Operand(in.desc))
			a.Off += uint16(in.length)
		} else {
			m.printf(".%s  .byte $%02x\n", a, m.LoadByte(a))
			a.Off++
		}
	}
	m.setts.NextDisplayAddr = int(a.Off)
}

// Assembler.

// operandLength is the number of operand bytes implied by a descriptor.
func operandLength(d asm.Descriptor) int {
	switch d.Mode {
	case asm.ModeImplied, asm.ModeAccumulator:
		return 0
	case asm.ModeImmediate16, asm.ModeAbsolute, asm.ModeAbsoluteX, asm.ModeAbsoluteY,
		asm.ModeAbsIndirect, asm.ModeAbsIndirectX,
		asm.ModeAbsoluteA, asm.ModeAbsoluteHL, asm.ModeAbsoluteIX, asm.ModeAbsoluteIY,
		asm.ModeDouble:
		return 2
	case asm.ModeAbsoluteLong, asm.ModeAbsoluteLongX:
		return 3
	case asm.ModeIndexed:
		// post-byte plus its offset bytes
		switch {
		case d.Submode&asm.SubPostByte == 0:
			return 1
		case d.Submode&0x0f == asm.SubOff16, d.Submode&0x0f == asm.SubOffPC16,
			d.Submode&0x0f == asm.SubExtInd:
			return 3
		case d.Submode&0x0f == asm.SubOff8, d.Submode&0x0f == asm.SubOffPC8:
			return 2
		default:
			return 1
		}
	}
	if _, ok := registerLike(d.Mode); ok {
		return 0
	}
	return 1
}

func registerLike(mode asm.Mode) (asm.Mode, bool) {
	if mode >= asm.ModeRegA && mode <= asm.ModeRegIndSP {
		return mode, true
	}
	return mode, false
}

func (m *Machine) AssembleInstr(at mon.Addr, mnemonic string, d asm.Descriptor) (int, error) {
	length := 1 + operandLength(d)
	m.code[at] = instr{mnemonic: mnemonic, desc: d, length: length}
	m.printf(".%s  %s %s\n", at, mnemonic, disasm.Operand(d))
	return length, nil
}

// Media.

func (m *Machine) FileLoad(name string, device int, at mon.Addr, raw bool) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if !raw {
		if len(data) < 2 {
			return errors.New("file too short for a load address")
		}
		if at.IsNone() {
			at = mon.Addr{Space: m.sess.DefaultSpace, Off: uint16(data[0]) | uint16(data[1])<<8}
		}
		data = data[2:]
	} else if at.IsNone() {
		return errors.New("a load address is required for raw files")
	}
	ram := m.ram(at.Space)
	for i, b := range data {
		ram[at.Off+uint16(i)] = b
	}
	m.printf("loading %s to $%04x-$%04x\n", name, at.Off, at.Off+uint16(len(data))-1)
	return nil
}

func (m *Machine) FileSave(name string, device int, rng mon.Range, raw bool) error {
	ram := m.ram(rng.Start.Space)
	n := int(rng.End.Off) - int(rng.Start.Off) + 1
	if n <= 0 {
		return errors.New("empty range")
	}
	var data []byte
	if !raw {
		data = append(data, byte(rng.Start.Off), byte(rng.Start.Off>>8))
	}
	for i := 0; i < n; i++ {
		data = append(data, ram[rng.Start.Off+uint16(i)])
	}
	return os.WriteFile(name, data, 0644)
}

func (m *Machine) FileVerify(name string, device int, at mon.Addr, raw bool) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if !raw {
		if len(data) < 2 {
			return errors.New("file too short for a load address")
		}
		if at.IsNone() {
			at = mon.Addr{Space: m.sess.DefaultSpace, Off: uint16(data[0]) | uint16(data[1])<<8}
		}
		data = data[2:]
	} else if at.IsNone() {
		return errors.New("a load address is required for raw files")
	}
	ram := m.ram(at.Space)
	for i, b := range data {
		if ram[at.Off+uint16(i)] != b {
			return fmt.Errorf("mismatch at $%04x", at.Off+uint16(i))
		}
	}
	m.printf("verified %s\n", name)
	return nil
}

func (m *Machine) BasicLoad(name string, device int, at mon.Addr) error {
	if at.IsNone() {
		at = mon.Addr{Space: mon.SpaceComp, Off: 0x0801}
	}
	return m.FileLoad(name, device, at, true)
}

func (m *Machine) Attach(name string, device int) error {
	if _, err := os.Stat(name); err != nil {
		return err
	}
	m.attached[device] = name
	m.printf("attached %s to device %d\n", name, device)
	return nil
}

func (m *Machine) Detach(device int) error {
	if _, ok := m.attached[device]; !ok {
		return fmt.Errorf("no image attached to device %d", device)
	}
	delete(m.attached, device)
	return nil
}

func (m *Machine) DriveList(device int) {
	if name, ok := m.attached[device]; ok {
		m.printf("device %d: %s\n", device, name)
	} else {
		m.printf("device %d: empty\n", device)
	}
}

func (m *Machine) DiskCommand(command string) error {
	dev := 8
	if _, ok := m.attached[dev]; !ok {
		return fmt.Errorf("no image attached to device %d", dev)
	}
	m.printf("drive %d command: %s\n", dev, command)
	return nil
}

// blockOffset maps a track/sector pair to an image offset, using a flat
// 256-byte sector layout.
func blockOffset(track, sector int) (int64, error) {
	if track < 1 || sector < 0 {
		return 0, errors.New("bad track or sector")
	}
	return int64((track-1)*21+sector) * 256, nil
}

func (m *Machine) BlockRead(track, sector int, at mon.Addr) error {
	name, ok := m.attached[8]
	if !ok {
		return errors.New("no image attached to device 8")
	}
	off, err := blockOffset(track, sector)
	if err != nil {
		return err
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	buf := make([]byte, 256)
	if _, err := f.ReadAt(buf, off); err != nil {
		return err
	}
	if at.IsNone() {
		at = mon.Addr{Space: mon.SpaceDisk8, Off: 0x0300}
	}
	ram := m.ram(at.Space)
	for i, b := range buf {
		ram[at.Off+uint16(i)] = b
	}
	m.printf("block (%d,%d) read to %s\n", track, sector, at)
	return nil
}

func (m *Machine) BlockWrite(track, sector int, at mon.Addr) error {
	name, ok := m.attached[8]
	if !ok {
		return errors.New("no image attached to device 8")
	}
	off, err := blockOffset(track, sector)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(name, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	ram := m.ram(at.Space)
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = ram[at.Off+uint16(i)]
	}
	_, err = f.WriteAt(buf, off)
	return err
}

func (m *Machine) Autostart(name string, index int, run bool) error {
	if err := m.Attach(name, 8); err != nil {
		return err
	}
	if run {
		m.printf("autostarting %s (entry %d)\n", name, index)
		m.exitReq = true
	}
	return nil
}

func (m *Machine) TapeControl(op int) error {
	names := []string{"stop", "play", "forward", "rewind", "record", "reset", "reset counter"}
	if op < 0 || op >= len(names) {
		return errors.New("unknown tape operation")
	}
	m.printf("tape: %s\n", names[op])
	return nil
}

func (m *Machine) TapeOffset(v int, set bool) {
	if set {
		m.setts.TapeOffset = v
	}
	m.printf("tape offset: %d\n", m.setts.TapeOffset)
}

func (m *Machine) CartFreeze() { m.printf("cartridge freeze\n") }

// Control.

func (m *Machine) Reset(kind int) {
	m.regs = make(map[mon.MemSpace]map[int]int)
	m.history = nil
	m.cycles = 0
	if kind != 0 {
		m.mem = make(map[mon.MemSpace]*[0x10000]byte)
		m.code = make(map[mon.Addr]instr)
	}
}

func (m *Machine) Quit() { m.quitReq = true }
func (m *Machine) Exit() { m.exitReq = true }

// QuitRequested reports whether the quit command ran.
func (m *Machine) QuitRequested() bool { return m.quitReq }

// ExitRequested reports and clears the leave-the-monitor flag.
func (m *Machine) ExitRequested() bool {
	r := m.exitReq
	m.exitReq = false
	return r
}

func (m *Machine) PrintValue(v int) {
	m.printf("$%x  %d  %o  %%%b\n", v, v, v, v)
}

func (m *Machine) KeyboardFeed(s string) {
	m.keybuf = append(m.keybuf, s...)
}

func (m *Machine) StopwatchReset() { m.cycles = 0 }
func (m *Machine) StopwatchShow()  { m.printf("stopwatch: %d cycles\n", m.cycles) }

func (m *Machine) ChangeDir(path string) error { return os.Chdir(path) }

func (m *Machine) ShowDir(path string) {
	if path == "" {
		path = "."
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		m.printf("%v\n", err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		m.printf("%s\n", name)
	}
}

func (m *Machine) ShowPwd() {
	if wd, err := os.Getwd(); err == nil {
		m.printf("%s\n", wd)
	}
}

func (m *Machine) MakeDir(path string) error   { return os.Mkdir(path, 0755) }
func (m *Machine) RemoveDir(path string) error { return os.Remove(path) }

// Recording appends executed lines to a file; playback queues the lines of
// a previously recorded file for the host loop to drain.

func (m *Machine) Record(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if m.record != nil {
		m.record.Close()
	}
	m.record = f
	return nil
}

func (m *Machine) StopRecording() {
	if m.record != nil {
		m.record.Close()
		m.record = nil
	}
}

// RecordLine writes one executed command line to the recording, if any.
func (m *Machine) RecordLine(line string) {
	if m.record != nil {
		fmt.Fprintln(m.record, line)
	}
}

func (m *Machine) Playback(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		m.playLine = append(m.playLine, line)
	}
	return nil
}

// NextPlayback pops the next queued playback line.
func (m *Machine) NextPlayback() (string, bool) {
	if len(m.playLine) == 0 {
		return "", false
	}
	line := m.playLine[0]
	m.playLine = m.playLine[1:]
	return line, true
}

// Snapshots carry the main memory, the register files and the cycle count.

type snapshot struct {
	Mem    map[mon.MemSpace][]byte
	Regs   map[mon.MemSpace]map[int]int
	Cycles uint64
}

func (m *Machine) DumpWrite(name string) error {
	s := snapshot{
		Mem:    make(map[mon.MemSpace][]byte),
		Regs:   m.regs,
		Cycles: m.cycles,
	}
	for sp, ram := range m.mem {
		s.Mem[sp] = ram[:]
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(&s)
}

func (m *Machine) DumpRead(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	var s snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return err
	}
	m.mem = make(map[mon.MemSpace]*[0x10000]byte)
	for sp, data := range s.Mem {
		ram := new([0x10000]byte)
		copy(ram[:], data)
		m.mem[sp] = ram
	}
	m.regs = s.Regs
	if m.regs == nil {
		m.regs = make(map[mon.MemSpace]map[int]int)
	}
	m.cycles = s.Cycles
	return nil
}

func (m *Machine) ResourceGet(name string) error {
	v, err := m.setts.Get(name)
	if err != nil {
		return err
	}
	m.printf("%s: %v\n", name, v)
	return nil
}

func (m *Machine) ResourceSet(name, value string) error {
	return m.setts.SetFromString(name, value)
}

func (m *Machine) ResourcesLoad(name string) error { return m.setts.LoadFile(name) }
func (m *Machine) ResourcesSave(name string) error { return m.setts.SaveFile(name) }

func (m *Machine) toggle(field *bool, t mon.Toggle) {
	switch t {
	case mon.ToggleOn:
		*field = true
	case mon.ToggleOff:
		*field = false
	default:
		*field = !*field
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m *Machine) SideFX(t mon.Toggle) { m.toggle(&m.sideFX, t) }
func (m *Machine) SideFXShow()         { m.printf("sidefx is %s\n", onOff(m.sideFX)) }

func (m *Machine) Log(t mon.Toggle) { m.toggle(&m.logging, t) }
func (m *Machine) LogShow()         { m.printf("logging is %s\n", onOff(m.logging)) }

func (m *Machine) LogName(name string) error {
	m.logFile = name
	return nil
}

func (m *Machine) Warp(t mon.Toggle) { m.toggle(&m.warpMode, t) }
func (m *Machine) WarpShow()         { m.printf("warp is %s\n", onOff(m.warpMode)) }

func (m *Machine) DummyAccess(t mon.Toggle) { m.toggle(&m.dummies, t) }
func (m *Machine) DummyAccessShow()         { m.printf("dummy accesses are %s\n", onOff(m.dummies)) }

func (m *Machine) MainCPUTrace(t mon.Toggle) { m.toggle(&m.cpuTrace, t) }
func (m *Machine) MainCPUTraceShow()         { m.printf("main cpu trace is %s\n", onOff(m.cpuTrace)) }

func (m *Machine) Profile(t mon.Toggle) { m.toggle(&m.profOn, t) }

func (m *Machine) ProfileShow() {
	m.printf("profiling is %s\n", onOff(m.profOn))
}

func (m *Machine) ProfileFlat(count int)           { m.printf("profile flat (top %d)\n", count) }
func (m *Machine) ProfileGraph(context, depth int) { m.printf("profile graph\n") }
func (m *Machine) ProfileFunc(a mon.Addr)          { m.printf("profile func %s\n", a) }
func (m *Machine) ProfileDisass(a mon.Addr)        { m.printf("profile disass %s\n", a) }
func (m *Machine) ProfileClear(a mon.Addr)         { m.printf("profile clear %s\n", a) }
func (m *Machine) ProfileContext(n int)            { m.printf("profile context %d\n", n) }

func (m *Machine) Screenshot(name string, format int) error {
	// the reference machine has no renderer; save the text screen instead
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	ram := m.ram(mon.SpaceComp)
	for row := 0; row < 25; row++ {
		line := make([]byte, 40)
		for col := 0; col < 40; col++ {
			line[col] = printableChar(ram[0x0400+uint16(row*40+col)])
		}
		fmt.Fprintf(f, "%s\n", line)
	}
	return nil
}
