// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mon

import "github.com/retromon/mon/asm"

// A MemOp is the set of memory operations a checkpoint watches for.
type MemOp byte

const (
	OpLoad MemOp = 1 << iota
	OpStore
	OpExec
)

func (op MemOp) String() string {
	s := ""
	if op&OpLoad != 0 {
		s += "load "
	}
	if op&OpStore != 0 {
		s += "store "
	}
	if op&OpExec != 0 {
		s += "exec "
	}
	if s == "" {
		return "none"
	}
	return s[:len(s)-1]
}

// A Toggle is the argument of on/off/toggle option commands.
type Toggle byte

const (
	ToggleOff Toggle = iota
	ToggleOn
	ToggleFlip
)

// Memory provides byte access to the emulated address spaces. Accesses wrap
// at the 64 KiB space boundary.
type Memory interface {
	LoadByte(a Addr) byte
	StoreByte(a Addr, v byte)
}

// Registers provides access to the register file of each memory space's
// CPU. RegValid resolves a register name against the CPU active on the
// space, failing for names the CPU does not have.
type Registers interface {
	RegValid(space MemSpace, name string) (Reg, bool)
	RegGet(r Reg) int
	RegSet(r Reg, v int)
	RegistersShow(space MemSpace)
}

// Symbols is the space-qualified symbol table.
type Symbols interface {
	SymbolLookup(space MemSpace, name string) (uint16, bool)
	SymbolAdd(a Addr, name string)
	SymbolRemove(space MemSpace, name string)
	SymbolsShow(space MemSpace)
	SymbolsClear(space MemSpace)
	SymbolsLoad(space MemSpace, filename string) error
	SymbolsSave(space MemSpace, filename string) error
}

// Banks resolves bank names to numeric bank ids within a space.
type Banks interface {
	BankNum(space MemSpace, name string) (int, bool)
	BankShow(space MemSpace)
	BankSet(space MemSpace, name string) error
}

// Checkpoints stores breakpoint/watchpoint/tracepoint records keyed by an
// integer id. A checkpoint id of -1 addresses every checkpoint at once.
// Condition trees attached here are evaluated by the execution engine, not
// by the parser.
type Checkpoints interface {
	CheckpointAdd(rng Range, stop bool, ops MemOp, temporary bool) int
	CheckpointList()
	CheckpointDelete(id int) error
	CheckpointSwitch(id int, on bool) error
	CheckpointIgnore(id, count int) error
	CheckpointSetCondition(id int, tree *CondNode) error
	CheckpointSetCommand(id int, command string) error
}

// Execution is the engine that runs, steps and inspects the paused machine.
// All of it happens after parsing completes for a line.
type Execution interface {
	Go(a Addr)
	Return()
	Step(count int, over bool)
	StackUp(count int)
	StackDown(count int)
	Backtrace()
	CPUHistory(count int, spaces []MemSpace)
	IOShow(a Addr)
	ScreenShow(a Addr)
	Export()
}

// MemoryOps are the bulk memory commands.
type MemoryOps interface {
	MemDisplay(r Radix, rng Range)
	MemDisplayChars(rng Range)
	MemDisplaySprites(rng Range)
	MemDisplayText(rng Range, screenCode bool)
	MemFill(rng Range, data []byte)
	// MemHunt searches for the data pattern; mask entries set to true match
	// any byte at that position.
	MemHunt(rng Range, data []byte, mask []bool)
	MemMove(rng Range, dest Addr)
	MemCompare(rng Range, dest Addr)
	Disassemble(rng Range)
}

// Media covers file, disk, tape and cartridge control.
type Media interface {
	FileLoad(name string, device int, at Addr, raw bool) error
	FileSave(name string, device int, rng Range, raw bool) error
	FileVerify(name string, device int, at Addr, raw bool) error
	BasicLoad(name string, device int, at Addr) error
	Attach(name string, device int) error
	Detach(device int) error
	DriveList(device int)
	DiskCommand(command string) error
	BlockRead(track, sector int, at Addr) error
	BlockWrite(track, sector int, at Addr) error
	Autostart(name string, index int, run bool) error
	TapeControl(op int) error
	TapeOffset(v int, set bool)
	CartFreeze()
}

// Control is the grab bag of session-level commands: help, conversion,
// directories, snapshots, recording, resources, and option toggles.
type Control interface {
	Reset(kind int)
	Quit()
	Exit()
	PrintValue(v int)
	KeyboardFeed(s string)
	StopwatchReset()
	StopwatchShow()
	ChangeDir(path string) error
	ShowDir(path string)
	ShowPwd()
	MakeDir(path string) error
	RemoveDir(path string) error
	Record(name string) error
	StopRecording()
	Playback(name string) error
	DumpWrite(name string) error
	DumpRead(name string) error
	ResourceGet(name string) error
	ResourceSet(name, value string) error
	ResourcesLoad(name string) error
	ResourcesSave(name string) error
	SideFX(t Toggle)
	SideFXShow()
	Log(t Toggle)
	LogShow()
	LogName(name string) error
	Warp(t Toggle)
	WarpShow()
	DummyAccess(t Toggle)
	DummyAccessShow()
	MainCPUTrace(t Toggle)
	MainCPUTraceShow()
	Profile(t Toggle)
	ProfileShow()
	ProfileFlat(count int)
	ProfileGraph(context, depth int)
	ProfileFunc(a Addr)
	ProfileDisass(a Addr)
	ProfileClear(a Addr)
	ProfileContext(n int)
	Screenshot(name string, format int) error
}

// Assembler encodes one hand-assembled instruction. The addressing-mode
// descriptor has already been resolved; the encoder picks the opcode and
// returns the number of bytes stored at the address.
type Assembler interface {
	AssembleInstr(at Addr, mnemonic string, d asm.Descriptor) (int, error)
}

// Machine is everything the command interpreter needs from the hosting
// emulator. The interpreter itself holds no machine state beyond the
// session context.
type Machine interface {
	Memory
	Registers
	Symbols
	Banks
	Checkpoints
	Execution
	MemoryOps
	Media
	Control
	Assembler
}
