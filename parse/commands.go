// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"github.com/beevik/cmd"

	"github.com/retromon/mon"
	"github.com/retromon/mon/cpu"
)

var monCmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "retromon"})

	add := func(name, brief, usage string, h func(*Parser) mon.Status) {
		root.AddCommand(cmd.CommandDescriptor{
			Name:  name,
			Brief: brief,
			Usage: usage,
			Data:  h,
		})
	}

	// Machine state
	add("bank", "Switch or display memory banks", "bank [<space>:] [<bankname>]", (*Parser).cmdBank)
	add("backtrace", "Show the call stack", "backtrace", (*Parser).cmdBacktrace)
	add("cpu", "Select or display the CPU type", "cpu [<type>]", (*Parser).cmdCPU)
	add("cpuhistory", "Show recently executed instructions", "cpuhistory [<count>] [<space>:]*", (*Parser).cmdCPUHistory)
	add("dump", "Write a machine snapshot to disk", "dump \"<filename>\"", (*Parser).cmdDump)
	add("goto", "Resume execution at an address", "goto [<address>]", (*Parser).cmdGoto)
	add("io", "Show the I/O area", "io [<address>]", (*Parser).cmdIO)
	add("next", "Step over instructions", "next [<count>]", (*Parser).cmdNext)
	add("registers", "Show or set register values", "registers [<space>:] [<reg> = <value> [, ...]]", (*Parser).cmdRegisters)
	add("reset", "Reset the machine", "reset [<type>]", (*Parser).cmdReset)
	add("return", "Run until the current routine returns", "return", (*Parser).cmdReturn)
	add("screen", "Show the current screen contents", "screen [<address>]", (*Parser).cmdScreen)
	add("step", "Step into instructions", "step [<count>]", (*Parser).cmdStep)
	add("stopwatch", "Show or reset the cycle stopwatch", "stopwatch [reset]", (*Parser).cmdStopwatch)
	add("undump", "Read a machine snapshot from disk", "undump \"<filename>\"", (*Parser).cmdUndump)
	add("up", "Move up the call stack", "up [<count>]", (*Parser).cmdUp)
	add("down", "Move down the call stack", "down [<count>]", (*Parser).cmdDown)
	add("warp", "Switch warp mode on or off", "warp [on|off|toggle]", (*Parser).cmdWarp)
	add("maincputrace", "Trace the main CPU while in the monitor", "maincputrace [on|off|toggle]", (*Parser).cmdMainCPUTrace)

	// Symbol table
	add("add_label", "Bind a label to an address", "add_label <address> <label>", (*Parser).cmdAddLabel)
	add("delete_label", "Remove a label", "delete_label [<space>:] <label>", (*Parser).cmdDelLabel)
	add("load_labels", "Load a label file", "load_labels [<space>:] \"<filename>\"", (*Parser).cmdLoadLabels)
	add("save_labels", "Save the label table", "save_labels [<space>:] \"<filename>\"", (*Parser).cmdSaveLabels)
	add("show_labels", "List defined labels", "show_labels [<space>:]", (*Parser).cmdShowLabels)
	add("clear_labels", "Discard all labels", "clear_labels [<space>:]", (*Parser).cmdClearLabels)

	// Assembler and memory
	add("assemble", "Assemble instructions at an address", "assemble <address> [<instruction>]", (*Parser).cmdAssemble)
	add("disass", "Disassemble memory", "disass [<address> [<address>]]", (*Parser).cmdDisassemble)
	add("compare", "Compare two memory regions", "compare <address> <address> <dest>", (*Parser).cmdCompare)
	add("fill", "Fill memory with a byte pattern", "fill <address> <address> <data list>", (*Parser).cmdFill)
	add("hunt", "Search memory for a byte pattern", "hunt <address> <address> <data list>", (*Parser).cmdHunt)
	add("mem", "Display memory as numbers", "mem [<radix>] [<address> [<address>]]", (*Parser).cmdMem)
	add("memchar", "Display memory as character data", "memchar [<address> [<address>]]", (*Parser).cmdMemChar)
	add("memsprite", "Display memory as sprite data", "memsprite [<address> [<address>]]", (*Parser).cmdMemSprite)
	add("i", "Display memory as text", "i [<address> [<address>]]", (*Parser).cmdTextDisplay)
	add("ii", "Display memory as screen codes", "ii [<address> [<address>]]", (*Parser).cmdScreencodeDisplay)
	add("move", "Copy a memory region", "move <address> <address> <dest>", (*Parser).cmdMove)
	add("memmapzap", "Clear the memory access map", "memmapzap", (*Parser).cmdMemmapZap)
	add("memmapshow", "Show the memory access map", "memmapshow [<mask> [<address> [<address>]]]", (*Parser).cmdMemmapShow)
	add("memmapsave", "Save the memory access map", "memmapsave \"<filename>\" <format>", (*Parser).cmdMemmapSave)

	// Checkpoints
	add("break", "Set or list breakpoints", "break [load|store|exec] [<address> [<address>]] [if <cond>]", (*Parser).cmdBreak)
	add("until", "Run until an address is reached", "until [<address> [<address>]]", (*Parser).cmdUntil)
	add("watch", "Set or list watchpoints", "watch [load|store|exec] [<address> [<address>]] [if <cond>]", (*Parser).cmdWatch)
	add("trace", "Set or list tracepoints", "trace [load|store|exec] [<address> [<address>]] [if <cond>]", (*Parser).cmdTrace)
	add("enable", "Enable checkpoints", "enable [<num>]", (*Parser).cmdEnable)
	add("disable", "Disable checkpoints", "disable [<num>]", (*Parser).cmdDisable)
	add("delete", "Delete checkpoints", "delete [<num>]", (*Parser).cmdDelete)
	add("ignore", "Ignore the next hits of a checkpoint", "ignore <num> [<count>]", (*Parser).cmdIgnore)
	add("condition", "Guard a checkpoint with a condition", "condition <num> if <cond>", (*Parser).cmdCondition)
	add("command", "Attach a command to a checkpoint", "command <num> \"<command>\"", (*Parser).cmdCommand)

	// Monitor state
	add("device", "Select or display the default memory space", "device [c:|8:|9:|10:|11:]", (*Parser).cmdDevice)
	add("radix", "Select or display the default radix", "radix [h|d|o|b]", (*Parser).cmdRadix)
	add("sidefx", "Switch monitor read side effects", "sidefx [on|off|toggle]", (*Parser).cmdSideFX)
	add("dummy", "Switch dummy access visibility", "dummy [on|off|toggle]", (*Parser).cmdDummy)
	add("log", "Switch logging to a file", "log [on|off|toggle]", (*Parser).cmdLog)
	add("logname", "Set the log file name", "logname \"<filename>\"", (*Parser).cmdLogName)
	add("export", "Export machine state", "export", (*Parser).cmdExport)
	add("quit", "Leave the emulator", "quit", (*Parser).cmdQuit)
	add("exit", "Leave the monitor and resume", "exit", (*Parser).cmdExit)

	// Misc
	add("help", "Display help for a command", "help [<command>]", (*Parser).cmdHelp)
	add("print", "Evaluate and print an expression", "print <expression>", (*Parser).cmdPrint)
	add("cd", "Change the working directory", "cd <directory>", (*Parser).cmdChangeDir)
	add("dir", "List the working directory", "dir [<directory>]", (*Parser).cmdDir)
	add("pwd", "Show the working directory", "pwd", (*Parser).cmdPwd)
	add("mkdir", "Create a directory", "mkdir <directory>", (*Parser).cmdMkdir)
	add("rmdir", "Remove a directory", "rmdir <directory>", (*Parser).cmdRmdir)
	add("keybuf", "Feed text into the keyboard buffer", "keybuf <text>", (*Parser).cmdKeybuf)
	add("screenshot", "Save a screenshot", "screenshot \"<filename>\" [<format>]", (*Parser).cmdScreenshot)
	add("resourceget", "Display a resource value", "resourceget \"<resource>\"", (*Parser).cmdResourceGet)
	add("resourceset", "Set a resource value", "resourceset \"<resource>\" \"<value>\"", (*Parser).cmdResourceSet)
	add("load_resources", "Load resources from a file", "load_resources \"<filename>\"", (*Parser).cmdLoadResources)
	add("save_resources", "Save resources to a file", "save_resources \"<filename>\"", (*Parser).cmdSaveResources)
	add("tapectrl", "Control the tape drive", "tapectrl <op>", (*Parser).cmdTapeCtrl)
	add("tapeoffs", "Show or set the tape offset", "tapeoffs [<offset>]", (*Parser).cmdTapeOffs)
	add("cartfreeze", "Press the cartridge freeze button", "cartfreeze", (*Parser).cmdCartFreeze)
	add("profile", "Control the CPU profiler", "profile [on|off|flat|graph|func|disass|clear|context]", (*Parser).cmdProfile)

	// Files and disks
	add("attach", "Attach an image to a device", "attach \"<filename>\" <device>", (*Parser).cmdAttach)
	add("detach", "Detach an image from a device", "detach <device>", (*Parser).cmdDetach)
	add("list", "List the directory of a drive", "list [<device>]", (*Parser).cmdList)
	add("load", "Load a file with load address", "load \"<filename>\" <device> [<address>]", (*Parser).cmdLoad)
	add("basicload", "Load a file to the BASIC area", "basicload \"<filename>\" <device> [<address>]", (*Parser).cmdBasicLoad)
	add("bload", "Load a raw binary file", "bload \"<filename>\" <device> <address>", (*Parser).cmdBload)
	add("save", "Save a memory range with load address", "save \"<filename>\" <device> <address> <address>", (*Parser).cmdSave)
	add("bsave", "Save a raw memory range", "bsave \"<filename>\" <device> <address> <address>", (*Parser).cmdBsave)
	add("verify", "Verify a file against memory", "verify \"<filename>\" <device> [<address>]", (*Parser).cmdVerify)
	add("bverify", "Verify a raw binary against memory", "bverify \"<filename>\" <device> <address>", (*Parser).cmdBverify)
	add("block_read", "Read a disk block into memory", "block_read <track> <sector> [<address>]", (*Parser).cmdBlockRead)
	add("block_write", "Write memory to a disk block", "block_write <track> <sector> <address>", (*Parser).cmdBlockWrite)
	add("autostart", "Attach and run an image", "autostart \"<filename>\" [<index>]", (*Parser).cmdAutostart)
	add("autoload", "Attach and load an image", "autoload \"<filename>\" [<index>]", (*Parser).cmdAutoload)

	// Command files
	add("record", "Record commands to a file", "record \"<filename>\"", (*Parser).cmdRecord)
	add("stop", "Stop recording commands", "stop", (*Parser).cmdStopRecord)
	add("playback", "Play back recorded commands", "playback \"<filename>\"", (*Parser).cmdPlayback)

	root.AddShortcut("a", "assemble")
	root.AddShortcut("al", "add_label")
	root.AddShortcut("bk", "break")
	root.AddShortcut("bl", "bload")
	root.AddShortcut("br", "block_read")
	root.AddShortcut("bs", "bsave")
	root.AddShortcut("bt", "backtrace")
	root.AddShortcut("bv", "bverify")
	root.AddShortcut("bw", "block_write")
	root.AddShortcut("c", "compare")
	root.AddShortcut("chis", "cpuhistory")
	root.AddShortcut("cl", "clear_labels")
	root.AddShortcut("cond", "condition")
	root.AddShortcut("d", "disass")
	root.AddShortcut("del", "delete")
	root.AddShortcut("dev", "device")
	root.AddShortcut("dis", "disable")
	root.AddShortcut("dl", "delete_label")
	root.AddShortcut("en", "enable")
	root.AddShortcut("exp", "export")
	root.AddShortcut("f", "fill")
	root.AddShortcut("g", "goto")
	root.AddShortcut("h", "hunt")
	root.AddShortcut("jump", "goto")
	root.AddShortcut("l", "load")
	root.AddShortcut("ldb", "basicload")
	root.AddShortcut("ll", "load_labels")
	root.AddShortcut("ls", "dir")
	root.AddShortcut("m", "mem")
	root.AddShortcut("mc", "memchar")
	root.AddShortcut("mmsave", "memmapsave")
	root.AddShortcut("mmsh", "memmapshow")
	root.AddShortcut("mmzap", "memmapzap")
	root.AddShortcut("ms", "memsprite")
	root.AddShortcut("n", "next")
	root.AddShortcut("p", "print")
	root.AddShortcut("pb", "playback")
	root.AddShortcut("prof", "profile")
	root.AddShortcut("r", "registers")
	root.AddShortcut("rad", "radix")
	root.AddShortcut("rec", "record")
	root.AddShortcut("resload", "load_resources")
	root.AddShortcut("ressave", "save_resources")
	root.AddShortcut("ret", "return")
	root.AddShortcut("s", "save")
	root.AddShortcut("sc", "screen")
	root.AddShortcut("scrsh", "screenshot")
	root.AddShortcut("sfx", "sidefx")
	root.AddShortcut("shl", "show_labels")
	root.AddShortcut("sl", "save_labels")
	root.AddShortcut("sw", "stopwatch")
	root.AddShortcut("t", "move")
	root.AddShortcut("tr", "trace")
	root.AddShortcut("un", "until")
	root.AddShortcut("v", "verify")
	root.AddShortcut("w", "watch")
	root.AddShortcut("x", "exit")
	root.AddShortcut("z", "step")
	root.AddShortcut("?", "help")

	monCmds = root
}

// Shared argument helpers.

// parseToggleWord reads the on/off/toggle keyword.
func (p *Parser) parseToggleWord() (mon.Toggle, mon.Status) {
	t := p.peek()
	if t.kind == tokWord {
		switch strings.ToLower(t.text) {
		case "on":
			p.next()
			return mon.ToggleOn, mon.OK
		case "off":
			p.next()
			return mon.ToggleOff, mon.OK
		case "toggle":
			p.next()
			return mon.ToggleFlip, mon.OK
		}
	}
	return 0, p.fail(mon.ErrIllegalInput)
}

func (p *Parser) toggleCmd(set func(mon.Toggle), show func()) mon.Status {
	if p.atEnd() {
		show()
		return mon.OK
	}
	t, st := p.parseToggleWord()
	if st != mon.OK {
		return st
	}
	set(t)
	return p.expectEnd()
}

// parseDataList reads a list of byte values: numbers and quoted strings,
// optionally comma separated. With allowMask, a bare "xx" element is a
// match-anything wildcard recorded in the mask.
func (p *Parser) parseDataList(allowMask bool) ([]byte, []bool, mon.Status) {
	var data []byte
	var mask []bool
	for {
		p.acceptSep()
		t := p.peek()
		switch {
		case t.kind == tokString:
			p.next()
			for i := 0; i < len(t.text); i++ {
				data = append(data, t.text[i])
				mask = append(mask, false)
			}
		case allowMask && t.kind == tokWord && strings.EqualFold(t.text, "xx"):
			p.next()
			data = append(data, 0)
			mask = append(mask, true)
		case t.isNumeral():
			p.next()
			v, st := resolveNumber(t, p.sess.Radix)
			if st != mon.OK {
				return nil, nil, p.failAt(t, st)
			}
			data = append(data, byte(v))
			mask = append(mask, false)
		default:
			if len(data) == 0 {
				return nil, nil, p.fail(mon.ErrIllegalInput)
			}
			return data, mask, mon.OK
		}
	}
}

func (p *Parser) radixByName(name string) (mon.Radix, bool) {
	switch strings.ToLower(name) {
	case "h", "hex":
		return mon.Hexadecimal, true
	case "d", "dec":
		return mon.Decimal, true
	case "o", "oct":
		return mon.Octal, true
	case "b", "bin":
		return mon.Binary, true
	}
	return 0, false
}

// Machine-state commands.

func (p *Parser) cmdBank() mon.Status {
	space, has := p.parseSpacePrefix()
	if has {
		p.acceptSep()
	}
	space = p.sess.ResolveSpace(space)
	if p.atEnd() {
		p.mach.BankShow(space)
		return mon.OK
	}
	t := p.next()
	if t.kind != tokWord {
		return p.failAt(t, mon.ErrIllegalInput)
	}
	if _, ok := p.mach.BankNum(space, t.text); !ok {
		return p.failAt(t, mon.ErrIllegalInput)
	}
	if err := p.mach.BankSet(space, t.text); err != nil {
		p.printf("%v\n", err)
		return mon.OK
	}
	return p.expectEnd()
}

func (p *Parser) cmdBacktrace() mon.Status {
	p.mach.Backtrace()
	return p.expectEnd()
}

func (p *Parser) cmdCPU() mon.Status {
	if p.atEnd() {
		p.printf("Active CPU: %s\n", p.sess.CPU())
		return mon.OK
	}
	t := p.next()
	ct, ok := cpu.FamilyByName(t.text)
	if !ok {
		return p.failAt(t, mon.ErrIllegalInput)
	}
	p.sess.SetCPU(mon.SpaceDefault, ct)
	return p.expectEnd()
}

func (p *Parser) cmdCPUHistory() mon.Status {
	count := -1
	p.acceptSep()
	if t := p.peek(); t.isNumeral() && p.peek2().kind != tokColon {
		n, st := p.parseDNumber(mon.ErrIllegalInput)
		if st != mon.OK {
			return st
		}
		count = n
	}
	var spaces []mon.MemSpace
	for {
		p.acceptSep()
		sp, ok := p.parseSpacePrefix()
		if !ok {
			break
		}
		spaces = append(spaces, sp)
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.CPUHistory(count, spaces)
	return mon.OK
}

func (p *Parser) cmdDump() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	if err := p.mach.DumpWrite(name); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdUndump() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	if err := p.mach.DumpRead(name); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdGoto() mon.Status {
	a, st := p.parseOptAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.Go(a)
	return mon.OK
}

func (p *Parser) cmdIO() mon.Status {
	a, st := p.parseOptAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.IOShow(a)
	return mon.OK
}

func (p *Parser) stepCmd(over bool) mon.Status {
	count, st := p.parseOptExprDefault(1)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.Step(count, over)
	return mon.OK
}

func (p *Parser) cmdStep() mon.Status { return p.stepCmd(false) }
func (p *Parser) cmdNext() mon.Status { return p.stepCmd(true) }

func (p *Parser) cmdUp() mon.Status {
	count, st := p.parseOptExprDefault(1)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.StackUp(count)
	return mon.OK
}

func (p *Parser) cmdDown() mon.Status {
	count, st := p.parseOptExprDefault(1)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.StackDown(count)
	return mon.OK
}

func (p *Parser) cmdReturn() mon.Status {
	p.mach.Return()
	return p.expectEnd()
}

func (p *Parser) cmdScreen() mon.Status {
	a, st := p.parseOptAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.ScreenShow(a)
	return mon.OK
}

func (p *Parser) cmdStopwatch() mon.Status {
	if p.wordIs("reset") {
		p.next()
		p.mach.StopwatchReset()
		return p.expectEnd()
	}
	p.mach.StopwatchShow()
	return p.expectEnd()
}

func (p *Parser) cmdWarp() mon.Status {
	return p.toggleCmd(p.mach.Warp, p.mach.WarpShow)
}

func (p *Parser) cmdMainCPUTrace() mon.Status {
	return p.toggleCmd(p.mach.MainCPUTrace, p.mach.MainCPUTraceShow)
}

func (p *Parser) cmdRegisters() mon.Status {
	if p.atEnd() {
		p.mach.RegistersShow(p.sess.DefaultSpace)
		return mon.OK
	}
	space, has := p.parseSpacePrefix()
	if has && p.atEnd() {
		p.mach.RegistersShow(p.sess.ResolveSpace(space))
		return mon.OK
	}
	// register assignment list: reg = value [, reg = value ...]
	for {
		rspace := space
		if !has {
			rspace, _ = p.parseSpacePrefix()
		}
		t := p.next()
		if t.kind != tokWord {
			return p.failAt(t, mon.ErrInvalidRegister)
		}
		reg, ok := p.mach.RegValid(p.sess.ResolveSpace(rspace), t.text)
		if !ok {
			return p.failAt(t, mon.ErrInvalidRegister)
		}
		if !p.accept(tokEq) {
			return p.fail(mon.ErrIllegalInput)
		}
		vt := p.peek()
		if !vt.isNumeral() {
			return p.fail(mon.ErrIllegalInput)
		}
		p.next()
		v, st := resolveNumber(vt, p.sess.Radix)
		if st != mon.OK {
			return p.failAt(vt, st)
		}
		if v > 0xffff {
			return p.failAt(vt, mon.ErrImmediateTooLarge)
		}
		p.mach.RegSet(reg, int(v))
		if !p.accept(tokComma) {
			break
		}
		has = false
	}
	return p.expectEnd()
}

// Symbol-table commands.

func (p *Parser) cmdAddLabel() mon.Status {
	a, st := p.parseAddress()
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	t := p.next()
	if t.kind != tokWord {
		return p.failAt(t, mon.ErrIllegalInput)
	}
	p.mach.SymbolAdd(a, t.text)
	return p.expectEnd()
}

func (p *Parser) cmdDelLabel() mon.Status {
	space, has := p.parseSpacePrefix()
	if has {
		p.acceptSep()
	}
	t := p.next()
	if t.kind != tokWord {
		return p.failAt(t, mon.ErrIllegalInput)
	}
	p.mach.SymbolRemove(p.sess.ResolveSpace(space), t.text)
	return p.expectEnd()
}

func (p *Parser) symbolFileCmd(op func(mon.MemSpace, string) error) mon.Status {
	space, has := p.parseSpacePrefix()
	if has {
		p.acceptSep()
	}
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	if err := op(p.sess.ResolveSpace(space), name); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdLoadLabels() mon.Status { return p.symbolFileCmd(p.mach.SymbolsLoad) }
func (p *Parser) cmdSaveLabels() mon.Status { return p.symbolFileCmd(p.mach.SymbolsSave) }

func (p *Parser) cmdShowLabels() mon.Status {
	space, _ := p.parseSpacePrefix()
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.SymbolsShow(p.sess.ResolveSpace(space))
	return mon.OK
}

func (p *Parser) cmdClearLabels() mon.Status {
	space, _ := p.parseSpacePrefix()
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.SymbolsClear(p.sess.ResolveSpace(space))
	return mon.OK
}

// cmdLabelAssign handles the `.label = <address>` form dispatched ahead of
// the command table.
func (p *Parser) cmdLabelAssign() mon.Status {
	t := p.next() // label
	p.next()      // '='
	a, st := p.parseAddress()
	if st != mon.OK {
		return st
	}
	p.mach.SymbolAdd(a, t.text)
	return p.expectEnd()
}

// Assembler and memory commands.

func (p *Parser) cmdAssemble() mon.Status {
	if p.atEnd() {
		// lone `a` resumes entry at the previous assembly address
		p.asmMode = true
		return mon.OK
	}
	a, st := p.parseAddress()
	if st != mon.OK {
		return st
	}
	p.asmAddr = a
	p.asmMode = true
	if p.atEnd() {
		return mon.OK
	}
	st = p.assembleOne()
	if st == mon.OK {
		p.inAsmList = true
	}
	return st
}

func (p *Parser) cmdDisassemble() mon.Status {
	var rng mon.Range
	rng.End = mon.NoAddr
	rng.Start = mon.NoAddr
	if p.canStartAddress() {
		var st mon.Status
		rng, st = p.parseRange(false)
		if st != mon.OK {
			return st
		}
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.Disassemble(rng)
	return mon.OK
}

func (p *Parser) blockMoveCmd(op func(mon.Range, mon.Addr)) mon.Status {
	rng, st := p.parseRange(true)
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	dest, st := p.parseAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	op(rng, dest)
	return mon.OK
}

func (p *Parser) cmdMove() mon.Status    { return p.blockMoveCmd(p.mach.MemMove) }
func (p *Parser) cmdCompare() mon.Status { return p.blockMoveCmd(p.mach.MemCompare) }

func (p *Parser) cmdFill() mon.Status {
	rng, st := p.parseRange(true)
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	data, _, st := p.parseDataList(false)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.MemFill(rng, data)
	return mon.OK
}

func (p *Parser) cmdHunt() mon.Status {
	rng, st := p.parseRange(true)
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	data, mask, st := p.parseDataList(true)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.MemHunt(rng, data, mask)
	return mon.OK
}

func (p *Parser) optRangeCmd(show func(mon.Range)) mon.Status {
	rng := mon.Range{Start: mon.NoAddr, End: mon.NoAddr}
	if p.canStartAddress() {
		var st mon.Status
		rng, st = p.parseRange(false)
		if st != mon.OK {
			return st
		}
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	show(rng)
	return mon.OK
}

func (p *Parser) cmdMem() mon.Status {
	if t := p.peek(); t.kind == tokWord {
		if r, ok := p.radixByName(t.text); ok && !t.numeral {
			p.next()
			p.acceptSep()
			rng, st := p.parseRange(false)
			if st != mon.OK {
				return st
			}
			if st := p.expectEnd(); st != mon.OK {
				return st
			}
			p.mach.MemDisplay(r, rng)
			return mon.OK
		}
	}
	return p.optRangeCmd(func(rng mon.Range) {
		p.mach.MemDisplay(p.sess.Radix, rng)
	})
}

func (p *Parser) cmdMemChar() mon.Status   { return p.optRangeCmd(p.mach.MemDisplayChars) }
func (p *Parser) cmdMemSprite() mon.Status { return p.optRangeCmd(p.mach.MemDisplaySprites) }

func (p *Parser) cmdTextDisplay() mon.Status {
	return p.optRangeCmd(func(rng mon.Range) { p.mach.MemDisplayText(rng, false) })
}

func (p *Parser) cmdScreencodeDisplay() mon.Status {
	return p.optRangeCmd(func(rng mon.Range) { p.mach.MemDisplayText(rng, true) })
}

func (p *Parser) notImplemented() mon.Status {
	p.pos = p.end
	return mon.StatusNotImplemented
}

func (p *Parser) cmdMemmapZap() mon.Status  { return p.notImplemented() }
func (p *Parser) cmdMemmapShow() mon.Status { return p.notImplemented() }
func (p *Parser) cmdMemmapSave() mon.Status { return p.notImplemented() }

// Checkpoint commands.

func (p *Parser) checkpointCmd(defOps mon.MemOp, stop, temp, allowOps bool) mon.Status {
	if p.atEnd() {
		p.mach.CheckpointList()
		return mon.OK
	}
	var ops mon.MemOp
	for allowOps {
		switch {
		case p.wordIs("load"):
			ops |= mon.OpLoad
		case p.wordIs("store"):
			ops |= mon.OpStore
		case p.wordIs("exec"):
			ops |= mon.OpExec
		default:
			allowOps = false
			continue
		}
		p.next()
	}
	if ops == 0 {
		ops = defOps
	}
	rng, st := p.parseRange(false)
	if st != mon.OK {
		return st
	}
	id := p.mach.CheckpointAdd(rng, stop, ops, temp)
	if p.wordIs("if") {
		p.next()
		tree, st := p.parseCond()
		if st != mon.OK {
			return st
		}
		if err := p.mach.CheckpointSetCondition(id, tree); err != nil {
			p.printf("%v\n", err)
		}
	}
	return p.expectEnd()
}

func (p *Parser) cmdBreak() mon.Status {
	return p.checkpointCmd(mon.OpExec, true, false, true)
}

func (p *Parser) cmdUntil() mon.Status {
	return p.checkpointCmd(mon.OpExec, true, true, false)
}

func (p *Parser) cmdWatch() mon.Status {
	return p.checkpointCmd(mon.OpLoad|mon.OpStore, true, false, true)
}

func (p *Parser) cmdTrace() mon.Status {
	return p.checkpointCmd(mon.OpExec, false, false, true)
}

func (p *Parser) checkpointNum(optional bool) (int, mon.Status) {
	if optional && p.atEnd() {
		return -1, mon.OK
	}
	return p.parseDNumber(mon.ErrExpectCheckpointNumber)
}

func (p *Parser) switchCmd(on bool) mon.Status {
	id, st := p.checkpointNum(true)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.CheckpointSwitch(id, on); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdEnable() mon.Status  { return p.switchCmd(true) }
func (p *Parser) cmdDisable() mon.Status { return p.switchCmd(false) }

func (p *Parser) cmdDelete() mon.Status {
	id, st := p.checkpointNum(true)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.CheckpointDelete(id); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdIgnore() mon.Status {
	id, st := p.checkpointNum(false)
	if st != mon.OK {
		return st
	}
	count, st := p.parseOptExprDefault(1)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.CheckpointIgnore(id, count); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdCondition() mon.Status {
	id, st := p.checkpointNum(false)
	if st != mon.OK {
		return st
	}
	if !p.wordIs("if") {
		return p.fail(mon.ErrIllegalInput)
	}
	p.next()
	tree, st := p.parseCond()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.CheckpointSetCondition(id, tree); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdCommand() mon.Status {
	id, st := p.checkpointNum(false)
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	t := p.peek()
	if t.kind != tokString {
		return p.fail(mon.ErrExpectString)
	}
	p.next()
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.CheckpointSetCommand(id, t.text); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

// Monitor-state commands.

func (p *Parser) cmdDevice() mon.Status {
	if p.atEnd() {
		p.printf("Default device: %s:\n", p.sess.DefaultSpace)
		return mon.OK
	}
	space, ok := p.parseSpacePrefix()
	if !ok {
		// a bare space name without the colon is accepted as well
		t := p.next()
		if t.kind != tokWord {
			return p.failAt(t, mon.ErrIllegalInput)
		}
		space, ok = mon.SpaceByName(t.text)
		if !ok {
			return p.failAt(t, mon.ErrIllegalInput)
		}
	}
	p.sess.DefaultSpace = space
	return p.expectEnd()
}

func (p *Parser) cmdRadix() mon.Status {
	if p.atEnd() {
		p.printf("Default radix is %s\n", p.sess.Radix)
		return mon.OK
	}
	t := p.next()
	if t.kind != tokWord {
		return p.failAt(t, mon.ErrIllegalInput)
	}
	r, ok := p.radixByName(t.text)
	if !ok {
		return p.failAt(t, mon.ErrIllegalInput)
	}
	p.sess.Radix = r
	return p.expectEnd()
}

func (p *Parser) cmdSideFX() mon.Status {
	return p.toggleCmd(p.mach.SideFX, p.mach.SideFXShow)
}

func (p *Parser) cmdDummy() mon.Status {
	return p.toggleCmd(p.mach.DummyAccess, p.mach.DummyAccessShow)
}

func (p *Parser) cmdLog() mon.Status {
	return p.toggleCmd(p.mach.Log, p.mach.LogShow)
}

func (p *Parser) cmdLogName() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	if err := p.mach.LogName(name); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdExport() mon.Status {
	p.mach.Export()
	return p.expectEnd()
}

func (p *Parser) cmdQuit() mon.Status {
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.Quit()
	return mon.OK
}

func (p *Parser) cmdExit() mon.Status {
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.Exit()
	return mon.OK
}

// Misc commands.

func (p *Parser) cmdHelp() mon.Status {
	topic := p.restOfLine()
	if topic == "" {
		p.printf("Available commands:\n")
		for _, c := range monCmds.Commands() {
			if c.Brief != "" {
				p.printf("    %-15s  %s\n", c.Name, c.Brief)
			}
		}
		return mon.OK
	}
	sel, _, err := monCmds.LookupCommand(strings.ToLower(topic))
	if err != nil {
		p.printf("%v\n", err)
		return mon.OK
	}
	if sel.Usage != "" {
		p.printf("Syntax: %s\n", sel.Usage)
	}
	if sel.Brief != "" {
		p.printf("%s.\n", sel.Brief)
	}
	return mon.OK
}

func (p *Parser) cmdPrint() mon.Status {
	v, st := p.evalExpr()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.PrintValue(v)
	return mon.OK
}

// cmdConvert implements the `~` number-conversion form, dispatched on its
// punctuation token.
func (p *Parser) cmdConvert() mon.Status {
	return p.cmdPrint()
}

func (p *Parser) pathCmd(op func(string) error) mon.Status {
	path := p.restOfLine()
	if path == "" {
		return p.fail(mon.ErrExpectFilename)
	}
	if err := op(path); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdChangeDir() mon.Status { return p.pathCmd(p.mach.ChangeDir) }
func (p *Parser) cmdMkdir() mon.Status     { return p.pathCmd(p.mach.MakeDir) }
func (p *Parser) cmdRmdir() mon.Status     { return p.pathCmd(p.mach.RemoveDir) }

func (p *Parser) cmdDir() mon.Status {
	p.mach.ShowDir(p.restOfLine())
	return mon.OK
}

func (p *Parser) cmdPwd() mon.Status {
	p.mach.ShowPwd()
	return p.expectEnd()
}

func (p *Parser) cmdKeybuf() mon.Status {
	p.mach.KeyboardFeed(p.restOfLine())
	return mon.OK
}

func (p *Parser) cmdScreenshot() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	format, st := p.parseOptExprDefault(0)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.Screenshot(name, format); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdResourceGet() mon.Status {
	t := p.peek()
	if t.kind != tokString {
		return p.fail(mon.ErrExpectString)
	}
	p.next()
	if err := p.mach.ResourceGet(t.text); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdResourceSet() mon.Status {
	name := p.peek()
	if name.kind != tokString {
		return p.fail(mon.ErrExpectString)
	}
	p.next()
	value := p.peek()
	if value.kind != tokString {
		return p.fail(mon.ErrExpectString)
	}
	p.next()
	if err := p.mach.ResourceSet(name.text, value.text); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdLoadResources() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	if err := p.mach.ResourcesLoad(name); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdSaveResources() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	if err := p.mach.ResourcesSave(name); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdReset() mon.Status {
	kind, st := p.parseOptExprDefault(0)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.Reset(kind)
	return mon.OK
}

func (p *Parser) cmdTapeCtrl() mon.Status {
	op, st := p.parseOptExprDefault(0)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.TapeControl(op); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdTapeOffs() mon.Status {
	if p.atEnd() {
		p.mach.TapeOffset(0, false)
		return mon.OK
	}
	v, st := p.parseOptExprDefault(0)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.TapeOffset(v, true)
	return mon.OK
}

func (p *Parser) cmdCartFreeze() mon.Status {
	p.mach.CartFreeze()
	return p.expectEnd()
}

func (p *Parser) cmdProfile() mon.Status {
	if p.atEnd() {
		p.mach.ProfileShow()
		return mon.OK
	}
	t := p.peek()
	switch strings.ToLower(t.text) {
	case "flat":
		p.next()
		n, st := p.parseOptExprDefault(0)
		if st != mon.OK {
			return st
		}
		p.mach.ProfileFlat(n)
		return p.expectEnd()
	case "graph":
		p.next()
		ctx := -1
		if p.peek().isNumeral() {
			n, st := p.parseDNumber(mon.ErrIllegalInput)
			if st != mon.OK {
				return st
			}
			ctx = n
		}
		depth := 0
		if p.wordIs("depth") {
			p.next()
			n, st := p.parseDNumber(mon.ErrIllegalInput)
			if st != mon.OK {
				return st
			}
			depth = n
		}
		p.mach.ProfileGraph(ctx, depth)
		return p.expectEnd()
	case "func":
		p.next()
		return p.profileAddrCmd(p.mach.ProfileFunc)
	case "disass":
		p.next()
		return p.profileAddrCmd(p.mach.ProfileDisass)
	case "clear":
		p.next()
		return p.profileAddrCmd(p.mach.ProfileClear)
	case "context":
		p.next()
		n, st := p.parseDNumber(mon.ErrIllegalInput)
		if st != mon.OK {
			return st
		}
		p.mach.ProfileContext(n)
		return p.expectEnd()
	default:
		return p.toggleCmd(p.mach.Profile, p.mach.ProfileShow)
	}
}

func (p *Parser) profileAddrCmd(op func(mon.Addr)) mon.Status {
	a, st := p.parseAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	op(a)
	return mon.OK
}

// cmdDiskCommand passes the rest of the line to the drive, dispatched on
// the leading '@'.
func (p *Parser) cmdDiskCommand() mon.Status {
	if err := p.mach.DiskCommand(p.restOfLine()); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

// File and disk commands.

func (p *Parser) fileArgs() (string, int, mon.Status) {
	name, st := p.parseFilename()
	if st != mon.OK {
		return "", 0, st
	}
	p.acceptSep()
	dev, st := p.parseDNumber(mon.ErrExpectDeviceNumber)
	if st != mon.OK {
		return "", 0, st
	}
	return name, dev, mon.OK
}

func (p *Parser) cmdLoad() mon.Status {
	name, dev, st := p.fileArgs()
	if st != mon.OK {
		return st
	}
	a, st := p.parseOptAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.FileLoad(name, dev, a, false); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdBasicLoad() mon.Status {
	name, dev, st := p.fileArgs()
	if st != mon.OK {
		return st
	}
	a, st := p.parseOptAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.BasicLoad(name, dev, a); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdBload() mon.Status {
	name, dev, st := p.fileArgs()
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	a, st := p.parseAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.FileLoad(name, dev, a, true); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) saveCmd(raw bool) mon.Status {
	name, dev, st := p.fileArgs()
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	rng, st := p.parseRange(true)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.FileSave(name, dev, rng, raw); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdSave() mon.Status  { return p.saveCmd(false) }
func (p *Parser) cmdBsave() mon.Status { return p.saveCmd(true) }

func (p *Parser) cmdVerify() mon.Status {
	name, dev, st := p.fileArgs()
	if st != mon.OK {
		return st
	}
	a, st := p.parseOptAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.FileVerify(name, dev, a, false); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdBverify() mon.Status {
	name, dev, st := p.fileArgs()
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	a, st := p.parseAddress()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.FileVerify(name, dev, a, true); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) blockCmd(requireAddr bool, op func(track, sector int, a mon.Addr) error) mon.Status {
	track, st := p.evalExpr()
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	sector, st := p.evalExpr()
	if st != mon.OK {
		return st
	}
	var a mon.Addr
	if requireAddr {
		p.acceptSep()
		a, st = p.parseAddress()
	} else {
		a, st = p.parseOptAddress()
	}
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := op(track, sector, a); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdBlockRead() mon.Status  { return p.blockCmd(false, p.mach.BlockRead) }
func (p *Parser) cmdBlockWrite() mon.Status { return p.blockCmd(true, p.mach.BlockWrite) }

func (p *Parser) cmdList() mon.Status {
	dev := 8
	if !p.atEnd() {
		n, st := p.parseDNumber(mon.ErrExpectDeviceNumber)
		if st != mon.OK {
			return st
		}
		dev = n
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	p.mach.DriveList(dev)
	return mon.OK
}

func (p *Parser) cmdAttach() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	p.acceptSep()
	dev, st := p.evalExpr()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.Attach(name, dev); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdDetach() mon.Status {
	dev, st := p.evalExpr()
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.Detach(dev); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) autostartCmd(run bool) mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	index, st := p.parseOptExprDefault(0)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	if err := p.mach.Autostart(name, index, run); err != nil {
		p.printf("%v\n", err)
	}
	return mon.OK
}

func (p *Parser) cmdAutostart() mon.Status { return p.autostartCmd(true) }
func (p *Parser) cmdAutoload() mon.Status  { return p.autostartCmd(false) }

// Command files.

func (p *Parser) cmdRecord() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	if err := p.mach.Record(name); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

func (p *Parser) cmdStopRecord() mon.Status {
	p.mach.StopRecording()
	return p.expectEnd()
}

func (p *Parser) cmdPlayback() mon.Status {
	name, st := p.parseFilename()
	if st != mon.OK {
		return st
	}
	if err := p.mach.Playback(name); err != nil {
		p.printf("%v\n", err)
	}
	return p.expectEnd()
}

// cmdEnterData implements the `> <address> <data>` form, dispatched on its
// punctuation token.
func (p *Parser) cmdEnterData() mon.Status {
	a, st := p.parseAddress()
	if st != mon.OK {
		return st
	}
	data, _, st := p.parseDataList(false)
	if st != mon.OK {
		return st
	}
	if st := p.expectEnd(); st != mon.OK {
		return st
	}
	for i, b := range data {
		p.mach.StoreByte(mon.Addr{Space: a.Space, Off: a.Off + uint16(i)}, b)
	}
	return mon.OK
}
