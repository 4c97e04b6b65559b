// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bufio"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retromon/mon"
)

func newTestMachine() (*Machine, *bytes.Buffer) {
	sess := mon.NewSession()
	m := NewMachine(sess)
	var buf bytes.Buffer
	m.SetOutput(bufio.NewWriter(&buf))
	return m, &buf
}

func compAddr(off uint16) mon.Addr {
	return mon.Addr{Space: mon.SpaceComp, Off: off}
}

func compRange(start, end uint16) mon.Range {
	return mon.Range{Start: compAddr(start), End: compAddr(end)}
}

func TestMemFillRepeatsPattern(t *testing.T) {
	m, _ := newTestMachine()
	m.MemFill(compRange(0xc000, 0xc009), []byte{1, 2, 3})

	assert.Equal(t, byte(1), m.LoadByte(compAddr(0xc000)))
	assert.Equal(t, byte(3), m.LoadByte(compAddr(0xc002)))
	assert.Equal(t, byte(1), m.LoadByte(compAddr(0xc003)))
	assert.Equal(t, byte(1), m.LoadByte(compAddr(0xc009)))
	assert.Equal(t, byte(0), m.LoadByte(compAddr(0xc00a)))
}

func TestMemMoveOverlapping(t *testing.T) {
	m, _ := newTestMachine()
	for i := uint16(0); i < 4; i++ {
		m.StoreByte(compAddr(0xc000+i), byte(i+1))
	}

	// overlapping forward copy must see the original bytes
	m.MemMove(compRange(0xc000, 0xc003), compAddr(0xc002))
	for i, want := range []byte{1, 2, 1, 2, 3, 4} {
		assert.Equal(t, want, m.LoadByte(compAddr(0xc000+uint16(i))), "offset %d", i)
	}
}

func TestMemSpacesAreIndependent(t *testing.T) {
	m, _ := newTestMachine()
	m.StoreByte(compAddr(0x1000), 0xaa)
	assert.Equal(t, byte(0), m.LoadByte(mon.Addr{Space: mon.SpaceDisk8, Off: 0x1000}))
}

func TestCheckpointTrigger(t *testing.T) {
	m, _ := newTestMachine()
	id := m.CheckpointAdd(compRange(0xc000, 0xc00f), true, mon.OpExec, false)

	_, stop := m.cps.trigger(m, compAddr(0xc005), mon.OpExec)
	assert.True(t, stop, "exec inside the range must fire")

	_, stop = m.cps.trigger(m, compAddr(0xc010), mon.OpExec)
	assert.False(t, stop, "exec past the range must not fire")

	_, stop = m.cps.trigger(m, compAddr(0xc005), mon.OpLoad)
	assert.False(t, stop, "a load must not fire an exec checkpoint")

	require.NoError(t, m.CheckpointDelete(id))
	_, stop = m.cps.trigger(m, compAddr(0xc005), mon.OpExec)
	assert.False(t, stop, "deleted checkpoint must not fire")
}

func TestCheckpointIgnoreAndHits(t *testing.T) {
	m, _ := newTestMachine()
	id := m.CheckpointAdd(compRange(0xc000, 0xc000), true, mon.OpExec, false)
	require.NoError(t, m.CheckpointIgnore(id, 2))

	for i := 0; i < 2; i++ {
		_, stop := m.cps.trigger(m, compAddr(0xc000), mon.OpExec)
		assert.False(t, stop, "ignored hit %d must not stop", i+1)
	}
	_, stop := m.cps.trigger(m, compAddr(0xc000), mon.OpExec)
	assert.True(t, stop, "hits after the ignore count must stop")

	cp := m.cps.find(id)
	require.NotNil(t, cp)
	assert.Equal(t, 3, cp.hits)
}

func TestCheckpointCondition(t *testing.T) {
	m, _ := newTestMachine()
	reg, ok := m.RegValid(mon.SpaceComp, "a")
	require.True(t, ok)

	id := m.CheckpointAdd(compRange(0xc000, 0xc000), true, mon.OpExec, false)
	cond := mon.NewCondBinary(mon.CondEqual, mon.NewCondReg(reg), mon.NewCondConst(5))
	require.NoError(t, m.CheckpointSetCondition(id, cond))

	m.RegSet(reg, 4)
	_, stop := m.cps.trigger(m, compAddr(0xc000), mon.OpExec)
	assert.False(t, stop, "condition false must not fire")

	m.RegSet(reg, 5)
	_, stop = m.cps.trigger(m, compAddr(0xc000), mon.OpExec)
	assert.True(t, stop, "condition true must fire")
}

func TestCheckpointTemporary(t *testing.T) {
	m, _ := newTestMachine()
	id := m.CheckpointAdd(compRange(0xc000, 0xc000), true, mon.OpExec, true)

	_, stop := m.cps.trigger(m, compAddr(0xc000), mon.OpExec)
	assert.True(t, stop)
	assert.Nil(t, m.cps.find(id), "temporary checkpoint must remove itself")
}

func TestEvalCond(t *testing.T) {
	m, _ := newTestMachine()
	reg, ok := m.RegValid(mon.SpaceComp, "x")
	require.True(t, ok)
	m.RegSet(reg, 7)
	m.StoreByte(compAddr(0x1234), 0x42)

	cases := []struct {
		name string
		tree *mon.CondNode
		want int
	}{
		{"const", mon.NewCondConst(9), 9},
		{"reg", mon.NewCondReg(reg), 7},
		{"bankmem", mon.NewCondBankMem(1, "ram", 0x1234, nil), 0x42},
		{"eq", mon.NewCondBinary(mon.CondEqual, mon.NewCondReg(reg), mon.NewCondConst(7)), 1},
		{"lt", mon.NewCondBinary(mon.CondLess, mon.NewCondReg(reg), mon.NewCondConst(7)), 0},
		{"and", mon.NewCondBinary(mon.CondAnd, mon.NewCondConst(1), mon.NewCondConst(0)), 0},
		{"or", mon.NewCondBinary(mon.CondOr, mon.NewCondConst(0), mon.NewCondConst(3)), 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, m.evalCond(c.tree), c.name)
	}
}

func TestSymbolsRoundTrip(t *testing.T) {
	m, _ := newTestMachine()
	m.SymbolAdd(compAddr(0xc000), ".Start")
	m.SymbolAdd(compAddr(0xc010), ".loop")

	file := filepath.Join(t.TempDir(), "labels")
	require.NoError(t, m.SymbolsSave(mon.SpaceComp, file))

	m.SymbolsClear(mon.SpaceComp)
	_, ok := m.SymbolLookup(mon.SpaceComp, ".start")
	require.False(t, ok)

	require.NoError(t, m.SymbolsLoad(mon.SpaceComp, file))
	off, ok := m.SymbolLookup(mon.SpaceComp, ".START")
	assert.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, uint16(0xc000), off)
	off, ok = m.SymbolLookup(mon.SpaceComp, ".loop")
	assert.True(t, ok)
	assert.Equal(t, uint16(0xc010), off)
}

func TestRecordPlayback(t *testing.T) {
	m, _ := newTestMachine()
	file := filepath.Join(t.TempDir(), "session")

	require.NoError(t, m.Record(file))
	m.RecordLine("fill c000 c00f ab")
	m.RecordLine("m c000")
	m.StopRecording()

	require.NoError(t, m.Playback(file))
	line, ok := m.NextPlayback()
	require.True(t, ok)
	assert.Equal(t, "fill c000 c00f ab", line)
	line, ok = m.NextPlayback()
	require.True(t, ok)
	assert.Equal(t, "m c000", line)
	_, ok = m.NextPlayback()
	assert.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	m, _ := newTestMachine()
	reg, ok := m.RegValid(mon.SpaceComp, "pc")
	require.True(t, ok)
	m.RegSet(reg, 0xc000)
	m.StoreByte(compAddr(0x2000), 0x5a)

	file := filepath.Join(t.TempDir(), "snap")
	require.NoError(t, m.DumpWrite(file))

	m.StoreByte(compAddr(0x2000), 0)
	m.RegSet(reg, 0)

	require.NoError(t, m.DumpRead(file))
	assert.Equal(t, byte(0x5a), m.LoadByte(compAddr(0x2000)))
	assert.Equal(t, 0xc000, m.RegGet(reg))
}

func TestBankSwitching(t *testing.T) {
	m, _ := newTestMachine()

	n, ok := m.BankNum(mon.SpaceComp, "ram")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = m.BankNum(mon.SpaceComp, "nosuchbank")
	assert.False(t, ok)

	require.NoError(t, m.BankSet(mon.SpaceComp, "ROM"))
	assert.Error(t, m.BankSet(mon.SpaceComp, "nosuchbank"))
}
