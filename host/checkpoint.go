// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"

	"github.com/retromon/mon"
)

// A checkpoint is one break/watch/trace point. Checkpoints keep their ids
// for the life of the session; deletion leaves a hole rather than renumber.
type checkpoint struct {
	id      int
	rng     mon.Range
	ops     mon.MemOp
	stop    bool
	temp    bool
	enabled bool
	ignore  int
	hits    int
	cond    *mon.CondNode
	command string
}

type checkpointStore struct {
	points []*checkpoint
	nextID int
}

func (cs *checkpointStore) find(id int) *checkpoint {
	for _, cp := range cs.points {
		if cp.id == id {
			return cp
		}
	}
	return nil
}

func (cs *checkpointStore) add(rng mon.Range, stop bool, ops mon.MemOp, temp bool) *checkpoint {
	cs.nextID++
	cp := &checkpoint{
		id:      cs.nextID,
		rng:     rng,
		ops:     ops,
		stop:    stop,
		temp:    temp,
		enabled: true,
	}
	cs.points = append(cs.points, cp)
	return cp
}

func (cs *checkpointStore) remove(id int) bool {
	for i, cp := range cs.points {
		if cp.id == id {
			cs.points = append(cs.points[:i], cs.points[i+1:]...)
			return true
		}
	}
	return false
}

// trigger reports whether any enabled, non-ignored checkpoint covering the
// address fires for the access kind. Conditions are evaluated against the
// machine; temporary checkpoints that fire remove themselves.
func (cs *checkpointStore) trigger(m *Machine, a mon.Addr, op mon.MemOp) (int, bool) {
	for _, cp := range cs.points {
		if !cp.enabled || cp.ops&op == 0 {
			continue
		}
		if a.Off < cp.rng.Start.Off {
			continue
		}
		end := cp.rng.Start.Off
		if !cp.rng.IsOpen() {
			end = cp.rng.End.Off
		}
		if a.Off > end {
			continue
		}
		if cp.cond != nil && m.evalCond(cp.cond) == 0 {
			continue
		}
		cp.hits++
		if cp.ignore > 0 {
			cp.ignore--
			continue
		}
		id, stop := cp.id, cp.stop
		if cp.temp {
			cs.remove(cp.id)
		}
		if stop {
			return id, true
		}
	}
	return 0, false
}

func (cp *checkpoint) opsString() string {
	var parts []string
	if cp.ops&mon.OpLoad != 0 {
		parts = append(parts, "load")
	}
	if cp.ops&mon.OpStore != 0 {
		parts = append(parts, "store")
	}
	if cp.ops&mon.OpExec != 0 {
		parts = append(parts, "exec")
	}
	return strings.Join(parts, "|")
}

// Checkpoint half of the mon.Machine interface.

func (m *Machine) CheckpointAdd(rng mon.Range, stop bool, ops mon.MemOp, temporary bool) int {
	cp := m.cps.add(rng, stop, ops, temporary)
	m.printf("#%d (%s) %s\n", cp.id, cp.opsString(), cp.rng.Start)
	return cp.id
}

func (m *Machine) CheckpointList() {
	if len(m.cps.points) == 0 {
		m.printf("no checkpoints are set\n")
		return
	}
	for _, cp := range m.cps.points {
		state := "enabled"
		if !cp.enabled {
			state = "disabled"
		}
		action := "trace"
		if cp.stop {
			action = "stop"
		}
		m.printf("#%d %s %s (%s on %s) hits: %d\n",
			cp.id, state, cp.rng.Start, action, cp.opsString(), cp.hits)
		if cp.cond != nil {
			m.printf("    condition: %s\n", cp.cond)
		}
		if cp.command != "" {
			m.printf("    command: %q\n", cp.command)
		}
	}
}

func (m *Machine) CheckpointDelete(id int) error {
	if id < 0 {
		m.cps.points = nil
		return nil
	}
	if !m.cps.remove(id) {
		return fmt.Errorf("checkpoint %d does not exist", id)
	}
	return nil
}

func (m *Machine) CheckpointSwitch(id int, on bool) error {
	if id < 0 {
		for _, cp := range m.cps.points {
			cp.enabled = on
		}
		return nil
	}
	cp := m.cps.find(id)
	if cp == nil {
		return fmt.Errorf("checkpoint %d does not exist", id)
	}
	cp.enabled = on
	return nil
}

func (m *Machine) CheckpointIgnore(id, count int) error {
	cp := m.cps.find(id)
	if cp == nil {
		return fmt.Errorf("checkpoint %d does not exist", id)
	}
	cp.ignore = count
	return nil
}

func (m *Machine) CheckpointSetCondition(id int, tree *mon.CondNode) error {
	cp := m.cps.find(id)
	if cp == nil {
		return fmt.Errorf("checkpoint %d does not exist", id)
	}
	cp.cond = tree
	if tree != nil {
		m.printf("#%d condition: %s\n", id, tree)
	}
	return nil
}

func (m *Machine) CheckpointSetCommand(id int, command string) error {
	cp := m.cps.find(id)
	if cp == nil {
		return fmt.Errorf("checkpoint %d does not exist", id)
	}
	cp.command = command
	return nil
}

// evalCond evaluates a condition tree against the machine. Comparisons
// yield 0 or 1; the logical combinators treat any non-zero value as true.
func (m *Machine) evalCond(n *mon.CondNode) int {
	switch n.Kind {
	case mon.CondConst:
		return n.Value
	case mon.CondReg:
		return m.RegGet(n.Reg)
	case mon.CondBankMem:
		addr := n.Value
		if n.Child1 != nil {
			addr = m.evalCond(n.Child1)
		}
		return int(m.LoadByte(mon.Addr{Space: m.sess.DefaultSpace, Off: uint16(addr)}))
	}

	l := m.evalCond(n.Child1)
	r := m.evalCond(n.Child2)
	var v bool
	switch n.Op {
	case mon.CondEqual:
		v = l == r
	case mon.CondNotEqual:
		v = l != r
	case mon.CondLess:
		v = l < r
	case mon.CondGreater:
		v = l > r
	case mon.CondLessEqual:
		v = l <= r
	case mon.CondGreaterEqual:
		v = l >= r
	case mon.CondAnd:
		v = l != 0 && r != 0
	case mon.CondOr:
		v = l != 0 || r != 0
	}
	if v {
		return 1
	}
	return 0
}
