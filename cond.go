// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mon

import (
	"fmt"
	"strings"
)

// A CondOp is a comparison or logical combinator in a checkpoint guard.
// Comparisons and combinators form one flat operator class; explicit
// parentheses are the only grouping mechanism.
type CondOp byte

const (
	CondNone CondOp = iota // leaf nodes carry no operator
	CondEqual
	CondNotEqual
	CondLess
	CondGreater
	CondLessEqual
	CondGreaterEqual
	CondAnd
	CondOr
)

func (op CondOp) String() string {
	switch op {
	case CondEqual:
		return "=="
	case CondNotEqual:
		return "!="
	case CondLess:
		return "<"
	case CondGreater:
		return ">"
	case CondLessEqual:
		return "<="
	case CondGreaterEqual:
		return ">="
	case CondAnd:
		return "&&"
	case CondOr:
		return "||"
	default:
		return "?"
	}
}

// A CondKind tags what a condition node holds. A leaf holds exactly one of
// a register reference, a constant, or a bank-qualified memory reference.
type CondKind byte

const (
	CondConst CondKind = iota
	CondReg
	CondBankMem
	CondBinary
)

// A CondNode is one node of a checkpoint guard tree. Each node is owned
// exclusively by its parent; the tree is acyclic by construction.
//
// Paren records whether the user wrote explicit parentheses around the
// node. It matters only for faithful re-display, never for evaluation.
type CondNode struct {
	Kind  CondKind
	Op    CondOp // CondBinary only
	Paren bool

	Reg      Reg    // CondReg
	Value    int    // CondConst, or the address of a CondBankMem leaf
	Bank     int    // bank id; -1 means the default space
	BankName string // source spelling, for re-display

	Child1 *CondNode // CondBinary left operand, or CondBankMem subtree
	Child2 *CondNode // CondBinary right operand
}

// NewCondReg returns a register-reference leaf.
func NewCondReg(r Reg) *CondNode {
	return &CondNode{Kind: CondReg, Reg: r, Bank: -1}
}

// NewCondConst returns a constant-value leaf.
func NewCondConst(v int) *CondNode {
	return &CondNode{Kind: CondConst, Value: v, Bank: -1}
}

// NewCondBankMem returns a bank-qualified memory-reference node. The inner
// operand may be a resolved address (sub == nil) or a parenthesized
// sub-expression.
func NewCondBankMem(bank int, name string, addr int, sub *CondNode) *CondNode {
	return &CondNode{Kind: CondBankMem, Bank: bank, BankName: name, Value: addr, Child1: sub}
}

// NewCondBinary joins two owned subtrees under an operator.
func NewCondBinary(op CondOp, left, right *CondNode) *CondNode {
	return &CondNode{Kind: CondBinary, Op: op, Bank: -1, Child1: left, Child2: right}
}

// String re-displays the node as the user wrote it, emitting parentheses
// exactly where the Paren flag is set and nowhere else.
func (n *CondNode) String() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.display(&sb)
	return sb.String()
}

func (n *CondNode) display(sb *strings.Builder) {
	if n.Paren {
		sb.WriteByte('(')
	}
	switch n.Kind {
	case CondReg:
		sb.WriteString(n.Reg.Name)
	case CondConst:
		fmt.Fprintf(sb, "$%x", n.Value)
	case CondBankMem:
		sb.WriteString(n.BankName)
		sb.WriteByte(':')
		if n.Child1 != nil {
			n.Child1.display(sb)
		} else {
			fmt.Fprintf(sb, "$%x", n.Value)
		}
	case CondBinary:
		n.Child1.display(sb)
		sb.WriteByte(' ')
		sb.WriteString(n.Op.String())
		sb.WriteByte(' ')
		n.Child2.display(sb)
	}
	if n.Paren {
		sb.WriteByte(')')
	}
}
