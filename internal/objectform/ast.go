// Copyright 2026 The Flowc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package objectform implements §4.7/§4.8: the translation of a
// scheduled, normalized node into an object machine (record of memory
// plus a step procedure built from control-guarded statements), and
// the control-coalescing peephole over its statement lists.
package objectform

import (
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/sclock"
	"github.com/flowlang/flowc/internal/types"
)

// Expr is the value grammar inside a machine's statements: after
// translation a read is always a local, a step input, or a memory
// cell — never a bare source name whose category is ambiguous.
type Expr interface {
	exprNode()
}

type Lit struct{ Value types.Value }

// LocalRef reads a step-local or a step input; the two share a
// namespace once inside a machine body (§3's "disjoint namespaces
// after renaming" is about categories, not about locals vs. inputs).
type LocalRef struct{ Name string }

// MemRef reads a memory cell, rendered self.Name by the emitter.
type MemRef struct{ Name string }

type Unary struct {
	Op types.UnOp
	X  Expr
}

type Binary struct {
	Op   types.BinOp
	X, Y Expr
}

func (Lit) exprNode()    {}
func (LocalRef) exprNode() {}
func (MemRef) exprNode()  {}
func (*Unary) exprNode()  {}
func (*Binary) exprNode() {}

// Stmt is an object-machine statement.
type Stmt interface {
	stmtNode()
}

// LocalAssign is "v := e".
type LocalAssign struct {
	Name string
	Expr Expr
}

// MemAssign is "self.v := e".
type MemAssign struct {
	Name string
	Expr Expr
}

// StepCall is "(x1,...,xk) := instance.step(e1,...,em)".
type StepCall struct {
	Outs     []string
	Instance string
	Args     []Expr
}

// Reset is "instance.reset()".
type Reset struct {
	Instance string
}

// If splits control on Carrier: Then runs when it is true, Else when
// it is false. Either side may be empty — "if c then [s] else []" and
// "if c then [] else [s]" are both represented this way so that
// control-coalescing can merge adjacent guards uniformly.
type If struct {
	Carrier    string
	Then, Else []Stmt
}

func (*LocalAssign) stmtNode() {}
func (*MemAssign) stmtNode()   {}
func (*StepCall) stmtNode()    {}
func (*Reset) stmtNode()       {}
func (*If) stmtNode()          {}

// Memory is a persistent cell introduced by an fby equation.
type Memory struct {
	Name string
	Init types.Value
	Clk  sclock.Clock
}

// Instance is a named sub-machine created by a node call.
type Instance struct {
	Name string
	Node string
}

// Machine is the object-form translation of one node.
type Machine struct {
	Name      string
	Inputs    []fast.Param
	Outputs   []fast.Param
	Memories  []Memory
	Instances []Instance
	Locals    []string
	Body      []Stmt
}
