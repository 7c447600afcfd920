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

// Package fast defines the source-level AST (§3): nodes, equations and
// the surface expression grammar, as produced by an external parser
// and consumed by the first pipeline stage. The name is short for
// "flow AST" and deliberately does not carry source positions: the
// core never diagnoses by location (Non-goal, §1).
package fast

import "github.com/flowlang/flowc/internal/types"

// Param is a typed formal: an input, output, or declared local.
type Param struct {
	Name string
	Type types.Base
}

// LocalDecl is a node-local variable declaration. Locals (unlike
// inputs/outputs) may carry a clock annotation (`: t when c` / `:
// t whenot c`); WhenCarrier == "" means the local is declared on the
// base clock.
type LocalDecl struct {
	Param
	WhenCarrier  string
	WhenPolarity bool
}

// Equation binds the non-empty tuple of Names to Expr. Tuples of
// length > 1 only ever arise from a node-call Expr.
type Equation struct {
	Names []string
	Expr  Expr
}

// Node is a single source-level node declaration.
type Node struct {
	Name    string
	Inputs  []Param
	Outputs []Param
	Locals  []LocalDecl
	Equations []Equation
}

// Program is the full input to the core: the node list plus the name
// of the entry node to be wrapped with a runnable main (§6).
type Program struct {
	Nodes []Node
	Entry string
}

// Expr is the sum type of surface expressions (§3). Implementations
// are listed below; consumers type-switch on the concrete type.
type Expr interface {
	exprNode()
}

// Lit is a literal value.
type Lit struct{ Value types.Value }

// Var is a reference to an input, output, or local.
type Var struct{ Name string }

// Unary applies a unary operator.
type Unary struct {
	Op types.UnOp
	X  Expr
}

// Binary applies a binary operator.
type Binary struct {
	Op   types.BinOp
	X, Y Expr
}

// When samples X on the sub-clock (Carrier, Polarity).
type When struct {
	X        Expr
	Carrier  string
	Polarity bool
}

// Merge combines complementary sub-clocked streams on carrier's clock.
type Merge struct {
	Carrier  string
	OnTrue   Expr
	OnFalse  Expr
}

// Fby is "followed by": Init on the first tick, then X delayed by one.
type Fby struct {
	Init types.Value
	X    Expr
}

// Pre is the previous value of X (undefined on the first tick unless
// statically protected by an enclosing Arrow, §7).
type Pre struct{ X Expr }

// Arrow is the n-ary initial-sequence operator e1 -> e2 -> ... -> en.
// len(Branches) is always >= 1; a plain `e1 -> e2` is Branches = {e1,
// e2}.
type Arrow struct{ Branches []Expr }

// If is the surface conditional.
type If struct {
	Cond, Then, Else Expr
}

// Current broadcasts a sub-clocked variable onto the base clock,
// holding Init until the variable's clock first ticks.
type Current struct {
	X    string
	Init types.Value
}

// Call is a node call, with an optional reset carrier.
type Call struct {
	Node  string
	Args  []Expr
	Reset string // "" means no reset
}

func (*Lit) exprNode()     {}
func (*Var) exprNode()     {}
func (*Unary) exprNode()   {}
func (*Binary) exprNode()  {}
func (*When) exprNode()    {}
func (*Merge) exprNode()   {}
func (*Fby) exprNode()     {}
func (*Pre) exprNode()     {}
func (*Arrow) exprNode()   {}
func (*If) exprNode()      {}
func (*Current) exprNode() {}
func (*Call) exprNode()    {}
