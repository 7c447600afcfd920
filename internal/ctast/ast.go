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

// Package ctast holds the Typed AST and Clocked AST of §3: a tree with
// the same shape as internal/fast but annotated, per expression, with
// a tuple-of-types and (once the clock stage has run) a clock. The two
// stages share one Go type because a clocked expression is exactly a
// typed expression plus a clock (§3): internal/typecheck produces
// trees with Meta.Clk left at its zero value, and internal/clockcheck
// consumes such a tree and builds a fresh one of the same shape with
// Meta.Clk populated, honoring the "each stage constructs a fresh IR"
// lifecycle rule of §3 without duplicating the node vocabulary twice.
package ctast

import (
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/sclock"
	"github.com/flowlang/flowc/internal/types"
)

// Meta is the annotation carried by every expression node.
type Meta struct {
	Typ types.Seq
	Clk sclock.Clock
}

// Expr is the annotated counterpart of fast.Expr.
type Expr interface {
	exprNode()
	Meta() Meta
}

type Lit struct {
	M     Meta
	Value types.Value
}

type Var struct {
	M    Meta
	Name string
}

type Unary struct {
	M  Meta
	Op types.UnOp
	X  Expr
}

type Binary struct {
	M    Meta
	Op   types.BinOp
	X, Y Expr
}

type When struct {
	M        Meta
	X        Expr
	Carrier  string
	Polarity bool
}

type Merge struct {
	M               Meta
	Carrier         string
	OnTrue, OnFalse Expr
}

type Fby struct {
	M    Meta
	Init types.Value
	X    Expr
}

type Pre struct {
	M Meta
	X Expr
}

type Arrow struct {
	M        Meta
	Branches []Expr
}

type If struct {
	M                Meta
	Cond, Then, Else Expr
}

type Current struct {
	M    Meta
	X    string
	Init types.Value
}

type Call struct {
	M     Meta
	Node  string
	Args  []Expr
	Reset string
}

func (e *Lit) exprNode()     {}
func (e *Var) exprNode()     {}
func (e *Unary) exprNode()   {}
func (e *Binary) exprNode()  {}
func (e *When) exprNode()    {}
func (e *Merge) exprNode()   {}
func (e *Fby) exprNode()     {}
func (e *Pre) exprNode()     {}
func (e *Arrow) exprNode()   {}
func (e *If) exprNode()      {}
func (e *Current) exprNode() {}
func (e *Call) exprNode()    {}

func (e *Lit) Meta() Meta     { return e.M }
func (e *Var) Meta() Meta     { return e.M }
func (e *Unary) Meta() Meta   { return e.M }
func (e *Binary) Meta() Meta  { return e.M }
func (e *When) Meta() Meta    { return e.M }
func (e *Merge) Meta() Meta   { return e.M }
func (e *Fby) Meta() Meta     { return e.M }
func (e *Pre) Meta() Meta     { return e.M }
func (e *Arrow) Meta() Meta   { return e.M }
func (e *If) Meta() Meta      { return e.M }
func (e *Current) Meta() Meta { return e.M }
func (e *Call) Meta() Meta    { return e.M }

// Type is a convenience accessor for Meta().Typ.
func Type(e Expr) types.Seq { return e.Meta().Typ }

// Clock is a convenience accessor for Meta().Clk.
func Clock(e Expr) sclock.Clock { return e.Meta().Clk }

// Children mirrors fast.Children for the annotated tree.
func Children(x Expr) []Expr {
	switch e := x.(type) {
	case *Lit, *Var, *Current:
		return nil
	case *Unary:
		return []Expr{e.X}
	case *Binary:
		return []Expr{e.X, e.Y}
	case *When:
		return []Expr{e.X}
	case *Merge:
		return []Expr{e.OnTrue, e.OnFalse}
	case *Fby:
		return []Expr{e.X}
	case *Pre:
		return []Expr{e.X}
	case *Arrow:
		return e.Branches
	case *If:
		return []Expr{e.Cond, e.Then, e.Else}
	case *Call:
		return e.Args
	default:
		panic("ctast: unhandled expression type in Children")
	}
}

// Equation is the annotated counterpart of fast.Equation.
type Equation struct {
	Names []string
	Expr  Expr
}

// Param and LocalDecl carry no expression content, so the annotated
// tree reuses fast's definitions directly rather than duplicating them.
type Param = fast.Param
type LocalDecl = fast.LocalDecl

// Node is the annotated counterpart of fast.Node.
type Node struct {
	Name      string
	Inputs    []Param
	Outputs   []Param
	Locals    []LocalDecl
	Equations []Equation
}
