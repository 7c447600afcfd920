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

// Package minidf is the MiniDF IR of §3/§4.4: the Clocked AST with
// if, pre, ->, and current removed. Every surviving node type is a
// strict subset of ctast's vocabulary, annotated the same way (each
// expression carries a ctast.Meta of type and clock).
package minidf

import (
	"github.com/flowlang/flowc/internal/ctast"
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/types"
)

type Expr interface {
	exprNode()
	Meta() ctast.Meta
}

type Lit struct {
	M     ctast.Meta
	Value types.Value
}

type Var struct {
	M    ctast.Meta
	Name string
}

type Unary struct {
	M  ctast.Meta
	Op types.UnOp
	X  Expr
}

type Binary struct {
	M    ctast.Meta
	Op   types.BinOp
	X, Y Expr
}

type When struct {
	M        ctast.Meta
	X        Expr
	Carrier  string
	Polarity bool
}

type Merge struct {
	M               ctast.Meta
	Carrier         string
	OnTrue, OnFalse Expr
}

// Fby is "followed by". In MiniDF it may still appear nested anywhere
// in an expression tree; internal/normalize is the stage that hoists
// it to the top of its own equation.
type Fby struct {
	M    ctast.Meta
	Init types.Value
	X    Expr
}

type Call struct {
	M     ctast.Meta
	Node  string
	Args  []Expr
	Reset string
}

func (e *Lit) exprNode()    {}
func (e *Var) exprNode()    {}
func (e *Unary) exprNode()  {}
func (e *Binary) exprNode() {}
func (e *When) exprNode()   {}
func (e *Merge) exprNode()  {}
func (e *Fby) exprNode()    {}
func (e *Call) exprNode()   {}

func (e *Lit) Meta() ctast.Meta    { return e.M }
func (e *Var) Meta() ctast.Meta    { return e.M }
func (e *Unary) Meta() ctast.Meta  { return e.M }
func (e *Binary) Meta() ctast.Meta { return e.M }
func (e *When) Meta() ctast.Meta   { return e.M }
func (e *Merge) Meta() ctast.Meta  { return e.M }
func (e *Fby) Meta() ctast.Meta    { return e.M }
func (e *Call) Meta() ctast.Meta   { return e.M }

// Children mirrors ctast.Children/fast.Children for this narrower grammar.
func Children(x Expr) []Expr {
	switch e := x.(type) {
	case *Lit, *Var:
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
	case *Call:
		return e.Args
	default:
		panic("minidf: unhandled expression type in Children")
	}
}

type Equation struct {
	Names []string
	Expr  Expr
}

type Node struct {
	Name      string
	Inputs    []fast.Param
	Outputs   []fast.Param
	Locals    []fast.LocalDecl
	Equations []Equation
}
