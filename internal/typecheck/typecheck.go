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

// Package typecheck implements §4.2: it walks a fast.Node, assigning a
// tuple-of-types to every expression and checking the declared
// signatures of called nodes, producing a ctast.Node with Meta.Typ
// filled in (Meta.Clk is left at its zero value for internal/clockcheck
// to fill in next).
package typecheck

import (
	"fmt"

	"github.com/flowlang/flowc/internal/ctast"
	"github.com/flowlang/flowc/internal/errs"
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/types"
)

// Signature is a node's arity/type contract, as seen by callers.
type Signature struct {
	InputTypes  []types.Base
	OutputTypes []types.Base
}

// Signatures maps node name to its checked signature. Callers
// (internal/compiler) build this incrementally, one node at a time, in
// causality.OrderNodes order, so that by the time node n is checked,
// every node n calls already has an entry.
type Signatures map[string]Signature

// Node type-checks n using sigs for any callee signatures, and returns
// n's own signature for insertion into sigs by the caller.
func Node(n fast.Node, sigs Signatures) (ctast.Node, Signature, error) {
	c := &checker{sigs: sigs, decls: make(map[string]types.Base)}

	for _, p := range n.Inputs {
		c.decls[p.Name] = p.Type
	}
	for _, p := range n.Outputs {
		c.decls[p.Name] = p.Type
	}
	for _, l := range n.Locals {
		c.decls[l.Name] = l.Type
	}

	out := ctast.Node{Name: n.Name, Inputs: n.Inputs, Outputs: n.Outputs, Locals: n.Locals}
	for _, eq := range n.Equations {
		ce, seq := c.expr(eq.Expr)
		if len(eq.Names) > 1 {
			if _, ok := eq.Expr.(*fast.Call); !ok {
				c.errs.Add(&errs.TupleNotAllowedError{Context: "multi-name equation must call a node"})
			}
		}
		if len(eq.Names) != len(seq) && len(seq) > 0 {
			c.errs.Add(&errs.ArityMismatchError{Node: n.Name, Expected: len(eq.Names), Found: len(seq)})
		}
		for i, name := range eq.Names {
			if i < len(seq) {
				if declared, ok := c.decls[name]; ok && declared != seq[i] {
					c.errs.Add(&errs.TypeMismatchError{
						Context:  fmt.Sprintf("equation defining %q", name),
						Expected: declared.String(),
						Found:    seq[i].String(),
					})
				} else if !ok {
					c.decls[name] = seq[i]
				}
			}
		}
		out.Equations = append(out.Equations, ctast.Equation{Names: eq.Names, Expr: ce})
	}

	if c.errs.Len() > 0 {
		return ctast.Node{}, Signature{}, c.errs.AsError()
	}

	sig := Signature{}
	for _, p := range n.Inputs {
		sig.InputTypes = append(sig.InputTypes, p.Type)
	}
	for _, p := range n.Outputs {
		sig.OutputTypes = append(sig.OutputTypes, p.Type)
	}
	return out, sig, nil
}

type checker struct {
	sigs  Signatures
	decls map[string]types.Base
	errs  errs.List
}

func single(t types.Base) types.Seq { return types.Seq{t} }

// expr returns the annotated node and its type sequence. On a checked
// error it records the error and returns a best-effort placeholder so
// that checking of sibling expressions can continue and collect
// further errors.
func (c *checker) expr(e fast.Expr) (ctast.Expr, types.Seq) {
	switch x := e.(type) {
	case *fast.Lit:
		seq := single(x.Value.Base)
		return &ctast.Lit{M: ctast.Meta{Typ: seq}, Value: x.Value}, seq

	case *fast.Var:
		t, ok := c.decls[x.Name]
		if !ok {
			c.errs.Add(&errs.UndeclaredError{Name: x.Name})
			return &ctast.Var{Name: x.Name}, nil
		}
		seq := single(t)
		return &ctast.Var{M: ctast.Meta{Typ: seq}, Name: x.Name}, seq

	case *fast.Unary:
		cx, sx := c.expr(x.X)
		var seq types.Seq
		switch x.Op {
		case types.Not:
			seq = c.expect1(sx, types.Bool, "not")
		case types.Neg:
			seq = c.expectArith1(sx, "unary -")
		}
		return &ctast.Unary{M: ctast.Meta{Typ: seq}, Op: x.Op, X: cx}, seq

	case *fast.Binary:
		cx, sx := c.expr(x.X)
		cy, sy := c.expr(x.Y)
		seq := c.binOpType(x.Op, sx, sy)
		return &ctast.Binary{M: ctast.Meta{Typ: seq}, Op: x.Op, X: cx, Y: cy}, seq

	case *fast.When:
		cx, sx := c.expr(x.X)
		c.requireBoolCarrier(x.Carrier)
		return &ctast.When{M: ctast.Meta{Typ: sx}, X: cx, Carrier: x.Carrier, Polarity: x.Polarity}, sx

	case *fast.Merge:
		c.requireBoolCarrier(x.Carrier)
		ct, st := c.expr(x.OnTrue)
		cf, sf := c.expr(x.OnFalse)
		seq := c.sameType(st, sf, "merge branches")
		return &ctast.Merge{M: ctast.Meta{Typ: seq}, Carrier: x.Carrier, OnTrue: ct, OnFalse: cf}, seq

	case *fast.Fby:
		cx, sx := c.expr(x.X)
		seq := single(x.Init.Base)
		if len(sx) == 1 && sx[0] != x.Init.Base {
			c.errs.Add(&errs.TypeMismatchError{Context: "fby", Expected: x.Init.Base.String(), Found: sx.String()})
		}
		return &ctast.Fby{M: ctast.Meta{Typ: seq}, Init: x.Init, X: cx}, seq

	case *fast.Pre:
		cx, sx := c.expr(x.X)
		if len(sx) != 1 {
			c.errs.Add(&errs.TupleNotAllowedError{Context: "pre"})
		}
		return &ctast.Pre{M: ctast.Meta{Typ: sx}, X: cx}, sx

	case *fast.Arrow:
		var branches []ctast.Expr
		var seq types.Seq
		for i, b := range x.Branches {
			cb, sb := c.expr(b)
			branches = append(branches, cb)
			if i == 0 {
				seq = sb
			} else {
				seq = c.sameType(seq, sb, "-> branches")
			}
		}
		return &ctast.Arrow{M: ctast.Meta{Typ: seq}, Branches: branches}, seq

	case *fast.If:
		cc, sc := c.expr(x.Cond)
		if len(sc) != 1 || sc[0] != types.Bool {
			c.errs.Add(&errs.TypeMismatchError{Context: "if condition", Expected: "bool", Found: sc.String()})
		}
		ct, st := c.expr(x.Then)
		cf, sf := c.expr(x.Else)
		seq := c.sameType(st, sf, "if branches")
		return &ctast.If{M: ctast.Meta{Typ: seq}, Cond: cc, Then: ct, Else: cf}, seq

	case *fast.Current:
		t, ok := c.decls[x.X]
		if !ok {
			c.errs.Add(&errs.UndeclaredError{Name: x.X})
			return &ctast.Current{X: x.X, Init: x.Init}, nil
		}
		if t != x.Init.Base {
			c.errs.Add(&errs.TypeMismatchError{Context: "current", Expected: t.String(), Found: x.Init.Base.String()})
		}
		seq := single(t)
		return &ctast.Current{M: ctast.Meta{Typ: seq}, X: x.X, Init: x.Init}, seq

	case *fast.Call:
		sig, ok := c.sigs[x.Node]
		if !ok {
			c.errs.Add(&errs.UndeclaredError{Name: x.Node})
			return &ctast.Call{Node: x.Node, Reset: x.Reset}, nil
		}
		if len(sig.InputTypes) != len(x.Args) {
			c.errs.Add(&errs.ArityMismatchError{Node: x.Node, Expected: len(sig.InputTypes), Found: len(x.Args)})
		}
		var args []ctast.Expr
		for i, a := range x.Args {
			ca, sa := c.expr(a)
			args = append(args, ca)
			if i < len(sig.InputTypes) {
				if len(sa) != 1 || sa[0] != sig.InputTypes[i] {
					c.errs.Add(&errs.TypeMismatchError{
						Context:  fmt.Sprintf("argument %d of call to %q", i, x.Node),
						Expected: sig.InputTypes[i].String(),
						Found:    sa.String(),
					})
				}
			}
		}
		if x.Reset != "" {
			c.requireBoolCarrier(x.Reset)
		}
		seq := types.Seq(append([]types.Base(nil), sig.OutputTypes...))
		return &ctast.Call{M: ctast.Meta{Typ: seq}, Node: x.Node, Args: args, Reset: x.Reset}, seq

	default:
		panic("typecheck: unhandled expression type")
	}
}

func (c *checker) expect1(s types.Seq, want types.Base, ctx string) types.Seq {
	if len(s) != 1 || s[0] != want {
		c.errs.Add(&errs.TypeMismatchError{Context: ctx, Expected: want.String(), Found: s.String()})
	}
	return types.Seq{want}
}

func (c *checker) expectArith1(s types.Seq, ctx string) types.Seq {
	if len(s) != 1 || (s[0] != types.Int && s[0] != types.Real) {
		c.errs.Add(&errs.TypeMismatchError{Context: ctx, Expected: "int or real", Found: s.String()})
		return types.Seq{types.Int}
	}
	return s
}

func (c *checker) sameType(a, b types.Seq, ctx string) types.Seq {
	if !a.Equal(b) {
		c.errs.Add(&errs.TypeMismatchError{Context: ctx, Expected: a.String(), Found: b.String()})
	}
	return a
}

func (c *checker) binOpType(op types.BinOp, sx, sy types.Seq) types.Seq {
	switch {
	case op.IsLogical():
		c.expect1(sx, types.Bool, op.String())
		c.expect1(sy, types.Bool, op.String())
		return types.Seq{types.Bool}
	case op == types.Mod:
		c.expect1(sx, types.Int, op.String())
		c.expect1(sy, types.Int, op.String())
		return types.Seq{types.Int}
	case op.IsComparison():
		c.sameNumeric(sx, sy, op.String())
		return types.Seq{types.Bool}
	case op.IsEquality():
		c.sameType(sx, sy, op.String())
		return types.Seq{types.Bool}
	case op.IsArith():
		c.sameNumeric(sx, sy, op.String())
		if len(sx) == 1 {
			return sx
		}
		return types.Seq{types.Int}
	default:
		panic("typecheck: unhandled binary operator")
	}
}

func (c *checker) sameNumeric(sx, sy types.Seq, ctx string) {
	ok := len(sx) == 1 && len(sy) == 1 && sx[0] == sy[0] && (sx[0] == types.Int || sx[0] == types.Real)
	if !ok {
		c.errs.Add(&errs.TypeMismatchError{Context: ctx, Expected: "matching int or real", Found: sx.String() + ", " + sy.String()})
	}
}

func (c *checker) requireBoolCarrier(name string) {
	t, ok := c.decls[name]
	if !ok {
		c.errs.Add(&errs.UndeclaredError{Name: name})
		return
	}
	if t != types.Bool {
		c.errs.Add(&errs.TypeMismatchError{Context: "clock carrier " + name, Expected: "bool", Found: t.String()})
	}
}
