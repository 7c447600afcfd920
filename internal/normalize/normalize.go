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

// Package normalize implements §4.5: it rewrites MiniDF into the
// stratified A/CA/Eq grammar of §3, hoisting every embedded fby, call,
// or merge that is not already the direct right-hand side of an
// equation into a fresh one.
//
// Normalized MiniDF is structurally the same grammar as MiniDF — A and
// CA are both subsets of minidf.Expr, and a normalized Eq's right-hand
// side is still a minidf.Expr — only the *shape* (where fby/call/merge
// may appear) is restricted. Rather than mint a fourth parallel
// expression-type family that would differ from minidf's only in which
// shapes a linter would need to forbid, this package reuses
// internal/minidf's types directly and enforces the stratification by
// construction: Normalize never builds a minidf.Expr that violates it.
package normalize

import (
	"github.com/flowlang/flowc/internal/ident"
	"github.com/flowlang/flowc/internal/minidf"
)

// Normalize rewrites n's equations into stratified form.
func Normalize(n minidf.Node) minidf.Node {
	out := minidf.Node{Name: n.Name, Inputs: n.Inputs, Outputs: n.Outputs, Locals: n.Locals}
	for _, eq := range n.Equations {
		nz := &normalizer{gen: ident.New(eq.Names[0])}
		rhs := nz.top(eq.Expr)
		out.Equations = append(out.Equations, nz.extra...)
		out.Equations = append(out.Equations, minidf.Equation{Names: eq.Names, Expr: rhs})
	}
	return out
}

type normalizer struct {
	gen   *ident.Generator
	extra []minidf.Equation
}

// top normalizes an equation's immediate right-hand side: fby and call
// stay exactly where they are (that is their legal position in Eq);
// anything else is normalized as CA.
func (nz *normalizer) top(e minidf.Expr) minidf.Expr {
	switch v := e.(type) {
	case *minidf.Fby:
		return &minidf.Fby{M: v.M, Init: v.Init, X: nz.a(v.X)}
	case *minidf.Call:
		return &minidf.Call{M: v.M, Node: v.Node, Args: nz.aAll(v.Args), Reset: v.Reset}
	default:
		return nz.ca(e)
	}
}

// ca normalizes e into the CA grammar: merge(c, CA, CA) | A.
func (nz *normalizer) ca(e minidf.Expr) minidf.Expr {
	switch v := e.(type) {
	case *minidf.Merge:
		return &minidf.Merge{M: v.M, Carrier: v.Carrier, OnTrue: nz.ca(v.OnTrue), OnFalse: nz.ca(v.OnFalse)}
	case *minidf.Fby, *minidf.Call:
		return nz.hoist(e)
	default:
		return nz.a(e)
	}
}

// a normalizes e into the A grammar, hoisting any fby/call/merge found
// along the way into a fresh equation and substituting a reference to
// it.
func (nz *normalizer) a(e minidf.Expr) minidf.Expr {
	switch v := e.(type) {
	case *minidf.Lit:
		return v
	case *minidf.Var:
		return v
	case *minidf.Unary:
		return &minidf.Unary{M: v.M, Op: v.Op, X: nz.a(v.X)}
	case *minidf.Binary:
		return &minidf.Binary{M: v.M, Op: v.Op, X: nz.a(v.X), Y: nz.a(v.Y)}
	case *minidf.When:
		return &minidf.When{M: v.M, X: nz.a(v.X), Carrier: v.Carrier, Polarity: v.Polarity}
	case *minidf.Fby, *minidf.Call, *minidf.Merge:
		return nz.hoist(e)
	default:
		panic("normalize: unhandled expression type")
	}
}

func (nz *normalizer) aAll(es []minidf.Expr) []minidf.Expr {
	out := make([]minidf.Expr, len(es))
	for i, e := range es {
		out[i] = nz.a(e)
	}
	return out
}

// hoist lifts e into a fresh equation of its own and returns a
// reference to it, valid as an A (and therefore also as a CA).
func (nz *normalizer) hoist(e minidf.Expr) minidf.Expr {
	fresh := nz.gen.Fresh()
	var rhs minidf.Expr
	switch v := e.(type) {
	case *minidf.Fby:
		rhs = &minidf.Fby{M: v.M, Init: v.Init, X: nz.a(v.X)}
	case *minidf.Call:
		rhs = &minidf.Call{M: v.M, Node: v.Node, Args: nz.aAll(v.Args), Reset: v.Reset}
	case *minidf.Merge:
		rhs = nz.ca(v)
	default:
		panic("normalize: hoist called on a non-hoistable expression")
	}
	nz.extra = append(nz.extra, minidf.Equation{Names: []string{fresh}, Expr: rhs})
	return &minidf.Var{M: e.Meta(), Name: fresh}
}
