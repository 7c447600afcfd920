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

// Package clockcheck implements §4.3: it takes a ctast.Node whose
// expressions already carry types (internal/typecheck's output) and
// builds a fresh ctast.Node of the same shape with Meta.Clk populated
// on every expression, completing the Clocked AST.
package clockcheck

import (
	"github.com/flowlang/flowc/internal/ctast"
	"github.com/flowlang/flowc/internal/errs"
	"github.com/flowlang/flowc/internal/sclock"
)

// Node clock-checks n. Every input and output is declared on the base
// clock; locals may declare a one-level sub-clock.
func Node(n ctast.Node) (ctast.Node, error) {
	c := &checker{decls: make(map[string]sclock.Clock)}

	for _, p := range n.Inputs {
		c.decls[p.Name] = sclock.Base
	}
	for _, p := range n.Outputs {
		c.decls[p.Name] = sclock.Base
	}
	for _, l := range n.Locals {
		if l.WhenCarrier == "" {
			c.decls[l.Name] = sclock.Base
		} else {
			c.decls[l.Name] = sclock.Ck(sclock.Pair{Carrier: l.WhenCarrier, Polarity: l.WhenPolarity})
		}
	}

	out := ctast.Node{Name: n.Name, Inputs: n.Inputs, Outputs: n.Outputs, Locals: n.Locals}
	for _, eq := range n.Equations {
		ce := c.expr(eq.Expr)
		final := ce.Meta().Clk
		if final.IsConst() {
			// A wholly-constant right-hand side takes on the
			// declared clock of its first name; Const never
			// survives as an observable clock (§4.3).
			final = c.decls[eq.Names[0]]
		}
		for _, name := range eq.Names {
			declared, ok := c.decls[name]
			if ok && !sclock.Compatible(declared, final) {
				c.errs.Add(&errs.BadClockError{Reason: "equation defining " + name + " has incompatible clock"})
				continue
			}
			c.decls[name] = final
		}
		out.Equations = append(out.Equations, ctast.Equation{Names: eq.Names, Expr: ce})
	}

	if c.errs.Len() > 0 {
		return ctast.Node{}, c.errs.AsError()
	}
	return out, nil
}

type checker struct {
	decls map[string]sclock.Clock
	errs  errs.List
}

// combine implements the Const-lowering half of §4.3's binop/if/call
// rules: either operand being Const adopts the other's clock; two
// concrete clocks must be equal.
func combine(a, b sclock.Clock) (sclock.Clock, bool) {
	if a.IsConst() {
		return b, true
	}
	if b.IsConst() {
		return a, true
	}
	if a.Equal(b) {
		return a, true
	}
	return a, false
}

func (c *checker) expr(e ctast.Expr) ctast.Expr {
	switch x := e.(type) {
	case *ctast.Lit:
		return &ctast.Lit{M: ctast.Meta{Typ: x.M.Typ, Clk: sclock.Const}, Value: x.Value}

	case *ctast.Var:
		clk, ok := c.decls[x.Name]
		if !ok {
			clk = sclock.Base
		}
		return &ctast.Var{M: ctast.Meta{Typ: x.M.Typ, Clk: clk}, Name: x.Name}

	case *ctast.Unary:
		cx := c.expr(x.X)
		return &ctast.Unary{M: ctast.Meta{Typ: x.M.Typ, Clk: cx.Meta().Clk}, Op: x.Op, X: cx}

	case *ctast.Binary:
		cx := c.expr(x.X)
		cy := c.expr(x.Y)
		clk, ok := combine(cx.Meta().Clk, cy.Meta().Clk)
		if !ok {
			c.errs.Add(&errs.BadClockError{Reason: "incompatible clocks for " + x.Op.String()})
		}
		return &ctast.Binary{M: ctast.Meta{Typ: x.M.Typ, Clk: clk}, Op: x.Op, X: cx, Y: cy}

	case *ctast.When:
		cx := c.expr(x.X)
		xc := cx.Meta().Clk
		if xc.IsConst() {
			xc = sclock.Base
		}
		clk := xc.When(x.Carrier, x.Polarity)
		return &ctast.When{M: ctast.Meta{Typ: x.M.Typ, Clk: clk}, X: cx, Carrier: x.Carrier, Polarity: x.Polarity}

	case *ctast.Merge:
		ct := c.expr(x.OnTrue)
		cf := c.expr(x.OnFalse)
		clk := c.mergeClock(x.Carrier, ct.Meta().Clk, cf.Meta().Clk)
		return &ctast.Merge{M: ctast.Meta{Typ: x.M.Typ, Clk: clk}, Carrier: x.Carrier, OnTrue: ct, OnFalse: cf}

	case *ctast.Fby:
		cx := c.expr(x.X)
		return &ctast.Fby{M: ctast.Meta{Typ: x.M.Typ, Clk: cx.Meta().Clk}, Init: x.Init, X: cx}

	case *ctast.Pre:
		cx := c.expr(x.X)
		return &ctast.Pre{M: ctast.Meta{Typ: x.M.Typ, Clk: cx.Meta().Clk}, X: cx}

	case *ctast.Arrow:
		var branches []ctast.Expr
		var clk sclock.Clock
		for i, b := range x.Branches {
			cb := c.expr(b)
			branches = append(branches, cb)
			if i == 0 {
				clk = cb.Meta().Clk
				continue
			}
			next, ok := combine(clk, cb.Meta().Clk)
			if !ok {
				c.errs.Add(&errs.BadClockError{Reason: "-> branches on incompatible clocks"})
			}
			clk = next
		}
		return &ctast.Arrow{M: ctast.Meta{Typ: x.M.Typ, Clk: clk}, Branches: branches}

	case *ctast.If:
		cc := c.expr(x.Cond)
		ct := c.expr(x.Then)
		cf := c.expr(x.Else)
		clk, ok := combine(cc.Meta().Clk, ct.Meta().Clk)
		if !ok {
			c.errs.Add(&errs.BadClockError{Reason: "if condition/then clock mismatch"})
		}
		clk, ok = combine(clk, cf.Meta().Clk)
		if !ok {
			c.errs.Add(&errs.BadClockError{Reason: "if then/else clock mismatch"})
		}
		return &ctast.If{M: ctast.Meta{Typ: x.M.Typ, Clk: clk}, Cond: cc, Then: ct, Else: cf}

	case *ctast.Current:
		// Re-broadcast onto the base clock regardless of x's declared
		// clock (§4.3).
		return &ctast.Current{M: ctast.Meta{Typ: x.M.Typ, Clk: sclock.Base}, X: x.X, Init: x.Init}

	case *ctast.Call:
		var args []ctast.Expr
		var clk sclock.Clock
		for i, a := range x.Args {
			ca := c.expr(a)
			args = append(args, ca)
			if i == 0 {
				clk = ca.Meta().Clk
				continue
			}
			next, ok := combine(clk, ca.Meta().Clk)
			if !ok {
				c.errs.Add(&errs.BadClockError{Reason: "call arguments to " + x.Node + " on incompatible clocks"})
			}
			clk = next
		}
		if len(args) == 0 {
			clk = sclock.Base
		}
		if clk.IsConst() {
			clk = sclock.Base
		}
		if x.Reset != "" {
			rc, ok := c.decls[x.Reset]
			if !ok {
				rc = sclock.Base
			}
			if !sclock.FasterOrEqual(rc, clk) {
				c.errs.Add(&errs.ResetTooSlowError{Node: x.Node, Call: x.Reset})
			}
		}
		return &ctast.Call{M: ctast.Meta{Typ: x.M.Typ, Clk: clk}, Node: x.Node, Args: args, Reset: x.Reset}

	default:
		panic("clockcheck: unhandled expression type")
	}
}

// mergeClock implements §4.3's merge rule.
func (c *checker) mergeClock(carrier string, tc, fc sclock.Clock) sclock.Clock {
	if tc.IsConst() || tc.IsBase() || fc.IsConst() || fc.IsBase() {
		c.errs.Add(&errs.BadClockError{Reason: "merge-ill-formed: branch not on a sub-clock of " + carrier})
		return sclock.Base
	}
	tPrefix, tLast := tc.PeelLast()
	fPrefix, fLast := fc.PeelLast()
	if tLast.Carrier != carrier || !tLast.Polarity {
		c.errs.Add(&errs.BadClockError{Reason: "merge-ill-formed: true branch not on " + carrier})
	}
	if fLast.Carrier != carrier || fLast.Polarity {
		c.errs.Add(&errs.BadClockError{Reason: "merge-ill-formed: false branch not on not " + carrier})
	}
	if !tPrefix.Equal(fPrefix) {
		c.errs.Add(&errs.BadClockError{Reason: "merge-ill-formed: branch prefixes differ"})
		return tPrefix
	}
	carrierClock, ok := c.decls[carrier]
	if ok && !sclock.Compatible(carrierClock, tPrefix) {
		c.errs.Add(&errs.BadClockError{Reason: "merge-ill-formed: prefix incompatible with " + carrier + "'s own clock"})
	}
	return tPrefix
}
