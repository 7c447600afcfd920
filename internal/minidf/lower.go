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

package minidf

import (
	"github.com/flowlang/flowc/internal/ctast"
	"github.com/flowlang/flowc/internal/errs"
	"github.com/flowlang/flowc/internal/ident"
	"github.com/flowlang/flowc/internal/sclock"
	"github.com/flowlang/flowc/internal/types"
)

// Lower implements §4.4: it rewrites a clock-checked ctast.Node into
// MiniDF, appending the fresh equations synthesized along the way
// (arrow counters, hoisted if-conditions, current's held-value state)
// to the node's equation list. The result is not yet scheduled;
// internal/objsched (by way of internal/normalize) re-establishes a
// causal order over the expanded equation set.
func Lower(n ctast.Node) (Node, error) {
	out := Node{Name: n.Name, Inputs: n.Inputs, Outputs: n.Outputs, Locals: n.Locals}

	declClocks := make(map[string]sclock.Clock, len(n.Locals)+len(n.Inputs)+len(n.Outputs))
	for _, p := range n.Inputs {
		declClocks[p.Name] = sclock.Base
	}
	for _, p := range n.Outputs {
		declClocks[p.Name] = sclock.Base
	}
	for _, l := range n.Locals {
		if l.WhenCarrier == "" {
			declClocks[l.Name] = sclock.Base
		} else {
			declClocks[l.Name] = sclock.Ck(sclock.Pair{Carrier: l.WhenCarrier, Polarity: l.WhenPolarity})
		}
	}

	var errsList errs.List
	for _, eq := range n.Equations {
		lw := &lowerer{
			gen:        ident.New(eq.Names[0]),
			declClocks: declClocks,
			defines:    eq.Names[0],
		}
		lowered := lw.expr(eq.Expr, 0)
		if lw.preErr != nil {
			errsList.Add(lw.preErr)
		}
		out.Equations = append(out.Equations, lw.extra...)
		out.Equations = append(out.Equations, Equation{Names: eq.Names, Expr: lowered})
	}
	if errsList.Len() > 0 {
		return Node{}, errsList.AsError()
	}
	return out, nil
}

type lowerer struct {
	gen        *ident.Generator
	declClocks map[string]sclock.Clock
	defines    string
	extra      []Equation
	preErr     *errs.PreUninitializedError
}

func (lw *lowerer) expr(e ctast.Expr, budget int) Expr {
	switch x := e.(type) {
	case *ctast.Lit:
		return &Lit{M: x.M, Value: x.Value}

	case *ctast.Var:
		return &Var{M: x.M, Name: x.Name}

	case *ctast.Unary:
		return &Unary{M: x.M, Op: x.Op, X: lw.expr(x.X, budget)}

	case *ctast.Binary:
		return &Binary{M: x.M, Op: x.Op, X: lw.expr(x.X, budget), Y: lw.expr(x.Y, budget)}

	case *ctast.When:
		return &When{M: x.M, X: lw.expr(x.X, budget), Carrier: x.Carrier, Polarity: x.Polarity}

	case *ctast.Merge:
		return &Merge{M: x.M, Carrier: x.Carrier, OnTrue: lw.expr(x.OnTrue, budget), OnFalse: lw.expr(x.OnFalse, budget)}

	case *ctast.Fby:
		return &Fby{M: x.M, Init: x.Init, X: lw.expr(x.X, budget)}

	case *ctast.Pre:
		if budget <= 0 {
			lw.preErr = &errs.PreUninitializedError{Defines: lw.defines}
		}
		sentinel := types.Sentinel(x.M.Typ[0])
		nextBudget := budget - 1
		if nextBudget < 0 {
			nextBudget = 0
		}
		return &Fby{M: x.M, Init: sentinel, X: lw.expr(x.X, nextBudget)}

	case *ctast.Arrow:
		return lw.lowerArrow(x, budget)

	case *ctast.If:
		cond := lw.expr(x.Cond, budget)
		then := lw.expr(x.Then, budget)
		els := lw.expr(x.Else, budget)
		return lw.buildMerge(x.M, cond, ctast.Meta{Typ: types.Seq{types.Bool}, Clk: x.Cond.Meta().Clk}, then, els)

	case *ctast.Current:
		return lw.lowerCurrent(x)

	case *ctast.Call:
		args := make([]Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = lw.expr(a, budget)
		}
		return &Call{M: x.M, Node: x.Node, Args: args, Reset: x.Reset}

	default:
		panic("minidf: unhandled expression type")
	}
}

// buildMerge implements the if -> merge hoist of §4.4: the condition
// is lifted into its own fresh equation, and the branches are sampled
// on the resulting carrier's two polarities.
func (lw *lowerer) buildMerge(resultMeta ctast.Meta, cond Expr, condMeta ctast.Meta, then, els Expr) Expr {
	fresh := lw.gen.Fresh()
	lw.extra = append(lw.extra, Equation{Names: []string{fresh}, Expr: cond})

	thenClock := resultMeta.Clk.When(fresh, true)
	elseClock := resultMeta.Clk.When(fresh, false)
	thenWhen := &When{M: ctast.Meta{Typ: resultMeta.Typ, Clk: thenClock}, X: then, Carrier: fresh, Polarity: true}
	elseWhen := &When{M: ctast.Meta{Typ: resultMeta.Typ, Clk: elseClock}, X: els, Carrier: fresh, Polarity: false}
	return &Merge{M: resultMeta, Carrier: fresh, OnTrue: thenWhen, OnFalse: elseWhen}
}

// lowerArrow implements the n-ary initial-sequence lowering of §4.4: a
// fresh tick counter plus a right-nested chain of ifs, each lowered
// through the same buildMerge helper as a surface if.
func (lw *lowerer) lowerArrow(x *ctast.Arrow, budget int) Expr {
	n := len(x.Branches)
	if n == 1 {
		return lw.expr(x.Branches[0], budget)
	}

	counter := lw.gen.Fresh()
	counterMeta := ctast.Meta{Typ: types.Seq{types.Int}, Clk: x.M.Clk}
	lw.extra = append(lw.extra, Equation{
		Names: []string{counter},
		Expr: &Fby{
			M:    counterMeta,
			Init: types.IntVal(0),
			X: &Binary{
				M:  counterMeta,
				Op: types.Add,
				X:  &Var{M: counterMeta, Name: counter},
				Y:  &Lit{M: ctast.Meta{Typ: types.Seq{types.Int}, Clk: sclock.Const}, Value: types.IntVal(1)},
			},
		},
	})

	last := lw.expr(x.Branches[n-1], n-1)
	for i := n - 2; i >= 0; i-- {
		cond := &Binary{
			M:  ctast.Meta{Typ: types.Seq{types.Bool}, Clk: x.M.Clk},
			Op: types.Eq,
			X:  &Var{M: counterMeta, Name: counter},
			Y:  &Lit{M: ctast.Meta{Typ: types.Seq{types.Int}, Clk: sclock.Const}, Value: types.IntVal(int32(i))},
		}
		then := lw.expr(x.Branches[i], i)
		last = lw.buildMerge(x.M, cond, ctast.Meta{Typ: types.Seq{types.Bool}, Clk: x.M.Clk}, then, last)
	}
	return last
}

// lowerCurrent implements §4.4's current lowering: peel the sampled
// variable's declared clock outermost-to-innermost, building a
// base-clock "held" stream from nested merges whose absent branches
// read back a single fby-based memory of the held stream itself.
func (lw *lowerer) lowerCurrent(x *ctast.Current) Expr {
	declClock := lw.declClocks[x.X]
	seq := declClock.Carriers()
	if len(seq) == 0 {
		return &Var{M: x.M, Name: x.X}
	}

	pairs := declClock.Pairs()

	xPre := lw.gen.Fresh()
	xCurrent := lw.gen.Fresh()

	cur := Expr(&Var{M: ctast.Meta{Typ: x.M.Typ, Clk: declClock}, Name: x.X})
	for j := len(pairs) - 1; j >= 0; j-- {
		prefix := sclock.Ck(pairs[:j]...)
		absentChain := append(append([]sclock.Pair(nil), pairs[:j]...), sclock.Pair{Carrier: pairs[j].Carrier, Polarity: !pairs[j].Polarity})
		absent := whenChain(&Var{M: ctast.Meta{Typ: x.M.Typ, Clk: sclock.Base}, Name: xPre}, x.M.Typ, absentChain)

		var onTrue, onFalse Expr
		if pairs[j].Polarity {
			onTrue, onFalse = cur, absent
		} else {
			onTrue, onFalse = absent, cur
		}
		cur = &Merge{M: ctast.Meta{Typ: x.M.Typ, Clk: prefix}, Carrier: pairs[j].Carrier, OnTrue: onTrue, OnFalse: onFalse}
	}

	lw.extra = append(lw.extra, Equation{Names: []string{xCurrent}, Expr: cur})
	lw.extra = append(lw.extra, Equation{Names: []string{xPre}, Expr: &Fby{
		M:    ctast.Meta{Typ: x.M.Typ, Clk: sclock.Base},
		Init: x.Init,
		X:    &Var{M: ctast.Meta{Typ: x.M.Typ, Clk: sclock.Base}, Name: xCurrent},
	}})
	return &Var{M: x.M, Name: xCurrent}
}

func whenChain(e Expr, typ types.Seq, chain []sclock.Pair) Expr {
	clk := sclock.Base
	for _, p := range chain {
		clk = clk.When(p.Carrier, p.Polarity)
		e = &When{M: ctast.Meta{Typ: typ, Clk: clk}, X: e, Carrier: p.Carrier, Polarity: p.Polarity}
	}
	return e
}
