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

// Package objsched implements §4.6: it reorders a normalized node's
// equations (hoisting may have appended fresh ones out of dependency
// order) into a sequence valid for direct object-machine translation,
// where a defining equation always precedes every non-delayed read of
// it.
//
// It reuses internal/causality's generic toposort engine with a
// different edge-construction policy than the source-level scheduler:
// source scheduling must diagnose and report genuine causality cycles
// to the user, but by this stage internal/causality has already proven
// the original program acyclic and internal/normalize's hoisting only
// ever introduces a fresh equation strictly between a use and its
// producer, so a cycle surfacing here is an internal bug, not a user
// error — Schedule panics instead of returning one.
package objsched

import (
	"fmt"

	"github.com/flowlang/flowc/internal/causality"
	"github.com/flowlang/flowc/internal/minidf"
)

// Schedule reorders n's equations so that every definition precedes
// its non-delayed uses.
func Schedule(n minidf.Node) minidf.Node {
	definedBy := make(map[string]int, len(n.Equations))
	for i, eq := range n.Equations {
		for _, name := range eq.Names {
			definedBy[name] = i
		}
	}

	g := causality.NewGraph[int]()
	for i := range n.Equations {
		g.Ensure(i)
	}
	for i, eq := range n.Equations {
		for read := range readsOutsideDelay(eq.Expr) {
			if defIdx, ok := definedBy[read]; ok && defIdx != i {
				g.AddEdge(defIdx, i)
			}
		}
	}

	order, err := g.Sort(func(a, b int) bool { return a < b })
	if err != nil {
		panic(fmt.Sprintf("objsched: cycle survived normalization in node %q: %v", n.Name, err))
	}

	out := n
	out.Equations = make([]minidf.Equation, 0, len(order))
	for _, idx := range order {
		out.Equations = append(out.Equations, n.Equations[idx])
	}
	return out
}

// readsOutsideDelay mirrors internal/causality's source-level analogue
// for the narrower MiniDF grammar: fby's recurrence argument is
// delayed (it reads last tick's value, breaking the ordering edge);
// every other read, including a when/merge's carrier and a call's
// reset input, is not.
func readsOutsideDelay(e minidf.Expr) map[string]bool {
	reads := make(map[string]bool)
	var walk func(x minidf.Expr, delayed bool)
	walk = func(x minidf.Expr, delayed bool) {
		switch n := x.(type) {
		case *minidf.Var:
			if !delayed {
				reads[n.Name] = true
			}
		case *minidf.Fby:
			walk(n.X, true)
		case *minidf.When:
			reads[n.Carrier] = true
			walk(n.X, delayed)
		case *minidf.Merge:
			reads[n.Carrier] = true
			walk(n.OnTrue, delayed)
			walk(n.OnFalse, delayed)
		case *minidf.Call:
			if n.Reset != "" {
				reads[n.Reset] = true
			}
			for _, a := range n.Args {
				walk(a, delayed)
			}
		default:
			for _, c := range minidf.Children(x) {
				walk(c, delayed)
			}
		}
	}
	walk(e, false)
	return reads
}
