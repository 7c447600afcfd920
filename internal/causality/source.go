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

package causality

import (
	"github.com/flowlang/flowc/internal/errs"
	"github.com/flowlang/flowc/internal/fast"
)

// OrderNodes implements guarantee 2 of §4.1: nodes are reordered so
// that every call to f occurs in a node scheduled after f. It also
// checks guarantee for duplicate top-level node names.
func OrderNodes(nodes []fast.Node) ([]fast.Node, error) {
	var el errs.List

	byName := make(map[string]fast.Node, len(nodes))
	g := NewGraph[string]()
	for _, n := range nodes {
		if _, dup := byName[n.Name]; dup {
			el.Add(&errs.DuplicateNodeError{Name: n.Name})
			continue
		}
		byName[n.Name] = n
		g.Ensure(n.Name)
	}
	if el.Len() > 0 {
		return nil, el.AsError()
	}

	for _, n := range nodes {
		for _, eq := range n.Equations {
			fast.Walk(eq.Expr, func(x fast.Expr) {
				if call, ok := x.(*fast.Call); ok {
					g.AddEdge(call.Node, n.Name)
				}
			})
		}
	}

	order, err := g.Sort(func(a, b string) bool { return a < b })
	if err != nil {
		cerr := err.(*CycleError[string])
		return nil, &errs.CyclicNodesError{Witness: cerr.Witness}
	}

	out := make([]fast.Node, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out, nil
}

// OrderEquations implements guarantee 3 of §4.1: equations within a
// node are reordered so that a variable's defining equation precedes
// every non-delayed read of it. It returns errs.MultipleDefinitionError
// if a name is defined twice, or errs.NonCausalNodeError if the
// resulting dependency graph (ignoring pre/fby-guarded reads) has a
// cycle.
func OrderEquations(n fast.Node) ([]fast.Equation, error) {
	var el errs.List

	definedBy := make(map[string]int, len(n.Equations))
	for i, eq := range n.Equations {
		for _, name := range eq.Names {
			if _, dup := definedBy[name]; dup {
				el.Add(&errs.MultipleDefinitionError{Name: name})
				continue
			}
			definedBy[name] = i
		}
	}
	if el.Len() > 0 {
		return nil, el.AsError()
	}

	g := NewGraph[int]()
	for i := range n.Equations {
		g.Ensure(i)
	}
	for i, eq := range n.Equations {
		for read := range readsOutsideDelay(eq.Expr) {
			if defIdx, ok := definedBy[read]; ok {
				g.AddEdge(defIdx, i)
			}
		}
	}

	order, err := g.Sort(func(a, b int) bool { return a < b })
	if err != nil {
		cerr := err.(*CycleError[int])
		return nil, &errs.NonCausalNodeError{Node: n.Name, Witness: n.Equations[cerr.Witness].Names[0]}
	}

	out := make([]fast.Equation, 0, len(order))
	for _, idx := range order {
		out = append(out, n.Equations[idx])
	}
	return out, nil
}

// readsOutsideDelay collects the set of variable/carrier names read by
// e that create a causality edge: ordinary variable reads, plus
// carrier references from when/merge/current/reset, which count even
// though they may sit under a pre/fby in an enclosing context. Reads
// that occur strictly under a pre or the delayed branch of an fby do
// not create edges, since those constructs break the one-tick cycle.
func readsOutsideDelay(e fast.Expr) map[string]bool {
	reads := make(map[string]bool)
	var walk func(x fast.Expr, delayed bool)
	walk = func(x fast.Expr, delayed bool) {
		switch n := x.(type) {
		case *fast.Var:
			if !delayed {
				reads[n.Name] = true
			}
		case *fast.Pre:
			walk(n.X, true)
		case *fast.Fby:
			walk(n.X, true)
		case *fast.When:
			reads[n.Carrier] = true
			walk(n.X, delayed)
		case *fast.Merge:
			reads[n.Carrier] = true
			walk(n.OnTrue, delayed)
			walk(n.OnFalse, delayed)
		case *fast.Current:
			reads[n.X] = true
		case *fast.Call:
			if n.Reset != "" {
				reads[n.Reset] = true
			}
			for _, a := range n.Args {
				walk(a, delayed)
			}
		default:
			for _, c := range fast.Children(x) {
				walk(c, delayed)
			}
		}
	}
	walk(e, false)
	return reads
}
