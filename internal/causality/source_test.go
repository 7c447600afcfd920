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

package causality_test

import (
	"testing"

	"github.com/flowlang/flowc/internal/causality"
	"github.com/flowlang/flowc/internal/errs"
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/types"
)

func TestOrderNodesCallOrder(t *testing.T) {
	// main calls helper; helper must be scheduled first.
	nodes := []fast.Node{
		{Name: "main", Equations: []fast.Equation{
			{Names: []string{"y"}, Expr: &fast.Call{Node: "helper", Args: []fast.Expr{&fast.Var{Name: "x"}}}},
		}},
		{Name: "helper", Equations: []fast.Equation{
			{Names: []string{"z"}, Expr: &fast.Var{Name: "x"}},
		}},
	}

	ordered, err := causality.OrderNodes(nodes)
	if err != nil {
		t.Fatalf("OrderNodes: %v", err)
	}
	if len(ordered) != 2 || ordered[0].Name != "helper" || ordered[1].Name != "main" {
		t.Fatalf("got order %v, want [helper main]", names(ordered))
	}
}

func TestOrderNodesCycle(t *testing.T) {
	nodes := []fast.Node{
		{Name: "a", Equations: []fast.Equation{
			{Names: []string{"y"}, Expr: &fast.Call{Node: "b", Args: nil}},
		}},
		{Name: "b", Equations: []fast.Equation{
			{Names: []string{"y"}, Expr: &fast.Call{Node: "a", Args: nil}},
		}},
	}

	_, err := causality.OrderNodes(nodes)
	var cyc *errs.CyclicNodesError
	if !errs.As(err, &cyc) {
		t.Fatalf("expected cyclic-nodes error, got %v", err)
	}
}

func TestOrderNodesDuplicate(t *testing.T) {
	nodes := []fast.Node{{Name: "a"}, {Name: "a"}}
	_, err := causality.OrderNodes(nodes)
	var dup *errs.DuplicateNodeError
	if !errs.As(err, &dup) {
		t.Fatalf("expected duplicate-node error, got %v", err)
	}
}

func TestOrderEquationsDataOrder(t *testing.T) {
	// y = x + 1 must precede z = y, even if declared afterwards.
	n := fast.Node{
		Name: "n",
		Equations: []fast.Equation{
			{Names: []string{"z"}, Expr: &fast.Var{Name: "y"}},
			{Names: []string{"y"}, Expr: &fast.Binary{Op: types.Add, X: &fast.Var{Name: "x"}, Y: &fast.Lit{Value: types.IntVal(1)}}},
		},
	}

	ordered, err := causality.OrderEquations(n)
	if err != nil {
		t.Fatalf("OrderEquations: %v", err)
	}
	if ordered[0].Names[0] != "y" || ordered[1].Names[0] != "z" {
		t.Fatalf("got order %v, want [y z]", eqNames(ordered))
	}
}

func TestOrderEquationsPreBreaksCycle(t *testing.T) {
	// y = 0 fby (y + 1): self-reference only through fby, so it's fine.
	n := fast.Node{
		Name: "cnt",
		Equations: []fast.Equation{
			{Names: []string{"y"}, Expr: &fast.Fby{
				Init: types.IntVal(0),
				X:    &fast.Binary{Op: types.Add, X: &fast.Var{Name: "y"}, Y: &fast.Lit{Value: types.IntVal(1)}},
			}},
		},
	}

	if _, err := causality.OrderEquations(n); err != nil {
		t.Fatalf("OrderEquations: unexpected error: %v", err)
	}
}

func TestOrderEquationsNonCausal(t *testing.T) {
	// x = x + 1, no pre: a genuine cycle.
	n := fast.Node{
		Name: "bad",
		Equations: []fast.Equation{
			{Names: []string{"x"}, Expr: &fast.Binary{Op: types.Add, X: &fast.Var{Name: "x"}, Y: &fast.Lit{Value: types.IntVal(1)}}},
		},
	}

	_, err := causality.OrderEquations(n)
	var nc *errs.NonCausalNodeError
	if !errs.As(err, &nc) {
		t.Fatalf("expected non-causal-node error, got %v", err)
	}
}

func TestOrderEquationsMultipleDefinition(t *testing.T) {
	n := fast.Node{
		Name: "bad",
		Equations: []fast.Equation{
			{Names: []string{"x"}, Expr: &fast.Lit{Value: types.IntVal(1)}},
			{Names: []string{"x"}, Expr: &fast.Lit{Value: types.IntVal(2)}},
		},
	}

	_, err := causality.OrderEquations(n)
	var md *errs.MultipleDefinitionError
	if !errs.As(err, &md) {
		t.Fatalf("expected multiple-definition error, got %v", err)
	}
}

func names(nodes []fast.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func eqNames(eqs []fast.Equation) []string {
	out := make([]string, len(eqs))
	for i, eq := range eqs {
		out[i] = eq.Names[0]
	}
	return out
}
