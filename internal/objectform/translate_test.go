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

package objectform_test

import (
	"testing"

	"github.com/flowlang/flowc/internal/ctast"
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/minidf"
	"github.com/flowlang/flowc/internal/objectform"
	"github.com/flowlang/flowc/internal/sclock"
	"github.com/flowlang/flowc/internal/types"
)

func intMeta(clk sclock.Clock) ctast.Meta { return ctast.Meta{Typ: types.Seq{types.Int}, Clk: clk} }

// k = 0 fby (k+1): a single memory cell, no instances; the only local
// is the output alias k_result.
func TestTranslateCounterProducesMemoryCell(t *testing.T) {
	n := minidf.Node{
		Name:    "cnt",
		Outputs: []fast.Param{{Name: "k", Type: types.Int}},
		Equations: []minidf.Equation{
			{Names: []string{"k"}, Expr: &minidf.Fby{
				M:    intMeta(sclock.Base),
				Init: types.IntVal(0),
				X: &minidf.Binary{M: intMeta(sclock.Base), Op: types.Add,
					X: &minidf.Var{M: intMeta(sclock.Base), Name: "k"},
					Y: &minidf.Lit{M: intMeta(sclock.Const), Value: types.IntVal(1)},
				},
			}},
		},
	}

	m := objectform.Translate(n)
	if len(m.Memories) != 1 || m.Memories[0].Name != "k" {
		t.Fatalf("expected one memory cell named k, got %+v", m.Memories)
	}
	if len(m.Body) != 3 {
		t.Fatalf("expected mem-write + output alias + commit statement, got %d", len(m.Body))
	}
	if _, ok := m.Body[0].(*objectform.MemAssign); !ok {
		t.Fatalf("expected first statement to be a memory write, got %T", m.Body[0])
	}
	// Output k aliases a memory cell, so it is rebound to k_result.
	if m.Outputs[0].Name != "k_result" {
		t.Fatalf("expected output renamed to k_result, got %s", m.Outputs[0].Name)
	}
}

// A call equation produces an instance plus a step-call statement.
func TestTranslateCallProducesInstance(t *testing.T) {
	n := minidf.Node{
		Name:    "f",
		Inputs:  []fast.Param{{Name: "x", Type: types.Int}},
		Outputs: []fast.Param{{Name: "y", Type: types.Int}},
		Equations: []minidf.Equation{
			{Names: []string{"y"}, Expr: &minidf.Call{
				M: intMeta(sclock.Base), Node: "g",
				Args: []minidf.Expr{&minidf.Var{M: intMeta(sclock.Base), Name: "x"}},
			}},
		},
	}

	m := objectform.Translate(n)
	if len(m.Instances) != 1 || m.Instances[0].Node != "g" || m.Instances[0].Name != "g_0" {
		t.Fatalf("expected one instance g_0 of g, got %+v", m.Instances)
	}
	var sawStep bool
	for _, s := range m.Body {
		if sc, ok := s.(*objectform.StepCall); ok {
			sawStep = true
			if sc.Instance != "g_0" {
				t.Fatalf("step call targets wrong instance: %s", sc.Instance)
			}
		}
	}
	if !sawStep {
		t.Fatal("expected a step-call statement")
	}
}

// A reset-guarded call emits instance.reset() under the reset carrier.
func TestTranslateCallWithResetEmitsGuardedReset(t *testing.T) {
	n := minidf.Node{
		Name:    "f",
		Inputs:  []fast.Param{{Name: "x", Type: types.Int}, {Name: "r", Type: types.Bool}},
		Outputs: []fast.Param{{Name: "y", Type: types.Int}},
		Equations: []minidf.Equation{
			{Names: []string{"y"}, Expr: &minidf.Call{
				M: intMeta(sclock.Base), Node: "g", Reset: "r",
				Args: []minidf.Expr{&minidf.Var{M: intMeta(sclock.Base), Name: "x"}},
			}},
		},
	}

	m := objectform.Translate(n)
	found := false
	for _, s := range m.Body {
		iff, ok := s.(*objectform.If)
		if !ok || iff.Carrier != "r" {
			continue
		}
		for _, inner := range iff.Then {
			if _, ok := inner.(*objectform.Reset); ok {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected a reset guarded by carrier r")
	}
}

// y = merge(c, a, b) becomes a two-sided if on carrier c.
func TestTranslateMergeProducesIfElse(t *testing.T) {
	n := minidf.Node{
		Name:    "m",
		Inputs:  []fast.Param{{Name: "c", Type: types.Bool}, {Name: "a", Type: types.Int}, {Name: "b", Type: types.Int}},
		Outputs: []fast.Param{{Name: "y", Type: types.Int}},
		Equations: []minidf.Equation{
			{Names: []string{"y"}, Expr: &minidf.Merge{
				M:       intMeta(sclock.Base),
				Carrier: "c",
				OnTrue:  &minidf.When{M: intMeta(sclock.Ck(sclock.Pair{Carrier: "c", Polarity: true})), X: &minidf.Var{M: intMeta(sclock.Base), Name: "a"}, Carrier: "c", Polarity: true},
				OnFalse: &minidf.When{M: intMeta(sclock.Ck(sclock.Pair{Carrier: "c", Polarity: false})), X: &minidf.Var{M: intMeta(sclock.Base), Name: "b"}, Carrier: "c", Polarity: false},
			}},
		},
	}

	m := objectform.Translate(n)
	if len(m.Body) != 1 {
		t.Fatalf("expected a single if statement, got %d", len(m.Body))
	}
	iff, ok := m.Body[0].(*objectform.If)
	if !ok || iff.Carrier != "c" {
		t.Fatalf("expected if on carrier c, got %#v", m.Body[0])
	}
	if len(iff.Then) != 1 || len(iff.Else) != 1 {
		t.Fatalf("expected both branches populated, got then=%d else=%d", len(iff.Then), len(iff.Else))
	}
}

func TestCoalesceMergesAdjacentSameCarrierIfs(t *testing.T) {
	stmts := []objectform.Stmt{
		&objectform.If{Carrier: "c", Then: []objectform.Stmt{&objectform.LocalAssign{Name: "a"}}},
		&objectform.If{Carrier: "c", Else: []objectform.Stmt{&objectform.LocalAssign{Name: "b"}}},
		&objectform.If{Carrier: "d", Then: []objectform.Stmt{&objectform.LocalAssign{Name: "z"}}},
	}
	out := objectform.Coalesce(stmts)
	if len(out) != 2 {
		t.Fatalf("expected 2 statements after coalescing, got %d", len(out))
	}
	first, ok := out[0].(*objectform.If)
	if !ok || first.Carrier != "c" || len(first.Then) != 1 || len(first.Else) != 1 {
		t.Fatalf("expected merged if on c with both branches, got %#v", out[0])
	}
}
