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

package clockcheck_test

import (
	"testing"

	"github.com/flowlang/flowc/internal/clockcheck"
	"github.com/flowlang/flowc/internal/ctast"
	"github.com/flowlang/flowc/internal/errs"
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/sclock"
	"github.com/flowlang/flowc/internal/types"
)

func typ(t types.Base) ctast.Meta { return ctast.Meta{Typ: types.Seq{t}} }

func TestNodeWhenExtendsClock(t *testing.T) {
	n := ctast.Node{
		Name:    "half",
		Inputs:  []fast.Param{{Name: "x", Type: types.Int}, {Name: "c", Type: types.Bool}},
		Outputs: []fast.Param{{Name: "y", Type: types.Int}},
		Locals:  []fast.LocalDecl{{Param: fast.Param{Name: "y_on_c", Type: types.Int}, WhenCarrier: "c", WhenPolarity: true}},
		Equations: []ctast.Equation{
			{Names: []string{"y_on_c"}, Expr: &ctast.When{M: typ(types.Int), X: &ctast.Var{M: typ(types.Int), Name: "x"}, Carrier: "c", Polarity: true}},
		},
	}

	out, err := clockcheck.Node(n)
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	got := out.Equations[0].Expr.Meta().Clk
	want := sclock.Ck(sclock.Pair{Carrier: "c", Polarity: true})
	if !got.Equal(want) {
		t.Fatalf("got clock %v, want %v", got, want)
	}
}

func TestNodeMergeRequiresComplementaryClocks(t *testing.T) {
	subTrue := sclock.Ck(sclock.Pair{Carrier: "c", Polarity: true})
	subFalse := sclock.Ck(sclock.Pair{Carrier: "c", Polarity: false})

	n := ctast.Node{
		Name:    "m",
		Inputs:  []fast.Param{{Name: "c", Type: types.Bool}, {Name: "a", Type: types.Int}, {Name: "b", Type: types.Int}},
		Outputs: []fast.Param{{Name: "y", Type: types.Int}},
		Equations: []ctast.Equation{
			{Names: []string{"y"}, Expr: &ctast.Merge{
				M:       typ(types.Int),
				Carrier: "c",
				OnTrue:  &ctast.When{M: ctast.Meta{Typ: types.Seq{types.Int}, Clk: subTrue}, X: &ctast.Var{M: typ(types.Int), Name: "a"}, Carrier: "c", Polarity: true},
				OnFalse: &ctast.When{M: ctast.Meta{Typ: types.Seq{types.Int}, Clk: subFalse}, X: &ctast.Var{M: typ(types.Int), Name: "b"}, Carrier: "c", Polarity: false},
			}},
		},
	}

	out, err := clockcheck.Node(n)
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	got := out.Equations[0].Expr.Meta().Clk
	if !got.Equal(sclock.Base) {
		t.Fatalf("got clock %v, want base", got)
	}
}

func TestNodeMergeIllFormed(t *testing.T) {
	n := ctast.Node{
		Name:    "m",
		Inputs:  []fast.Param{{Name: "c", Type: types.Bool}, {Name: "a", Type: types.Int}, {Name: "b", Type: types.Int}},
		Outputs: []fast.Param{{Name: "y", Type: types.Int}},
		Equations: []ctast.Equation{
			{Names: []string{"y"}, Expr: &ctast.Merge{
				M:       typ(types.Int),
				Carrier: "c",
				OnTrue:  &ctast.Var{M: typ(types.Int), Name: "a"}, // base clock, not a sub-clock of c
				OnFalse: &ctast.Var{M: typ(types.Int), Name: "b"},
			}},
		},
	}

	_, err := clockcheck.Node(n)
	var bc *errs.BadClockError
	if !errs.As(err, &bc) {
		t.Fatalf("expected bad-clock, got %v", err)
	}
}

func TestNodeResetTooSlow(t *testing.T) {
	n := ctast.Node{
		Name:    "r",
		Inputs:  []fast.Param{{Name: "x", Type: types.Int}, {Name: "c", Type: types.Bool}, {Name: "r", Type: types.Bool}},
		Outputs: []fast.Param{{Name: "y", Type: types.Int}},
		Locals:  []fast.LocalDecl{{Param: fast.Param{Name: "r_on_c", Type: types.Bool}, WhenCarrier: "c", WhenPolarity: true}},
		Equations: []ctast.Equation{
			// The reset carrier lives on the sub-clock c while the call
			// runs on the base clock: the reset is slower than the call.
			{Names: []string{"r_on_c"}, Expr: &ctast.When{M: typ(types.Bool), X: &ctast.Var{M: typ(types.Bool), Name: "r"}, Carrier: "c", Polarity: true}},
			{Names: []string{"y"}, Expr: &ctast.Call{
				M:     typ(types.Int),
				Node:  "helper",
				Args:  []ctast.Expr{&ctast.Var{M: typ(types.Int), Name: "x"}},
				Reset: "r_on_c",
			}},
		},
	}

	_, err := clockcheck.Node(n)
	var rs *errs.ResetTooSlowError
	if !errs.As(err, &rs) {
		t.Fatalf("expected reset-too-slow, got %v", err)
	}
}
