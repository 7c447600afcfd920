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

package objsched_test

import (
	"testing"

	"github.com/flowlang/flowc/internal/ctast"
	"github.com/flowlang/flowc/internal/minidf"
	"github.com/flowlang/flowc/internal/objsched"
	"github.com/flowlang/flowc/internal/sclock"
	"github.com/flowlang/flowc/internal/types"
)

func intMeta() ctast.Meta { return ctast.Meta{Typ: types.Seq{types.Int}, Clk: sclock.Base} }

// Equations are given out of order (y before its dependency t); Schedule
// must reorder them so t precedes y.
func TestScheduleReordersByDependency(t *testing.T) {
	n := minidf.Node{
		Name: "f",
		Equations: []minidf.Equation{
			{Names: []string{"y"}, Expr: &minidf.Binary{M: intMeta(), Op: types.Add, X: &minidf.Var{M: intMeta(), Name: "t"}, Y: &minidf.Lit{M: intMeta(), Value: types.IntVal(1)}}},
			{Names: []string{"t"}, Expr: &minidf.Var{M: intMeta(), Name: "x"}},
		},
	}

	out := objsched.Schedule(n)
	if out.Equations[0].Names[0] != "t" || out.Equations[1].Names[0] != "y" {
		t.Fatalf("expected order [t, y], got [%s, %s]", out.Equations[0].Names[0], out.Equations[1].Names[0])
	}
}

// A self-referencing fby ("t = t fby 0" standing in for a hoisted
// memory cell reading its own previous value) must NOT be treated as a
// cycle: the recurrence argument is delayed.
func TestScheduleFbySelfReferenceIsNotACycle(t *testing.T) {
	n := minidf.Node{
		Name: "f",
		Equations: []minidf.Equation{
			{Names: []string{"t"}, Expr: &minidf.Fby{M: intMeta(), Init: types.IntVal(0), X: &minidf.Var{M: intMeta(), Name: "t"}}},
		},
	}

	out := objsched.Schedule(n)
	if len(out.Equations) != 1 {
		t.Fatalf("expected 1 equation, got %d", len(out.Equations))
	}
}

// A genuine instantaneous cycle surviving to this stage is an internal
// invariant violation, reported as a panic rather than an error.
func TestScheduleGenuineCyclePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Schedule to panic on an instantaneous cycle")
		}
	}()

	n := minidf.Node{
		Name: "bad",
		Equations: []minidf.Equation{
			{Names: []string{"a"}, Expr: &minidf.Var{M: intMeta(), Name: "b"}},
			{Names: []string{"b"}, Expr: &minidf.Var{M: intMeta(), Name: "a"}},
		},
	}
	objsched.Schedule(n)
}
