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

package fastparse_test

import (
	"testing"

	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/fastparse"
	"github.com/flowlang/flowc/internal/types"
)

func TestParseCounter(t *testing.T) {
	src := `
// a free-running counter
node cnt() returns (k: int) {
	k = 0 fby (k + 1);
}
`
	nodes, err := fastparse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	n := nodes[0]
	if n.Name != "cnt" || len(n.Outputs) != 1 || n.Outputs[0].Name != "k" {
		t.Fatalf("unexpected node: %+v", n)
	}
	if len(n.Equations) != 1 || len(n.Equations[0].Names) != 1 || n.Equations[0].Names[0] != "k" {
		t.Fatalf("unexpected equations: %+v", n.Equations)
	}
	fby, ok := n.Equations[0].Expr.(*fast.Fby)
	if !ok {
		t.Fatalf("expected a Fby, got %T", n.Equations[0].Expr)
	}
	if fby.Init != types.IntVal(0) {
		t.Fatalf("unexpected fby init: %+v", fby.Init)
	}
	bin, ok := fby.X.(*fast.Binary)
	if !ok || bin.Op != types.Add {
		t.Fatalf("expected k + 1, got %+v", fby.X)
	}
}

func TestParseEdgeDetectorWithLocalsAndHelperNode(t *testing.T) {
	src := `
node helper(a: int) returns (b: int) {
	b = a + 1;
}

node edge(x: bool) returns (e: bool) {
	local px: bool;
	e = x and not (false fby x);
}
`
	nodes, err := fastparse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	edge := nodes[1]
	if len(edge.Locals) != 1 || edge.Locals[0].Name != "px" {
		t.Fatalf("unexpected locals: %+v", edge.Locals)
	}
	bin, ok := edge.Equations[0].Expr.(*fast.Binary)
	if !ok || bin.Op != types.And {
		t.Fatalf("expected top-level and, got %+v", edge.Equations[0].Expr)
	}
}

func TestParseCallWithReset(t *testing.T) {
	src := `
node callee(a: int) returns (b: int) {
	b = a;
}

node caller(x: int, r: bool) returns (y: int) {
	y = callee(x) reset r;
}
`
	nodes, err := fastparse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	caller := nodes[1]
	call, ok := caller.Equations[0].Expr.(*fast.Call)
	if !ok {
		t.Fatalf("expected a Call, got %T", caller.Equations[0].Expr)
	}
	if call.Node != "callee" || call.Reset != "r" || len(call.Args) != 1 {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestParseArrowMergeWhenCurrentIf(t *testing.T) {
	src := `
node f(x: int, c: bool) returns (y: int) {
	local p: int when c;
	p = x when c;
	y = if c then merge(c, p, current(p, 0)) else 1 -> 2 -> x;
}
`
	nodes, err := fastparse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n := nodes[0]
	if len(n.Locals) != 1 || n.Locals[0].WhenCarrier != "c" || !n.Locals[0].WhenPolarity {
		t.Fatalf("unexpected locals: %+v", n.Locals)
	}
	when, ok := n.Equations[0].Expr.(*fast.When)
	if !ok || when.Carrier != "c" || !when.Polarity {
		t.Fatalf("expected p = x when c, got %+v", n.Equations[0].Expr)
	}
	ifExpr, ok := n.Equations[1].Expr.(*fast.If)
	if !ok {
		t.Fatalf("expected an If, got %T", n.Equations[1].Expr)
	}
	merge, ok := ifExpr.Then.(*fast.Merge)
	if !ok || merge.Carrier != "c" {
		t.Fatalf("expected a merge on c, got %+v", ifExpr.Then)
	}
	if _, ok := merge.OnFalse.(*fast.Current); !ok {
		t.Fatalf("expected current() as merge's else branch, got %+v", merge.OnFalse)
	}
	arrow, ok := ifExpr.Else.(*fast.Arrow)
	if !ok || len(arrow.Branches) != 3 {
		t.Fatalf("expected a 3-branch arrow, got %+v", ifExpr.Else)
	}
}

func TestParseFbyRequiresLiteralInit(t *testing.T) {
	src := `
node bad(x: int) returns (y: int) {
	y = x fby x;
}
`
	if _, err := fastparse.Parse([]byte(src)); err == nil {
		t.Fatal("expected an error for a non-literal fby initial value")
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	src := `
node a() returns (y: int) {
	y = 1;
}
%%%
`
	if _, err := fastparse.Parse([]byte(src)); err == nil {
		t.Fatal("expected an error for unrecognized trailing input")
	}
}
