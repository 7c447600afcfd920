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

package fast

// Children returns the immediate subexpressions of x, in evaluation
// order. Carrier names referenced by When/Merge/Current/Call-reset are
// not expressions and are not returned here; callers that need them
// (the causality and clock stages) inspect the concrete type directly.
func Children(x Expr) []Expr {
	switch e := x.(type) {
	case *Lit, *Var:
		return nil
	case *Unary:
		return []Expr{e.X}
	case *Binary:
		return []Expr{e.X, e.Y}
	case *When:
		return []Expr{e.X}
	case *Merge:
		return []Expr{e.OnTrue, e.OnFalse}
	case *Fby:
		return []Expr{e.X}
	case *Pre:
		return []Expr{e.X}
	case *Arrow:
		return e.Branches
	case *If:
		return []Expr{e.Cond, e.Then, e.Else}
	case *Current:
		return nil
	case *Call:
		return e.Args
	default:
		panic("fast: unhandled expression type in Children")
	}
}

// Walk calls f on x and recursively on every child of x, pre-order.
func Walk(x Expr, f func(Expr)) {
	f(x)
	for _, c := range Children(x) {
		Walk(c, f)
	}
}
