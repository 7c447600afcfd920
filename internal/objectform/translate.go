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

package objectform

import (
	"fmt"

	"github.com/flowlang/flowc/internal/minidf"
	"github.com/flowlang/flowc/internal/sclock"
)

// Translate implements §4.7: it converts a scheduled, normalized node
// into an object machine.
func Translate(n minidf.Node) Machine {
	m := Machine{Name: n.Name, Inputs: n.Inputs, Outputs: n.Outputs}

	mem := make(map[string]bool)
	for _, eq := range n.Equations {
		if fby, ok := eq.Expr.(*minidf.Fby); ok {
			mem[eq.Names[0]] = true
			m.Memories = append(m.Memories, Memory{Name: eq.Names[0], Init: fby.Init, Clk: fby.Meta().Clk})
		}
	}

	tr := &translator{mem: mem, instanceCount: make(map[string]int)}

	for _, eq := range n.Equations {
		m.Body = append(m.Body, tr.equation(eq)...)
		if !mem[eq.Names[0]] {
			m.Locals = append(m.Locals, eq.Names...)
		}
	}
	m.Instances = tr.instances

	for _, out := range n.Outputs {
		if mem[out.Name] {
			result := out.Name + "_result"
			m.Body = append(m.Body, &LocalAssign{Name: result, Expr: &MemRef{Name: out.Name}})
			m.Locals = append(m.Locals, result)
			renameOutput(&m, out.Name, result)
		}
	}

	for _, cell := range m.Memories {
		commit := wrapByClock(cell.Clk, []Stmt{&MemAssign{Name: cell.Name, Expr: &LocalRef{Name: cell.Name}}})
		m.Body = append(m.Body, commit...)
	}

	return m
}

// renameOutput points the machine's declared output named from at to,
// since from is about to be overwritten by the cell's end-of-step
// commit and the value observed this tick was already captured into
// to.
func renameOutput(m *Machine, from, to string) {
	for i, p := range m.Outputs {
		if p.Name == from {
			m.Outputs[i].Name = to
			return
		}
	}
}

type translator struct {
	mem           map[string]bool
	instances     []Instance
	instanceCount map[string]int
}

func (tr *translator) equation(eq minidf.Equation) []Stmt {
	switch rhs := eq.Expr.(type) {
	case *minidf.Fby:
		return []Stmt{&MemAssign{Name: eq.Names[0], Expr: tr.a(rhs.X)}}

	case *minidf.Call:
		return tr.call(eq.Names, rhs)

	default:
		return tr.assignCA(eq.Names[0], eq.Expr)
	}
}

// assignCA assigns e (a CA: merge(c, CA, CA) | A) to name, then wraps
// the result in control nodes for e's own clock sequence, outermost
// first.
func (tr *translator) assignCA(name string, e minidf.Expr) []Stmt {
	var core []Stmt
	if merge, ok := e.(*minidf.Merge); ok {
		core = []Stmt{&If{
			Carrier: merge.Carrier,
			Then:    tr.assignCANoWrap(name, merge.OnTrue),
			Else:    tr.assignCANoWrap(name, merge.OnFalse),
		}}
	} else {
		core = []Stmt{&LocalAssign{Name: name, Expr: tr.a(e)}}
	}
	return wrapByClock(e.Meta().Clk, core)
}

// assignCANoWrap is assignCA without the outer clock-sequence wrap,
// used for a merge branch, whose own clock is already implied by the
// enclosing if.
func (tr *translator) assignCANoWrap(name string, e minidf.Expr) []Stmt {
	if merge, ok := e.(*minidf.Merge); ok {
		return []Stmt{&If{
			Carrier: merge.Carrier,
			Then:    tr.assignCANoWrap(name, merge.OnTrue),
			Else:    tr.assignCANoWrap(name, merge.OnFalse),
		}}
	}
	return []Stmt{&LocalAssign{Name: name, Expr: tr.a(e)}}
}

func (tr *translator) call(names []string, c *minidf.Call) []Stmt {
	tr.instanceCount[c.Node]++
	instance := fmt.Sprintf("%s_%d", c.Node, tr.instanceCount[c.Node]-1)
	tr.instances = append(tr.instances, Instance{Name: instance, Node: c.Node})

	args := make([]Expr, len(c.Args))
	for i, a := range c.Args {
		args[i] = tr.a(a)
	}

	var stmts []Stmt
	if c.Reset != "" {
		stmts = append(stmts, &If{Carrier: c.Reset, Then: []Stmt{&Reset{Instance: instance}}})
	}
	step := wrapByClock(c.Meta().Clk, []Stmt{&StepCall{Outs: names, Instance: instance, Args: args}})
	return append(stmts, step...)
}

// a translates an A-grammar expression: a when is a no-op at this
// level (its guard is already materialized as the enclosing control
// node), and a var read is resolved to a memory or local reference.
func (tr *translator) a(e minidf.Expr) Expr {
	switch x := e.(type) {
	case *minidf.Lit:
		return &Lit{Value: x.Value}
	case *minidf.Var:
		if tr.mem[x.Name] {
			return &MemRef{Name: x.Name}
		}
		return &LocalRef{Name: x.Name}
	case *minidf.Unary:
		return &Unary{Op: x.Op, X: tr.a(x.X)}
	case *minidf.Binary:
		return &Binary{Op: x.Op, X: tr.a(x.X), Y: tr.a(x.Y)}
	case *minidf.When:
		return tr.a(x.X)
	default:
		panic(fmt.Sprintf("objectform: %T is not a valid A-grammar expression", e))
	}
}

// wrapByClock nests stmts in "if c then [..] else []" (or the mirror
// for a negative polarity) for each pair of clk's sequence, outermost
// first producing the outermost if.
func wrapByClock(clk sclock.Clock, stmts []Stmt) []Stmt {
	pairs := clk.Pairs()
	for i := len(pairs) - 1; i >= 0; i-- {
		p := pairs[i]
		if p.Polarity {
			stmts = []Stmt{&If{Carrier: p.Carrier, Then: stmts}}
		} else {
			stmts = []Stmt{&If{Carrier: p.Carrier, Else: stmts}}
		}
	}
	return stmts
}
