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

// Package emit implements §4.9: it serializes object machines into the
// target language's source text. The skeleton of each machine (record
// fields, reset/step signatures, the main wrapper) is rendered through
// text/template, the same tool the teacher reaches for when stitching
// generated source from smaller fragments; the fragments themselves
// (statement lists, expressions) are built by straightforward
// recursive printing, since a template has no natural way to express
// an arbitrarily nested control tree.
package emit

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/flowlang/flowc/internal/errs"
	"github.com/flowlang/flowc/internal/objectform"
	"github.com/flowlang/flowc/internal/types"
)

// Program renders every machine and, for entry, a main wrapper.
func Program(machines []objectform.Machine, entry string) (string, error) {
	var found *objectform.Machine
	for i := range machines {
		if machines[i].Name == entry {
			found = &machines[i]
		}
	}
	if found == nil {
		return "", &errs.UndeclaredError{Name: entry}
	}

	var b strings.Builder
	for _, m := range machines {
		frag, err := renderMachine(m)
		if err != nil {
			return "", err
		}
		b.WriteString(frag)
		b.WriteString("\n")
	}
	b.WriteString(renderMain(*found))
	return b.String(), nil
}

type machineView struct {
	Name        string
	Memories    []fieldView
	Instances   []fieldView
	ResetBody   string
	StepParams  string
	StepReturns string
	StepLocals  string
	StepBody    string
}

type fieldView struct {
	Name string
	Type string
}

var machineTmpl = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("machine").Parse(`{{"" -}}
machine {{.Name}} {
{{range .Memories}}    mem {{.Name}}: {{.Type}}
{{end}}{{range .Instances}}    inst {{.Name}}: {{.Type}}
{{end}}
    proc reset(self) {
{{.ResetBody}}    }

    proc step(self{{.StepParams}}) -> ({{.StepReturns}}) {
{{.StepLocals}}{{.StepBody}}    }
}
`))
})

func renderMachine(m objectform.Machine) (string, error) {
	view := machineView{Name: m.Name}

	for _, mem := range m.Memories {
		view.Memories = append(view.Memories, fieldView{Name: mem.Name, Type: typeName(mem.Init)})
	}
	for _, inst := range m.Instances {
		view.Instances = append(view.Instances, fieldView{Name: inst.Name, Type: inst.Node})
	}

	var reset strings.Builder
	for _, mem := range m.Memories {
		fmt.Fprintf(&reset, "        self.%s = %s\n", mem.Name, literal(mem.Init))
	}
	for _, inst := range m.Instances {
		fmt.Fprintf(&reset, "        %s.reset(self.%s)\n", inst.Name, inst.Name)
	}
	view.ResetBody = reset.String()

	params := make([]string, len(m.Inputs))
	for i, p := range m.Inputs {
		params[i] = fmt.Sprintf("%s: %s", p.Name, baseTypeName(p.Type))
	}
	if len(params) > 0 {
		view.StepParams = ", " + strings.Join(params, ", ")
	}
	outs := make([]string, len(m.Outputs))
	for i, p := range m.Outputs {
		outs[i] = fmt.Sprintf("%s: %s", p.Name, baseTypeName(p.Type))
	}
	view.StepReturns = strings.Join(outs, ", ")

	var locals strings.Builder
	for _, l := range m.Locals {
		fmt.Fprintf(&locals, "        var %s\n", l)
	}
	view.StepLocals = locals.String()

	view.StepBody = renderStmts(m.Body, 2)

	var out strings.Builder
	if err := machineTmpl().Execute(&out, view); err != nil {
		return "", fmt.Errorf("emit: rendering machine %q: %w", m.Name, err)
	}
	return out.String(), nil
}

func renderStmts(stmts []objectform.Stmt, depth int) string {
	var b strings.Builder
	indent := strings.Repeat("    ", depth)
	for _, s := range stmts {
		switch v := s.(type) {
		case *objectform.LocalAssign:
			fmt.Fprintf(&b, "%s%s = %s\n", indent, v.Name, renderExpr(v.Expr))
		case *objectform.MemAssign:
			fmt.Fprintf(&b, "%sself.%s = %s\n", indent, v.Name, renderExpr(v.Expr))
		case *objectform.StepCall:
			fmt.Fprintf(&b, "%s(%s) = %s.step(%s)\n", indent, strings.Join(v.Outs, ", "), v.Instance, renderArgs(v.Args))
		case *objectform.Reset:
			fmt.Fprintf(&b, "%s%s.reset(self.%s)\n", indent, v.Instance, v.Instance)
		case *objectform.If:
			fmt.Fprintf(&b, "%sif %s {\n", indent, v.Carrier)
			b.WriteString(renderStmts(v.Then, depth+1))
			if len(v.Else) > 0 {
				fmt.Fprintf(&b, "%s} else {\n", indent)
				b.WriteString(renderStmts(v.Else, depth+1))
			}
			fmt.Fprintf(&b, "%s}\n", indent)
		}
	}
	return b.String()
}

func renderArgs(args []objectform.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = renderExpr(a)
	}
	return strings.Join(parts, ", ")
}

func renderExpr(e objectform.Expr) string {
	switch v := e.(type) {
	case *objectform.Lit:
		return literal(v.Value)
	case *objectform.LocalRef:
		return v.Name
	case *objectform.MemRef:
		return "self." + v.Name
	case *objectform.Unary:
		return fmt.Sprintf("(%s %s)", v.Op, renderExpr(v.X))
	case *objectform.Binary:
		return fmt.Sprintf("(%s %s %s)", renderExpr(v.X), v.Op, renderExpr(v.Y))
	default:
		panic(fmt.Sprintf("emit: unhandled expression type %T", e))
	}
}

func literal(v types.Value) string {
	switch v.Base {
	case types.Int:
		return strconv.FormatInt(int64(v.I), 10)
	case types.Real:
		return strconv.FormatFloat(float64(v.R), 'g', -1, 32)
	case types.Bool:
		return strconv.FormatBool(v.B)
	default:
		panic("emit: unhandled literal base type")
	}
}

func typeName(v types.Value) string { return baseTypeName(v.Base) }

func baseTypeName(b types.Base) string { return b.String() }

var mainTmpl = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("main").Parse(`{{"" -}}
main {
    m = new {{.Name}}()
    m.reset(m)
    loop {
{{range .Inputs}}        {{.}} = read()
{{end}}        ({{.Outs}}) = m.step(m{{.Args}})
        print({{.Outs}})
        print(m)
    }
}
`))
})

type mainView struct {
	Name   string
	Inputs []string
	Outs   string
	Args   string
}

// renderMain builds the entry point's run loop: each tick calls step,
// prints its outputs, then prints the whole machine so memory cells
// and instances are visible tick over tick (§4.9's "print outputs and
// internal state").
func renderMain(m objectform.Machine) string {
	view := mainView{Name: m.Name}
	names := make([]string, len(m.Inputs))
	for i, p := range m.Inputs {
		view.Inputs = append(view.Inputs, p.Name)
		names[i] = p.Name
	}
	if len(names) > 0 {
		view.Args = ", " + strings.Join(names, ", ")
	}
	outs := make([]string, len(m.Outputs))
	for i, p := range m.Outputs {
		outs[i] = p.Name
	}
	view.Outs = strings.Join(outs, ", ")

	var out strings.Builder
	if err := mainTmpl().Execute(&out, view); err != nil {
		panic(err)
	}
	return out.String()
}
