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

package fastparse

import (
	"fmt"

	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/types"
)

// Parse parses src into a list of node declarations. It stops at the
// first error, consistent with the Non-goal of source-position-rich
// diagnostics: errors carry only a short description of what the
// parser expected.
func Parse(src []byte) ([]fast.Node, error) {
	p := &parser{sc: newScanner(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseProgram()
}

type parser struct {
	sc  *scanner
	cur token
	err error
}

func (p *parser) advance() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) atPunct(v string) bool { return p.cur.kind == tokPunct && p.cur.val == v }
func (p *parser) atIdent(v string) bool { return p.cur.kind == tokIdent && p.cur.val == v }

func (p *parser) expectPunct(v string) error {
	if !p.atPunct(v) {
		return fmt.Errorf("fastparse: expected %q, got %q", v, p.cur.val)
	}
	return p.advance()
}

func (p *parser) expectKeyword(v string) error {
	if !p.atIdent(v) {
		return fmt.Errorf("fastparse: expected keyword %q, got %q", v, p.cur.val)
	}
	return p.advance()
}

func (p *parser) expectIdent() (string, error) {
	if p.cur.kind != tokIdent || isKeyword(p.cur.val) {
		return "", fmt.Errorf("fastparse: expected identifier, got %q", p.cur.val)
	}
	name := p.cur.val
	return name, p.advance()
}

func (p *parser) parseProgram() ([]fast.Node, error) {
	var nodes []fast.Node
	for p.cur.kind != tokEOF {
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *parser) parseNode() (fast.Node, error) {
	if err := p.expectKeyword("node"); err != nil {
		return fast.Node{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return fast.Node{}, err
	}

	if err := p.expectPunct("("); err != nil {
		return fast.Node{}, err
	}
	inputs, err := p.parseParamList(")")
	if err != nil {
		return fast.Node{}, err
	}
	if err := p.expectPunct(")"); err != nil {
		return fast.Node{}, err
	}

	if err := p.expectKeyword("returns"); err != nil {
		return fast.Node{}, err
	}
	if err := p.expectPunct("("); err != nil {
		return fast.Node{}, err
	}
	outputs, err := p.parseParamList(")")
	if err != nil {
		return fast.Node{}, err
	}
	if err := p.expectPunct(")"); err != nil {
		return fast.Node{}, err
	}

	if err := p.expectPunct("{"); err != nil {
		return fast.Node{}, err
	}

	var locals []fast.LocalDecl
	for p.atIdent("local") {
		l, err := p.parseLocal()
		if err != nil {
			return fast.Node{}, err
		}
		locals = append(locals, l)
	}

	var eqs []fast.Equation
	for !p.atPunct("}") {
		eq, err := p.parseEquation()
		if err != nil {
			return fast.Node{}, err
		}
		eqs = append(eqs, eq)
	}
	if err := p.expectPunct("}"); err != nil {
		return fast.Node{}, err
	}

	return fast.Node{Name: name, Inputs: inputs, Outputs: outputs, Locals: locals, Equations: eqs}, nil
}

func (p *parser) parseParamList(closing string) ([]fast.Param, error) {
	var params []fast.Param
	if p.atPunct(closing) {
		return params, nil
	}
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, fast.Param{Name: name, Type: typ})
		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return params, nil
}

func (p *parser) parseType() (types.Base, error) {
	switch {
	case p.atIdent("int"):
		return types.Int, p.advance()
	case p.atIdent("real"):
		return types.Real, p.advance()
	case p.atIdent("bool"):
		return types.Bool, p.advance()
	default:
		return 0, fmt.Errorf("fastparse: expected a type, got %q", p.cur.val)
	}
}

func (p *parser) parseLocal() (fast.LocalDecl, error) {
	if err := p.expectKeyword("local"); err != nil {
		return fast.LocalDecl{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return fast.LocalDecl{}, err
	}
	if err := p.expectPunct(":"); err != nil {
		return fast.LocalDecl{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return fast.LocalDecl{}, err
	}

	decl := fast.LocalDecl{Param: fast.Param{Name: name, Type: typ}}
	switch {
	case p.atIdent("when"):
		if err := p.advance(); err != nil {
			return fast.LocalDecl{}, err
		}
		carrier, err := p.expectIdent()
		if err != nil {
			return fast.LocalDecl{}, err
		}
		decl.WhenCarrier, decl.WhenPolarity = carrier, true
	case p.atIdent("whenot"):
		if err := p.advance(); err != nil {
			return fast.LocalDecl{}, err
		}
		carrier, err := p.expectIdent()
		if err != nil {
			return fast.LocalDecl{}, err
		}
		decl.WhenCarrier, decl.WhenPolarity = carrier, false
	}

	if err := p.expectPunct(";"); err != nil {
		return fast.LocalDecl{}, err
	}
	return decl, nil
}

func (p *parser) parseEquation() (fast.Equation, error) {
	var names []string
	for {
		name, err := p.expectIdent()
		if err != nil {
			return fast.Equation{}, err
		}
		names = append(names, name)
		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return fast.Equation{}, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct("="); err != nil {
		return fast.Equation{}, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return fast.Equation{}, err
	}
	if err := p.expectPunct(";"); err != nil {
		return fast.Equation{}, err
	}
	return fast.Equation{Names: names, Expr: expr}, nil
}

// parseExpr is the entry point; Arrow binds loosest.
func (p *parser) parseExpr() (fast.Expr, error) { return p.parseArrow() }

func (p *parser) parseArrow() (fast.Expr, error) {
	first, err := p.parseFby()
	if err != nil {
		return nil, err
	}
	branches := []fast.Expr{first}
	for p.atPunct("->") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseFby()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}
	if len(branches) == 1 {
		return first, nil
	}
	return &fast.Arrow{Branches: branches}, nil
}

// parseFby handles "init fby x"; init must reduce to a literal.
func (p *parser) parseFby() (fast.Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.atIdent("fby") {
		return left, nil
	}
	lit, ok := left.(*fast.Lit)
	if !ok {
		return nil, fmt.Errorf("fastparse: fby's initial value must be a literal")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	x, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return &fast.Fby{Init: lit.Value, X: x}, nil
}

func (p *parser) parseOr() (fast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atIdent("or") || p.atIdent("xor") || p.atPunct("=>") {
		op := types.Or
		switch {
		case p.atIdent("xor"):
			op = types.Xor
		case p.atPunct("=>"):
			op = types.Implies
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &fast.Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (fast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.atIdent("and") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &fast.Binary{Op: types.And, X: left, Y: right}
	}
	return left, nil
}

var compareOps = map[string]types.BinOp{
	"<": types.Lt, "<=": types.Le, ">": types.Gt, ">=": types.Ge,
	"=": types.Eq, "<>": types.Ne,
}

func (p *parser) parseComparison() (fast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if op, ok := compareOps[p.cur.val]; ok && p.cur.kind == tokPunct {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &fast.Binary{Op: op, X: left, Y: right}, nil
	}
	return left, nil
}

func (p *parser) parseAdditive() (fast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.atPunct("+") || p.atPunct("-") {
		op := types.Add
		if p.cur.val == "-" {
			op = types.Sub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &fast.Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (fast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atPunct("*") || p.atPunct("/") || p.atIdent("mod") {
		op := types.Mul
		switch {
		case p.atPunct("/"):
			op = types.Div
		case p.atIdent("mod"):
			op = types.Mod
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &fast.Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (fast.Expr, error) {
	switch {
	case p.atPunct("-"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &fast.Unary{Op: types.Neg, X: x}, nil
	case p.atIdent("not"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &fast.Unary{Op: types.Not, X: x}, nil
	case p.atIdent("pre"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &fast.Pre{X: x}, nil
	default:
		return p.parseWhen()
	}
}

func (p *parser) parseWhen() (fast.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	switch {
	case p.atIdent("when"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		carrier, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &fast.When{X: x, Carrier: carrier, Polarity: true}, nil
	case p.atIdent("whenot"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		carrier, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &fast.When{X: x, Carrier: carrier, Polarity: false}, nil
	default:
		return x, nil
	}
}

func (p *parser) parsePrimary() (fast.Expr, error) {
	switch {
	case p.cur.kind == tokInt:
		v, err := parseIntLit(p.cur.val)
		if err != nil {
			return nil, err
		}
		return &fast.Lit{Value: types.IntVal(v)}, p.advance()

	case p.cur.kind == tokFloat:
		v, err := parseFloatLit(p.cur.val)
		if err != nil {
			return nil, err
		}
		return &fast.Lit{Value: types.RealVal(v)}, p.advance()

	case p.atIdent("true"):
		return &fast.Lit{Value: types.BoolVal(true)}, p.advance()

	case p.atIdent("false"):
		return &fast.Lit{Value: types.BoolVal(false)}, p.advance()

	case p.atIdent("current"):
		return p.parseCurrent()

	case p.atIdent("merge"):
		return p.parseMerge()

	case p.atIdent("if"):
		return p.parseIf()

	case p.atPunct("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return x, nil

	case p.cur.kind == tokIdent && !isKeyword(p.cur.val):
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if p.atPunct("(") {
			return p.parseCallTail(name)
		}
		return &fast.Var{Name: name}, nil

	default:
		return nil, fmt.Errorf("fastparse: unexpected token %q", p.cur.val)
	}
}

func (p *parser) parseCurrent() (fast.Expr, error) {
	if err := p.expectKeyword("current"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(","); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	lit, ok := init.(*fast.Lit)
	if !ok {
		return nil, fmt.Errorf("fastparse: current's initial value must be a literal")
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &fast.Current{X: name, Init: lit.Value}, nil
}

func (p *parser) parseMerge() (fast.Expr, error) {
	if err := p.expectKeyword("merge"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	carrier, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(","); err != nil {
		return nil, err
	}
	onTrue, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(","); err != nil {
		return nil, err
	}
	onFalse, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &fast.Merge{Carrier: carrier, OnTrue: onTrue, OnFalse: onFalse}, nil
}

func (p *parser) parseIf() (fast.Expr, error) {
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &fast.If{Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) parseCallTail(name string) (fast.Expr, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []fast.Expr
	if !p.atPunct(")") {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.atPunct(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	call := &fast.Call{Node: name, Args: args}
	if p.atIdent("reset") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		carrier, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		call.Reset = carrier
	}
	return call, nil
}
