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

// Package types defines the base types, constant values, and operator
// vocabulary shared by every stage of the pipeline.
package types

import "fmt"

// Base is one of the three base types of the source language.
type Base int

const (
	Int Base = iota
	Real
	Bool
)

func (b Base) String() string {
	switch b {
	case Int:
		return "int"
	case Real:
		return "real"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("Base(%d)", int(b))
	}
}

// Seq is a tuple-of-types. Every expression carries one; only
// node-call expressions may have len(Seq) > 1.
type Seq []Base

func (s Seq) Equal(other Seq) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Seq) String() string {
	if len(s) == 1 {
		return s[0].String()
	}
	out := "("
	for i, b := range s {
		if i > 0 {
			out += ", "
		}
		out += b.String()
	}
	return out + ")"
}

// Value is a literal constant of one of the base types. Exactly one of
// the fields is meaningful, as indicated by Base.
type Value struct {
	Base Base
	I    int32
	R    float32
	B    bool
}

func IntVal(i int32) Value   { return Value{Base: Int, I: i} }
func RealVal(r float32) Value { return Value{Base: Real, R: r} }
func BoolVal(b bool) Value   { return Value{Base: Bool, B: b} }

func (v Value) String() string {
	switch v.Base {
	case Int:
		return fmt.Sprintf("%d", v.I)
	case Real:
		return fmt.Sprintf("%g", v.R)
	case Bool:
		return fmt.Sprintf("%t", v.B)
	default:
		return "<invalid value>"
	}
}

// Sentinel returns an arbitrary value of type t, used as the
// placeholder initial value synthesized for a `pre` construct lowered
// to `fby` (§4.4, §9). Its concrete value carries no meaning: the
// static arrow-depth check made while lowering (see internal/minidf)
// guarantees it is never observed.
func Sentinel(t Base) Value {
	switch t {
	case Int:
		return IntVal(0)
	case Real:
		return RealVal(0)
	case Bool:
		return BoolVal(false)
	default:
		panic(fmt.Sprintf("types: no sentinel for %v", t))
	}
}

// BinOp is a binary operator.
type BinOp int

const (
	Lt BinOp = iota
	Le
	Gt
	Ge
	Eq
	Ne
	And
	Or
	Xor
	Implies
	Add
	Sub
	Mul
	Div
	Mod
)

var binOpNames = map[BinOp]string{
	Lt: "<", Le: "<=", Gt: ">", Ge: ">=", Eq: "=", Ne: "<>",
	And: "and", Or: "or", Xor: "xor", Implies: "=>",
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "mod",
}

func (o BinOp) String() string { return binOpNames[o] }

// IsComparison reports whether o produces a bool from ordered operands
// (<, <=, >, >=).
func (o BinOp) IsComparison() bool {
	switch o {
	case Lt, Le, Gt, Ge:
		return true
	default:
		return false
	}
}

// IsEquality reports whether o is = or <>.
func (o BinOp) IsEquality() bool {
	return o == Eq || o == Ne
}

// IsLogical reports whether o operates on bool operands and returns bool.
func (o BinOp) IsLogical() bool {
	switch o {
	case And, Or, Xor, Implies:
		return true
	default:
		return false
	}
}

// IsArith reports whether o is one of +, -, *, / (type-preserving
// arithmetic over int or real).
func (o BinOp) IsArith() bool {
	switch o {
	case Add, Sub, Mul, Div:
		return true
	default:
		return false
	}
}

// UnOp is a unary operator.
type UnOp int

const (
	Not UnOp = iota
	Neg
)

func (o UnOp) String() string {
	if o == Not {
		return "not"
	}
	return "-"
}
