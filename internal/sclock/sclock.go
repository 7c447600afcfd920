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

// Package sclock implements the clock algebra of §3: clocks as either
// Const or a prefix-ordered sequence of (carrier, polarity) pairs.
// Sequences are treated as immutable and are safe to share structurally
// across expressions; every mutating operation returns a new sequence.
package sclock

import "strings"

// Pair is one (carrier, polarity) link in a clock sequence.
type Pair struct {
	Carrier  string
	Polarity bool
}

// Clock is either the statically-scheduled Const clock or Ck(Seq).
type Clock struct {
	isConst bool
	Seq     []Pair
}

// Const is the clock of statically-scheduled (never sampled) values,
// such as literals.
var Const = Clock{isConst: true}

// Base is Ck([]), the always-present base clock.
var Base = Clock{Seq: nil}

// Ck builds a non-Const clock from a sequence of pairs.
func Ck(seq ...Pair) Clock {
	return Clock{Seq: append([]Pair(nil), seq...)}
}

// IsConst reports whether c is the Const clock.
func (c Clock) IsConst() bool { return c.isConst }

// IsBase reports whether c is the base clock Ck([]).
func (c Clock) IsBase() bool { return !c.isConst && len(c.Seq) == 0 }

// When extends c by sampling on (carrier, polarity). Per §4.3, if the
// last pair of c is already (carrier, polarity), the suffix is not
// duplicated (idempotent refinement); a last pair on the same carrier
// with the opposite polarity is extended as usual.
func (c Clock) When(carrier string, polarity bool) Clock {
	if c.isConst {
		c = Base
	}
	if n := len(c.Seq); n > 0 && c.Seq[n-1].Carrier == carrier && c.Seq[n-1].Polarity == polarity {
		return c
	}
	out := append(append([]Pair(nil), c.Seq...), Pair{Carrier: carrier, Polarity: polarity})
	return Clock{Seq: out}
}

// PeelLast removes the last pair of c, returning the prefix and the
// pair removed. It panics on Const or the base clock; callers must
// check IsBase/IsConst first.
func (c Clock) PeelLast() (prefix Clock, last Pair) {
	if c.isConst || len(c.Seq) == 0 {
		panic("sclock: PeelLast on Const or base clock")
	}
	n := len(c.Seq)
	return Clock{Seq: append([]Pair(nil), c.Seq[:n-1]...)}, c.Seq[n-1]
}

// Equal reports structural equality: same Const-ness, same sequence
// element-wise on carrier and polarity.
func (c Clock) Equal(other Clock) bool {
	if c.isConst != other.isConst {
		return false
	}
	if len(c.Seq) != len(other.Seq) {
		return false
	}
	for i := range c.Seq {
		if c.Seq[i] != other.Seq[i] {
			return false
		}
	}
	return true
}

// Compatible implements §3's Compatibility relation: Const is
// compatible with anything; otherwise the sequences must be equal.
func Compatible(a, b Clock) bool {
	if a.isConst || b.isConst {
		return true
	}
	return a.Equal(b)
}

// LowerConst returns c's sequence if c is Const, rewritten onto
// target's clock; otherwise returns c unchanged. This implements the
// "Const operands are implicitly lowered to the other side's clock"
// rule of §4.3.
func LowerConst(c, target Clock) Clock {
	if c.isConst {
		return target
	}
	return c
}

// FasterOrEqual implements §3's c1 <= c2: c1's carrier sequence is a
// prefix of c2's carrier sequence (first component only, polarity
// ignored). Const is faster-or-equal than everything.
func FasterOrEqual(c1, c2 Clock) bool {
	if c1.isConst {
		return true
	}
	if c2.isConst {
		return false
	}
	if len(c1.Seq) > len(c2.Seq) {
		return false
	}
	for i, p := range c1.Seq {
		if c2.Seq[i].Carrier != p.Carrier {
			return false
		}
	}
	return true
}

// Carriers returns the distinct carrier names appearing in c, in
// sequence order. internal/minidf's current lowering uses it to tell a
// sub-clocked variable from one on the base clock.
func (c Clock) Carriers() []string {
	if c.isConst {
		return nil
	}
	out := make([]string, len(c.Seq))
	for i, p := range c.Seq {
		out[i] = p.Carrier
	}
	return out
}

// Pairs returns c's (carrier, polarity) sequence outermost first, i.e.
// in the order control nodes should nest when nested ifs are built
// from it (§4.7). Returns nil for Const and the base clock.
func (c Clock) Pairs() []Pair {
	if c.isConst {
		return nil
	}
	return append([]Pair(nil), c.Seq...)
}

func (c Clock) String() string {
	if c.isConst {
		return "Const"
	}
	if len(c.Seq) == 0 {
		return "Ck([])"
	}
	var b strings.Builder
	b.WriteString("Ck([")
	for i, p := range c.Seq {
		if i > 0 {
			b.WriteString(", ")
		}
		if !p.Polarity {
			b.WriteString("not ")
		}
		b.WriteString(p.Carrier)
	}
	b.WriteString("])")
	return b.String()
}
