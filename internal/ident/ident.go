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

// Package ident provides fresh-identifier generation for the lowering
// and normalization passes. Each pass that needs to invent names for a
// defining variable constructs one [Generator] per base name and asks
// it for siblings; it is not a global counter.
package ident

import "strconv"

// A Generator hands out fresh names derived from a base identifier. It
// is scoped to the lifetime of a single pass over a single node: two
// Generators with the same base string are independent and will
// produce overlapping names, so callers must not share one across
// nodes.
type Generator struct {
	base string
	next int
}

// New returns a Generator that mints names of the form "base_0",
// "base_1", and so on.
func New(base string) *Generator {
	return &Generator{base: base}
}

// Fresh returns the next unused name for this generator.
func (g *Generator) Fresh() string {
	n := g.base + "_" + strconv.Itoa(g.next)
	g.next++
	return n
}

// Count reports how many names have been minted so far.
func (g *Generator) Count() int {
	return g.next
}
