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

// Package causality implements the source-level scheduler of §4.1: a
// small reusable topological-sort engine plus the two concrete graphs
// built on top of it (node call graph, intra-node equation graph).
//
// The engine's shape (a Graph that accumulates edges between keys,
// then a deterministic Sort) is grounded on
// internal/core/toposort's GraphBuilder/Graph split in the teacher
// repo. Unlike the teacher, which must always produce *some* order
// (CUE tolerates reference cycles and resolves them during
// evaluation), §4.1 and §4.6 require a hard failure the moment a cycle
// is detected, so this engine does not carry the teacher's strongly-
// connected-component/elementary-cycle machinery for entering and
// breaking cycles — it only needs to name one participant of the first
// cycle found. internal/objsched reuses this same engine with a
// different edge-construction policy (§4.6).
package causality

import "sort"

// Graph is a generic dependency graph over comparable keys. Edge(a,
// b) means b depends on a (a must be scheduled before b).
type Graph[K comparable] struct {
	nodes    map[K]*node[K]
	order    []K // insertion order, for deterministic iteration
}

type node[K comparable] struct {
	key      K
	outgoing []K // edges to nodes that depend on this one
	indegree int
}

// NewGraph returns an empty graph.
func NewGraph[K comparable]() *Graph[K] {
	return &Graph[K]{nodes: make(map[K]*node[K])}
}

// Ensure creates a node for key if it doesn't already exist.
func (g *Graph[K]) Ensure(key K) {
	if _, ok := g.nodes[key]; !ok {
		g.nodes[key] = &node[K]{key: key}
		g.order = append(g.order, key)
	}
}

// AddEdge records that to depends on from: from must be scheduled
// before to. Both ends are created if missing. Idempotent.
func (g *Graph[K]) AddEdge(from, to K) {
	g.Ensure(from)
	g.Ensure(to)
	fn := g.nodes[from]
	for _, existing := range fn.outgoing {
		if existing == to {
			return
		}
	}
	fn.outgoing = append(fn.outgoing, to)
	g.nodes[to].indegree++
}

// CycleError reports that the graph could not be fully ordered; one
// key still participating in a cycle at the point of failure is named
// as Witness.
type CycleError[K comparable] struct {
	Witness K
}

func (e *CycleError[K]) Error() string { return "causality: cyclic graph" }

// Sort performs a deterministic Kahn topological sort: at each step,
// among the nodes whose indegree has reached zero, the one that is
// "smallest" per less is chosen next. If nodes remain with nonzero
// indegree once the ready set is exhausted, the graph has a cycle;
// Sort returns the lexicographically smallest (per less) such
// remaining key as Witness, matching §5's requirement that tie-breaks
// be deterministic without the emitter depending on which valid order
// was chosen.
func (g *Graph[K]) Sort(less func(a, b K) bool) ([]K, error) {
	indegree := make(map[K]int, len(g.nodes))
	for k, n := range g.nodes {
		indegree[k] = n.indegree
	}

	var ready []K
	for _, k := range g.order {
		if indegree[k] == 0 {
			ready = append(ready, k)
		}
	}

	sortKeys(ready, less)

	var out []K
	for len(ready) > 0 {
		k := ready[0]
		ready = ready[1:]
		out = append(out, k)

		var newlyReady []K
		for _, to := range g.nodes[k].outgoing {
			indegree[to]--
			if indegree[to] == 0 {
				newlyReady = append(newlyReady, to)
			}
		}
		if len(newlyReady) > 0 {
			ready = append(ready, newlyReady...)
			sortKeys(ready, less)
		}
	}

	if len(out) != len(g.nodes) {
		// Some node never reached indegree zero: a cycle remains.
		// Report the smallest such key, in insertion order, as a
		// deterministic witness.
		var remaining []K
		for _, k := range g.order {
			if indegree[k] != 0 {
				remaining = append(remaining, k)
			}
		}
		sortKeys(remaining, less)
		return nil, &CycleError[K]{Witness: remaining[0]}
	}
	return out, nil
}

func sortKeys[K comparable](keys []K, less func(a, b K) bool) {
	sort.SliceStable(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
}
