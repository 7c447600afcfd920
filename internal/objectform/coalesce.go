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

// Coalesce implements §4.8: adjacent ifs guarded by the same carrier
// merge their then-branches and their else-branches, and the merged
// branches are coalesced in turn. Purely syntactic; does not change
// which statements run on which tick.
func Coalesce(stmts []Stmt) []Stmt {
	if len(stmts) == 0 {
		return stmts
	}

	var out []Stmt
	for _, s := range stmts {
		if iff, ok := s.(*If); ok {
			s = &If{Carrier: iff.Carrier, Then: Coalesce(iff.Then), Else: Coalesce(iff.Else)}
		}

		if len(out) > 0 {
			prev, prevOK := out[len(out)-1].(*If)
			cur, curOK := s.(*If)
			if prevOK && curOK && prev.Carrier == cur.Carrier {
				merged := &If{
					Carrier: prev.Carrier,
					Then:    Coalesce(append(append([]Stmt(nil), prev.Then...), cur.Then...)),
					Else:    Coalesce(append(append([]Stmt(nil), prev.Else...), cur.Else...)),
				}
				out[len(out)-1] = merged
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// CoalesceMachine applies Coalesce to every statement list in m's body.
func CoalesceMachine(m Machine) Machine {
	m.Body = Coalesce(m.Body)
	return m
}
