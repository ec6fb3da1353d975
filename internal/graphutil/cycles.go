// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graphutil

import (
	"sort"

	"github.com/ujchoe/SCanDroid/internal/funcutil"
	"github.com/yourbasic/graph"
)

// FindAllElementaryCycles finds all elementary cycles in the graph CGraph, each cycle starting and ending with its
// smallest node ID.
// This uses Donald B. Johnson's algorithm presented in
// "Finding All The Elementary Circuits of a Directed Graph", 1975
func FindAllElementaryCycles(cg CGraph) [][]int64 {
	s := &cycleState{}
	start := 0
	for start < len(cg.Keys) {
		fg := Subgraph(cg, cg.Keys[start:])
		least := int64(-1)
		for _, component := range graph.StrongComponents(fg) {
			if len(component) < 2 && !fg.Edges[int64(component[0])][int64(component[0])] {
				continue
			}
			for _, v := range component {
				if _, ok := fg.IDMap[int64(v)]; ok && fg.Edges[int64(v)] != nil && (least < 0 || int64(v) < least) {
					least = int64(v)
				}
			}
		}
		if least < 0 {
			break
		}
		s.reset()
		s.circuit(least, least, fg)
		start = sort.Search(len(cg.Keys), func(i int) bool { return cg.Keys[i] > least })
	}
	return s.cycles
}

type cycleState struct {
	blocked map[int64]bool
	blist   map[int64]map[int64]bool
	stack   []int64
	cycles  [][]int64
}

func (s *cycleState) reset() {
	s.blocked = map[int64]bool{}
	s.blist = map[int64]map[int64]bool{}
	s.stack = nil
}

func (s *cycleState) unblock(u int64) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		delete(s.blist[u], w)
		if s.blocked[w] {
			s.unblock(w)
		}
	}
}

func (s *cycleState) circuit(v int64, root int64, g CGraph) bool {
	found := false
	s.stack = append(s.stack, v)
	s.blocked[v] = true
	for _, w := range funcutil.SortedKeys(g.Edges[v]) {
		if w == root {
			cycle := append(append([]int64{}, s.stack...), w)
			s.cycles = append(s.cycles, cycle)
			found = true
		} else if !s.blocked[w] && s.circuit(w, root, g) {
			found = true
		}
	}

	if found {
		s.unblock(v)
	} else {
		for w := range g.Edges[v] {
			if s.blist[w] == nil {
				s.blist[w] = map[int64]bool{}
			}
			s.blist[w][v] = true
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return found
}
