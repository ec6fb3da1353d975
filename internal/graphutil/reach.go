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

	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/yourbasic/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// Reachable returns the set of IDs of the nodes reachable from the roots in cg, roots included.
func Reachable(cg CGraph, roots []program.Node) map[int]bool {
	reached := make(map[int]bool, len(cg.Keys))
	for _, root := range roots {
		id := root.ID()
		if reached[id] {
			continue
		}
		if _, ok := cg.IDMap[int64(id)]; !ok {
			continue
		}
		reached[id] = true
		graph.BFS(cg, id, func(_, w int, _ int64) {
			reached[w] = true
		})
	}
	return reached
}

// ReachableFromEntrypoints returns the IDs of the nodes of the call graph reachable from its entrypoints.
func ReachableFromEntrypoints(cg program.CallGraph) map[int]bool {
	return Reachable(NewCallgraphIterator(cg), cg.Entrypoints())
}

// RecursiveComponents returns the strongly connected components of cg that contain a cycle: the components with
// more than one node and the single nodes calling themselves. Nodes in each component are ordered by ID, and
// components are ordered by their first node.
func RecursiveComponents(cg CGraph) [][]program.Node {
	var res [][]program.Node
	for _, scc := range topo.TarjanSCC(cg) {
		if len(scc) == 1 && !cg.HasEdgeFromTo(scc[0].ID(), scc[0].ID()) {
			continue
		}
		component := make([]program.Node, 0, len(scc))
		for _, n := range scc {
			component = append(component, n.(CNode).Node)
		}
		sort.Slice(component, func(i, j int) bool { return component[i].ID() < component[j].ID() })
		res = append(res, component)
	}
	sort.Slice(res, func(i, j int) bool { return res[i][0].ID() < res[j][0].ID() })
	return res
}
