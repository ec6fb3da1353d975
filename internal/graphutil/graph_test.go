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

package graphutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujchoe/SCanDroid/internal/graphutil"
	"github.com/ujchoe/SCanDroid/internal/programtest"
	"github.com/yourbasic/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// newGraph builds a program whose call graph has the given edges between n nodes. Node 0 is the only entrypoint.
func newGraph(n int, edges [][2]int) *programtest.Program {
	p := programtest.New()
	nodes := make([]*programtest.Node, n)
	for i := range nodes {
		nodes[i] = p.AddNode(p.AddMethod(programtest.NewFunction("main", "f", 0)))
	}
	p.AddEntrypoint(nodes[0])
	for _, e := range edges {
		p.AddCall(nodes[e[0]], nodes[e[1]])
	}
	return p
}

func TestCallgraphIterator(t *testing.T) {
	p := newGraph(4, [][2]int{{0, 1}, {1, 2}, {2, 1}})
	cg := graphutil.NewCallgraphIterator(p)
	assert.Equal(t, 4, cg.Order())
	assert.Equal(t, []int64{0, 1, 2, 3}, cg.Keys)

	stats := graph.Check(cg)
	assert.Equal(t, 3, stats.Size)
	assert.Equal(t, 0, stats.Loops)

	assert.True(t, cg.HasEdgeFromTo(0, 1))
	assert.False(t, cg.HasEdgeFromTo(1, 0))
	assert.True(t, cg.HasEdgeBetween(1, 0))
	assert.Nil(t, cg.Edge(3, 0))
	require.NotNil(t, cg.Edge(0, 1))
	assert.Equal(t, int64(1), cg.Edge(0, 1).To().ID())

	to := cg.To(1)
	var callers []int64
	for to.Next() {
		callers = append(callers, to.Node().ID())
	}
	assert.Equal(t, []int64{0, 2}, callers)
	assert.Equal(t, 0, to.Len())
	to.Reset()
	assert.Equal(t, 2, to.Len())
}

func TestReachableFromEntrypoints(t *testing.T) {
	p := newGraph(5, [][2]int{{0, 1}, {1, 2}, {3, 4}})
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, graphutil.ReachableFromEntrypoints(p))
	assert.Empty(t, graphutil.ReachableFromEntrypoints(programtest.New()))
}

func TestRecursiveComponents(t *testing.T) {
	p := newGraph(6, [][2]int{{0, 1}, {1, 2}, {2, 1}, {3, 3}, {4, 5}})
	cg := graphutil.NewCallgraphIterator(p)
	sccs := graphutil.RecursiveComponents(cg)
	require.Len(t, sccs, 2)
	assert.Equal(t, 1, sccs[0][0].ID())
	assert.Equal(t, 2, sccs[0][1].ID())
	assert.Equal(t, 3, sccs[1][0].ID())

	// gonum sees every node exactly once
	total := 0
	for _, scc := range topo.TarjanSCC(cg) {
		total += len(scc)
	}
	assert.Equal(t, 6, total)
}

func TestFindAllElementaryCycles(t *testing.T) {
	p := newGraph(6, [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {3, 4}, {4, 3}, {5, 5}})
	cycles := graphutil.FindAllElementaryCycles(graphutil.NewCallgraphIterator(p))
	assert.ElementsMatch(t, [][]int64{
		{0, 1, 2, 0},
		{1, 2, 1},
		{3, 4, 3},
		{5, 5},
	}, cycles)

	acyclic := newGraph(3, [][2]int{{0, 1}, {1, 2}})
	assert.Empty(t, graphutil.FindAllElementaryCycles(graphutil.NewCallgraphIterator(acyclic)))
}

func TestSubgraphKeepsInnerEdges(t *testing.T) {
	p := newGraph(3, [][2]int{{0, 1}, {1, 2}})
	sub := graphutil.Subgraph(graphutil.NewCallgraphIterator(p), []int64{1, 2})
	assert.True(t, sub.HasEdgeFromTo(1, 2))
	assert.False(t, sub.HasEdgeFromTo(0, 1))
	assert.Equal(t, 3, sub.Order())
}
