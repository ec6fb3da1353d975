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

// Package graphutil provides views of program call graphs for the yourbasic and gonum graph libraries, and the
// graph algorithms the analyses use on them.
package graphutil

import (
	"sort"

	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/internal/funcutil"
	"gonum.org/v1/gonum/graph"
)

// CGraph is an abstraction over a callgraph to work with existing graph libraries. It implements the methods to
// satisfy graph.Iterator and Gonum's graph.Directed
type CGraph struct {
	// The order of the graph: node IDs are in [0, order)
	order int

	// IDMap maps from node IDs to CNodes
	IDMap map[int64]CNode

	// Keys are all the node IDs, sorted
	Keys []int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed edge between IDMap[x] and IDMap[y]
	Edges map[int64]map[int64]bool

	// reverse holds the incoming edges
	reverse map[int64]map[int64]bool
}

// NewCallgraphIterator returns a new call graph iterator where node ids correspond the ID of each call graph node
func NewCallgraphIterator(cg program.CallGraph) CGraph {
	nodes := cg.Nodes()
	idmap := make(map[int64]CNode, len(nodes))
	edges := make(map[int64]map[int64]bool, len(nodes))
	reverse := make(map[int64]map[int64]bool, len(nodes))
	keys := make([]int64, 0, len(nodes))
	order := 0
	for _, node := range nodes {
		id := int64(node.ID())
		keys = append(keys, id)
		idmap[id] = CNode{node}
		if int(id) >= order {
			order = int(id) + 1
		}
		if edges[id] == nil {
			edges[id] = map[int64]bool{}
		}
		for _, callee := range cg.Callees(node) {
			cid := int64(callee.ID())
			edges[id][cid] = true
			if reverse[cid] == nil {
				reverse[cid] = map[int64]bool{}
			}
			reverse[cid][id] = true
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return CGraph{
		order:   order,
		IDMap:   idmap,
		Edges:   edges,
		Keys:    keys,
		reverse: reverse,
	}
}

// Subgraph returns a new graph that is the original graph with only the nodes in include. Only the edges that have
// both the origin and destination nodes in the include nodes are kept in the resulting graph.
// The subgraph's order and IDMap are the same as in origin, so node indices stay consistent across subgraphs.
func Subgraph(original CGraph, include []int64) CGraph {
	keep := make(map[int64]bool, len(include))
	for _, i := range include {
		keep[i] = true
	}
	edges := make(map[int64]map[int64]bool, len(include))
	reverse := make(map[int64]map[int64]bool, len(include))
	for _, i := range include {
		edges[i] = map[int64]bool{}
		for e := range original.Edges[i] {
			if keep[e] {
				edges[i][e] = true
				if reverse[e] == nil {
					reverse[e] = map[int64]bool{}
				}
				reverse[e][i] = true
			}
		}
	}

	return CGraph{
		order:   original.order,
		IDMap:   original.IDMap,
		Edges:   edges,
		Keys:    append([]int64{}, include...),
		reverse: reverse,
	}
}

// Order implements the order of the graph.Iterator interface for the CGraph
func (c CGraph) Order() int {
	return c.order
}

// Visit implements the graph.Iterator interface for the CGraph
func (c CGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	for _, w := range funcutil.SortedKeys(c.Edges[int64(v)]) {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// *************** Graph interface implementation **********************

// Node implements the Graph interface
func (c CGraph) Node(id int64) graph.Node {
	n, ok := c.IDMap[id]
	if !ok {
		return nil
	}
	return n
}

// Nodes returns the set of nodes in the graph
func (c CGraph) Nodes() graph.Nodes {
	return newNodeSet(c.IDMap, c.Keys)
}

// From returns the set of nodes that id has an edge to
func (c CGraph) From(id int64) graph.Nodes {
	return newNodeSet(c.IDMap, funcutil.SortedKeys(c.Edges[id]))
}

// To returns the set of nodes that have an edge to id
func (c CGraph) To(id int64) graph.Nodes {
	return newNodeSet(c.IDMap, funcutil.SortedKeys(c.reverse[id]))
}

// HasEdgeBetween returns a boolean indicating whether an edge exists between the two node identifiers
func (c CGraph) HasEdgeBetween(xid, yid int64) bool {
	return c.Edges[xid][yid] || c.Edges[yid][xid]
}

// HasEdgeFromTo returns whether there is a directed edge from uid to vid
func (c CGraph) HasEdgeFromTo(uid, vid int64) bool {
	return c.Edges[uid][vid]
}

// Edge returns the edge between the two identifiers (nil if none exists)
func (c CGraph) Edge(uid, vid int64) graph.Edge {
	if c.Edges[uid][vid] {
		return CEdge{from: c.IDMap[uid], to: c.IDMap[vid]}
	}
	return nil
}

// *************** Nodes implementation **********************

// CNode is a wrapper around a program.Node that implements the graph.Node interface
type CNode struct {
	Node program.Node
}

// ID returns the id of the node
func (n CNode) ID() int64 {
	return int64(n.Node.ID())
}

func (n CNode) String() string {
	if n.Node == nil {
		return ""
	}
	return n.Node.String()
}

// NodeSet implements the graph.Nodes interface, an iterator over a set of nodes
type NodeSet struct {
	// nodes is the set of nodes in the iterator
	nodes map[int64]CNode

	// ids is the set of node ids in the iterator
	ids []int64

	// cur is the current index of the iterator. The current node is nodes[ids[cur]]. The iterator starts before
	// the first node.
	cur int
}

func newNodeSet(nodes map[int64]CNode, ids []int64) *NodeSet {
	return &NodeSet{nodes: nodes, ids: ids, cur: -1}
}

// Next moves the current node to the next, and returns true if such a node exists.
func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	ns.cur = len(ns.ids)
	return false
}

// Len returns the number of nodes remaining in the iterator
func (ns *NodeSet) Len() int {
	if ns.cur >= len(ns.ids) {
		return 0
	}
	return len(ns.ids) - ns.cur - 1
}

// Reset resets the iterator before its first node
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node return the current node in the set
func (ns *NodeSet) Node() graph.Node {
	if ns.cur < 0 || ns.cur >= len(ns.ids) {
		return nil
	}
	return ns.nodes[ns.ids[ns.cur]]
}

// *************** Edge implementation **********************

// CEdge implements the graph.Edge interface
type CEdge struct {
	from CNode
	to   CNode
}

// From returns the origin of the edge
func (e CEdge) From() graph.Node {
	return e.from
}

// To returns the destination of the edge
func (e CEdge) To() graph.Node {
	return e.to
}

// ReversedEdge returns a new value representing the reversed edge
func (e CEdge) ReversedEdge() graph.Edge {
	return CEdge{from: e.to, to: e.from}
}
