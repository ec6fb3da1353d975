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

// Package programtest provides in-memory programs implementing the interfaces of the program package, for tests.
package programtest

import (
	"fmt"

	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/internal/funcutil"
)

// Method is a method of an in-memory program.
type Method struct {
	pkg    string
	recv   string
	name   string
	params int
}

// NewFunction returns a function without receiver with params parameters.
func NewFunction(pkg, name string, params int) *Method {
	return &Method{pkg: pkg, name: name, params: params}
}

// NewMethod returns a method of receiver type recv with params declared parameters, the receiver not included.
func NewMethod(pkg, recv, name string, params int) *Method {
	return &Method{pkg: pkg, recv: recv, name: name, params: params + 1}
}

func (m *Method) Name() string     { return m.name }
func (m *Method) Package() string  { return m.pkg }
func (m *Method) Receiver() string { return m.recv }
func (m *Method) IsStatic() bool   { return m.recv == "" }
func (m *Method) NumParams() int   { return m.params }

func (m *Method) String() string {
	if m.recv == "" {
		return m.pkg + "." + m.name
	}
	return fmt.Sprintf("(%s.%s).%s", m.pkg, m.recv, m.name)
}

// Node is a call graph node.
type Node struct {
	id     int
	method *Method
}

func (n *Node) ID() int                { return n.id }
func (n *Node) Method() program.Method { return n.method }
func (n *Node) String() string         { return fmt.Sprintf("n%d:%s", n.id, n.method) }

// Block is a basic block in context.
type Block struct {
	id     program.BlockID
	node   *Node
	instrs []program.Instruction
}

func (b *Block) ID() program.BlockID                 { return b.id }
func (b *Block) Node() program.Node                  { return b.node }
func (b *Block) Instructions() []program.Instruction { return b.instrs }

// Key is an abstract heap object.
type Key string

func (k Key) String() string { return string(k) }

type valueInNode struct {
	node  int
	value program.Value
}

// Program is an in-memory program. It implements the call graph, class hierarchy, supergraph and pointer analysis
// interfaces.
type Program struct {
	methods     []*Method
	dispatch    map[program.Method][]program.Method
	nodes       []*Node
	entrypoints []*Node
	callees     map[int][]program.Node
	blocks      []*Block
	nodeBlocks  map[int]int
	entries     map[int][]program.Block
	pointsTo    map[valueInNode][]program.InstanceKey
}

// New returns an empty program
func New() *Program {
	return &Program{
		dispatch:   map[program.Method][]program.Method{},
		callees:    map[int][]program.Node{},
		nodeBlocks: map[int]int{},
		entries:    map[int][]program.Block{},
		pointsTo:   map[valueInNode][]program.InstanceKey{},
	}
}

// AddMethod adds m to the methods of the hierarchy
func (p *Program) AddMethod(m *Method) *Method {
	p.methods = append(p.methods, m)
	return m
}

// SetTargets sets the methods a call to m dispatches to. By default, a call to m dispatches to m.
func (p *Program) SetTargets(m *Method, targets ...*Method) {
	p.dispatch[m] = funcutil.Map(targets, func(t *Method) program.Method { return t })
}

// AddNode adds a call graph node for m
func (p *Program) AddNode(m *Method) *Node {
	n := &Node{id: len(p.nodes), method: m}
	p.nodes = append(p.nodes, n)
	return n
}

// AddEntrypoint marks n as an entrypoint
func (p *Program) AddEntrypoint(n *Node) {
	p.entrypoints = append(p.entrypoints, n)
}

// AddCall adds a call graph edge from caller to callee
func (p *Program) AddCall(caller, callee *Node) {
	p.callees[caller.id] = append(p.callees[caller.id], callee)
}

// AddBlock adds a block to node n. The first entry block of a node should be added first.
func (p *Program) AddBlock(n *Node, entry bool, instrs ...program.Instruction) *Block {
	b := &Block{
		id:     program.BlockID{Node: n.id, Index: p.nodeBlocks[n.id]},
		node:   n,
		instrs: instrs,
	}
	p.nodeBlocks[n.id]++
	p.blocks = append(p.blocks, b)
	if entry {
		p.entries[n.id] = append(p.entries[n.id], b)
	}
	return b
}

// SetPointsTo sets the objects v points to in n
func (p *Program) SetPointsTo(n *Node, v program.Value, keys ...Key) {
	res := make([]program.InstanceKey, len(keys))
	for i, k := range keys {
		res[i] = k
	}
	p.pointsTo[valueInNode{n.id, v}] = res
}

// Program returns the bundle of interfaces implemented by p
func (p *Program) Program() program.Program {
	return program.Program{CallGraph: p, Hierarchy: p, Supergraph: p, Pointer: p}
}

// Nodes implements program.CallGraph
func (p *Program) Nodes() []program.Node {
	res := make([]program.Node, len(p.nodes))
	for i, n := range p.nodes {
		res[i] = n
	}
	return res
}

// NodesOf implements program.CallGraph
func (p *Program) NodesOf(m program.Method) []program.Node {
	var res []program.Node
	for _, n := range p.nodes {
		if program.Method(n.method) == m {
			res = append(res, n)
		}
	}
	return res
}

// Entrypoints implements program.CallGraph
func (p *Program) Entrypoints() []program.Node {
	res := make([]program.Node, len(p.entrypoints))
	for i, n := range p.entrypoints {
		res[i] = n
	}
	return res
}

// Callees implements program.CallGraph
func (p *Program) Callees(n program.Node) []program.Node {
	return p.callees[n.ID()]
}

// Methods implements program.ClassHierarchy
func (p *Program) Methods() []program.Method {
	return funcutil.Map(p.methods, func(m *Method) program.Method { return m })
}

// PossibleTargets implements program.ClassHierarchy
func (p *Program) PossibleTargets(m program.Method) []program.Method {
	if targets, ok := p.dispatch[m]; ok {
		return targets
	}
	return []program.Method{m}
}

// Blocks implements program.Supergraph
func (p *Program) Blocks() []program.Block {
	res := make([]program.Block, len(p.blocks))
	for i, b := range p.blocks {
		res[i] = b
	}
	return res
}

// EntriesForProcedure implements program.Supergraph
func (p *Program) EntriesForProcedure(n program.Node) []program.Block {
	return p.entries[n.ID()]
}

// PointsTo implements program.PointerAnalysis
func (p *Program) PointsTo(n program.Node, v program.Value) []program.InstanceKey {
	return p.pointsTo[valueInNode{n.ID(), v}]
}
