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

package ssaprog

import (
	"fmt"
	"go/types"
	"sort"

	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/internal/funcutil"
	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/pointer"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Options configures the construction of a Program
type Options struct {
	// IsEntrypoint selects the entrypoints of the call graph. By default, the main and init functions of the main
	// packages are the entrypoints.
	IsEntrypoint func(*ssa.Function) bool
}

// Program implements the call graph, class hierarchy, supergraph and pointer analysis interfaces of the program
// package over an SSA program. A Program is not safe for concurrent use.
type Program struct {
	prog    *ssa.Program
	pointer *pointer.Result

	methods  map[*ssa.Function]*Method
	abstract map[*types.Func]*Method
	targets  map[*Method][]program.Method
	all      []program.Method

	nodes       []*Node
	nodeOf      map[*callgraph.Node]*Node
	cg          *callgraph.Graph
	entrypoints []program.Node
	blocks      []program.Block
}

// Node is a call graph node: a function of the program
type Node struct {
	cgNode *callgraph.Node
	method *Method
	values *numbering
	blocks []program.Block
}

func (n *Node) ID() int                { return n.cgNode.ID }
func (n *Node) Method() program.Method { return n.method }
func (n *Node) String() string         { return fmt.Sprintf("n%d:%s", n.cgNode.ID, n.method) }

// Function returns the SSA function of the node
func (n *Node) Function() *ssa.Function { return n.cgNode.Func }

// Value returns the SSA value of number v, nil if there is none
func (n *Node) Value(v program.Value) ssa.Value { return n.values.value(v) }

// ValueNumber returns the number of the SSA value v, NoValue if v is not a value of the function
func (n *Node) ValueNumber(v ssa.Value) program.Value { return n.values.number(v) }

// Instructions returns the instructions of all the blocks of the node, in block order
func (n *Node) Instructions() []program.Instruction {
	var res []program.Instruction
	for _, b := range n.blocks {
		res = append(res, b.Instructions()...)
	}
	return res
}

// Block is a basic block of the function of a node
type Block struct {
	node   *Node
	bb     *ssa.BasicBlock
	instrs []program.Instruction
}

func (b *Block) ID() program.BlockID                 { return program.BlockID{Node: b.node.ID(), Index: b.bb.Index} }
func (b *Block) Node() program.Node                  { return b.node }
func (b *Block) Instructions() []program.Instruction { return b.instrs }

// BasicBlock returns the SSA basic block
func (b *Block) BasicBlock() *ssa.BasicBlock { return b.bb }

// InstanceKey is an abstract object of the pointer analysis. Keys are compared by label contents, since the pointer
// analysis allocates a new label every time it reports an object.
type InstanceKey struct {
	label pointer.Label
	desc  string
}

func (k InstanceKey) String() string { return k.desc }

// Label returns the label of the object in the pointer analysis
func (k InstanceKey) Label() *pointer.Label { return &k.label }

// New returns the program of prog with the call graph cg. ptr is the result of the pointer analysis of prog, and
// may be nil, in which case values point to nothing.
func New(prog *ssa.Program, cg *callgraph.Graph, ptr *pointer.Result, opts Options) *Program {
	p := &Program{
		prog:     prog,
		pointer:  ptr,
		methods:  map[*ssa.Function]*Method{},
		abstract: map[*types.Func]*Method{},
		targets:  map[*Method][]program.Method{},
		nodeOf:   map[*callgraph.Node]*Node{},
		cg:       cg,
	}
	isEntrypoint := opts.IsEntrypoint
	if isEntrypoint == nil {
		isEntrypoint = mainEntrypoints(prog)
	}

	cgNodes := make([]*callgraph.Node, 0, len(cg.Nodes))
	for fn, cgNode := range cg.Nodes {
		if fn != nil {
			cgNodes = append(cgNodes, cgNode)
		}
	}
	sort.Slice(cgNodes, func(i, j int) bool { return cgNodes[i].ID < cgNodes[j].ID })

	for _, cgNode := range cgNodes {
		n := &Node{cgNode: cgNode, method: p.method(cgNode.Func), values: numberValues(cgNode.Func)}
		p.nodes = append(p.nodes, n)
		p.nodeOf[cgNode] = n
		if isEntrypoint(cgNode.Func) {
			p.entrypoints = append(p.entrypoints, n)
		}
	}
	for _, n := range p.nodes {
		p.buildBlocks(n)
	}
	return p
}

func mainEntrypoints(prog *ssa.Program) func(*ssa.Function) bool {
	roots := map[*ssa.Function]bool{}
	for _, m := range ssautil.MainPackages(prog.AllPackages()) {
		roots[m.Func("main")] = true
		roots[m.Func("init")] = true
	}
	return func(f *ssa.Function) bool { return roots[f] }
}

func (p *Program) buildBlocks(n *Node) {
	sites := map[ssa.CallInstruction][]*ssa.Function{}
	for _, e := range n.cgNode.Out {
		if e.Site != nil && e.Callee.Func != nil {
			sites[e.Site] = append(sites[e.Site], e.Callee.Func)
		}
	}
	for site, callees := range sites {
		sort.Slice(callees, func(i, j int) bool { return callees[i].String() < callees[j].String() })
		sites[site] = funcutil.Uniq(callees)
	}

	for _, bb := range n.cgNode.Func.Blocks {
		b := &Block{node: n, bb: bb}
		for _, instr := range bb.Instrs {
			b.instrs = append(b.instrs, p.convert(n, instr, sites)...)
		}
		n.blocks = append(n.blocks, b)
		p.blocks = append(p.blocks, b)
	}
}

func (p *Program) method(fn *ssa.Function) *Method {
	if m, ok := p.methods[fn]; ok {
		return m
	}
	m := newFunctionMethod(fn)
	p.methods[fn] = m
	return m
}

func (p *Program) abstractMethod(obj *types.Func) *Method {
	if m, ok := p.abstract[obj]; ok {
		return m
	}
	m := newAbstractMethod(obj)
	p.abstract[obj] = m
	return m
}

// Program returns the bundle of interfaces implemented by p
func (p *Program) Program() program.Program {
	return program.Program{CallGraph: p, Hierarchy: p, Supergraph: p, Pointer: p}
}

// SSA returns the SSA program
func (p *Program) SSA() *ssa.Program { return p.prog }

// CallGraph returns the call graph the program was built with
func (p *Program) CallGraph() *callgraph.Graph { return p.cg }

// ********* program.CallGraph *********

// Nodes returns the nodes of the call graph, ordered by ID
func (p *Program) Nodes() []program.Node {
	res := make([]program.Node, len(p.nodes))
	for i, n := range p.nodes {
		res[i] = n
	}
	return res
}

// NodesOf returns the node of the function of m. Abstract methods have no node.
func (p *Program) NodesOf(m program.Method) []program.Node {
	sm, ok := m.(*Method)
	if !ok || sm.fn == nil {
		return nil
	}
	if n, ok := p.nodeOf[p.cg.Nodes[sm.fn]]; ok {
		return []program.Node{n}
	}
	return nil
}

// Entrypoints returns the nodes of the entrypoints
func (p *Program) Entrypoints() []program.Node {
	return p.entrypoints
}

// Callees returns the nodes n calls, ordered by ID
func (p *Program) Callees(n program.Node) []program.Node {
	node, ok := n.(*Node)
	if !ok {
		return nil
	}
	var callees []*Node
	for _, e := range node.cgNode.Out {
		if callee, ok := p.nodeOf[e.Callee]; ok {
			callees = append(callees, callee)
		}
	}
	res := funcutil.Map(funcutil.Uniq(callees), func(c *Node) program.Node { return c })
	sort.Slice(res, func(i, j int) bool { return res[i].ID() < res[j].ID() })
	return res
}

// ********* program.ClassHierarchy *********

// Methods returns all the functions of the program and the methods of its interface types, ordered by name.
func (p *Program) Methods() []program.Method {
	if p.all != nil {
		return p.all
	}
	var methods []*Method
	for fn := range ssautil.AllFunctions(p.prog) {
		methods = append(methods, p.method(fn))
	}
	var ifaceMethods []*types.Func
	for _, pkg := range p.prog.AllPackages() {
		for _, member := range pkg.Members {
			t, ok := member.(*ssa.Type)
			if !ok {
				continue
			}
			iface, ok := t.Type().Underlying().(*types.Interface)
			if !ok {
				continue
			}
			for i := 0; i < iface.NumMethods(); i++ {
				ifaceMethods = append(ifaceMethods, iface.Method(i))
			}
		}
	}
	methods = append(methods, funcutil.Map(funcutil.Uniq(ifaceMethods), p.abstractMethod)...)
	sort.SliceStable(methods, func(i, j int) bool { return methods[i].String() < methods[j].String() })
	p.all = funcutil.Map(methods, func(m *Method) program.Method { return m })
	return p.all
}

// PossibleTargets returns the functions a call to m may dispatch to. A function only dispatches to itself; an
// interface method dispatches to the methods of the runtime types that implement its interface.
func (p *Program) PossibleTargets(m program.Method) []program.Method {
	sm, ok := m.(*Method)
	if !ok {
		return nil
	}
	if sm.fn != nil {
		return []program.Method{sm}
	}
	if targets, ok := p.targets[sm]; ok {
		return targets
	}
	targets := p.implementations(sm.obj)
	p.targets[sm] = targets
	return targets
}

func (p *Program) implementations(obj *types.Func) []program.Method {
	recv := obj.Type().(*types.Signature).Recv()
	if recv == nil {
		return nil
	}
	iface, ok := recv.Type().Underlying().(*types.Interface)
	if !ok {
		return nil
	}
	found := map[*Method]bool{}
	var res []program.Method
	for _, t := range p.prog.RuntimeTypes() {
		if types.IsInterface(t) || !types.Implements(t, iface) {
			continue
		}
		sel := p.prog.MethodSets.MethodSet(t).Lookup(obj.Pkg(), obj.Name())
		if sel == nil {
			continue
		}
		if fn := p.prog.MethodValue(sel); fn != nil {
			if m := p.method(fn); !found[m] {
				found[m] = true
				res = append(res, m)
			}
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}

// ********* program.Supergraph *********

// Blocks returns the blocks of all the nodes, ordered by node ID and block index
func (p *Program) Blocks() []program.Block {
	return p.blocks
}

// EntriesForProcedure returns the entry block of the function of n. External functions have no blocks.
func (p *Program) EntriesForProcedure(n program.Node) []program.Block {
	node, ok := n.(*Node)
	if !ok || len(node.blocks) == 0 {
		return nil
	}
	return node.blocks[:1]
}

// ********* program.PointerAnalysis *********

// PointsTo returns the objects the value v of n may point to, ordered by their description. Values that were not
// queried in the pointer analysis point to nothing.
func (p *Program) PointsTo(n program.Node, v program.Value) []program.InstanceKey {
	node, ok := n.(*Node)
	if p.pointer == nil || !ok {
		return nil
	}
	val := node.values.value(v)
	if val == nil {
		return nil
	}
	ptr, ok := p.pointer.Queries[val]
	if !ok {
		return nil
	}
	keys := funcutil.Map(ptr.PointsTo().Labels(), func(l *pointer.Label) program.InstanceKey { return p.instanceKey(l) })
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// InstanceKeys returns all the objects that a queried value may point to, ordered by their description
func (p *Program) InstanceKeys() []program.InstanceKey {
	if p.pointer == nil {
		return nil
	}
	var all []InstanceKey
	for _, ptr := range p.pointer.Queries {
		for _, label := range ptr.PointsTo().Labels() {
			all = append(all, p.instanceKey(label))
		}
	}
	keys := funcutil.Map(funcutil.Uniq(all), func(k InstanceKey) program.InstanceKey { return k })
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func (p *Program) instanceKey(label *pointer.Label) InstanceKey {
	desc := label.String()
	if pos := label.Pos(); pos.IsValid() {
		desc = fmt.Sprintf("%s@%s", desc, p.prog.Fset.Position(pos))
	} else if v := label.Value(); v != nil && v.Parent() != nil {
		// synthetic allocations share a description, the defining value tells them apart
		desc = fmt.Sprintf("%s@%s:%s", desc, v.Parent(), v.Name())
	}
	return InstanceKey{label: *label, desc: desc}
}
