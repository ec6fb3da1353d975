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

package program

import "fmt"

// Value is the number of a value inside a single method body. Parameters of a method with n declared parameters
// are the values 1..n; for an instance method, value 1 is the receiver.
type Value int

// NoValue is the value number of an instruction that does not define anything.
const NoValue Value = 0

// Method is a method or function that can be the target of a call.
type Method interface {
	// Name is the short name of the method, e.g. "readInput"
	Name() string

	// Package is the path of the package declaring the method
	Package() string

	// Receiver is the name of the receiver type, or the empty string for functions.
	Receiver() string

	// IsStatic returns true when the method has no receiver
	IsStatic() bool

	// NumParams is the number of declared parameters, the receiver included.
	NumParams() int

	String() string
}

// Node is a method in a calling context, i.e. a node of the call graph.
type Node interface {
	ID() int
	Method() Method
	String() string
}

// BlockID identifies a basic block in context: the block Index of the call graph node Node.
type BlockID struct {
	Node  int
	Index int
}

func (b BlockID) String() string {
	return fmt.Sprintf("n%d:b%d", b.Node, b.Index)
}

// Less orders block ids by node, then by block index.
func (b BlockID) Less(other BlockID) bool {
	if b.Node != other.Node {
		return b.Node < other.Node
	}
	return b.Index < other.Index
}

// Block is a node of the supergraph.
type Block interface {
	ID() BlockID
	Node() Node
	Instructions() []Instruction
}

// Field is a qualified field. Package-level variables are represented as static fields with an empty Type.
type Field struct {
	Package string
	Type    string
	Name    string
}

func (f Field) String() string {
	if f.Type == "" {
		return f.Package + "." + f.Name
	}
	return f.Package + "." + f.Type + "." + f.Name
}

// InstanceKey is an abstract heap object computed by the pointer analysis. Implementations must be comparable, and
// String should tell distinct keys apart: seeds are ordered by it.
type InstanceKey interface {
	String() string
}

// CallGraph is the call graph of the program.
type CallGraph interface {
	// Nodes returns all the nodes of the call graph, ordered by id
	Nodes() []Node

	// NodesOf returns the nodes representing the contexts in which m is analyzed
	NodesOf(m Method) []Node

	// Entrypoints returns the nodes the analysis starts from
	Entrypoints() []Node

	// Callees returns the nodes n may call
	Callees(n Node) []Node
}

// ClassHierarchy resolves methods and dispatch targets.
type ClassHierarchy interface {
	// Methods returns every method known to the hierarchy
	Methods() []Method

	// PossibleTargets returns the concrete methods a call to m may dispatch to. For a method that is not
	// dispatched dynamically, this is m itself.
	PossibleTargets(m Method) []Method
}

// Supergraph is the interprocedural control flow graph whose nodes are basic blocks in context.
type Supergraph interface {
	// Blocks returns every block of the supergraph, in a deterministic order
	Blocks() []Block

	// EntriesForProcedure returns the entry blocks of the node, if any.
	EntriesForProcedure(n Node) []Block
}

// PointerAnalysis answers points-to queries on values in context.
type PointerAnalysis interface {
	// PointsTo returns the abstract objects v may point to in node n. The result is nil when v is not a pointer
	// or when the analysis has no information about it.
	PointsTo(n Node, v Value) []InstanceKey
}

// Program bundles the inputs of the seeding engine.
type Program struct {
	CallGraph  CallGraph
	Hierarchy  ClassHierarchy
	Supergraph Supergraph
	Pointer    PointerAnalysis
}
