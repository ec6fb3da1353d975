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

package domain

import (
	"fmt"

	"github.com/ujchoe/SCanDroid/analysis/program"
)

// A CodeElement identifies what is tainted. The set of code elements is closed: LocalElement, StaticFieldElement,
// ReturnElement and InstanceKeyElement. Two code elements are the same taint source iff they are equal.
type CodeElement interface {
	fmt.Stringer
	codeElement()
}

// LocalElement is the local value Value of the method of the call graph node Node.
type LocalElement struct {
	Node  int
	Value program.Value
}

// StaticFieldElement is a static field, or a package-level variable.
type StaticFieldElement struct {
	Field program.Field
}

// ReturnElement is the return value of the method of the call graph node Node. Seeding never creates one: source
// specs taint the call's result value instead, and return elements are reserved for the facts a solver propagates out
// of a callee.
type ReturnElement struct {
	Node int
}

// InstanceKeyElement is an abstract heap object.
type InstanceKeyElement struct {
	Key program.InstanceKey
}

func (LocalElement) codeElement()       {}
func (StaticFieldElement) codeElement() {}
func (ReturnElement) codeElement()      {}
func (InstanceKeyElement) codeElement() {}

func (e LocalElement) String() string       { return fmt.Sprintf("local(n%d:v%d)", e.Node, e.Value) }
func (e StaticFieldElement) String() string { return fmt.Sprintf("static(%s)", e.Field) }
func (e ReturnElement) String() string      { return fmt.Sprintf("return(n%d)", e.Node) }
func (e InstanceKeyElement) String() string { return fmt.Sprintf("ik(%s)", e.Key) }

// IsLocal returns true when the element lives in a single method body and does not survive outside of it.
func IsLocal(e CodeElement) bool {
	_, ok := e.(LocalElement)
	return ok
}

// A FlowType records the reason a code element entered the taint set at some block. The set of flow types is
// closed: EntryArgFlow, CallArgFlow, CallReturnFlow, StaticFieldFlow and InstanceKeyFlow.
type FlowType interface {
	fmt.Stringer
	// Block is the block where the flow starts
	Block() program.BlockID
	flowType()
}

// EntryArgFlow is the flow of the Arg-th argument (1-based, receiver excluded) into a method, at its entry block.
type EntryArgFlow struct {
	At  program.BlockID
	Arg int
}

// CallArgFlow is the flow of the Arg-th argument (1-based, receiver excluded) of a call in the block At.
type CallArgFlow struct {
	At  program.BlockID
	Arg int
}

// CallReturnFlow is the flow of the value returned by a call in the block At.
type CallReturnFlow struct {
	At program.BlockID
}

// StaticFieldFlow is the flow of an ambient static field, seeded at the block At.
type StaticFieldFlow struct {
	At    program.BlockID
	Field program.Field
}

// InstanceKeyFlow is the flow of the heap object Key, reached from a value tainted at the block At.
type InstanceKeyFlow struct {
	At  program.BlockID
	Key program.InstanceKey
}

func (f EntryArgFlow) Block() program.BlockID    { return f.At }
func (f CallArgFlow) Block() program.BlockID     { return f.At }
func (f CallReturnFlow) Block() program.BlockID  { return f.At }
func (f StaticFieldFlow) Block() program.BlockID { return f.At }
func (f InstanceKeyFlow) Block() program.BlockID { return f.At }

func (EntryArgFlow) flowType()    {}
func (CallArgFlow) flowType()     {}
func (CallReturnFlow) flowType()  {}
func (StaticFieldFlow) flowType() {}
func (InstanceKeyFlow) flowType() {}

func (f EntryArgFlow) String() string   { return fmt.Sprintf("EntryArgFlow(%s, arg %d)", f.At, f.Arg) }
func (f CallArgFlow) String() string    { return fmt.Sprintf("CallArgFlow(%s, arg %d)", f.At, f.Arg) }
func (f CallReturnFlow) String() string { return fmt.Sprintf("CallReturnFlow(%s)", f.At) }
func (f StaticFieldFlow) String() string {
	return fmt.Sprintf("StaticFieldFlow(%s, %s)", f.At, f.Field)
}
func (f InstanceKeyFlow) String() string { return fmt.Sprintf("InstanceKeyFlow(%s, %s)", f.At, f.Key) }

// DomainElement is a fact of the taint analysis: a code element together with the flow that tainted it.
type DomainElement struct {
	Code CodeElement
	Flow FlowType
}

func (d DomainElement) String() string {
	return fmt.Sprintf("<%s, %s>", d.Code, d.Flow)
}
