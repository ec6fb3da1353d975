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

import (
	"fmt"
	"strings"
)

// Instruction is one of the instruction kinds below. The set is closed: the seeding engine only inspects
// invocations, and the summary writer rejects everything it does not know how to serialize.
type Instruction interface {
	fmt.Stringer
	instruction()
}

// InvokeMode is the dispatch mode of a call.
type InvokeMode int

const (
	// StaticInvoke is a call to a function or a statically resolved method
	StaticInvoke InvokeMode = iota
	// VirtualInvoke is a call dispatched on the dynamic type of the receiver
	VirtualInvoke
	// InterfaceInvoke is a call through an interface method
	InterfaceInvoke
)

func (m InvokeMode) String() string {
	switch m {
	case StaticInvoke:
		return "static"
	case VirtualInvoke:
		return "virtual"
	case InterfaceInvoke:
		return "interface"
	default:
		return fmt.Sprintf("invoke(%d)", int(m))
	}
}

// Invoke is a call to Target. When Target is not static, Args[0] is the receiver.
type Invoke struct {
	Target Method
	Mode   InvokeMode
	Args   []Value
	Result Value
}

// ArrayLoad is Result = Array[Index]
type ArrayLoad struct {
	Array  Value
	Index  Value
	Result Value
}

// ArrayStore is Array[Index] = Val
type ArrayStore struct {
	Array Value
	Index Value
	Val   Value
}

// Return returns Result, or nothing when Result is NoValue.
type Return struct {
	Result Value
}

// Get reads Field. Ref is the object read from, NoValue when Static.
type Get struct {
	Field     Field
	FieldType string
	Static    bool
	Ref       Value
	Result    Value
}

// Put writes Val in Field. Ref is the object written to, NoValue when Static.
type Put struct {
	Field     Field
	FieldType string
	Static    bool
	Ref       Value
	Val       Value
}

// New allocates an object of type Type.
type New struct {
	Type   string
	Result Value
}

// Other is any instruction the engine does not inspect: arithmetic, branches, phis, conversions...
type Other struct {
	Op string
}

func (*Invoke) instruction()     {}
func (*ArrayLoad) instruction()  {}
func (*ArrayStore) instruction() {}
func (*Return) instruction()     {}
func (*Get) instruction()        {}
func (*Put) instruction()        {}
func (*New) instruction()        {}
func (*Other) instruction()      {}

func (i *Invoke) String() string {
	args := make([]string, len(i.Args))
	for k, a := range i.Args {
		args[k] = fmt.Sprintf("v%d", a)
	}
	call := fmt.Sprintf("invoke %s %s(%s)", i.Mode, i.Target, strings.Join(args, ", "))
	if i.Result != NoValue {
		return fmt.Sprintf("v%d = %s", i.Result, call)
	}
	return call
}

func (i *ArrayLoad) String() string {
	return fmt.Sprintf("v%d = v%d[v%d]", i.Result, i.Array, i.Index)
}

func (i *ArrayStore) String() string {
	return fmt.Sprintf("v%d[v%d] = v%d", i.Array, i.Index, i.Val)
}

func (i *Return) String() string {
	if i.Result == NoValue {
		return "return"
	}
	return fmt.Sprintf("return v%d", i.Result)
}

func (i *Get) String() string {
	if i.Static {
		return fmt.Sprintf("v%d = getstatic %s", i.Result, i.Field)
	}
	return fmt.Sprintf("v%d = getfield v%d.%s", i.Result, i.Ref, i.Field.Name)
}

func (i *Put) String() string {
	if i.Static {
		return fmt.Sprintf("putstatic %s = v%d", i.Field, i.Val)
	}
	return fmt.Sprintf("putfield v%d.%s = v%d", i.Ref, i.Field.Name, i.Val)
}

func (i *New) String() string {
	return fmt.Sprintf("v%d = new %s", i.Result, i.Type)
}

func (i *Other) String() string {
	return i.Op
}

// Invokes returns the invoke instructions of the block, in order.
func Invokes(b Block) []*Invoke {
	var res []*Invoke
	for _, instr := range b.Instructions() {
		if inv, ok := instr.(*Invoke); ok {
			res = append(res, inv)
		}
	}
	return res
}
