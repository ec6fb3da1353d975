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
	"go/token"
	"go/types"

	"github.com/ujchoe/SCanDroid/analysis/program"
	"golang.org/x/tools/go/ssa"
)

// convert returns the instructions instr translates to. Calls without static callee translate to one invocation per
// callee the call graph resolves at the site. Field and element addresses translate to nothing; other instructions
// with no equivalent translate to program.Other.
func (p *Program) convert(n *Node, instr ssa.Instruction, sites map[ssa.CallInstruction][]*ssa.Function) []program.Instruction {
	num := n.values
	switch instr := instr.(type) {
	case ssa.CallInstruction:
		return p.convertCall(num, instr, sites[instr])

	case *ssa.Return:
		switch len(instr.Results) {
		case 0:
			return one(&program.Return{})
		case 1:
			return one(&program.Return{Result: num.number(instr.Results[0])})
		}

	case *ssa.Alloc:
		return one(&program.New{Type: typeString(deref(instr.Type())), Result: num.number(instr)})
	case *ssa.MakeMap:
		return one(&program.New{Type: typeString(instr.Type()), Result: num.number(instr)})
	case *ssa.MakeSlice:
		return one(&program.New{Type: typeString(instr.Type()), Result: num.number(instr)})
	case *ssa.MakeChan:
		return one(&program.New{Type: typeString(instr.Type()), Result: num.number(instr)})

	case *ssa.Store:
		switch addr := instr.Addr.(type) {
		case *ssa.FieldAddr:
			f, ft := fieldOf(addr.X.Type(), addr.Field)
			return one(&program.Put{Field: f, FieldType: ft, Ref: num.number(addr.X), Val: num.number(instr.Val)})
		case *ssa.Global:
			f, ft := globalField(addr)
			return one(&program.Put{Field: f, FieldType: ft, Static: true, Val: num.number(instr.Val)})
		case *ssa.IndexAddr:
			return one(&program.ArrayStore{Array: num.number(addr.X), Index: num.number(addr.Index),
				Val: num.number(instr.Val)})
		}

	case *ssa.MapUpdate:
		return one(&program.ArrayStore{Array: num.number(instr.Map), Index: num.number(instr.Key),
			Val: num.number(instr.Value)})

	case *ssa.UnOp:
		if instr.Op != token.MUL {
			break
		}
		switch addr := instr.X.(type) {
		case *ssa.FieldAddr:
			f, ft := fieldOf(addr.X.Type(), addr.Field)
			return one(&program.Get{Field: f, FieldType: ft, Ref: num.number(addr.X), Result: num.number(instr)})
		case *ssa.Global:
			f, ft := globalField(addr)
			return one(&program.Get{Field: f, FieldType: ft, Static: true, Result: num.number(instr)})
		case *ssa.IndexAddr:
			return one(&program.ArrayLoad{Array: num.number(addr.X), Index: num.number(addr.Index),
				Result: num.number(instr)})
		}

	case *ssa.FieldAddr, *ssa.IndexAddr:
		// the loads and stores through the address are the Get, Put, ArrayLoad and ArrayStore
		return nil

	case *ssa.Field:
		f, ft := fieldOf(instr.X.Type(), instr.Field)
		return one(&program.Get{Field: f, FieldType: ft, Ref: num.number(instr.X), Result: num.number(instr)})

	case *ssa.Index:
		return one(&program.ArrayLoad{Array: num.number(instr.X), Index: num.number(instr.Index),
			Result: num.number(instr)})

	case *ssa.Lookup:
		if !instr.CommaOk {
			return one(&program.ArrayLoad{Array: num.number(instr.X), Index: num.number(instr.Index),
				Result: num.number(instr)})
		}
	}
	return one(&program.Other{Op: instr.String()})
}

func (p *Program) convertCall(num *numbering, instr ssa.CallInstruction, callees []*ssa.Function) []program.Instruction {
	common := instr.Common()
	result := program.NoValue
	if call, ok := instr.(*ssa.Call); ok && common.Signature().Results().Len() > 0 {
		result = num.number(call)
	}

	if common.IsInvoke() {
		args := append([]program.Value{num.number(common.Value)}, num.numberAll(common.Args)...)
		return one(&program.Invoke{
			Target: p.abstractMethod(common.Method),
			Mode:   program.InterfaceInvoke,
			Args:   args,
			Result: result,
		})
	}
	if _, isBuiltin := common.Value.(*ssa.Builtin); isBuiltin {
		return one(&program.Other{Op: instr.String()})
	}
	args := num.numberAll(common.Args)
	if callee := common.StaticCallee(); callee != nil {
		return one(&program.Invoke{Target: p.method(callee), Mode: program.StaticInvoke, Args: args, Result: result})
	}

	var res []program.Instruction
	for _, callee := range callees {
		res = append(res, &program.Invoke{Target: p.method(callee), Mode: program.VirtualInvoke, Args: args,
			Result: result})
	}
	if len(res) == 0 {
		return one(&program.Other{Op: instr.String()})
	}
	return res
}

func one(instr program.Instruction) []program.Instruction {
	return []program.Instruction{instr}
}

// fieldOf returns the field i of the struct type t, or of the struct t points to, and the type of the field
func fieldOf(t types.Type, i int) (program.Field, string) {
	t = deref(t)
	var typeName string
	if named, ok := t.(*types.Named); ok {
		typeName = named.Obj().Name()
	}
	st, ok := t.Underlying().(*types.Struct)
	if !ok || i < 0 || i >= st.NumFields() {
		return program.Field{Type: typeName, Name: fmt.Sprintf("field%d", i)}, ""
	}
	f := st.Field(i)
	pkg := ""
	if f.Pkg() != nil {
		pkg = f.Pkg().Path()
	}
	return program.Field{Package: pkg, Type: typeName, Name: f.Name()}, types.TypeString(f.Type(), qualifier(pkg))
}

func globalField(g *ssa.Global) (program.Field, string) {
	pkg := ""
	if g.Pkg != nil {
		pkg = g.Pkg.Pkg.Path()
	}
	return program.Field{Package: pkg, Name: g.Name()}, types.TypeString(deref(g.Type()), qualifier(pkg))
}

func deref(t types.Type) types.Type {
	if ptr, ok := t.Underlying().(*types.Pointer); ok {
		return ptr.Elem()
	}
	return t
}

func typeString(t types.Type) string {
	return types.TypeString(t, nil)
}
