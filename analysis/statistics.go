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

package analysis

import (
	"github.com/ujchoe/SCanDroid/analysis/program"
	"golang.org/x/tools/go/ssa"
)

// Result holds general statistics about the SSA functions of a program and the instructions the seeding engine
// sees for them.
type Result struct {
	NumberOfFunctions         uint
	NumberOfNonemptyFunctions uint
	NumberOfBlocks            uint
	NumberOfInstructions      uint

	// InstructionKinds counts the engine instructions by kind: invoke, get, put, ...
	InstructionKinds map[string]uint
}

// SSAStatistics returns a Result with general statistics about the SSA representation of the functions. Only the
// functions whose package path is accepted by pkgFilter are counted; synthetic functions without package are
// always counted.
func SSAStatistics(functions map[*ssa.Function]bool, pkgFilter func(string) bool) Result {
	result := Result{InstructionKinds: map[string]uint{}}

	for f := range functions {
		if f.Pkg != nil && !pkgFilter(f.Pkg.Pkg.Path()) {
			continue
		}
		result.NumberOfFunctions++

		if len(f.Blocks) != 0 {
			result.NumberOfNonemptyFunctions++
			for _, b := range f.Blocks {
				result.NumberOfBlocks++
				result.NumberOfInstructions += uint(len(b.Instrs))
			}
		}
	}

	return result
}

// CountInstructionKinds adds the instructions of the blocks to the InstructionKinds of r
func (r *Result) CountInstructionKinds(blocks []program.Block) {
	if r.InstructionKinds == nil {
		r.InstructionKinds = map[string]uint{}
	}
	for _, b := range blocks {
		for _, instr := range b.Instructions() {
			r.InstructionKinds[instructionKind(instr)]++
		}
	}
}

func instructionKind(instr program.Instruction) string {
	switch instr := instr.(type) {
	case *program.Invoke:
		return "invoke-" + instr.Mode.String()
	case *program.ArrayLoad:
		return "array-load"
	case *program.ArrayStore:
		return "array-store"
	case *program.Return:
		return "return"
	case *program.Get:
		if instr.Static {
			return "get-static"
		}
		return "get"
	case *program.Put:
		if instr.Static {
			return "put-static"
		}
		return "put"
	case *program.New:
		return "new"
	default:
		return "other"
	}
}
