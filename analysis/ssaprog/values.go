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
	"github.com/ujchoe/SCanDroid/analysis/program"
	"golang.org/x/tools/go/ssa"
)

// numbering maps the values of a function to value numbers and back
type numbering struct {
	numbers map[ssa.Value]program.Value
	values  []ssa.Value
}

func numberValues(fn *ssa.Function) *numbering {
	n := &numbering{numbers: map[ssa.Value]program.Value{}}
	for _, param := range fn.Params {
		n.add(param)
	}
	for _, freeVar := range fn.FreeVars {
		n.add(freeVar)
	}
	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			if v, ok := instr.(ssa.Value); ok {
				n.add(v)
			}
		}
	}
	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			for _, operand := range instr.Operands(nil) {
				if *operand != nil {
					n.add(*operand)
				}
			}
		}
	}
	return n
}

func (n *numbering) add(v ssa.Value) {
	if _, ok := n.numbers[v]; ok {
		return
	}
	n.values = append(n.values, v)
	n.numbers[v] = program.Value(len(n.values))
}

// number returns the value number of v, NoValue if v is not a value of the function
func (n *numbering) number(v ssa.Value) program.Value {
	if v == nil {
		return program.NoValue
	}
	return n.numbers[v]
}

func (n *numbering) numberAll(values []ssa.Value) []program.Value {
	res := make([]program.Value, len(values))
	for i, v := range values {
		res[i] = n.number(v)
	}
	return res
}

// value returns the SSA value of number v, nil if there is none
func (n *numbering) value(v program.Value) ssa.Value {
	if v <= program.NoValue || int(v) > len(n.values) {
		return nil
	}
	return n.values[v-1]
}
