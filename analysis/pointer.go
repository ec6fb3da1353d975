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
	"go/types"

	"golang.org/x/tools/go/pointer"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// DoPointerAnalysis runs the pointer analysis on the program p, marking every value in the functions filtered by
// functionFilter as a query. The call graph is computed only when buildCallGraph is true.
func DoPointerAnalysis(p *ssa.Program, functionFilter func(*ssa.Function) bool, buildCallGraph bool) (*pointer.Result,
	error) {
	pCfg := &pointer.Config{
		Mains:           ssautil.MainPackages(p.AllPackages()),
		Reflection:      false,
		BuildCallGraph:  buildCallGraph,
		Queries:         make(map[ssa.Value]struct{}),
		IndirectQueries: make(map[ssa.Value]struct{}),
	}

	for function := range ssautil.AllFunctions(p) {
		if !functionFilter(function) {
			continue
		}
		for _, param := range function.Params {
			addValueQuery(pCfg, param)
		}
		for _, block := range function.Blocks {
			for _, instruction := range block.Instrs {
				addQuery(pCfg, instruction)
			}
		}
	}

	return pointer.Analyze(pCfg)
}

// addQuery adds a query for the operands of the instruction, and for the value it defines.
func addQuery(cfg *pointer.Config, instruction ssa.Instruction) {
	if instruction == nil {
		return
	}
	for _, operand := range instruction.Operands([]*ssa.Value{}) {
		if *operand != nil {
			addValueQuery(cfg, *operand)
		}
	}
	if v, ok := instruction.(ssa.Value); ok {
		addValueQuery(cfg, v)
	}
}

func addValueQuery(cfg *pointer.Config, v ssa.Value) {
	typ := v.Type()
	if typ == nil {
		return
	}
	if pointer.CanPoint(typ) {
		cfg.AddQuery(v)
	}
	indirectQuery(typ, v, cfg)
}

// indirectQuery wraps an update to the IndirectQuery of the pointer config. typ.Underlying() may panic despite typ
// being non-nil.
func indirectQuery(typ types.Type, v ssa.Value, cfg *pointer.Config) {
	defer func() {
		// occurs on a *ssa.opaqueType
		_ = recover()
	}()

	if ptrType, ok := typ.Underlying().(*types.Pointer); ok && pointer.CanPoint(ptrType.Elem()) {
		cfg.AddIndirectQuery(v)
	}
}
