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
	"fmt"
	"strings"

	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/callgraph/cha"
	"golang.org/x/tools/go/callgraph/rta"
	"golang.org/x/tools/go/callgraph/static"
	"golang.org/x/tools/go/callgraph/vta"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// CallgraphAnalysisMode is the analysis used to build the call graph
type CallgraphAnalysisMode uint64

const (
	PointerAnalysis        CallgraphAnalysisMode = iota // PointerAnalysis is over-approximating (slow)
	StaticAnalysis                                      // StaticAnalysis is under-approximating (fast)
	ClassHierarchyAnalysis                              // ClassHierarchyAnalysis is a coarse over-approximation (fast)
	RapidTypeAnalysis                                   // RapidTypeAnalysis starts from the main and init functions
	VariableTypeAnalysis                                // VariableTypeAnalysis refines the static call graph
)

var callgraphModeNames = map[CallgraphAnalysisMode]string{
	PointerAnalysis:        "pointer",
	StaticAnalysis:         "static",
	ClassHierarchyAnalysis: "cha",
	RapidTypeAnalysis:      "rta",
	VariableTypeAnalysis:   "vta",
}

func (mode CallgraphAnalysisMode) String() string {
	if s, ok := callgraphModeNames[mode]; ok {
		return s
	}
	return fmt.Sprintf("callgraph-mode(%d)", uint64(mode))
}

// ParseCallgraphAnalysisMode returns the mode named s, as written in the config file
func ParseCallgraphAnalysisMode(s string) (CallgraphAnalysisMode, error) {
	for mode, name := range callgraphModeNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unsupported callgraph analysis %q, expected one of pointer, static, cha, rta or vta", s)
}

// ComputeCallgraph computes the call graph of prog using the provided mode.
func (mode CallgraphAnalysisMode) ComputeCallgraph(prog *ssa.Program) (*callgraph.Graph, error) {
	switch mode {
	case PointerAnalysis:
		// Andersen's analysis is sound if the program does not use reflection or unsafe Go. Only the call graph
		// is kept here, see DoPointerAnalysis to query the points-to sets.
		result, err := DoPointerAnalysis(prog, func(_ *ssa.Function) bool { return false }, true)
		if err != nil {
			return nil, fmt.Errorf("pointer analysis failed: %w", err)
		}
		return result.CallGraph, nil
	case StaticAnalysis:
		return static.CallGraph(prog), nil
	case ClassHierarchyAnalysis:
		// "Optimization of Object-Oriented Programs Using Static Class Hierarchy Analysis",
		// J. Dean, D. Grove, and C. Chambers, ECOOP'95.
		return cha.CallGraph(prog), nil
	case VariableTypeAnalysis:
		roots := make(map[*ssa.Function]bool)
		for _, f := range mainRoots(prog) {
			roots[f] = true
		}
		return vta.CallGraph(roots, cha.CallGraph(prog)), nil
	case RapidTypeAnalysis:
		// "Fast Analysis of C++ Virtual Function Calls", D.Bacon & P. Sweeney, OOPSLA'96
		roots := mainRoots(prog)
		if len(roots) == 0 {
			return nil, fmt.Errorf("rta needs a main package")
		}
		return rta.Analyze(roots, true).CallGraph, nil
	default:
		return nil, fmt.Errorf("unsupported callgraph analysis mode %s", mode)
	}
}

// mainRoots returns the init and main functions of the main packages of prog
func mainRoots(prog *ssa.Program) []*ssa.Function {
	var roots []*ssa.Function
	for _, m := range ssautil.MainPackages(prog.AllPackages()) {
		roots = append(roots, m.Func("init"), m.Func("main"))
	}
	return roots
}
