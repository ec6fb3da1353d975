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
	"regexp"
	"time"

	"github.com/ujchoe/SCanDroid/analysis/config"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/analysis/ssaprog"
	"github.com/ujchoe/SCanDroid/internal/funcutil"
	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/pointer"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Version is the version of the inflow tool
const Version = "v0.2.0"

// BuildProgram computes the call graph of prog with the analysis set in the config and, if the config asks for it,
// the points-to sets of the values of the packages matching the package filter. The result exposes prog to the
// seeding engine.
func BuildProgram(prog *ssa.Program, cfg *config.Config, logger *config.LogGroup) (*ssaprog.Program, error) {
	mode, err := ParseCallgraphAnalysisMode(cfg.CallgraphAnalysis)
	if err != nil {
		return nil, err
	}
	logger.Infof("Program has %d packages with functions\n", len(AllPackages(ssautil.AllFunctions(prog))))

	var ptrResult *pointer.Result
	if cfg.UsePointerAnalysis {
		start := time.Now()
		filter := func(f *ssa.Function) bool {
			return f.Pkg != nil && cfg.MatchPkgFilter(f.Pkg.Pkg.Path())
		}
		ptrResult, err = DoPointerAnalysis(prog, filter, mode == PointerAnalysis)
		if err != nil {
			return nil, fmt.Errorf("pointer analysis failed: %w", err)
		}
		logger.Infof("Pointer analysis: %d queries (%.2f s)\n", len(ptrResult.Queries), time.Since(start).Seconds())
	}

	var cg *callgraph.Graph
	start := time.Now()
	if ptrResult != nil && mode == PointerAnalysis {
		cg = ptrResult.CallGraph
	} else if cg, err = mode.ComputeCallgraph(prog); err != nil {
		return nil, err
	}
	logger.Infof("Call graph (%s): %d nodes (%.2f s)\n", mode, len(cg.Nodes), time.Since(start).Seconds())

	return ssaprog.New(prog, cg, ptrResult, ssaprog.Options{}), nil
}

// LabelInstanceKeys returns the provenance labels of the keys. patterns maps a regex over the description of an
// instance key to its label; a key matching several patterns gets the label of the lexicographically first one.
func LabelInstanceKeys(keys []program.InstanceKey, patterns map[string]string) (map[program.InstanceKey]string,
	error) {
	type labelRegex struct {
		re    *regexp.Regexp
		label string
	}
	var regexes []labelRegex
	for _, pattern := range funcutil.SortedKeys(patterns) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid instance key pattern %q: %w", pattern, err)
		}
		regexes = append(regexes, labelRegex{re: re, label: patterns[pattern]})
	}

	labels := map[program.InstanceKey]string{}
	for _, key := range keys {
		for _, r := range regexes {
			if r.re.MatchString(key.String()) {
				labels[key] = r.label
				break
			}
		}
	}
	return labels, nil
}
