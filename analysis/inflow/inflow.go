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

package inflow

import (
	"fmt"

	"github.com/ujchoe/SCanDroid/analysis/config"
	"github.com/ujchoe/SCanDroid/analysis/domain"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/analysis/spec"
	"github.com/ujchoe/SCanDroid/internal/graphutil"
)

// Options configures the seeding
type Options struct {
	// ReachableOnly restricts seeding to the call graph nodes reachable from the entrypoints
	ReachableOnly bool
}

// Result is the result of seeding
type Result struct {
	// TaintMap maps blocks to the elements tainted there, by flow
	TaintMap domain.TaintMap

	// Gaps are the places where some specification could not be applied
	Gaps []*ResolutionGap
}

type analyzer struct {
	ctx       *spec.Context
	labels    map[program.InstanceKey]string
	taintMap  domain.TaintMap
	gaps      []*ResolutionGap
	reachable map[int]bool
}

// Analyze applies the specifications to the program of ctx and returns the resulting taint map.
// labels maps instance keys to a description of their provenance, and is used only for logging.
//
// Returns a *ConfigurationError if some specification is not one of the known kinds. Specifications that cannot be
// applied are reported in the Gaps of the result.
func Analyze(ctx *spec.Context, labels map[program.InstanceKey]string, specs []spec.SourceSpec,
	opts Options) (*Result, error) {
	var (
		entryArgSpecs    []*spec.EntryArgSourceSpec
		staticFieldSpecs []*spec.StaticFieldSourceSpec
		callSpecs        []spec.SourceSpec
	)
	for _, s := range specs {
		switch s := s.(type) {
		case *spec.EntryArgSourceSpec:
			entryArgSpecs = append(entryArgSpecs, s)
		case *spec.CallArgSourceSpec:
			callSpecs = append(callSpecs, s)
		case *spec.CallRetSourceSpec:
			callSpecs = append(callSpecs, s)
		case *spec.StaticFieldSourceSpec:
			staticFieldSpecs = append(staticFieldSpecs, s)
		default:
			return nil, &ConfigurationError{Reason: fmt.Sprintf("unrecognized source spec %T", s)}
		}
	}

	a := &analyzer{
		ctx:      ctx,
		labels:   labels,
		taintMap: domain.NewTaintMap(),
	}
	if opts.ReachableOnly {
		a.reachable = graphutil.ReachableFromEntrypoints(ctx.CallGraph)
		ctx.Log().Debugf("%d call graph nodes reachable from entrypoints\n", len(a.reachable))
	}

	for _, s := range entryArgSpecs {
		a.processEntryArgs(s)
	}
	for _, s := range staticFieldSpecs {
		a.processStaticField(s)
	}
	a.processFunctionCalls(callSpecs)

	a.logSeeds()
	ctx.Log().Infof("Seeded %d elements in %d blocks (%d unresolved)\n",
		a.taintMap.Len(), len(a.taintMap), len(a.gaps))
	return &Result{TaintMap: a.taintMap, Gaps: a.gaps}, nil
}

func (a *analyzer) included(n program.Node) bool {
	return a.reachable == nil || a.reachable[n.ID()]
}

func (a *analyzer) gap(s spec.SourceSpec, n program.Node, reason string) {
	g := &ResolutionGap{Spec: s, Node: n, Reason: reason}
	a.ctx.Log().Errorf("%s\n", g)
	a.gaps = append(a.gaps, g)
}

// processEntryArgs seeds the arguments of s at the entry of every node of the methods matching s.
func (a *analyzer) processEntryArgs(s *spec.EntryArgSourceSpec) {
	for _, m := range s.NamePattern().PossibleTargets(a.ctx.Hierarchy) {
		argNums := s.ArgNums()
		if argNums == nil {
			argNums = spec.DefaultArgNums(m)
		}
		for _, n := range a.ctx.CallGraph.NodesOf(m) {
			if !a.included(n) {
				continue
			}
			entries := a.ctx.Supergraph.EntriesForProcedure(n)
			if len(entries) == 0 {
				a.gap(s, n, "no entry block")
				continue
			}
			for _, block := range entries {
				s.AddDomainElements(a.ctx, a.taintMap, m, block, nil, argNums)
			}
		}
	}
}

// processStaticField seeds the field of s at the entry blocks of all the entrypoints.
func (a *analyzer) processStaticField(s *spec.StaticFieldSourceSpec) {
	found := false
	for _, n := range a.ctx.CallGraph.Entrypoints() {
		for _, block := range a.ctx.Supergraph.EntriesForProcedure(n) {
			s.AddDomainElements(a.ctx, a.taintMap, n.Method(), block, nil, nil)
			found = true
		}
	}
	if !found {
		a.gap(s, nil, "no entry block for any entrypoint")
	}
}

// processFunctionCalls seeds the call argument and call return specs in one pass over the call instructions of
// the supergraph.
func (a *analyzer) processFunctionCalls(specs []spec.SourceSpec) {
	if len(specs) == 0 {
		return
	}
	allTargets := map[program.Method]bool{}
	specTargets := make([]map[program.Method]bool, len(specs))
	for i, s := range specs {
		specTargets[i] = map[program.Method]bool{}
		for _, m := range s.NamePattern().PossibleTargets(a.ctx.Hierarchy) {
			specTargets[i][m] = true
			allTargets[m] = true
		}
	}
	if len(allTargets) == 0 {
		a.ctx.Log().Debugf("no method matches the call specs\n")
		return
	}

	for _, block := range a.ctx.Supergraph.Blocks() {
		if !a.included(block.Node()) {
			continue
		}
		for _, inv := range program.Invokes(block) {
			for _, target := range a.ctx.Hierarchy.PossibleTargets(inv.Target) {
				if !allTargets[target] {
					continue
				}
				for i, s := range specs {
					if !specTargets[i][target] {
						continue
					}
					argNums := s.ArgNums()
					if argNums == nil {
						argNums = spec.DefaultArgNums(target)
					}
					s.AddDomainElements(a.ctx, a.taintMap, target, block, inv, argNums)
				}
			}
		}
	}
}

func (a *analyzer) logSeeds() {
	if a.ctx.Log().Level() < config.DebugLevel {
		return
	}
	a.taintMap.Iter(func(block program.BlockID, flow domain.FlowType, e domain.CodeElement) {
		if ik, ok := flow.(domain.InstanceKeyFlow); ok {
			if label, found := a.labels[ik.Key]; found {
				a.ctx.Log().Debugf("%s: %s %s [%s]\n", block, flow, e, label)
				return
			}
			a.ctx.Log().Tracef("no provenance for %s\n", ik.Key)
		}
		a.ctx.Log().Debugf("%s: %s %s\n", block, flow, e)
	})
}
