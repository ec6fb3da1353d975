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

package analysis_test

import (
	"context"
	"io"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujchoe/SCanDroid/analysis"
	"github.com/ujchoe/SCanDroid/analysis/config"
	"github.com/ujchoe/SCanDroid/analysis/domain"
	"github.com/ujchoe/SCanDroid/analysis/inflow"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/analysis/spec"
	"github.com/ujchoe/SCanDroid/analysis/ssaprog"
	"github.com/ujchoe/SCanDroid/internal/analysistest"
	"github.com/ujchoe/SCanDroid/internal/programtest"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

func testdataDir(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return path.Join(path.Dir(filename), "../testdata/src/inflow", name)
}

func TestParseCallgraphAnalysisMode(t *testing.T) {
	for _, mode := range []analysis.CallgraphAnalysisMode{
		analysis.PointerAnalysis,
		analysis.StaticAnalysis,
		analysis.ClassHierarchyAnalysis,
		analysis.RapidTypeAnalysis,
		analysis.VariableTypeAnalysis,
	} {
		parsed, err := analysis.ParseCallgraphAnalysisMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	mode, err := analysis.ParseCallgraphAnalysisMode("CHA")
	require.NoError(t, err)
	assert.Equal(t, analysis.ClassHierarchyAnalysis, mode)

	_, err = analysis.ParseCallgraphAnalysisMode("andersen")
	assert.ErrorContains(t, err, "andersen")
}

func TestLabelInstanceKeys(t *testing.T) {
	keys := []program.InstanceKey{programtest.Key("alloc@main.go:3"), programtest.Key("alloc@net/http")}
	labels, err := analysis.LabelInstanceKeys(keys, map[string]string{
		`main\.go`: "input",
		`\.go`:     "go-file",
	})
	require.NoError(t, err)
	assert.Equal(t, map[program.InstanceKey]string{programtest.Key("alloc@main.go:3"): "go-file"}, labels)

	_, err = analysis.LabelInstanceKeys(keys, map[string]string{"(": "broken"})
	assert.Error(t, err)
}

func TestLoadProgramCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := analysis.LoadProgram(ctx, nil, "", ssa.BuilderMode(0),
		[]string{path.Join(testdataDir("basic"), "main.go")})
	assert.Error(t, err)
}

func TestComputeCallgraph(t *testing.T) {
	prog, _ := analysistest.LoadTest(t, testdataDir("basic"), nil)
	for _, mode := range []analysis.CallgraphAnalysisMode{
		analysis.StaticAnalysis,
		analysis.ClassHierarchyAnalysis,
		analysis.RapidTypeAnalysis,
		analysis.VariableTypeAnalysis,
	} {
		t.Run(mode.String(), func(t *testing.T) {
			cg, err := mode.ComputeCallgraph(prog)
			require.NoError(t, err)
			var names []string
			for fn := range cg.Nodes {
				if fn != nil && fn.Pkg != nil && fn.Pkg.Pkg.Path() == "command-line-arguments" {
					names = append(names, fn.Name())
				}
			}
			assert.Subset(t, names, []string{"main", "handle", "send", "getInput"})
		})
	}

	_, err := analysis.CallgraphAnalysisMode(42).ComputeCallgraph(prog)
	assert.Error(t, err)
}

// TestSeedBasicProgram checks that the values seeded in the basic program are exactly the ones annotated with
// @Source in its sources.
func TestSeedBasicProgram(t *testing.T) {
	dir := testdataDir("basic")
	prog, cfg := analysistest.LoadTest(t, dir, nil)
	logger := config.NewLogGroupWithWriter(config.ErrLevel, io.Discard)

	p, err := analysis.BuildProgram(prog, cfg, logger)
	require.NoError(t, err)
	specs, err := spec.FromConfigs(cfg)
	require.NoError(t, err)
	require.Len(t, specs, 4)
	labels, err := analysis.LabelInstanceKeys(p.InstanceKeys(), cfg.InstanceKeyLabels)
	require.NoError(t, err)

	res, err := inflow.Analyze(spec.NewContext(p.Program(), logger), labels, specs,
		inflow.Options{ReachableOnly: cfg.ReachableOnly})
	require.NoError(t, err)
	assert.Empty(t, res.Gaps)

	nodes := map[int]*ssaprog.Node{}
	for _, n := range p.Nodes() {
		nodes[n.ID()] = n.(*ssaprog.Node)
	}

	seeded := map[analysistest.LPos]bool{}
	labelled := 0
	staticFields := 0
	res.TaintMap.Iter(func(_ program.BlockID, flow domain.FlowType, e domain.CodeElement) {
		switch e := e.(type) {
		case domain.LocalElement:
			v := nodes[e.Node].Value(e.Value)
			require.NotNil(t, v)
			seeded[analysistest.RemoveColumn(prog.Fset.Position(v.Pos()))] = true
		case domain.InstanceKeyElement:
			if labels[e.Key] == "test-input" {
				labelled++
			}
		case domain.StaticFieldElement:
			staticFields++
		}
	})

	expected, err := analysistest.ExpectedSources(dir)
	require.NoError(t, err)
	require.Len(t, expected, 4)
	for pos, ids := range expected {
		assert.True(t, seeded[pos], "source %v at %s is not seeded", ids, pos)
	}
	for pos := range seeded {
		_, ok := expected[pos]
		assert.True(t, ok, "unexpected seed at %s", pos)
	}
	assert.Positive(t, labelled, "the request allocated in main is labelled")
	assert.Equal(t, 2, staticFields, "the static field is seeded at main and init")
}

// The request allocated in main is reached from several points-to queries, and must be the same key each time.
func TestInstanceKeysAreCanonical(t *testing.T) {
	prog, cfg := analysistest.LoadTest(t, testdataDir("basic"), nil)
	p, err := analysis.BuildProgram(prog, cfg, config.NewLogGroupWithWriter(config.ErrLevel, io.Discard))
	require.NoError(t, err)

	keys := map[program.InstanceKey]bool{}
	for _, k := range p.InstanceKeys() {
		assert.False(t, keys[k], "%s listed twice", k)
		keys[k] = true
	}
	found := 0
	for _, b := range p.Blocks() {
		for _, instr := range b.Instructions() {
			inv, ok := instr.(*program.Invoke)
			if !ok {
				continue
			}
			for _, arg := range inv.Args {
				for _, k := range p.PointsTo(b.Node(), arg) {
					assert.True(t, keys[k], "%s is not a known instance key", k)
					found++
				}
			}
		}
	}
	assert.NotZero(t, found)
}

func TestInstructionKinds(t *testing.T) {
	p := programtest.New()
	m := p.AddMethod(programtest.NewFunction("app", "f", 1))
	n := p.AddNode(m)
	p.AddBlock(n, true,
		&program.Invoke{Target: m, Mode: program.StaticInvoke, Args: []program.Value{1}, Result: 2},
		&program.Get{Field: program.Field{Package: "app", Name: "g"}, Static: true, Result: 3},
		&program.Other{Op: "phi"},
		&program.Return{Result: 2},
	)

	var r analysis.Result
	r.CountInstructionKinds(p.Blocks())
	assert.Equal(t, map[string]uint{
		"invoke-static": 1,
		"get-static":    1,
		"other":         1,
		"return":        1,
	}, r.InstructionKinds)
}

func TestSSAStatistics(t *testing.T) {
	prog, cfg := analysistest.LoadTest(t, testdataDir("basic"), nil)
	all := analysis.SSAStatistics(ssautil.AllFunctions(prog), func(string) bool { return true })
	filtered := analysis.SSAStatistics(ssautil.AllFunctions(prog), cfg.MatchPkgFilter)
	assert.Less(t, filtered.NumberOfFunctions, all.NumberOfFunctions)
	assert.GreaterOrEqual(t, filtered.NumberOfNonemptyFunctions, uint(5))
	assert.Greater(t, filtered.NumberOfInstructions, filtered.NumberOfBlocks)
}
