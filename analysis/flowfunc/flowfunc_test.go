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

package flowfunc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujchoe/SCanDroid/analysis/domain"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/container/intsets"
)

type heapObject string

func (h heapObject) String() string { return string(h) }

var (
	entry    = program.BlockID{Node: 0, Index: 0}
	callSite = program.BlockID{Node: 0, Index: 2}
	field    = program.Field{Package: "os", Name: "Args"}
)

// seedMap returns a taint map with one local, one static field and one heap object element
func seedMap() domain.TaintMap {
	tm := domain.NewTaintMap()
	tm.Add(entry, domain.EntryArgFlow{At: entry, Arg: 1}, domain.LocalElement{Node: 0, Value: 1})
	tm.Add(entry, domain.StaticFieldFlow{At: entry, Field: field}, domain.StaticFieldElement{Field: field})
	tm.Add(callSite, domain.InstanceKeyFlow{At: callSite, Key: heapObject("o")},
		domain.InstanceKeyElement{Key: heapObject("o")})
	return tm
}

func elems(s *intsets.Sparse) []int {
	return s.AppendTo([]int{})
}

// indexOf returns the index of the first fact whose element satisfies p
func indexOf(t *testing.T, dom *domain.Domain, p func(domain.CodeElement) bool) int {
	for i := 1; i <= dom.Size(); i++ {
		e, _ := dom.Element(i)
		if p(e.Code) {
			return i
		}
	}
	t.Fatalf("no such element")
	return 0
}

func newSeeds(t *testing.T) (*Seeds, int, int, int) {
	seeds, err := IndexSeeds(domain.NewDomain(), seedMap())
	require.NoError(t, err)
	dom := seeds.Domain
	local := indexOf(t, dom, domain.IsLocal)
	static := indexOf(t, dom, func(e domain.CodeElement) bool { _, ok := e.(domain.StaticFieldElement); return ok })
	ik := indexOf(t, dom, func(e domain.CodeElement) bool { _, ok := e.(domain.InstanceKeyElement); return ok })
	return seeds, local, static, ik
}

func TestGlobalIdentity(t *testing.T) {
	seeds, local, static, ik := newSeeds(t)
	f := GlobalIdentity(seeds.Domain)

	assert.Equal(t, []int{domain.ZeroIndex}, elems(f.Targets(domain.ZeroIndex)))
	assert.Empty(t, elems(f.Targets(local)))
	assert.Equal(t, []int{static}, elems(f.Targets(static)))
	assert.Equal(t, []int{ik}, elems(f.Targets(ik)))
	assert.Empty(t, elems(f.Targets(seeds.Domain.Size()+1)))
}

func TestLocalIdentityAndIdentity(t *testing.T) {
	seeds, local, static, ik := newSeeds(t)
	l := LocalIdentity(seeds.Domain)
	assert.Equal(t, []int{domain.ZeroIndex}, elems(l.Targets(domain.ZeroIndex)))
	assert.Equal(t, []int{local}, elems(l.Targets(local)))
	assert.Empty(t, elems(l.Targets(static)))
	assert.Empty(t, elems(l.Targets(ik)))

	id := Identity(seeds.Domain)
	for d := 0; d <= seeds.Domain.Size(); d++ {
		assert.Equal(t, []int{d}, elems(id.Targets(d)))
	}
}

func TestSeeded(t *testing.T) {
	seeds, local, static, ik := newSeeds(t)
	f := Seeded(GlobalIdentity(seeds.Domain), []int{local, static})

	assert.Equal(t, []int{domain.ZeroIndex, local, static}, elems(f.Targets(domain.ZeroIndex)))
	assert.Empty(t, elems(f.Targets(local)))
	assert.Equal(t, []int{ik}, elems(f.Targets(ik)))

	// the caller owns the result
	r := f.Targets(domain.ZeroIndex)
	r.Insert(42)
	assert.False(t, f.Targets(domain.ZeroIndex).Has(42))

	noSeeds := Seeded(Identity(seeds.Domain), nil)
	assert.Equal(t, []int{domain.ZeroIndex}, elems(noSeeds.Targets(domain.ZeroIndex)))
}

func TestIndexSeeds(t *testing.T) {
	seeds, local, static, ik := newSeeds(t)
	assert.True(t, seeds.Domain.Frozen())
	assert.Equal(t, 3, seeds.Len())
	assert.Equal(t, 3, seeds.Domain.Size())

	want := []int{local, static}
	if static < local {
		want = []int{static, local}
	}
	assert.Equal(t, want, seeds.At(entry))
	assert.Equal(t, []int{ik}, seeds.At(callSite))
	assert.Empty(t, seeds.At(program.BlockID{Node: 5}))

	again, err := IndexSeeds(domain.NewDomain(), seedMap())
	require.NoError(t, err)
	assert.Equal(t, seeds.At(entry), again.At(entry))

	for i := 1; i <= seeds.Domain.Size(); i++ {
		e, ok := seeds.Domain.Element(i)
		require.True(t, ok)
		j, found := seeds.Domain.Lookup(e)
		assert.True(t, found)
		assert.Equal(t, i, j)
	}
}

func TestIndexSeedsInFrozenDomain(t *testing.T) {
	dom := domain.NewDomain()
	dom.Freeze()
	_, err := IndexSeeds(dom, seedMap())
	assert.True(t, errors.Is(err, domain.ErrFrozen))

	// re-indexing known elements in a frozen domain succeeds
	seeds, err := IndexSeeds(domain.NewDomain(), seedMap())
	require.NoError(t, err)
	again, err := IndexSeeds(seeds.Domain, seedMap())
	require.NoError(t, err)
	assert.Equal(t, seeds.At(callSite), again.At(callSite))
}

func TestTransferFunctions(t *testing.T) {
	seeds, local, static, ik := newSeeds(t)
	tf := NewTransferFunctions(seeds)
	next := program.BlockID{Node: 0, Index: 1}
	callee := program.BlockID{Node: 1, Index: 0}

	normal := tf.NormalFlowFunction(entry, next)
	assert.ElementsMatch(t, []int{domain.ZeroIndex, local, static}, elems(normal.Targets(domain.ZeroIndex)))
	assert.Equal(t, []int{local}, elems(normal.Targets(local)))
	assert.Equal(t, []int{domain.ZeroIndex}, elems(tf.NormalFlowFunction(next, callSite).Targets(domain.ZeroIndex)))

	call := tf.CallFlowFunction(callSite, callee)
	assert.Empty(t, elems(call.Targets(local)))
	assert.Equal(t, []int{static}, elems(call.Targets(static)))
	assert.Equal(t, []int{domain.ZeroIndex}, elems(call.Targets(domain.ZeroIndex)))

	ret := tf.ReturnFlowFunction(callSite, callee, next)
	assert.Equal(t, []int{ik}, elems(ret.Targets(ik)))
	assert.Empty(t, elems(ret.Targets(local)))

	c2r := tf.CallToReturnFlowFunction(callSite, next)
	assert.Equal(t, []int{domain.ZeroIndex, ik}, elems(c2r.Targets(domain.ZeroIndex)))
	assert.Equal(t, []int{local}, elems(c2r.Targets(local)))
	assert.Empty(t, elems(c2r.Targets(static)))
}

// A solver may evaluate flow functions in parallel: results must match a sequential evaluation.
func TestConcurrentEvaluation(t *testing.T) {
	seeds, _, _, _ := newSeeds(t)
	tf := NewTransferFunctions(seeds)
	functions := []UnaryFlowFunction{
		tf.NormalFlowFunction(entry, callSite),
		tf.CallFlowFunction(callSite, entry),
		tf.ReturnFlowFunction(callSite, entry, callSite),
		tf.CallToReturnFlowFunction(callSite, entry),
	}
	n := seeds.Domain.Size() + 1

	sequential := make([][][]int, len(functions))
	for i, f := range functions {
		sequential[i] = make([][]int, n)
		for d := 0; d < n; d++ {
			sequential[i][d] = elems(f.Targets(d))
		}
	}

	parallel := make([][][]int, len(functions))
	var g errgroup.Group
	for i, f := range functions {
		i, f := i, f
		parallel[i] = make([][]int, n)
		for d := 0; d < n; d++ {
			d := d
			g.Go(func() error {
				parallel[i][d] = elems(f.Targets(d))
				return nil
			})
		}
	}
	require.NoError(t, g.Wait())
	if diff := cmp.Diff(sequential, parallel); diff != "" {
		t.Errorf("parallel evaluation differs (-sequential +parallel):\n%s", diff)
	}
}

type syntheticObject struct{ id int }

func (syntheticObject) String() string { return "alloc" }

func TestIndexSeedsWithSameDescription(t *testing.T) {
	x := domain.InstanceKeyElement{Key: syntheticObject{id: 1}}
	y := domain.InstanceKeyElement{Key: syntheticObject{id: 2}}
	flow := domain.CallReturnFlow{At: callSite}
	tm := domain.NewTaintMap()
	tm.Add(callSite, flow, x, y)

	seeds, err := IndexSeeds(domain.NewDomain(), tm)
	require.NoError(t, err)
	assert.Equal(t, 2, seeds.Domain.Size())
	assert.Equal(t, []int{1, 2}, seeds.At(callSite))

	var got []domain.CodeElement
	for _, i := range seeds.At(callSite) {
		e, ok := seeds.Domain.Element(i)
		require.True(t, ok)
		assert.Equal(t, flow, e.Flow)
		got = append(got, e.Code)
	}
	assert.ElementsMatch(t, []domain.CodeElement{x, y}, got)
}
