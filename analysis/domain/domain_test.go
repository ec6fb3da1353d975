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

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujchoe/SCanDroid/analysis/program"
)

type heapObject string

func (h heapObject) String() string { return string(h) }

func sampleElements() []DomainElement {
	b0 := program.BlockID{Node: 1, Index: 0}
	b1 := program.BlockID{Node: 2, Index: 3}
	field := program.Field{Package: "app", Type: "Config", Name: "secret"}
	return []DomainElement{
		{Code: LocalElement{Node: 1, Value: 1}, Flow: EntryArgFlow{At: b0, Arg: 1}},
		{Code: LocalElement{Node: 1, Value: 2}, Flow: EntryArgFlow{At: b0, Arg: 2}},
		{Code: LocalElement{Node: 1, Value: 1}, Flow: CallArgFlow{At: b0, Arg: 1}},
		{Code: LocalElement{Node: 2, Value: 5}, Flow: CallReturnFlow{At: b1}},
		{Code: StaticFieldElement{Field: field}, Flow: StaticFieldFlow{At: b0, Field: field}},
		{Code: InstanceKeyElement{Key: heapObject("alloc@12")}, Flow: InstanceKeyFlow{At: b1, Key: heapObject("alloc@12")}},
		{Code: ReturnElement{Node: 2}, Flow: CallReturnFlow{At: b1}},
	}
}

func TestDomainIndexIsBijective(t *testing.T) {
	d := NewDomain()
	elements := sampleElements()
	seen := map[int]DomainElement{}
	for _, e := range elements {
		i, err := d.Index(e)
		require.NoError(t, err)
		assert.NotEqual(t, ZeroIndex, i, "zero index assigned to %s", e)
		if prev, ok := seen[i]; ok {
			t.Fatalf("index %d assigned to both %s and %s", i, prev, e)
		}
		seen[i] = e
	}
	assert.Equal(t, len(elements), d.Size())

	for i, e := range seen {
		back, ok := d.Element(i)
		require.True(t, ok)
		assert.Equal(t, e, back)
		j, ok := d.Lookup(e)
		require.True(t, ok)
		assert.Equal(t, i, j)
	}
}

func TestDomainIndexIsStable(t *testing.T) {
	d := NewDomain()
	elements := sampleElements()
	first := make([]int, len(elements))
	for k, e := range elements {
		first[k], _ = d.Index(e)
	}
	// Observing elements again, in another order, does not change their index
	for k := len(elements) - 1; k >= 0; k-- {
		i, err := d.Index(elements[k])
		require.NoError(t, err)
		assert.Equal(t, first[k], i)
	}
	assert.Equal(t, len(elements), d.Size())
}

func TestDomainZeroHasNoElement(t *testing.T) {
	d := NewDomain()
	_, ok := d.Element(ZeroIndex)
	assert.False(t, ok)
	_, ok = d.Element(1)
	assert.False(t, ok)
	_, ok = d.Element(-3)
	assert.False(t, ok)
}

func TestFrozenDomain(t *testing.T) {
	d := NewDomain()
	elements := sampleElements()
	i, err := d.Index(elements[0])
	require.NoError(t, err)
	d.Freeze()
	assert.True(t, d.Frozen())

	j, err := d.Index(elements[0])
	require.NoError(t, err, "known elements can still be looked up")
	assert.Equal(t, i, j)

	_, err = d.Index(elements[1])
	assert.ErrorIs(t, err, ErrFrozen)
	assert.Equal(t, 1, d.Size())
}

func TestIsLocal(t *testing.T) {
	assert.True(t, IsLocal(LocalElement{Node: 0, Value: 1}))
	assert.False(t, IsLocal(StaticFieldElement{}))
	assert.False(t, IsLocal(ReturnElement{Node: 1}))
	assert.False(t, IsLocal(InstanceKeyElement{Key: heapObject("o")}))
}
