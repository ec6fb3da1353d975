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
	"github.com/ujchoe/SCanDroid/analysis/program"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ElementSet is a set of code elements.
type ElementSet map[CodeElement]bool

// TaintMap maps each block to the code elements tainted at that block, grouped by flow type.
// Adding elements is a monotone union: adding an element that is already present does nothing.
type TaintMap map[program.BlockID]map[FlowType]ElementSet

// NewTaintMap returns an empty taint map
func NewTaintMap() TaintMap {
	return TaintMap{}
}

// Add adds the elements to the set of elements tainted at block by flow.
func (tm TaintMap) Add(block program.BlockID, flow FlowType, elements ...CodeElement) {
	flows, ok := tm[block]
	if !ok {
		flows = map[FlowType]ElementSet{}
		tm[block] = flows
	}
	set, ok := flows[flow]
	if !ok {
		set = ElementSet{}
		flows[flow] = set
	}
	for _, e := range elements {
		set[e] = true
	}
}

// Contains returns true when e is tainted at block by flow.
func (tm TaintMap) Contains(block program.BlockID, flow FlowType, e CodeElement) bool {
	return tm[block][flow][e]
}

// Elements returns the elements tainted at block by flow, sorted by their string representation. The relative order
// of distinct elements with the same representation is unspecified.
func (tm TaintMap) Elements(block program.BlockID, flow FlowType) []CodeElement {
	res := maps.Keys(tm[block][flow])
	slices.SortFunc(res, func(a, b CodeElement) bool { return a.String() < b.String() })
	return res
}

// Flows returns the flow types recorded at block, sorted by their string representation.
func (tm TaintMap) Flows(block program.BlockID) []FlowType {
	res := maps.Keys(tm[block])
	slices.SortFunc(res, func(a, b FlowType) bool { return a.String() < b.String() })
	return res
}

// Blocks returns the blocks with some taint, ordered.
func (tm TaintMap) Blocks() []program.BlockID {
	res := maps.Keys(tm)
	slices.SortFunc(res, program.BlockID.Less)
	return res
}

// Len returns the number of (block, flow, element) triples in the map.
func (tm TaintMap) Len() int {
	n := 0
	for _, flows := range tm {
		for _, set := range flows {
			n += len(set)
		}
	}
	return n
}

// Iter calls f on every (block, flow, element) triple of the map, in a deterministic order.
func (tm TaintMap) Iter(f func(block program.BlockID, flow FlowType, e CodeElement)) {
	for _, b := range tm.Blocks() {
		for _, flow := range tm.Flows(b) {
			for _, e := range tm.Elements(b, flow) {
				f(b, flow, e)
			}
		}
	}
}

// DomainElements returns the domain elements of the map, in the order of Iter.
func (tm TaintMap) DomainElements() []DomainElement {
	var res []DomainElement
	tm.Iter(func(_ program.BlockID, flow FlowType, e CodeElement) {
		res = append(res, DomainElement{Code: e, Flow: flow})
	})
	return res
}
