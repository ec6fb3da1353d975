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
	"fmt"

	"github.com/ujchoe/SCanDroid/analysis/domain"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"golang.org/x/exp/slices"
)

// Seeds are the indices of the seeded facts of a taint map, by block
type Seeds struct {
	// Domain is the frozen domain the indices refer to
	Domain *domain.Domain

	byBlock map[program.BlockID][]int
}

// IndexSeeds indexes every element of tm in dom, then freezes dom. Elements are indexed in the iteration order of
// tm: indexing the same taint map in a fresh domain yields the same indices as long as distinct elements of a block
// and flow have distinct string representations. Elements that print the same still get distinct indices, in an
// unspecified order.
func IndexSeeds(dom *domain.Domain, tm domain.TaintMap) (*Seeds, error) {
	seeds := &Seeds{Domain: dom, byBlock: map[program.BlockID][]int{}}
	var err error
	tm.Iter(func(block program.BlockID, flow domain.FlowType, e domain.CodeElement) {
		if err != nil {
			return
		}
		i, indexErr := dom.Index(domain.DomainElement{Code: e, Flow: flow})
		if indexErr != nil {
			err = fmt.Errorf("indexing %s at %s: %w", e, block, indexErr)
			return
		}
		seeds.byBlock[block] = append(seeds.byBlock[block], i)
	})
	if err != nil {
		return nil, err
	}
	for _, indices := range seeds.byBlock {
		slices.Sort(indices)
	}
	dom.Freeze()
	return seeds, nil
}

// At returns the indices of the facts seeded at block, in increasing order. The slice must not be modified.
func (s *Seeds) At(block program.BlockID) []int {
	return s.byBlock[block]
}

// Len returns the number of seeded facts
func (s *Seeds) Len() int {
	n := 0
	for _, indices := range s.byBlock {
		n += len(indices)
	}
	return n
}

// TransferFunctions provides the flow functions of every kind of supergraph edge.
//   - normal edges pass every fact, and introduce the seeds of their source block;
//   - call edges and return edges pass the non-local facts only;
//   - call-to-return edges pass the local facts, and introduce the seeds of the call block.
type TransferFunctions struct {
	seeds *Seeds

	identity       UnaryFlowFunction
	localIdentity  UnaryFlowFunction
	globalIdentity UnaryFlowFunction
}

// NewTransferFunctions returns the transfer functions introducing seeds
func NewTransferFunctions(seeds *Seeds) *TransferFunctions {
	return &TransferFunctions{
		seeds:          seeds,
		identity:       Identity(seeds.Domain),
		localIdentity:  LocalIdentity(seeds.Domain),
		globalIdentity: GlobalIdentity(seeds.Domain),
	}
}

// NormalFlowFunction returns the flow function of the intraprocedural edge from src to dest
func (t *TransferFunctions) NormalFlowFunction(src, _ program.BlockID) UnaryFlowFunction {
	return Seeded(t.identity, t.seeds.At(src))
}

// CallFlowFunction returns the flow function of the edge from the call block src to the entry dest of a callee
func (t *TransferFunctions) CallFlowFunction(_, _ program.BlockID) UnaryFlowFunction {
	return t.globalIdentity
}

// ReturnFlowFunction returns the flow function of the edge from the exit src of a callee to the return site dest
// of the call block call
func (t *TransferFunctions) ReturnFlowFunction(_, _, _ program.BlockID) UnaryFlowFunction {
	return t.globalIdentity
}

// CallToReturnFlowFunction returns the flow function of the edge from the call block src to its return site dest
func (t *TransferFunctions) CallToReturnFlowFunction(src, _ program.BlockID) UnaryFlowFunction {
	return Seeded(t.localIdentity, t.seeds.At(src))
}
