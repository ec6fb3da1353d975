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
	"github.com/ujchoe/SCanDroid/analysis/domain"
	"golang.org/x/tools/container/intsets"
)

// UnaryFlowFunction is a flow function on a single edge of the supergraph
type UnaryFlowFunction interface {
	// Targets returns the facts d1 propagates to. The returned set is owned by the caller.
	Targets(d1 int) *intsets.Sparse
}

// ZeroSet returns a new set containing only the zero fact
func ZeroSet() *intsets.Sparse {
	s := &intsets.Sparse{}
	s.Insert(domain.ZeroIndex)
	return s
}

// EmptySet returns a new empty set
func EmptySet() *intsets.Sparse {
	return &intsets.Sparse{}
}

func singleton(d int) *intsets.Sparse {
	s := &intsets.Sparse{}
	s.Insert(d)
	return s
}

// passThrough propagates the zero fact and the facts whose element satisfies keep. Other facts, and indices that
// are not in the domain, are killed.
type passThrough struct {
	dom  *domain.Domain
	keep func(domain.DomainElement) bool
}

func (f passThrough) Targets(d1 int) *intsets.Sparse {
	if d1 == domain.ZeroIndex {
		return ZeroSet()
	}
	e, ok := f.dom.Element(d1)
	if !ok || !f.keep(e) {
		return EmptySet()
	}
	return singleton(d1)
}

// GlobalIdentity passes the zero fact and all the non-local facts, and kills the local ones. It is the flow function
// of edges where only the globally visible state persists.
func GlobalIdentity(dom *domain.Domain) UnaryFlowFunction {
	return passThrough{dom: dom, keep: func(e domain.DomainElement) bool { return !domain.IsLocal(e.Code) }}
}

// LocalIdentity passes the zero fact and the local facts, and kills the non-local ones.
func LocalIdentity(dom *domain.Domain) UnaryFlowFunction {
	return passThrough{dom: dom, keep: func(e domain.DomainElement) bool { return domain.IsLocal(e.Code) }}
}

// Identity passes every fact of the domain
func Identity(dom *domain.Domain) UnaryFlowFunction {
	return passThrough{dom: dom, keep: func(domain.DomainElement) bool { return true }}
}

type seeded struct {
	inner UnaryFlowFunction
	seeds []int
}

// Seeded returns the flow function that behaves like inner, and also propagates the zero fact to seeds.
func Seeded(inner UnaryFlowFunction, seeds []int) UnaryFlowFunction {
	if len(seeds) == 0 {
		return inner
	}
	return seeded{inner: inner, seeds: seeds}
}

func (f seeded) Targets(d1 int) *intsets.Sparse {
	res := f.inner.Targets(d1)
	if d1 == domain.ZeroIndex {
		for _, s := range f.seeds {
			res.Insert(s)
		}
	}
	return res
}
