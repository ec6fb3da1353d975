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
	"errors"
)

// ZeroIndex is the index of the zero fact. It is never assigned to a domain element.
const ZeroIndex = 0

// ErrFrozen is returned when a new element is indexed in a frozen domain.
var ErrFrozen = errors.New("taint domain is frozen")

// Domain assigns indices to domain elements. Indices are assigned on first observation, starting at 1, and stay
// stable for the lifetime of the domain. A domain is not safe for concurrent use until it has been frozen; once
// frozen, it is read-only and can be shared by concurrent readers.
type Domain struct {
	// elements[i-1] is the element of index i
	elements []DomainElement

	// indices is the inverse of elements
	indices map[DomainElement]int

	frozen bool
}

// NewDomain returns an empty domain.
func NewDomain() *Domain {
	return &Domain{
		elements: []DomainElement{},
		indices:  map[DomainElement]int{},
	}
}

// Index returns the index of e, assigning a fresh one if e has not been seen before.
// Returns ErrFrozen if e is new and the domain is frozen.
func (d *Domain) Index(e DomainElement) (int, error) {
	if i, ok := d.indices[e]; ok {
		return i, nil
	}
	if d.frozen {
		return ZeroIndex, ErrFrozen
	}
	d.elements = append(d.elements, e)
	i := len(d.elements)
	d.indices[e] = i
	return i, nil
}

// Lookup returns the index of e and true if e has an index.
func (d *Domain) Lookup(e DomainElement) (int, bool) {
	i, ok := d.indices[e]
	return i, ok
}

// Element returns the element of index i. The zero index and unassigned indices have no element.
func (d *Domain) Element(i int) (DomainElement, bool) {
	if i <= ZeroIndex || i > len(d.elements) {
		return DomainElement{}, false
	}
	return d.elements[i-1], true
}

// Size returns the number of elements indexed, the zero fact excluded.
func (d *Domain) Size() int {
	return len(d.elements)
}

// Freeze makes the domain read-only.
func (d *Domain) Freeze() {
	d.frozen = true
}

// Frozen returns true if the domain has been frozen.
func (d *Domain) Frozen() bool {
	return d.frozen
}
