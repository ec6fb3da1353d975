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

package spec

import (
	"github.com/ujchoe/SCanDroid/analysis/program"
)

// DefaultArgNums returns the argument slots tainted when a spec does not list any: 1..n where n is the number of
// declared parameters of m, the receiver excluded.
func DefaultArgNums(m program.Method) []int {
	n := m.NumParams()
	if !m.IsStatic() {
		n--
	}
	return NewArgNums(n)
}

// NewArgNums returns the slots 1..n
func NewArgNums(n int) []int {
	if n < 0 {
		n = 0
	}
	args := make([]int, n)
	for i := 0; i < n; i++ {
		args[i] = i + 1
	}
	return args
}

// paramIndex returns the 0-based position of the argument slot among the parameters of a method, receiver included.
// Both the entry and the call site resolution go through this function so that a slot denotes the same parameter
// on both sides of a call.
func paramIndex(static bool, slot int) int {
	if static {
		return slot - 1
	}
	return slot
}

// ParamValue returns the value number of the parameter of m at the argument slot, and false if m has no such
// parameter.
func ParamValue(m program.Method, slot int) (program.Value, bool) {
	if slot < 1 {
		return program.NoValue, false
	}
	i := paramIndex(m.IsStatic(), slot)
	if i >= m.NumParams() {
		return program.NoValue, false
	}
	return program.Value(i + 1), true
}

// InvokeArg returns the value passed at the argument slot of target in the call inv, and false if the call has no
// such argument.
func InvokeArg(inv *program.Invoke, target program.Method, slot int) (program.Value, bool) {
	if slot < 1 {
		return program.NoValue, false
	}
	i := paramIndex(target.IsStatic(), slot)
	if i >= len(inv.Args) {
		return program.NoValue, false
	}
	return inv.Args[i], true
}
