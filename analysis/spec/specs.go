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
	"fmt"

	"github.com/ujchoe/SCanDroid/analysis/domain"
	"github.com/ujchoe/SCanDroid/analysis/program"
)

// SourceSpec is a taint source specification. The implementations are EntryArgSourceSpec, CallArgSourceSpec,
// CallRetSourceSpec and StaticFieldSourceSpec.
type SourceSpec interface {
	fmt.Stringer

	// Kind returns the kind of the spec
	Kind() Kind

	// NamePattern returns the pattern matching the methods targeted by the spec
	NamePattern() MethodNamePattern

	// ArgNums returns the argument slots of the spec. A nil slice means all the declared parameters.
	ArgNums() []int

	// AddDomainElements records in taintMap the elements the spec taints at block. m is the method the spec
	// matched: the method entered by block when inv is nil, otherwise the resolved target of the call inv.
	// argNums are the slots to taint. Adding elements is idempotent.
	AddDomainElements(ctx *Context, taintMap domain.TaintMap, m program.Method, block program.Block,
		inv *program.Invoke, argNums []int)

	sourceSpec()
}

// base contains the fields common to all specs
type base struct {
	pattern MethodNamePattern
	argNums []int
}

func (b base) NamePattern() MethodNamePattern { return b.pattern }

func (b base) ArgNums() []int {
	if b.argNums == nil {
		return nil
	}
	return append([]int{}, b.argNums...)
}

func (b base) describe(k Kind) string {
	if b.argNums == nil {
		return fmt.Sprintf("%s %s", k, b.pattern)
	}
	return fmt.Sprintf("%s %s args=%v", k, b.pattern, b.argNums)
}

// EntryArgSourceSpec taints the arguments of the matching methods when they are entered.
type EntryArgSourceSpec struct {
	base
}

// CallArgSourceSpec taints the arguments passed to the matching methods at call sites.
type CallArgSourceSpec struct {
	base
}

// CallRetSourceSpec taints the values returned by the matching methods at call sites.
type CallRetSourceSpec struct {
	base
}

// StaticFieldSourceSpec taints a static field. It has no name pattern.
type StaticFieldSourceSpec struct {
	base
	Field program.Field
}

// NewEntryArgSourceSpec returns a spec tainting the argNums arguments of the methods matching pattern.
func NewEntryArgSourceSpec(pattern MethodNamePattern, argNums []int) *EntryArgSourceSpec {
	return &EntryArgSourceSpec{base{pattern: pattern, argNums: argNums}}
}

// NewCallArgSourceSpec returns a spec tainting the argNums arguments of calls to methods matching pattern.
func NewCallArgSourceSpec(pattern MethodNamePattern, argNums []int) *CallArgSourceSpec {
	return &CallArgSourceSpec{base{pattern: pattern, argNums: argNums}}
}

// NewCallRetSourceSpec returns a spec tainting the results of calls to methods matching pattern.
func NewCallRetSourceSpec(pattern MethodNamePattern) *CallRetSourceSpec {
	return &CallRetSourceSpec{base{pattern: pattern}}
}

// NewStaticFieldSourceSpec returns a spec tainting the static field f.
func NewStaticFieldSourceSpec(f program.Field) *StaticFieldSourceSpec {
	return &StaticFieldSourceSpec{Field: f}
}

func (*EntryArgSourceSpec) sourceSpec()    {}
func (*CallArgSourceSpec) sourceSpec()     {}
func (*CallRetSourceSpec) sourceSpec()     {}
func (*StaticFieldSourceSpec) sourceSpec() {}

func (*EntryArgSourceSpec) Kind() Kind    { return EntryArg }
func (*CallArgSourceSpec) Kind() Kind     { return CallArg }
func (*CallRetSourceSpec) Kind() Kind     { return CallRet }
func (*StaticFieldSourceSpec) Kind() Kind { return StaticField }

func (s *EntryArgSourceSpec) String() string { return s.describe(EntryArg) }
func (s *CallArgSourceSpec) String() string  { return s.describe(CallArg) }
func (s *CallRetSourceSpec) String() string  { return s.describe(CallRet) }
func (s *StaticFieldSourceSpec) String() string {
	return fmt.Sprintf("%s %s", StaticField, s.Field)
}

// AddDomainElements taints the parameters of m at its entry block. inv is ignored.
func (s *EntryArgSourceSpec) AddDomainElements(ctx *Context, taintMap domain.TaintMap, m program.Method,
	block program.Block, _ *program.Invoke, argNums []int) {
	for _, slot := range argNums {
		v, ok := ParamValue(m, slot)
		if !ok {
			ctx.Log().Warnf("%s: %s has no argument %d\n", s, m, slot)
			continue
		}
		addValue(ctx, taintMap, block, domain.EntryArgFlow{At: block.ID(), Arg: slot}, v)
	}
}

// AddDomainElements taints the arguments of the call inv to m. Nothing is tainted when inv is nil.
func (s *CallArgSourceSpec) AddDomainElements(ctx *Context, taintMap domain.TaintMap, m program.Method,
	block program.Block, inv *program.Invoke, argNums []int) {
	if inv == nil {
		ctx.Log().Warnf("%s: no call site at %s\n", s, block.ID())
		return
	}
	for _, slot := range argNums {
		v, ok := InvokeArg(inv, m, slot)
		if !ok {
			ctx.Log().Warnf("%s: call %s has no argument %d\n", s, inv, slot)
			continue
		}
		addValue(ctx, taintMap, block, domain.CallArgFlow{At: block.ID(), Arg: slot}, v)
	}
}

// AddDomainElements taints the result of the call inv to m. Nothing is tainted when inv is nil or the call does
// not return a value. argNums is ignored.
func (s *CallRetSourceSpec) AddDomainElements(ctx *Context, taintMap domain.TaintMap, m program.Method,
	block program.Block, inv *program.Invoke, _ []int) {
	if inv == nil {
		ctx.Log().Warnf("%s: no call site at %s\n", s, block.ID())
		return
	}
	if inv.Result == program.NoValue {
		ctx.Log().Debugf("%s: call to %s at %s returns nothing\n", s, m, block.ID())
		return
	}
	addValue(ctx, taintMap, block, domain.CallReturnFlow{At: block.ID()}, inv.Result)
}

// AddDomainElements taints the static field of the spec at block. The method, the call and argNums are ignored.
func (s *StaticFieldSourceSpec) AddDomainElements(_ *Context, taintMap domain.TaintMap, _ program.Method,
	block program.Block, _ *program.Invoke, _ []int) {
	taintMap.Add(block.ID(), domain.StaticFieldFlow{At: block.ID(), Field: s.Field},
		domain.StaticFieldElement{Field: s.Field})
}

// addValue taints the local value v of the node of block under flow, and the objects v points to.
func addValue(ctx *Context, taintMap domain.TaintMap, block program.Block, flow domain.FlowType, v program.Value) {
	node := block.Node()
	at := block.ID()
	taintMap.Add(at, flow, domain.LocalElement{Node: node.ID(), Value: v})
	for _, key := range ctx.pointsTo(node, v) {
		taintMap.Add(at, domain.InstanceKeyFlow{At: at, Key: key}, domain.InstanceKeyElement{Key: key})
	}
}
