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

package ssaprog

import (
	"go/types"

	"golang.org/x/tools/go/ssa"
)

// Method is a function of the program, or an abstract interface method.
type Method struct {
	fn     *ssa.Function
	obj    *types.Func
	pkg    string
	recv   string
	params int
}

func newFunctionMethod(fn *ssa.Function) *Method {
	m := &Method{fn: fn, pkg: packagePath(fn)}
	sig := fn.Signature
	m.params = sig.Params().Len()
	if sig.Recv() != nil {
		m.params++
		m.recv = types.TypeString(sig.Recv().Type(), qualifier(m.pkg))
	}
	return m
}

func newAbstractMethod(obj *types.Func) *Method {
	m := &Method{obj: obj}
	if obj.Pkg() != nil {
		m.pkg = obj.Pkg().Path()
	}
	sig := obj.Type().(*types.Signature)
	m.params = sig.Params().Len() + 1
	if sig.Recv() != nil {
		m.recv = types.TypeString(sig.Recv().Type(), qualifier(m.pkg))
	}
	return m
}

// Function returns the SSA function of the method, nil if the method is abstract
func (m *Method) Function() *ssa.Function { return m.fn }

// IsAbstract returns true for interface methods
func (m *Method) IsAbstract() bool { return m.fn == nil }

func (m *Method) Name() string {
	if m.fn != nil {
		return m.fn.Name()
	}
	return m.obj.Name()
}

func (m *Method) Package() string  { return m.pkg }
func (m *Method) Receiver() string { return m.recv }
func (m *Method) IsStatic() bool   { return m.recv == "" }
func (m *Method) NumParams() int   { return m.params }

func (m *Method) String() string {
	if m.fn != nil {
		return m.fn.String()
	}
	return m.obj.FullName()
}

// packagePath returns the path of the package of fn, or the package of the object it was created from for synthetic
// functions
func packagePath(fn *ssa.Function) string {
	if fn.Pkg != nil {
		return fn.Pkg.Pkg.Path()
	}
	if obj := fn.Object(); obj != nil && obj.Pkg() != nil {
		return obj.Pkg().Path()
	}
	return ""
}

// qualifier prints types of package path unqualified, and other types with their full package path
func qualifier(path string) types.Qualifier {
	return func(p *types.Package) string {
		if p.Path() == path {
			return ""
		}
		return p.Path()
	}
}
