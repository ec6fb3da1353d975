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
	"github.com/ujchoe/SCanDroid/analysis/config"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/internal/funcutil"
)

// MethodNamePattern matches methods by package, receiver type and name.
type MethodNamePattern struct {
	id config.CodeIdentifier
}

// NewMethodNamePattern returns a pattern matching the methods named method with receiver type recv in package pkg.
// Each string is a regex matching the whole component; the empty string matches anything.
func NewMethodNamePattern(pkg, recv, method string) MethodNamePattern {
	return MethodNamePattern{id: config.CompileRegexes(config.CodeIdentifier{Package: pkg, Type: recv, Method: method})}
}

func patternOf(cid config.CodeIdentifier) MethodNamePattern {
	return MethodNamePattern{id: config.CompileRegexes(cid)}
}

// Matches returns true if m matches the pattern
func (p MethodNamePattern) Matches(m program.Method) bool {
	return p.id.MatchMethod(m.Package(), m.Receiver(), m.Name())
}

// PossibleTargets returns the methods a call matching the pattern may dispatch to: for every method of the
// hierarchy that matches the pattern, the possible targets of a call to that method. The result has no duplicates
// and follows the order of the hierarchy's methods.
func (p MethodNamePattern) PossibleTargets(cha program.ClassHierarchy) []program.Method {
	var res []program.Method
	for _, m := range cha.Methods() {
		if p.Matches(m) {
			res = append(res, cha.PossibleTargets(m)...)
		}
	}
	return funcutil.Uniq(res)
}

func (p MethodNamePattern) String() string {
	s := p.id.Method
	if p.id.Type != "" {
		s = "(" + p.id.Type + ")." + s
	}
	if p.id.Package != "" {
		s = p.id.Package + "." + s
	}
	return s
}
