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

package config

import (
	"regexp"
)

// CodeIdentifier identifies a method or a field in the program. Each non-empty field is a regex the corresponding
// component of the code element must match.
type CodeIdentifier struct {
	Package string `yaml:"package"`
	Type    string `yaml:"type"`
	Method  string `yaml:"method"`
	Field   string `yaml:"field"`
	// This will not be part of the yaml config
	computedRegexs *codeIdentifierRegex
}

type codeIdentifierRegex struct {
	packageRegex *regexp.Regexp
	typeRegex    *regexp.Regexp
	methodRegex  *regexp.Regexp
	fieldRegex   *regexp.Regexp
}

// CompileRegexes compiles the strings in the code identifier into regexes. It compiles all identifiers into regexes
// or none.
func CompileRegexes(cid CodeIdentifier) CodeIdentifier {
	packageRegex, err := compileAnchored(cid.Package)
	if err != nil {
		return cid
	}
	typeRegex, err := compileAnchored(cid.Type)
	if err != nil {
		return cid
	}
	methodRegex, err := compileAnchored(cid.Method)
	if err != nil {
		return cid
	}
	fieldRegex, err := compileAnchored(cid.Field)
	if err != nil {
		return cid
	}
	cid.computedRegexs = &codeIdentifierRegex{
		packageRegex: packageRegex,
		typeRegex:    typeRegex,
		methodRegex:  methodRegex,
		fieldRegex:   fieldRegex,
	}
	return cid
}

// MatchMethod returns true if the method with name name, declared in package pkg on the receiver type recv (empty
// for functions) matches the identifier. Empty fields of the identifier match anything. Regexes are anchored: the
// method name "Read" does not match "ReadAll".
func (cid CodeIdentifier) MatchMethod(pkg, recv, name string) bool {
	return match(cid.Package, pkg, cid.regex(func(r *codeIdentifierRegex) *regexp.Regexp { return r.packageRegex })) &&
		match(cid.Type, recv, cid.regex(func(r *codeIdentifierRegex) *regexp.Regexp { return r.typeRegex })) &&
		match(cid.Method, name, cid.regex(func(r *codeIdentifierRegex) *regexp.Regexp { return r.methodRegex }))
}

// MatchField returns true if the field name of type typ in package pkg matches the identifier.
func (cid CodeIdentifier) MatchField(pkg, typ, name string) bool {
	return match(cid.Package, pkg, cid.regex(func(r *codeIdentifierRegex) *regexp.Regexp { return r.packageRegex })) &&
		match(cid.Type, typ, cid.regex(func(r *codeIdentifierRegex) *regexp.Regexp { return r.typeRegex })) &&
		match(cid.Field, name, cid.regex(func(r *codeIdentifierRegex) *regexp.Regexp { return r.fieldRegex }))
}

func (cid CodeIdentifier) regex(get func(*codeIdentifierRegex) *regexp.Regexp) *regexp.Regexp {
	if cid.computedRegexs == nil {
		return nil
	}
	return get(cid.computedRegexs)
}

func match(pattern string, s string, r *regexp.Regexp) bool {
	if pattern == "" {
		return true
	}
	if r == nil {
		return pattern == s
	}
	return r.MatchString(s)
}

// compileAnchored compiles a regex that must match the whole string
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + pattern + ")$")
}
