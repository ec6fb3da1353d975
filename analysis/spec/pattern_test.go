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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/internal/programtest"
)

func TestMethodNamePatternMatches(t *testing.T) {
	readInput := programtest.NewFunction("example.com/app", "readInput", 1)
	readAll := programtest.NewFunction("example.com/app", "readAll", 1)
	getLine := programtest.NewMethod("example.com/io", "*Reader", "GetLine", 0)

	p := NewMethodNamePattern("example.com/app", "", "readInput")
	assert.True(t, p.Matches(readInput))
	assert.False(t, p.Matches(readAll))
	assert.False(t, p.Matches(getLine))

	p = NewMethodNamePattern("", "", "read.*")
	assert.True(t, p.Matches(readInput))
	assert.True(t, p.Matches(readAll))

	p = NewMethodNamePattern("example.com/io", "\\*Reader", "")
	assert.True(t, p.Matches(getLine))
	assert.False(t, p.Matches(readAll))
}

func TestMethodNamePatternPossibleTargets(t *testing.T) {
	prog := programtest.New()
	abstract := prog.AddMethod(programtest.NewMethod("io", "Reader", "Read", 1))
	file := prog.AddMethod(programtest.NewMethod("os", "*File", "Read", 1))
	conn := prog.AddMethod(programtest.NewMethod("net", "*Conn", "Read", 1))
	prog.AddMethod(programtest.NewMethod("os", "*File", "Write", 1))
	prog.SetTargets(abstract, file, conn)

	// The interface method dispatches to both implementations; the implementations also match by name but are
	// only reported once.
	targets := NewMethodNamePattern("", "", "Read").PossibleTargets(prog)
	assert.Equal(t, []program.Method{file, conn}, targets)

	targets = NewMethodNamePattern("io", "", "Read").PossibleTargets(prog)
	assert.Equal(t, []program.Method{file, conn}, targets)

	targets = NewMethodNamePattern("os", "", "Read").PossibleTargets(prog)
	assert.Equal(t, []program.Method{file}, targets)

	assert.Empty(t, NewMethodNamePattern("", "", "Close").PossibleTargets(prog))
}

func TestMethodNamePatternPossibleTargetsKeepsFirstOccurrence(t *testing.T) {
	prog := programtest.New()
	reader := prog.AddMethod(programtest.NewMethod("io", "Reader", "Read", 1))
	readCloser := prog.AddMethod(programtest.NewMethod("io", "ReadCloser", "Read", 1))
	file := prog.AddMethod(programtest.NewMethod("os", "*File", "Read", 1))
	conn := prog.AddMethod(programtest.NewMethod("net", "*Conn", "Read", 1))
	pipe := prog.AddMethod(programtest.NewMethod("io", "*PipeReader", "Read", 1))
	prog.SetTargets(reader, file, conn)
	prog.SetTargets(readCloser, conn, pipe, file)

	targets := NewMethodNamePattern("io", "Read.*", "Read").PossibleTargets(prog)
	assert.Equal(t, []program.Method{file, conn, pipe}, targets)
}

func TestMethodNamePatternString(t *testing.T) {
	assert.Equal(t, "os.(\\*File).Read", NewMethodNamePattern("os", "\\*File", "Read").String())
	assert.Equal(t, "getSecret", NewMethodNamePattern("", "", "getSecret").String())
}
