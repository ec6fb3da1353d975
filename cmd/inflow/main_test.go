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

package main

import (
	"bytes"
	"path"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujchoe/SCanDroid/analysis"
	"github.com/ujchoe/SCanDroid/analysis/summary"
)

func basicDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return path.Join(path.Dir(filename), "../../testdata/src/inflow/basic")
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, run(t, "version"), analysis.Version)
}

func TestSeedsCommand(t *testing.T) {
	dir := basicDir()
	out := run(t, "seeds", "--config", path.Join(dir, "config.yaml"), path.Join(dir, "main.go"))
	assert.Contains(t, out, "CallReturnFlow")
	assert.Contains(t, out, "EntryArgFlow")
	assert.Contains(t, out, "CallArgFlow")
	assert.Contains(t, out, "StaticFieldFlow")
	assert.Contains(t, out, "test-input")
	assert.NotContains(t, out, "unresolved:")
}

func TestSummaryCommand(t *testing.T) {
	dir := basicDir()
	out := run(t, "summary", "--config", path.Join(dir, "config.yaml"), "--match", `\.body$`,
		path.Join(dir, "main.go"))
	summaries, err := summary.Decode(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, summaries.Methods, 1)
	m := summaries.Methods[0]
	assert.Equal(t, "body", m.Name)
	assert.Equal(t, "*Request", m.Receiver)
	require.Len(t, m.Body, 2)
	assert.Equal(t, "getfield", m.Body[0].XMLName.Local)
	ref, _ := m.Body[0].Attr("ref")
	assert.Equal(t, "arg0", ref)
}

func TestStatsCommand(t *testing.T) {
	dir := basicDir()
	out := run(t, "stats", "--config", path.Join(dir, "config.yaml"), path.Join(dir, "main.go"))
	assert.Contains(t, out, "Entrypoints")
	assert.Contains(t, out, "Recursive components")
}

func TestSeedsNeedsPackages(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"seeds"})
	assert.Error(t, cmd.Execute())
}

func TestNormalizeFlagName(t *testing.T) {
	assert.Equal(t, "reachable-only", string(normalizeFlagName(nil, "reachable_only")))
	assert.Equal(t, "config", string(normalizeFlagName(nil, "config")))
}
