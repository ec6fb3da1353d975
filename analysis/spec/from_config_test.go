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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujchoe/SCanDroid/analysis/config"
	"github.com/ujchoe/SCanDroid/analysis/program"
)

func TestFromConfigs(t *testing.T) {
	cfg, err := config.Parse([]byte(`
source-specs:
  - kind: entry-arg
    method: readInput
  - kind: call-arg
    package: net/http
    method: Handle
    args: [2]
  - kind: call-ret
    method: getSecret
  - kind: static-field
    package: os
    field: Args
`))
	require.NoError(t, err)
	specs, err := FromConfigs(cfg)
	require.NoError(t, err)
	require.Len(t, specs, 4)

	assert.IsType(t, &EntryArgSourceSpec{}, specs[0])
	assert.Nil(t, specs[0].ArgNums())
	assert.IsType(t, &CallArgSourceSpec{}, specs[1])
	assert.Equal(t, []int{2}, specs[1].ArgNums())
	assert.IsType(t, &CallRetSourceSpec{}, specs[2])
	require.IsType(t, &StaticFieldSourceSpec{}, specs[3])
	assert.Equal(t, program.Field{Package: "os", Name: "Args"}, specs[3].(*StaticFieldSourceSpec).Field)

	kinds := []Kind{EntryArg, CallArg, CallRet, StaticField}
	for i, s := range specs {
		assert.Equal(t, kinds[i], s.Kind())
	}
}

func TestFromConfigUnknownKind(t *testing.T) {
	_, err := FromConfig(config.SourceSpecEntry{Kind: "sink"})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "sink")

	cfg := config.NewDefault()
	cfg.SourceSpecs = []config.SourceSpecEntry{{Kind: config.KindCallRet}, {Kind: "bogus"}}
	_, err = FromConfigs(cfg)
	assert.True(t, errors.As(err, &cfgErr))
}

func TestFromConfigStaticFieldWithoutField(t *testing.T) {
	_, err := FromConfig(config.SourceSpecEntry{Kind: config.KindStaticField})
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{EntryArg, CallArg, CallRet, StaticField} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}
