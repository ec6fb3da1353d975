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

package summary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/internal/programtest"
)

var (
	get = programtest.NewMethod("app", "*Cache", "Get", 1)
	put = programtest.NewMethod("app", "*Cache", "put", 2)
)

func getBody() []program.Instruction {
	return []program.Instruction{
		&program.Get{Field: program.Field{Package: "app", Type: "Cache", Name: "items"}, FieldType: "[]string",
			Ref: 1, Result: 3},
		&program.ArrayLoad{Array: 3, Index: 2, Result: 4},
		&program.New{Type: "app.entry", Result: 5},
		&program.Invoke{Target: put, Mode: program.VirtualInvoke, Args: []program.Value{1, 5, 4}},
		&program.Put{Field: program.Field{Package: "app", Name: "hits"}, FieldType: "int", Static: true, Val: 4},
		&program.ArrayStore{Array: 3, Index: 2, Val: 5},
		&program.Return{Result: 4},
	}
}

func attrs(e Element) map[string]string {
	res := map[string]string{}
	for _, a := range e.Attrs {
		res[a.Name.Local] = a.Value
	}
	return res
}

func TestWriteMethod(t *testing.T) {
	summary, err := WriteMethod(get, getBody())
	require.NoError(t, err)
	assert.Equal(t, "Get", summary.Name)
	assert.Equal(t, "*Cache", summary.Receiver)
	assert.False(t, summary.Static)
	require.Len(t, summary.Body, 7)

	expected := []struct {
		name  string
		attrs map[string]string
	}{
		{GetFieldElement, map[string]string{"ref": "arg0", "class": "app/Cache", "field": "items",
			"fieldType": "[]string", "def": "localdef_0"}},
		{ArrayLoadElement, map[string]string{"ref": "localdef_0", "def": "localdef_1", "index": "2"}},
		{NewElement, map[string]string{"def": "localdef_2", "class": "app.entry"}},
		{CallElement, map[string]string{"type": "virtual", "name": "put", "class": "app/*Cache",
			"arg0": "arg0", "arg1": "localdef_2", "arg2": "localdef_1"}},
		{PutStaticElement, map[string]string{"class": "app/", "field": "hits", "fieldType": "int",
			"value": "localdef_1"}},
		{ArrayStoreElement, map[string]string{"ref": "localdef_0", "value": "localdef_2", "index": "2"}},
		{ReturnElement, map[string]string{"value": "localdef_1"}},
	}
	for i, e := range expected {
		assert.Equal(t, e.name, summary.Body[i].XMLName.Local)
		assert.Equal(t, e.attrs, attrs(summary.Body[i]), "element %d", i)
	}
}

func TestWriteMethodFieldRefs(t *testing.T) {
	f := programtest.NewFunction("app", "f", 1)
	summary, err := WriteMethod(f, []program.Instruction{
		&program.Get{Field: program.Field{Package: "app", Type: "T", Name: "x"}, Ref: 0, Result: 2},
		&program.Put{Field: program.Field{Package: "app", Type: "T", Name: "x"}, Ref: 1, Val: 2},
		&program.Invoke{Target: f, Args: []program.Value{2}, Result: 3},
		&program.Return{},
	})
	require.NoError(t, err)
	ref, _ := summary.Body[0].Attr("ref")
	assert.Equal(t, "unknown", ref)
	ref, _ = summary.Body[1].Attr("ref")
	assert.Equal(t, "arg0", ref)
	def, _ := summary.Body[2].Attr("def")
	assert.Equal(t, "localdef_1", def)
	_, hasValue := summary.Body[3].Attr("value")
	assert.False(t, hasValue)
	assert.True(t, summary.Static)
}

func TestUnsupportedInstruction(t *testing.T) {
	body := append(getBody()[:2], &program.Other{Op: "phi"})
	summary, err := WriteMethod(get, body)
	assert.Nil(t, summary)
	var serr *SerializationError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "phi", serr.Instruction.String())
	assert.Contains(t, err.Error(), "unsupported")
}

func TestUndefinedValue(t *testing.T) {
	_, err := WriteMethod(get, []program.Instruction{&program.Return{Result: 9}})
	var serr *SerializationError
	require.True(t, errors.As(err, &serr))
	assert.Contains(t, serr.Reason, "v9")
}

func TestFailingInstructionDefinesNothing(t *testing.T) {
	s := newWriterState(put)
	_, err := s.element(&program.Invoke{Target: put, Args: []program.Value{1, 42}, Result: 7})
	require.Error(t, err)
	assert.Equal(t, 0, s.nextDef)
	_, defined := s.names[7]
	assert.False(t, defined)
}

func TestNamesArePerMethod(t *testing.T) {
	first, err := WriteMethod(get, getBody())
	require.NoError(t, err)
	second, err := WriteMethod(get, getBody())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeDecode(t *testing.T) {
	summary, err := WriteMethod(get, getBody())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, summary))
	out := buf.String()
	assert.Contains(t, out, `<summary-spec>`)
	assert.Contains(t, out, `<method name="Get" package="app" receiver="*Cache" static="false">`)
	assert.Contains(t, out, `<aaload ref="localdef_0" def="localdef_1" index="2"></aaload>`)

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, decoded.Methods, 1)
	m := decoded.Methods[0]
	assert.Equal(t, "Get", m.Name)
	require.Len(t, m.Body, len(summary.Body))
	for i := range m.Body {
		assert.Equal(t, summary.Body[i].XMLName.Local, m.Body[i].XMLName.Local)
		assert.Equal(t, attrs(summary.Body[i]), attrs(m.Body[i]))
	}
}
