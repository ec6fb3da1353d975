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
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/ujchoe/SCanDroid/analysis/program"
)

// Element names
const (
	ArrayLoadElement  = "aaload"
	ArrayStoreElement = "aastore"
	ReturnElement     = "return"
	GetFieldElement   = "getfield"
	GetStaticElement  = "getstatic"
	PutFieldElement   = "putfield"
	PutStaticElement  = "putstatic"
	CallElement       = "call"
	NewElement        = "new"
)

// Summaries is the root of a summary document
type Summaries struct {
	XMLName xml.Name         `xml:"summary-spec"`
	Methods []*MethodSummary `xml:"method"`
}

// MethodSummary is the summary of one method
type MethodSummary struct {
	XMLName  xml.Name  `xml:"method"`
	Name     string    `xml:"name,attr"`
	Package  string    `xml:"package,attr"`
	Receiver string    `xml:"receiver,attr,omitempty"`
	Static   bool      `xml:"static,attr"`
	Body     []Element `xml:",any"`
}

// Element is the summary of one instruction
type Element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
}

// Attr returns the value of the attribute name of e, and whether e has it
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// writerState holds the names of the values of the method being summarized
type writerState struct {
	method  program.Method
	names   map[program.Value]string
	nextDef int
}

func newWriterState(m program.Method) *writerState {
	s := &writerState{method: m, names: map[program.Value]string{}}
	for i := 0; i < m.NumParams(); i++ {
		s.names[program.Value(i+1)] = "arg" + strconv.Itoa(i)
	}
	return s
}

// define names a new value
func (s *writerState) define(v program.Value) string {
	name := "localdef_" + strconv.Itoa(s.nextDef)
	s.names[v] = name
	s.nextDef++
	return name
}

func (s *writerState) use(instr program.Instruction, v program.Value) (string, error) {
	if name, ok := s.names[v]; ok {
		return name, nil
	}
	return "", &SerializationError{Method: s.method, Instruction: instr, Reason: fmt.Sprintf("v%d is not defined", v)}
}

// refName names the object of a field access
func refName(v program.Value) string {
	if v == program.NoValue {
		return "unknown"
	}
	return "arg" + strconv.Itoa(int(v)-1)
}

func className(f program.Field) string {
	return f.Package + "/" + f.Type
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// WriteMethod summarizes the instructions instrs of m. It fails at the first instruction that cannot be summarized,
// and then returns no summary.
func WriteMethod(m program.Method, instrs []program.Instruction) (*MethodSummary, error) {
	s := newWriterState(m)
	summary := &MethodSummary{
		Name:     m.Name(),
		Package:  m.Package(),
		Receiver: m.Receiver(),
		Static:   m.IsStatic(),
	}
	for _, instr := range instrs {
		elt, err := s.element(instr)
		if err != nil {
			return nil, err
		}
		summary.Body = append(summary.Body, elt)
	}
	return summary, nil
}

// element returns the summary of instr. Uses are resolved before any value is defined, so a failing instruction
// leaves no trace in the state.
func (s *writerState) element(instr program.Instruction) (Element, error) {
	switch instr := instr.(type) {
	case *program.ArrayLoad:
		ref, err := s.use(instr, instr.Array)
		if err != nil {
			return Element{}, err
		}
		return newElement(ArrayLoadElement,
			attr("ref", ref),
			attr("def", s.define(instr.Result)),
			attr("index", strconv.Itoa(int(instr.Index)))), nil

	case *program.ArrayStore:
		ref, err := s.use(instr, instr.Array)
		if err != nil {
			return Element{}, err
		}
		value, err := s.use(instr, instr.Val)
		if err != nil {
			return Element{}, err
		}
		return newElement(ArrayStoreElement,
			attr("ref", ref),
			attr("value", value),
			attr("index", strconv.Itoa(int(instr.Index)))), nil

	case *program.Return:
		if instr.Result == program.NoValue {
			return newElement(ReturnElement), nil
		}
		value, err := s.use(instr, instr.Result)
		if err != nil {
			return Element{}, err
		}
		return newElement(ReturnElement, attr("value", value)), nil

	case *program.Get:
		name := GetFieldElement
		var attrs []xml.Attr
		if instr.Static {
			name = GetStaticElement
		} else {
			attrs = append(attrs, attr("ref", refName(instr.Ref)))
		}
		attrs = append(attrs,
			attr("class", className(instr.Field)),
			attr("field", instr.Field.Name),
			attr("fieldType", instr.FieldType),
			attr("def", s.define(instr.Result)))
		return newElement(name, attrs...), nil

	case *program.Put:
		value, err := s.use(instr, instr.Val)
		if err != nil {
			return Element{}, err
		}
		name := PutFieldElement
		var attrs []xml.Attr
		if instr.Static {
			name = PutStaticElement
		} else {
			attrs = append(attrs, attr("ref", refName(instr.Ref)))
		}
		attrs = append(attrs,
			attr("class", className(instr.Field)),
			attr("field", instr.Field.Name),
			attr("fieldType", instr.FieldType),
			attr("value", value))
		return newElement(name, attrs...), nil

	case *program.Invoke:
		args := make([]xml.Attr, len(instr.Args))
		for i, a := range instr.Args {
			name, err := s.use(instr, a)
			if err != nil {
				return Element{}, err
			}
			args[i] = attr("arg"+strconv.Itoa(i), name)
		}
		target := instr.Target
		class := target.Package()
		if target.Receiver() != "" {
			class += "/" + target.Receiver()
		}
		attrs := []xml.Attr{
			attr("type", instr.Mode.String()),
			attr("name", target.Name()),
			attr("class", class),
		}
		if instr.Result != program.NoValue {
			attrs = append(attrs, attr("def", s.define(instr.Result)))
		}
		return newElement(CallElement, append(attrs, args...)...), nil

	case *program.New:
		return newElement(NewElement,
			attr("def", s.define(instr.Result)),
			attr("class", instr.Type)), nil

	default:
		return Element{}, &SerializationError{Method: s.method, Instruction: instr, Reason: "unsupported instruction"}
	}
}

func newElement(name string, attrs ...xml.Attr) Element {
	return Element{XMLName: xml.Name{Local: name}, Attrs: attrs}
}

// Encode writes the summaries as an indented XML document to w
func Encode(w io.Writer, methods ...*MethodSummary) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(Summaries{Methods: methods}); err != nil {
		return fmt.Errorf("encoding summaries: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode reads a summary document
func Decode(r io.Reader) (*Summaries, error) {
	var s Summaries
	if err := xml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding summaries: %w", err)
	}
	return &s, nil
}
