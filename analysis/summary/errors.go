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
	"fmt"

	"github.com/ujchoe/SCanDroid/analysis/program"
)

// SerializationError is returned when an instruction cannot be summarized
type SerializationError struct {
	Method      program.Method
	Instruction program.Instruction
	Reason      string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot summarize %q in %s: %s", e.Instruction, e.Method, e.Reason)
}
