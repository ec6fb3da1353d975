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

package inflow

import (
	"fmt"

	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/analysis/spec"
)

// ConfigurationError is returned when the set of specifications is malformed. Analysis cannot proceed.
type ConfigurationError = spec.ConfigurationError

// ResolutionGap records a specification that could not be applied somewhere, because no entry block could be
// found. Gaps do not abort the analysis.
type ResolutionGap struct {
	// Spec is the specification that could not be applied
	Spec spec.SourceSpec

	// Node is the call graph node without entry block, nil when the gap is not specific to a node
	Node program.Node

	Reason string
}

func (g *ResolutionGap) Error() string {
	if g.Node == nil {
		return fmt.Sprintf("could not resolve %s: %s", g.Spec, g.Reason)
	}
	return fmt.Sprintf("could not resolve %s in %s: %s", g.Spec, g.Node, g.Reason)
}
