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
	"fmt"

	"github.com/ujchoe/SCanDroid/analysis/config"
	"github.com/ujchoe/SCanDroid/analysis/program"
)

// FromConfig builds the source spec described by a config entry. Returns a *ConfigurationError if the kind of the
// entry is not recognized or the entry is incomplete.
func FromConfig(entry config.SourceSpecEntry) (SourceSpec, error) {
	kind, err := ParseKind(entry.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case EntryArg:
		return NewEntryArgSourceSpec(patternOf(entry.CodeIdentifier), entry.Args), nil
	case CallArg:
		return NewCallArgSourceSpec(patternOf(entry.CodeIdentifier), entry.Args), nil
	case CallRet:
		return NewCallRetSourceSpec(patternOf(entry.CodeIdentifier)), nil
	case StaticField:
		if entry.Field == "" {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("static field spec %q has no field", entry)}
		}
		return NewStaticFieldSourceSpec(program.Field{
			Package: entry.Package,
			Type:    entry.Type,
			Name:    entry.Field,
		}), nil
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unhandled source spec kind %s", kind)}
	}
}

// FromConfigs builds all the source specs of the config, in order.
func FromConfigs(cfg *config.Config) ([]SourceSpec, error) {
	specs := make([]SourceSpec, 0, len(cfg.SourceSpecs))
	for i, entry := range cfg.SourceSpecs {
		s, err := FromConfig(entry)
		if err != nil {
			return nil, fmt.Errorf("source spec %d: %w", i, err)
		}
		specs = append(specs, s)
	}
	return specs, nil
}
