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
)

// Kind is the kind of a source specification
type Kind int

const (
	// EntryArg specs taint the arguments of methods on entry
	EntryArg Kind = iota + 1
	// CallArg specs taint the arguments at call sites
	CallArg
	// CallRet specs taint the returned values at call sites
	CallRet
	// StaticField specs taint static fields
	StaticField
)

func (k Kind) String() string {
	switch k {
	case EntryArg:
		return config.KindEntryArg
	case CallArg:
		return config.KindCallArg
	case CallRet:
		return config.KindCallRet
	case StaticField:
		return config.KindStaticField
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind returns the kind named s in a config file.
func ParseKind(s string) (Kind, error) {
	switch s {
	case config.KindEntryArg:
		return EntryArg, nil
	case config.KindCallArg:
		return CallArg, nil
	case config.KindCallRet:
		return CallRet, nil
	case config.KindStaticField:
		return StaticField, nil
	default:
		return 0, &ConfigurationError{Reason: fmt.Sprintf("unrecognized source spec kind %q", s)}
	}
}

// ConfigurationError is raised when the set of source specifications is malformed. The analysis cannot proceed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}
