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

const (
	// DefaultCallgraphAnalysis is the call graph analysis used when the config does not specify one
	DefaultCallgraphAnalysis = "pointer"

	// DefaultLogMaxSize is the maximum size in megabytes of a log file before it is rotated
	DefaultLogMaxSize = 10

	// DefaultLogMaxBackups is the number of rotated log files kept
	DefaultLogMaxBackups = 3

	// DefaultLogMaxAge is the number of days rotated log files are kept
	DefaultLogMaxAge = 28
)

// Source spec kinds, as written in the config file
const (
	KindEntryArg    = "entry-arg"
	KindCallArg     = "call-arg"
	KindCallRet     = "call-ret"
	KindStaticField = "static-field"
)
