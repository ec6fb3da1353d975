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

/*
Package config provides the configuration of the inflow analysis.

Use [Load](filename) to load a configuration from a yaml file, or [NewDefault] to start from the defaults.

The top-level fields can be any of the fields defined in the Config struct type. For example, a valid config file is
as follows:

	options:
	  log-level: 4
	  callgraph-analysis: pointer
	  reachable-only: true

	source-specs:
	  - kind: entry-arg
	    package: example.com/app
	    method: readInput
	  - kind: call-ret
	    method: getSecret
	  - kind: call-arg
	    package: net/http
	    method: Handle
	    args: [2]
	  - kind: static-field
	    package: os
	    field: Args

	instance-key-labels:
	  "makeslice": "content://"

# Identifying methods and fields

The package, type, method and field strings of a source spec are regular expressions. An empty string matches
anything. If some regex fails to compile, the strings are matched literally.
*/
package config
