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
The inflow tool seeds the taint sources of a Go program: it resolves the source specifications of a configuration
file against the program's call graph and prints the tainted values, the objects they point to and the specs that
could not be resolved.

Usage:

	inflow [command] [flags] package...

The commands are:

	seeds      print the taint elements seeded by the source specs of the config
	summary    write the XML summaries of the methods matching a regex
	stats      print call graph statistics: size, recursive components and cycles
	version    print the version

The flags are:

	--config path     a path to the configuration file containing the source specs

	--build D         see the documentation of buildmode for the ssa package

	--platform os     load the packages for the GOOS os

	--verbose         set the log level to debug, overrides the config file option if set
*/
package main
