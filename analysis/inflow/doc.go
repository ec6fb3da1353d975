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

// Package inflow seeds a taint analysis: it drives a set of source specifications against a program's call graph
// and supergraph, and collects the initial taint map handed to the solver.
//
// Seeding happens in three phases, by kind of specification:
//   - entry argument specs are applied at the entry blocks of every call graph node of every method they match;
//   - static field specs are applied at the entry blocks of every entrypoint of the call graph;
//   - call argument and call return specs are applied together, in a single scan of all the call instructions of
//     the supergraph.
//
// Seeding is additive. The taint map returned does not depend on the order of the specifications.
package inflow
