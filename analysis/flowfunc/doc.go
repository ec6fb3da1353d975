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

// Package flowfunc implements the flow functions of the taint problem, evaluated by an IFDS solver over the indices
// of a frozen taint domain.
//
// A flow function maps a fact d1 to the set of facts it propagates to. The zero fact always propagates to itself,
// and is the one that introduces seeded facts. Flow functions only read the domain, so a solver may evaluate them
// concurrently.
package flowfunc
