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
Package program defines the view of an analyzed program that the taint seeding engine consumes: the call graph,
the class hierarchy used to resolve dispatch targets, the supergraph of basic blocks in context and the
points-to analysis. Those are built elsewhere (see the ssaprog package for an implementation over Go SSA); this
package only fixes the interfaces and the small closed set of instruction kinds the engine inspects.
*/
package program
