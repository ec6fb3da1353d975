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

// Package summary exports method bodies to declarative XML summaries.
//
// Only array loads and stores, returns, field reads and writes, calls and allocations can be summarized. Any other
// instruction makes the summary of its method fail with a *SerializationError.
//
// Values are named after their definition: the parameters of a method are arg0 to argN, and the values defined by
// the summarized instructions are localdef_0, localdef_1, ... in order of definition. For example:
//
//	<method name="Get" package="app" receiver="*Cache" static="false">
//	  <getfield ref="arg0" class="app/Cache" field="items" fieldType="[]string" def="localdef_0"></getfield>
//	  <aaload ref="localdef_0" def="localdef_1" index="2"></aaload>
//	  <return value="localdef_1"></return>
//	</method>
package summary
