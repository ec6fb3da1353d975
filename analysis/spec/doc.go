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
Package spec defines the taint source specifications. A [SourceSpec] knows which methods it targets (its
[MethodNamePattern]), which argument slots it taints, and how to record the code elements it taints at a block in a
[domain.TaintMap].

There are four kinds of specifications:
  - [EntryArgSourceSpec] taints the arguments of the matching methods, at their entry blocks;
  - [CallArgSourceSpec] taints the arguments of the calls to the matching methods, at the call sites;
  - [CallRetSourceSpec] taints the values returned by the calls to the matching methods, at the call sites;
  - [StaticFieldSourceSpec] taints a static field, independently of any call.

Argument slots are 1-based and never include the receiver of a method.
*/
package spec
