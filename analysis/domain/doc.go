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
Package domain contains the taint domain: the code elements that can carry taint, the flow types recording why an
element became tainted at some block, and the [Domain] assigning a stable integer index to every (code element,
flow type) pair. The indices are the facts the dataflow solver manipulates; index 0 is the zero fact.

The [TaintMap] is the result of seeding: for each block, the code elements tainted there, grouped by flow type.
*/
package domain
