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

// Package ssaprog exposes a Go program in SSA form, its call graph and the result of the pointer analysis through
// the interfaces of the program package.
//
// Every node of the call graph is a function of the program. The blocks of a node are the basic blocks of its
// function, and its entry block is the first of them. Within a function, the parameters (receiver first) are the
// values 1 to n, followed by the free variables, the values defined by the instructions in block order, and the
// constants and globals the instructions use.
//
// Interface methods are abstract methods: they have no call graph node, and calls through an interface dispatch to
// the methods of the runtime types implementing the interface.
package ssaprog
