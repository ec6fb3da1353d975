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

package spec

import (
	"io"

	"github.com/ujchoe/SCanDroid/analysis/config"
	"github.com/ujchoe/SCanDroid/analysis/program"
)

// Context is the state shared by the specs while seeding: the program and a logger.
type Context struct {
	program.Program

	Logger *config.LogGroup
}

// NewContext returns a context for the program p logging to logger.
func NewContext(p program.Program, logger *config.LogGroup) *Context {
	return &Context{Program: p, Logger: logger}
}

// pointsTo returns the abstract objects v may point to in node n, or nil when no pointer analysis is available.
func (c *Context) pointsTo(n program.Node, v program.Value) []program.InstanceKey {
	if c.Pointer == nil {
		return nil
	}
	return c.Pointer.PointsTo(n, v)
}

// Log returns the logger of the context, discarding all messages when none was set
func (c *Context) Log() *config.LogGroup {
	if c.Logger == nil {
		c.Logger = config.NewLogGroupWithWriter(config.ErrLevel, io.Discard)
	}
	return c.Logger
}
