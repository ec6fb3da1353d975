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

// Package analysistest loads the test programs of the testdata directory, with their configuration and the
// positions of their annotations.
package analysistest

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/ujchoe/SCanDroid/analysis"
	"github.com/ujchoe/SCanDroid/analysis/config"
	"golang.org/x/tools/go/ssa"
)

// LoadTest loads the program in the directory dir, looking for a main.go and a config.yaml. If additional files
// are specified as extraFiles, the program will be loaded using those files too.
func LoadTest(t *testing.T, dir string, extraFiles []string) (*ssa.Program, *config.Config) {
	t.Helper()
	files := []string{filepath.Join(dir, "./main.go")}
	for _, extraFile := range extraFiles {
		files = append(files, filepath.Join(dir, extraFile))
	}

	loaded, err := analysis.LoadProgram(context.Background(), nil, "", ssa.BuilderMode(0), files)
	if err != nil {
		t.Fatalf("error loading packages: %s", err)
	}
	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("error loading config: %s", err)
	}
	return loaded.Program, cfg
}

// SourceRegex matches annotations of the form "@Source(id1, id2, id3)"
var SourceRegex = regexp.MustCompile(`//.*@Source\(((?:\s*\w+\s*,?)+)\)`)

// LPos is a position without column
type LPos struct {
	Filename string
	Line     int
}

func (p LPos) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// RemoveColumn drops the column of the position and keeps the base name of its file
func RemoveColumn(pos token.Position) LPos {
	return LPos{Line: pos.Line, Filename: filepath.Base(pos.Filename)}
}

// ExpectedSources parses the Go files in dir and returns the identifiers of the @Source annotations, by position.
func ExpectedSources(dir string) (map[LPos][]string, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", dir, err)
	}

	sources := map[LPos][]string{}
	for _, pkg := range pkgs {
		for _, f := range pkg.Files {
			for _, c := range f.Comments {
				for _, c1 := range c.List {
					a := SourceRegex.FindStringSubmatch(c1.Text)
					if len(a) < 2 {
						continue
					}
					pos := RemoveColumn(fset.Position(c1.Pos()))
					for _, ident := range strings.Split(a[1], ",") {
						sources[pos] = append(sources[pos], strings.TrimSpace(ident))
					}
				}
			}
		}
	}
	return sources, nil
}
