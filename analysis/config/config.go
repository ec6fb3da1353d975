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

package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config contains the source specifications and the options of the inflow analysis.
// If some field is not defined in the config file, it will be empty/zero in the struct.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options

	sourceFile string

	// SourceSpecs lists the specifications of the taint sources
	SourceSpecs []SourceSpecEntry `yaml:"source-specs"`

	// InstanceKeyLabels maps the string representation of abstract heap objects to a provenance label (for example
	// a URI prefix). Labels are only used in the diagnostics.
	InstanceKeyLabels map[string]string `yaml:"instance-key-labels"`
}

// SourceSpecEntry is the configuration of a single source specification
type SourceSpecEntry struct {
	// Kind is one of entry-arg, call-arg, call-ret or static-field
	Kind string `yaml:"kind"`

	CodeIdentifier `yaml:",inline"`

	// Args lists the 1-based argument slots that are tainted. When Args is absent, all the declared parameters
	// are tainted (the receiver excluded).
	Args []int `yaml:"args"`
}

func (e SourceSpecEntry) String() string {
	parts := []string{e.Kind}
	for _, kv := range [][2]string{{"package", e.Package}, {"type", e.Type}, {"method", e.Method}, {"field", e.Field}} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	if e.Args != nil {
		parts = append(parts, fmt.Sprintf("args=%v", e.Args))
	}
	return strings.Join(parts, " ")
}

// Options are the global options of the analysis
type Options struct {
	// LogLevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// LogFile is a file the logs are written to, in addition to the standard error. The file is rotated when it
	// reaches LogMaxSize megabytes.
	LogFile string `yaml:"log-file"`

	// LogMaxSize is the size in megabytes at which the log file is rotated
	LogMaxSize int `yaml:"log-max-size"`

	// LogMaxBackups is the number of rotated log files to keep
	LogMaxBackups int `yaml:"log-max-backups"`

	// LogMaxAge is the number of days rotated log files are kept
	LogMaxAge int `yaml:"log-max-age"`

	// CallgraphAnalysis is the analysis used to build the call graph: pointer, cha, static, rta or vta
	CallgraphAnalysis string `yaml:"callgraph-analysis"`

	// UsePointerAnalysis runs the pointer analysis to resolve the heap objects reached from tainted values. When
	// false, no instance key element is seeded.
	UsePointerAnalysis bool `yaml:"use-pointer-analysis"`

	// ReachableOnly restricts seeding to the call graph nodes that are reachable from the entrypoints
	ReachableOnly bool `yaml:"reachable-only"`

	// PkgFilter restricts the methods that can be matched by source specs to the packages whose path has the filter as
	// prefix
	PkgFilter string `yaml:"pkg-filter"`
}

// NewDefault returns an empty default config.
func NewDefault() *Config {
	return &Config{
		sourceFile:        "",
		SourceSpecs:       nil,
		InstanceKeyLabels: map[string]string{},
		Options: Options{
			LogLevel:           int(InfoLevel),
			LogFile:            "",
			LogMaxSize:         DefaultLogMaxSize,
			LogMaxBackups:      DefaultLogMaxBackups,
			LogMaxAge:          DefaultLogMaxAge,
			CallgraphAnalysis:  DefaultCallgraphAnalysis,
			UsePointerAnalysis: true,
			ReachableOnly:      false,
			PkgFilter:          "",
		},
	}
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("could not load config file %s: %w", filename, err)
	}
	cfg.sourceFile = filename
	return cfg, nil
}

// Parse parses a yaml configuration
func Parse(b []byte) (*Config, error) {
	cfg := NewDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.CallgraphAnalysis == "" {
		cfg.CallgraphAnalysis = DefaultCallgraphAnalysis
	}
	if cfg.InstanceKeyLabels == nil {
		cfg.InstanceKeyLabels = map[string]string{}
	}

	for i, entry := range cfg.SourceSpecs {
		if err := validateArgs(entry.Args); err != nil {
			return nil, fmt.Errorf("source spec %d (%s): %w", i, entry, err)
		}
		cfg.SourceSpecs[i].CodeIdentifier = CompileRegexes(entry.CodeIdentifier)
	}
	return cfg, nil
}

func validateArgs(args []int) error {
	for _, a := range args {
		if a < 1 {
			return fmt.Errorf("argument slots are 1-based, got %d", a)
		}
	}
	return nil
}

// RelPath returns filename path relative to the config source file
func (c Config) RelPath(filename string) string {
	return path.Join(path.Dir(c.sourceFile), filename)
}

// MatchPkgFilter returns true if the package name pkgname matches the package filter set in the config file. If no
// package filter has been set in the config file, this returns true.
func (c Config) MatchPkgFilter(pkgname string) bool {
	return c.PkgFilter == "" || strings.HasPrefix(pkgname, c.PkgFilter)
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
