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

package main

import (
	"context"
	"flag"
	"fmt"
	"go/token"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ujchoe/SCanDroid/analysis"
	"github.com/ujchoe/SCanDroid/analysis/config"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/analysis/ssaprog"
	"github.com/ujchoe/SCanDroid/internal/formatutil"
	"golang.org/x/tools/go/ssa"
)

const rootLongDescription = `inflow seeds the taint sources of a Go program.

The source specifications are read from the config file. Each spec names methods by regexes over their package,
receiver type and name, and taints their entry arguments, the arguments or the results of the calls to them, or a
package-level variable.`

// rootOptions are the flags shared by all the commands
type rootOptions struct {
	configPath string
	platform   string
	verbose    bool
	buildmode  ssa.BuilderMode
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "inflow",
		Short:        "Seed the taint sources of Go programs",
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file containing the source specs")
	flags.StringVar(&opts.platform, "platform", "", "GOOS of the packages to load")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "set the log level to debug")
	goFlags := flag.NewFlagSet("ssa", flag.ContinueOnError)
	goFlags.Var(&opts.buildmode, "build", ssa.BuilderModeDoc)
	flags.AddGoFlagSet(goFlags)

	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	cmd.AddCommand(newSeedsCmd(opts), newSummaryCmd(opts), newStatsCmd(opts), newVersionCmd())
	return cmd
}

// normalizeFlagName accepts underscores in flag names, e.g. --reachable_only for --reachable-only
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// execute runs the root command until it returns or the process is interrupted
func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// session is a loaded program with the config it is analyzed with
type session struct {
	cfg    *config.Config
	logger *config.LogGroup
	fset   *token.FileSet
	prog   *ssaprog.Program
	nodes  map[int]*ssaprog.Node
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := config.NewDefault()
	if o.configPath != "" {
		config.SetGlobalConfig(o.configPath)
		loaded, err := config.LoadGlobal()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.verbose {
		cfg.LogLevel = int(config.DebugLevel)
	}
	return cfg, nil
}

// open loads the config and the packages in args, and builds the call graph of the program
func (o *rootOptions) open(ctx context.Context, args []string) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := config.NewLogGroup(cfg)

	logger.Infof(formatutil.Faint("Reading sources") + "\n")
	loaded, err := analysis.LoadProgram(ctx, nil, o.platform, o.buildmode, args)
	if err != nil {
		return nil, fmt.Errorf("could not load program: %w", err)
	}

	prog, err := analysis.BuildProgram(loaded.Program, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("could not build program: %w", err)
	}
	nodes := map[int]*ssaprog.Node{}
	for _, n := range prog.Nodes() {
		nodes[n.ID()] = n.(*ssaprog.Node)
	}
	return &session{cfg: cfg, logger: logger, fset: loaded.Program.Fset, prog: prog, nodes: nodes}, nil
}

// position returns the position of the value v of the node, or the empty string if it has none
func (s *session) position(node int, v program.Value) string {
	n, ok := s.nodes[node]
	if !ok {
		return ""
	}
	val := n.Value(v)
	if val == nil || !val.Pos().IsValid() {
		return ""
	}
	return s.fset.Position(val.Pos()).String()
}
