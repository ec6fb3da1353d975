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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/ujchoe/SCanDroid/analysis"
	"github.com/ujchoe/SCanDroid/internal/formatutil"
	"github.com/ujchoe/SCanDroid/internal/funcutil"
	"github.com/ujchoe/SCanDroid/internal/graphutil"
	"golang.org/x/tools/go/ssa/ssautil"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var cycles bool
	cmd := &cobra.Command{
		Use:   "stats package...",
		Short: "Print call graph statistics: size, recursive components and cycles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), args)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), s, cycles)
			return nil
		},
	}
	cmd.Flags().BoolVar(&cycles, "cycles", false, "list the elementary cycles of the recursive components")
	return cmd
}

func printStats(w io.Writer, s *session, withCycles bool) {
	cg := graphutil.NewCallgraphIterator(s.prog)
	reachable := graphutil.Reachable(cg, s.prog.Entrypoints())
	components := graphutil.RecursiveComponents(cg)

	ssaStats := analysis.SSAStatistics(ssautil.AllFunctions(s.prog.SSA()), s.cfg.MatchPkgFilter)
	ssaStats.CountInstructionKinds(s.prog.Blocks())

	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.AppendBulk([][]string{
		{"Call graph nodes", strconv.Itoa(len(s.prog.Nodes()))},
		{"Entrypoints", strconv.Itoa(len(s.prog.Entrypoints()))},
		{"Reachable nodes", strconv.Itoa(len(reachable))},
		{"Blocks", strconv.Itoa(len(s.prog.Blocks()))},
		{"Methods", strconv.Itoa(len(s.prog.Methods()))},
		{"Recursive components", strconv.Itoa(len(components))},
		{"SSA functions", fmt.Sprint(ssaStats.NumberOfFunctions)},
		{"Non-empty SSA functions", fmt.Sprint(ssaStats.NumberOfNonemptyFunctions)},
		{"SSA blocks", fmt.Sprint(ssaStats.NumberOfBlocks)},
		{"SSA instructions", fmt.Sprint(ssaStats.NumberOfInstructions)},
	})
	for _, kind := range funcutil.SortedKeys(ssaStats.InstructionKinds) {
		table.Append([]string{"Instructions: " + kind, fmt.Sprint(ssaStats.InstructionKinds[kind])})
	}
	table.Render()

	var recursive []int64
	for i, component := range components {
		names := make([]string, len(component))
		for j, n := range component {
			names[j] = formatutil.Sanitize(n.Method().String())
			recursive = append(recursive, int64(n.ID()))
		}
		fmt.Fprintf(w, "%s %s\n", formatutil.Bold(fmt.Sprintf("component %d:", i)), strings.Join(names, ", "))
	}

	if !withCycles {
		return
	}
	for _, cycle := range graphutil.FindAllElementaryCycles(graphutil.Subgraph(cg, recursive)) {
		names := make([]string, len(cycle))
		for i, id := range cycle {
			names[i] = formatutil.Sanitize(cg.IDMap[id].Node.Method().String())
		}
		fmt.Fprintf(w, "%s %s\n", formatutil.Cyan("cycle:"), strings.Join(names, " -> "))
	}
}
