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

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/ujchoe/SCanDroid/analysis"
	"github.com/ujchoe/SCanDroid/analysis/domain"
	"github.com/ujchoe/SCanDroid/analysis/flowfunc"
	"github.com/ujchoe/SCanDroid/analysis/inflow"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/analysis/spec"
	"github.com/ujchoe/SCanDroid/internal/formatutil"
)

func newSeedsCmd(opts *rootOptions) *cobra.Command {
	var reachableOnly bool
	cmd := &cobra.Command{
		Use:   "seeds package...",
		Short: "Print the taint elements seeded by the source specs of the config",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("reachable-only") {
				s.cfg.ReachableOnly = reachableOnly
			}
			return runSeeds(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().BoolVar(&reachableOnly, "reachable-only", false,
		"only seed the functions reachable from the entrypoints, overrides the config file option if set")
	return cmd
}

func runSeeds(w io.Writer, s *session) error {
	specs, err := spec.FromConfigs(s.cfg)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		s.logger.Warnf("The config has no source specs\n")
	}
	labels, err := analysis.LabelInstanceKeys(s.prog.InstanceKeys(), s.cfg.InstanceKeyLabels)
	if err != nil {
		return err
	}

	res, err := inflow.Analyze(spec.NewContext(s.prog.Program(), s.logger), labels, specs,
		inflow.Options{ReachableOnly: s.cfg.ReachableOnly})
	if err != nil {
		return err
	}

	seeds, err := flowfunc.IndexSeeds(domain.NewDomain(), res.TaintMap)
	if err != nil {
		return err
	}
	s.logger.Infof("Taint domain has %d elements\n", seeds.Len())

	printSeeds(w, s, res.TaintMap, seeds, labels)
	for _, gap := range res.Gaps {
		fmt.Fprintf(w, "%s %s\n", formatutil.Yellow("unresolved:"), formatutil.Sanitize(gap.Error()))
	}
	return nil
}

func printSeeds(w io.Writer, s *session, tm domain.TaintMap, seeds *flowfunc.Seeds,
	labels map[program.InstanceKey]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Block", "Function", "Flow", "Element", "Position", "Label"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	tm.Iter(func(block program.BlockID, flow domain.FlowType, e domain.CodeElement) {
		index, _ := seeds.Domain.Lookup(domain.DomainElement{Code: e, Flow: flow})
		var pos, label string
		switch e := e.(type) {
		case domain.LocalElement:
			pos = s.position(e.Node, e.Value)
		case domain.InstanceKeyElement:
			label = labels[e.Key]
		}
		function := ""
		if n, ok := s.nodes[block.Node]; ok {
			function = n.Method().String()
		}
		table.Append([]string{
			strconv.Itoa(index),
			block.String(),
			formatutil.Sanitize(function),
			flow.String(),
			formatutil.SanitizeRepr(e),
			pos,
			label,
		})
	})
	table.SetFooter([]string{"", "", "", "", fmt.Sprintf("%d elements", tm.Len()), "",
		fmt.Sprintf("%d blocks", len(tm))})
	table.Render()
}
