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
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/ujchoe/SCanDroid/analysis/program"
	"github.com/ujchoe/SCanDroid/analysis/summary"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var (
		match  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "summary package...",
		Short: "Write the XML summaries of the methods matching a regex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regexp.Compile(match)
			if err != nil {
				return fmt.Errorf("invalid --match regex: %w", err)
			}
			s, err := opts.open(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return writeSummaries(w, s, re)
		},
	}
	cmd.Flags().StringVarP(&match, "match", "m", "", "regex over the full names of the methods to summarize")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file the summaries are written to, instead of the standard output")
	_ = cmd.MarkFlagRequired("match")
	return cmd
}

// writeSummaries summarizes the methods whose name matches re. Methods containing instructions that have no summary
// form are skipped.
func writeSummaries(w io.Writer, s *session, re *regexp.Regexp) error {
	var methods []*summary.MethodSummary
	done := map[program.Method]bool{}
	for _, n := range s.prog.Nodes() {
		m := n.Method()
		if done[m] || !re.MatchString(m.String()) {
			continue
		}
		done[m] = true
		ms, err := summary.WriteMethod(m, s.nodes[n.ID()].Instructions())
		if err != nil {
			s.logger.Warnf("Skipping %s: %s\n", m, err)
			continue
		}
		methods = append(methods, ms)
	}
	s.logger.Infof("Summarized %d of %d matching methods\n", len(methods), len(done))
	return summary.Encode(w, methods...)
}
