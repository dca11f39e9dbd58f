// Copyright 2025 CardinalHQ, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/tremor/pkg/archive"
)

var ArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect runs recorded in a SQLite archive",
}

var archiveListCmd = &cobra.Command{
	Use:   "list <archive.db>",
	Short: "List archived runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RUN\tEVENT\tCREATED\tSEED\tM\tR(km)\tVS30\tEVENTS\tUNITS")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.1f\t%.0f\t%d\t%s\n",
				r.RunID, r.Event, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Seed,
				r.Magnitude, r.DistanceKm, r.Vs30, r.NumEvents, r.Units)
		}
		return w.Flush()
	},
}

var archiveExportCmd = &cobra.Command{
	Use:   "export <archive.db> <run-id> <out.json>",
	Short: "Write an archived run back out as a result document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := store.LoadResult(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return res.WriteFile(args[2])
	},
}

func init() {
	ArchiveCmd.AddCommand(archiveListCmd)
	ArchiveCmd.AddCommand(archiveExportCmd)
}
