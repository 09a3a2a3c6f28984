package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"sublint/internal/store"
)

func newRunsCommand(cctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List review runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					shortID(r.ID),
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					filepath.Base(r.SourceFile),
					filepath.Base(r.TargetFile),
					strconv.Itoa(r.TotalRows),
					string(r.Status),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Created", "Source", "Target", "Rows", "Status"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit runs as JSON")

	return cmd
}

func newShowCommand(cctx *commandContext) *cobra.Command {
	var (
		jsonFlag    bool
		minScore    float64
		onlyFlagged bool
	)

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the reviewed rows of a run",
		Long: "Prints every aligned row of a run with its review verdict. The run " +
			"id may be abbreviated to any unambiguous prefix.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rows, err := st.RowsForRun(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			if onlyFlagged || cmd.Flags().Changed("max-score") {
				filtered := rows[:0]
				for _, r := range rows {
					if !r.Scored {
						continue
					}
					if onlyFlagged && len(r.Issues) == 0 {
						continue
					}
					if cmd.Flags().Changed("max-score") && r.Score > minScore {
						continue
					}
					filtered = append(filtered, r)
				}
				rows = filtered
			}

			if jsonFlag {
				return writeJSON(cmd, struct {
					Run  *store.Run  `json:"run"`
					Rows []store.Row `json:"rows"`
				}{Run: run, Rows: rows})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Run %s  %s -> %s  [%s]\n",
				shortID(run.ID), filepath.Base(run.SourceFile), filepath.Base(run.TargetFile), run.Status)
			if run.ErrorMessage != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Error: %s\n", run.ErrorMessage)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRowTable(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the run and its rows as JSON")
	cmd.Flags().Float64Var(&minScore, "max-score", 10, "Only show rows scored at or below this value")
	cmd.Flags().BoolVar(&onlyFlagged, "flagged", false, "Only show rows with reported issues")

	return cmd
}
