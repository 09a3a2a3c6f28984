package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sublint/internal/services"
)

func newAlignCommand(cctx *commandContext) *cobra.Command {
	var (
		masterFlag string
		outputFlag string
		jsonFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "align <source-file> <target-file>",
		Short: "Align two subtitle tracks without reviewing them",
		Long: "Loads both tracks, re-cuts the non-master track onto the master's " +
			"segmentation by time overlap, and prints the aligned pairs as " +
			"tab-separated lines.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceCues, targetCues, err := loadTracks(args[0], args[1])
			if err != nil {
				return services.Wrap(services.ErrValidation, "align", "load", "", err)
			}
			sourceLines, targetLines, _, err := alignedLines(sourceCues, targetCues, masterFlag)
			if err != nil {
				return services.Wrap(services.ErrValidation, "align", "align", "", err)
			}

			var out io.Writer = cmd.OutOrStdout()
			if outputFlag != "" {
				file, err := os.Create(outputFlag)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				out = file
			}

			if jsonFlag {
				type pair struct {
					Row    int    `json:"row"`
					Source string `json:"source"`
					Target string `json:"target"`
				}
				pairs := make([]pair, len(sourceLines))
				for i := range sourceLines {
					pairs[i] = pair{Row: i, Source: sourceLines[i], Target: targetLines[i]}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(pairs)
			}

			w := bufio.NewWriter(out)
			for i := range sourceLines {
				fmt.Fprintf(w, "%s\t%s\t%s\n", strconv.Itoa(i), tsvEscape(sourceLines[i]), tsvEscape(targetLines[i]))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&masterFlag, "master", masterSource, "Track whose segmentation wins when line counts differ (source|target)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write aligned pairs to a file instead of stdout")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit aligned pairs as JSON")

	return cmd
}

// tsvEscape keeps multi-line cue text on one TSV row.
func tsvEscape(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n':
			out = append(out, '\\', 'n')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
