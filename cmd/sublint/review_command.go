package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"sublint/internal/logging"
	"sublint/internal/review"
	"sublint/internal/services"
	"sublint/internal/services/critic"
	"sublint/internal/store"
)

func newReviewCommand(cctx *commandContext) *cobra.Command {
	var (
		masterFlag string
		batchFlag  int
		jsonFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "review <source-file> <target-file>",
		Short: "Review a translated subtitle track against its source",
		Long: "Loads both subtitle tracks, aligns them by timing when their line counts " +
			"differ, and submits the aligned pairs to the review service in batches. " +
			"Results are persisted as each batch completes.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.LLM.APIKey) == "" {
				return services.Wrap(services.ErrConfiguration, "review", "start",
					"SUBLINT_API_KEY is not set", nil)
			}

			batchSize := cfg.Review.BatchSize
			if batchFlag > 0 {
				batchSize = batchFlag
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sourcePath, targetPath := args[0], args[1]
			sourceCues, targetCues, err := loadTracks(sourcePath, targetPath)
			if err != nil {
				return services.Wrap(services.ErrValidation, "review", "load", "", err)
			}
			sourceLines, targetLines, aligned, err := alignedLines(sourceCues, targetCues, masterFlag)
			if err != nil {
				return services.Wrap(services.ErrValidation, "review", "align", "", err)
			}
			if len(sourceLines) == 0 {
				return services.Wrap(services.ErrValidation, "review", "load",
					"no subtitle lines to review", nil)
			}
			if aligned {
				logger.Info("tracks aligned by timing",
					logging.String("master", masterFlag),
					logging.Int("source_cues", len(sourceCues)),
					logging.Int("target_cues", len(targetCues)),
					logging.Int("rows", len(sourceLines)))
			}

			st, err := cctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.CreateRun(ctx, sourcePath, targetPath, masterFlag, sourceLines, targetLines)
			if err != nil {
				return err
			}
			logger.Info("run created",
				logging.String("run_id", run.ID),
				logging.Int("rows", run.TotalRows),
				logging.Int("batch_size", batchSize))
			if err := st.SetStatus(ctx, run.ID, store.StatusReviewing, ""); err != nil {
				return err
			}

			client := critic.NewClient(critic.Config{
				APIKey:         cfg.LLM.APIKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				Referer:        cfg.LLM.Referer,
				Title:          cfg.LLM.Title,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
				SourceLanguage: cfg.Review.SourceLanguage,
				TargetLanguage: cfg.Review.TargetLanguage,
			})
			pipeline, err := review.New(client, batchSize, logger)
			if err != nil {
				return err
			}
			reviewRun, err := pipeline.Start(ctx, sourceLines, targetLines)
			if err != nil {
				return err
			}

			fatal := driveRun(reviewRun, st, run.ID, logger)
			if fatal != nil {
				_ = st.SetStatus(context.Background(), run.ID, services.FailureStatus(fatal), fatal.Error())
				return fatal
			}
			if ctx.Err() != nil {
				logger.Info("review interrupted, partial results saved",
					logging.String("run_id", run.ID))
				return st.SetStatus(context.Background(), run.ID, store.StatusFailed, "interrupted")
			}
			if err := st.SetStatus(ctx, run.ID, store.StatusCompleted, ""); err != nil {
				return err
			}

			rows, err := st.RowsForRun(ctx, run.ID)
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, rows)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRowTable(rows))
			fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d rows reviewed\n", shortID(run.ID), run.TotalRows)
			return nil
		},
	}

	cmd.Flags().StringVar(&masterFlag, "master", masterSource, "Track whose segmentation wins when line counts differ (source|target)")
	cmd.Flags().IntVar(&batchFlag, "batch-size", 0, "Rows per review request (overrides config)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit reviewed rows as JSON")

	return cmd
}

// driveRun consumes the pipeline's channels until the terminal error
// arrives, persisting each batch as it lands. Batches are written with a
// background context so an interrupt does not lose already-paid reviews.
// Returns the fatal error, or nil for a completed or cancelled run.
func driveRun(run *review.Run, st *store.Store, runID string, logger *slog.Logger) error {
	sampler := logging.NewProgressSampler(0)
	progress := run.Progress()
	results := run.Results()
	for progress != nil || results != nil {
		select {
		case p, ok := <-progress:
			if !ok {
				progress = nil
				continue
			}
			if p.Total > 0 && sampler.ShouldLog(float64(p.Done)*100/float64(p.Total), "review") {
				logger.Info("review progress",
					logging.Int("done", p.Done),
					logging.Int("total", p.Total),
					logging.String("message", p.Message))
			}
		case batch, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			if err := st.ApplyResults(context.Background(), runID, batch); err != nil {
				logger.Error("persisting batch failed",
					logging.Error(err),
					logging.Int("batch_rows", len(batch)))
			}
		}
	}
	return <-run.Done()
}

// renderRowTable formats reviewed rows for the terminal. Unscored rows keep
// their score and verdict columns blank.
func renderRowTable(rows []store.Row) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		score, issues := "", ""
		if r.Scored {
			score = strconv.FormatFloat(r.Score, 'f', 1, 64)
			issues = strings.Join(r.Issues, ", ")
		}
		out = append(out, []string{
			strconv.Itoa(r.Row),
			r.SourceText,
			r.TargetText,
			score,
			issues,
			r.Comment,
			r.Suggestion,
		})
	}
	return renderTable([]string{"#", "Source", "Target", "Score", "Issues", "Comment", "Suggestion"}, out)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
