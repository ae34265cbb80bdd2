// File: cmd/replay.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/observability"
	"github.com/xkilldash9x/guided-explorer/internal/trace"
)

// replayReport is the per-trace output of the replay command.
type replayReport struct {
	Trace           string                   `json:"trace"`
	Summary         schemas.Summary          `json:"summary"`
	RandomDecisions int                      `json:"random_decisions"`
	Decisions       []schemas.DecisionResult `json:"decisions,omitempty"`
}

func newReplayCmd() *cobra.Command {
	var (
		concurrency      int
		includeDecisions bool
	)

	cmd := &cobra.Command{
		Use:   "replay TRACE...",
		Short: "Run recorded snapshot traces through fresh exploration sessions",
		Long: `Each JSONL trace is replayed as its own session against the configured model.
Traces run concurrently; one report line per trace is printed, in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.SetReplayConcurrency(concurrency)
			}
			if cfg.Replay().Concurrency <= 0 {
				return fmt.Errorf("concurrency must be a positive integer")
			}
			logger := observability.GetLogger()

			// Load every trace up front so a bad file fails before any query.
			traces := make([][]*schemas.Snapshot, len(args))
			for i, path := range args {
				snaps, err := trace.ReadFile(path)
				if err != nil {
					return err
				}
				traces[i] = snaps
			}

			reports := make([]replayReport, len(args))
			g, groupCtx := errgroup.WithContext(ctx)
			g.SetLimit(cfg.Replay().Concurrency)

			for i, path := range args {
				g.Go(func() error {
					engine, err := newSession(groupCtx, cfg, logger.With(zap.String("trace", path)))
					if err != nil {
						return err
					}

					report := replayReport{Trace: path}
					for _, snap := range traces[i] {
						if groupCtx.Err() != nil {
							break
						}
						res := engine.Decide(groupCtx, snap)
						if res.Source.IsRandom() {
							report.RandomDecisions++
						}
						if includeDecisions {
							report.Decisions = append(report.Decisions, res)
						}
					}
					report.Summary = engine.Stop()
					reports[i] = report
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := trace.NewLineWriter(cmd.OutOrStdout())
			for _, report := range reports {
				if err := w.Write(report); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "number of traces replayed at once (overrides replay.concurrency)")
	cmd.Flags().BoolVar(&includeDecisions, "decisions", false, "include every decision in the report")
	return cmd
}
