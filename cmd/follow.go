// File: cmd/follow.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/guided-explorer/internal/observability"
	"github.com/xkilldash9x/guided-explorer/internal/trace"
)

func newFollowCmd() *cobra.Command {
	var (
		fromStart bool
		poll      bool
	)

	cmd := &cobra.Command{
		Use:   "follow TRACE",
		Short: "Decide for each snapshot appended to a live trace until interrupted",
		Long: `Tails a JSONL trace that a UI driver appends one snapshot to per step and
prints a decision line for each. On interrupt the session summary is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()

			engine, err := newSession(ctx, cfg, logger)
			if err != nil {
				return err
			}

			// The follower stops with this command, whichever way it returns.
			followCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			var opts []trace.FollowerOption
			if fromStart {
				opts = append(opts, trace.FromStart())
			}
			if poll {
				opts = append(opts, trace.WithPolling())
			}
			snaps, err := trace.NewFollower(args[0], logger, opts...).Start(followCtx)
			if err != nil {
				engine.Stop()
				return err
			}

			w := trace.NewLineWriter(cmd.OutOrStdout())
			for snap := range snaps {
				if err := w.Write(engine.Decide(ctx, snap)); err != nil {
					engine.Stop()
					return err
				}
			}

			return w.Write(engine.Stop())
		},
	}

	cmd.Flags().BoolVar(&fromStart, "from-start", false, "also decide for snapshots already in the file")
	cmd.Flags().BoolVar(&poll, "poll", false, "poll the file instead of using filesystem notifications")
	return cmd
}
