// File: cmd/decide.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/guided-explorer/internal/observability"
	"github.com/xkilldash9x/guided-explorer/internal/trace"
)

func newDecideCmd() *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Choose the next action for one screen snapshot",
		Long: `Reads one screen snapshot (JSON), queries the model, and prints the chosen
action as a JSON line on stdout. Inference failures never fail the command;
the decision falls back to a random action and says so in its "source".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			snap, err := readSnapshot(cmd.InOrStdin(), snapshotPath)
			if err != nil {
				return err
			}

			engine, err := newSession(ctx, cfg, observability.GetLogger())
			if err != nil {
				return err
			}
			defer engine.Stop()

			return trace.NewLineWriter(cmd.OutOrStdout()).Write(engine.Decide(ctx, snap))
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "-", "snapshot file, or - for stdin")
	return cmd
}
