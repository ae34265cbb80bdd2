// File: cmd/prompt.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/prompt"
)

func newPromptCmd() *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt a snapshot would produce, without querying the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}

			snap, err := readSnapshot(cmd.InOrStdin(), snapshotPath)
			if err != nil {
				return err
			}

			actions := append(snap.PossibleActions(), schemas.NewBackAction())
			builder := prompt.NewBuilder(cfg.Explorer().LabelMaxLength)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), builder.Build(snap.Screen(), actions))
			return err
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "-", "snapshot file, or - for stdin")
	return cmd
}
