package cli

import (
	"fmt"

	"timepicker-cli/internal/timepicker"

	"github.com/spf13/cobra"
)

type normalizedValue struct {
	Input string `json:"input"`
	Value string `json:"value"`
}

func newNormalizeCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "normalize <HH:MM>...",
		Short: "Format values the way the picker does when a field loses focus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]normalizedValue, 0, len(args))
			for _, a := range args {
				out = append(out, normalizedValue{Input: a, Value: timepicker.Normalize(a)})
			}
			if raw {
				for _, v := range out {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), v.Value); err != nil {
						return err
					}
				}
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print one HH:MM per line (no envelope)")

	return cmd
}
