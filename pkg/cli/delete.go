package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type deleteResult struct {
	Deleted bool   `json:"deleted"`
	Value   string `json:"value"`
}

var deleteCmd = &cobra.Command{
	Use:     "delete <value>",
	Aliases: []string{"rm"},
	Short:   "Remove the stored record for a string",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := args[0]
		if err := newClient(cmd.ErrOrStderr()).Delete(cmd.Context(), value); err != nil {
			return describeError(err, value)
		}
		w := cmd.OutOrStdout()
		return printResult(w, deleteResult{Deleted: true, Value: value}, func() {
			_, _ = fmt.Fprintf(w, "Deleted %q\n", value)
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
