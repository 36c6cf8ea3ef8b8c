package cli

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <value>",
	Short: "Show the stored record for a string",
	Long:  `Show the stored record for a string. Lookup is case-insensitive.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := newClient(cmd.ErrOrStderr()).Get(cmd.Context(), args[0])
		if err != nil {
			return describeError(err, args[0])
		}
		w := cmd.OutOrStdout()
		return printResult(w, rec, func() { printRecord(w, rec) })
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
