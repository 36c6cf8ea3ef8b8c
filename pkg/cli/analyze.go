package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/stringd/pkg/analysis"
)

var analyzeLocal bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <value>",
	Short: "Analyze a string and store it on the server",
	Long: `Analyze a string and store the result on a running server.

With --local the string is analyzed in-process and nothing is stored.`,
	Example: `  # Store a value
  stringd analyze "Never odd or even"

  # Analyze without a server
  stringd analyze racecar --local --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := args[0]
		if strings.TrimSpace(value) == "" {
			return ErrEmptyValue
		}
		w := cmd.OutOrStdout()

		var rec *analysis.Record
		if analyzeLocal {
			rec = analysis.Analyze(value)
		} else {
			var err error
			rec, err = newClient(cmd.ErrOrStderr()).Create(cmd.Context(), value)
			if err != nil {
				return describeError(err, value)
			}
		}

		return printResult(w, rec, func() {
			if !analyzeLocal {
				_, _ = fmt.Fprintln(w, "Stored")
			}
			printRecord(w, rec)
		})
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeLocal, "local", false, "Analyze in-process without contacting a server")
	rootCmd.AddCommand(analyzeCmd)
}
