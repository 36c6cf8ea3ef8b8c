package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

type healthResult struct {
	Status  string `json:"status"`
	URL     string `json:"url"`
	Strings int    `json:"strings"`
	Uptime  int64  `json:"uptime"`
	Error   string `json:"error,omitempty"`
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check if the stringd server is healthy and reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient(cmd.ErrOrStderr())
		w := cmd.OutOrStdout()

		h, err := c.Health(cmd.Context())
		if err != nil {
			result := healthResult{Status: "unhealthy", URL: c.BaseURL(), Error: err.Error()}
			_ = printResult(w, result, func() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "unhealthy: %v\n", err)
			})
			return errors.New("server is not healthy")
		}

		result := healthResult{Status: "healthy", URL: c.BaseURL(), Strings: h.Strings, Uptime: h.Uptime}
		return printResult(w, result, func() {
			_, _ = fmt.Fprintf(w, "healthy (%d strings, up %ds)\n", h.Strings, h.Uptime)
		})
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
