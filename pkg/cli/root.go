package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	serverURL  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stringd",
	Short: "stringd analyzes and stores strings over HTTP",
	Long: `stringd computes properties of strings (length, palindrome status, word count,
character frequency, SHA-256 hash), stores them keyed by content and lets you
query them by those properties.

Configuration can be provided via flags, environment variables (STRINGD_*),
or a configuration file. stringd looks for ./.stringd.yaml and
$XDG_CONFIG_HOME/stringd/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

// run executes the command tree against os.Args and returns the exit code.
func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Server base URL (default: from config, or http://localhost:8080)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
