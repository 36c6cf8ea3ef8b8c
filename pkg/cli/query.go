package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/getmockd/stringd/pkg/analysis"
	"github.com/getmockd/stringd/pkg/query"
)

type queryFlags struct {
	isPalindrome      bool
	minLength         int
	maxLength         int
	wordCount         int
	containsCharacter string
}

var queryFlagVals queryFlags

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List stored strings matching all filter criteria",
	Example: `  # One-word palindromes of 3 to 10 characters containing "a"
  stringd query --is-palindrome --min-length 3 --max-length 10 --word-count 1 --contains-character a`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := queryFlagVals.criteria()
		if err != nil {
			return err
		}

		records, err := newClient(cmd.ErrOrStderr()).Query(cmd.Context(), criteria)
		if err != nil {
			return describeError(err, "")
		}
		if records == nil {
			records = []*analysis.Record{}
		}

		w := cmd.OutOrStdout()
		return printResult(w, records, func() { printRecordTable(w, records) })
	},
}

// criteria converts the flags; the server performs the remaining checks.
func (f *queryFlags) criteria() (query.Criteria, error) {
	if utf8.RuneCountInString(f.containsCharacter) != 1 {
		return query.Criteria{}, fmt.Errorf("--contains-character must be exactly one character, got %q", f.containsCharacter)
	}
	ch, _ := utf8.DecodeRuneInString(f.containsCharacter)
	return query.Criteria{
		IsPalindrome:      f.isPalindrome,
		MinLength:         f.minLength,
		MaxLength:         f.maxLength,
		WordCount:         f.wordCount,
		ContainsCharacter: ch,
	}, nil
}

func init() {
	f := &queryFlagVals
	queryCmd.Flags().BoolVar(&f.isPalindrome, "is-palindrome", false, "Match palindromes (use --is-palindrome=false for non-palindromes)")
	queryCmd.Flags().IntVar(&f.minLength, "min-length", 0, "Minimum length in characters")
	queryCmd.Flags().IntVar(&f.maxLength, "max-length", 0, "Maximum length in characters")
	queryCmd.Flags().IntVar(&f.wordCount, "word-count", 0, "Exact number of words")
	queryCmd.Flags().StringVar(&f.containsCharacter, "contains-character", "", "Character the string must contain")
	for _, name := range []string{"is-palindrome", "min-length", "max-length", "word-count", "contains-character"} {
		_ = queryCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(queryCmd)
}
