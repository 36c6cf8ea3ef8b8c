package cli

import (
	"fmt"
	"io"

	"github.com/getmockd/stringd/pkg/analysis"
	"github.com/getmockd/stringd/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to w. textFn is called only in text mode.
func printResult(w io.Writer, data any, textFn func()) error {
	if jsonOutput {
		return output.JSON(w, data)
	}
	textFn()
	return nil
}

// printRecord writes rec as aligned key/value lines.
func printRecord(w io.Writer, rec *analysis.Record) {
	tw := output.Table(w)
	_, _ = fmt.Fprintf(tw, "ID\t%s\n", rec.ID)
	_, _ = fmt.Fprintf(tw, "Value\t%q\n", rec.Value)
	_, _ = fmt.Fprintf(tw, "Length\t%d\n", rec.Properties.Length)
	_, _ = fmt.Fprintf(tw, "Palindrome\t%t\n", rec.Properties.IsPalindrome)
	_, _ = fmt.Fprintf(tw, "Unique characters\t%d\n", rec.Properties.UniqueCharacters)
	_, _ = fmt.Fprintf(tw, "Words\t%d\n", rec.Properties.WordCount)
	if !rec.CreatedAt.IsZero() {
		_, _ = fmt.Fprintf(tw, "Created\t%s\n", rec.CreatedAt)
	}
	_ = tw.Flush()
}

// printRecordTable writes one row per record.
func printRecordTable(w io.Writer, records []*analysis.Record) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No matching strings")
		return
	}
	tw := output.Table(w)
	_, _ = fmt.Fprintln(tw, "ID\tLENGTH\tWORDS\tPALINDROME\tVALUE")
	for _, rec := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%t\t%q\n",
			shortID(rec.ID), rec.Properties.Length, rec.Properties.WordCount,
			rec.Properties.IsPalindrome, rec.Value)
	}
	_ = tw.Flush()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
