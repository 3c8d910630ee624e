// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/biblioscope/internal/traverse"
	"github.com/pdiddy/biblioscope/pkg/types"
)

// batchHeading labels a batch by its originating query. Free-text author
// batches are flagged as ambiguous: name searches collide.
func batchHeading(b traverse.Batch) string {
	switch b.Context.Kind {
	case types.KindIdentifier:
		return "Active record"
	case types.KindAuthority:
		return "Related by author " + b.Context.ResolvedTitle
	case types.KindPerson:
		return fmt.Sprintf("Related by author %s (free-text, may be ambiguous)", b.Context.ResolvedTitle)
	case types.KindClassification:
		return fmt.Sprintf("Related by classification %s=%s", b.Context.FieldCode, b.Context.Value)
	case types.KindSubject:
		return "Related by subject " + b.Context.ResolvedTitle
	default:
		return "Related records"
	}
}

// writeBatchTable renders one batch as a human-readable table.
func writeBatchTable(w io.Writer, b traverse.Batch) {
	fmt.Fprintf(w, "\n== %s ==\n", batchHeading(b))

	if b.Err != nil {
		fmt.Fprintf(w, "partial result: %v\n", b.Err)
		return
	}
	if len(b.Records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	fmt.Fprintf(w, "%-12s  %-8s  %-50s  %-24s  %s\n",
		"PPN", "Type", "Title", "Authors", "Year")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, r := range b.Records {
		fmt.Fprintf(w, "%-12s  %-8s  %-50s  %-24s  %s\n",
			r.ID, r.Type, truncate(r.Title, 50), formatAuthors(r.Authors), r.Year)
	}
	fmt.Fprintf(w, "%d records\n", len(b.Records))
}

func formatAuthors(authors []types.Person) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0].DisplayName(), 24)
	default:
		return truncate(authors[0].DisplayName(), 18) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
