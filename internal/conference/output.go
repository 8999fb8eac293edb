// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conference

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dmintz/secpapers/pkg/types"
)

// FormatJSON writes papers as an indented JSON array. A nil list
// emits [] rather than null.
func FormatJSON(papers []types.Paper, w io.Writer) error {
	if papers == nil {
		papers = []types.Paper{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

// FormatTable writes papers as a human-readable table.
func FormatTable(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-70s  %-24s  %s\n", "#", "Title", "Authors", "PDF")
	fmt.Fprintln(w, strings.Repeat("-", 108))

	for i, p := range papers {
		pdf := "-"
		if p.PDFURL != nil {
			pdf = "yes"
		}
		fmt.Fprintf(w, "%-4d  %-70s  %-24s  %s\n",
			i+1, truncate(p.Title, 70), formatAuthors(p.Authors), pdf)
	}

	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 17) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
