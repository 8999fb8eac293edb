// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conference

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmintz/secpapers/pkg/types"
)

// parseDoc builds a goquery document from fetched page text.
func parseDoc(body string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// fieldText returns the trimmed text of the first matched element, or
// "" when the selection is empty.
func fieldText(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}

// optional converts a scraped string to a nullable field.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// splitAuthors splits a comma-delimited author string into trimmed
// names, dropping empty pieces. The result is never nil.
func splitAuthors(s string) []string {
	authors := []string{}
	for _, piece := range strings.Split(s, ",") {
		if name := strings.TrimSpace(piece); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// pdfAnchor returns the href of the first anchor within s whose target
// ends in the PDF extension, or nil when there is none.
func pdfAnchor(s *goquery.Selection) *string {
	var out *string
	s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.HasSuffix(href, ".pdf") {
			out = &href
			return false
		}
		return true
	})
	return out
}

// nextParagraph returns the trimmed text of the paragraph following
// the selection, or nil. Older program pages keep the abstract in a
// sibling <p> after the paper block rather than inside it.
func nextParagraph(s *goquery.Selection) *string {
	return optional(s.NextAllFiltered("p").First().Text())
}

// scrapeProgramItems parses the div.paper / div.title / div.authors
// program layout shared by the IEEE S&P and NDSS sites. The abstract
// is the paragraph following each paper block.
func scrapeProgramItems(doc *goquery.Document) []types.Paper {
	papers := []types.Paper{}
	doc.Find("div.paper").Each(func(_ int, item *goquery.Selection) {
		papers = append(papers, types.NewPaper(
			fieldText(item.Find("div.title")),
			splitAuthors(item.Find("div.authors").First().Text()),
			pdfAnchor(item),
			nextParagraph(item),
		))
	})
	return papers
}

// resolveURL resolves href against the page it was found on. Malformed
// input falls back to the raw href.
func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
