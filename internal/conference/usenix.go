// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conference

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmintz/secpapers/internal/fetcher"
	"github.com/dmintz/secpapers/pkg/types"
)

var usenixProgramURLPatterns = []string{
	"https://www.usenix.org/conference/usenixsecurity%d/technical-sessions",
	"https://www.usenix.org/conference/usenixsecurity%d/presentation",
	"https://www.usenix.org/conference/usenixsecurity%d/program",
}

// usenixNoAuthorYears lists program pages that carry no structured
// author field; those years record an empty author list rather than
// guessing from free text.
var usenixNoAuthorYears = map[int]bool{
	2011: true,
}

// USENIXSecurity extracts USENIX Security Symposium papers.
type USENIXSecurity struct{}

// Name returns the registry key.
func (USENIXSecurity) Name() string { return "usenix" }

// Extract scrapes the technical sessions page; USENIX has no metadata
// API path.
func (USENIXSecurity) Extract(ctx context.Context, year int, deps Deps) []types.Paper {
	return run(ctx, deps, "usenix", usenixScrapeStrategy(year))
}

func usenixScrapeStrategy(year int) strategy {
	return func(ctx context.Context, deps Deps) ([]types.Paper, error) {
		res, ok := fetcher.First(ctx, deps.Client, expandYear(usenixProgramURLPatterns, year), deps.Config.HTTPConfig, deps.Log)
		if !ok {
			return nil, nil
		}
		doc, err := parseDoc(res.Body)
		if err != nil {
			return nil, fmt.Errorf("parsing program page: %w", err)
		}

		papers := []types.Paper{}
		doc.Find("div.node--type-paper").Each(func(_ int, item *goquery.Selection) {
			authors := []string{}
			if !usenixNoAuthorYears[year] {
				authors = splitAuthors(item.Find("div.field--name-field-paper-authors").First().Text())
			}
			papers = append(papers, types.NewPaper(
				fieldText(item.Find("h3.node-title")),
				authors,
				pdfAnchor(item),
				optional(fieldText(item.Find("div.field--name-field-abstract"))),
			))
		})
		return papers, nil
	}
}
