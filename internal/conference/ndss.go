// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmintz/secpapers/internal/fetcher"
	"github.com/dmintz/secpapers/pkg/types"
)

var ndssProgramURLPatterns = []string{
	"https://www.ndss-symposium.org/ndss%d-program/",
	"https://www.ndss-symposium.org/ndss%d/program/",
	"https://www.ndss-symposium.org/ndss%d/accepted-papers/",
}

// ndssDetailCrawlYears lists program pages that only link per-paper
// detail pages; those years need a second fetch per paper.
var ndssDetailCrawlYears = map[int]bool{
	2016: true,
}

// NDSS extracts Network and Distributed System Security Symposium
// papers.
type NDSS struct{}

// Name returns the registry key.
func (NDSS) Name() string { return "ndss" }

// Extract scrapes the program page, following per-paper detail links
// for the years that require it.
func (NDSS) Extract(ctx context.Context, year int, deps Deps) []types.Paper {
	if ndssDetailCrawlYears[year] {
		return run(ctx, deps, "ndss", ndssDetailStrategy(year))
	}
	return run(ctx, deps, "ndss", ndssProgramStrategy(year))
}

// ndssProgramStrategy parses the single-page program layout, which
// matches the IEEE S&P block structure.
func ndssProgramStrategy(year int) strategy {
	return func(ctx context.Context, deps Deps) ([]types.Paper, error) {
		res, ok := fetcher.First(ctx, deps.Client, expandYear(ndssProgramURLPatterns, year), deps.Config.HTTPConfig, deps.Log)
		if !ok {
			return nil, nil
		}
		doc, err := parseDoc(res.Body)
		if err != nil {
			return nil, fmt.Errorf("parsing program page: %w", err)
		}
		return scrapeProgramItems(doc), nil
	}
}

// ndssDetailStrategy collects per-paper links from the index, then
// fetches each detail page sequentially. A failed detail fetch skips
// that paper; the fetcher already prints the notice.
func ndssDetailStrategy(year int) strategy {
	return func(ctx context.Context, deps Deps) ([]types.Paper, error) {
		res, ok := fetcher.First(ctx, deps.Client, expandYear(ndssProgramURLPatterns, year), deps.Config.HTTPConfig, deps.Log)
		if !ok {
			return nil, nil
		}
		doc, err := parseDoc(res.Body)
		if err != nil {
			return nil, fmt.Errorf("parsing index page: %w", err)
		}

		var links []string
		doc.Find("a.paper-link").Each(func(_ int, a *goquery.Selection) {
			if href, exists := a.Attr("href"); exists && href != "" {
				links = append(links, resolveURL(res.URL, href))
			}
		})

		papers := []types.Paper{}
		for i, link := range links {
			if i > 0 && deps.Config.DetailDelay > 0 {
				time.Sleep(deps.Config.DetailDelay)
			}
			page, ok := fetcher.First(ctx, deps.Client, []string{link}, deps.Config.HTTPConfig, deps.Log)
			if !ok {
				continue
			}
			paper, err := parseNDSSDetail(page.Body)
			if err != nil {
				fmt.Fprintf(deps.Log, "warning: ndss: %s: %v\n", link, err)
				continue
			}
			papers = append(papers, paper)
		}
		return papers, nil
	}
}

// parseNDSSDetail extracts one record from a paper detail page: first
// heading for the title, the element after it for the author byline,
// the anchor labelled "Paper" for the PDF.
func parseNDSSDetail(body string) (types.Paper, error) {
	doc, err := parseDoc(body)
	if err != nil {
		return types.Paper{}, fmt.Errorf("parsing detail page: %w", err)
	}

	heading := doc.Find("h1, h2").First()

	var pdfURL *string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.TrimSpace(a.Text()) == "Paper" {
			if href, exists := a.Attr("href"); exists && href != "" {
				pdfURL = &href
				return false
			}
		}
		return true
	})

	return types.NewPaper(
		fieldText(heading),
		splitAuthors(heading.Next().Text()),
		pdfURL,
		optional(fieldText(doc.Find("p.paper-abstract"))),
	), nil
}
