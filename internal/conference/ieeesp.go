// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conference

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmintz/secpapers/internal/fetcher"
	"github.com/dmintz/secpapers/pkg/types"
)

// xploreAPIBase is the IEEE Xplore article search endpoint. Declared
// as a var so tests can substitute an httptest server.
var xploreAPIBase = "https://ieeexploreapi.ieee.org/api/v1/search/articles"

// ieeeProgramURLPatterns covers the older TC-hosted and newer
// per-symposium program page locations.
var ieeeProgramURLPatterns = []string{
	"https://www.ieee-security.org/TC/SP%d/program.html",
	"https://sp%d.ieee-security.org/program.html",
}

// ieeePubNumbers maps a symposium year to its Xplore publication
// number. Years missing here skip the API and scrape the program page.
var ieeePubNumbers = map[int]string{
	2018: "8418556",
	2019: "8826229",
	2020: "9144328",
	2021: "9519381",
	2022: "9833550",
	2023: "10179215",
	2024: "10646615",
}

// IEEESP extracts IEEE Symposium on Security and Privacy papers.
type IEEESP struct{}

// Name returns the registry key.
func (IEEESP) Name() string { return "sp" }

// Extract prefers the Xplore metadata API and falls back to scraping
// the program page.
func (IEEESP) Extract(ctx context.Context, year int, deps Deps) []types.Paper {
	return run(ctx, deps, "sp", xploreStrategy(year), ieeeScrapeStrategy(year))
}

// xploreStrategy queries the Xplore API. It silently does not apply
// when no API key is configured or the year has no known publication
// number, so the scrape fallback runs without a warning.
func xploreStrategy(year int) strategy {
	return func(ctx context.Context, deps Deps) ([]types.Paper, error) {
		key := deps.Config.XploreAPIKey
		pubNumber, known := ieeePubNumbers[year]
		if key == "" || !known {
			return nil, nil
		}

		params := url.Values{
			"apikey":      {key},
			"punumber":    {pubNumber},
			"max_records": {strconv.Itoa(maxAPIRows(deps.Config))},
			"format":      {"json"},
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, xploreAPIBase+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", deps.Config.UserAgent)

		resp, err := deps.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("Xplore API request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Xplore API returned HTTP %d", resp.StatusCode)
		}

		var xr xploreResponse
		if err := json.NewDecoder(resp.Body).Decode(&xr); err != nil {
			return nil, fmt.Errorf("parsing Xplore response: %w", err)
		}

		papers := make([]types.Paper, 0, len(xr.Articles))
		for _, a := range xr.Articles {
			var authors []string
			for _, au := range a.Authors.Authors {
				if name := strings.TrimSpace(au.FullName); name != "" {
					authors = append(authors, name)
				}
			}
			papers = append(papers, types.NewPaper(
				strings.TrimSpace(a.Title),
				authors,
				optional(a.PDFURL),
				optional(a.Abstract),
			))
		}
		return papers, nil
	}
}

// ieeeScrapeStrategy parses the program page. Items are div.paper
// blocks; the abstract sits in the paragraph after each block.
func ieeeScrapeStrategy(year int) strategy {
	return func(ctx context.Context, deps Deps) ([]types.Paper, error) {
		res, ok := fetcher.First(ctx, deps.Client, expandYear(ieeeProgramURLPatterns, year), deps.Config.HTTPConfig, deps.Log)
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

// Xplore API JSON structures.
type xploreResponse struct {
	TotalRecords int             `json:"total_records"`
	Articles     []xploreArticle `json:"articles"`
}

type xploreArticle struct {
	Title    string        `json:"title"`
	Abstract string        `json:"abstract"`
	PDFURL   string        `json:"pdf_url"`
	Authors  xploreAuthors `json:"authors"`
}

type xploreAuthors struct {
	Authors []xploreAuthor `json:"authors"`
}

type xploreAuthor struct {
	FullName string `json:"full_name"`
}
